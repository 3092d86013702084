package questionbank

// Program is an enrollable program a student picks before starting.
type Program struct {
	Slug       string
	LabelKey   string
	ClockHours int
}

var programs = []Program{
	{Slug: "home-health-aide", LabelKey: "program_home_health_aide", ClockHours: 75},
	{Slug: "nursing-assistant", LabelKey: "program_nursing_assistant", ClockHours: 120},
	{Slug: "phlebotomy-technician", LabelKey: "program_phlebotomy_technician", ClockHours: 165},
	{Slug: "electrocardiograph-technician", LabelKey: "program_electrocardiograph_technician", ClockHours: 165},
	{Slug: "patient-care-technician", LabelKey: "program_patient_care_technician", ClockHours: 600},
	{Slug: "medical-assistant", LabelKey: "program_medical_assistant", ClockHours: 936},
	{Slug: "medical-billing-and-coding", LabelKey: "program_medical_billing_and_coding", ClockHours: 1000},
}

// Programs returns the program catalog in display order.
func Programs() []Program {
	out := make([]Program, len(programs))
	copy(out, programs)
	return out
}

// ProgramBySlug looks a program up by slug.
func ProgramBySlug(slug string) (Program, bool) {
	for _, p := range programs {
		if p.Slug == slug {
			return p, true
		}
	}
	return Program{}, false
}
