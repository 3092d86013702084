package quiz

import (
	"github.com/abhisek/orientation/internal/questionbank"
)

// LoadBank loads the question bank at path (embedded when empty) and reports
// any failure as a DataIntegrityError.
func LoadBank(path string) (*questionbank.Bank, error) {
	b, err := questionbank.Load(path)
	if err != nil {
		reason := "load embedded question bank"
		if path != "" {
			reason = "load question bank " + path
		}
		return nil, &DataIntegrityError{Reason: reason, Err: err}
	}
	return b, nil
}
