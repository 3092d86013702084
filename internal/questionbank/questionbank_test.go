package questionbank

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/orientation/internal/i18n"
)

func TestEmbeddedBank(t *testing.T) {
	b, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error: %v", err)
	}
	if b.Len() != 25 {
		t.Fatalf("Len() = %d, want 25", b.Len())
	}

	for i, q := range b.All() {
		if q.ID != i+1 {
			t.Errorf("question %d has ID %d, want %d", i, q.ID, i+1)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			t.Errorf("question %d: correct index %d out of range", q.ID, q.CorrectIndex)
		}
	}
}

func TestEmbeddedBankLocalizedQuestion(t *testing.T) {
	b, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error: %v", err)
	}
	q, ok := b.ByID(1)
	if !ok {
		t.Fatal("question 1 not found")
	}
	if !q.Prompt.IsLocalized() {
		t.Fatal("question 1 prompt should be localized")
	}
	if es := q.Prompt.Resolve(i18n.Spanish); !strings.HasPrefix(es, "¿") {
		t.Errorf("Spanish prompt = %q, want Spanish text", es)
	}

	q2, _ := b.ByID(2)
	if q2.Prompt.Resolve(i18n.Spanish) != q2.Prompt.Resolve(i18n.English) {
		t.Error("plain prompt should resolve identically in every language")
	}
}

func TestNewSortsByID(t *testing.T) {
	b, err := New([]Question{
		makeQuestion(3),
		makeQuestion(1),
		makeQuestion(2),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for i := 0; i < b.Len(); i++ {
		q, _ := b.At(i)
		if q.ID != i+1 {
			t.Errorf("At(%d).ID = %d, want %d", i, q.ID, i+1)
		}
	}
	if _, ok := b.At(3); ok {
		t.Error("At(3) should be out of range")
	}
}

func TestNewRejectsBadQuestions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr string
	}{
		{"correct index too high", func(q *Question) { q.CorrectIndex = 4 }, "correct_index"},
		{"negative correct index", func(q *Question) { q.CorrectIndex = -1 }, "correct_index"},
		{"single choice", func(q *Question) { q.Choices = q.Choices[:1]; q.CorrectIndex = 0 }, "at least 2 choices"},
		{"empty prompt", func(q *Question) { q.Prompt = i18n.Plain("") }, "prompt"},
		{"zero id", func(q *Question) { q.ID = 0 }, "id must be > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := makeQuestion(1)
			tt.mutate(&q)
			_, err := New([]Question{q})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Question{makeQuestion(1), makeQuestion(1)})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("err = %v, want duplicate ID error", err)
	}
}

func TestNewAllowsEmpty(t *testing.T) {
	b, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"missing questions", `{"version":1}`},
		{"empty questions", `{"version":1,"questions":[]}`},
		{"wrong version", `{"version":2,"questions":[` + minimalQuestion + `]}`},
		{"text missing en", `{"version":1,"questions":[{"id":1,"description":"d","prompt":{"es":"x"},"choices":["a","b"],"correct_index":0,"feedback_correct":"y","feedback_incorrect":"n"}]}`},
		{"unknown field", `{"version":1,"questions":[{"id":1,"extra":true,"description":"d","prompt":"p","choices":["a","b"],"correct_index":0,"feedback_correct":"y","feedback_incorrect":"n"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseIntegrityAfterSchema(t *testing.T) {
	// Schema allows it; integrity check catches the out-of-range index.
	data := `{"version":1,"questions":[{"id":1,"description":"d","prompt":"p","choices":["a","b"],"correct_index":5,"feedback_correct":"y","feedback_incorrect":"n"}]}`
	if _, err := Parse([]byte(data)); err == nil {
		t.Error("expected integrity error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte(`{"version":1,"questions":[`+minimalQuestion+`]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestQuestionHelpers(t *testing.T) {
	q := makeQuestion(1)
	if !q.IsCorrect(0) || q.IsCorrect(1) || q.IsCorrect(99) {
		t.Error("IsCorrect mismatch")
	}
	if _, ok := q.Choice(-1); ok {
		t.Error("Choice(-1) should be out of range")
	}
	if got := q.Feedback(false).Resolve(i18n.English); got != "no" {
		t.Errorf("Feedback(false) = %q, want %q", got, "no")
	}
}

func TestProgramCatalog(t *testing.T) {
	ps := Programs()
	if len(ps) != 7 {
		t.Fatalf("len(Programs()) = %d, want 7", len(ps))
	}
	p, ok := ProgramBySlug("medical-assistant")
	if !ok || p.ClockHours != 936 {
		t.Errorf("ProgramBySlug(medical-assistant) = %+v, %v", p, ok)
	}
	for _, p := range ps {
		if !i18n.Default().Has(p.LabelKey, i18n.Spanish) {
			t.Errorf("program %s has no Spanish label", p.Slug)
		}
	}
	if _, ok := ProgramBySlug("astronaut"); ok {
		t.Error("unknown slug should not resolve")
	}
}

const minimalQuestion = `{"id":1,"description":"d","prompt":"p","choices":["a","b"],"correct_index":0,"feedback_correct":"y","feedback_incorrect":"n"}`

func makeQuestion(id int) Question {
	return Question{
		ID:     id,
		Prompt: i18n.Plain("prompt"),
		Choices: []i18n.Text{
			i18n.Plain("a"), i18n.Plain("b"), i18n.Plain("c"), i18n.Plain("d"),
		},
		CorrectIndex:      0,
		FeedbackCorrect:   i18n.Plain("yes"),
		FeedbackIncorrect: i18n.Plain("no"),
	}
}
