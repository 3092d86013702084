package questionbank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/orientation/internal/i18n"
)

// Question is one policy question with its multiple-choice answers.
type Question struct {
	ID                int         `json:"id"`
	Description       i18n.Text   `json:"description"`
	Prompt            i18n.Text   `json:"prompt"`
	Choices           []i18n.Text `json:"choices"`
	CorrectIndex      int         `json:"correct_index"`
	FeedbackCorrect   i18n.Text   `json:"feedback_correct"`
	FeedbackIncorrect i18n.Text   `json:"feedback_incorrect"`
}

// IsCorrect reports whether selected is the correct choice.
// Out-of-range selections are simply wrong.
func (q Question) IsCorrect(selected int) bool {
	return selected == q.CorrectIndex
}

// Choice returns the choice at i, or false when i is out of range.
func (q Question) Choice(i int) (i18n.Text, bool) {
	if i < 0 || i >= len(q.Choices) {
		return i18n.Text{}, false
	}
	return q.Choices[i], true
}

// Feedback returns the message shown after answering.
func (q Question) Feedback(correct bool) i18n.Text {
	if correct {
		return q.FeedbackCorrect
	}
	return q.FeedbackIncorrect
}

// Bank is an immutable, ID-ordered sequence of questions.
type Bank struct {
	questions []Question
	byID      map[int]int
}

// New builds a bank from questions after checking their integrity.
// Questions are ordered by ID. An empty bank is allowed; starting a quiz on it
// is rejected by the engine.
func New(questions []Question) (*Bank, error) {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })

	if err := checkIntegrity(qs); err != nil {
		return nil, err
	}

	b := &Bank{questions: qs, byID: make(map[int]int, len(qs))}
	for i, q := range qs {
		b.byID[q.ID] = i
	}
	return b, nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.questions)
}

// At returns the question at position i.
func (b *Bank) At(i int) (Question, bool) {
	if b == nil || i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[i], true
}

// ByID returns the question with the given ID.
func (b *Bank) ByID(id int) (Question, bool) {
	if b == nil {
		return Question{}, false
	}
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// All returns a copy of the questions in order.
func (b *Bank) All() []Question {
	if b == nil {
		return nil
	}
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// checkIntegrity collects every structural problem in qs.
func checkIntegrity(qs []Question) error {
	var errs []string

	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		prefix := fmt.Sprintf("question %d", q.ID)
		if q.ID <= 0 {
			errs = append(errs, fmt.Sprintf("%s: id must be > 0", prefix))
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %d", q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Prompt.Resolve(i18n.DefaultLanguage)) == "" {
			errs = append(errs, fmt.Sprintf("%s: prompt has no English text", prefix))
		}
		if len(q.Choices) < 2 {
			errs = append(errs, fmt.Sprintf("%s: needs at least 2 choices, got %d", prefix, len(q.Choices)))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			errs = append(errs, fmt.Sprintf("%s: correct_index %d out of range [0, %d)", prefix, q.CorrectIndex, len(q.Choices)))
		}
		for i, c := range q.Choices {
			if strings.TrimSpace(c.Resolve(i18n.DefaultLanguage)) == "" {
				errs = append(errs, fmt.Sprintf("%s: choice %d has no English text", prefix, i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question bank validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
