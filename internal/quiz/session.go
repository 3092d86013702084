package quiz

import (
	"time"

	"github.com/abhisek/orientation/internal/i18n"
)

// State is the lifecycle state of the quiz.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// AnswerRecord is a single submitted answer. Records are never mutated.
type AnswerRecord struct {
	QuestionID    int
	SelectedIndex int
	IsCorrect     bool
	Timestamp     time.Time
}

// Session is one run through the question bank.
type Session struct {
	ID           string
	StudentName  string
	Program      string
	StartTime    time.Time
	EndTime      time.Time // zero until completion
	CurrentIndex int
	Score        int
	Answers      []AnswerRecord
}

// Feedback is returned after an answer is submitted.
type Feedback struct {
	Correct      bool
	Message      i18n.Text
	CorrectIndex int
}

// Progress is the 1-based position within the bank.
type Progress struct {
	Number   int
	Total    int
	Answered int
}

// Fraction returns the completed share in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}

// ReviewItem pairs a question with the answer given for it.
type ReviewItem struct {
	QuestionID    int
	Number        int
	Prompt        i18n.Text
	Choices       []i18n.Text
	SelectedIndex int
	CorrectIndex  int
	IsCorrect     bool
	Answered      bool
}

// SelectedText returns the chosen answer text, or false when the selection
// does not name a choice.
func (r ReviewItem) SelectedText() (i18n.Text, bool) {
	if !r.Answered || r.SelectedIndex < 0 || r.SelectedIndex >= len(r.Choices) {
		return i18n.Text{}, false
	}
	return r.Choices[r.SelectedIndex], true
}

// CorrectText returns the correct answer text.
func (r ReviewItem) CorrectText() i18n.Text {
	if r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Choices) {
		return i18n.Text{}
	}
	return r.Choices[r.CorrectIndex]
}
