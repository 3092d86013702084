package quiz

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/orientation/internal/grading"
	"github.com/abhisek/orientation/internal/questionbank"
)

// Field names reported by ValidationError.
const (
	FieldStudentName = "student_name"
	FieldProgram     = "program"
)

type startInput struct {
	StudentName string `json:"student_name" validate:"required"`
	Program     string `json:"program" validate:"required"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithIDGenerator replaces the session ID source.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// Engine owns the single live quiz session. It is not safe for concurrent
// use; the TUI drives it from its update loop.
type Engine struct {
	bank     *questionbank.Bank
	state    State
	session  Session
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
	log      *zap.Logger
}

// NewEngine returns an engine reading questions from bank.
func NewEngine(bank *questionbank.Bank, opts ...Option) *Engine {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	e := &Engine{
		bank:     bank,
		validate: v,
		now:      time.Now,
		newID:    uuid.NewString,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bank returns the question bank.
func (e *Engine) Bank() *questionbank.Bank {
	return e.bank
}

// Start begins a new session, discarding any live one.
func (e *Engine) Start(studentName, program string) error {
	in := startInput{
		StudentName: strings.TrimSpace(studentName),
		Program:     strings.TrimSpace(program),
	}
	if err := e.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}

	if e.bank.Len() == 0 {
		return &DataIntegrityError{Reason: "question bank is empty"}
	}

	if e.state == InProgress {
		e.log.Info("discarding live session", zap.String("session_id", e.session.ID))
	}

	e.session = Session{
		ID:          e.newID(),
		StudentName: in.StudentName,
		Program:     in.Program,
		StartTime:   e.now(),
	}
	e.state = InProgress

	e.log.Info("quiz started",
		zap.String("session_id", e.session.ID),
		zap.String("program", in.Program),
		zap.Int("questions", e.bank.Len()),
	)
	return nil
}

// CurrentQuestion returns the question at the current index. The bool is
// false once the bank is exhausted or no quiz is running.
func (e *Engine) CurrentQuestion() (questionbank.Question, bool) {
	if e.state != InProgress {
		return questionbank.Question{}, false
	}
	return e.bank.At(e.session.CurrentIndex)
}

// Answered reports whether the current question already has an answer.
func (e *Engine) Answered() bool {
	return e.state == InProgress && len(e.session.Answers) > e.session.CurrentIndex
}

// SubmitAnswer records the answer for the current question. Indices outside
// the choice range are accepted and scored as incorrect.
func (e *Engine) SubmitAnswer(selectedIndex int) (Feedback, error) {
	q, ok := e.CurrentQuestion()
	if !ok {
		return Feedback{}, ErrNotInProgress
	}
	if e.Answered() {
		return Feedback{}, ErrAlreadyAnswered
	}

	correct := q.IsCorrect(selectedIndex)
	e.session.Answers = append(e.session.Answers, AnswerRecord{
		QuestionID:    q.ID,
		SelectedIndex: selectedIndex,
		IsCorrect:     correct,
		Timestamp:     e.now(),
	})
	if correct {
		e.session.Score++
	}

	e.log.Debug("answer submitted",
		zap.String("session_id", e.session.ID),
		zap.Int("question_id", q.ID),
		zap.Int("selected", selectedIndex),
		zap.Bool("correct", correct),
	)

	return Feedback{
		Correct:      correct,
		Message:      q.Feedback(correct),
		CorrectIndex: q.CorrectIndex,
	}, nil
}

// Advance moves to the next question. It returns false when the last
// question was passed and the quiz is now completed.
func (e *Engine) Advance() (bool, error) {
	if e.state != InProgress {
		return false, ErrNotInProgress
	}
	if !e.Answered() {
		return false, ErrNotAnswered
	}

	e.session.CurrentIndex++
	if e.session.CurrentIndex < e.bank.Len() {
		return true, nil
	}

	e.session.EndTime = e.now()
	e.state = Completed
	e.log.Info("quiz completed",
		zap.String("session_id", e.session.ID),
		zap.Int("score", e.session.Score),
		zap.Int("total", e.bank.Len()),
		zap.Duration("elapsed", e.session.EndTime.Sub(e.session.StartTime)),
	)
	return false, nil
}

// Reset discards the session and returns to NotStarted.
func (e *Engine) Reset() {
	if e.state != NotStarted {
		e.log.Info("quiz reset", zap.String("session_id", e.session.ID))
	}
	e.session = Session{}
	e.state = NotStarted
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Session returns a copy of the live session.
func (e *Engine) Session() Session {
	s := e.session
	s.Answers = make([]AnswerRecord, len(e.session.Answers))
	copy(s.Answers, e.session.Answers)
	return s
}

// Progress returns the 1-based question number and the total.
func (e *Engine) Progress() Progress {
	total := e.bank.Len()
	if e.state == NotStarted {
		return Progress{Total: total}
	}
	n := e.session.CurrentIndex + 1
	if n > total {
		n = total
	}
	return Progress{Number: n, Total: total, Answered: len(e.session.Answers)}
}

// Results grades the completed session.
func (e *Engine) Results() (grading.Results, error) {
	if e.state != Completed {
		return grading.Results{}, ErrNotCompleted
	}
	return grading.Calculate(e.session.Score, e.bank.Len(), e.session.StartTime, e.session.EndTime), nil
}

// ReviewData returns every question in bank order with the answer given.
// Questions without an answer are marked unanswered.
func (e *Engine) ReviewData() []ReviewItem {
	byID := make(map[int]AnswerRecord, len(e.session.Answers))
	for _, a := range e.session.Answers {
		byID[a.QuestionID] = a
	}

	qs := e.bank.All()
	items := make([]ReviewItem, 0, len(qs))
	for i, q := range qs {
		item := ReviewItem{
			QuestionID:    q.ID,
			Number:        i + 1,
			Prompt:        q.Prompt,
			Choices:       q.Choices,
			SelectedIndex: -1,
			CorrectIndex:  q.CorrectIndex,
		}
		if a, ok := byID[q.ID]; ok && e.state != NotStarted {
			item.SelectedIndex = a.SelectedIndex
			item.IsCorrect = a.IsCorrect
			item.Answered = true
		}
		items = append(items, item)
	}
	return items
}
