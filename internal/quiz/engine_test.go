package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/orientation/internal/grading"
	"github.com/abhisek/orientation/internal/i18n"
	"github.com/abhisek/orientation/internal/questionbank"
)

// fakeClock advances by step on every call.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func newTestEngine(t *testing.T, n int) (*Engine, *fakeClock) {
	t.Helper()
	qs := make([]questionbank.Question, n)
	for i := range qs {
		qs[i] = questionbank.Question{
			ID:     i + 1,
			Prompt: i18n.Plain("prompt"),
			Choices: []i18n.Text{
				i18n.Plain("a"), i18n.Plain("b"), i18n.Plain("c"), i18n.Plain("d"),
			},
			CorrectIndex:      0,
			FeedbackCorrect:   i18n.Plain("right"),
			FeedbackIncorrect: i18n.Plain("wrong"),
		}
	}
	bank, err := questionbank.New(qs)
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), step: time.Second}
	ids := 0
	e := NewEngine(bank,
		WithClock(clock.Now),
		WithIDGenerator(func() string { ids++; return "session-" + string(rune('0'+ids)) }),
	)
	return e, clock
}

func answerAll(t *testing.T, e *Engine, wrong map[int]bool) {
	t.Helper()
	for {
		_, ok := e.CurrentQuestion()
		if !ok {
			return
		}
		sel := 0
		if wrong[e.Session().CurrentIndex] {
			sel = 1
		}
		_, err := e.SubmitAnswer(sel)
		require.NoError(t, err)
		_, err = e.Advance()
		require.NoError(t, err)
	}
}

func TestStartValidation(t *testing.T) {
	tests := []struct {
		name, student, program string
		wantFields             []string
	}{
		{"both empty", "", "", []string{FieldStudentName, FieldProgram}},
		{"blank name", "   ", "medical-assistant", []string{FieldStudentName}},
		{"no program", "Jane", "", []string{FieldProgram}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, 3)
			err := e.Start(tt.student, tt.program)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.Fields)
			assert.Equal(t, NotStarted, e.State(), "state must not change")
		})
	}
}

func TestStartEmptyBank(t *testing.T) {
	bank, err := questionbank.New(nil)
	require.NoError(t, err)
	e := NewEngine(bank)

	err = e.Start("Jane", "medical-assistant")
	var derr *DataIntegrityError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, NotStarted, e.State())
}

func TestStartInitializesSession(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	require.NoError(t, e.Start("  Jane Doe ", "medical-assistant"))

	s := e.Session()
	assert.Equal(t, InProgress, e.State())
	assert.Equal(t, "Jane Doe", s.StudentName)
	assert.Equal(t, "medical-assistant", s.Program)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, s.Answers)
	assert.False(t, s.StartTime.IsZero())
	assert.True(t, s.EndTime.IsZero())
	assert.NotEmpty(t, s.ID)
}

func TestStartWhileLiveDiscardsSession(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	require.NoError(t, e.Start("Jane", "p"))
	_, err := e.SubmitAnswer(0)
	require.NoError(t, err)
	firstID := e.Session().ID

	require.NoError(t, e.Start("John", "p"))
	s := e.Session()
	assert.NotEqual(t, firstID, s.ID)
	assert.Equal(t, "John", s.StudentName)
	assert.Empty(t, s.Answers)
	assert.Equal(t, 0, s.Score)
}

func TestSubmitAnswerBookkeeping(t *testing.T) {
	e, _ := newTestEngine(t, 5)
	require.NoError(t, e.Start("Jane", "p"))

	selections := []int{0, 2, 0, -1}
	for k, sel := range selections {
		fb, err := e.SubmitAnswer(sel)
		require.NoError(t, err)
		assert.Equal(t, sel == 0, fb.Correct)
		assert.Equal(t, 0, fb.CorrectIndex)

		s := e.Session()
		assert.Len(t, s.Answers, k+1, "one record per submission")

		more, err := e.Advance()
		require.NoError(t, err)
		assert.True(t, more)

		s = e.Session()
		assert.Equal(t, k+1, s.CurrentIndex)
		assert.Len(t, s.Answers, s.CurrentIndex, "answers match index at question boundary")
	}

	s := e.Session()
	correct := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	assert.Equal(t, correct, s.Score)
	assert.Equal(t, 2, s.Score)
}

func TestSubmitAnswerFeedbackMessage(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	require.NoError(t, e.Start("Jane", "p"))

	fb, err := e.SubmitAnswer(3)
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, "wrong", fb.Message.Resolve(i18n.English))
}

func TestSubmitAnswerOutOfRangeIsIncorrect(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	require.NoError(t, e.Start("Jane", "p"))

	fb, err := e.SubmitAnswer(42)
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, 0, e.Session().Score)
}

func TestSubmitAnswerTwiceRejected(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	require.NoError(t, e.Start("Jane", "p"))

	_, err := e.SubmitAnswer(0)
	require.NoError(t, err)
	_, err = e.SubmitAnswer(0)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	s := e.Session()
	assert.Len(t, s.Answers, 1)
	assert.Equal(t, 1, s.Score)
}

func TestSubmitAnswerWrongState(t *testing.T) {
	e, _ := newTestEngine(t, 1)
	_, err := e.SubmitAnswer(0)
	assert.ErrorIs(t, err, ErrNotInProgress)

	require.NoError(t, e.Start("Jane", "p"))
	answerAll(t, e, nil)
	_, err = e.SubmitAnswer(0)
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	require.NoError(t, e.Start("Jane", "p"))

	_, err := e.Advance()
	assert.ErrorIs(t, err, ErrNotAnswered)
	assert.Equal(t, 0, e.Session().CurrentIndex)
}

func TestAdvanceCompletesQuiz(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	require.NoError(t, e.Start("Jane", "p"))

	_, err := e.SubmitAnswer(0)
	require.NoError(t, err)
	more, err := e.Advance()
	require.NoError(t, err)
	assert.True(t, more)

	_, err = e.SubmitAnswer(0)
	require.NoError(t, err)
	more, err = e.Advance()
	require.NoError(t, err)
	assert.False(t, more)

	assert.Equal(t, Completed, e.State())
	assert.False(t, e.Session().EndTime.IsZero())
	_, ok := e.CurrentQuestion()
	assert.False(t, ok)

	_, err = e.Advance()
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestResultsBeforeCompletion(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	_, err := e.Results()
	assert.ErrorIs(t, err, ErrNotCompleted)

	require.NoError(t, e.Start("Jane", "p"))
	_, err = e.Results()
	assert.True(t, errors.Is(err, ErrNotCompleted))
}

func TestRestartAfterPartialQuiz(t *testing.T) {
	e, _ := newTestEngine(t, 25)
	require.NoError(t, e.Start("Jane", "p"))
	for i := 0; i < 3; i++ {
		_, err := e.SubmitAnswer(0)
		require.NoError(t, err)
		_, err = e.Advance()
		require.NoError(t, err)
	}

	e.Reset()
	assert.Equal(t, NotStarted, e.State())
	s := e.Session()
	assert.Empty(t, s.Answers)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, s.StudentName)

	require.NoError(t, e.Start("Jane", "p"))
	q, ok := e.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
}

func TestResetIsSafeAnywhere(t *testing.T) {
	e, _ := newTestEngine(t, 1)
	e.Reset()
	assert.Equal(t, NotStarted, e.State())

	require.NoError(t, e.Start("Jane", "p"))
	answerAll(t, e, nil)
	e.Reset()
	assert.Equal(t, NotStarted, e.State())
}

func TestFullRunMedicalAssistant(t *testing.T) {
	e, _ := newTestEngine(t, 25)
	require.NoError(t, e.Start("Jane Doe", "Medical Assistant"))

	answerAll(t, e, map[int]bool{4: true, 17: true})

	r, err := e.Results()
	require.NoError(t, err)
	assert.Equal(t, 23, r.Score)
	assert.Equal(t, 25, r.Total)
	assert.Equal(t, 92, r.Percentage)
	assert.Equal(t, grading.GradeA, r.Grade)
	assert.True(t, r.Passing)

	review := e.ReviewData()
	require.Len(t, review, 25)
	for i, item := range review {
		assert.Equal(t, i+1, item.QuestionID)
		assert.Equal(t, i+1, item.Number)
		assert.True(t, item.Answered)
	}
	assert.False(t, review[4].IsCorrect)
	assert.Equal(t, 1, review[4].SelectedIndex)
	sel, ok := review[4].SelectedText()
	require.True(t, ok)
	assert.Equal(t, "b", sel.Resolve(i18n.English))
	assert.Equal(t, "a", review[4].CorrectText().Resolve(i18n.English))
}

func TestResultsTimeSpent(t *testing.T) {
	e, clock := newTestEngine(t, 1)
	clock.step = 0
	require.NoError(t, e.Start("Jane", "p"))
	clock.t = clock.t.Add(65 * time.Second)

	_, err := e.SubmitAnswer(0)
	require.NoError(t, err)
	_, err = e.Advance()
	require.NoError(t, err)

	r, err := e.Results()
	require.NoError(t, err)
	assert.Equal(t, "1:05", r.TimeFormatted)
}

func TestProgress(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	assert.Equal(t, Progress{Total: 3}, e.Progress())

	require.NoError(t, e.Start("Jane", "p"))
	assert.Equal(t, Progress{Number: 1, Total: 3}, e.Progress())

	_, err := e.SubmitAnswer(0)
	require.NoError(t, err)
	p := e.Progress()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.Answered)
	assert.InDelta(t, 1.0/3.0, p.Fraction(), 1e-9)
}

func TestReviewDataUnanswered(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	require.NoError(t, e.Start("Jane", "p"))
	_, err := e.SubmitAnswer(0)
	require.NoError(t, err)

	review := e.ReviewData()
	require.Len(t, review, 3)
	assert.True(t, review[0].Answered)
	assert.False(t, review[1].Answered)
	assert.Equal(t, -1, review[1].SelectedIndex)
	_, ok := review[1].SelectedText()
	assert.False(t, ok)
}

func TestSessionReturnsCopy(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	require.NoError(t, e.Start("Jane", "p"))
	_, err := e.SubmitAnswer(0)
	require.NoError(t, err)

	s := e.Session()
	s.Answers[0].IsCorrect = false
	assert.True(t, e.Session().Answers[0].IsCorrect)
}

func TestLoadBankWrapsErrors(t *testing.T) {
	_, err := LoadBank("/nonexistent/bank.json")
	var derr *DataIntegrityError
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, derr.Reason, "/nonexistent/bank.json")

	b, err := LoadBank("")
	require.NoError(t, err)
	assert.Equal(t, 25, b.Len())
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid input: missing student_name, program",
		(&ValidationError{Fields: []string{FieldStudentName, FieldProgram}}).Error())
	assert.Equal(t, "certificate renderer is not available",
		(&MissingCollaboratorError{Name: "certificate renderer"}).Error())

	inner := errors.New("boom")
	derr := &DataIntegrityError{Reason: "load", Err: inner}
	assert.ErrorIs(t, derr, inner)
}
