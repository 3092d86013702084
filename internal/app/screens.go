package app

import (
	"github.com/abhisek/orientation/internal/certificate"
	"github.com/abhisek/orientation/internal/quiz"
	"github.com/abhisek/orientation/internal/screen"
	quizscreen "github.com/abhisek/orientation/internal/screens/quiz"
	"github.com/abhisek/orientation/internal/screens/results"
	"github.com/abhisek/orientation/internal/screens/review"
	"github.com/abhisek/orientation/internal/screens/splash"
	"github.com/abhisek/orientation/internal/screens/start"
	"github.com/abhisek/orientation/internal/ui/locale"
)

// factories builds screens on demand so each one can hand off to the next
// without the screen packages importing each other.
type factories struct {
	loc      *locale.Locale
	engine   *quiz.Engine
	renderer certificate.Renderer
}

func (f *factories) splash() screen.Screen {
	return splash.New(f.loc, f.start)
}

func (f *factories) start() screen.Screen {
	return start.New(f.loc, f.engine, f.quiz)
}

func (f *factories) quiz() screen.Screen {
	return quizscreen.New(f.loc, f.engine, quizscreen.Factories{
		Results: f.results,
		Start:   f.start,
	})
}

func (f *factories) results() screen.Screen {
	return results.New(f.loc, f.engine, f.renderer, results.Factories{
		Review: f.review,
		Start:  f.start,
	})
}

func (f *factories) review() screen.Screen {
	return review.New(f.loc, f.engine.ReviewData())
}
