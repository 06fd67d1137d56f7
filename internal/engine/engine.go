package engine

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Options wires the engine's outside capabilities. Zero values fall back to
// the wall clock, math/rand, the built-in challenges and the local zone.
type Options struct {
	Now        func() time.Time
	Pick       func(n int) int
	NewID      func() uuid.UUID
	Challenges []string
	Location   *time.Location
}

// Engine applies progression rules to a ProgressState. It holds no
// progress of its own; every operation takes a state and returns a new one.
type Engine struct {
	now        func() time.Time
	pick       func(n int) int
	newID      func() uuid.UUID
	challenges []string
	loc        *time.Location
}

func New(opts Options) *Engine {
	e := &Engine{
		now:        opts.Now,
		pick:       opts.Pick,
		newID:      opts.NewID,
		challenges: append([]string(nil), opts.Challenges...),
		loc:        opts.Location,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.pick == nil {
		e.pick = rand.IntN
	}
	if e.newID == nil {
		e.newID = uuid.New
	}
	if len(e.challenges) == 0 {
		e.challenges = append([]string(nil), DefaultChallenges...)
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	return e
}

// Challenges returns the catalog daily challenges are drawn from.
func (e *Engine) Challenges() []string {
	return append([]string(nil), e.challenges...)
}

// Now returns the engine clock's current instant.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Today returns the current calendar date in the engine's location.
func (e *Engine) Today() time.Time {
	return CalendarDate(e.now().In(e.loc))
}

// DefaultChallenges is used when no catalog is configured.
var DefaultChallenges = []string{
	"Read 20 pages of your current book",
	"Solve 5 practice problems",
	"Summarize a chapter in your own words",
	"Review yesterday's notes for 15 minutes",
	"Make 10 flashcards and quiz yourself",
	"Watch one lecture and write 3 takeaways",
	"Teach a concept out loud for 5 minutes",
	"Study for 25 minutes with no distractions",
}

// CalendarDate strips the clock from t, keeping the date as seen in t's own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns b - a in whole calendar days.
func daysBetween(a, b time.Time) int {
	a, b = CalendarDate(a), CalendarDate(b)
	return int(b.Sub(a).Hours() / 24)
}
