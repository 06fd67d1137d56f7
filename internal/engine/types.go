package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Badge string

const (
	BadgePageTurner    Badge = "Page Turner"
	BadgeSideQuestHero Badge = "Side Quest Hero"
	BadgeStreakMaster  Badge = "Streak Master"
	BadgeLevelUpLegend Badge = "Level Up Legend"
	BadgeMoodMaestro   Badge = "Mood Maestro"
	BadgeTimeLord      Badge = "Time Lord"
)

// AllBadges lists every badge in display order.
var AllBadges = []Badge{
	BadgePageTurner,
	BadgeSideQuestHero,
	BadgeStreakMaster,
	BadgeLevelUpLegend,
	BadgeMoodMaestro,
	BadgeTimeLord,
}

func (b Badge) IsValid() bool {
	for _, known := range AllBadges {
		if b == known {
			return true
		}
	}
	return false
}

// BadgeSet holds earned badges. Each badge appears at most once.
type BadgeSet map[Badge]struct{}

func (s BadgeSet) Has(b Badge) bool {
	_, ok := s[b]
	return ok
}

// Sorted returns the badges in AllBadges order.
func (s BadgeSet) Sorted() []Badge {
	out := make([]Badge, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return badgeRank(out[i]) < badgeRank(out[j]) })
	return out
}

func badgeRank(b Badge) int {
	for i, known := range AllBadges {
		if b == known {
			return i
		}
	}
	return len(AllBadges)
}

// ActionLogEntry is one XP-bearing action. Entries are append-only.
type ActionLogEntry struct {
	ID        uuid.UUID
	Label     string
	Amount    int
	Timestamp time.Time
}

// TaskHandle identifies the timed task in flight.
type TaskHandle struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

// ProgressState is the whole persisted progression record.
// Dates are calendar dates stored as midnight UTC; the zero time means "never".
type ProgressState struct {
	XP                      int
	Streak                  int
	LastActiveDate          time.Time
	Badges                  BadgeSet
	SideQuestCount          int
	DailyChallenge          string
	ChallengeDate           time.Time
	DailyChallengeCompleted bool
	StreakBonusClaimed      bool
	ActiveTask              *TaskHandle
	Log                     []ActionLogEntry
}

// NewProgressState returns the first-run state.
func NewProgressState() ProgressState {
	return ProgressState{
		Streak: 1,
		Badges: BadgeSet{},
	}
}

// Clone returns a deep copy so transitions never alias their input.
func (s ProgressState) Clone() ProgressState {
	cp := s
	cp.Badges = make(BadgeSet, len(s.Badges))
	for b := range s.Badges {
		cp.Badges[b] = struct{}{}
	}
	if s.ActiveTask != nil {
		h := *s.ActiveTask
		cp.ActiveTask = &h
	}
	if s.Log != nil {
		cp.Log = make([]ActionLogEntry, len(s.Log))
		copy(cp.Log, s.Log)
	}
	return cp
}

func (s ProgressState) Level() int {
	return Level(s.XP)
}

// TaskRunning reports whether a timed task is in flight.
func (s ProgressState) TaskRunning() bool {
	return s.ActiveTask != nil
}

// Outcome names what an operation did, for the presentation layer to render.
type Outcome string

const (
	OutcomeRecorded             Outcome = "recorded"
	OutcomeChallengeAccepted    Outcome = "challenge-accepted"
	OutcomeChallengeAlreadyDone Outcome = "challenge-already-done"
	OutcomeBonusClaimed         Outcome = "bonus-claimed"
	OutcomeBonusUnavailable     Outcome = "bonus-unavailable"
	OutcomeBonusAlreadyClaimed  Outcome = "bonus-already-claimed"
	OutcomeMoodRecorded         Outcome = "mood-recorded"
	OutcomeMoodSkipped          Outcome = "mood-skipped"
	OutcomeSideQuestCompleted   Outcome = "side-quest-completed"
	OutcomeTaskStarted          Outcome = "task-started"
	OutcomeTaskCompleted        Outcome = "task-completed"
	OutcomeTaskTooSlow          Outcome = "task-too-slow"
	OutcomeValidationFailed     Outcome = "validation-failed"
)

// Result describes the effects of one engine operation.
type Result struct {
	Outcome     Outcome
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	// Milestone is set when the action crossed at least one RewardInterval boundary.
	Milestone bool
	NewBadges []Badge
	Logged    []ActionLogEntry
	// Elapsed is set by CompleteTimedTask.
	Elapsed time.Duration
	// MoodCleared tells the presentation layer to drop its pending mood selection.
	MoodCleared bool
	// Day is what rolling the session over to today changed before the
	// operation ran. Zero when the date had not moved.
	Day DayResult
}

// DayResult describes what AdvanceDay changed.
type DayResult struct {
	Changed      bool
	Streak       int
	StreakBroken bool
	NewChallenge bool
	NewBadges    []Badge
}
