package engine

import (
	"errors"
	"math"
	"testing"
	"time"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(t *testing.T) (*Engine, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	e := New(Options{
		Now:        clock.Now,
		Pick:       func(n int) int { return n - 1 },
		Challenges: []string{"Read a chapter", "Solve 5 problems"},
		Location:   time.UTC,
	})
	return e, clock
}

func day(n int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		xp, level int
	}{
		{0, 1}, {699, 1}, {700, 2}, {1399, 2}, {1400, 3},
	}
	for _, c := range cases {
		if got := Level(c.xp); got != c.level {
			t.Fatalf("Level(%d)=%d, want %d", c.xp, got, c.level)
		}
	}
	if got := XPRequiredForLevel(3); got != 1400 {
		t.Fatalf("XPRequiredForLevel(3)=%d, want 1400", got)
	}
	into, span := LevelProgress(750)
	if into != 50 || span != XPPerLevel {
		t.Fatalf("LevelProgress(750)=(%d,%d), want (50,%d)", into, span, XPPerLevel)
	}
	if got := XPToNextLevel(750); got != 650 {
		t.Fatalf("XPToNextLevel(750)=%d, want 650", got)
	}
}

func TestRecordActionSumsAmountsAndDerivesLevel(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()

	sum := 0
	for i, amount := range []int{0, 15, 90, 300, 295, 1, 700, 33} {
		var res Result
		st, res = e.RecordAction(st, amount, "Read")
		sum += amount
		if st.XP != sum {
			t.Fatalf("step %d: xp=%d, want %d", i, st.XP, sum)
		}
		if st.Level() != sum/700+1 || res.LevelAfter != st.Level() {
			t.Fatalf("step %d: level=%d (result %d), want %d", i, st.Level(), res.LevelAfter, sum/700+1)
		}
		if len(st.Log) != i+1 {
			t.Fatalf("step %d: log len=%d, want %d", i, len(st.Log), i+1)
		}
	}
	if st.Log[0].Amount != 0 || st.Log[0].Label != "Read" {
		t.Fatalf("zero-amount entry = %+v", st.Log[0])
	}
}

func TestRecordActionNegativeAmountIsIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	st, _ := e.RecordAction(NewProgressState(), 40, "Read")
	st, res := e.RecordAction(st, -25, "Oops")
	if st.XP != 40 || res.XPAwarded != 0 {
		t.Fatalf("xp=%d awarded=%d, want 40 and 0", st.XP, res.XPAwarded)
	}
}

func TestRecordActionSaturatesInsteadOfOverflowing(t *testing.T) {
	e, _ := newTestEngine(t)
	st, _ := e.RecordAction(NewProgressState(), 100, "Read")

	st, res := e.RecordAction(st, math.MaxInt, "Cram")
	if st.XP != math.MaxInt {
		t.Fatalf("xp=%d, want MaxInt", st.XP)
	}
	if res.XPAwarded != math.MaxInt-100 || st.Log[len(st.Log)-1].Amount != res.XPAwarded {
		t.Fatalf("awarded=%d logged=%d", res.XPAwarded, st.Log[len(st.Log)-1].Amount)
	}

	st, res = e.RecordAction(st, 10, "More")
	if st.XP != math.MaxInt || res.XPAwarded != 0 {
		t.Fatalf("xp=%d awarded=%d at the ceiling", st.XP, res.XPAwarded)
	}

	reloaded := DecodeFields(EncodeFields(st), nil)
	if reloaded.XP != math.MaxInt {
		t.Fatalf("xp after reload=%d", reloaded.XP)
	}
}

func TestRecordActionDoesNotMutateInput(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()
	st.XP = 690

	next, _ := e.RecordAction(st, 20, "Read")
	if st.XP != 690 || len(st.Log) != 0 || len(st.Badges) != 0 {
		t.Fatalf("input mutated: %+v", st)
	}
	if !next.Badges.Has(BadgeLevelUpLegend) {
		t.Fatalf("expected Level Up Legend on the returned state")
	}
}

func TestLevelUpLegendAwardedOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()

	st, res := e.RecordAction(st, 699, "Read")
	if res.LevelUp {
		t.Fatalf("unexpected level up below 700")
	}
	st, res = e.RecordAction(st, 1, "Read")
	if !res.LevelUp || res.LevelBefore != 1 || res.LevelAfter != 2 {
		t.Fatalf("crossing 700: %+v", res)
	}
	if !containsBadge(res.NewBadges, BadgeLevelUpLegend) {
		t.Fatalf("expected Level Up Legend in new badges, got %v", res.NewBadges)
	}

	st, res = e.RecordAction(st, 700, "Read")
	if !res.LevelUp {
		t.Fatalf("expected second level up at 1400")
	}
	if containsBadge(res.NewBadges, BadgeLevelUpLegend) {
		t.Fatalf("Level Up Legend awarded twice")
	}
	if !st.Badges.Has(BadgeLevelUpLegend) {
		t.Fatalf("badge missing after second level up")
	}
}

func TestMilestoneSignalsOncePerCall(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()

	st, res := e.RecordAction(st, 99, "Read")
	if res.Milestone {
		t.Fatalf("unexpected milestone at 99")
	}
	// 99 -> 450 crosses 100, 200, 300 and 400.
	st, res = e.RecordAction(st, 351, "Read")
	if !res.Milestone {
		t.Fatalf("expected milestone crossing several multiples")
	}
	_, res = e.RecordAction(st, 10, "Read")
	if res.Milestone {
		t.Fatalf("unexpected milestone 450 -> 460")
	}
}

func TestLevelUpAndMilestoneBothFire(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()
	st.XP = 650

	st, res := e.RecordAction(st, 60, "Read")
	if st.XP != 710 {
		t.Fatalf("xp=%d, want 710", st.XP)
	}
	if !res.LevelUp || !res.Milestone {
		t.Fatalf("want level up and milestone, got %+v", res)
	}
	if res.LevelBefore != 1 || res.LevelAfter != 2 {
		t.Fatalf("level %d -> %d, want 1 -> 2", res.LevelBefore, res.LevelAfter)
	}
}

func TestPageTurnerAwardedOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()

	st, _ = e.RecordAction(st, 100, "Read")
	if len(st.Badges) != 1 || !st.Badges.Has(BadgePageTurner) {
		t.Fatalf("badges=%v, want only Page Turner", st.Badges.Sorted())
	}
	st, res := e.RecordAction(st, 50, "Read")
	if len(st.Badges) != 1 || len(res.NewBadges) != 0 {
		t.Fatalf("badges=%v new=%v after 150 XP", st.Badges.Sorted(), res.NewBadges)
	}
}

func TestAdvanceDayStreaks(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()

	st, res := e.AdvanceDay(st, day(0))
	if st.Streak != 1 || !st.LastActiveDate.Equal(day(0)) || !res.Changed {
		t.Fatalf("first run: streak=%d last=%v changed=%v", st.Streak, st.LastActiveDate, res.Changed)
	}

	same, res := e.AdvanceDay(st, day(0).Add(15*time.Hour))
	if same.Streak != 1 || res.Changed {
		t.Fatalf("same day: streak=%d changed=%v", same.Streak, res.Changed)
	}

	st, _ = e.AdvanceDay(st, day(1))
	st, _ = e.AdvanceDay(st, day(2))
	if st.Streak != 3 {
		t.Fatalf("streak=%d, want 3", st.Streak)
	}

	st, res = e.AdvanceDay(st, day(4))
	if st.Streak != 1 || !res.StreakBroken {
		t.Fatalf("gap of 2 days: streak=%d broken=%v", st.Streak, res.StreakBroken)
	}

	st, _ = e.AdvanceDay(st, day(5))
	st, _ = e.AdvanceDay(st, day(3))
	if st.Streak != 1 || !st.LastActiveDate.Equal(day(3)) {
		t.Fatalf("clock went back: streak=%d last=%v", st.Streak, st.LastActiveDate)
	}
}

func TestAdvanceDayIssuesChallengeOncePerDay(t *testing.T) {
	picks := 0
	e := New(Options{
		Pick: func(n int) int {
			picks++
			return picks % n
		},
		Challenges: []string{"A", "B"},
		Location:   time.UTC,
	})
	st, res := e.AdvanceDay(NewProgressState(), day(0))
	if !res.NewChallenge || st.DailyChallenge != "B" {
		t.Fatalf("challenge=%q new=%v", st.DailyChallenge, res.NewChallenge)
	}
	st.DailyChallengeCompleted = true

	st, res = e.AdvanceDay(st, day(0))
	if res.NewChallenge || picks != 1 || !st.DailyChallengeCompleted {
		t.Fatalf("same day reissued challenge (picks=%d)", picks)
	}

	st, res = e.AdvanceDay(st, day(1))
	if !res.NewChallenge || st.DailyChallenge != "A" || st.DailyChallengeCompleted {
		t.Fatalf("next day: challenge=%q completed=%v", st.DailyChallenge, st.DailyChallengeCompleted)
	}
}

func TestStreakMasterAndBonusWindow(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()
	for i := 0; i < 6; i++ {
		st, _ = e.AdvanceDay(st, day(i))
	}
	if _, res := e.ClaimStreakBonus(st); res.Outcome != OutcomeBonusUnavailable || res.XPAwarded != 0 {
		t.Fatalf("streak 6 claim: %+v", res)
	}

	st, dres := e.AdvanceDay(st, day(6))
	if st.Streak != 7 || !containsBadge(dres.NewBadges, BadgeStreakMaster) {
		t.Fatalf("streak=%d new badges=%v", st.Streak, dres.NewBadges)
	}

	st, res := e.ClaimStreakBonus(st)
	if res.Outcome != OutcomeBonusClaimed || res.XPAwarded != StreakBonusXP || st.XP != 50 {
		t.Fatalf("claim: %+v xp=%d", res, st.XP)
	}
	st, res = e.ClaimStreakBonus(st)
	if res.Outcome != OutcomeBonusAlreadyClaimed || st.XP != 50 {
		t.Fatalf("second claim: %+v xp=%d", res, st.XP)
	}

	// Same window while the streak keeps going.
	st, _ = e.AdvanceDay(st, day(7))
	if _, res = e.ClaimStreakBonus(st); res.Outcome != OutcomeBonusAlreadyClaimed {
		t.Fatalf("streak 8 claim: %+v", res)
	}

	st, _ = e.AdvanceDay(st, day(10))
	if st.StreakBonusClaimed {
		t.Fatalf("claimed flag should clear when the bonus becomes unavailable")
	}
	if _, res = e.ClaimStreakBonus(st); res.Outcome != OutcomeBonusUnavailable {
		t.Fatalf("after reset claim: %+v", res)
	}

	for i := 11; i <= 16; i++ {
		st, _ = e.AdvanceDay(st, day(i))
	}
	if st.Streak != 7 {
		t.Fatalf("streak=%d, want 7", st.Streak)
	}
	st, res = e.ClaimStreakBonus(st)
	if res.Outcome != OutcomeBonusClaimed || st.XP != 100 {
		t.Fatalf("new window claim: %+v xp=%d", res, st.XP)
	}
}

func TestCompleteDailyChallenge(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, _, err := e.CompleteDailyChallenge(NewProgressState()); !errors.Is(err, ErrNoChallenge) {
		t.Fatalf("err=%v, want ErrNoChallenge", err)
	}

	st, _ := e.AdvanceDay(NewProgressState(), day(0))
	st, res, err := e.CompleteDailyChallenge(st)
	if err != nil {
		t.Fatalf("CompleteDailyChallenge: %v", err)
	}
	if res.Outcome != OutcomeChallengeAccepted || st.XP != DailyChallengeXP || !st.DailyChallengeCompleted {
		t.Fatalf("res=%+v xp=%d", res, st.XP)
	}

	again, res, err := e.CompleteDailyChallenge(st)
	if !errors.Is(err, ErrChallengeAlreadyDone) || res.Outcome != OutcomeChallengeAlreadyDone {
		t.Fatalf("second completion err=%v outcome=%s", err, res.Outcome)
	}
	if again.XP != DailyChallengeXP || len(again.Log) != 1 {
		t.Fatalf("rejected completion changed state: xp=%d log=%d", again.XP, len(again.Log))
	}

	st, _ = e.AdvanceDay(st, day(1))
	if _, _, err := e.CompleteDailyChallenge(st); err != nil {
		t.Fatalf("next day completion: %v", err)
	}
}

func TestMood(t *testing.T) {
	e, _ := newTestEngine(t)
	if got := PreviewMood(MoodGreat); got != MaxMoodXP {
		t.Fatalf("PreviewMood(great)=%d", got)
	}
	if got := PreviewMood(Mood("ecstatic")); got != 0 {
		t.Fatalf("PreviewMood(unknown)=%d, want 0", got)
	}
	if _, err := ParseMood("Bored"); !errors.Is(err, ErrUnknownMood) {
		t.Fatalf("ParseMood(Bored) err=%v", err)
	}
	m, err := ParseMood(" Good ")
	if err != nil || m != MoodGood {
		t.Fatalf("ParseMood(Good)=%q,%v", m, err)
	}

	st := NewProgressState()
	st, res := e.SubmitMood(st, 0)
	if res.Outcome != OutcomeMoodSkipped || !res.MoodCleared || st.XP != 0 || len(st.Log) != 0 {
		t.Fatalf("zero mood: %+v", res)
	}

	st, res = e.SubmitMood(st, PreviewMood(MoodGood))
	if st.XP != 7 || st.Badges.Has(BadgeMoodMaestro) || !res.MoodCleared {
		t.Fatalf("good mood: xp=%d badges=%v", st.XP, st.Badges.Sorted())
	}
	st, res = e.SubmitMood(st, PreviewMood(MoodGreat))
	if !containsBadge(res.NewBadges, BadgeMoodMaestro) || st.XP != 17 {
		t.Fatalf("great mood: xp=%d new=%v", st.XP, res.NewBadges)
	}
	_, res = e.SubmitMood(st, MaxMoodXP)
	if len(res.NewBadges) != 0 {
		t.Fatalf("Mood Maestro awarded twice")
	}
}

func TestSideQuests(t *testing.T) {
	e, _ := newTestEngine(t)
	st := NewProgressState()

	same, res, err := e.CompleteSideQuest(st, "   ")
	if !errors.Is(err, ErrEmptySideQuest) || res.Outcome != OutcomeValidationFailed {
		t.Fatalf("blank side quest err=%v outcome=%s", err, res.Outcome)
	}
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "side quest" {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if same.SideQuestCount != 0 || same.XP != 0 {
		t.Fatalf("rejected side quest changed state")
	}

	for i := 0; i < SideQuestHeroCount; i++ {
		st, res, err = e.CompleteSideQuest(st, "Tidy desk")
		if err != nil {
			t.Fatalf("side quest %d: %v", i, err)
		}
		if i < SideQuestHeroCount-1 && st.Badges.Has(BadgeSideQuestHero) {
			t.Fatalf("Side Quest Hero too early at %d", i+1)
		}
	}
	if st.SideQuestCount != SideQuestHeroCount || st.XP != SideQuestHeroCount*SideQuestXP {
		t.Fatalf("count=%d xp=%d", st.SideQuestCount, st.XP)
	}
	if !containsBadge(res.NewBadges, BadgeSideQuestHero) {
		t.Fatalf("expected Side Quest Hero on the 50th quest, got %v", res.NewBadges)
	}
	if st.Log[len(st.Log)-1].Label != "Side quest: Tidy desk" {
		t.Fatalf("label=%q", st.Log[len(st.Log)-1].Label)
	}
}

func TestTimedTaskLifecycle(t *testing.T) {
	e, clock := newTestEngine(t)
	st := NewProgressState()

	if _, _, err := e.CompleteTimedTask(st, TaskHandle{}); !errors.Is(err, ErrNoTimedTask) {
		t.Fatalf("complete idle err=%v", err)
	}

	st, h, err := e.StartTimedTask(st)
	if err != nil || !st.TaskRunning() {
		t.Fatalf("start: err=%v running=%v", err, st.TaskRunning())
	}
	if _, h2, err := e.StartTimedTask(st); !errors.Is(err, ErrTaskInFlight) || h2.ID != h.ID {
		t.Fatalf("second start err=%v", err)
	}
	if _, _, err := e.CompleteTimedTask(st, TaskHandle{ID: e.newID()}); !errors.Is(err, ErrTaskMismatch) {
		t.Fatalf("mismatched handle err=%v", err)
	}

	clock.Advance(TimedTaskLimit)
	st, res, err := e.CompleteTimedTask(st, h)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Outcome != OutcomeTaskCompleted || res.XPAwarded != TimedTaskXP || !st.Badges.Has(BadgeTimeLord) {
		t.Fatalf("fast task: %+v", res)
	}
	if st.TaskRunning() {
		t.Fatalf("task should be cleared")
	}

	st, h, _ = e.StartTimedTask(st)
	clock.Advance(TimedTaskLimit + time.Second)
	st, res, err = e.CompleteTimedTask(st, h)
	if err != nil {
		t.Fatalf("complete slow: %v", err)
	}
	if res.Outcome != OutcomeTaskTooSlow || res.XPAwarded != 0 || st.XP != TimedTaskXP {
		t.Fatalf("slow task: %+v xp=%d", res, st.XP)
	}
	if st.TaskRunning() {
		t.Fatalf("slow task should still clear the timer")
	}
}

func TestTimedTaskClockGoingBackwardsEarnsNothing(t *testing.T) {
	e, clock := newTestEngine(t)
	st, h, err := e.StartTimedTask(NewProgressState())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	clock.Advance(-time.Hour)
	st, res, err := e.CompleteTimedTask(st, h)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Outcome != OutcomeTaskTooSlow || res.XPAwarded != 0 || st.Badges.Has(BadgeTimeLord) {
		t.Fatalf("backwards clock: %+v", res)
	}
	if st.TaskRunning() {
		t.Fatalf("timer should be idle")
	}
}

func TestBadgeCatalog(t *testing.T) {
	e, _ := newTestEngine(t)
	st, _ := e.RecordAction(NewProgressState(), 120, "Read")

	cat := BadgeCatalog(st)
	if len(cat) != len(AllBadges) {
		t.Fatalf("catalog size=%d", len(cat))
	}
	for _, b := range cat {
		if b.Earned != (b.Badge == BadgePageTurner) {
			t.Fatalf("badge %s earned=%v", b.Badge, b.Earned)
		}
	}
	if CountEarned(st) != 1 {
		t.Fatalf("CountEarned=%d", CountEarned(st))
	}
}

func containsBadge(list []Badge, b Badge) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}
