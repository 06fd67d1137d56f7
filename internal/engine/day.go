package engine

import "time"

// AdvanceDay moves the state to today's calendar date. Call it before any
// other operation whenever the date may have moved; it is a no-op on the
// same date.
func (e *Engine) AdvanceDay(st ProgressState, today time.Time) (ProgressState, DayResult) {
	today = CalendarDate(today)
	next := st.Clone()
	res := DayResult{Streak: st.Streak}

	if st.LastActiveDate.IsZero() || !st.LastActiveDate.Equal(today) {
		if !st.LastActiveDate.IsZero() && daysBetween(st.LastActiveDate, today) == 1 {
			next.Streak++
		} else {
			res.StreakBroken = !st.LastActiveDate.IsZero() && next.Streak > 1
			next.Streak = 1
		}
		next.LastActiveDate = today
		res.Changed = true
	}
	if next.Streak < 1 {
		next.Streak = 1
	}

	// Once the bonus is gone the window closes; the next window starts unclaimed.
	if StreakBonusAmount(next.Streak) == 0 && next.StreakBonusClaimed {
		next.StreakBonusClaimed = false
		res.Changed = true
	}

	if next.ChallengeDate.IsZero() || !next.ChallengeDate.Equal(today) {
		next.DailyChallenge = e.pickChallenge()
		next.ChallengeDate = today
		next.DailyChallengeCompleted = false
		res.NewChallenge = true
		res.Changed = true
	}

	res.NewBadges = evaluateBadges(&next)
	if len(res.NewBadges) > 0 {
		res.Changed = true
	}
	res.Streak = next.Streak
	if !res.Changed {
		return st, res
	}
	return next, res
}

func (e *Engine) pickChallenge() string {
	if len(e.challenges) == 0 {
		return ""
	}
	i := e.pick(len(e.challenges))
	if i < 0 || i >= len(e.challenges) {
		i = 0
	}
	return e.challenges[i]
}
