package engine

import (
	"math"
	"strings"
)

// RecordAction adds amount XP and logs it. Negative amounts are treated as 0
// and the total saturates at math.MaxInt, so XP never decreases.
func (e *Engine) RecordAction(st ProgressState, amount int, label string) (ProgressState, Result) {
	next := st.Clone()
	res := newResult(st, OutcomeRecorded)
	e.record(&next, &res, amount, label)
	finish(&next, &res)
	return next, res
}

func newResult(st ProgressState, outcome Outcome) Result {
	return Result{Outcome: outcome, LevelBefore: st.Level(), LevelAfter: st.Level()}
}

// record is the single place XP changes. Level-up and milestone are judged
// independently against the pre-action XP, so one action may trigger both.
func (e *Engine) record(st *ProgressState, res *Result, amount int, label string) {
	if amount < 0 {
		amount = 0
	}
	oldXP := st.XP
	if amount > math.MaxInt-oldXP {
		amount = math.MaxInt - oldXP
	}
	newXP := oldXP + amount
	st.XP = newXP

	entry := ActionLogEntry{
		ID:        e.newID(),
		Label:     strings.TrimSpace(label),
		Amount:    amount,
		Timestamp: e.now(),
	}
	st.Log = append(st.Log, entry)
	res.Logged = append(res.Logged, entry)
	res.XPAwarded += amount

	if newXP/XPPerLevel > oldXP/XPPerLevel {
		res.LevelUp = true
		award(st, res, BadgeLevelUpLegend)
	}
	if newXP/RewardInterval > oldXP/RewardInterval {
		res.Milestone = true
	}
}

// award inserts b and reports it in res when it is new.
func award(st *ProgressState, res *Result, b Badge) {
	if st.Badges == nil {
		st.Badges = BadgeSet{}
	}
	if st.Badges.Has(b) {
		return
	}
	st.Badges[b] = struct{}{}
	if res != nil {
		res.NewBadges = append(res.NewBadges, b)
	}
}

// finish runs the badge pass and fills derived result fields.
func finish(st *ProgressState, res *Result) {
	res.NewBadges = append(res.NewBadges, evaluateBadges(st)...)
	res.LevelAfter = st.Level()
}
