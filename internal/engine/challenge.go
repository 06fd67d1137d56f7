package engine

// CompleteDailyChallenge awards DailyChallengeXP once per challenge period.
func (e *Engine) CompleteDailyChallenge(st ProgressState) (ProgressState, Result, error) {
	if st.DailyChallenge == "" {
		return st, newResult(st, OutcomeValidationFailed), ErrNoChallenge
	}
	if st.DailyChallengeCompleted {
		return st, newResult(st, OutcomeChallengeAlreadyDone), ErrChallengeAlreadyDone
	}

	next := st.Clone()
	res := newResult(st, OutcomeChallengeAccepted)
	e.record(&next, &res, DailyChallengeXP, "Daily challenge: "+st.DailyChallenge)
	next.DailyChallengeCompleted = true
	finish(&next, &res)
	return next, res, nil
}

// ClaimStreakBonus awards the streak bonus once per availability window.
// When nothing can be claimed the state is returned unchanged and the
// outcome says why.
func (e *Engine) ClaimStreakBonus(st ProgressState) (ProgressState, Result) {
	amount, claimable := StreakBonus(st)
	switch {
	case amount == 0:
		return st, newResult(st, OutcomeBonusUnavailable)
	case !claimable:
		return st, newResult(st, OutcomeBonusAlreadyClaimed)
	}

	next := st.Clone()
	res := newResult(st, OutcomeBonusClaimed)
	e.record(&next, &res, amount, "Streak bonus")
	next.StreakBonusClaimed = true
	finish(&next, &res)
	return next, res
}
