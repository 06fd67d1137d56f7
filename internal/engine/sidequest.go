package engine

import "strings"

// CompleteSideQuest awards SideQuestXP for a user-described task.
func (e *Engine) CompleteSideQuest(st ProgressState, description string) (ProgressState, Result, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return st, newResult(st, OutcomeValidationFailed), ErrEmptySideQuest
	}

	next := st.Clone()
	res := newResult(st, OutcomeSideQuestCompleted)
	e.record(&next, &res, SideQuestXP, "Side quest: "+desc)
	next.SideQuestCount++
	finish(&next, &res)
	return next, res, nil
}
