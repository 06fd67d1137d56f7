package engine

// StartTimedTask moves the timer from idle to running. Only one task may run.
func (e *Engine) StartTimedTask(st ProgressState) (ProgressState, TaskHandle, error) {
	if st.ActiveTask != nil {
		return st, *st.ActiveTask, ErrTaskInFlight
	}
	h := TaskHandle{ID: e.newID(), StartedAt: e.now()}
	next := st.Clone()
	next.ActiveTask = &h
	return next, h, nil
}

// CompleteTimedTask stops the running task. Finishing within TimedTaskLimit
// earns TimedTaskXP and Time Lord; slower tasks earn nothing. A negative
// elapsed time means the clock went backwards and counts as too slow. The
// timer is idle afterwards in every case.
func (e *Engine) CompleteTimedTask(st ProgressState, h TaskHandle) (ProgressState, Result, error) {
	if st.ActiveTask == nil {
		return st, newResult(st, OutcomeValidationFailed), ErrNoTimedTask
	}
	if st.ActiveTask.ID != h.ID {
		return st, newResult(st, OutcomeValidationFailed), ErrTaskMismatch
	}

	next := st.Clone()
	next.ActiveTask = nil
	res := newResult(st, OutcomeTaskTooSlow)
	res.Elapsed = e.now().Sub(st.ActiveTask.StartedAt)
	if res.Elapsed >= 0 && res.Elapsed <= TimedTaskLimit {
		res.Outcome = OutcomeTaskCompleted
		e.record(&next, &res, TimedTaskXP, "Timed task")
		award(&next, &res, BadgeTimeLord)
	}
	finish(&next, &res)
	return next, res, nil
}
