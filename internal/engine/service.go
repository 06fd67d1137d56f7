package engine

import (
	"context"
	"fmt"
	"log/slog"

	"studyquest/internal/storage"
)

// Service is the persistence boundary around Engine: it loads state, runs
// one transition, then writes the whole state back. Rejected operations
// write nothing.
type Service struct {
	store  storage.Store
	engine *Engine
	logger *slog.Logger

	state  ProgressState
	opened bool
}

func NewService(store storage.Store, eng *Engine, logger *slog.Logger) *Service {
	if eng == nil {
		eng = New(Options{})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		engine: eng,
		logger: logger.With("component", "engine"),
		state:  NewProgressState(),
	}
}

func (s *Service) Engine() *Engine { return s.engine }

// State returns a copy of the current state.
func (s *Service) State() ProgressState { return s.state.Clone() }

// Open loads persisted state and advances it to today. The stored action
// log is not loaded; see History.
func (s *Service) Open(ctx context.Context) (DayResult, error) {
	fields, err := s.store.LoadFields(ctx)
	if err != nil {
		return DayResult{}, fmt.Errorf("load progress: %w", err)
	}
	st := DecodeFields(fields, s.logger)
	s.state = st
	s.opened = true

	next, day := s.engine.AdvanceDay(st, s.engine.Today())
	if day.Changed || len(fields) == 0 {
		if err := s.commit(ctx, next, nil); err != nil {
			return DayResult{}, err
		}
	}
	s.logger.Debug("session opened", "xp", next.XP, "streak", next.Streak, "new_challenge", day.NewChallenge)
	return day, nil
}

// Rollover opens the session on first use and otherwise advances it to
// today, so a session kept open past midnight starts the new day before its
// next operation. It writes only when the day changed something.
func (s *Service) Rollover(ctx context.Context) (DayResult, error) {
	if !s.opened {
		return s.Open(ctx)
	}
	next, day := s.engine.AdvanceDay(s.state, s.engine.Today())
	if !day.Changed {
		return day, nil
	}
	if err := s.commit(ctx, next, nil); err != nil {
		return DayResult{}, err
	}
	s.logger.Info("day rolled over", "streak", day.Streak, "streak_broken", day.StreakBroken, "new_challenge", day.NewChallenge)
	return day, nil
}

func (s *Service) commit(ctx context.Context, next ProgressState, logged []ActionLogEntry) error {
	if err := s.store.SaveFields(ctx, EncodeFields(next), toRecords(logged)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	s.state = next
	return nil
}

func (s *Service) apply(ctx context.Context, next ProgressState, res Result) (Result, error) {
	if err := s.commit(ctx, next, res.Logged); err != nil {
		return Result{}, err
	}
	if res.LevelUp {
		s.logger.Info("level up", "level", res.LevelAfter, "xp", next.XP)
	}
	for _, b := range res.NewBadges {
		s.logger.Info("badge awarded", "badge", string(b))
	}
	return res, nil
}

func (s *Service) RecordAction(ctx context.Context, amount int, label string) (Result, error) {
	day, err := s.Rollover(ctx)
	if err != nil {
		return Result{}, err
	}
	next, res := s.engine.RecordAction(s.state, amount, label)
	res.Day = day
	return s.apply(ctx, next, res)
}

func (s *Service) CompleteDailyChallenge(ctx context.Context) (Result, error) {
	day, err := s.Rollover(ctx)
	if err != nil {
		return Result{}, err
	}
	next, res, err := s.engine.CompleteDailyChallenge(s.state)
	res.Day = day
	if err != nil {
		return res, err
	}
	return s.apply(ctx, next, res)
}

func (s *Service) ClaimStreakBonus(ctx context.Context) (Result, error) {
	day, err := s.Rollover(ctx)
	if err != nil {
		return Result{}, err
	}
	next, res := s.engine.ClaimStreakBonus(s.state)
	res.Day = day
	if res.Outcome != OutcomeBonusClaimed {
		return res, nil
	}
	return s.apply(ctx, next, res)
}

func (s *Service) SubmitMood(ctx context.Context, moodXP int) (Result, error) {
	day, err := s.Rollover(ctx)
	if err != nil {
		return Result{}, err
	}
	next, res := s.engine.SubmitMood(s.state, moodXP)
	res.Day = day
	if res.XPAwarded == 0 {
		return res, nil
	}
	return s.apply(ctx, next, res)
}

func (s *Service) CompleteSideQuest(ctx context.Context, description string) (Result, error) {
	day, err := s.Rollover(ctx)
	if err != nil {
		return Result{}, err
	}
	next, res, err := s.engine.CompleteSideQuest(s.state, description)
	res.Day = day
	if err != nil {
		return res, err
	}
	return s.apply(ctx, next, res)
}

func (s *Service) StartTimedTask(ctx context.Context) (TaskHandle, error) {
	if _, err := s.Rollover(ctx); err != nil {
		return TaskHandle{}, err
	}
	next, h, err := s.engine.StartTimedTask(s.state)
	if err != nil {
		return h, err
	}
	if err := s.commit(ctx, next, nil); err != nil {
		return TaskHandle{}, err
	}
	return h, nil
}

// CompleteTimedTask completes the running task, whatever its handle.
func (s *Service) CompleteTimedTask(ctx context.Context) (Result, error) {
	day, err := s.Rollover(ctx)
	if err != nil {
		return Result{}, err
	}
	if s.state.ActiveTask == nil {
		res := newResult(s.state, OutcomeValidationFailed)
		res.Day = day
		return res, ErrNoTimedTask
	}
	next, res, err := s.engine.CompleteTimedTask(s.state, *s.state.ActiveTask)
	res.Day = day
	if err != nil {
		return res, err
	}
	return s.apply(ctx, next, res)
}

// History returns the newest limit log entries, oldest first.
func (s *Service) History(ctx context.Context, limit int) ([]ActionLogEntry, error) {
	recs, err := s.store.ListLog(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return fromRecords(recs, s.logger), nil
}
