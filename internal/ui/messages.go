package ui

import (
	"errors"
	"fmt"
	"time"

	"studyquest/internal/engine"
)

// OutcomeLine renders the headline for an operation result.
func OutcomeLine(res engine.Result) string {
	switch res.Outcome {
	case engine.OutcomeChallengeAccepted:
		return fmt.Sprintf("%s %s", Good.Render(IconTarget+" Challenge complete!"), xp(res.XPAwarded))
	case engine.OutcomeChallengeAlreadyDone:
		return Warn.Render(IconInfo + " Today's challenge is already done.")
	case engine.OutcomeBonusClaimed:
		return fmt.Sprintf("%s %s", Good.Render(IconGift+" Streak bonus claimed!"), xp(res.XPAwarded))
	case engine.OutcomeBonusUnavailable:
		return Muted.Render(fmt.Sprintf("No streak bonus yet. Keep a %d-day streak to unlock it.", engine.StreakBonusThreshold))
	case engine.OutcomeBonusAlreadyClaimed:
		return Muted.Render("Streak bonus already claimed for this streak.")
	case engine.OutcomeMoodRecorded:
		return fmt.Sprintf("%s %s", Good.Render(IconMood+" Mood logged."), xp(res.XPAwarded))
	case engine.OutcomeMoodSkipped:
		return Muted.Render("No mood selected; nothing logged.")
	case engine.OutcomeSideQuestCompleted:
		return fmt.Sprintf("%s %s", Good.Render(IconSword+" Side quest done!"), xp(res.XPAwarded))
	case engine.OutcomeTaskCompleted:
		return fmt.Sprintf("%s %s %s", Good.Render(IconTimer+" Beat the clock!"), xp(res.XPAwarded), Muted.Render("in "+res.Elapsed.Round(time.Second).String()))
	case engine.OutcomeTaskTooSlow:
		return Warn.Render(fmt.Sprintf("%s Took %s; finish within %s for the bonus.", IconTimer, res.Elapsed.Round(time.Second), engine.TimedTaskLimit))
	case engine.OutcomeValidationFailed:
		return Bad.Render(IconWarn + " Nothing recorded.")
	default:
		return fmt.Sprintf("%s %s", Good.Render(IconBook+" Logged."), xp(res.XPAwarded))
	}
}

// EventLines renders level-up, reward and badge notices for a result.
func EventLines(res engine.Result) []string {
	var out []string
	if res.LevelUp {
		out = append(out, fmt.Sprintf("%s %s", BadgeLevelUp, LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter))))
	}
	if res.Milestone {
		out = append(out, fmt.Sprintf("%s %s", BadgeMilestone, Muted.Render(fmt.Sprintf("another %d XP milestone reached", engine.RewardInterval))))
	}
	for _, b := range res.NewBadges {
		out = append(out, Gold.Render(IconTrophy+" Badge earned: "+string(b)))
	}
	return out
}

// DayLines renders what rolling over to a new day changed.
func DayLines(day engine.DayResult) []string {
	var out []string
	if day.StreakBroken {
		out = append(out, Warn.Render(IconWarn+" Streak reset. Day 1 again."))
	} else if day.Changed && day.Streak > 1 {
		out = append(out, Good.Render(fmt.Sprintf("%s %d-day streak!", IconFire, day.Streak)))
	}
	if day.NewChallenge {
		out = append(out, Muted.Render(IconTarget+" A new daily challenge is waiting."))
	}
	for _, b := range day.NewBadges {
		out = append(out, Gold.Render(IconTrophy+" Badge earned: "+string(b)))
	}
	return out
}

// ErrorText maps engine rejections to user-facing text.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, engine.ErrChallengeAlreadyDone):
		return "Today's challenge is already done."
	case errors.Is(err, engine.ErrNoChallenge):
		return "No challenge yet; open a session first."
	case errors.Is(err, engine.ErrTaskInFlight):
		return "A timed task is already running."
	case errors.Is(err, engine.ErrNoTimedTask):
		return "No timed task is running."
	case errors.Is(err, engine.ErrTaskMismatch):
		return "That is not the running timed task; check `sq timer status`."
	case errors.Is(err, engine.ErrEmptySideQuest):
		return "Describe the side quest first."
	case errors.Is(err, engine.ErrUnknownMood):
		return "Unknown mood."
	default:
		return err.Error()
	}
}

func xp(n int) string {
	return Muted.Render(fmt.Sprintf("(+%d XP)", n))
}
