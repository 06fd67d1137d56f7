package engine

import "time"

const (
	XPPerLevel     = 700
	RewardInterval = 100

	StreakBonusThreshold = 7
	StreakBonusXP        = 50

	DailyChallengeXP = 30
	SideQuestXP      = 15

	TimedTaskLimit = 30 * time.Minute
	TimedTaskXP    = 25

	PageTurnerXP       = 100
	SideQuestHeroCount = 50
)

// Level returns the 1-based level for a total XP amount.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPRequiredForLevel returns the total XP at which level starts.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * XPPerLevel
}

// LevelProgress returns the XP earned inside the current level and the size of a level.
func LevelProgress(xp int) (into int, span int) {
	if xp < 0 {
		xp = 0
	}
	return xp % XPPerLevel, XPPerLevel
}

// XPToNextLevel returns how much XP is still needed for the next level.
func XPToNextLevel(xp int) int {
	into, span := LevelProgress(xp)
	return span - into
}

// StreakBonusAmount is the bonus on offer for a streak length.
func StreakBonusAmount(streak int) int {
	if streak >= StreakBonusThreshold {
		return StreakBonusXP
	}
	return 0
}

// StreakBonus reports the bonus on offer and whether it can still be claimed.
func StreakBonus(st ProgressState) (amount int, claimable bool) {
	amount = StreakBonusAmount(st.Streak)
	return amount, amount > 0 && !st.StreakBonusClaimed
}
