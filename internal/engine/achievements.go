package engine

// BadgeInfo describes a badge and whether the player holds it.
type BadgeInfo struct {
	Badge       Badge
	Description string
	Icon        string
	Earned      bool
}

type badgeRule struct {
	badge       Badge
	description string
	icon        string
	// condition is nil for badges awarded by an event rather than by state.
	condition func(st *ProgressState) bool
}

var badgeRules = []badgeRule{
	{BadgePageTurner, "Earn 100 XP", "📖", func(st *ProgressState) bool { return st.XP >= PageTurnerXP }},
	{BadgeSideQuestHero, "Complete 50 side quests", "🗡️", func(st *ProgressState) bool { return st.SideQuestCount >= SideQuestHeroCount }},
	{BadgeStreakMaster, "Study 7 days in a row", "🔥", func(st *ProgressState) bool { return st.Streak >= StreakBonusThreshold }},
	{BadgeLevelUpLegend, "Reach a new level", "⭐", nil},
	{BadgeMoodMaestro, "Log a top mood", "🎵", nil},
	{BadgeTimeLord, "Finish a timed task within 30 minutes", "⏱️", nil},
}

// evaluateBadges awards every state-derived badge whose condition holds and
// returns the newly awarded ones.
func evaluateBadges(st *ProgressState) []Badge {
	var res Result
	for _, r := range badgeRules {
		if r.condition != nil && r.condition(st) {
			award(st, &res, r.badge)
		}
	}
	return res.NewBadges
}

// BadgeCatalog returns every badge with its earned status.
func BadgeCatalog(st ProgressState) []BadgeInfo {
	out := make([]BadgeInfo, 0, len(badgeRules))
	for _, r := range badgeRules {
		out = append(out, BadgeInfo{
			Badge:       r.badge,
			Description: r.description,
			Icon:        r.icon,
			Earned:      st.Badges.Has(r.badge),
		})
	}
	return out
}

// CountEarned returns how many badges the player holds.
func CountEarned(st ProgressState) int {
	n := 0
	for _, b := range AllBadges {
		if st.Badges.Has(b) {
			n++
		}
	}
	return n
}
