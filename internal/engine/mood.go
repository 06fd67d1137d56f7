package engine

import "strings"

type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
)

// MaxMoodXP is the top mood value; submitting it earns Mood Maestro.
const MaxMoodXP = 10

// Moods lists the mood options in display order.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodTired, MoodStressed}

var moodXP = map[Mood]int{
	MoodGreat:    MaxMoodXP,
	MoodGood:     7,
	MoodOkay:     5,
	MoodTired:    3,
	MoodStressed: 2,
}

// ParseMood accepts a mood name in any case.
func ParseMood(input string) (Mood, error) {
	m := Mood(strings.TrimSpace(strings.ToLower(input)))
	if _, ok := moodXP[m]; !ok {
		return "", ErrUnknownMood
	}
	return m, nil
}

// PreviewMood returns the XP a mood would earn. Unknown moods preview as 0.
func PreviewMood(m Mood) int {
	return moodXP[m]
}

// SubmitMood records a mood check-in worth moodXP. Zero or negative values
// record nothing. Either way the caller should clear its pending selection.
func (e *Engine) SubmitMood(st ProgressState, moodXP int) (ProgressState, Result) {
	if moodXP <= 0 {
		res := newResult(st, OutcomeMoodSkipped)
		res.MoodCleared = true
		return st, res
	}

	next := st.Clone()
	res := newResult(st, OutcomeMoodRecorded)
	e.record(&next, &res, moodXP, "Mood check-in")
	if moodXP == MaxMoodXP {
		award(&next, &res, BadgeMoodMaestro)
	}
	finish(&next, &res)
	res.MoodCleared = true
	return next, res
}
