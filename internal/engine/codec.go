package engine

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyquest/internal/storage"
)

// Persisted field keys.
const (
	KeyXP                      = "xp"
	KeyStreak                  = "streak"
	KeyLastActiveDate          = "last_active_date"
	KeyBadges                  = "badges"
	KeyDailyChallenge          = "daily_challenge"
	KeyDailyChallengeCompleted = "daily_challenge_completed"
	KeyLastChallengeDate       = "last_challenge_date"
	KeySideQuestCount          = "side_quest_count"
	KeyStreakBonusClaimed      = "streak_bonus_claimed"
	KeyActiveTask              = "active_task"
)

const dateLayout = "2006-01-02"

// EncodeFields flattens st into the persisted key set. The log is stored
// separately and is not part of the fields.
func EncodeFields(st ProgressState) map[string]string {
	badges := make([]string, 0, len(st.Badges))
	for _, b := range st.Badges.Sorted() {
		badges = append(badges, string(b))
	}
	badgesJSON, _ := json.Marshal(badges)

	task := ""
	if st.ActiveTask != nil {
		data, _ := json.Marshal(st.ActiveTask)
		task = string(data)
	}

	return map[string]string{
		KeyXP:                      strconv.Itoa(st.XP),
		KeyStreak:                  strconv.Itoa(st.Streak),
		KeyLastActiveDate:          formatDate(st.LastActiveDate),
		KeyBadges:                  string(badgesJSON),
		KeyDailyChallenge:          st.DailyChallenge,
		KeyDailyChallengeCompleted: strconv.FormatBool(st.DailyChallengeCompleted),
		KeyLastChallengeDate:       formatDate(st.ChallengeDate),
		KeySideQuestCount:          strconv.Itoa(st.SideQuestCount),
		KeyStreakBonusClaimed:      strconv.FormatBool(st.StreakBonusClaimed),
		KeyActiveTask:              task,
	}
}

// DecodeFields rebuilds a state from persisted fields. Missing keys take
// first-run defaults; unreadable values fall back to the default for that
// field and are logged, never returned as errors.
func DecodeFields(fields map[string]string, logger *slog.Logger) ProgressState {
	if logger == nil {
		logger = slog.Default()
	}
	d := decoder{fields: fields, logger: logger}
	st := NewProgressState()

	st.XP = d.intField(KeyXP, 0, 0)
	st.Streak = d.intField(KeyStreak, 1, 1)
	st.LastActiveDate = d.dateField(KeyLastActiveDate)
	st.SideQuestCount = d.intField(KeySideQuestCount, 0, 0)
	st.DailyChallenge = fields[KeyDailyChallenge]
	st.DailyChallengeCompleted = d.boolField(KeyDailyChallengeCompleted)
	st.ChallengeDate = d.dateField(KeyLastChallengeDate)
	st.StreakBonusClaimed = d.boolField(KeyStreakBonusClaimed)

	if raw := strings.TrimSpace(fields[KeyBadges]); raw != "" {
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			d.fallback(KeyBadges, raw, err)
		}
		for _, name := range names {
			b := Badge(name)
			if !b.IsValid() {
				logger.Warn("dropping unknown badge", "badge", name)
				continue
			}
			st.Badges[b] = struct{}{}
		}
	}

	if raw := strings.TrimSpace(fields[KeyActiveTask]); raw != "" {
		var h TaskHandle
		if err := json.Unmarshal([]byte(raw), &h); err != nil || h.ID == uuid.Nil {
			d.fallback(KeyActiveTask, raw, err)
		} else {
			st.ActiveTask = &h
		}
	}
	return st
}

type decoder struct {
	fields map[string]string
	logger *slog.Logger
}

func (d decoder) fallback(key, raw string, err error) {
	d.logger.Warn("unreadable progress field, using default", "key", key, "value", raw, "err", err)
}

func (d decoder) intField(key string, def, floor int) int {
	raw, ok := d.fields[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < floor {
		d.fallback(key, raw, err)
		return def
	}
	return n
}

func (d decoder) boolField(key string) bool {
	raw, ok := d.fields[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		d.fallback(key, raw, err)
		return false
	}
	return v
}

func (d decoder) dateField(key string) time.Time {
	raw, ok := d.fields[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		d.fallback(key, raw, err)
		return time.Time{}
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func toRecords(entries []ActionLogEntry) []storage.LogRecord {
	out := make([]storage.LogRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, storage.LogRecord{
			ID:        e.ID.String(),
			Label:     e.Label,
			Amount:    e.Amount,
			CreatedAt: e.Timestamp,
		})
	}
	return out
}

func fromRecords(recs []storage.LogRecord, logger *slog.Logger) []ActionLogEntry {
	out := make([]ActionLogEntry, 0, len(recs))
	for _, r := range recs {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			logger.Warn("log entry with malformed id", "id", r.ID, "err", err)
		}
		out = append(out, ActionLogEntry{
			ID:        id,
			Label:     r.Label,
			Amount:    r.Amount,
			Timestamp: r.CreatedAt,
		})
	}
	return out
}
