package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"studyquest/internal/engine"
	"studyquest/internal/ui"
)

const (
	bannerTTL  = 3 * time.Second
	historyLen = 6
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSideQuest
	inputStudy
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	state   engine.ProgressState
	history []engine.ActionLogEntry

	// Pending mood selection; cleared after every submit.
	mood engine.Mood

	mode  inputMode
	input textinput.Model

	banner    string
	bannerSeq int

	busy    bool
	lastLog string
	err     error
}

type loadedMsg struct {
	state   engine.ProgressState
	history []engine.ActionLogEntry
	day     engine.DayResult
	err     error
}

type actionMsg struct {
	res engine.Result
	err error
	// note replaces the outcome line when set (timer start).
	note string
}

type bannerExpiredMsg struct {
	seq int
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		input:   ti,
		busy:    true,
		lastLog: "Loading…",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd rolls the session over to today, then reads state and history.
func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		day, err := m.svc.Rollover(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		hist, err := m.svc.History(m.ctx, historyLen)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{state: m.svc.State(), history: hist, day: day}
	}
}

// showBanner replaces the banner and schedules its expiry. A stale expiry
// is ignored by seq.
func (m boardModel) showBanner(lines []string) (boardModel, tea.Cmd) {
	if len(lines) == 0 {
		return m, nil
	}
	m.bannerSeq++
	m.banner = strings.Join(lines, "\n")
	seq := m.bannerSeq
	return m, tea.Tick(bannerTTL, func(time.Time) tea.Msg { return bannerExpiredMsg{seq: seq} })
}

// run executes one service call. The model stays busy until its actionMsg
// arrives, so calls never overlap.
func (m boardModel) run(fn func() (engine.Result, error)) (boardModel, tea.Cmd) {
	m.busy = true
	return m, func() tea.Msg {
		res, err := fn()
		return actionMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.busy = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		m.history = msg.history
		if m.lastLog == "Loading…" || m.lastLog == "Refreshing…" {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		}
		return m.showBanner(ui.DayLines(msg.day))

	case actionMsg:
		m.busy = false
		if msg.res.MoodCleared {
			m.mood = ""
		}
		events := ui.DayLines(msg.res.Day)
		switch {
		case msg.err != nil:
			m.lastLog = ui.Bad.Render(ui.IconError + " " + ui.ErrorText(msg.err))
			if !msg.res.Day.Changed {
				return m, nil
			}
		case msg.note != "":
			m.lastLog = msg.note
		default:
			m.lastLog = ui.OutcomeLine(msg.res)
			events = append(events, ui.EventLines(msg.res)...)
		}
		var expire tea.Cmd
		m, expire = m.showBanner(events)
		// A rejected call may still have rolled the day over.
		return m, tea.Batch(m.loadCmd(), expire)

	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch key {
	case "r":
		m.busy = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "c":
		return m.run(func() (engine.Result, error) { return m.svc.CompleteDailyChallenge(m.ctx) })
	case "b":
		return m.run(func() (engine.Result, error) { return m.svc.ClaimStreakBonus(m.ctx) })
	case "1", "2", "3", "4", "5":
		i, _ := strconv.Atoi(key)
		m.mood = engine.Moods[i-1]
		m.lastLog = fmt.Sprintf("Mood: %s (+%d XP on submit)", m.mood, engine.PreviewMood(m.mood))
		return m, nil
	case "m":
		moodXP := engine.PreviewMood(m.mood)
		return m.run(func() (engine.Result, error) { return m.svc.SubmitMood(m.ctx, moodXP) })
	case "esc":
		m.mood = ""
		return m, nil
	case "n":
		return m.openInput(inputSideQuest, "Side quest description"), textinput.Blink
	case "l":
		return m.openInput(inputStudy, "<xp> <what you studied>"), textinput.Blink
	case "t":
		m.busy = true
		return m, func() tea.Msg {
			day, err := m.svc.Rollover(m.ctx)
			if err != nil {
				return actionMsg{err: err}
			}
			h, err := m.svc.StartTimedTask(m.ctx)
			if err != nil {
				return actionMsg{res: engine.Result{Day: day}, err: err}
			}
			note := ui.Good.Render(fmt.Sprintf("%s Timer started at %s. Finish within %s.", ui.IconTimer, h.StartedAt.Format("15:04"), engine.TimedTaskLimit))
			return actionMsg{res: engine.Result{Outcome: engine.OutcomeTaskStarted, Day: day}, note: note}
		}
	case "d":
		return m.run(func() (engine.Result, error) { return m.svc.CompleteTimedTask(m.ctx) })
	}
	return m, nil
}

func (m boardModel) openInput(mode inputMode, placeholder string) boardModel {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
	return m
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		switch mode {
		case inputSideQuest:
			return m.run(func() (engine.Result, error) { return m.svc.CompleteSideQuest(m.ctx, value) })
		case inputStudy:
			amount, label, err := parseStudyInput(value)
			if err != nil {
				m.lastLog = ui.Bad.Render(ui.IconWarn + " " + err.Error())
				return m, nil
			}
			return m.run(func() (engine.Result, error) { return m.svc.RecordAction(m.ctx, amount, label) })
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// parseStudyInput splits "30 Read chapter 2" into an amount and label.
func parseStudyInput(s string) (int, string, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, "", fmt.Errorf("enter XP then a label, e.g. \"30 Read chapter 2\"")
	}
	amount, err := strconv.Atoi(fields[0])
	if err != nil || amount < 0 {
		return 0, "", fmt.Errorf("XP must be a non-negative integer")
	}
	return amount, strings.Join(fields[1:], " "), nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	out := header + "\n"
	if m.banner != "" {
		out += ui.Banner.Render(m.banner) + "\n"
	}
	return out + body.String() + footer
}

func (m boardModel) renderHeader() string {
	st := m.state
	into, span := engine.LevelProgress(st.XP)
	return fmt.Sprintf("StudyQuest | Level %d | XP %d %s %d/%d | Streak %d %s",
		st.Level(), st.XP, ui.ProgressBar(into, span, 30), into, span, st.Streak, ui.IconFire)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Badges"}
	for _, b := range engine.BadgeCatalog(m.state) {
		mark := "·"
		if b.Earned {
			mark = b.Icon
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, b.Badge))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- c: complete challenge")
	lines = append(lines, "- b: claim streak bonus")
	lines = append(lines, "- 1-5: pick mood, m: submit")
	lines = append(lines, "- n: side quest")
	lines = append(lines, "- l: log study XP")
	lines = append(lines, "- t/d: start/finish timer")
	lines = append(lines, "- r: refresh, q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	st := m.state
	var out []string

	out = append(out, "Daily challenge")
	status := "open"
	if st.DailyChallengeCompleted {
		status = "done"
	}
	out = append(out, fmt.Sprintf("- %s (%s, +%d XP)", st.DailyChallenge, status, engine.DailyChallengeXP))
	out = append(out, "")

	amount, claimable := engine.StreakBonus(st)
	switch {
	case claimable:
		out = append(out, fmt.Sprintf("Streak bonus: +%d XP ready (press b)", amount))
	case amount > 0:
		out = append(out, "Streak bonus: claimed")
	default:
		out = append(out, fmt.Sprintf("Streak bonus: unlocks at %d days", engine.StreakBonusThreshold))
	}

	if st.ActiveTask != nil {
		elapsed := time.Since(st.ActiveTask.StartedAt).Round(time.Second)
		out = append(out, fmt.Sprintf("Timer: running %s (limit %s)", elapsed, engine.TimedTaskLimit))
	} else {
		out = append(out, "Timer: idle")
	}
	if m.mood != "" {
		out = append(out, fmt.Sprintf("Mood: %s (+%d XP)", m.mood, engine.PreviewMood(m.mood)))
	}
	out = append(out, fmt.Sprintf("Side quests: %d", st.SideQuestCount))
	out = append(out, "")

	out = append(out, "Recent")
	if len(m.history) == 0 {
		out = append(out, "(nothing logged yet)")
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		e := m.history[i]
		out = append(out, fmt.Sprintf("- %s +%d %s", e.Timestamp.Local().Format("Jan 02 15:04"), e.Amount, e.Label))
	}

	if m.mode != inputNone {
		out = append(out, "", m.input.View())
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
