package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"studyplan/internal/calendar"
	"studyplan/internal/config"
	"studyplan/internal/logging"
	"studyplan/internal/plan"
	"studyplan/internal/stats"
)

type mode int

const (
	modeMonth mode = iota
	modeDay
	modeInput
)

type inputKind int

const (
	inputSubject inputKind = iota
	inputTopic
	inputEditTopic
	inputRenameSubject
)

// row is one line of the day view: a subject, or a topic when topicID is set.
type row struct {
	subjectID string
	topicID   string
}

type Model struct {
	store  *plan.Store
	cfg    config.Config
	logger *log.Logger
	now    func() time.Time

	month      time.Time
	cursor     int
	selected   string
	rowCursor  int
	mode       mode
	input      textinput.Model
	inputKind  inputKind
	target     row
	status     string
	showStats  bool
	confirmDel bool
	pendingDel *row
}

func Run(store *plan.Store, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(store, cfg, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func New(store *plan.Store, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		input:  ti,
		mode:   modeMonth,
		status: "enter to open a day, [ and ] to change month, s for stats.",
	}
	return m.jumpToToday()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeInput {
			return m.updateInputMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == m.cfg.Keys.Quit {
		return m, tea.Quit
	}
	if m.mode == modeDay {
		return m.updateDayMode(key)
	}
	return m.updateMonthMode(key)
}

func (m Model) updateMonthMode(key string) (tea.Model, tea.Cmd) {
	days := calendar.MonthDays(m.month)
	switch key {
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(days))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(days))
	case m.cfg.Keys.NextMonth:
		m.month = calendar.AddMonths(m.month, 1)
		m.cursor = 0
		m.status = monthTitle(m.month)
	case m.cfg.Keys.PrevMonth:
		m.month = calendar.AddMonths(m.month, -1)
		m.cursor = 0
		m.status = monthTitle(m.month)
	case m.cfg.Keys.Today:
		m = m.jumpToToday()
	case m.cfg.Keys.Stats:
		m.showStats = !m.showStats
	case m.cfg.Keys.Open:
		m.selected = calendar.Key(days[clampCursor(m.cursor, len(days))])
		m.rowCursor = 0
		m.mode = modeDay
		m.status = "a add subject • n add topic • space toggle • e edit • d delete • esc back"
	}
	return m, nil
}

func (m Model) updateDayMode(key string) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch key {
	case m.cfg.Keys.Back:
		m.mode = modeMonth
		m.status = monthTitle(m.month)
	case m.cfg.Keys.Down, "down":
		m.rowCursor = clampCursor(m.rowCursor+1, len(rows))
	case m.cfg.Keys.Up, "up":
		m.rowCursor = clampCursor(m.rowCursor-1, len(rows))
	case m.cfg.Keys.AddSubject:
		return m.startInput(inputSubject, row{}, "", "Subject name")
	case m.cfg.Keys.AddTopic:
		if len(rows) == 0 {
			m.status = "Add a subject first"
			return m, nil
		}
		r := rows[m.rowCursor]
		return m.startInput(inputTopic, row{subjectID: r.subjectID}, "", "Topic")
	case m.cfg.Keys.Toggle:
		if len(rows) == 0 || rows[m.rowCursor].topicID == "" {
			return m, nil
		}
		r := rows[m.rowCursor]
		m.store.ToggleTopic(m.selected, r.subjectID, r.topicID)
		m.logger.Debug("toggled topic", "date", m.selected, "topic", r.topicID)
		m.status = "Toggled topic"
	case m.cfg.Keys.Edit:
		if len(rows) == 0 {
			m.status = "Nothing to edit"
			return m, nil
		}
		r := rows[m.rowCursor]
		if r.topicID == "" {
			s, _ := m.store.Tasks().Subject(m.selected, r.subjectID)
			return m.startInput(inputRenameSubject, r, s.Name, "Subject name")
		}
		return m.startInput(inputEditTopic, r, m.topicText(r), "Topic")
	case m.cfg.Keys.Delete:
		if len(rows) == 0 {
			return m, nil
		}
		r := rows[m.rowCursor]
		m.confirmDel = true
		m.pendingDel = &r
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", m.label(r))
	}
	return m, nil
}

func (m Model) startInput(kind inputKind, target row, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.inputKind = kind
	m.target = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	m.status = "Enter to save, Esc to cancel"
	return m, cmd
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m = m.leaveInput()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.status = "Text cannot be empty"
			return m, nil
		}
		switch m.inputKind {
		case inputSubject:
			m.store.AddSubject(m.selected, value)
			m.rowCursor = len(m.rows()) - 1
			m.status = "Added subject"
		case inputTopic:
			m.store.AddTopic(m.selected, m.target.subjectID, value)
			m.rowCursor = m.lastTopicRow(m.target.subjectID)
			m.status = "Added topic"
		case inputEditTopic:
			m.store.UpdateTopic(m.selected, m.target.subjectID, m.target.topicID, value)
			m.status = "Updated topic"
		case inputRenameSubject:
			m.store.RenameSubject(m.selected, m.target.subjectID, value)
			m.status = "Renamed subject"
		}
		m.logger.Debug(strings.ToLower(m.status), "date", m.selected)
		return m.leaveInput(), nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) leaveInput() Model {
	m.input.SetValue("")
	m.input.Blur()
	m.mode = modeDay
	m.rowCursor = clampCursor(m.rowCursor, len(m.rows()))
	return m
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		r := *m.pendingDel
		if r.topicID == "" {
			m.store.DeleteSubject(m.selected, r.subjectID)
			m.status = "Deleted subject"
		} else {
			m.store.DeleteTopic(m.selected, r.subjectID, r.topicID)
			m.status = "Deleted topic"
		}
		m.logger.Debug(strings.ToLower(m.status), "date", m.selected, "subject", r.subjectID)
		m.rowCursor = clampCursor(m.rowCursor, len(m.rows()))
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) jumpToToday() Model {
	now := m.now()
	m.month = calendar.StartOfMonth(now)
	m.cursor = now.Local().Day() - 1
	return m
}

// rows flattens the selected day into subject and topic lines.
func (m Model) rows() []row {
	var rows []row
	for _, s := range m.store.Tasks().Day(m.selected) {
		rows = append(rows, row{subjectID: s.ID})
		for _, tp := range s.Topics {
			rows = append(rows, row{subjectID: s.ID, topicID: tp.ID})
		}
	}
	return rows
}

func (m Model) lastTopicRow(subjectID string) int {
	last := 0
	for i, r := range m.rows() {
		if r.subjectID == subjectID {
			last = i
		}
	}
	return last
}

func (m Model) topicText(r row) string {
	s, ok := m.store.Tasks().Subject(m.selected, r.subjectID)
	if !ok {
		return ""
	}
	for _, tp := range s.Topics {
		if tp.ID == r.topicID {
			return tp.Text
		}
	}
	return ""
}

func (m Model) label(r row) string {
	if r.topicID != "" {
		return m.topicText(r)
	}
	s, _ := m.store.Tasks().Subject(m.selected, r.subjectID)
	return s.Name
}

func (m Model) subjectStats() []stats.SubjectSummary {
	return stats.BySubject(m.month, m.store.Tasks(), stats.WithLocale(m.cfg.Locale()))
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
