package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/calendar"
	"studyplan/internal/plan"
	"studyplan/internal/stats"
)

const barWidth = 20

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	quoteStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var quotes = []string{
	"Başarı, her gün tekrarlanan küçük çabaların toplamıdır.",
	"Gelecek, bugünden hazırlananlara aittir.",
	"Zorluklar, başarının değerini artıran süslerdir.",
	"Ertelemek, zaman hırsızıdır. Şimdi başla!",
	"Hedefine odaklan, engelleri basamak yap.",
	"Bugün yapacağın fedakarlık, yarınki özgürlüğündür.",
	"Pes etmediğin sürece mağlup sayılmazsın.",
}

// dailyQuote picks a quote by weekday so it changes once per day.
func dailyQuote(now time.Time) string {
	return quotes[int(now.Weekday())%len(quotes)]
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBanner())
	b.WriteString("\n\n")

	switch m.mode {
	case modeMonth:
		b.WriteString(m.renderMonth())
	default:
		b.WriteString(m.renderDay())
	}

	if m.showStats && m.mode == modeMonth {
		b.WriteString("\n")
		b.WriteString(m.renderStats())
	}

	if m.mode == modeInput {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.renderHelp()))
	return b.String()
}

func (m Model) renderBanner() string {
	now := m.now()
	var lines []string
	if exam, ok := m.cfg.Exam(); ok {
		label := m.cfg.ExamLabel
		if label == "" {
			label = "Exam"
		}
		days := calendar.DaysUntil(exam, now)
		switch {
		case days > 0:
			lines = append(lines, bannerStyle.Render(fmt.Sprintf("%s: %d days left", label, days)))
		case days == 0:
			lines = append(lines, bannerStyle.Render(fmt.Sprintf("%s: today", label)))
		default:
			lines = append(lines, bannerStyle.Render(fmt.Sprintf("%s: %d days ago", label, -days)))
		}
	}
	lines = append(lines, quoteStyle.Render(dailyQuote(now)))

	month := stats.Monthly(m.month, m.store.Tasks())
	lines = append(lines, fmt.Sprintf("%s  %s %d/%d (%d%%)",
		titleStyle.Render(monthTitle(m.month)),
		progressBar(month.Percent, barWidth),
		month.Completed, month.Total, month.Percent))
	return strings.Join(lines, "\n")
}

func (m Model) renderMonth() string {
	var b strings.Builder
	b.WriteString(subtleStyle.Render(weekdayHeader(m.cfg.WeekStartDay())))
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	tasks := m.store.Tasks()
	now := m.now()
	for i, day := range calendar.MonthDays(m.month) {
		key := calendar.Key(day)
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		marker := " "
		if calendar.SameDay(day, now) {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s %s", marker, day.Format("02 Mon"), daySummary(tasks.Day(key)))
		if sum := stats.Day(tasks, key); sum.Total > 0 {
			line += fmt.Sprintf("  %d/%d (%d%%)", sum.Completed, sum.Total, sum.Percent)
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}
	return b.String()
}

// renderGrid draws the month as week rows; padding days from adjacent months are blank.
func (m Model) renderGrid() string {
	tasks := m.store.Tasks()
	var rows []string
	var cells []string
	for i, day := range calendar.Grid(m.month, m.cfg.WeekStartDay()) {
		cell := "   "
		if day.Month() == m.month.Month() {
			cell = fmt.Sprintf("%2d", day.Day())
			if sum := stats.Day(tasks, calendar.Key(day)); sum.Total > 0 {
				if sum.Completed == sum.Total {
					cell += "✓"
				} else {
					cell += "•"
				}
			} else {
				cell += " "
			}
			if i == m.cursorGridIndex() {
				cell = cursorStyle.Render(cell)
			}
		}
		cells = append(cells, cell)
		if len(cells) == 7 {
			rows = append(rows, strings.Join(cells, " "))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

func (m Model) cursorGridIndex() int {
	first := calendar.StartOfMonth(m.month)
	offset := (int(first.Weekday()) - int(m.cfg.WeekStartDay()) + 7) % 7
	return offset + m.cursor
}

func (m Model) renderDay() string {
	var b strings.Builder
	title := m.selected
	if t, err := calendar.ParseKey(m.selected); err == nil {
		title = t.Format("Monday, 02 January 2006")
	}
	b.WriteString(titleStyle.Render(title))
	if sum := stats.Day(m.store.Tasks(), m.selected); sum.Total > 0 {
		b.WriteString(fmt.Sprintf("  %d/%d (%d%%)", sum.Completed, sum.Total, sum.Percent))
	}
	b.WriteString("\n\n")

	subjects := m.store.Tasks().Day(m.selected)
	if len(subjects) == 0 {
		b.WriteString(subtleStyle.Render("No subjects yet. Press " + keyLabel(m.cfg.Keys.AddSubject) + " to add one."))
		b.WriteString("\n")
		return b.String()
	}

	i := 0
	for _, s := range subjects {
		total, done := s.Counts()
		line := fmt.Sprintf("%s (%d/%d)", s.Name, done, total)
		b.WriteString(m.cursorLine(i, titleStyle.Render(line)))
		i++
		for _, tp := range s.Topics {
			box := "[ ]"
			text := tp.Text
			if tp.Completed {
				box = "[x]"
				text = doneStyle.Render(text)
			}
			b.WriteString(m.cursorLine(i, "    "+box+" "+text))
			i++
		}
	}
	return b.String()
}

func (m Model) cursorLine(i int, text string) string {
	if i == m.rowCursor {
		return cursorStyle.Render("> ") + text + "\n"
	}
	return "  " + text + "\n"
}

func (m Model) renderStats() string {
	rows := m.subjectStats()
	if len(rows) == 0 {
		return paneStyle.Render("No topics planned this month.")
	}
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Name))
	}
	lines := []string{titleStyle.Render("Subjects")}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-*s %s %3d%% (%d/%d)",
			width, r.Name, progressBar(r.Percent, barWidth), r.Percent, r.Completed, r.Total))
	}
	return paneStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	if m.confirmDel {
		return "y confirm • n cancel"
	}
	switch m.mode {
	case modeInput:
		return fmt.Sprintf("%s save • %s cancel", keyLabel(k.Confirm), keyLabel(k.Cancel))
	case modeDay:
		return fmt.Sprintf("%s/%s move • %s subject • %s topic • %s toggle • %s edit • %s delete • %s back • %s quit",
			keyLabel(k.Up), keyLabel(k.Down), keyLabel(k.AddSubject), keyLabel(k.AddTopic),
			keyLabel(k.Toggle), keyLabel(k.Edit), keyLabel(k.Delete), keyLabel(k.Back), keyLabel(k.Quit))
	default:
		return fmt.Sprintf("%s/%s move • %s/%s month • %s today • %s open • %s stats • %s quit",
			keyLabel(k.Up), keyLabel(k.Down), keyLabel(k.PrevMonth), keyLabel(k.NextMonth),
			keyLabel(k.Today), keyLabel(k.Open), keyLabel(k.Stats), keyLabel(k.Quit))
	}
}

func progressBar(percent, width int) string {
	filled := clampCursor(percent*width/100, width+1)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func daySummary(subjects []plan.Subject) string {
	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func weekdayHeader(start time.Weekday) string {
	labels := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		labels = append(labels, ((start + time.Weekday(i)) % 7).String()[:2]+" ")
	}
	return strings.Join(labels, " ")
}

func monthTitle(t time.Time) string {
	return t.Format("January 2006")
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
