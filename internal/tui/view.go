package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/taskring/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	d := dial{
		tasks:      m.dayTasks(),
		session:    m.session,
		styles:     m.styles,
		cfg:        m.ctrl.Config(),
		layout:     m.layout,
		selectedID: m.selectedID,
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		d.render(),
		" ",
		m.viewPanel(d.tasks),
	)

	return strings.Join([]string{
		m.viewHeader(),
		"",
		body,
		"",
		m.viewStatus(),
		m.help.View(m.keys),
	}, "\n")
}

func (m *Model) viewHeader() string {
	return m.styles.Header.Render("taskring") + "  " +
		m.styles.HeaderDay.Render(m.day.Format("Monday, 2 January 2006"))
}

// viewPanel renders the category palette followed by the day's tasks. The
// palette rows must stay at Layout.PaletteTop for mouse hits to line up.
func (m *Model) viewPanel(tasks []domain.Task) string {
	width := sidePanelWidth - 1
	lines := []string{m.styles.PanelTitle.Render("Categories (drag onto the ring)")}
	for _, cat := range m.categories {
		icon := m.styles.CategoryStyle(cat.Color).Render("■")
		label := truncate(cat.Name, width-10)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			icon,
			m.styles.PaletteItem.Render(fmt.Sprintf("%-*s", width-10, label)),
			m.styles.Help.Render(shortDuration(cat.Duration())),
		))
	}

	lines = append(lines, "", m.styles.PanelTitle.Render("Tasks"))
	if len(tasks) == 0 {
		lines = append(lines, m.styles.Help.Render("Nothing planned"))
	}
	editing, _ := m.ctrl.EditingTask()
	for _, t := range tasks {
		style := m.styles.TaskLine
		switch {
		case t.ID == m.selectedID || t.ID == editing.ID:
			style = m.styles.TaskLineSelected
		case t.Completed:
			style = m.styles.TaskDone
		}
		done := " "
		if t.Completed {
			done = "✓"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			m.styles.CategoryStyle(t.Category.Color).Render("■"),
			style.Render(fmt.Sprintf("%-13s %s", formatSpan(t.Start, t.End), truncate(t.Title, width-18))),
			done,
		))
	}

	if limit := m.layout.DialRows; len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}

// viewStatus mirrors the gesture state, or shows the last message.
func (m *Model) viewStatus() string {
	if m.err != nil {
		return m.styles.ErrorMsg.Render("Error: " + m.err.Error())
	}

	s := m.session
	if s.Active() {
		text := s.State.String()
		if s.Preview != nil {
			text += " " + s.CategoryID + " " + formatSpan(s.Preview.Start, s.Preview.End)
		} else if s.LastTime != nil {
			text += " " + s.LastTime.Format("15:04")
		}
		if s.Outside {
			switch s.State {
			case domain.StateCreatingFromDrop:
				text += "  (outside: release to cancel)"
			case domain.StateDraggingWholeArc:
				text += "  (outside: release to delete)"
			default:
				text += "  (outside)"
			}
			return m.styles.StatusWarn.Render(text)
		}
		return m.styles.Status.Render(text)
	}

	if m.status != "" {
		if m.statusWarn {
			return m.styles.StatusWarn.Render(m.status)
		}
		return m.styles.Status.Render(m.status)
	}
	if s.Conflict {
		return m.styles.StatusWarn.Render("Last drop overlaps another task")
	}
	return m.styles.Help.Render(fmt.Sprintf("00:00 at %g°", m.ctrl.Config().ZeroPosition))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func shortDuration(d time.Duration) string {
	mins := int(d.Minutes())
	switch {
	case mins%60 == 0:
		return fmt.Sprintf("%dh", mins/60)
	case mins < 60:
		return fmt.Sprintf("%dm", mins)
	default:
		return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
	}
}
