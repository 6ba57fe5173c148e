package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/interaction"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout = NewLayout(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case MsgDayLoaded:
		if !msg.Day.Equal(m.day) {
			// Stale load for a day no longer shown.
			return m, nil
		}
		if m.session.Active() {
			m.pendingLoad = &msg
			return m, nil
		}
		m.applyDay(msg)
		return m, nil

	case MsgPersistFailed:
		return m, tea.Batch(
			m.waitForFailure(),
			m.setStatus(fmt.Sprintf("Not saved: %v", msg.Failure), true),
		)

	case MsgClearStatus:
		if m.status == msg.Text {
			m.status = ""
			m.statusWarn = false
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) applyDay(msg MsgDayLoaded) {
	if msg.Err != nil {
		m.err = msg.Err
		return
	}
	m.err = nil
	if err := m.container.Ring.Replace(msg.Day, msg.Tasks); err != nil {
		m.container.Logger.Warn("", logCategory, err.Error())
	}
}

// applyLayout pushes the dial geometry into the controller. The mapping
// never changes mid-gesture; it is retried on release.
func (m *Model) applyLayout() {
	cfg := m.layout.Configure(m.ctrl.Config(), m.container.AppConfig.Ring.HitTolerance)
	if err := m.ctrl.Configure(cfg); err != nil {
		m.pendingLayout = true
		return
	}
	m.pendingLayout = false
}

// afterGesture applies work deferred while a gesture was in progress.
func (m *Model) afterGesture() {
	if m.pendingLayout {
		m.applyLayout()
	}
	if m.pendingLoad != nil {
		msg := *m.pendingLoad
		m.pendingLoad = nil
		if msg.Day.Equal(m.day) {
			m.applyDay(msg)
		}
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.session.Active() {
			m.ctrl.Cancel()
			m.afterGesture()
			return m, m.setStatus("Cancelled", false)
		}
		m.ctrl.ClearEditing()
		m.selectedID = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	// The rest would change what the pointer maps to.
	if m.session.Active() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.RotateLeft):
		m.rotate(-1)
		return m, nil

	case key.Matches(msg, m.keys.RotateRight):
		m.rotate(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		return m, m.showDay(m.day.AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.NextDay):
		return m, m.showDay(m.day.AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.Today):
		return m, m.showDay(m.container.Clock.Now())

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadDay(m.day)

	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleCompleted()

	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteTarget()
	}

	return m, nil
}

// rotate moves 00:00 by 15 degree steps.
func (m *Model) rotate(steps int) {
	cfg := m.ctrl.Config()
	cfg.ZeroPosition = domain.RotateZeroPosition(cfg.ZeroPosition, steps)
	if err := m.ctrl.Configure(cfg); err != nil {
		m.err = err
	}
}

func (m *Model) showDay(day time.Time) tea.Cmd {
	day = domain.StartOfDay(day)
	cfg := m.ctrl.Config()
	cfg.BaseDate = day
	if err := m.ctrl.Configure(cfg); err != nil {
		m.err = err
		return nil
	}
	m.ctrl.ClearEditing()
	m.selectedID = ""
	m.day = day
	return m.loadDay(day)
}

func (m *Model) toggleCompleted() tea.Cmd {
	t, ok := m.target()
	if !ok {
		return m.setStatus("Select a task first", true)
	}
	updated, err := m.container.Ring.SetCompleted(t.ID, !t.Completed)
	if err != nil {
		m.err = err
		return nil
	}
	m.persister.Update(updated)
	if updated.Completed {
		return m.setStatus("Completed "+updated.Title, false)
	}
	return m.setStatus("Reopened "+updated.Title, false)
}

func (m *Model) deleteTarget() tea.Cmd {
	t, ok := m.target()
	if !ok {
		return m.setStatus("Select a task first", true)
	}
	if !m.container.Ring.Remove(t.ID) {
		return nil
	}
	m.persister.Delete(t.ID)
	m.ctrl.ClearEditing()
	m.selectedID = ""
	m.container.Logger.Info(t.ID, logCategory, "deleted")
	return m.setStatus("Deleted "+t.Title, false)
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.layout.PointAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.session.Active() {
			return m, nil
		}
		if i, ok := m.layout.PaletteIndex(msg.X, msg.Y, len(m.categories)); ok {
			if err := m.ctrl.BeginDrop(m.categories[i], p); err != nil {
				m.err = err
			}
			return m, nil
		}
		if id, h, ok := m.ctrl.Pick(p); ok {
			m.selectedID = id
			if err := m.ctrl.BeginHandle(id, h, p); err != nil {
				m.err = err
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.session.Active() {
			_ = m.ctrl.Move(p)
		}
		return m, nil

	case tea.MouseActionRelease:
		if !m.session.Active() {
			return m, nil
		}
		out, err := m.ctrl.Release(p)
		m.afterGesture()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, m.reportOutcome(out)
	}

	return m, nil
}

func (m *Model) reportOutcome(out interaction.Outcome) tea.Cmd {
	switch {
	case out.Deleted != nil:
		return m.setStatus("Deleted "+out.Deleted.Title, false)
	case out.Committed != nil && out.Conflict:
		return m.setStatus("No free slot: "+out.Committed.Title+" overlaps another task", true)
	case out.Committed != nil:
		t := out.Committed
		return m.setStatus(fmt.Sprintf("%s %s", t.Title, formatSpan(t.Start, t.End)), false)
	}
	return nil
}

// setStatus shows text in the status line and clears it after a while.
func (m *Model) setStatus(text string, warn bool) tea.Cmd {
	m.status = text
	m.statusWarn = warn
	return m.clearStatusLater()
}

func (m *Model) clearStatusLater() tea.Cmd {
	text := m.status
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return MsgClearStatus{Text: text}
	})
}
