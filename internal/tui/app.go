// Package tui draws the day as an interactive 24-hour ring in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskring/internal/app"
	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/interaction"
	"github.com/runoshun/taskring/internal/persist"
)

const (
	logCategory     = "tui"
	failureBuffer   = 32
	statusTimeout   = 4 * time.Second
	shutdownTimeout = 5 * time.Second
	loadTimeout     = 10 * time.Second
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	ctrl      *interaction.Controller
	persister *persist.Queue
	failures  chan *domain.PersistenceFailure
	err       error

	// Deferred while a gesture is in progress
	pendingLoad *MsgDayLoaded

	// State
	categories []domain.Category
	session    domain.DragSession

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	layout Layout

	day        time.Time
	status     string
	selectedID string

	width         int
	height        int
	statusWarn    bool
	showHelp      bool
	pendingLayout bool
}

// New creates a Model showing day. The caller must Close it.
func New(c *app.Container, day time.Time) (*Model, error) {
	cats, err := c.Categories.Categories()
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	m := &Model{
		container:  c,
		failures:   make(chan *domain.PersistenceFailure, failureBuffer),
		categories: cats,
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		help:       help.New(),
		day:        domain.StartOfDay(day),
	}
	m.persister = c.NewPersister(m.reportFailure)

	m.layout = NewLayout(0, 0)
	cfg := m.layout.Configure(c.RingConfiguration(m.day), c.AppConfig.Ring.HitTolerance)
	ctrl, err := c.NewController(cfg, m.persister)
	if err != nil {
		_ = m.persister.Close(context.Background())
		return nil, err
	}
	ctrl.OnSnapshot(func(s domain.DragSession) {
		m.session = s
	})
	ctrl.OnTaskDeleted(func(t domain.Task) {
		if m.selectedID == t.ID {
			m.selectedID = ""
		}
	})
	m.ctrl = ctrl
	m.session = ctrl.Snapshot()
	return m, nil
}

// reportFailure runs on the persist worker; it must not block.
func (m *Model) reportFailure(f *domain.PersistenceFailure) {
	select {
	case m.failures <- f:
	default:
		m.container.Logger.Warn(f.TaskID, logCategory, "failure dropped: "+f.Error())
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadDay(m.day),
		m.waitForFailure(),
	)
}

// Close drains pending writes.
func (m *Model) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return m.persister.Close(ctx)
}

// loadDay returns a command that fetches day once earlier writes have landed.
// The ring itself is only touched from Update.
func (m *Model) loadDay(day time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if err := m.persister.Flush(ctx); err != nil && !errors.Is(err, persist.ErrClosed) {
			return MsgDayLoaded{Day: day, Err: err}
		}
		tasks, err := m.container.Tasks.Fetch(ctx, day)
		return MsgDayLoaded{Day: day, Tasks: tasks, Err: err}
	}
}

// waitForFailure returns a command that delivers the next persistence failure.
func (m *Model) waitForFailure() tea.Cmd {
	return func() tea.Msg {
		f, ok := <-m.failures
		if !ok {
			return nil
		}
		return MsgPersistFailed{Failure: f}
	}
}

// dayTasks returns the tasks drawn for the current day.
func (m *Model) dayTasks() []domain.Task {
	return m.container.Ring.TasksOn(m.day)
}

// target returns the task x and d act on: the task just created by a drop,
// else the last grabbed task.
func (m *Model) target() (domain.Task, bool) {
	if t, ok := m.ctrl.EditingTask(); ok {
		return t, true
	}
	if m.selectedID == "" {
		return domain.Task{}, false
	}
	return m.container.Ring.Get(m.selectedID)
}

// Run starts the TUI on day and blocks until the user quits.
func Run(c *app.Container, day time.Time) error {
	m, err := New(c, day)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, runErr := p.Run()
	return errors.Join(runErr, m.Close())
}
