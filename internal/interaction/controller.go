// Package interaction drives create, move and resize gestures on the ring.
//
// A Controller is built per ring view. Pointer samples are fed to it on one
// goroutine; every processed sample produces a DragSession snapshot for the
// registered listeners. Ring mutations happen immediately, persistence is
// handed to a domain.Persister and never waited on.
package interaction

import (
	"fmt"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/geometry"
	"github.com/runoshun/taskring/internal/placement"
	"github.com/runoshun/taskring/internal/taskring"
)

const logCategory = "ring"

// Outcome describes what a released gesture committed.
type Outcome struct {
	Committed *domain.Task // Task created or moved by the gesture
	Deleted   *domain.Task // Task removed by dragging it off the ring
	Conflict  bool         // Placement could not avoid an overlap
	Cancelled bool         // Gesture ended without committing
}

// Option configures a Controller.
type Option func(*Controller)

// WithPersister sends committed changes to p.
func WithPersister(p domain.Persister) Option {
	return func(c *Controller) {
		if p != nil {
			c.persister = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l domain.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSearcher sets the placement searcher used on drop.
func WithSearcher(s *placement.Searcher) Option {
	return func(c *Controller) {
		if s != nil {
			c.search = s
		}
	}
}

// Controller is the gesture state machine. It is not safe for concurrent use.
// Fields are ordered to minimize memory padding.
type Controller struct {
	ring       *taskring.Ring
	search     *placement.Searcher
	persister  domain.Persister
	logger     domain.Logger
	onSnapshot []func(domain.DragSession)
	onDelete   []func(domain.Task)
	category   domain.Category
	session    domain.DragSession
	cfg        domain.RingConfiguration
	dirty      bool
}

// New creates a Controller over ring.
func New(ring *taskring.Ring, cfg domain.RingConfiguration, opts ...Option) (*Controller, error) {
	zero, err := domain.NormalizeZeroPosition(cfg.ZeroPosition)
	if err != nil {
		return nil, err
	}
	cfg.ZeroPosition = zero
	c := &Controller{
		ring:      ring,
		search:    placement.NewSearcher(),
		persister: nopPersister{},
		logger:    domain.NopLogger{},
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the current ring configuration.
func (c *Controller) Config() domain.RingConfiguration {
	return c.cfg
}

// Configure replaces the ring configuration. It fails while a gesture is in
// progress so the mapping never changes under the pointer.
func (c *Controller) Configure(cfg domain.RingConfiguration) error {
	if c.session.Active() {
		return domain.ErrGestureInProgress
	}
	zero, err := domain.NormalizeZeroPosition(cfg.ZeroPosition)
	if err != nil {
		return err
	}
	cfg.ZeroPosition = zero
	c.cfg = cfg
	return nil
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() domain.DragSession {
	return c.session.Clone()
}

// OnSnapshot registers fn to receive a snapshot after every processed sample
// and transition.
func (c *Controller) OnSnapshot(fn func(domain.DragSession)) {
	c.onSnapshot = append(c.onSnapshot, fn)
}

// OnTaskDeleted registers fn to be told about tasks dragged off the ring.
func (c *Controller) OnTaskDeleted(fn func(domain.Task)) {
	c.onDelete = append(c.onDelete, fn)
}

// TimeAt maps a pointer position to a time on the base date.
func (c *Controller) TimeAt(p domain.Point) time.Time {
	return geometry.TimeForPoint(p, c.cfg.Center, c.cfg.BaseDate, c.cfg.ZeroPosition)
}

// EditingTask returns the task last created by a drop, if it still exists.
func (c *Controller) EditingTask() (domain.Task, bool) {
	if c.session.EditingID == "" {
		return domain.Task{}, false
	}
	return c.ring.Get(c.session.EditingID)
}

// ClearEditing leaves editing mode.
func (c *Controller) ClearEditing() {
	if c.session.EditingID == "" {
		return
	}
	c.session.EditingID = ""
	c.emit()
}

// Pick returns the task and handle under p. Handles within the configured
// tolerance win over the arc body; the nearest handle wins among several.
func (c *Controller) Pick(p domain.Point) (string, domain.Handle, bool) {
	if !c.cfg.Contains(p) {
		return "", domain.HandleNone, false
	}
	angle := geometry.PointAngle(p, c.cfg.Center, c.cfg.ZeroPosition)
	tolerance := c.cfg.HandleTolerance.Minutes() / geometry.MinutesPerDegree
	tasks := c.ring.TasksOn(c.cfg.BaseDate)

	bestID, bestHandle, bestDist := "", domain.HandleNone, tolerance
	for _, t := range tasks {
		arc := geometry.AnglesForTask(t, c.cfg.ZeroPosition)
		if d := geometry.AngleDistance(angle, arc.Start); d <= bestDist {
			bestID, bestHandle, bestDist = t.ID, domain.HandleStart, d
		}
		if d := geometry.AngleDistance(angle, arc.End); d < bestDist {
			bestID, bestHandle, bestDist = t.ID, domain.HandleEnd, d
		}
	}
	if bestHandle != domain.HandleNone {
		return bestID, bestHandle, true
	}

	for _, t := range tasks {
		if geometry.AnglesForTask(t, c.cfg.ZeroPosition).Contains(angle) {
			return t.ID, domain.HandleWholeArc, true
		}
	}
	return "", domain.HandleNone, false
}

// BeginDrop starts creating a task from a category dragged onto the ring.
// The preview is one hour long and is not inserted until Release.
func (c *Controller) BeginDrop(cat domain.Category, p domain.Point) error {
	if c.session.Active() {
		return domain.ErrGestureInProgress
	}
	t := c.TimeAt(p)
	c.category = cat
	c.dirty = false
	c.session = domain.DragSession{
		State:      domain.StateCreatingFromDrop,
		CategoryID: cat.ID,
		LastTime:   &t,
		Outside:    !c.cfg.Contains(p),
		EditingID:  c.session.EditingID,
		Preview: &domain.Task{
			ID:       domain.NewTaskID(),
			Start:    t,
			End:      t.Add(domain.DefaultTaskDuration),
			Category: cat.Ref(),
			Title:    cat.Name,
		},
	}
	c.emit()
	return nil
}

// BeginHandle starts dragging a boundary or the whole arc of a task.
func (c *Controller) BeginHandle(id string, h domain.Handle, p domain.Point) error {
	if c.session.Active() {
		return domain.ErrGestureInProgress
	}
	if h == domain.HandleNone || h.State() == domain.StateIdle {
		return domain.ErrInvalidHandle
	}
	if _, ok := c.ring.Get(id); !ok {
		return fmt.Errorf("begin %s drag on %s: %w", h, id, domain.ErrTaskNotFound)
	}
	t := c.TimeAt(p)
	c.dirty = false
	c.session = domain.DragSession{
		State:     h.State(),
		TaskID:    id,
		Handle:    h,
		LastTime:  &t,
		Outside:   !c.cfg.Contains(p),
		EditingID: c.session.EditingID,
	}
	c.emit()
	return nil
}

// Move processes one pointer sample. A sample that maps to the same time
// and hit state as the previous one is a no-op.
func (c *Controller) Move(p domain.Point) error {
	if !c.session.Active() {
		return domain.ErrNoGesture
	}
	c.move(p)
	return nil
}

// move applies a sample to the active gesture.
func (c *Controller) move(p domain.Point) {
	t := c.TimeAt(p)
	outside := !c.cfg.Contains(p)
	last := c.session.LastTime
	if last != nil && last.Equal(t) && outside == c.session.Outside {
		return
	}
	c.session.Outside = outside

	switch c.session.State {
	case domain.StateCreatingFromDrop:
		d := c.session.Preview.Duration()
		preview := *c.session.Preview
		preview.Start = t
		preview.End = t.Add(d)
		c.session.Preview = &preview
		c.session.LastTime = &t

	case domain.StateDraggingStartHandle:
		c.resize(t, c.ring.UpdateStartKeepingEnd)

	case domain.StateDraggingEndHandle:
		c.resize(t, c.ring.UpdateEndKeepingStart)

	case domain.StateDraggingWholeArc:
		// The arc stays put while the pointer is off the ring.
		if !outside {
			if last != nil {
				c.shift(geometry.ClockDelta(*last, t))
			}
			c.session.LastTime = &t
		}
	}

	c.emit()
}

// Release ends the gesture at p. A drop inside the ring is placed and
// inserted; a whole arc released outside the ring is deleted.
func (c *Controller) Release(p domain.Point) (Outcome, error) {
	if !c.session.Active() {
		return Outcome{}, domain.ErrNoGesture
	}
	c.move(p)

	var (
		out Outcome
		err error
	)
	switch c.session.State {
	case domain.StateCreatingFromDrop:
		if c.session.Outside {
			c.logger.Debug("", logCategory, "drop outside ring ignored")
			out.Cancelled = true
		} else {
			out, err = c.commitDrop()
		}

	case domain.StateDraggingWholeArc:
		if c.session.Outside {
			out = c.deleteDragged()
		} else {
			out = c.finishEdit()
		}

	case domain.StateDraggingStartHandle, domain.StateDraggingEndHandle:
		out = c.finishEdit()
	}

	c.reset()
	c.session.Conflict = out.Conflict
	c.emit()
	return out, err
}

// Cancel ends the gesture without committing a pending drop. Updates already
// applied to the ring stay and are persisted.
func (c *Controller) Cancel() {
	if !c.session.Active() {
		return
	}
	if c.session.State != domain.StateCreatingFromDrop {
		c.finishEdit()
	}
	c.reset()
	c.emit()
}

func (c *Controller) commitDrop() (Outcome, error) {
	preview := *c.session.Preview
	dayStart, dayEnd := domain.DayBounds(c.cfg.BaseDate)
	pl := c.search.Resolve(placement.Request{
		TaskID:         preview.ID,
		PreferredStart: preview.Start,
		Duration:       c.category.Duration(),
		Others:         c.ring.All(),
		DayStart:       dayStart,
		DayEnd:         dayEnd,
	})
	preview.Start = pl.Start
	preview.End = pl.End

	if err := c.ring.Insert(preview); err != nil {
		c.logger.Error(preview.ID, logCategory, "insert dropped task: "+err.Error())
		return Outcome{Cancelled: true}, fmt.Errorf("commit drop: %w", err)
	}
	if pl.Exhausted {
		c.logger.Warn(preview.ID, logCategory, "placed over an existing task: "+pl.Err().Error())
	}
	c.persister.Save(preview)
	c.session.EditingID = preview.ID
	c.logger.Info(preview.ID, logCategory, fmt.Sprintf("created %s %s-%s",
		preview.Category.ID, preview.Start.Format("15:04"), preview.End.Format("15:04")))
	return Outcome{Committed: &preview, Conflict: pl.Exhausted}, nil
}

func (c *Controller) deleteDragged() Outcome {
	id := c.session.TaskID
	task, ok := c.ring.Get(id)
	if !ok || !c.ring.Remove(id) {
		return Outcome{Cancelled: true}
	}
	c.persister.Delete(id)
	if c.session.EditingID == id {
		c.session.EditingID = ""
	}
	c.logger.Info(id, logCategory, "deleted by dragging off the ring")
	for _, fn := range c.onDelete {
		fn(task)
	}
	return Outcome{Deleted: &task}
}

func (c *Controller) finishEdit() Outcome {
	if !c.dirty {
		return Outcome{Cancelled: true}
	}
	task, ok := c.ring.Get(c.session.TaskID)
	if !ok {
		return Outcome{Cancelled: true}
	}
	c.persister.Update(task)
	c.dirty = false
	return Outcome{Committed: &task}
}

func (c *Controller) resize(t time.Time, update func(string, time.Time) (domain.Task, error)) {
	c.session.LastTime = &t
	if _, err := update(c.session.TaskID, t); err != nil {
		// A zero-length sample keeps the last valid interval.
		c.logger.Debug(c.session.TaskID, logCategory, "sample ignored: "+err.Error())
		return
	}
	c.dirty = true
}

func (c *Controller) shift(delta time.Duration) {
	if delta == 0 {
		return
	}
	id := c.session.TaskID
	task, err := c.ring.ShiftBy(id, delta)
	if err != nil {
		c.logger.Debug(id, logCategory, "shift ignored: "+err.Error())
		return
	}
	c.dirty = true

	// Keep the start on the displayed day when the arc crosses midnight.
	dayStart, dayEnd := domain.DayBounds(c.cfg.BaseDate)
	switch {
	case task.Start.Before(dayStart):
		_, _ = c.ring.ShiftBy(id, dayEnd.Sub(dayStart))
	case !task.Start.Before(dayEnd):
		_, _ = c.ring.ShiftBy(id, -dayEnd.Sub(dayStart))
	}
}

func (c *Controller) reset() {
	c.session = domain.DragSession{EditingID: c.session.EditingID}
	c.category = domain.Category{}
	c.dirty = false
}

func (c *Controller) emit() {
	for _, fn := range c.onSnapshot {
		fn(c.session.Clone())
	}
}

type nopPersister struct{}

func (nopPersister) Save(domain.Task)   {}
func (nopPersister) Update(domain.Task) {}
func (nopPersister) Delete(string)      {}
