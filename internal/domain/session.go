package domain

import "time"

// Point is a pointer location in screen coordinates (y grows downward).
type Point struct {
	X float64
	Y float64
}

// RingConfiguration describes one rendering pass of the ring.
// It is fixed for the duration of a gesture.
// Fields are ordered to minimize memory padding.
type RingConfiguration struct {
	BaseDate        time.Time     // Calendar day being displayed
	Center          Point         // Ring center
	Radius          float64       // Ring radius, opaque scalar
	HitTolerance    float64       // Extra radius still counted as inside the ring
	ZeroPosition    float64       // Degrees where 00:00 sits, clockwise from top
	HandleTolerance time.Duration // Distance from a boundary that grabs a handle
}

// Contains reports whether p is inside the ring's hit region.
func (c RingConfiguration) Contains(p Point) bool {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	limit := c.Radius + c.HitTolerance
	return dx*dx+dy*dy <= limit*limit
}

// DragState is the state of the gesture state machine.
type DragState int

const (
	StateIdle                DragState = iota // No gesture
	StateDraggingStartHandle                  // Moving a task's start boundary
	StateDraggingEndHandle                    // Moving a task's end boundary
	StateDraggingWholeArc                     // Moving a whole task
	StateCreatingFromDrop                     // Dragging a category over the ring
)

// String returns the string representation of the state.
func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraggingStartHandle:
		return "dragging_start"
	case StateDraggingEndHandle:
		return "dragging_end"
	case StateDraggingWholeArc:
		return "dragging_arc"
	case StateCreatingFromDrop:
		return "creating"
	default:
		return "unknown"
	}
}

// Handle identifies the grabbed part of a task.
type Handle int

const (
	HandleNone Handle = iota
	HandleStart
	HandleEnd
	HandleWholeArc
)

// String returns the string representation of the handle.
func (h Handle) String() string {
	switch h {
	case HandleNone:
		return "none"
	case HandleStart:
		return "start"
	case HandleEnd:
		return "end"
	case HandleWholeArc:
		return "arc"
	default:
		return "unknown"
	}
}

// State returns the drag state a grab of this handle enters.
func (h Handle) State() DragState {
	switch h {
	case HandleStart:
		return StateDraggingStartHandle
	case HandleEnd:
		return StateDraggingEndHandle
	case HandleWholeArc:
		return StateDraggingWholeArc
	default:
		return StateIdle
	}
}

// DragSession is an immutable snapshot of the interaction state.
// Fields are ordered to minimize memory padding.
type DragSession struct {
	LastTime   *time.Time // Last pointer-derived time, nil before the first sample
	Preview    *Task      // Uncommitted task, only while creating from a drop
	TaskID     string     // Targeted task, empty when none
	CategoryID string     // Dropped category while creating
	EditingID  string     // Task selected for editing after a create commit
	State      DragState
	Handle     Handle
	Outside    bool // Pointer is outside the ring's hit region
	Conflict   bool // Last placement could not avoid an overlap
}

// Active reports whether a gesture is in progress.
func (s DragSession) Active() bool {
	return s.State != StateIdle
}

// Clone returns a deep copy so listeners can keep snapshots.
func (s DragSession) Clone() DragSession {
	out := s
	if s.LastTime != nil {
		t := *s.LastTime
		out.LastTime = &t
	}
	if s.Preview != nil {
		p := *s.Preview
		out.Preview = &p
	}
	return out
}
