package tui

import (
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgDayLoaded is sent when a day's tasks were fetched from the repository.
type MsgDayLoaded struct {
	Day   time.Time
	Err   error
	Tasks []domain.Task
}

func (MsgDayLoaded) sealed() {}

// MsgPersistFailed is sent when a background write failed.
// The ring keeps the change; only the stored copy is behind.
type MsgPersistFailed struct {
	Failure *domain.PersistenceFailure
}

func (MsgPersistFailed) sealed() {}

// MsgClearStatus clears the status line if it still shows the same text.
type MsgClearStatus struct {
	Text string
}

func (MsgClearStatus) sealed() {}
