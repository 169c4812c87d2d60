package collab

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/flourish-collab/buffer"
)

// ErrDisposed is returned by calls on a disposed manager.
var ErrDisposed = errors.New("collab: disposed")

// ArgumentError reports an invalid argument. Param names the offending
// parameter or option field.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("collab: invalid %s: %s", e.Param, e.Reason)
}

func argError(param, format string, args ...any) *ArgumentError {
	return &ArgumentError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// ChangeError describes a broken classifier invariant. It is raised with
// panic, never returned: it means the before-change and changes
// notifications went out of step, which no caller can recover from.
type ChangeError struct {
	Reason string

	// Record is the host notification being classified, nil when the
	// failure was detected on leftover queue entries.
	Record *buffer.ChangeRecord

	// Queued is the pending change involved, when there was one.
	Queued *QueuedChange
}

// QueuedChange is a classifier queue entry: a change measured in rune
// offsets against the document before the edit. Nil Inserted or Deleted
// means nothing was inserted or removed.
type QueuedChange struct {
	From, To int
	Inserted *string
	Deleted  *string
}

func (e *ChangeError) Error() string {
	msg := "collab: unexpected change: " + e.Reason
	if e.Queued != nil {
		msg += fmt.Sprintf(" (queued %d..%d)", e.Queued.From, e.Queued.To)
	}
	if e.Record != nil {
		msg += fmt.Sprintf(" (record %s..%s %s)", e.Record.From, e.Record.To, e.Record.Origin)
	}
	return msg
}
