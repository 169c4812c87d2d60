package editor

import "github.com/iw2rmb/flourish-collab/buffer"

type ChangeEvent struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection buffer.SelectionState

	// Change is the text transaction behind this event, or nil when only
	// the cursor or selection moved.
	Change *buffer.Change

	Text string
}

func buildChangeEvent(b *buffer.Buffer, textChanged bool) ChangeEvent {
	ev := ChangeEvent{
		Version: b.Version(),
		Cursor:  b.Cursor(),
		Text:    b.Text(),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection = buffer.SelectionState{Active: true, Range: r}
	}
	if textChanged {
		if ch, ok := b.LastChange(); ok {
			ev.Change = &ch
		}
	}
	return ev
}
