package buffer

import "strings"

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceRemote
	ChangeSourceHistory // undo/redo
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceLocal:
		return "local"
	case ChangeSourceRemote:
		return "remote"
	case ChangeSourceHistory:
		return "history"
	default:
		return "unknown"
	}
}

// BeforeChange is emitted once per atomic edit, before the document mutates.
// From and To are valid against the old document.
type BeforeChange struct {
	From   Pos
	To     Pos
	Text   []string // replacement split on '\n'; [""] when nothing is inserted
	Origin ChangeSource
}

// ChangeRecord describes one committed atomic edit. Records of a transaction
// are delivered together, in the order their BeforeChange notifications fired.
type ChangeRecord struct {
	From    Pos // in pre-edit coordinates
	To      Pos // in pre-edit coordinates
	Text    []string
	Removed []string
	Origin  ChangeSource
}

// InsertedText joins Text with newlines.
func (r ChangeRecord) InsertedText() string { return strings.Join(r.Text, "\n") }

// RemovedText joins Removed with newlines.
func (r ChangeRecord) RemovedText() string { return strings.Join(r.Removed, "\n") }

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// Change is a normalized, versioned summary of the last transaction.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	Records         []ChangeRecord
}

// LastChange returns the most recent effective text change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.Records = append([]ChangeRecord(nil), in.Records...)
	return out
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

type transaction struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    Pos
	selectionBefore SelectionState
	records         []ChangeRecord
}

func (b *Buffer) begin(source ChangeSource) *transaction {
	return &transaction{
		source:          source,
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectionBefore: selectionStateFromInternal(b.sel),
	}
}

// commit bumps the version and publishes the records of tx. It reports
// whether tx contained any effective edit.
func (b *Buffer) commit(tx *transaction) bool {
	if len(tx.records) == 0 {
		return false
	}
	b.version++
	b.lastChange = Change{
		Source:          tx.source,
		VersionBefore:   tx.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    tx.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: tx.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		Records:         append([]ChangeRecord(nil), tx.records...),
	}
	b.hasLastChange = true
	b.listeners.emitChanges(append([]ChangeRecord(nil), tx.records...))
	return true
}

type beforeListener struct {
	id uint64
	fn func(BeforeChange)
}

type changesListener struct {
	id uint64
	fn func([]ChangeRecord)
}

type listenerSet struct {
	seq     uint64
	before  []beforeListener
	changes []changesListener
}

// OnBeforeChange registers fn for every atomic edit, called before the
// document mutates. The returned func unregisters fn; calling it more than
// once is a no-op.
func (b *Buffer) OnBeforeChange(fn func(BeforeChange)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	ls := &b.listeners
	ls.seq++
	id := ls.seq
	ls.before = append(ls.before, beforeListener{id: id, fn: fn})
	return func() {
		for i, l := range ls.before {
			if l.id == id {
				ls.before = append(ls.before[:i:i], ls.before[i+1:]...)
				return
			}
		}
	}
}

// OnChanges registers fn for committed transactions. The returned func
// unregisters fn; calling it more than once is a no-op.
func (b *Buffer) OnChanges(fn func([]ChangeRecord)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	ls := &b.listeners
	ls.seq++
	id := ls.seq
	ls.changes = append(ls.changes, changesListener{id: id, fn: fn})
	return func() {
		for i, l := range ls.changes {
			if l.id == id {
				ls.changes = append(ls.changes[:i:i], ls.changes[i+1:]...)
				return
			}
		}
	}
}

func (ls *listenerSet) emitBefore(ev BeforeChange) {
	for _, l := range append([]beforeListener(nil), ls.before...) {
		l.fn(ev)
	}
}

func (ls *listenerSet) emitChanges(batch []ChangeRecord) {
	for _, l := range append([]changesListener(nil), ls.changes...) {
		l.fn(batch)
	}
}
