package buffer

// Apply applies a sequence of text edits in order as one local transaction.
// Each edit's range is interpreted against the buffer state at the time that
// edit is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last applied (effective) edit.
// - Selection is cleared if any edit applies.
func (b *Buffer) Apply(edits ...TextEdit) {
	if len(edits) == 0 {
		return
	}

	prev := b.snapshot()
	tx := b.begin(ChangeSourceLocal)

	lastCursor := b.cursor
	for _, e := range edits {
		end, changed := b.replace(tx, e.Range, e.Text)
		if changed {
			lastCursor = end
		}
	}
	if len(tx.records) == 0 {
		return
	}

	b.cursor = b.clampPos(lastCursor)
	b.sel = selectionState{}
	b.recordUndo(prev)
	b.commit(tx)
}

// ApplyRemote applies edits produced by another participant as one
// transaction attributed to ChangeSourceRemote.
//
// Unlike Apply, the local cursor and selection are not moved to the edit;
// they are remapped through it (text inserted exactly at the cursor lands
// after it). Undo history is dropped because its snapshots no longer describe
// a document the local user produced.
func (b *Buffer) ApplyRemote(edits ...TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	tx := b.begin(ChangeSourceRemote)
	for _, e := range edits {
		b.replace(tx, e.Range, e.Text)
	}
	if len(tx.records) == 0 {
		return false
	}

	b.hist = historyState{}
	return b.commit(tx)
}
