package buffer

import "github.com/sergi/go-diff/diffmatchpatch"

type bufferSnapshot struct {
	text   string
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		text:   b.Text(),
		cursor: b.cursor,
		sel:    b.sel,
	}
}

// restore moves the document to s as one ChangeSourceHistory transaction.
//
// The text difference is narrowed to the single span between the common
// prefix and suffix, so observers see one minimal edit rather than a
// whole-document replacement.
func (b *Buffer) restore(s bufferSnapshot) {
	tx := b.begin(ChangeSourceHistory)

	if start, end, text, ok := narrowEdit(b.Text(), s.text); ok {
		from, _ := b.PosFromRuneOffset(start, ConvertPolicy{ClampMode: OffsetClamp})
		to, _ := b.PosFromRuneOffset(end, ConvertPolicy{ClampMode: OffsetClamp})
		b.replace(tx, Range{Start: from, End: to}, text)
	}

	b.cursor = b.clampPos(s.cursor)
	b.sel = selectionState{}
	if s.sel.active {
		anchor := b.clampPos(s.sel.anchor)
		end := b.clampPos(s.sel.end)
		if anchor != end {
			b.sel = selectionState{active: true, anchor: anchor, end: end}
		}
	}

	if !b.commit(tx) {
		b.version++
	}
}

// narrowEdit returns the rune span [start, end) of before that must be
// replaced with text to produce after.
func narrowEdit(before, after string) (start, end int, text string, ok bool) {
	if before == after {
		return 0, 0, "", false
	}

	dmp := diffmatchpatch.New()
	a, c := []rune(before), []rune(after)
	prefix := dmp.DiffCommonPrefix(before, after)
	suffix := dmp.DiffCommonSuffix(string(a[prefix:]), string(c[prefix:]))

	return prefix, len(a) - suffix, string(c[prefix : len(c)-suffix]), true
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}

	cur := b.snapshot()

	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	b.restore(prev)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}

	cur := b.snapshot()

	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	if limit := b.opt.HistoryLimit; limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	b.restore(next)
	return true
}
