package buffer

// MarkKind distinguishes range markers from point bookmarks.
type MarkKind uint8

const (
	MarkRange MarkKind = iota
	MarkBookmark
)

// MarkStyle is view-only decoration data carried by a mark. The buffer never
// interprets it; the editor renders it.
type MarkStyle struct {
	Color      string // background for ranges, caret for bookmarks
	LabelColor string // label foreground; empty means renderer default
	Label      string
	ShowLabel  bool
}

// Mark is a document-anchored decoration. Its range follows edits: text
// inserted at either boundary of a range mark stays outside it, and text
// typed at a bookmark lands after it.
type Mark struct {
	b       *Buffer
	id      uint64
	kind    MarkKind
	start   Pos
	end     Pos
	style   MarkStyle
	cleared bool
}

// MarkRange adds a range mark over r (clamped and normalized).
func (b *Buffer) MarkRange(r Range, st MarkStyle) *Mark {
	r = NormalizeRange(b.clampRange(r))
	return b.addMark(&Mark{kind: MarkRange, start: r.Start, end: r.End, style: st})
}

// SetBookmark adds a point mark at p (clamped).
func (b *Buffer) SetBookmark(p Pos, st MarkStyle) *Mark {
	p = b.clampPos(p)
	return b.addMark(&Mark{kind: MarkBookmark, start: p, end: p, style: st})
}

func (b *Buffer) addMark(m *Mark) *Mark {
	b.markSeq++
	m.b = b
	m.id = b.markSeq
	b.marks = append(b.marks, m)
	b.decorVersion++
	return m
}

// Marks returns the live marks in creation order.
func (b *Buffer) Marks() []*Mark {
	return append([]*Mark(nil), b.marks...)
}

// DecorationVersion increments whenever a mark is added, moved, restyled or
// cleared. Text edits that remap marks bump Version instead.
func (b *Buffer) DecorationVersion() uint64 { return b.decorVersion }

func (m *Mark) Kind() MarkKind { return m.kind }

func (m *Mark) Style() MarkStyle { return m.style }

// Find returns the current range of m. Bookmarks report an empty range.
// ok is false once the mark has been cleared.
func (m *Mark) Find() (r Range, ok bool) {
	if m.cleared {
		return Range{}, false
	}
	return Range{Start: m.start, End: m.end}, true
}

// Set moves m to r. Bookmarks use r.Start only.
func (m *Mark) Set(r Range) {
	if m.cleared {
		return
	}
	if m.kind == MarkBookmark {
		r.End = r.Start
	}
	r = NormalizeRange(m.b.clampRange(r))
	if r.Start == m.start && r.End == m.end {
		return
	}
	m.start, m.end = r.Start, r.End
	m.b.decorVersion++
}

// Clear removes m from its buffer. Clearing twice is a no-op.
func (m *Mark) Clear() {
	if m.cleared {
		return
	}
	m.cleared = true
	b := m.b
	for i, other := range b.marks {
		if other == m {
			b.marks = append(b.marks[:i:i], b.marks[i+1:]...)
			break
		}
	}
	b.decorVersion++
}

// remapThrough moves marks, the cursor and the selection through an edit that
// replaced [from, to) with text ending at newEnd.
func (b *Buffer) remapThrough(from, to, newEnd Pos) {
	for _, m := range b.marks {
		switch m.kind {
		case MarkBookmark:
			m.start = remapPos(m.start, from, to, newEnd, true)
			m.end = m.start
		default:
			m.start = remapPos(m.start, from, to, newEnd, false)
			m.end = remapPos(m.end, from, to, newEnd, true)
			if ComparePos(m.end, m.start) < 0 {
				m.end = m.start
			}
		}
	}

	b.cursor = remapPos(b.cursor, from, to, newEnd, true)
	if b.sel.active {
		b.sel.anchor = remapPos(b.sel.anchor, from, to, newEnd, true)
		b.sel.end = remapPos(b.sel.end, from, to, newEnd, true)
		if b.sel.anchor == b.sel.end {
			b.sel = selectionState{}
		}
	}
}

// remapPos maps p through the replacement of [from, to) by text ending at
// newEnd. Positions inside the replaced span collapse to from. For a pure
// insertion at p, stickLeft keeps p before the inserted text.
func remapPos(p, from, to, newEnd Pos, stickLeft bool) Pos {
	if ComparePos(p, from) < 0 {
		return p
	}
	c := ComparePos(p, to)
	if c < 0 {
		return from
	}
	if c == 0 && from == to && stickLeft {
		return p
	}
	if p.Row == to.Row {
		return Pos{Row: newEnd.Row, Col: newEnd.Col + p.Col - to.Col}
	}
	return Pos{Row: p.Row + newEnd.Row - to.Row, Col: p.Col}
}
