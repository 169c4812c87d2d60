package buffer

import (
	"sort"

	"github.com/iw2rmb/flourish-collab/internal/grapheme"
)

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, updates selection anchor/end; if false clears selection
}

func (b *Buffer) Move(m Move) {
	prevCursor := b.cursor
	prevSel := b.sel

	nextCursor := b.clampPos(b.moveCursor(prevCursor, m))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != nextCursor {
			nextSel = selectionState{active: true, anchor: anchor, end: nextCursor}
		}
	}

	if prevCursor == nextCursor && selectionStateEqual(prevSel, nextSel) {
		return
	}

	b.cursor = nextCursor
	b.sel = nextSel
	b.version++
}

func selectionStateEqual(a, b selectionState) bool {
	if !a.active && !b.active {
		return true
	}
	return a.active == b.active && a.anchor == b.anchor && a.end == b.end
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveRune:
		return b.moveRune(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveLine:
		return b.moveLine(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(m.Dir, p)
	default:
		return p
	}
}

func (b *Buffer) moveRune(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirLeft:
		if row == 0 && col == 0 {
			return p
		}
		if col > 0 {
			return Pos{Row: row, Col: grapheme.Prev(b.lines[row], col)}
		}
		return Pos{Row: row - 1, Col: len(b.lines[row-1])}
	case DirRight:
		if row == lastRow && col == len(b.lines[lastRow]) {
			return p
		}
		if col < len(b.lines[row]) {
			return Pos{Row: row, Col: grapheme.Next(b.lines[row], col)}
		}
		return Pos{Row: row + 1, Col: 0}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveWord(p Pos, dir MoveDir) Pos {
	line := b.lines[p.Row]

	switch dir {
	case DirLeft:
		return Pos{Row: p.Row, Col: prevWordBoundary(line, p.Col)}
	case DirRight:
		return Pos{Row: p.Row, Col: nextWordBoundary(line, p.Col)}
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveLine(p Pos, dir MoveDir) Pos {
	row, col := p.Row, p.Col
	lastRow := len(b.lines) - 1

	switch dir {
	case DirHome:
		return Pos{Row: row, Col: 0}
	case DirEnd:
		return Pos{Row: row, Col: len(b.lines[row])}
	case DirUp:
		if row == 0 {
			return p
		}
		return Pos{Row: row - 1, Col: grapheme.Snap(b.lines[row-1], col)}
	case DirDown:
		if row == lastRow {
			return p
		}
		return Pos{Row: row + 1, Col: grapheme.Snap(b.lines[row+1], col)}
	default:
		return p
	}
}

func (b *Buffer) moveDoc(dir MoveDir, p Pos) Pos {
	switch dir {
	case DirHome, DirUp:
		return Pos{}
	case DirEnd, DirDown:
		return b.endPos()
	default:
		return p
	}
}

// Word boundary rules:
// - skip whitespace clusters, then skip non-whitespace clusters
// - newline is a hard boundary (so this operates on a single logical line)
func prevWordBoundary(line []rune, col int) int {
	bounds := grapheme.Bounds(line)
	clusters := grapheme.Split(string(line))
	col = clampInt(col, 0, len(line))
	i := clusterIndex(bounds, col)
	if bounds[i] < col {
		i++
	}
	for i > 0 && grapheme.IsSpace(clusters[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(clusters[i-1]) {
		i--
	}
	return bounds[i]
}

func nextWordBoundary(line []rune, col int) int {
	bounds := grapheme.Bounds(line)
	clusters := grapheme.Split(string(line))
	i := clusterIndex(bounds, clampInt(col, 0, len(line)))
	for i < len(clusters) && grapheme.IsSpace(clusters[i]) {
		i++
	}
	for i < len(clusters) && !grapheme.IsSpace(clusters[i]) {
		i++
	}
	return bounds[i]
}

// clusterIndex returns the index of the cluster containing col, or
// len(bounds)-1 when col is the end of the line.
func clusterIndex(bounds []int, col int) int {
	return sort.SearchInts(bounds, col+1) - 1
}
