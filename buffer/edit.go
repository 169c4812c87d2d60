package buffer

import (
	"strings"

	"github.com/iw2rmb/flourish-collab/internal/grapheme"
)

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		if _, ok := b.Selection(); ok {
			b.DeleteSelection()
		}
		return
	}

	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.applyLocal(r, s)
}

// InsertRune inserts a single rune at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	start := Pos{Row: row, Col: grapheme.Prev(b.lines[row], col)}
	if col == 0 {
		// Join with previous line (delete the newline).
		start = Pos{Row: row - 1, Col: len(b.lines[row-1])}
	}
	b.applyLocal(Range{Start: start, End: b.cursor}, "")
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	if b.cursor == b.endPos() {
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	end := Pos{Row: row, Col: grapheme.Next(b.lines[row], col)}
	if col == len(b.lines[row]) {
		// Join with next line (delete the newline).
		end = Pos{Row: row + 1, Col: 0}
	}
	b.applyLocal(Range{Start: b.cursor, End: end}, "")
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.applyLocal(r, "")
}

// ReplaceRange replaces r with text as a local edit. The cursor moves to the
// end of the inserted text and the selection is cleared.
func (b *Buffer) ReplaceRange(r Range, text string) bool {
	return b.applyLocal(r, text)
}

// ReplaceRangeFrom replaces r with text, attributing the edit to source.
//
// Remote edits remap the cursor and selection instead of moving them; see
// ApplyRemote.
func (b *Buffer) ReplaceRangeFrom(source ChangeSource, r Range, text string) bool {
	if source == ChangeSourceRemote {
		return b.ApplyRemote(TextEdit{Range: r, Text: text})
	}
	return b.applyLocal(r, text)
}

// TextInRange returns the text covered by r (clamped into the document).
func (b *Buffer) TextInRange(r Range) string {
	return textForLinesRange(b.lines, NormalizeRange(b.clampRange(r)))
}

func (b *Buffer) applyLocal(r Range, text string) bool {
	prev := b.snapshot()
	tx := b.begin(ChangeSourceLocal)

	end, changed := b.replace(tx, r, text)
	if !changed {
		return false
	}

	b.cursor = end
	b.sel = selectionState{}
	b.recordUndo(prev)
	return b.commit(tx)
}

// replace applies one atomic edit inside tx and returns the end of the
// inserted text in post-edit coordinates.
//
// Listeners see a BeforeChange before any state mutates. Marks, the cursor
// and the selection are remapped through the edit.
func (b *Buffer) replace(tx *transaction, r Range, text string) (end Pos, changed bool) {
	r = NormalizeRange(b.clampRange(r))
	if r.IsEmpty() && text == "" {
		return r.Start, false
	}

	removed := textForLinesRange(b.lines, r)
	if removed == text {
		return r.Start, false
	}

	parts := strings.Split(text, "\n")
	b.listeners.emitBefore(BeforeChange{
		From:   r.Start,
		To:     r.End,
		Text:   append([]string(nil), parts...),
		Origin: tx.source,
	})

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col

	prefix := append([]rune(nil), b.lines[startRow][:startCol]...)
	suffix := append([]rune(nil), b.lines[endRow][endCol:]...)

	repl := make([][]rune, 0, len(parts))
	if len(parts) == 1 {
		ins := []rune(parts[0])
		line := make([]rune, 0, len(prefix)+len(ins)+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins...)
		line = append(line, suffix...)
		repl = append(repl, line)
		end = Pos{Row: startRow, Col: len(prefix) + len(ins)}
	} else {
		first := append(prefix, []rune(parts[0])...)
		repl = append(repl, first)

		for i := 1; i < len(parts)-1; i++ {
			repl = append(repl, []rune(parts[i]))
		}

		lastPart := []rune(parts[len(parts)-1])
		last := make([]rune, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)

		end = Pos{Row: startRow + len(parts) - 1, Col: len(lastPart)}
	}

	out := make([][]rune, 0, startRow+len(repl)+len(b.lines)-endRow-1)
	out = append(out, b.lines[:startRow]...)
	out = append(out, repl...)
	out = append(out, b.lines[endRow+1:]...)
	b.lines = out

	b.remapThrough(r.Start, r.End, end)

	tx.records = append(tx.records, ChangeRecord{
		From:    r.Start,
		To:      r.End,
		Text:    parts,
		Removed: strings.Split(removed, "\n"),
		Origin:  tx.source,
	})
	return end, true
}

func textForLinesRange(lines [][]rune, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col

	if startRow == endRow {
		return string(lines[startRow][startCol:endCol])
	}

	var sb strings.Builder
	for row := startRow; row <= endRow; row++ {
		if row > startRow {
			sb.WriteByte('\n')
		}
		partStart := 0
		partEnd := len(lines[row])
		if row == startRow {
			partStart = startCol
		}
		if row == endRow {
			partEnd = endCol
		}
		sb.WriteString(string(lines[row][partStart:partEnd]))
	}
	return sb.String()
}
