package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/flourish-collab/buffer"
	"github.com/iw2rmb/flourish-collab/internal/grapheme"
)

type cellKind uint8

const (
	cellText cellKind = iota
	cellMark
	cellSelection
	cellBookmark
	cellCursor
)

// cellClass is the comparable rendering class of one rune cell; runs of equal
// classes are styled together.
type cellClass struct {
	kind  cellKind
	color string
}

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	rows := m.buf.LineCount()
	deco := collectDecorations(m.buf)
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(rows)
	}
	width := m.contentWidth(rows)

	out := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}
		sb.WriteString(m.renderLine(row, deco.rows[row], cursor, sel, selOK, width))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderLine draws one logical line, clipped to width cells (width <= 0
// disables clipping). Precedence, highest first: local cursor, bookmark
// caret, local selection, range mark.
func (m *Model) renderLine(row int, rd rowDecorations, cursor buffer.Pos, sel buffer.Range, selOK bool, width int) string {
	line := []rune(m.buf.Line(row))
	bounds := grapheme.Bounds(line)
	clusters := grapheme.Split(string(line))
	hasCursor := m.focused && cursor.Row == row
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, row, len(line))

	// classAt classifies the cell covering runes [from, to). A position inside
	// a cluster lights the whole cluster.
	classAt := func(from, to int) cellClass {
		if hasCursor && cursor.Col >= from && cursor.Col < to {
			return cellClass{kind: cellCursor}
		}
		for col := from; col < to; col++ {
			if color, ok := rd.bookmarkAt(col); ok {
				return cellClass{kind: cellBookmark, color: color}
			}
		}
		if hasSel && from >= selStart && from < selEnd {
			return cellClass{kind: cellSelection}
		}
		if color, ok := rd.spanAt(from); ok {
			return cellClass{kind: cellMark, color: color}
		}
		return cellClass{kind: cellText}
	}

	var sb strings.Builder
	var run strings.Builder
	runClass := cellClass{}
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(m.styleFor(runClass).Render(run.String()))
		run.Reset()
	}

	used := 0
	for k := 0; k <= len(clusters); k++ {
		from := bounds[k]
		text := " "
		cells := 1
		var class cellClass
		if k < len(clusters) {
			class = classAt(from, bounds[k+1])
			text = clusters[k]
			cells = grapheme.Cells(text, used, m.cfg.TabWidth)
			if text == "\t" {
				text = strings.Repeat(" ", cells)
			}
		} else {
			class = classAt(from, from+1)
			if class.kind == cellText || class.kind == cellMark || class.kind == cellSelection {
				// The end-of-line cell only exists to show a caret.
				break
			}
		}
		if width > 0 && used+cells > width {
			break
		}
		if class != runClass {
			flush()
			runClass = class
		}
		run.WriteString(text)
		used += cells
	}
	flush()
	return sb.String()
}

func (m *Model) styleFor(c cellClass) lipgloss.Style {
	st := m.cfg.Style
	switch c.kind {
	case cellCursor:
		return st.Cursor
	case cellBookmark, cellMark:
		return st.Text.Background(m.markColor(c.color))
	case cellSelection:
		return st.Selection
	default:
		return st.Text
	}
}

func (m *Model) markColor(c string) lipgloss.Color {
	if c == "" {
		return m.cfg.Style.MarkFallback
	}
	return lipgloss.Color(c)
}

func (m *Model) contentWidth(rows int) int {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if m.cfg.ShowLineNums {
		w -= gutterDigits(rows) + 1
	}
	return w
}

// gutterWidth is the number of cells taken by line numbers and their separator.
func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

func gutterDigits(rows int) int {
	return len(strconv.Itoa(max(rows, 1)))
}

func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = sel.Start.Col
	}
	if row == sel.End.Row {
		end = sel.End.Col
	}
	return start, end, start < end
}

// cellOffset returns the cell column of the cluster holding rune col of row.
func (m *Model) cellOffset(row, col int) int {
	line := []rune(m.buf.Line(row))
	bounds := grapheme.Bounds(line)
	used := 0
	for k, cluster := range grapheme.Split(string(line)) {
		if bounds[k+1] > col {
			break
		}
		used += grapheme.Cells(cluster, used, m.cfg.TabWidth)
	}
	return used
}
