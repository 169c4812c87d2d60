package editor

import (
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/flourish-collab/buffer"
	"github.com/iw2rmb/flourish-collab/internal/grapheme"
)

type markSpan struct {
	startCol int
	endCol   int // exclusive
	color    string
}

type markCaret struct {
	col   int
	color string
}

type rowDecorations struct {
	spans  []markSpan
	carets []markCaret
}

// spanAt returns the color of the newest range mark covering col.
func (rd rowDecorations) spanAt(col int) (string, bool) {
	for i := len(rd.spans) - 1; i >= 0; i-- {
		sp := rd.spans[i]
		if col >= sp.startCol && col < sp.endCol {
			return sp.color, true
		}
	}
	return "", false
}

// bookmarkAt returns the color of the newest bookmark at col.
func (rd rowDecorations) bookmarkAt(col int) (string, bool) {
	for i := len(rd.carets) - 1; i >= 0; i-- {
		if rd.carets[i].col == col {
			return rd.carets[i].color, true
		}
	}
	return "", false
}

type decorations struct {
	rows   []rowDecorations
	labels []markLabel
}

type markLabel struct {
	pos   buffer.Pos
	style buffer.MarkStyle
}

func collectDecorations(b *buffer.Buffer) decorations {
	d := decorations{rows: make([]rowDecorations, b.LineCount())}
	for _, mk := range b.Marks() {
		r, ok := mk.Find()
		if !ok {
			continue
		}
		st := mk.Style()
		switch mk.Kind() {
		case buffer.MarkBookmark:
			rd := &d.rows[r.Start.Row]
			rd.carets = append(rd.carets, markCaret{col: r.Start.Col, color: st.Color})
			if st.ShowLabel && st.Label != "" {
				d.labels = append(d.labels, markLabel{pos: r.Start, style: st})
			}
		default:
			if r.IsEmpty() {
				continue
			}
			for row := r.Start.Row; row <= r.End.Row; row++ {
				start, end := 0, len([]rune(b.Line(row)))
				if row == r.Start.Row {
					start = r.Start.Col
				}
				if row == r.End.Row {
					end = r.End.Col
				}
				if start < end {
					rd := &d.rows[row]
					rd.spans = append(rd.spans, markSpan{startCol: start, endCol: end, color: st.Color})
				}
			}
		}
	}
	return d
}

// overlayLabels composites bookmark labels onto the rendered viewport. A label
// sits on the row above its bookmark, or below it on the first visible row.
func (m Model) overlayLabels(view string) string {
	if m.buf == nil {
		return view
	}
	labels := collectDecorations(m.buf).labels
	if len(labels) == 0 {
		return view
	}

	height := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	width := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if height <= 0 || width <= 0 {
		return view
	}
	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	for _, l := range labels {
		y := l.pos.Row - m.viewport.YOffset
		if y < 0 || y >= height {
			continue
		}
		if y > 0 {
			y--
		} else if height > 1 {
			y++
		} else {
			continue
		}

		x := m.gutterWidth() + m.cellOffset(l.pos.Row, l.pos.Col)
		if x >= width {
			continue
		}
		text := m.renderLabel(l.style, width-x)
		if text == "" {
			continue
		}
		view = overlay.Composite(text, view, overlay.Left, overlay.Top, leftFrame+x, topFrame+y)
	}
	return view
}

func (m Model) renderLabel(st buffer.MarkStyle, maxWidth int) string {
	style := m.cfg.Style.MarkLabel.Background(m.markColor(st.Color))
	if st.LabelColor != "" {
		style = style.Foreground(lipgloss.Color(st.LabelColor))
	}
	frame := style.GetHorizontalFrameSize()
	text := grapheme.Truncate(st.Label, maxWidth-frame)
	if text == "" {
		return ""
	}
	return style.Render(text)
}
