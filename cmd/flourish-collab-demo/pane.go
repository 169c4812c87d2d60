package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/iw2rmb/flourish-collab/buffer"
	"github.com/iw2rmb/flourish-collab/collab"
	"github.com/iw2rmb/flourish-collab/editor"
)

// pane is one participant: a private copy of the document, the editor
// showing it, and the decorations for the other participant.
type pane struct {
	peer   peerConfig
	editor editor.Model

	content    *collab.ContentManager
	cursors    *collab.CursorManager
	selections *collab.SelectionManager

	log *zap.Logger
}

func newPane(peer peerConfig, cfg sessionConfig, clip editor.Clipboard, log *zap.Logger) (*pane, error) {
	buf := buffer.New(cfg.Text, buffer.Options{})
	ed := editor.New(editor.Config{
		Buffer:       buf,
		ShowLineNums: true,
		Style:        editor.DefaultStyle(),
		Clipboard:    clip,
	})

	log = log.With(zap.String("peer", peer.Name))
	cursors, err := collab.NewCursorManager(collab.CursorManagerOptions{
		Host:       buf,
		ShowLabels: cfg.ShowLabels,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}
	selections, err := collab.NewSelectionManager(collab.SelectionManagerOptions{Host: buf, Logger: log})
	if err != nil {
		return nil, err
	}
	return &pane{peer: peer, editor: ed, cursors: cursors, selections: selections, log: log}, nil
}

// relayTo forwards every local edit of p into dst.
func (p *pane) relayTo(dst *pane) error {
	report := func(op string, err error) {
		if err != nil {
			p.log.Error("relay failed", zap.String("op", op), zap.Error(err))
		}
	}
	content, err := collab.NewContentManager(collab.ContentManagerOptions{
		Host: p.editor.Buffer(),
		OnInsert: func(offset int, text string) {
			report("insert", dst.content.Insert(offset, text))
		},
		OnReplace: func(offset, length int, text string) {
			report("replace", dst.content.Replace(offset, length, text))
		},
		OnDelete: func(offset, length int) {
			report("delete", dst.content.Delete(offset, length))
		},
		Logger: p.log,
	})
	if err != nil {
		return err
	}
	p.content = content
	return nil
}

// watch adds decorations for the participant editing in src.
func (p *pane) watch(src *pane) error {
	if _, err := p.cursors.AddCursor(src.peer.ID, src.peer.Name, src.peer.Color); err != nil {
		return fmt.Errorf("cursor for %s: %w", src.peer.Name, err)
	}
	if _, err := p.selections.AddSelection(src.peer.ID, src.peer.Name, src.peer.Color); err != nil {
		return fmt.Errorf("selection for %s: %w", src.peer.Name, err)
	}
	return nil
}

// mirror copies src's local cursor and selection onto p's decorations.
func (p *pane) mirror(src *pane) {
	b := src.editor.Buffer()
	off, _ := b.RuneOffsetFromPos(b.Cursor(), buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp})
	_ = p.cursors.SetCursorOffset(src.peer.ID, off)

	start, end := off, off
	if r, ok := b.Selection(); ok {
		start, _ = b.RuneOffsetFromPos(r.Start, buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp})
		end, _ = b.RuneOffsetFromPos(r.End, buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp})
	}
	_ = p.selections.SetSelectionOffsets(src.peer.ID, start, end)
}

func (p *pane) dispose() {
	p.content.Dispose()
	p.cursors.Dispose()
	p.selections.Dispose()
}

func (p *pane) header(width int, focused bool) string {
	title := p.peer.Name
	if focused {
		title += " *"
	}
	if p.editor.Buffer().CanUndo() {
		title += " [undo]"
	}
	st := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Bold(focused).
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(p.peer.Color))
	return st.Render(title)
}
