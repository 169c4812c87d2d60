package collab

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/iw2rmb/flourish-collab/buffer"
)

type CursorManagerOptions struct {
	Host Host

	// ShowLabels draws each cursor's label next to its caret.
	ShowLabels bool

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// CursorManager owns the remote cursors of one document, keyed by user id.
type CursorManager struct {
	host       Host
	log        *zap.Logger
	showLabels bool

	cursors  map[string]*RemoteCursor
	disposed bool
}

func NewCursorManager(opt CursorManagerOptions) (*CursorManager, error) {
	if opt.Host == nil {
		return nil, argError("Host", "must not be nil")
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &CursorManager{
		host:       opt.Host,
		log:        log,
		showLabels: opt.ShowLabels,
		cursors:    make(map[string]*RemoteCursor),
	}, nil
}

// AddCursor creates a visible cursor for id at offset 0. color is a hex
// color ("#rgb" or "#rrggbb").
func (m *CursorManager) AddCursor(id, label, color string) (*RemoteCursor, error) {
	if m.disposed {
		return nil, ErrDisposed
	}
	if id == "" {
		return nil, m.reject(id, argError("id", "must not be empty"))
	}
	if _, ok := m.cursors[id]; ok {
		return nil, m.reject(id, argError("id", "cursor %q already exists", id))
	}
	hex, c, err := parseColor(color)
	if err != nil {
		return nil, m.reject(id, argError("color", "%q is not a hex color", color))
	}

	cur := &RemoteCursor{
		host:  m.host,
		log:   m.log,
		id:    id,
		label: label,
		style: buffer.MarkStyle{
			Color:      hex,
			LabelColor: labelForeground(c),
			Label:      label,
			ShowLabel:  m.showLabels && label != "",
		},
		onDispose: m.forget,
	}
	m.cursors[id] = cur
	cur.Show()
	m.log.Debug("cursor added", zap.String("id", id), zap.String("color", hex))
	return cur, nil
}

// RemoveCursor disposes the cursor for id.
func (m *CursorManager) RemoveCursor(id string) error {
	cur, err := m.lookup(id)
	if err != nil {
		return err
	}
	cur.Dispose()
	return nil
}

func (m *CursorManager) Cursor(id string) (*RemoteCursor, bool) {
	cur, ok := m.cursors[id]
	return cur, ok
}

// Cursors returns the live cursors ordered by id.
func (m *CursorManager) Cursors() []*RemoteCursor {
	out := make([]*RemoteCursor, 0, len(m.cursors))
	for _, id := range slices.Sorted(maps.Keys(m.cursors)) {
		out = append(out, m.cursors[id])
	}
	return out
}

func (m *CursorManager) SetCursorOffset(id string, offset int) error {
	cur, err := m.lookup(id)
	if err != nil {
		return err
	}
	cur.SetOffset(offset)
	return nil
}

func (m *CursorManager) SetCursorPosition(id string, p buffer.Pos) error {
	cur, err := m.lookup(id)
	if err != nil {
		return err
	}
	cur.SetPosition(p)
	return nil
}

// Dispose disposes every cursor. Calling it again is a no-op.
func (m *CursorManager) Dispose() {
	if m.disposed {
		return
	}
	for _, cur := range m.Cursors() {
		cur.Dispose()
	}
	m.disposed = true
}

func (m *CursorManager) lookup(id string) (*RemoteCursor, error) {
	if m.disposed {
		return nil, ErrDisposed
	}
	cur, ok := m.cursors[id]
	if !ok {
		return nil, m.reject(id, argError("id", "no cursor %q", id))
	}
	return cur, nil
}

func (m *CursorManager) forget(cur *RemoteCursor) {
	if m.cursors[cur.id] == cur {
		delete(m.cursors, cur.id)
	}
}

func (m *CursorManager) reject(id string, err error) error {
	m.log.Warn("rejected cursor call", zap.String("id", id), zap.Error(err))
	return err
}
