package collab

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/iw2rmb/flourish-collab/buffer"
)

type SelectionManagerOptions struct {
	Host Host

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// SelectionManager owns the remote selections of one document, keyed by
// user id.
type SelectionManager struct {
	host Host
	log  *zap.Logger

	selections map[string]*RemoteSelection
	disposed   bool
}

func NewSelectionManager(opt SelectionManagerOptions) (*SelectionManager, error) {
	if opt.Host == nil {
		return nil, argError("Host", "must not be nil")
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &SelectionManager{
		host:       opt.Host,
		log:        log,
		selections: make(map[string]*RemoteSelection),
	}, nil
}

// AddSelection creates a visible, empty selection for id at offset 0.
func (m *SelectionManager) AddSelection(id, label, color string) (*RemoteSelection, error) {
	if m.disposed {
		return nil, ErrDisposed
	}
	if id == "" {
		return nil, m.reject(id, argError("id", "must not be empty"))
	}
	if _, ok := m.selections[id]; ok {
		return nil, m.reject(id, argError("id", "selection %q already exists", id))
	}
	hex, c, err := parseColor(color)
	if err != nil {
		return nil, m.reject(id, argError("color", "%q is not a hex color", color))
	}

	sel := &RemoteSelection{
		host:  m.host,
		log:   m.log,
		id:    id,
		label: label,
		style: buffer.MarkStyle{
			Color:      hex,
			LabelColor: labelForeground(c),
			Label:      label,
		},
		onDispose: m.forget,
	}
	m.selections[id] = sel
	sel.Show()
	m.log.Debug("selection added", zap.String("id", id), zap.String("color", hex))
	return sel, nil
}

// RemoveSelection disposes the selection for id.
func (m *SelectionManager) RemoveSelection(id string) error {
	sel, err := m.lookup(id)
	if err != nil {
		return err
	}
	sel.Dispose()
	return nil
}

func (m *SelectionManager) Selection(id string) (*RemoteSelection, bool) {
	sel, ok := m.selections[id]
	return sel, ok
}

// Selections returns the live selections ordered by id.
func (m *SelectionManager) Selections() []*RemoteSelection {
	out := make([]*RemoteSelection, 0, len(m.selections))
	for _, id := range slices.Sorted(maps.Keys(m.selections)) {
		out = append(out, m.selections[id])
	}
	return out
}

func (m *SelectionManager) SetSelectionOffsets(id string, start, end int) error {
	sel, err := m.lookup(id)
	if err != nil {
		return err
	}
	sel.SetOffsets(start, end)
	return nil
}

func (m *SelectionManager) SetSelectionPositions(id string, start, end buffer.Pos) error {
	sel, err := m.lookup(id)
	if err != nil {
		return err
	}
	sel.SetPositions(start, end)
	return nil
}

// Dispose disposes every selection. Calling it again is a no-op.
func (m *SelectionManager) Dispose() {
	if m.disposed {
		return
	}
	for _, sel := range m.Selections() {
		sel.Dispose()
	}
	m.disposed = true
}

func (m *SelectionManager) lookup(id string) (*RemoteSelection, error) {
	if m.disposed {
		return nil, ErrDisposed
	}
	sel, ok := m.selections[id]
	if !ok {
		return nil, m.reject(id, argError("id", "no selection %q", id))
	}
	return sel, nil
}

func (m *SelectionManager) forget(sel *RemoteSelection) {
	if m.selections[sel.id] == sel {
		delete(m.selections, sel.id)
	}
}

func (m *SelectionManager) reject(id string, err error) error {
	m.log.Warn("rejected selection call", zap.String("id", id), zap.Error(err))
	return err
}
