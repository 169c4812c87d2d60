package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/flourish-collab/buffer"
)

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model

	lastBufVersion   uint64
	lastDecorVersion uint64
	lastCursor       buffer.Pos
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	buf := cfg.Buffer
	if buf == nil {
		buf = buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit})
	}
	m := Model{
		cfg:      cfg,
		buf:      buf,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.markSynced()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.buf == nil {
		return m, nil
	}

	prevVersion := m.buf.Version()
	prevChange, _ := m.buf.LastChange()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		// Rebuild content in case the host mutated the buffer outside of the editor.
		// Don't force-follow the cursor; allow manual scrolling via mouse wheel.
		m.syncFromBuffer()
		return m, cmd
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	}

	if m.cfg.OnChange != nil && m.buf.Version() != prevVersion {
		ch, _ := m.buf.LastChange()
		textChanged := ch.VersionAfter != prevChange.VersionAfter
		m.cfg.OnChange(buildChangeEvent(m.buf, textChanged))
	}
	if m.syncFromBuffer() {
		m.followCursor()
	}
	return m, cmd
}

// View renders the viewport. Changes made to the buffer or its marks since the
// last Update are picked up here, so remote decorations show up without a
// dedicated message.
func (m Model) View() string {
	if m.stale() {
		m.syncFromBuffer()
	}
	return m.overlayLabels(m.viewport.View())
}

func (m *Model) stale() bool {
	return m.buf != nil && (m.buf.Version() != m.lastBufVersion ||
		m.buf.DecorationVersion() != m.lastDecorVersion ||
		m.buf.Cursor() != m.lastCursor)
}

func (m *Model) markSynced() {
	m.lastBufVersion = m.buf.Version()
	m.lastDecorVersion = m.buf.DecorationVersion()
	m.lastCursor = m.buf.Cursor()
}

func (m *Model) syncFromBuffer() (cursorChanged bool) {
	if !m.stale() {
		return false
	}
	cursorChanged = m.buf.Cursor() != m.lastCursor
	m.markSynced()
	m.rebuildContent()
	return cursorChanged
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}
}
