package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/iw2rmb/flourish-collab/editor"
)

// Relayed peer edits reset the receiving buffer's undo history.
const helpText = "ctrl+w switch pane · ctrl+z/ctrl+y undo/redo own edits (a peer edit clears history) · ctrl+q quit"

type model struct {
	panes  [2]*pane
	active int

	width  int
	height int
}

func newModel(cfg sessionConfig, clip editor.Clipboard, log *zap.Logger) (model, error) {
	var m model
	for i := range m.panes {
		p, err := newPane(cfg.Peers[i], cfg, clip, log)
		if err != nil {
			return model{}, err
		}
		m.panes[i] = p
	}

	a, b := m.panes[0], m.panes[1]
	for _, step := range []func() error{
		func() error { return a.relayTo(b) },
		func() error { return b.relayTo(a) },
		func() error { return a.watch(b) },
		func() error { return b.watch(a) },
	} {
		if err := step(); err != nil {
			return model{}, err
		}
	}
	b.editor = b.editor.Blur()
	m.syncPresence()
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := paneSize(msg.Width, msg.Height)
		for _, p := range m.panes {
			p.editor = p.editor.SetSize(w, h)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+w":
			m.panes[m.active].editor = m.panes[m.active].editor.Blur()
			m.active = 1 - m.active
			m.panes[m.active].editor = m.panes[m.active].editor.Focus()
			return m, nil
		}
	}

	// The inactive pane only changes through relayed edits; its View picks
	// those up on its own.
	p := m.panes[m.active]
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	m.syncPresence()
	return m, cmd
}

func (m model) syncPresence() {
	a, b := m.panes[0], m.panes[1]
	a.mirror(b)
	b.mirror(a)
}

func (m model) View() string {
	w, _ := paneSize(m.width, m.height)
	cols := make([]string, 0, 3)
	for i, p := range m.panes {
		if i > 0 {
			cols = append(cols, separator(m.height-1))
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, p.header(w, i == m.active), p.editor.View()))
	}
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render(helpText)
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, cols...), help)
}

// paneSize splits the terminal into two editors, a one-cell separator, a
// header row per pane and a help row.
func paneSize(width, height int) (w, h int) {
	return max((width-1)/2, 0), max(height-2, 0)
}

func separator(height int) string {
	if height <= 0 {
		return ""
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	col := make([]string, height)
	for i := range col {
		col[i] = st.Render("│")
	}
	return lipgloss.JoinVertical(lipgloss.Left, col...)
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func run() error {
	configPath := flag.String("config", "", "YAML session file")
	logPath := flag.String("log", "", "debug log file (overrides log_file)")
	flag.Parse()

	cfg, err := loadSession(*configPath)
	if err != nil {
		return err
	}
	if *logPath != "" {
		cfg.LogFile = *logPath
	}

	log, err := newLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	m, err := newModel(cfg, systemClipboard{}, log)
	if err != nil {
		return err
	}
	defer func() {
		for _, p := range m.panes {
			p.dispose()
		}
	}()

	log.Info("session started",
		zap.String("left", cfg.Peers[0].Name),
		zap.String("right", cfg.Peers[1].Name))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
