package editor

import "github.com/iw2rmb/flourish-collab/buffer"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer. Ignored when Buffer is set.
	Text string

	// Buffer, when non-nil, is rendered instead of a new internal buffer.
	// Sharing it lets other components decorate or mutate the document.
	Buffer *buffer.Buffer

	// Rendering options.
	ShowLineNums bool
	Style        Style
	TabWidth     int // default: 4

	// Input options. A zero KeyMap means DefaultKeyMap().
	KeyMap    KeyMap
	ReadOnly  bool
	Clipboard Clipboard

	// Forwarded to buffer.Options.
	HistoryLimit int

	// OnChange fires after Update when the buffer version moved.
	OnChange func(ChangeEvent)
}

func normalizeConfig(cfg Config) Config {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	if len(cfg.KeyMap.Left.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	return cfg
}
