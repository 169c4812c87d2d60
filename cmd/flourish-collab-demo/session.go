package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type peerConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type sessionConfig struct {
	Text       string       `yaml:"text"`
	ShowLabels bool         `yaml:"show_labels"`
	LogFile    string       `yaml:"log_file"`
	Peers      []peerConfig `yaml:"peers"`
}

func defaultSession() sessionConfig {
	return sessionConfig{
		Text: "Two editors share this document.\n\n" +
			"Type in the left pane and watch the right one.\n" +
			"Ctrl+W switches panes. Ctrl+Q quits.",
		ShowLabels: true,
		Peers: []peerConfig{
			{Name: "alice", Color: "#e06c75"},
			{Name: "bob", Color: "#61afef"},
		},
	}
}

// loadSession reads a YAML session file over the defaults. An empty path
// returns the defaults. Peers without an id get a random one.
func loadSession(path string) (sessionConfig, error) {
	cfg := defaultSession()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return sessionConfig{}, fmt.Errorf("read session: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return sessionConfig{}, fmt.Errorf("parse session %s: %w", path, err)
		}
	}
	if len(cfg.Peers) != 2 {
		return sessionConfig{}, fmt.Errorf("session needs exactly 2 peers, got %d", len(cfg.Peers))
	}
	for i := range cfg.Peers {
		p := &cfg.Peers[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("peer %d", i+1)
		}
	}
	if cfg.Peers[0].ID == cfg.Peers[1].ID {
		return sessionConfig{}, fmt.Errorf("peers share id %q", cfg.Peers[0].ID)
	}
	return cfg, nil
}
