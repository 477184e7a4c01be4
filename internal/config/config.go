// Package config loads the board's YAML settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"stickies/internal/canvas"
	"stickies/internal/domain"
)

// Config is the on-disk configuration. Zero values fall back to Default.
type Config struct {
	DataDir     string        `yaml:"data_dir"`
	DBFile      string        `yaml:"db_file"`
	GridUnit    float64       `yaml:"grid_unit"`
	Canvas      domain.Bounds `yaml:"canvas"`
	DefaultCard domain.Size   `yaml:"default_card"`
	MinCard     domain.Size   `yaml:"min_card"`
	DefaultText string        `yaml:"default_text"`
	Marquee     Marquee       `yaml:"marquee"`
	Backup      Backup        `yaml:"backup"`
	InboxDir    string        `yaml:"inbox_dir"`
	Editor      string        `yaml:"editor"`
	// MCPListen is the address the desktop app serves MCP on over HTTP,
	// e.g. "127.0.0.1:7717". Empty leaves MCP to the standalone command.
	MCPListen string `yaml:"mcp_listen"`
}

// Marquee controls drag-to-create.
type Marquee struct {
	Noise float64 `yaml:"noise"`  // px of jitter before a preview appears
	MinPx float64 `yaml:"min_px"` // width and height needed to create a card
}

// Backup controls scheduled exports. An empty schedule disables them.
type Backup struct {
	Schedule string `yaml:"schedule"`
	Dir      string `yaml:"dir"`
	Keep     int    `yaml:"keep"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "stickies")
	return Config{
		DataDir:     dataDir,
		DBFile:      "stickies.db",
		GridUnit:    16,
		DefaultCard: domain.Size{Width: 20, Height: 10},
		MinCard:     domain.Size{Width: 6, Height: 6},
		DefaultText: "New note",
		Marquee:     Marquee{Noise: 5, MinPx: 160},
		Backup:      Backup{Schedule: "@every 1h", Keep: 24},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stickies", "config.yaml")
	}
	return ""
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) fill() {
	d := Default()
	c.DataDir = expandHome(c.DataDir)
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.DBFile == "" {
		c.DBFile = d.DBFile
	}
	if c.GridUnit == 0 {
		c.GridUnit = d.GridUnit
	}
	if c.DefaultCard == (domain.Size{}) {
		c.DefaultCard = d.DefaultCard
	}
	if c.MinCard == (domain.Size{}) {
		c.MinCard = d.MinCard
	}
	if c.DefaultText == "" {
		c.DefaultText = d.DefaultText
	}
	if c.Marquee.MinPx == 0 {
		c.Marquee.MinPx = d.Marquee.MinPx
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = filepath.Join(c.DataDir, "backups")
	}
	c.Backup.Dir = expandHome(c.Backup.Dir)
	if c.Backup.Keep == 0 {
		c.Backup.Keep = d.Backup.Keep
	}
	if c.InboxDir == "" {
		c.InboxDir = filepath.Join(c.DataDir, "inbox")
	}
	c.InboxDir = expandHome(c.InboxDir)
}

// Validate rejects settings the geometry rules cannot work with.
func (c Config) Validate() error {
	switch {
	case c.GridUnit <= 0:
		return fmt.Errorf("grid_unit must be positive, got %v", c.GridUnit)
	case c.MinCard.Width <= 0 || c.MinCard.Height <= 0:
		return fmt.Errorf("min_card must be positive, got %vx%v", c.MinCard.Width, c.MinCard.Height)
	case c.Marquee.Noise < 0:
		return fmt.Errorf("marquee.noise must not be negative")
	case c.Canvas.Width < 0 || c.Canvas.Height < 0:
		return fmt.Errorf("canvas bounds must not be negative")
	}
	return nil
}

// DBPath is the SQLite file holding the board.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// Settings converts the config into gesture rules.
func (c Config) Settings() canvas.Settings {
	s := canvas.DefaultSettings()
	s.GridUnit = c.GridUnit
	s.Bounds = c.Canvas
	s.NoiseThreshold = c.Marquee.Noise
	s.MinCreatePx = c.Marquee.MinPx
	s.DefaultText = c.DefaultText
	return s
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
