// Package config collects command line flags and environment overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"MyDrawingPad/internal/state"
	"MyDrawingPad/internal/store"
)

const (
	AppID     = "com.example.mydrawingpad"
	URLScheme = "drawingpad://"

	DefaultPort = 8888

	BackendDir  = "dir"
	BackendBolt = "bolt"

	EnvDataDir = "DRAWINGPAD_DIR"
	EnvBackend = "DRAWINGPAD_BACKEND"
)

// Config is the resolved startup configuration.
type Config struct {
	DataDir   string
	Backend   string
	UndoLimit int

	// Mirror is the listen address of the read-only live mirror, empty when off.
	Mirror    string
	Advertise bool

	// View is a drawingpad:// link to follow instead of drawing locally.
	View   string
	Browse bool

	List   bool
	Export string
	Output string
}

// DefaultDataDir is <user config dir>/MyDrawingPad/Drawings.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "MyDrawingPad", "Drawings")
}

// Parse reads args (without the program name). Environment values fill in
// anything not given on the command line.
func Parse(args []string, getenv func(string) string, stderr io.Writer) (Config, error) {
	cfg := Config{}
	fs := flag.NewFlagSet("drawingpad", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.DataDir, "dir", "", "Directory holding saved drawings (or "+EnvDataDir+")")
	fs.StringVar(&cfg.Backend, "backend", "", "Storage backend: dir or bolt (or "+EnvBackend+")")
	fs.IntVar(&cfg.UndoLimit, "undo", state.DefaultUndoLimit, "Maximum undo steps (at most 50)")
	fs.StringVar(&cfg.Mirror, "mirror", "", "Serve a read-only live mirror on this address, e.g. :8888")
	fs.BoolVar(&cfg.Advertise, "advertise", true, "Advertise the mirror on the local network")
	fs.StringVar(&cfg.View, "view", "", "Follow a mirror, e.g. "+URLScheme+"192.168.1.20:8888")
	fs.BoolVar(&cfg.Browse, "browse", false, "Find a mirror on the local network and follow it")
	fs.BoolVar(&cfg.List, "list", false, "Print saved drawings and exit")
	fs.StringVar(&cfg.Export, "export", "", "Export the saved drawing with this name or id and exit")
	fs.StringVar(&cfg.Output, "o", "", "Output file for -export (.png or .pdf)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `MyDrawingPad - freehand drawing

Usage:
  drawingpad [options]
  drawingpad %shost:port
  drawingpad -list
  drawingpad -export NAME -o drawing.pdf

Options:
`, URLScheme)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	// A bare link as first argument opens viewer mode, as the OS hands it over.
	if rest := fs.Args(); len(rest) > 0 && strings.HasPrefix(rest[0], URLScheme) && cfg.View == "" {
		cfg.View = rest[0]
	}

	if cfg.DataDir == "" {
		cfg.DataDir = getenv(EnvDataDir)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.Backend == "" {
		cfg.Backend = getenv(EnvBackend)
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendDir
	}

	return cfg, cfg.Validate()
}

// Validate checks flag combinations.
func (c Config) Validate() error {
	if c.Backend != BackendDir && c.Backend != BackendBolt {
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendDir, BackendBolt)
	}
	if c.UndoLimit <= 0 || c.UndoLimit > state.DefaultUndoLimit {
		return fmt.Errorf("undo limit must be between 1 and %d", state.DefaultUndoLimit)
	}
	if c.Export != "" && c.Output == "" {
		return errors.New("-export needs -o")
	}
	if c.View != "" && !strings.HasPrefix(c.View, URLScheme) {
		return fmt.Errorf("view link must start with %s", URLScheme)
	}
	return nil
}

// ViewAddress returns the host:port part of the view link.
func (c Config) ViewAddress() string {
	return strings.TrimSuffix(strings.TrimPrefix(c.View, URLScheme), "/")
}

// OpenRecords opens the configured storage medium.
func (c Config) OpenRecords() (store.Records, error) {
	switch c.Backend {
	case BackendBolt:
		if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", c.DataDir, err)
		}
		return store.OpenBolt(filepath.Join(c.DataDir, "drawings.db"))
	default:
		return store.OpenDir(c.DataDir)
	}
}

// ShareLink builds the link viewers use to follow this instance's mirror.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s:%d", URLScheme, host, port)
}
