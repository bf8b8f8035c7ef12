// Package config provides reading and writing of dtags configuration.
//
// The config file lives beside the mapping in the store root
// (~/.dtags/config.yaml by default). A missing file is not an error: every
// setting has a default and only explicitly set values are written back.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// FileName is the config file name inside the store root.
const FileName = "config.yaml"

// Colour modes.
const (
	ColourAuto   = "auto"
	ColourAlways = "always"
	ColourNever  = "never"
)

// ColourModes lists the accepted values of the colour setting.
var ColourModes = []string{ColourAuto, ColourAlways, ColourNever}

// Defaults applied when a setting is absent.
const (
	DefaultEditor = "vi"
	DefaultShell  = "/bin/sh"
)

// Config contains configuration for dtags.
type Config struct {
	Colour  string `yaml:"colour,omitempty"`
	Editor  string `yaml:"editor,omitempty"`
	Shell   string `yaml:"shell,omitempty"`
	Confirm *bool  `yaml:"confirm,omitempty"`
	Log     *bool  `yaml:"log,omitempty"`

	// path is the file this config was loaded from (for Save)
	path string
}

// Validate checks that all configured values are acceptable.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Colour != "" && !slices.Contains(ColourModes, c.Colour) {
		return fmt.Errorf("%w: colour must be one of %v, got %q", ErrInvalidValue, ColourModes, c.Colour)
	}
	return nil
}

// ColourMode returns the colour setting (defaults to auto).
func (c *Config) ColourMode() string {
	if c.Colour == "" {
		return ColourAuto
	}
	return c.Colour
}

// UseColour resolves the colour setting for an output stream.
// In auto mode colour follows tty, and the NO_COLOR convention turns it off.
func (c *Config) UseColour(tty bool) bool {
	switch c.ColourMode() {
	case ColourAlways:
		return true
	case ColourNever:
		return false
	}
	return tty && os.Getenv("NO_COLOR") == ""
}

// EditorCommand returns the editor used by "dtags edit".
// Priority: config > $VISUAL > $EDITOR > vi.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return DefaultEditor
}

// ShellCommand returns the shell used by "dtags run".
// Priority: config > $SHELL > /bin/sh.
func (c *Config) ShellCommand() string {
	if c.Shell != "" {
		return c.Shell
	}
	if v := os.Getenv("SHELL"); v != "" {
		return v
	}
	return DefaultShell
}

// ConfirmChanges returns whether changes need confirmation (defaults to true).
func (c *Config) ConfirmChanges() bool {
	if c.Confirm == nil {
		return true
	}
	return *c.Confirm
}

// LogEnabled returns whether the audit log is written (defaults to true).
func (c *Config) LogEnabled() bool {
	if c.Log == nil {
		return true
	}
	return *c.Log
}

// Path returns the config file for a store root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the configuration stored under root.
func Load(root string) (*Config, error) {
	path := Path(root)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// File returns the path this config was loaded from.
func (c *Config) File() string { return c.path }

// Save writes the configuration back to the file it was loaded from.
// Creates parent directories as needed with mode 0755.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
