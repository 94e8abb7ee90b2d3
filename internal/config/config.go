package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/shlex"
)

// DefaultPath is the project-local config file read when no --config
// flag is given.
const DefaultPath = ".lintrun.json"

// Config describes a single lint run: which directory to analyze,
// which tool to invoke, and which virtualenv to activate first.
type Config struct {
	// TargetDir is the directory the tool is executed in.
	TargetDir string `json:"target_dir"`

	// Tool is the analysis command, quoted shell-style
	// (e.g. "flake8 --max-line-length=100").
	Tool string `json:"tool"`

	// VenvDir is the virtualenv root to activate before running the
	// tool. Relative paths are resolved against TargetDir. Empty
	// disables activation.
	VenvDir string `json:"venv_dir,omitempty"`

	// TimeoutSeconds bounds the tool's execution time. Zero means no
	// timeout: the run blocks until the tool terminates.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// Default returns the configuration the wrapper uses when no config
// file exists: lint the backend_api tree with flake8 inside its venv.
func Default() *Config {
	return &Config{
		TargetDir: "backend_api",
		Tool:      "flake8",
		VenvDir:   "venv",
	}
}

// Load reads configuration from path. A missing file at the default
// path falls back to Default(); a missing file at an explicit path is
// an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the configuration to path with indented JSON.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the config describes a runnable command.
func (c *Config) Validate() error {
	if c.TargetDir == "" {
		return fmt.Errorf("target_dir must not be empty")
	}
	if c.Tool == "" {
		return fmt.Errorf("tool must not be empty")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	return nil
}

// ToolArgv splits the tool command string into executable + arguments
// using shell quoting rules.
func (c *Config) ToolArgv() ([]string, error) {
	argv, err := shlex.Split(c.Tool)
	if err != nil {
		return nil, fmt.Errorf("invalid tool command %q: %w", c.Tool, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("tool command is empty")
	}
	return argv, nil
}

// Timeout returns the configured timeout as a duration, or zero when
// unset.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
