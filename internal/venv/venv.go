// Package venv activates Python virtual environments for spawned
// tools. Activation is expressed as explicit environment overrides
// handed to the subprocess; the wrapper's own process environment is
// never mutated.
package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Activation represents an activated virtualenv for one tool run.
type Activation struct {
	// Root is the virtualenv directory (the one containing bin/ or
	// Scripts/).
	Root string
}

// New creates an activation for the virtualenv at root.
func New(root string) *Activation {
	return &Activation{Root: root}
}

// BinDir returns the directory holding the venv's executables.
func (a *Activation) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(a.Root, "Scripts")
	}
	return filepath.Join(a.Root, "bin")
}

// Validate checks that the virtualenv exists and looks usable.
func (a *Activation) Validate() error {
	if a.Root == "" {
		return fmt.Errorf("virtualenv path is empty")
	}

	info, err := os.Stat(a.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("virtualenv not found: %s", a.Root)
		}
		return fmt.Errorf("failed to stat virtualenv %s: %w", a.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("virtualenv is not a directory: %s", a.Root)
	}

	if _, err := os.Stat(a.BinDir()); err != nil {
		return fmt.Errorf("virtualenv has no executable directory: %s", a.BinDir())
	}

	return nil
}

// LookTool resolves an executable name against the venv's bin dir.
// It returns the absolute path and true when the venv provides the
// tool. Names with a path separator are left to normal resolution.
func (a *Activation) LookTool(name string) (string, bool) {
	if strings.ContainsRune(name, os.PathSeparator) {
		return "", false
	}

	candidates := []string{name}
	if runtime.GOOS == "windows" {
		candidates = append(candidates, name+".exe")
	}

	for _, c := range candidates {
		path := filepath.Join(a.BinDir(), c)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			return abs, true
		}
	}
	return "", false
}

// Env returns the environment overrides that activate the venv for a
// subprocess: PATH with the venv's bin dir prepended, VIRTUAL_ENV set
// to the root, and PYTHONHOME cleared so the venv's interpreter wins.
//
// Paths are made absolute because the subprocess may run in a
// different working directory than the wrapper.
func (a *Activation) Env() map[string]string {
	root, err := filepath.Abs(a.Root)
	if err != nil {
		root = a.Root
	}
	bin := filepath.Join(root, filepath.Base(a.BinDir()))

	path := bin
	if existing := os.Getenv("PATH"); existing != "" {
		path = path + string(os.PathListSeparator) + existing
	}

	return map[string]string{
		"PATH":        path,
		"VIRTUAL_ENV": root,
		"PYTHONHOME":  "",
	}
}
