package scenario

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Catalog resolves scenarios from the built-ins and a list of directories.
// Later directories take precedence over earlier ones, and any directory
// takes precedence over a built-in of the same name.
type Catalog struct {
	dirs   []string
	logger *slog.Logger
}

// NewCatalog creates a catalog over dirs.
func NewCatalog(dirs []string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{dirs: dirs, logger: logger}
}

// Dirs returns the scanned directories.
func (c *Catalog) Dirs() []string {
	return c.dirs
}

// Find resolves name. A name of "1" to "4" selects a built-in by position.
func (c *Catalog) Find(name string) (*Scenario, error) {
	name = strings.TrimSuffix(filepath.ToSlash(name), ".toml")

	var found string
	for _, dir := range c.dirs {
		candidate := filepath.Join(dir, filepath.FromSlash(name)+".toml")
		if _, err := os.Stat(candidate); err == nil {
			// Keep going: later directories take precedence.
			found = candidate
		}
	}
	if found != "" {
		s, err := Load(found)
		if err != nil {
			return nil, err
		}
		s.Name = name
		s.Dir = filepath.Dir(found)
		return s, nil
	}

	if n, err := strconv.Atoi(name); err == nil {
		if s, ok := Builtin(n); ok {
			return &s, nil
		}
	}
	for _, s := range Builtins() {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("scenario '%s' not found in built-ins or any of the scenario directories: %v", name, c.dirs)
}

// List returns every scenario: built-ins first in display order, then file
// scenarios sorted by name. A file overriding a built-in replaces it in place.
func (c *Catalog) List() ([]Scenario, error) {
	files := make(map[string]Scenario)
	for _, dir := range c.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			c.logger.Debug("scenario directory does not exist", "dir", dir)
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".toml") {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}
			name := filepath.ToSlash(strings.TrimSuffix(rel, ".toml"))

			s, err := Load(path)
			if err != nil {
				c.logger.Warn("skipping scenario file", "path", path, "error", err)
				return nil
			}
			if prev, ok := files[name]; ok {
				c.logger.Debug("scenario overridden", "name", name, "previous", prev.Dir, "dir", dir)
			}
			s.Name = name
			s.Dir = dir
			files[name] = *s
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking scenario directory %s: %w", dir, err)
		}
	}

	var out []Scenario
	for _, b := range Builtins() {
		if s, ok := files[b.Name]; ok {
			out = append(out, s)
			delete(files, b.Name)
			continue
		}
		out = append(out, b)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, files[name])
	}
	return out, nil
}
