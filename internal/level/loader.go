package level

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/meadow.yaml
var meadowYAML []byte

// Meadow returns the built-in level.
func Meadow() (*Geometry, error) {
	return Parse(meadowYAML)
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]*Geometry, error) {
	var levels []*Geometry

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(path) {
			return nil
		}

		g, err := LoadFile(path)
		if err != nil {
			return nil
		}
		levels = append(levels, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadByID loads a specific level by ID from the loader root.
func (l *Loader) LoadByID(id string) (*Geometry, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, g := range levels {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, fmt.Errorf("level not found: %s", id)
}

// LoadFile loads a single level file.
func LoadFile(path string) (*Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	g.FilePath = path
	return g, nil
}

// LooksLikePath reports whether ref names a level file rather than a level ID.
func LooksLikePath(ref string) bool {
	return isLevelFile(ref) || strings.ContainsRune(ref, os.PathSeparator)
}

func isLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
