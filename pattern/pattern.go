// Package pattern stores grids as small YAML files.
package pattern

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"go-beatbox/sequencer"
)

// Ext is the pattern file extension
const Ext = ".yaml"

// File is the on-disk form of a pattern
type File struct {
	Name  string   `yaml:"name,omitempty"`
	Kit   string   `yaml:"kit,omitempty"`
	Tempo float64  `yaml:"tempo,omitempty"` // tempo factor, 1.0 = 120 bpm
	Rows  []string `yaml:"rows"`
}

// FromGrid captures a grid with its kit and tempo
func FromGrid(name string, grid sequencer.Grid, kit string, tempo float64) *File {
	return &File{
		Name:  name,
		Kit:   kit,
		Tempo: tempo,
		Rows:  grid.Rows(),
	}
}

// Grid parses the rows back into a grid
func (f *File) Grid() (sequencer.Grid, error) {
	return sequencer.ParseRows(f.Rows)
}

// Read decodes and validates a pattern
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse pattern: %w", err)
	}
	if _, err := f.Grid(); err != nil {
		return nil, err
	}
	if f.Tempo < 0 {
		return nil, fmt.Errorf("pattern tempo %v is negative", f.Tempo)
	}
	return &f, nil
}

// Write encodes a pattern
func (f *File) Write(w io.Writer) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Load reads a pattern file
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), Ext)
	}
	return f, nil
}

// Save writes a pattern file, creating its directory
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Write(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// Dir returns the patterns directory path
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-beatbox", "patterns"), nil
}

var unsafeChars = strings.NewReplacer(
	" ", "-", "/", "-", "\\", "-", ":", "-",
	"*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
)

// Sanitize makes a pattern name safe to use as a file name
func Sanitize(name string) string {
	return unsafeChars.Replace(strings.TrimSpace(name))
}

// PathFor returns where a named pattern lives in dir
func PathFor(dir, name string) string {
	return filepath.Join(dir, Sanitize(name)+Ext)
}

// Delete removes a named pattern from dir
func Delete(dir, name string) error {
	return os.Remove(PathFor(dir, name))
}

// List returns pattern names in dir, sorted
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}
