// Package listing enumerates the entries of the browsed directory.
package listing

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

var (
	// ErrNoEntries is returned when a directory has no visible entry.
	ErrNoEntries = errors.New("no files found")

	errNotDir = errors.New("path is not a directory")
)

// Entry is a single directory entry.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Loader reads the entries of one directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader for dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the directory being listed.
func (l *Loader) Dir() string {
	return l.dir
}

// List returns the visible entries sorted by name, ignoring case. Hidden
// entries (leading dot) are skipped.
func (l *Loader) List() ([]Entry, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", l.dir, errNotDir)
	}

	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if isHidden(name) {
			continue
		}
		entry := Entry{Name: name, IsDir: de.IsDir()}
		if fi, err := de.Info(); err == nil && !de.IsDir() {
			entry.Size = fi.Size()
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEntries, l.dir)
	}

	sortEntries(entries)
	return entries, nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		li, lj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if li != lj {
			return li < lj
		}
		return entries[i].Name < entries[j].Name
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Label returns the text shown for entry. Names wider than maxWidth cells
// are cut and end with an ellipsis; maxWidth <= 0 keeps the full name.
func Label(entry Entry, maxWidth int) string {
	name := entry.Name
	if maxWidth <= 0 || ansi.StringWidth(name) <= maxWidth {
		return name
	}
	return ansi.Truncate(name, maxWidth, ellipsis)
}
