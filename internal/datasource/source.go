// Package datasource provides the durable key-value slots behind the window
// registry. A slot is one named value; backends are a JSON file per key, an
// SQLite table, or process memory.
package datasource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// SourceType identifies a slot backend.
type SourceType string

const (
	// SourceTypeFile stores each slot as <dir>/slots/<key>.json.
	SourceTypeFile SourceType = "file"
	// SourceTypeSQLite stores slots as rows of <dir>/slots.db.
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeMemory keeps slots in process memory only.
	SourceTypeMemory SourceType = "memory"
)

// ErrUnknownSource is returned by ParseSourceType for unsupported names.
var ErrUnknownSource = errors.New("unknown store backend")

// ParseSourceType maps a config or flag value to a SourceType.
// An empty value selects the file backend.
func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(strings.ToLower(strings.TrimSpace(s))) {
	case "", SourceTypeFile:
		return SourceTypeFile, nil
	case SourceTypeSQLite:
		return SourceTypeSQLite, nil
	case SourceTypeMemory:
		return SourceTypeMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// DataSource describes where slots live.
type DataSource struct {
	Type SourceType
	// Dir is the state directory; unused for memory slots.
	Dir string
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	if s.Type == SourceTypeMemory {
		return string(s.Type)
	}
	return fmt.Sprintf("%s (%s)", s.Dir, s.Type)
}

// Slot is one named value in a durable store.
type Slot interface {
	// Read returns the stored bytes. present is false if the key was never written.
	Read() (raw []byte, present bool, err error)
	// Write replaces the stored bytes.
	Write(raw []byte) error
	// Path returns the file backing the slot, or "" when there is none to watch.
	Path() string
	Close() error
}

// FilePath returns the path of the file slot for key under dir.
func FilePath(dir, key string) string {
	return filepath.Join(dir, "slots", sanitize(key)+".json")
}

// SQLitePath returns the path of the SQLite database under dir.
func SQLitePath(dir string) string {
	return filepath.Join(dir, "slots.db")
}

func sanitize(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}
