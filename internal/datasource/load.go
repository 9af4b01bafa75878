package datasource

import (
	"fmt"
	"log/slog"
	"strings"
)

// Open returns the slot named key in source.
func Open(source DataSource, key string, logger *slog.Logger) (Slot, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("slot key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	switch source.Type {
	case SourceTypeMemory:
		return NewMemorySlot(), nil

	case SourceTypeFile, "":
		if strings.TrimSpace(source.Dir) == "" {
			return nil, fmt.Errorf("file store requires a state directory")
		}
		return NewFileSlot(FilePath(source.Dir, key), logger), nil

	case SourceTypeSQLite:
		if strings.TrimSpace(source.Dir) == "" {
			return nil, fmt.Errorf("sqlite store requires a state directory")
		}
		slot, err := NewSQLiteSlot(SQLitePath(source.Dir), key)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store in %s: %w", source.Dir, err)
		}
		return slot, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source.Type)
	}
}
