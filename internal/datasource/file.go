package datasource

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSlot stores a slot as a single file, written atomically via a temp file
// and rename so concurrent readers never see a partial value.
type FileSlot struct {
	path string
	log  *slog.Logger
}

// NewFileSlot returns a slot stored at path. The file is created on first write.
func NewFileSlot(path string, logger *slog.Logger) *FileSlot {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSlot{path: path, log: logger.With("slot_path", path)}
}

// Read returns the file contents; a missing file is not an error.
func (s *FileSlot) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("slot load miss")
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Write replaces the file contents.
func (s *FileSlot) Write(raw []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "slot-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	s.log.Debug("slot save ok", "bytes", len(raw))
	return nil
}

// Path returns the slot file.
func (s *FileSlot) Path() string {
	return s.path
}

// Close is a no-op.
func (s *FileSlot) Close() error {
	return nil
}
