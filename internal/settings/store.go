package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// Store reads and writes the snapshot file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a snapshot file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the snapshot. It returns (nil, nil) when no file exists or
// the file holds a JSON null, and a *FormatError when the file is not a
// valid snapshot.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, pkgerrors.WithStack(&FormatError{Path: s.path, Err: err})
	}

	var fields requiredFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, pkgerrors.WithStack(&FormatError{Path: s.path, Err: err})
	}
	if err := validate(&snap, &fields); err != nil {
		return nil, pkgerrors.WithStack(&FormatError{Path: s.path, Err: err})
	}

	return &snap, nil
}

// requiredFields detects keys whose zero value would otherwise be taken
// as real settings. An explicit null counts as missing.
type requiredFields struct {
	Position *json.RawMessage `json:"position"`
	Monitors *json.RawMessage `json:"monitors"`
}

func validate(snap *Snapshot, fields *requiredFields) error {
	if fields.Position == nil {
		return errors.New(`missing "position"`)
	}
	if fields.Monitors == nil {
		return errors.New(`missing "monitors"`)
	}

	seen := make(map[int]bool, len(snap.Monitors))
	for i, m := range snap.Monitors {
		if m.Index < 0 {
			return fmt.Errorf("monitor %d: negative index %d", i, m.Index)
		}
		if seen[m.Index] {
			return fmt.Errorf("monitor %d: duplicate index %d", i, m.Index)
		}
		seen[m.Index] = true

		if m.Width < 0 || m.Height < 0 {
			return fmt.Errorf("monitor %d: negative size %dx%d", m.Index, m.Width, m.Height)
		}
	}
	return nil
}

// Save writes snap, replacing any previous file. The data goes to a
// temporary file in the same directory which is then renamed over the
// target, so a failed save leaves the old snapshot intact.
func (s *Store) Save(snap *Snapshot) error {
	if s.path == "" {
		return pkgerrors.WithStack(&PersistenceError{Err: errors.New("settings path not set")})
	}

	out := *snap
	if out.Monitors == nil {
		out.Monitors = []MonitorRecord{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return s.persistErr(fmt.Errorf("failed to marshal settings: %w", err))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return s.persistErr(fmt.Errorf("failed to create settings directory: %w", err))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return s.persistErr(err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return s.persistErr(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return s.persistErr(err)
	}
	if err := tmp.Close(); err != nil {
		return s.persistErr(err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return s.persistErr(err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return s.persistErr(err)
	}

	committed = true
	return nil
}

func (s *Store) persistErr(err error) error {
	return pkgerrors.WithStack(&PersistenceError{Path: s.path, Err: err})
}
