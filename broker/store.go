package broker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leadkit/igbroker/instagram"
)

// Record is the on-disk shape of a persisted session. The session settings
// are stored verbatim as produced by the client so an older record stays
// restorable after client upgrades.
type Record struct {
	Username string             `json:"username"`
	Session  instagram.Settings `json:"session"`
	SavedAt  time.Time          `json:"savedAt"`
}

// FileStore persists one JSON record per account in a flat directory.
// Writes replace the whole record atomically via temp file and rename.
type FileStore struct {
	dir string
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("broker: state directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("broker: create state directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(accountID string) string {
	return filepath.Join(s.dir, accountID+".json")
}

// Save writes the record for accountID, replacing any previous one.
func (s *FileStore) Save(accountID string, rec Record) error {
	rec.SavedAt = rec.SavedAt.UTC().Truncate(time.Second)
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("broker: encode session record: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, accountID+".*.tmp")
	if err != nil {
		return fmt.Errorf("broker: create temp record: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("broker: write session record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("broker: close session record: %w", err)
	}
	if err := os.Rename(tmpName, s.path(accountID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("broker: replace session record: %w", err)
	}
	return nil
}

// Load reads the record for accountID. It returns ErrRecordNotFound when no
// record exists and ErrRecordCorrupt when the file cannot be decoded.
func (s *FileStore) Load(accountID string) (Record, error) {
	data, err := os.ReadFile(s.path(accountID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, fmt.Errorf("broker: read session record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Join(ErrRecordCorrupt, err)
	}
	return rec, nil
}

// Delete removes the record for accountID. A missing record is not an error.
func (s *FileStore) Delete(accountID string) error {
	if err := os.Remove(s.path(accountID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("broker: delete session record: %w", err)
	}
	return nil
}

// Exists reports whether a record is present without decoding it.
func (s *FileStore) Exists(accountID string) bool {
	_, err := os.Stat(s.path(accountID))
	return err == nil
}
