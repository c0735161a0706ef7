package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"starledger/internal/model"
)

// FileStore keeps the ledger table in one JSON document. Save writes to a
// temp file in the same directory and renames it over the target, so a
// crash mid-write leaves the previous snapshot intact.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to path. The file itself is
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (map[string]*model.UserLedger, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]*model.UserLedger), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading ledger file: %v", err)
	}

	users := make(map[string]*model.UserLedger)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("error decoding ledger file: %v", err)
	}
	return users, nil
}

func (f *FileStore) Save(users map[string]*model.UserLedger) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("error encoding ledger: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".ledger-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %v", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing ledger file: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error syncing ledger file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing ledger file: %v", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing ledger file: %v", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
