package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/timekeeper"
)

const stateFileName = "state.yaml"

// FileStore keeps the session in a local YAML file.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStatePath returns the state file location for appName.
func DefaultStatePath(appName string) (string, error) {
	return resolveConfigPath(appName, stateFileName)
}

// Save writes the session atomically.
func (store *FileStore) Save(_ context.Context, snapshot timekeeper.Snapshot) error {
	serialized, err := yaml.Marshal(RecordFromSnapshot(snapshot))
	if err != nil {
		return errors.Wrap(err, "marshal state yaml")
	}
	return writeFileAtomic(store.path, serialized)
}

// Load reads the session.
func (store *FileStore) Load(_ context.Context) (timekeeper.Snapshot, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return timekeeper.Snapshot{}, timekeeper.ErrNoState
		}
		return timekeeper.Snapshot{}, errors.Wrap(err, "read state file")
	}

	var record Record
	if err := yaml.Unmarshal(rawData, &record); err != nil {
		return timekeeper.Snapshot{}, errors.Wrap(err, "parse state yaml")
	}
	return record.Snapshot(), nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}
