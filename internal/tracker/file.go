package tracker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospector-cli/internal/model"
)

// FileStore persists the tracking document as a single JSON side file.
// Writes go through a temp file and rename.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (*model.TrackingStore, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.NewTrackingStore(), nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "tracker: read %s", s.path)
	}

	var ts model.TrackingStore
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, eris.Wrapf(err, "tracker: unmarshal %s", s.path)
	}
	if ts.Contacts == nil {
		ts.Contacts = make(map[string]*model.LifecycleRecord)
	}
	if ts.Version == "" {
		ts.Version = model.TrackingStoreVersion
	}
	return &ts, nil
}

func (s *FileStore) Save(_ context.Context, ts *model.TrackingStore) error {
	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return eris.Wrap(err, "tracker: marshal store")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "tracker: mkdir %s", dir)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "tracker: write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return eris.Wrapf(err, "tracker: rename %s", s.path)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
