package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go-applyninja-automation/internal/models"
)

// ErrNoProfile means no resume has been uploaded yet.
var ErrNoProfile = errors.New("no candidate profile found")

// Store is the persisted-state surface the bot works against: the candidate
// profile, the application history and the stop sentinel.
type Store interface {
	LoadProfile() (*models.CandidateProfile, error)
	SaveProfile(p *models.CandidateProfile) error

	History() ([]models.ApplicationRecord, error)
	AppendHistory(rec models.ApplicationRecord) error
	ClearHistory() error

	RequestStop() error
	ClearStop() error
	StopRequested() bool
}

// FileStore keeps every document as a whole JSON file inside one directory.
// Writes go through a temp file + rename so concurrent readers (the upload
// handler runs in another goroutine) never observe a partial document.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

const (
	profileFile  = "user_data.json"
	historyFile  = "application_history.json"
	stopSentinel = "stop_signal.txt"
)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.dir, name)
}

// writeAtomic replaces the target file in one rename, never in place.
func (fs *FileStore) writeAtomic(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp := fs.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tmp, fs.path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (fs *FileStore) LoadProfile() (*models.CandidateProfile, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path(profileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p models.CandidateProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

func (fs *FileStore) SaveProfile(p *models.CandidateProfile) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.writeAtomic(profileFile, p)
}

func (fs *FileStore) History() ([]models.ApplicationRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.readHistory()
}

func (fs *FileStore) readHistory() ([]models.ApplicationRecord, error) {
	data, err := os.ReadFile(fs.path(historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.ApplicationRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var history []models.ApplicationRecord
	if err := json.Unmarshal(data, &history); err != nil {
		//corrupted history is treated as empty, not fatal
		log.Printf("⚠️ Could not parse %s, starting fresh: %v", historyFile, err)
		return []models.ApplicationRecord{}, nil
	}
	return history, nil
}

// AppendHistory inserts the record at the head so the list stays newest-first.
func (fs *FileStore) AppendHistory(rec models.ApplicationRecord) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	history, err := fs.readHistory()
	if err != nil {
		return err
	}

	history = append([]models.ApplicationRecord{rec}, history...)
	return fs.writeAtomic(historyFile, history)
}

func (fs *FileStore) ClearHistory() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.writeAtomic(historyFile, []models.ApplicationRecord{})
}

func (fs *FileStore) RequestStop() error {
	return os.WriteFile(fs.path(stopSentinel), []byte("stop"), 0644)
}

func (fs *FileStore) ClearStop() error {
	err := os.Remove(fs.path(stopSentinel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// StopRequested reports whether the sentinel exists. Existence alone is the
// signal, the content is irrelevant.
func (fs *FileStore) StopRequested() bool {
	_, err := os.Stat(fs.path(stopSentinel))
	return err == nil
}
