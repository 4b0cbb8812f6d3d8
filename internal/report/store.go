// Package report archives completed research sessions for later inspection.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the metadata recorded for one research run.
type Session struct {
	ID             string    `json:"id"`
	Query          string    `json:"query"`
	Model          string    `json:"model"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	StepsTotal     int       `json:"steps_total"`
	StepsCompleted int       `json:"steps_completed"`
}

// GenerateSessionID creates a unique session identifier.
func GenerateSessionID() string {
	u := uuid.New().String()
	return "research_" + strings.ReplaceAll(u[:8], "-", "")
}

// Store persists sessions as directories of meta.json + report.md under a
// base directory. Writes are tmp + rename so listings never see torn files.
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) dir(id string) string { return filepath.Join(s.baseDir, id) }

// Save archives a completed session: its metadata and the final report.
func (s *Store) Save(sess *Session, report string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == "" {
		sess.ID = GenerateSessionID()
	}

	if err := os.MkdirAll(s.dir(sess.ID), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	meta, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session meta: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir(sess.ID), "meta.json"), meta); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir(sess.ID), "report.md"), []byte(report))
}

// List returns archived sessions, most recently started first.
func (s *Store) List() ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list sessions dir: %w", err)
	}

	var sessions []*Session
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "meta.json"))
		if err != nil {
			continue // skip corrupted sessions
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

// ReadReport returns the archived report for a session.
func (s *Store) ReadReport(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dir(id), "report.md"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("session not found: %s", id)
		}
		return "", fmt.Errorf("read report: %w", err)
	}
	return string(data), nil
}

// writeFileAtomic writes content using a temp file + rename.
func writeFileAtomic(path string, content []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write %s tmp: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
