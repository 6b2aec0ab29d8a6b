// Package draft persists an in-progress submission record so a wizard
// session survives restarts. One durable slot per wizard flow, full-record
// write-through on every accepted mutation.
package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"janconnect/internal/logging"
	"janconnect/internal/report"
)

// SchemaVersion is bumped whenever the serialized record format changes.
// A stored draft with a different version is treated as "no draft" rather
// than risking a half-parsed record.
const SchemaVersion = 1

// Well-known slot keys for the two wizard flows.
const (
	KeyIssueReport = "issue-report"
	KeyLetter      = "grievance-letter"
)

// Store is the persistence port of the wizard controller. Implementations
// must treat Load of an absent or unreadable draft as "no draft", never as
// an error the caller has to handle.
type Store interface {
	// Load returns the persisted record, or nil when no usable draft
	// exists. Corrupt content is swallowed and reported as nil.
	Load() (*report.Record, error)
	// Save overwrites the slot with the full record.
	Save(rec *report.Record) error
	// Clear removes the slot. Clearing an absent slot is not an error.
	Clear() error
}

type envelope struct {
	SchemaVersion int            `json:"schema_version"`
	SavedAt       time.Time      `json:"saved_at"`
	Record        *report.Record `json:"record"`
}

// FileStore keeps one JSON draft file per slot key under dir.
type FileStore struct {
	dir string
	key string
}

// NewFileStore creates a file-backed store for the given slot key.
// Drafts live at <dir>/drafts/<key>.json.
func NewFileStore(dir, key string) *FileStore {
	return &FileStore{dir: filepath.Join(dir, "drafts"), key: key}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Load reads the persisted draft. Missing files, unreadable JSON, and
// schema mismatches all come back as (nil, nil): the user simply starts
// fresh, which is the original application's behavior.
func (s *FileStore) Load() (*report.Record, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			logging.DraftWarn("draft %s unreadable, starting fresh: %v", s.key, err)
		}
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logging.DraftWarn("draft %s corrupt, starting fresh: %v", s.key, err)
		return nil, nil
	}
	if env.SchemaVersion != SchemaVersion || env.Record == nil {
		logging.DraftWarn("draft %s has schema %d (want %d), starting fresh",
			s.key, env.SchemaVersion, SchemaVersion)
		return nil, nil
	}

	logging.Draft("loaded draft %s (saved %s)", s.key, env.SavedAt.Format(time.RFC3339))
	return env.Record, nil
}

// Save serializes and overwrites the slot unconditionally.
func (s *FileStore) Save(rec *report.Record) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create drafts directory: %w", err)
	}

	env := envelope{
		SchemaVersion: SchemaVersion,
		SavedAt:       time.Now().UTC(),
		Record:        rec,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}

	logging.DraftDebug("saved draft %s (%d bytes)", s.key, len(data))
	return nil
}

// Clear removes the slot.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	logging.Draft("cleared draft %s", s.key)
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
// It round-trips through JSON so it exercises the same serialization
// path as FileStore.
type MemStore struct {
	data []byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

// Load implements Store.
func (s *MemStore) Load() (*report.Record, error) {
	if s.data == nil {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(s.data, &env); err != nil || env.SchemaVersion != SchemaVersion {
		return nil, nil
	}
	return env.Record, nil
}

// Save implements Store.
func (s *MemStore) Save(rec *report.Record) error {
	data, err := json.Marshal(envelope{
		SchemaVersion: SchemaVersion,
		SavedAt:       time.Now().UTC(),
		Record:        rec,
	})
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// Clear implements Store.
func (s *MemStore) Clear() error {
	s.data = nil
	return nil
}
