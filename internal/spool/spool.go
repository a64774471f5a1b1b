// Package spool persists decompressed event bodies to a staging directory
// between the ingress handler's ack and the digest worker's transactional
// upsert, giving the ingest pipeline at-least-once durability across
// process restarts.
package spool

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arc-self/rustrak/internal/apperr"
)

// DefaultDir is used when no ingest directory is configured.
const DefaultDir = "/tmp/rustrak/ingest"

// Store is a file-per-event staging directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, falling back to DefaultDir if empty.
func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Dir reports the configured ingest directory.
func (s *Store) Dir() string { return s.dir }

// filePath validates eventID as a UUID (preventing path traversal via a
// crafted event id) and returns {dir}/{uuid-no-dashes}.json, matching the
// reference implementation's `as_simple()` filename form.
func (s *Store) filePath(eventID string) (string, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return "", apperr.Validation("invalid event_id format")
	}
	simple := id.String()
	simple = simple[0:8] + simple[9:13] + simple[14:18] + simple[19:23] + simple[24:36]
	return filepath.Join(s.dir, simple+".json"), nil
}

// Write creates the staging directory if needed and atomically stores data
// under eventID.
func (s *Store) Write(eventID string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to create ingest directory", err)
	}

	path, err := s.filePath(eventID)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to write event file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to finalize event file", err)
	}
	return nil
}

// Read loads the staged payload for eventID.
func (s *Store) Read(eventID string) ([]byte, error) {
	path, err := s.filePath(eventID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to read event file", err)
	}
	return data, nil
}

// Delete removes the staged payload for eventID, tolerating a missing file.
func (s *Store) Delete(eventID string) error {
	path, err := s.filePath(eventID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperr.Wrap(apperr.KindInternal, "failed to delete event file", err)
	}
	return nil
}

// ListEventIDs returns the event ids of every file currently staged, used
// by the boot-time digest sweep to re-drive events that survived a crash.
func (s *Store) ListEventIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list ingest directory", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		simple := name[:len(name)-len(".json")]
		if len(simple) != 32 {
			continue
		}
		id, err := uuid.Parse(dashedFromSimple(simple))
		if err != nil {
			continue
		}
		ids = append(ids, id.String())
	}
	return ids, nil
}

func dashedFromSimple(s string) string {
	if len(s) != 32 {
		return s
	}
	return s[0:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:32]
}
