// Package cache is durable client-local key-value storage, independent of the
// remote store. It holds the denormalized dashboard projection and the
// onboarding profile, keyed per owner so switching accounts can purge
// everything that belongs to someone else.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"syscall"

	"github.com/spf13/afero"
)

var (
	// ErrNoEntry reports a missing key.
	ErrNoEntry = errors.New("cache: no entry")

	// ErrStorageFull reports quota/disk exhaustion on write. Callers treat
	// it as degraded persistence, not failure.
	ErrStorageFull = errors.New("cache: storage full")
)

// CurrentUserKey holds the last-known owner id, used for cleanup heuristics
// when accounts switch.
const CurrentUserKey = "currentUser"

// Key builds an owner-tagged key. The tag is everything after the last colon;
// PurgeUserScoped relies on it.
func Key(name, ownerID string) string {
	return name + ":" + ownerID
}

// Store is a file-per-key JSON store on an afero filesystem. All operations
// are synchronous and local.
type Store struct {
	fs  afero.Fs
	dir string
}

func New(fsys afero.Fs, dir string) (*Store, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	return &Store{fs: fsys, dir: dir}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoEntry
		}

		return nil, fmt.Errorf("reading cache entry %q: %w", key, err)
	}

	return data, nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := afero.WriteFile(s.fs, s.path(key), value, 0o644); err != nil {
		if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
			return ErrStorageFull
		}

		return fmt.Errorf("writing cache entry %q: %w", key, err)
	}

	return nil
}

func (s *Store) Remove(key string) error {
	err := s.fs.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache entry %q: %w", key, err)
	}

	return nil
}

// KeysMatching returns every stored key the predicate accepts.
func (s *Store) KeysMatching(pred func(key string) bool) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}

	var keys []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		key := strings.TrimSuffix(e.Name(), ".json")
		if pred(key) {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// PurgeUserScoped removes every key tagged with a different owner than
// exceptOwnerID, and every untagged key. It records exceptOwnerID as the
// current user afterwards. Replaces the ad hoc substring cleanups the
// original did on account switch.
func (s *Store) PurgeUserScoped(exceptOwnerID string) error {
	keys, err := s.KeysMatching(func(key string) bool {
		owner, tagged := ownerTag(key)
		return !tagged || owner != exceptOwnerID
	})
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.Remove(key); err != nil {
			return err
		}
	}

	return s.Set(CurrentUserKey, []byte(exceptOwnerID))
}

// CurrentUser returns the last-known owner id, or ErrNoEntry.
func (s *Store) CurrentUser() (string, error) {
	data, err := s.Get(CurrentUserKey)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// GetJSON reads and unmarshals one entry. Returns ErrNoEntry on a miss.
func GetJSON[T any](s *Store, key string) (*T, error) {
	data, err := s.Get(key)
	if err != nil {
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding cache entry %q: %w", key, err)
	}

	return &v, nil
}

// PutJSON marshals and stores one entry.
func PutJSON[T any](s *Store, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	return s.Set(key, data)
}

func (s *Store) path(key string) string {
	return path.Join(s.dir, key+".json")
}

func ownerTag(key string) (string, bool) {
	idx := strings.LastIndexByte(key, ':')
	if idx < 0 {
		return "", false
	}

	return key[idx+1:], true
}
