// Package store persists user profiles, progress history and in-progress exam
// state. The aggregate record is always read, mutated in memory and written
// back whole; the in-progress exam cache lives under separate keys so answer
// updates do not rewrite the aggregate.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavelanni/clau-lessons/internal/model"
)

const (
	storeKey  = "clau_lessons_store"
	legacyKey = "clau_lessons_profile"
)

// Store is the persistent multi-user progress record over a pluggable
// backend. It assumes a single writer; there is no cross-process coordination.
type Store struct {
	backend Backend
}

// New opens a store over the given backend and runs the one-shot legacy
// migration if a pre-v1 record is present.
func New(backend Backend) (*Store, error) {
	s := &Store{backend: backend}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func emptyStore() *model.AppStore {
	return &model.AppStore{
		Version: model.StoreVersion,
		Users:   make(map[string]*model.UserData),
	}
}

// load returns the aggregate, substituting an empty store for missing or
// corrupted data. Persisted local state is best-effort and never blocks the
// caller.
func (s *Store) load() (*model.AppStore, error) {
	raw, err := s.backend.Get(storeKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return emptyStore(), nil
	}
	var st model.AppStore
	if err := json.Unmarshal(raw, &st); err != nil {
		slog.Warn("corrupted store record, starting empty", "error", err)
		return emptyStore(), nil
	}
	if st.Users == nil {
		st.Users = make(map[string]*model.UserData)
	}
	return &st, nil
}

func (s *Store) save(st *model.AppStore) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	return s.backend.Set(storeKey, raw)
}

// migrate converts the v0 single-profile record into a single-user aggregate.
// It only acts while no aggregate exists yet, so it runs at most once; a
// corrupted legacy record is left in place and ignored.
func (s *Store) migrate() error {
	old, err := s.backend.Get(legacyKey)
	if err != nil {
		return err
	}
	if old == nil {
		return nil
	}
	existing, err := s.backend.Get(storeKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	var legacy model.LegacyProfile
	if err := json.Unmarshal(old, &legacy); err != nil {
		slog.Warn("corrupted legacy profile, skipping migration", "error", err)
		return nil
	}

	id := generateUserID(legacy.Nombre)
	now := time.Now()
	st := emptyStore()
	st.ActiveUserID = id
	st.Users[id] = &model.UserData{
		Profile: model.UserProfile{
			ID:          id,
			Nombre:      legacy.Nombre,
			Curso:       legacy.Curso,
			CreatedAt:   legacy.CreatedAt,
			LastLoginAt: now,
		},
		Progress: emptyProgress(),
	}

	if err := s.save(st); err != nil {
		return err
	}
	if err := s.backend.Delete(legacyKey); err != nil {
		return err
	}
	slog.Info("migrated legacy profile", "user_id", id)
	return nil
}
