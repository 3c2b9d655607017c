package store

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pavelanni/clau-lessons/internal/model"
)

// CreateUser registers a new profile with an empty progress tree, makes it
// the active user and persists the store.
func (s *Store) CreateUser(nombre, curso string) (model.UserProfile, error) {
	st, err := s.load()
	if err != nil {
		return model.UserProfile{}, err
	}

	id := generateUserID(nombre)
	now := time.Now()
	profile := model.UserProfile{
		ID:          id,
		Nombre:      strings.TrimSpace(nombre),
		Curso:       curso,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	st.Users[id] = &model.UserData{
		Profile:  profile,
		Progress: emptyProgress(),
	}
	st.ActiveUserID = id

	if err := s.save(st); err != nil {
		return model.UserProfile{}, err
	}
	slog.Info("created user", "id", id, "curso", curso)
	return profile, nil
}

// GetUser returns one user's record, or nil if the id is unknown.
func (s *Store) GetUser(userID string) (*model.UserData, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	return st.Users[userID], nil
}

// GetAllUsers returns every registered profile, oldest first.
func (s *Store) GetAllUsers() ([]model.UserProfile, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	profiles := make([]model.UserProfile, 0, len(st.Users))
	for _, u := range st.Users {
		profiles = append(profiles, u.Profile)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].CreatedAt.Equal(profiles[j].CreatedAt) {
			return profiles[i].ID < profiles[j].ID
		}
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	return profiles, nil
}

// GetActiveUser returns the active user's record, or nil when nobody is
// logged in.
func (s *Store) GetActiveUser() (*model.UserData, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	if st.ActiveUserID == "" {
		return nil, nil
	}
	return st.Users[st.ActiveUserID], nil
}

// SetActiveUser activates the given user and stamps the login time.
// Unknown ids are ignored.
func (s *Store) SetActiveUser(userID string) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	u, ok := st.Users[userID]
	if !ok {
		return nil
	}
	st.ActiveUserID = userID
	u.Profile.LastLoginAt = time.Now()
	return s.save(st)
}

// DeleteUser removes a user with all their progress. Deleting the active user
// clears the active pointer.
func (s *Store) DeleteUser(userID string) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	delete(st.Users, userID)
	if st.ActiveUserID == userID {
		st.ActiveUserID = ""
	}
	return s.save(st)
}

// Logout clears the active-user pointer. User data is retained.
func (s *Store) Logout() error {
	st, err := s.load()
	if err != nil {
		return err
	}
	st.ActiveUserID = ""
	return s.save(st)
}

// generateUserID builds an id from the slug of the display name plus a short
// random suffix. Uniqueness is probabilistic, not guaranteed.
func generateUserID(nombre string) string {
	suffix := make([]byte, 2)
	_, _ = rand.Read(suffix)
	return slugify(nombre) + "-" + hex.EncodeToString(suffix)
}

// slugify lowercases, strips diacritics and keeps [a-z0-9] runs joined by
// single dashes ("José Ángel" -> "jose-angel").
func slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
