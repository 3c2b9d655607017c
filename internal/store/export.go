package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavelanni/clau-lessons/internal/model"
)

// ErrUserNotFound reports an export request for an id not in the store.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidImport reports an import file with the wrong app identifier or
// version.
var ErrInvalidImport = errors.New("invalid import file")

// ExportUserData serializes one user's profile and progress inside the
// export envelope.
func (s *Store) ExportUserData(userID string) ([]byte, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	u, ok := st.Users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	data := model.ExportedData{
		Version:    model.ExportVersion,
		ExportedAt: time.Now(),
		App:        model.AppID,
		User:       u,
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportUserData loads an exported snapshot as a new user. The envelope's
// app identifier and version must match exactly. The imported profile always
// gets a fresh id so it cannot collide with an existing local user, and the
// user is not made active.
func (s *Store) ImportUserData(raw []byte) (model.UserProfile, error) {
	var data model.ExportedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.UserProfile{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if data.App != model.AppID || data.Version != model.ExportVersion || data.User == nil {
		return model.UserProfile{}, ErrInvalidImport
	}

	st, err := s.load()
	if err != nil {
		return model.UserProfile{}, err
	}

	id := generateUserID(data.User.Profile.Nombre)
	profile := data.User.Profile
	profile.ID = id
	profile.LastLoginAt = time.Now()

	progress := data.User.Progress
	if progress.Subjects == nil {
		progress.Subjects = make(map[string]*model.SubjectProgress)
	}
	st.Users[id] = &model.UserData{
		Profile:  profile,
		Progress: progress,
	}

	if err := s.save(st); err != nil {
		return model.UserProfile{}, err
	}
	slog.Info("imported user data", "id", id)
	return profile, nil
}
