package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pavelanni/clau-lessons/internal/model"
)

func TestExportUserData(t *testing.T) {
	s := newTestStore(t)
	profile, _ := s.CreateUser("Ana", "2º Primaria")
	s.RecordExamAttempt(profile.ID, "lengua", "acentos", testAttempt(4, 5))

	raw, err := s.ExportUserData(profile.ID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	var data model.ExportedData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if data.App != model.AppID {
		t.Errorf("expected app %q, got %q", model.AppID, data.App)
	}
	if data.Version != model.ExportVersion {
		t.Errorf("expected version %d, got %d", model.ExportVersion, data.Version)
	}
	if data.ExportedAt.IsZero() {
		t.Error("expected a non-zero exportedAt")
	}
	if data.User == nil || data.User.Profile.Nombre != "Ana" {
		t.Fatal("expected the user record inside the envelope")
	}
	if len(data.User.Progress.Subjects["lengua"].Topics["acentos"].ExamAttempts) != 1 {
		t.Error("expected progress to be included in the export")
	}
}

func TestExportUnknownUser(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ExportUserData("nobody-0000"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestImportUserData(t *testing.T) {
	src := newTestStore(t)
	profile, _ := src.CreateUser("Ana", "2º Primaria")
	src.RecordExamAttempt(profile.ID, "lengua", "acentos", testAttempt(4, 5))
	raw, err := src.ExportUserData(profile.ID)
	if err != nil {
		t.Fatalf("ExportUserData: %v", err)
	}

	dst := newTestStore(t)
	existing, _ := dst.CreateUser("Luis", "3º Primaria")

	imported, err := dst.ImportUserData(raw)
	if err != nil {
		t.Fatalf("ImportUserData: %v", err)
	}
	if imported.Nombre != "Ana" || imported.Curso != "2º Primaria" {
		t.Errorf("unexpected imported profile: %+v", imported)
	}
	if imported.ID == profile.ID {
		t.Error("import must allocate a fresh id")
	}

	progress, _ := dst.GetProgress(imported.ID)
	if len(progress.Subjects["lengua"].Topics["acentos"].ExamAttempts) != 1 {
		t.Error("expected imported progress history")
	}

	// Importing does not steal the active slot.
	active, _ := dst.GetActiveUser()
	if active == nil || active.Profile.ID != existing.ID {
		t.Error("import must not change the active user")
	}
}

func TestImportRejectsInvalidEnvelope(t *testing.T) {
	s := newTestStore(t)

	cases := map[string][]byte{
		"not json":      []byte("{nope"),
		"wrong app":     mustExport(t, model.ExportVersion, "other-app"),
		"wrong version": mustExport(t, 99, model.AppID),
		"missing user":  []byte(`{"version":1,"app":"clau-lessons"}`),
	}
	for name, raw := range cases {
		if _, err := s.ImportUserData(raw); !errors.Is(err, ErrInvalidImport) {
			t.Errorf("%s: expected ErrInvalidImport, got %v", name, err)
		}
	}

	users, _ := s.GetAllUsers()
	if len(users) != 0 {
		t.Error("rejected imports must not create users")
	}
}

func mustExport(t *testing.T, version int, app string) []byte {
	t.Helper()
	raw, err := json.Marshal(model.ExportedData{
		Version:    version,
		ExportedAt: time.Now(),
		App:        app,
		User: &model.UserData{
			Profile:  model.UserProfile{ID: "ana-0000", Nombre: "Ana"},
			Progress: emptyProgress(),
		},
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}
