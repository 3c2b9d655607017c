package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/clau-lessons/internal/content"
	"github.com/pavelanni/clau-lessons/internal/i18n"
	"github.com/pavelanni/clau-lessons/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	if err := i18n.Init("es"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	s, err := store.New(store.NewMemoryBackend())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	fsys := fstest.MapFS{
		"cursos.json": &fstest.MapFile{Data: []byte(`{
			"cursos": [{"id": "2-primaria", "name": "2º Primaria"}]
		}`)},
		"2-primaria/lengua/acentos/exam.json": &fstest.MapFile{Data: []byte(`{
			"topicId": "acentos",
			"subjectId": "lengua",
			"questions": [
				{"type": "choice", "id": "q1", "question": "¿Cuál lleva tilde?", "options": ["cancion", "canción"], "answer": 1},
				{"type": "true-false", "id": "q2", "question": "¿'Sol' lleva tilde?", "answer": false}
			]
		}`)},
	}

	h := New(s, content.NewLoader(fsys))
	r := chi.NewRouter()
	r.Use(i18n.Middleware("es"))
	h.Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()

	var out bytes.Buffer
	out.ReadFrom(res.Body)
	return res, out.Bytes()
}

func createUser(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	res, raw := doJSON(t, http.MethodPost, srv.URL+"/api/users",
		map[string]string{"nombre": "Ana", "curso": "2º Primaria"})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create user: status %d: %s", res.StatusCode, raw)
	}
	var profile struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	return profile.ID
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)
	id := createUser(t, srv)

	res, raw := doJSON(t, http.MethodGet, srv.URL+"/api/users", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list users: status %d", res.StatusCode)
	}
	var users []struct {
		ID     string `json:"id"`
		Nombre string `json:"nombre"`
	}
	json.Unmarshal(raw, &users)
	if len(users) != 1 || users[0].Nombre != "Ana" {
		t.Fatalf("unexpected users: %s", raw)
	}

	// The new user is active.
	res, _ = doJSON(t, http.MethodGet, srv.URL+"/api/users/active", nil)
	if res.StatusCode != http.StatusOK {
		t.Errorf("active user: status %d", res.StatusCode)
	}

	res, _ = doJSON(t, http.MethodPost, srv.URL+"/api/logout", nil)
	if res.StatusCode != http.StatusNoContent {
		t.Errorf("logout: status %d", res.StatusCode)
	}
	res, _ = doJSON(t, http.MethodGet, srv.URL+"/api/users/active", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("active user after logout: status %d", res.StatusCode)
	}

	res, _ = doJSON(t, http.MethodPost, srv.URL+"/api/users/"+id+"/login", nil)
	if res.StatusCode != http.StatusOK {
		t.Errorf("login: status %d", res.StatusCode)
	}
	res, raw = doJSON(t, http.MethodPost, srv.URL+"/api/users/nobody-0000/login", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("login unknown: status %d: %s", res.StatusCode, raw)
	}
}

func TestContentEndpoints(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doJSON(t, http.MethodGet, srv.URL+"/api/cursos", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("cursos: status %d", res.StatusCode)
	}
	var index struct {
		Cursos []struct{ ID string } `json:"cursos"`
	}
	json.Unmarshal(raw, &index)
	if len(index.Cursos) != 1 || index.Cursos[0].ID != "2-primaria" {
		t.Errorf("unexpected cursos index: %s", raw)
	}

	res, _ = doJSON(t, http.MethodGet, srv.URL+"/api/cursos/3-eso", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("missing curso: status %d", res.StatusCode)
	}
}

func TestExamFlow(t *testing.T) {
	srv := newTestServer(t)
	id := createUser(t, srv)
	base := srv.URL + "/api/users/" + id + "/subjects/lengua/topics/acentos"

	// Nothing live before start.
	res, _ := doJSON(t, http.MethodGet, base+"/exam/", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("state before start: status %d", res.StatusCode)
	}

	res, raw := doJSON(t, http.MethodPost, base+"/exam/start", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("start: status %d: %s", res.StatusCode, raw)
	}
	var state struct {
		Status        string `json:"status"`
		Index         int    `json:"index"`
		Total         int    `json:"total"`
		AnsweredCount int    `json:"answeredCount"`
		AllAnswered   bool   `json:"allAnswered"`
		Question      struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"question"`
	}
	json.Unmarshal(raw, &state)
	if state.Status != "in-progress" || state.Total != 2 || state.Question.ID != "q1" {
		t.Fatalf("unexpected start state: %s", raw)
	}

	// Answer both questions, one correctly.
	res, _ = doJSON(t, http.MethodPost, base+"/exam/answer", map[string]any{
		"questionId": "q1",
		"answer":     map[string]any{"type": "choice", "selected": 1},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("answer q1: status %d", res.StatusCode)
	}

	res, raw = doJSON(t, http.MethodPost, base+"/exam/next", nil)
	json.Unmarshal(raw, &state)
	if state.Index != 1 || state.Question.ID != "q2" {
		t.Fatalf("unexpected state after next: %s", raw)
	}

	res, raw = doJSON(t, http.MethodPost, base+"/exam/answer", map[string]any{
		"questionId": "q2",
		"answer":     map[string]any{"type": "true-false", "selected": true},
	})
	json.Unmarshal(raw, &state)
	if state.AnsweredCount != 2 || !state.AllAnswered {
		t.Fatalf("unexpected state after answers: %s", raw)
	}

	res, raw = doJSON(t, http.MethodPost, base+"/exam/finish", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("finish: status %d: %s", res.StatusCode, raw)
	}
	var result struct {
		Score   int    `json:"score"`
		Total   int    `json:"total"`
		Message string `json:"message"`
	}
	json.Unmarshal(raw, &result)
	if result.Score != 1 || result.Total != 2 {
		t.Errorf("expected score 1/2, got %d/%d", result.Score, result.Total)
	}
	if result.Message != "Has acertado 1 de 2" {
		t.Errorf("unexpected finish message: %q", result.Message)
	}

	// Finishing twice is rejected.
	res, _ = doJSON(t, http.MethodPost, base+"/exam/finish", nil)
	if res.StatusCode != http.StatusConflict {
		t.Errorf("second finish: status %d", res.StatusCode)
	}

	// The attempt landed in the progress history.
	res, raw = doJSON(t, http.MethodGet, base+"/best-score", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("best score: status %d", res.StatusCode)
	}
	var best struct {
		BestScore   float64 `json:"bestScore"`
		HasAttempts bool    `json:"hasAttempts"`
	}
	json.Unmarshal(raw, &best)
	if !best.HasAttempts || best.BestScore != 0.5 {
		t.Errorf("expected best score 0.5, got %+v", best)
	}
}

func TestExamResumesFromCache(t *testing.T) {
	srv := newTestServer(t)
	id := createUser(t, srv)
	base := srv.URL + "/api/users/" + id + "/subjects/lengua/topics/acentos"

	doJSON(t, http.MethodPost, base+"/exam/start", nil)
	doJSON(t, http.MethodPost, base+"/exam/answer", map[string]any{
		"questionId": "q1",
		"answer":     map[string]any{"type": "choice", "selected": 1},
	})
	doJSON(t, http.MethodPost, base+"/exam/next", nil)

	// A second start picks up the cached position and answers.
	res, raw := doJSON(t, http.MethodPost, base+"/exam/start", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("restart-start: status %d", res.StatusCode)
	}
	var state struct {
		Index         int `json:"index"`
		AnsweredCount int `json:"answeredCount"`
	}
	json.Unmarshal(raw, &state)
	if state.Index != 1 || state.AnsweredCount != 1 {
		t.Errorf("expected resumed session at index 1 with 1 answer, got %s", raw)
	}

	// Restart wipes the cache and answers.
	res, raw = doJSON(t, http.MethodPost, base+"/exam/restart", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("restart: status %d", res.StatusCode)
	}
	json.Unmarshal(raw, &state)
	if state.Index != 0 || state.AnsweredCount != 0 {
		t.Errorf("expected fresh session after restart, got %s", raw)
	}
}

func TestImportRejectsInvalidFile(t *testing.T) {
	srv := newTestServer(t)

	res, raw := doJSON(t, http.MethodPost, srv.URL+"/api/import",
		map[string]any{"version": 1, "app": "other-app"})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("import: status %d", res.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	json.Unmarshal(raw, &body)
	if body.Error != "El archivo de importación no es válido" {
		t.Errorf("unexpected error message: %q", body.Error)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	id := createUser(t, srv)

	doJSON(t, http.MethodPost, srv.URL+"/api/users/"+id+"/subjects/lengua/topics/acentos/viewed", nil)

	res, raw := doJSON(t, http.MethodGet, srv.URL+"/api/users/"+id+"/export", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("export: status %d", res.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/import", bytes.NewReader(raw))
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusCreated {
		t.Fatalf("import: status %d", res2.StatusCode)
	}
	var imported struct {
		ID string `json:"id"`
	}
	json.NewDecoder(res2.Body).Decode(&imported)
	if imported.ID == id {
		t.Error("import must allocate a fresh id")
	}

	res, raw = doJSON(t, http.MethodGet, srv.URL+"/api/users/"+imported.ID+"/progress", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("progress: status %d", res.StatusCode)
	}
	var progress struct {
		Subjects map[string]struct {
			Topics map[string]struct {
				Viewed bool `json:"viewed"`
			} `json:"topics"`
		} `json:"subjects"`
	}
	json.Unmarshal(raw, &progress)
	if !progress.Subjects["lengua"].Topics["acentos"].Viewed {
		t.Errorf("expected imported progress to keep the viewed flag: %s", raw)
	}
}
