// Package content loads curriculum documents from a data tree and validates
// them against JSON schemas before decoding.
//
// The tree is laid out as:
//
//	cursos.json
//	<curso>/curso.json
//	<curso>/<subject>/subject.json
//	<curso>/<subject>/<topic>/topic.json
//	<curso>/<subject>/<topic>/slides.json
//	<curso>/<subject>/<topic>/exam.json
package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pavelanni/clau-lessons/internal/model"
)

// Loader reads curriculum documents from a filesystem tree.
type Loader struct {
	fsys fs.FS
}

// NewLoader wraps an existing filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// NewDirLoader reads from a directory on disk.
func NewDirLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// CursoSlug converts a display curso ("2º Primaria") to its folder slug
// ("2-primaria").
func CursoSlug(curso string) string {
	s := strings.ToLower(curso)
	s = strings.NewReplacer("º", "", "ª", "").Replace(s)
	return strings.Join(strings.Fields(s), "-")
}

// LoadCursosIndex reads the top-level list of curriculum levels.
func (l *Loader) LoadCursosIndex() (*model.CursosIndex, error) {
	return loadDoc[model.CursosIndex](l, "cursos.json", cursosIndexSchema)
}

// LoadCursoDetail reads one curso with its subjects.
func (l *Loader) LoadCursoDetail(cursoSlug string) (*model.CursoDetail, error) {
	return loadDoc[model.CursoDetail](l, path.Join(cursoSlug, "curso.json"), cursoDetailSchema)
}

// LoadSubjectDetail reads one subject with its topics.
func (l *Loader) LoadSubjectDetail(cursoSlug, subjectID string) (*model.SubjectDetail, error) {
	return loadDoc[model.SubjectDetail](l, path.Join(cursoSlug, subjectID, "subject.json"), subjectDetailSchema)
}

// LoadTopicData reads one topic's detail document.
func (l *Loader) LoadTopicData(cursoSlug, subjectID, topicID string) (*model.TopicData, error) {
	return loadDoc[model.TopicData](l, path.Join(cursoSlug, subjectID, topicID, "topic.json"), topicDataSchema)
}

// LoadSlidesData reads one topic's slide deck.
func (l *Loader) LoadSlidesData(cursoSlug, subjectID, topicID string) (*model.SlidesData, error) {
	return loadDoc[model.SlidesData](l, path.Join(cursoSlug, subjectID, topicID, "slides.json"), slidesDataSchema)
}

// LoadExamData reads one topic's question set.
func (l *Loader) LoadExamData(cursoSlug, subjectID, topicID string) (*model.ExamData, error) {
	return loadDoc[model.ExamData](l, path.Join(cursoSlug, subjectID, topicID, "exam.json"), examDataSchema)
}

func loadDoc[T any](l *Loader, p string, schema *docSchema) (*T, error) {
	raw, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	if err := validateDoc(schema, raw); err != nil {
		return nil, fmt.Errorf("validate %s: %w", p, err)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	return &doc, nil
}
