package content

import (
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/italienapp/italienapp/internal/exercise"
)

const testManifest = `{
  "categories": [
    {"name": "Verbi", "icon": "V", "schede": [3, "1"]},
    {"name": "Pronomi", "icon": "P", "schede": ["19bis"]}
  ],
  "schede": {
    "3": {"title": "Tre", "exerciseCount": 1},
    "1": {"title": "Uno", "exerciseCount": 1},
    "19bis": {"title": "Pronomi", "exerciseCount": 0}
  }
}`

const testScheda = `{
  "meta": {"id": 1, "title": "Uno"},
  "theory": {"sections": [{"type": "paragraph", "content": "Ciao"}]},
  "exercises": [
    {"id": "a", "number": 1, "type": "fill-in-blank", "instruction": "x",
     "items": [{"answer": "sono"}]},
    {"id": "b", "number": 2, "type": "open-ended", "instruction": "y"}
  ]
}`

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestManifest_KeepsKeyOrderAndMixedIDs(t *testing.T) {
	var m Manifest
	require.NoError(t, json.Unmarshal([]byte(testManifest), &m))

	assert.Equal(t, []string{"3", "1", "19bis"}, m.Order)
	require.Len(t, m.Categories, 2)
	assert.Equal(t, []string{"3", "1"}, m.Categories[0].Schede)
	assert.Equal(t, 1, m.Schede["3"].ExerciseCount)

	c, ok := m.CategoryOf("19bis")
	require.True(t, ok)
	assert.Equal(t, "Pronomi", c.Name)
}

func TestNeighbours(t *testing.T) {
	m := &Manifest{Order: []string{"1", "2", "19bis"}}

	tests := []struct {
		id, prev, next string
	}{
		{"1", "", "2"},
		{"2", "1", "19bis"},
		{"19bis", "2", ""},
		{"99", "", ""},
	}
	for _, tc := range tests {
		prev, next := Neighbours(m, tc.id)
		assert.Equal(t, tc.prev, prev, "prev of %s", tc.id)
		assert.Equal(t, tc.next, next, "next of %s", tc.id)
	}
}

func TestLoader_Scheda(t *testing.T) {
	l := NewLoader(testFS(map[string]string{
		ManifestFile:     testManifest,
		SchedaFile("1"): testScheda,
	}))

	s, err := l.Scheda("1")
	require.NoError(t, err)
	assert.Equal(t, "1", s.Meta.ID.String())
	assert.Len(t, s.Exercises, 2)
	assert.Equal(t, 1, s.GradableCount())

	again, err := l.Scheda("1")
	require.NoError(t, err)
	assert.Same(t, s, again, "second load should be served from cache")

	ex, ok := s.Exercise("b")
	require.True(t, ok)
	assert.Equal(t, exercise.KindOpenEnded, ex.Kind())

	assert.True(t, l.Exists("1"))
	assert.False(t, l.Exists("3"))
}

func TestLoader_NotFound(t *testing.T) {
	l := NewLoader(testFS(map[string]string{ManifestFile: testManifest}))

	for _, id := range []string{"3", "../manifest", ""} {
		_, err := l.Scheda(id)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}

	_, err := NewLoader(fstest.MapFS{}).Manifest()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoader_MalformedExerciseFailsLoad(t *testing.T) {
	l := NewLoader(testFS(map[string]string{
		SchedaFile("1"): `{"meta": {"id": "1", "title": "x"}, "exercises": [{"id": "a", "type": "crossword"}]}`,
	}))

	_, err := l.Scheda("1")
	assert.ErrorIs(t, err, exercise.ErrMalformed)
}

func TestValidate_EmbeddedContentIsClean(t *testing.T) {
	r, err := Validate(NewLoader(Embedded()))
	require.NoError(t, err)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.NoError(t, r.Err())
}

func TestValidate_ReportsProblems(t *testing.T) {
	manifest := `{
	  "categories": [{"name": "Verbi", "schede": ["1", "2", "7"]}],
	  "schede": {
	    "1": {"title": "Uno", "exerciseCount": 2},
	    "2": {"title": "Due", "exerciseCount": 1},
	    "5": {"title": "Cinque", "exerciseCount": 0}
	  }
	}`
	scheda1 := `{
	  "meta": {"id": "1", "title": "Uno"},
	  "exercises": [
	    {"id": "a", "type": "multiple-choice", "items": [{"options": ["x", "y"], "answer": "z"}]},
	    {"id": "a", "type": "transformation", "items": [{"given": "g", "answer": "h"}]}
	  ]
	}`
	l := NewLoader(testFS(map[string]string{
		ManifestFile:     manifest,
		SchedaFile("1"): scheda1,
	}))

	r, err := Validate(l)
	require.NoError(t, err)
	require.False(t, r.OK())

	assertContains(t, r.Errors, `unknown scheda "7"`)
	assertContains(t, r.Errors, `duplicate exercise id "a"`)
	assertContains(t, r.Warnings, `matches none of the options`)
	assertContains(t, r.Warnings, `scheda "2": listed in manifest but has no data file`)
	assertContains(t, r.Warnings, `scheda "5" is not in any category`)
	assert.Error(t, r.Err())
}

func TestValidate_ExerciseCountMustMatchGradable(t *testing.T) {
	manifest := `{"categories": [{"name": "c", "schede": ["1"]}], "schede": {"1": {"title": "Uno", "exerciseCount": 2}}}`
	l := NewLoader(testFS(map[string]string{
		ManifestFile:     manifest,
		SchedaFile("1"): testScheda,
	}))

	r, err := Validate(l)
	require.NoError(t, err)
	assertContains(t, r.Errors, "exerciseCount is 2 but the scheda has 1 gradable exercises")
}

func TestValidate_SchemaErrors(t *testing.T) {
	manifest := `{"categories": [{"name": "c", "schede": ["1"]}], "schede": {"1": {"title": "Uno", "exerciseCount": -1}}}`
	l := NewLoader(testFS(map[string]string{ManifestFile: manifest}))

	r, err := Validate(l)
	require.NoError(t, err)
	assertContains(t, r.Errors, "manifest: schema validation failed")
}

func TestValidate_EmptyAnswers(t *testing.T) {
	manifest := `{"categories": [{"name": "c", "schede": ["1"]}], "schede": {"1": {"title": "Uno", "exerciseCount": 2}}}`
	scheda := `{
	  "meta": {"id": "1", "title": "Uno"},
	  "exercises": [
	    {"id": "a", "type": "fill-in-blank", "items": [{"before": "Io", "answer": "sono"}, {"before": "Tu", "answer": ""}]},
	    {"id": "b", "type": "table-completion", "rows": [{"cells": [{"value": "io"}, {"editable": true, "answer": ["sono", "."]}]}]}
	  ]
	}`
	l := NewLoader(testFS(map[string]string{
		ManifestFile:     manifest,
		SchedaFile("1"): scheda,
	}))

	r, err := Validate(l)
	require.NoError(t, err)
	assertContains(t, r.Errors, `exercise "a" item 1: answer is empty after normalization`)
	assertContains(t, r.Errors, `exercise "b" item 0 part 1: answer is empty after normalization`)
}

func assertContains(t *testing.T, list []string, substr string) {
	t.Helper()
	for _, s := range list {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("no entry contains %q in:\n  %s", substr, strings.Join(list, "\n  "))
}
