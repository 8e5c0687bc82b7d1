package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/sentidash/pkg/model"
)

// AssertQuestionCount verifies the number of questions.
func AssertQuestionCount(t *testing.T, qs []model.AnalystQuestion, expected int) {
	t.Helper()
	if len(qs) != expected {
		t.Errorf("expected %d questions, got %d", expected, len(qs))
	}
}

// AssertAllValid verifies every question passes validation.
func AssertAllValid(t *testing.T, qs []model.AnalystQuestion) {
	t.Helper()
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			t.Errorf("question %d (%s) invalid: %v", i, q.Analyst, err)
		}
	}
}

// AssertSubsequence verifies got appears in all, in the same order.
func AssertSubsequence(t *testing.T, all, got []model.AnalystQuestion) {
	t.Helper()
	i := 0
	for _, q := range all {
		if i < len(got) && q == got[i] {
			i++
		}
	}
	if i != len(got) {
		t.Errorf("result is not an ordered subsequence: matched %d of %d", i, len(got))
	}
}

// AssertJSONEqual compares two values by their JSON encoding.
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()
	e, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("marshal expected: %v", err)
	}
	a, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("marshal actual: %v", err)
	}
	if string(e) != string(a) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", e, a)
	}
}

// WriteDatasetJSON writes ds as a JSON fixture in dir and returns its path.
func WriteDatasetJSON(t *testing.T, dir string, ds model.Dataset) string {
	t.Helper()
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	path := filepath.Join(dir, "dataset.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

// GoldenFile compares output against a stored file. Set GENERATE_GOLDEN=1
// to rewrite it.
type GoldenFile struct {
	t      *testing.T
	path   string
	update bool
}

// NewGoldenFile returns a helper for dir/name.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{t: t, path: filepath.Join(dir, name), update: os.Getenv("GENERATE_GOLDEN") != ""}
}

// Path returns the golden file location.
func (g *GoldenFile) Path() string { return g.path }

// Assert compares actual with the golden content, reporting the first
// differing line.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()
	if g.update {
		if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
			g.t.Fatalf("create golden dir: %v", err)
		}
		if err := os.WriteFile(g.path, []byte(actual), 0o644); err != nil {
			g.t.Fatalf("write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", g.path)
		return
	}
	want, err := os.ReadFile(g.path)
	if err != nil {
		g.t.Fatalf("read golden file %s: %v (run with GENERATE_GOLDEN=1)", g.path, err)
	}
	if string(want) == actual {
		return
	}
	wl, al := strings.Split(string(want), "\n"), strings.Split(actual, "\n")
	for i := 0; i < len(wl) || i < len(al); i++ {
		var w, a string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(al) {
			a = al[i]
		}
		if w != a {
			g.t.Errorf("golden mismatch at line %d:\nexpected: %s\nactual:   %s", i+1, w, a)
			return
		}
	}
}
