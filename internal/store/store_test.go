package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"recast/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)

	run := model.NewRun("run-1", "collection", "golang", "blog_post", "casual", "short")
	run.Status = model.RunStatusCompleted
	run.Output = "the generated text"

	if err := s.SaveRun(run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Name != "golang" || got.ContentType != "blog_post" {
		t.Errorf("got %+v", got)
	}
	if got.Status != model.RunStatusCompleted {
		t.Errorf("Status = %q", got.Status)
	}
	if got.Output != "the generated text" {
		t.Errorf("Output = %q", got.Output)
	}
}

func TestSaveRun_Failed(t *testing.T) {
	s := newTestStore(t)

	run := model.NewRun("run-2", "topic", "quantum computing", "thread", "educational", "long")
	run.Status = model.RunStatusFailed
	run.ErrorText = `fetch: wiki.Search: no articles found for topic "quantum computing"`

	if err := s.SaveRun(run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.GetRun("run-2")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != model.RunStatusFailed {
		t.Errorf("Status = %q, want FAILED", got.Status)
	}
	if got.ErrorText == "" {
		t.Error("failed runs must keep the error text")
	}
}

func TestGetRun_Missing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetRun("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)

	for i, id := range []string{"a", "b", "c"} {
		run := model.NewRun(id, "collection", "golang", "blog_post", "casual", "short")
		run.Status = model.RunStatusCompleted
		// Distinct timestamps so ordering is stable.
		run.CreatedAt = fmt.Sprintf("2026-01-01T00:00:0%dZ", i)
		if err := s.SaveRun(run); err != nil {
			t.Fatalf("SaveRun(%s): %v", id, err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].CreatedAt < runs[1].CreatedAt {
		t.Error("runs should be ordered newest first")
	}
}
