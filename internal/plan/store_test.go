package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), ".research_plan.json"))
}

func TestReadNotYetCreated(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read()
	if !errors.Is(err, ErrNotYetCreated) {
		t.Fatalf("expected ErrNotYetCreated, got %v", err)
	}
}

func TestMergeCreatesDocument(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Merge([]Delta{
		{ID: "step-1", Status: StatusPending, Content: strptr("Research company background")},
	}, "Creating initial plan")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(doc.Todos) != 1 {
		t.Fatalf("expected 1 item, got %d", len(doc.Todos))
	}

	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Fingerprint() != doc.Fingerprint() {
		t.Error("read document differs from merge result")
	}
}

func TestMergeRejectionLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Merge([]Delta{{ID: "step-1", Content: strptr("x")}}, "init"); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	_, err = s.Merge([]Delta{{ID: "step-1", Status: "blocked"}}, "bad")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(before) != string(after) {
		t.Error("persisted document changed after rejected merge")
	}
}

func TestReadAfterWriteMonotonicity(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Merge([]Delta{{ID: "step-1", Content: strptr("x")}}, "init"); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.Merge([]Delta{{ID: "step-1", Status: StatusCompleted}}, "done"); err != nil {
			t.Errorf("Merge: %v", err)
			return
		}
		// The merge has returned: every read from any goroutine must now
		// observe it (or something later).
		doc, err := s.Read()
		if err != nil {
			t.Errorf("Read: %v", err)
			return
		}
		if doc.Todos[0].Status != StatusCompleted {
			t.Errorf("read observed stale document: %+v", doc.Todos[0])
		}
	}()
	<-done
}

func TestConcurrentMergesLoseNoUpdates(t *testing.T) {
	s := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("item-%d", i)
			if _, err := s.Merge([]Delta{{ID: id, Content: strptr("task")}}, "add"); err != nil {
				t.Errorf("Merge: %v", err)
			}
		}(i)
	}
	wg.Wait()

	doc, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(doc.Todos) != n {
		t.Fatalf("lost updates: expected %d items, got %d", n, len(doc.Todos))
	}
}

func TestResetRemovesDocument(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Merge([]Delta{{ID: "step-1", Content: strptr("x")}}, "init"); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := s.Read(); !errors.Is(err, ErrNotYetCreated) {
		t.Fatalf("expected ErrNotYetCreated after reset, got %v", err)
	}
}

func TestResetWithoutDocumentIsNoop(t *testing.T) {
	s := newTestStore(t)
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset on missing file: %v", err)
	}
}

func TestReadCorruptDocumentIsStorageError(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := s.Read()
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestResearchSessionScenario(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Merge([]Delta{
		{ID: "step-1", Status: StatusPending, Content: strptr("Research company background")},
		{ID: "step-2", Status: StatusPending, Content: strptr("Identify key products")},
	}, "Creating initial plan")
	if err != nil {
		t.Fatalf("initial merge: %v", err)
	}
	if got := doc.CountByStatus(); got[StatusPending] != 2 {
		t.Fatalf("expected 2 pending, got %+v", got)
	}

	doc, err = s.Merge([]Delta{{ID: "step-1", Status: StatusInProgress}}, "Starting step 1")
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	counts := doc.CountByStatus()
	if counts[StatusPending] != 1 || counts[StatusInProgress] != 1 || counts[StatusCompleted] != 0 {
		t.Fatalf("after step 2: %+v", counts)
	}
	if doc.Todos[0].ID != "step-1" || doc.Todos[1].ID != "step-2" {
		t.Fatal("order changed by status update")
	}
	if doc.Todos[0].Content != "Research company background" {
		t.Fatal("content lost on status-only update")
	}

	doc, err = s.Merge([]Delta{{ID: "step-1", Status: StatusCompleted}}, "Completed step 1")
	if err != nil {
		t.Fatalf("third merge: %v", err)
	}
	counts = doc.CountByStatus()
	if counts[StatusPending] != 1 || counts[StatusInProgress] != 0 || counts[StatusCompleted] != 1 {
		t.Fatalf("after step 3: %+v", counts)
	}
}
