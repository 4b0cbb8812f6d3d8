package report

import (
	"strings"
	"testing"
	"time"
)

func sampleSession(id string, started time.Time) *Session {
	return &Session{
		ID:             id,
		Query:          "What is the Antikythera mechanism?",
		Model:          "gpt-4o-mini",
		StartedAt:      started,
		CompletedAt:    started.Add(5 * time.Minute),
		StepsTotal:     12,
		StepsCompleted: 12,
	}
}

func TestSaveAndReadReport(t *testing.T) {
	s := NewStore(t.TempDir())
	sess := sampleSession("research_abc12345", time.Now())

	if err := s.Save(sess, "# Findings\n\nIt is an ancient computer."); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.ReadReport(sess.ID)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if !strings.Contains(got, "ancient computer") {
		t.Errorf("report content: %q", got)
	}
}

func TestSaveAssignsID(t *testing.T) {
	s := NewStore(t.TempDir())
	sess := sampleSession("", time.Now())

	if err := s.Save(sess, "report"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(sess.ID, "research_") {
		t.Errorf("id: got %q", sess.ID)
	}
}

func TestListSortsMostRecentFirst(t *testing.T) {
	s := NewStore(t.TempDir())
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"research_old00000", "research_new00000", "research_mid00000"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		if err := s.Save(sampleSession(id, base.Add(offsets[i])), "r"); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	sessions, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"research_new00000", "research_mid00000", "research_old00000"} {
		if sessions[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, sessions[i].ID, want)
		}
	}
}

func TestListMissingBaseDir(t *testing.T) {
	s := NewStore(t.TempDir() + "/never-created")

	sessions, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected no sessions, got %d", len(sessions))
	}
}

func TestReadReportUnknownSession(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.ReadReport("research_missing0"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestGenerateSessionIDUnique(t *testing.T) {
	a, b := GenerateSessionID(), GenerateSessionID()
	if a == b {
		t.Errorf("ids collided: %s", a)
	}
	if !strings.HasPrefix(a, "research_") {
		t.Errorf("id: got %q", a)
	}
}
