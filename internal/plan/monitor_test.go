package plan

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is an io.Writer safe for use from the monitor goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestMonitorRepaintsOnlyOnChange(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "plan.json"))
	var buf syncBuffer
	m := NewMonitor(s, NewRenderer(&buf), 10*time.Millisecond)

	m.Start()
	defer m.Stop()

	// No document yet: cycles are skipped silently.
	time.Sleep(50 * time.Millisecond)
	if buf.String() != "" {
		t.Fatal("monitor rendered before any document existed")
	}

	if _, err := s.Merge([]Delta{{ID: "step-1", Content: strptr("Research X")}}, "init"); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if _, err := s.Merge([]Delta{{ID: "step-1", Status: StatusCompleted}}, "done"); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	m.Stop()

	out := buf.String()
	saves := strings.Count(out, cursorSave)
	restores := strings.Count(out, cursorRestore)

	// Two distinct document states → exactly two paints, despite many polls.
	if saves != 1 {
		t.Errorf("expected 1 anchor save, got %d", saves)
	}
	if restores != 1 {
		t.Errorf("expected 1 repaint, got %d", restores)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("stop must settle the rendered region")
	}
}

func TestMonitorStopIsIdempotent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "plan.json"))
	var buf syncBuffer
	m := NewMonitor(s, NewRenderer(&buf), 10*time.Millisecond)

	m.Stop() // never started

	m.Start()
	m.Start() // already running
	m.Stop()
	m.Stop()
}

func TestMonitorStopExitsPromptly(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "plan.json"))
	var buf syncBuffer
	m := NewMonitor(s, NewRenderer(&buf), 50*time.Millisecond)

	m.Start()
	start := time.Now()
	m.Stop()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("stop took %v", elapsed)
	}
}

func TestMonitorDefaultsInterval(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "plan.json"))
	m := NewMonitor(s, NewRenderer(&bytes.Buffer{}), 0)
	if m.interval != DefaultPollInterval {
		t.Errorf("interval: got %v", m.interval)
	}
}
