package plan

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is how often the monitor checks the store for changes.
const DefaultPollInterval = 2 * time.Second

// Monitor polls the Store in a background goroutine and repaints the
// renderer whenever the document's fingerprint changes. It shares no memory
// with producers: the persisted document is the only rendezvous point, so
// the store and the agent never know the monitor exists.
type Monitor struct {
	store    *Store
	renderer *Renderer
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a Monitor over store that paints through renderer.
// A non-positive interval falls back to DefaultPollInterval.
func NewMonitor(store *Store, renderer *Renderer, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{store: store, renderer: renderer, interval: interval}
}

// Start begins polling in a background goroutine. Calling Start on a
// running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return // already running
	}

	m.done = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	go func() {
		defer close(m.done)
		m.loop(ctx)
	}()
}

// Stop signals the poll loop, waits for it to exit, and settles the
// renderer so trailing program output lands below the last frame.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel == nil {
		return
	}

	m.cancel()
	<-m.done
	m.cancel = nil

	m.renderer.Settle()
}

func (m *Monitor) loop(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var lastKey string
	for {
		select {
		case <-ticker.C:
			lastKey = m.poll(lastKey)
		case <-ctx.Done():
			return
		}
	}
}

// poll reads the store once and repaints if the document changed since the
// last rendered key. Read failures are transient: a single bad poll must
// not end live monitoring.
func (m *Monitor) poll(lastKey string) string {
	doc, err := m.store.Read()
	if err != nil {
		if !errors.Is(err, ErrNotYetCreated) {
			slog.Debug("plan monitor: read failed, will retry", "error", err)
		}
		return lastKey
	}

	key := doc.Fingerprint()
	if key == lastKey {
		return lastKey
	}

	if err := m.renderer.Repaint(doc); err != nil {
		slog.Debug("plan monitor: repaint failed", "error", err)
		return lastKey
	}
	return key
}
