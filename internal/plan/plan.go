// Package plan owns the research plan document: the ordered todo list the
// agent maintains while researching, its durable on-disk form, and the
// monitor/renderer pair that displays it live.
package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a plan item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the three defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Item is a single unit of planned work. IDs are assigned by the producer,
// are unique within a document, and are never reused for a different task.
type Item struct {
	ID      string `json:"id"`
	Status  Status `json:"status"`
	Content string `json:"content"`
}

// Document is the complete persisted plan: the ordered item list plus
// metadata about the most recent change. Item order is creation order and is
// never rearranged by updates.
type Document struct {
	Explanation string `json:"explanation"`
	UpdatedAt   string `json:"updated_at"`
	Todos       []Item `json:"todos"`
}

// TimestampLayout is the human-readable format used for UpdatedAt.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp formats t for the UpdatedAt field.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// CountByStatus returns how many items are in each status.
func (d *Document) CountByStatus() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, item := range d.Todos {
		counts[item.Status]++
	}
	return counts
}

// Completed reports how many items are completed.
func (d *Document) Completed() int {
	return d.CountByStatus()[StatusCompleted]
}

// Fingerprint returns a stable content hash of the document, used by the
// monitor as its change-detection key. Two structurally identical documents
// always produce the same fingerprint.
func (d *Document) Fingerprint() string {
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// clone returns a deep copy so merges never alias the caller's document.
func (d *Document) clone() *Document {
	next := &Document{
		Explanation: d.Explanation,
		UpdatedAt:   d.UpdatedAt,
	}
	if len(d.Todos) > 0 {
		next.Todos = make([]Item, len(d.Todos))
		copy(next.Todos, d.Todos)
	}
	return next
}
