package plan

import "time"

// Delta is one partial update in a merge batch. Status and Content are
// optional: a zero Status or nil Content means "leave unchanged" for an
// existing item. New items must carry Content; their Status defaults to
// pending when omitted.
type Delta struct {
	ID      string  `json:"id"`
	Status  Status  `json:"status,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (d Delta) equal(other Delta) bool {
	if d.ID != other.ID || d.Status != other.Status {
		return false
	}
	switch {
	case d.Content == nil && other.Content == nil:
		return true
	case d.Content == nil || other.Content == nil:
		return false
	}
	return *d.Content == *other.Content
}

// validateBatch checks the whole batch before anything is applied. A batch
// is rejected as a unit: either every delta is applied or none are.
func validateBatch(batch []Delta) error {
	if len(batch) == 0 {
		return validationf("batch is empty")
	}

	seen := make(map[string]Delta, len(batch))
	for _, delta := range batch {
		if delta.ID == "" {
			return validationf("delta is missing an id")
		}
		if delta.Status != "" && !delta.Status.Valid() {
			return validationf("unknown status %q for item %q", delta.Status, delta.ID)
		}
		// Byte-identical duplicates are harmless; disagreeing ones are
		// ambiguous and reject the batch rather than picking a winner.
		if prev, ok := seen[delta.ID]; ok && !prev.equal(delta) {
			return validationf("conflicting deltas for item %q in one batch", delta.ID)
		}
		seen[delta.ID] = delta
	}
	return nil
}

// apply is the pure merge: (current document, batch) → next document.
// Existing items are updated in place by id, keeping fields the delta does
// not set. Genuinely new items are appended in the order they first appear
// in the batch and must carry content.
func apply(cur *Document, batch []Delta, explanation string, now time.Time) (*Document, error) {
	if err := validateBatch(batch); err != nil {
		return nil, err
	}

	next := cur.clone()

	index := make(map[string]int, len(next.Todos))
	for i, item := range next.Todos {
		index[item.ID] = i
	}

	for _, delta := range batch {
		if i, ok := index[delta.ID]; ok {
			if delta.Status != "" {
				next.Todos[i].Status = delta.Status
			}
			if delta.Content != nil {
				next.Todos[i].Content = *delta.Content
			}
			continue
		}

		if delta.Content == nil {
			return nil, validationf("new item %q has no content", delta.ID)
		}
		status := delta.Status
		if status == "" {
			status = StatusPending
		}
		next.Todos = append(next.Todos, Item{
			ID:      delta.ID,
			Status:  status,
			Content: *delta.Content,
		})
		index[delta.ID] = len(next.Todos) - 1
	}

	next.Explanation = explanation
	next.UpdatedAt = Timestamp(now)
	return next, nil
}
