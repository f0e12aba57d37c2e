package services

import (
	"sync"

	"cocobloom/internal/domain"
)

// CompareLimit caps the side-by-side comparison tray.
const CompareLimit = 3

// CompareTray holds full product snapshots selected for comparison. It lives
// only in memory for the life of the browser session and is never persisted.
type CompareTray struct {
	mu      sync.Mutex
	notify  Notifier
	entries []domain.Product
	open    bool
}

func NewCompareTray(notify Notifier) *CompareTray {
	return &CompareTray{notify: notify}
}

// Add appends a product snapshot. A full tray or a duplicate id leaves the
// tray unchanged and surfaces a rejection notice.
func (t *CompareTray) Add(p domain.Product) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.ID == p.ID {
			t.notify.Notify(NoticeInfo, p.Name+" is already in compare")
			return false
		}
	}
	if len(t.entries) >= CompareLimit {
		t.notify.Notify(NoticeError, "You can compare up to 3 products")
		return false
	}
	t.entries = append(t.entries, p)
	t.notify.Notify(NoticeSuccess, "Added "+p.Name+" to compare")
	return true
}

// Remove is a no-op when the product is absent.
func (t *CompareTray) Remove(productID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.ID != productID {
			kept = append(kept, e)
		}
	}
	t.entries = kept
}

func (t *CompareTray) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}

func (t *CompareTray) IsIn(productID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.ID == productID {
			return true
		}
	}
	return false
}

func (t *CompareTray) Products() []domain.Product {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Product, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *CompareTray) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// SetOpen toggles the comparison panel. The flag is independent of tray size;
// an open empty tray renders an empty-state message.
func (t *CompareTray) SetOpen(open bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = open
}

func (t *CompareTray) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}
