// Package tasklist holds the live, editable ordered list of launch items.
package tasklist

import (
	"math"
	"strings"

	"github.com/VoxDroid/lnchr/internal/errs"
)

// Item is a single thing to launch. Order is 1-based and always equals the
// item's position in its owning List; it is derived, never hand-maintained.
type Item struct {
	Path  string  `json:"path"`
	Delay float64 `json:"delay"`
	Order int     `json:"order"`
}

// Snapshot is a point-in-time copy of a List. It shares no memory with the
// list it was taken from.
type Snapshot []Item

// List is the current Task List. It is a single-writer structure: only the
// control goroutine mutates it. Indices are 0-based and only valid until the
// next structural mutation.
type List struct {
	items []Item
}

// New returns an empty List.
func New() *List { return &List{} }

// FromItems builds a List from a deep copy of items, re-deriving Order.
func FromItems(items []Item) *List {
	l := &List{items: Clone(items)}
	l.reindex()
	return l
}

// ValidateDelay rejects negative, NaN and infinite delays.
func ValidateDelay(op string, delay float64) error {
	if math.IsNaN(delay) || math.IsInf(delay, 0) {
		return errs.Validation(op, "delay must be a finite number of seconds")
	}
	if delay < 0 {
		return errs.Validation(op, "delay cannot be negative (got %g)", delay)
	}
	return nil
}

// Add appends a new item with Order = Len()+1.
func (l *List) Add(path string, delay float64) error {
	if strings.TrimSpace(path) == "" {
		return errs.Validation("tasklist.add", "path cannot be empty")
	}
	if err := ValidateDelay("tasklist.add", delay); err != nil {
		return err
	}
	l.items = append(l.items, Item{Path: path, Delay: delay, Order: len(l.items) + 1})
	return nil
}

// RemoveAt removes the item at index and returns it.
func (l *List) RemoveAt(index int) (Item, error) {
	if err := l.check("tasklist.remove", index); err != nil {
		return Item{}, err
	}
	removed := l.items[index]
	l.items = append(l.items[:index:index], l.items[index+1:]...)
	l.reindex()
	return removed, nil
}

// UpdateDelay replaces the delay of the item at index.
func (l *List) UpdateDelay(index int, delay float64) error {
	if err := l.check("tasklist.delay", index); err != nil {
		return err
	}
	if err := ValidateDelay("tasklist.delay", delay); err != nil {
		return err
	}
	l.items[index].Delay = delay
	return nil
}

// MoveUp swaps the item at index with its predecessor. It reports false,
// without error, when the item is already first.
func (l *List) MoveUp(index int) (bool, error) {
	if err := l.check("tasklist.up", index); err != nil {
		return false, err
	}
	if index == 0 {
		return false, nil
	}
	l.items[index-1], l.items[index] = l.items[index], l.items[index-1]
	l.reindex()
	return true, nil
}

// MoveDown swaps the item at index with its successor. It reports false,
// without error, when the item is already last.
func (l *List) MoveDown(index int) (bool, error) {
	if err := l.check("tasklist.down", index); err != nil {
		return false, err
	}
	if index == len(l.items)-1 {
		return false, nil
	}
	l.items[index+1], l.items[index] = l.items[index], l.items[index+1]
	l.reindex()
	return true, nil
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// At returns a copy of the item at index.
func (l *List) At(index int) (Item, error) {
	if err := l.check("tasklist.at", index); err != nil {
		return Item{}, err
	}
	return l.items[index], nil
}

// Snapshot returns a deep copy of the current items.
func (l *List) Snapshot() Snapshot {
	return Snapshot(Clone(l.items))
}

func (l *List) check(op string, index int) error {
	if index < 0 || index >= len(l.items) {
		return errs.Index(op, index, len(l.items))
	}
	return nil
}

func (l *List) reindex() {
	for i := range l.items {
		l.items[i].Order = i + 1
	}
}

// Clone returns a deep copy of items. Item holds only value fields, so a
// slice copy is sufficient.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Items returns the snapshot as a plain slice copy.
func (s Snapshot) Items() []Item { return Clone(s) }
