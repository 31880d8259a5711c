package collection

import (
	"errors"
	"fmt"
)

// ErrIndex is returned when a position is outside the list.
var ErrIndex = errors.New("index out of range")

// EventKind identifies what happened to a list.
type EventKind int

const (
	// Added means Item was inserted at Index.
	Added EventKind = iota
	// Removed means Item was removed from Index.
	Removed
	// Changed means Item at Index was modified in place.
	Changed
	// Reset means the whole content was replaced. Index is -1.
	Reset
	// Selected means Item at Index became the selected item. Only
	// [Selection] emits it.
	Selected
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "add"
	case Removed:
		return "remove"
	case Changed:
		return "change"
	case Reset:
		return "reset"
	case Selected:
		return "select"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes a single list mutation.
type Event[T any] struct {
	Kind  EventKind
	Index int
	Item  T
}

// Observer receives list events.
type Observer[T any] interface {
	Observe(Event[T])
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[T any] func(Event[T])

// Observe calls f(e).
func (f ObserverFunc[T]) Observe(e Event[T]) { f(e) }

// observers is an ordered subscriber set with a re-entrant safe event queue.
type observers[T any] struct {
	subs        []*subscription[T]
	pending     []Event[T]
	dispatching bool
}

type subscription[T any] struct {
	o      Observer[T]
	active bool
}

func (ob *observers[T]) subscribe(o Observer[T]) func() {
	s := &subscription[T]{o: o, active: true}
	ob.subs = append(ob.subs, s)
	return func() {
		if !s.active {
			return
		}
		s.active = false
		for i, cur := range ob.subs {
			if cur == s {
				ob.subs = append(ob.subs[:i:i], ob.subs[i+1:]...)
				break
			}
		}
	}
}

func (ob *observers[T]) emit(e Event[T]) {
	ob.pending = append(ob.pending, e)
	if ob.dispatching {
		return
	}
	ob.dispatching = true
	defer func() { ob.dispatching = false }()

	for len(ob.pending) > 0 {
		next := ob.pending[0]
		ob.pending = ob.pending[1:]

		subs := make([]*subscription[T], len(ob.subs))
		copy(subs, ob.subs)
		for _, s := range subs {
			if s.active {
				s.o.Observe(next)
			}
		}
	}
}

// List is an ordered collection that reports every mutation to its
// observers.
type List[T comparable] struct {
	items []T
	obs   observers[T]
}

// NewList creates a list holding items, without emitting events.
func NewList[T comparable](items ...T) *List[T] {
	l := &List[T]{}
	l.items = append(l.items, items...)
	return l
}

// Subscribe registers o and returns a function that removes it again.
// Observers are called in subscription order.
func (l *List[T]) Subscribe(o Observer[T]) (unsubscribe func()) {
	return l.obs.subscribe(o)
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the item at i. It panics if i is out of range.
func (l *List[T]) At(i int) T { return l.items[i] }

// IndexOf returns the position of item, or -1.
func (l *List[T]) IndexOf(item T) int {
	for i, it := range l.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Items returns a copy of the current content.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Add appends item and returns its index.
func (l *List[T]) Add(item T) int {
	l.items = append(l.items, item)
	i := len(l.items) - 1
	l.obs.emit(Event[T]{Kind: Added, Index: i, Item: item})
	return i
}

// Insert places item at position i, shifting later items.
func (l *List[T]) Insert(i int, item T) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(l.items), ErrIndex)
	}
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	l.obs.emit(Event[T]{Kind: Added, Index: i, Item: item})
	return nil
}

// Remove deletes item and reports where it was.
func (l *List[T]) Remove(item T) (int, bool) {
	i := l.IndexOf(item)
	if i < 0 {
		return -1, false
	}
	l.removeAt(i)
	return i, true
}

// RemoveAt deletes the item at position i.
func (l *List[T]) RemoveAt(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, fmt.Errorf("remove at %d of %d: %w", i, len(l.items), ErrIndex)
	}
	return l.removeAt(i), nil
}

func (l *List[T]) removeAt(i int) T {
	item := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.obs.emit(Event[T]{Kind: Removed, Index: i, Item: item})
	return item
}

// Set replaces the item at position i and reports it as changed.
func (l *List[T]) Set(i int, item T) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("set at %d of %d: %w", i, len(l.items), ErrIndex)
	}
	l.items[i] = item
	l.obs.emit(Event[T]{Kind: Changed, Index: i, Item: item})
	return nil
}

// Touch announces that item was modified in place. It reports false if item
// is not in the list.
func (l *List[T]) Touch(item T) bool {
	i := l.IndexOf(item)
	if i < 0 {
		return false
	}
	l.obs.emit(Event[T]{Kind: Changed, Index: i, Item: item})
	return true
}

// Reset replaces the whole content.
func (l *List[T]) Reset(items []T) {
	l.items = append(l.items[:0:0], items...)
	var zero T
	l.obs.emit(Event[T]{Kind: Reset, Index: -1, Item: zero})
}
