package collection

// Selectable is a record carrying a selected flag. Only [Selection] should
// flip the flag of records in a list it manages.
type Selectable interface {
	comparable
	IsSelected() bool
	SetSelected(bool)
}

// Selection keeps exactly one item of a list selected.
//
// When the list is loaded, the first flagged item wins and later flagged
// items are cleared; when nothing is flagged (including an empty list) a
// fresh record is synthesized and selected. Adding a flagged item moves the
// selection to it. Removing the selected item moves the selection to the item
// that now occupies its index (the new last item if it was last), and
// removing the last remaining item synthesizes a fresh one.
type Selection[T Selectable] struct {
	list     *List[T]
	create   func() T
	selected T
	has      bool
	obs      observers[T]
	unsub    func()
}

// NewSelection starts managing list. create must return a new record; it is
// flagged selected before being added. The current content of list is treated
// like a load.
func NewSelection[T Selectable](list *List[T], create func() T) *Selection[T] {
	s := &Selection[T]{list: list, create: create}
	s.unsub = list.Subscribe(ObserverFunc[T](s.observe))
	s.load()
	return s
}

// List returns the managed list.
func (s *Selection[T]) List() *List[T] { return s.list }

// Selected returns the selected item.
func (s *Selection[T]) Selected() T { return s.selected }

// OnSelect registers o for Selected events.
func (s *Selection[T]) OnSelect(o Observer[T]) (unsubscribe func()) {
	return s.obs.subscribe(o)
}

// Close stops tracking the list.
func (s *Selection[T]) Close() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

// Load replaces the list content and re-establishes the selection.
func (s *Selection[T]) Load(items []T) {
	s.list.Reset(items)
}

// Add appends item. A flagged item becomes the selection.
func (s *Selection[T]) Add(item T) {
	s.list.Add(item)
}

// AddNew appends a fresh record and selects it.
func (s *Selection[T]) AddNew() T {
	return s.addSelected(s.newItem())
}

// Remove deletes item from the list.
func (s *Selection[T]) Remove(item T) bool {
	_, ok := s.list.Remove(item)
	return ok
}

// RemoveSelected deletes the selected item.
func (s *Selection[T]) RemoveSelected() {
	if s.has {
		s.list.Remove(s.selected)
	}
}

// Select makes item the selection. It reports false if item is not in the
// list. Selecting the current selection does nothing.
func (s *Selection[T]) Select(item T) bool {
	i := s.list.IndexOf(item)
	if i < 0 {
		return false
	}
	s.adopt(i, item)
	return true
}

// SelectAt selects the item at position i.
func (s *Selection[T]) SelectAt(i int) bool {
	if i < 0 || i >= s.list.Len() {
		return false
	}
	s.adopt(i, s.list.At(i))
	return true
}

// addSelected appends a flagged item and adopts it right away, even when the
// Added event is still queued behind the one being delivered.
func (s *Selection[T]) addSelected(item T) T {
	i := s.list.Add(item)
	s.adopt(i, item)
	return item
}

func (s *Selection[T]) newItem() T {
	item := s.create()
	item.SetSelected(true)
	return item
}

func (s *Selection[T]) adopt(i int, item T) {
	if s.has && s.selected == item {
		if !item.IsSelected() {
			item.SetSelected(true)
			s.list.Touch(item)
		}
		return
	}

	if s.has {
		prev := s.selected
		prev.SetSelected(false)
		s.list.Touch(prev)
	}

	s.selected = item
	s.has = true
	if !item.IsSelected() {
		item.SetSelected(true)
		s.list.Touch(item)
	}
	s.obs.emit(Event[T]{Kind: Selected, Index: i, Item: item})
}

func (s *Selection[T]) observe(e Event[T]) {
	switch e.Kind {
	case Added:
		if e.Item.IsSelected() {
			s.adopt(s.list.IndexOf(e.Item), e.Item)
		}
	case Changed:
		// A record whose flag was set directly takes over the selection.
		if e.Item.IsSelected() && (!s.has || e.Item != s.selected) {
			if i := s.list.IndexOf(e.Item); i >= 0 {
				s.adopt(i, e.Item)
			}
		}
	case Removed:
		s.onRemove(e)
	case Reset:
		s.load()
	}
}

func (s *Selection[T]) onRemove(e Event[T]) {
	wasSelected := s.has && s.selected == e.Item
	if wasSelected {
		var zero T
		s.selected = zero
		s.has = false
		e.Item.SetSelected(false)
	}

	if s.list.Len() == 0 {
		s.addSelected(s.newItem())
		return
	}

	if wasSelected {
		i := e.Index
		if i >= s.list.Len() {
			i = s.list.Len() - 1
		}
		s.adopt(i, s.list.At(i))
	}
}

func (s *Selection[T]) load() {
	var zero T
	s.selected = zero
	s.has = false

	for i := 0; i < s.list.Len(); i++ {
		item := s.list.At(i)
		if !item.IsSelected() {
			continue
		}
		if !s.has {
			s.selected = item
			s.has = true
			s.obs.emit(Event[T]{Kind: Selected, Index: i, Item: item})
			continue
		}
		item.SetSelected(false)
		s.list.Touch(item)
	}

	if !s.has {
		s.addSelected(s.newItem())
	}
}
