package view

import (
	"html/template"
	"strings"

	"playlist-manager/internal/collection"
)

// ItemView renders one list item.
type ItemView interface {
	Render() template.HTML
	Close()
}

// Refresher is implemented by item views that redraw themselves when their
// item changes in place.
type Refresher interface {
	Refresh()
}

// Binder keeps a container in the browser in step with a list. The views
// slice runs parallel to the list.
type Binder[T comparable] struct {
	list        *collection.List[T]
	surface     Surface
	container   string
	newView     func(T) ItemView
	views       []ItemView
	unsubscribe func()
}

// Bind creates views for the current items and follows later mutations.
// The initial views are not sent; they are part of Render.
func Bind[T comparable](list *collection.List[T], surface Surface, container string, newView func(T) ItemView) *Binder[T] {
	b := &Binder[T]{
		list:      list,
		surface:   surface,
		container: container,
		newView:   newView,
	}
	for _, item := range list.Items() {
		b.views = append(b.views, newView(item))
	}
	b.unsubscribe = list.Subscribe(b)
	return b
}

// Observe implements collection.Observer.
func (b *Binder[T]) Observe(e collection.Event[T]) {
	switch e.Kind {
	case collection.Added:
		b.insert(e.Index, e.Item)
	case collection.Removed:
		b.remove(e.Index)
	case collection.Changed:
		if e.Index >= 0 && e.Index < len(b.views) {
			if r, ok := b.views[e.Index].(Refresher); ok {
				r.Refresh()
			}
		}
	case collection.Reset:
		b.rebuild()
	}
}

func (b *Binder[T]) insert(i int, item T) {
	v := b.newView(item)
	if i > len(b.views) {
		i = len(b.views)
	}
	b.views = append(b.views, nil)
	copy(b.views[i+1:], b.views[i:])
	b.views[i] = v
	b.apply(Op{Action: ActionInsert, Target: b.container, Index: i, HTML: v.Render()})
}

func (b *Binder[T]) remove(i int) {
	if i < 0 || i >= len(b.views) {
		return
	}
	b.views[i].Close()
	b.views = append(b.views[:i], b.views[i+1:]...)
	b.apply(Op{Action: ActionRemove, Target: b.container, Index: i})
}

func (b *Binder[T]) rebuild() {
	for i := len(b.views) - 1; i >= 0; i-- {
		b.remove(i)
	}
	for i, item := range b.list.Items() {
		b.insert(i, item)
	}
}

func (b *Binder[T]) apply(op Op) {
	if b.surface != nil {
		b.surface.Apply(op)
	}
}

// Len returns the number of views.
func (b *Binder[T]) Len() int { return len(b.views) }

// View returns the view at index i.
func (b *Binder[T]) View(i int) ItemView { return b.views[i] }

// IndexOf returns the position of v, or -1.
func (b *Binder[T]) IndexOf(v ItemView) int {
	for i, candidate := range b.views {
		if candidate == v {
			return i
		}
	}
	return -1
}

// Render concatenates the views in order.
func (b *Binder[T]) Render() template.HTML {
	var sb strings.Builder
	for _, v := range b.views {
		sb.WriteString(string(v.Render()))
	}
	return template.HTML(sb.String()) // #nosec G203 -- fragments come from escaped templates
}

// Close stops following the list and closes every view.
func (b *Binder[T]) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	for _, v := range b.views {
		v.Close()
	}
	b.views = nil
}
