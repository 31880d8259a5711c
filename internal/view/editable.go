package view

import (
	"html/template"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// KeyEnter commits an edit.
const KeyEnter = "Enter"

// Editable is an inline editor for one text attribute. It shows the value,
// or the placeholder with the empty class, until clicked.
type Editable struct {
	env         *Env
	id          string
	field       string
	placeholder string
	get         func() string
	set         func(string)
	editing     bool
}

// NewEditable creates an editor rendered as the element with the given id.
func NewEditable(env *Env, id, field, placeholder string, get func() string, set func(string)) *Editable {
	return &Editable{
		env:         env,
		id:          id,
		field:       field,
		placeholder: placeholder,
		get:         get,
		set:         set,
	}
}

// Field returns the edited attribute's name.
func (e *Editable) Field() string { return e.field }

// Editing reports whether the input is shown.
func (e *Editable) Editing() bool { return e.editing }

// Render renders the display or, while editing, the input.
func (e *Editable) Render() template.HTML {
	value := e.get()
	text := value
	if text == "" {
		text = e.placeholder
	}
	return render("editable", map[string]any{
		"ID":      e.id,
		"Field":   e.field,
		"Editing": e.editing,
		"Empty":   value == "" && !e.editing,
		"Value":   value,
		"Text":    text,
	})
}

func (e *Editable) redraw() {
	e.env.apply(Op{Action: ActionReplace, Target: "#" + e.id, HTML: e.Render()})
}

// Edit swaps the display for an input holding the current value.
func (e *Editable) Edit() {
	if e.editing {
		return
	}
	e.editing = true
	e.redraw()
	e.env.apply(Op{Action: ActionFocus, Target: "#" + e.id + " input"})
}

// Commit stores the trimmed value and shows it. It does nothing unless an
// edit is in progress.
func (e *Editable) Commit(value string) bool {
	if !e.editing {
		return false
	}
	e.editing = false
	e.set(Normalize(value))
	e.redraw()
	return true
}

// Key handles a key press inside the input.
func (e *Editable) Key(key, value string) bool {
	if key != KeyEnter {
		return false
	}
	return e.Commit(value)
}

// Refresh redraws the display after the value changed elsewhere.
func (e *Editable) Refresh() {
	if !e.editing {
		e.redraw()
	}
}

// Close abandons an edit in progress.
func (e *Editable) Close() { e.editing = false }

// Normalize trims surrounding whitespace and puts text into NFC.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
