package view

import (
	"context"
	"html/template"

	"playlist-manager/internal/oembed"
)

// Action is a DOM operation understood by the browser terminal.
type Action string

const (
	ActionAppend      Action = "append"
	ActionInsert      Action = "insert"
	ActionRemove      Action = "remove"
	ActionReplace     Action = "replace"
	ActionText        Action = "text"
	ActionValue       Action = "value"
	ActionToggleClass Action = "toggle-class"
	ActionShow        Action = "show"
	ActionHide        Action = "hide"
	ActionFocus       Action = "focus"
	ActionCommand     Action = "command"
	ActionTitle       Action = "title"
)

// Op is one DOM operation. Target is a CSS selector. For insert and remove
// without an element id, Index counts the container's item children.
type Op struct {
	Action Action        `json:"action"`
	Target string        `json:"target,omitempty"`
	Index  int           `json:"index,omitempty"`
	HTML   template.HTML `json:"html,omitempty"`
	Text   string        `json:"text,omitempty"`
	Class  string        `json:"class,omitempty"`
	On     bool          `json:"on,omitempty"`
	Value  string        `json:"value,omitempty"`
}

// Surface receives DOM operations.
type Surface interface {
	Apply(ops ...Op)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(ops ...Op)

// Apply implements Surface.
func (f SurfaceFunc) Apply(ops ...Op) { f(ops...) }

// Env carries what views need from the application.
type Env struct {
	// Context bounds background work started by views.
	Context context.Context

	Surface   Surface
	Validator oembed.Validator
	Embedder  oembed.Embedder

	// Post schedules fn on the application loop.
	Post func(fn func())
}

func (e *Env) apply(ops ...Op) {
	if e.Surface != nil {
		e.Surface.Apply(ops...)
	}
}

func (e *Env) ctx() context.Context {
	if e.Context == nil {
		return context.Background()
	}
	return e.Context
}

// Input is a user action reported by the browser.
type Input struct {
	Kind  string `json:"kind"`
	ID    string `json:"id,omitempty"`
	Field string `json:"field,omitempty"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
	Event string `json:"event,omitempty"`
}

// Input kinds.
const (
	InputSelect      = "select"
	InputCreate      = "create"
	InputDestroy     = "destroy"
	InputEdit        = "edit"
	InputCommit      = "commit"
	InputKey         = "key"
	InputShowForm    = "show-form"
	InputHideForm    = "hide-form"
	InputSubmit      = "submit"
	InputRemoveTrack = "remove-track"
	InputWidget      = "widget"
)
