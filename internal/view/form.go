package view

import (
	"errors"

	"playlist-manager/internal/logging"
	"playlist-manager/internal/oembed"
)

// Element selectors of the add-track form.
const (
	FormID       = "#add-track-form"
	formInput    = "#add-track-url"
	formControls = "#add-track-form .control-group"
	formMessage  = "#add-track-form .message"
)

// ValidationMessage is shown when a submitted URL is not a track.
const ValidationMessage = "This does not seem to be a valid SoundCloud track."

// AddTrackForm collects a track URL, validates it and hands it to the
// submit handler.
type AddTrackForm struct {
	env      *Env
	visible  bool
	failed   bool
	seq      int
	onSubmit func(url string)
}

// NewAddTrackForm creates a hidden form.
func NewAddTrackForm(env *Env) *AddTrackForm {
	return &AddTrackForm{env: env}
}

// OnSubmit replaces the handler receiving validated URLs. Nil detaches it.
func (f *AddTrackForm) OnSubmit(fn func(url string)) { f.onSubmit = fn }

// Visible reports whether the form is shown.
func (f *AddTrackForm) Visible() bool { return f.visible }

// Failed reports whether the form shows a validation error.
func (f *AddTrackForm) Failed() bool { return f.failed }

// Show opens the form and focuses the input.
func (f *AddTrackForm) Show() {
	f.visible = true
	f.env.apply(
		Op{Action: ActionShow, Target: FormID},
		Op{Action: ActionFocus, Target: formInput},
	)
}

// Hide clears and closes the form.
func (f *AddTrackForm) Hide() {
	f.visible = false
	f.seq++
	f.env.apply(Op{Action: ActionValue, Target: formInput, Value: ""})
	f.hideError()
	f.env.apply(Op{Action: ActionHide, Target: FormID})
}

func (f *AddTrackForm) hideError() {
	f.failed = false
	f.env.apply(
		Op{Action: ActionToggleClass, Target: formControls, Class: "error", On: false},
		Op{Action: ActionHide, Target: formMessage},
	)
}

func (f *AddTrackForm) showError() {
	f.failed = true
	f.env.apply(
		Op{Action: ActionToggleClass, Target: formControls, Class: "error", On: true},
		Op{Action: ActionText, Target: formMessage, Text: ValidationMessage},
		Op{Action: ActionShow, Target: formMessage},
	)
}

// Submit validates url in the background. A valid URL goes to the submit
// handler and closes the form; anything else shows the error state. A blank
// URL is ignored.
func (f *AddTrackForm) Submit(url string) {
	url = Normalize(url)
	f.hideError()
	if url == "" || f.env.Validator == nil || f.env.Post == nil {
		return
	}

	f.seq++
	seq := f.seq
	ctx := f.env.ctx()
	go func() {
		_, err := f.env.Validator.Validate(ctx, url)
		f.env.Post(func() { f.validated(seq, url, err) })
	}()
}

func (f *AddTrackForm) validated(seq int, url string, err error) {
	// A newer submit or a hide supersedes this result.
	if seq != f.seq {
		return
	}
	if err != nil {
		if !errors.Is(err, oembed.ErrNotEmbeddable) {
			logging.Warn("Track validation for %s failed: %v", url, err)
		}
		f.showError()
		return
	}
	if f.onSubmit != nil {
		f.onSubmit(url)
	}
	f.Hide()
}
