package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"runtime/debug"

	"playlist-manager/internal/collection"
	"playlist-manager/internal/logging"
	"playlist-manager/internal/oembed"
	"playlist-manager/internal/playlist"
	"playlist-manager/internal/view"
)

const queueSize = 256

var (
	// ErrStopped is returned once the loop has exited.
	ErrStopped = errors.New("application stopped")

	// ErrInvalidInput is returned for browser input that cannot be routed.
	ErrInvalidInput = errors.New("invalid input")
)

// Deps are the collaborators of an App.
type Deps struct {
	Playlists *playlist.Playlists
	Validator oembed.Validator
	Embedder  oembed.Embedder
	Surface   view.Surface
}

// App is the application context.
type App struct {
	playlists *playlist.Playlists
	validator oembed.Validator
	env       *view.Env

	actions chan func()
	done    chan struct{}
	cancel  context.CancelFunc

	menu  *view.Menu
	form  *view.AddTrackForm
	panel *view.PlaylistPanel
}

// New builds the views for the current state. Nothing is sent to the
// surface until the state changes; browsers load the initial state through
// Snapshot.
func New(deps Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		playlists: deps.Playlists,
		validator: deps.Validator,
		actions:   make(chan func(), queueSize),
		done:      make(chan struct{}),
		cancel:    cancel,
	}
	a.env = &view.Env{
		Context:   ctx,
		Surface:   deps.Surface,
		Validator: deps.Validator,
		Embedder:  deps.Embedder,
		Post:      a.Post,
	}

	a.menu = view.NewMenu(a.env, a.playlists)
	a.form = view.NewAddTrackForm(a.env)
	a.showPlaylist(a.playlists.Selected(), false)

	a.playlists.OnSelect(func(pl *playlist.Playlist) { a.showPlaylist(pl, true) })
	a.playlists.List().Subscribe(collection.ObserverFunc[*playlist.Playlist](a.onPlaylistEvent))

	return a
}

// showPlaylist swaps the panel for one showing pl.
func (a *App) showPlaylist(pl *playlist.Playlist, send bool) {
	if a.panel != nil {
		if a.panel.Playlist() == pl {
			return
		}
		a.panel.Close()
		a.form.OnSubmit(nil)
	}

	a.panel = view.NewPlaylistPanel(a.env, pl)
	a.form.OnSubmit(a.panel.AddTrack)

	if send {
		a.env.Surface.Apply(
			view.Op{Action: view.ActionReplace, Target: "#" + view.PanelID, HTML: a.panel.Render()},
			view.Op{Action: view.ActionTitle, Text: a.panel.DocumentTitle()},
		)
	}
	logging.Debug("Showing playlist %s", pl.ID)
}

func (a *App) onPlaylistEvent(e collection.Event[*playlist.Playlist]) {
	if e.Kind == collection.Changed && a.panel != nil && e.Item == a.panel.Playlist() {
		a.panel.Refresh()
	}
}

// Run executes queued actions until ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		close(a.done)
		a.cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-a.actions:
			a.run(fn)
		}
	}
}

func (a *App) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Recovered from panic in application loop: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
}

// Post queues fn on the loop without waiting. It is dropped once the loop
// has stopped.
func (a *App) Post(fn func()) {
	select {
	case a.actions <- fn:
	case <-a.done:
	}
}

// Do runs fn on the loop and returns its error.
func (a *App) Do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	action := func() { errc <- fn() }

	select {
	case a.actions <- action:
	case <-ctx.Done():
		return ctx.Err()
	case <-a.done:
		return ErrStopped
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-a.done:
		return ErrStopped
	}
}

// Dispatch routes one browser input to the views.
func (a *App) Dispatch(ctx context.Context, in view.Input) error {
	return a.Do(ctx, func() error { return a.dispatch(in) })
}

func (a *App) dispatch(in view.Input) error {
	switch in.Kind {
	case view.InputSelect:
		return a.menu.Select(in.ID)
	case view.InputCreate:
		a.menu.Create()
	case view.InputDestroy:
		a.menu.Destroy()
	case view.InputEdit, view.InputCommit, view.InputKey:
		field := a.panel.Field(in.Field)
		if field == nil {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, in.Field)
		}
		switch in.Kind {
		case view.InputEdit:
			field.Edit()
		case view.InputCommit:
			field.Commit(in.Value)
		default:
			field.Key(in.Key, in.Value)
		}
	case view.InputShowForm:
		a.form.Show()
	case view.InputHideForm:
		a.form.Hide()
	case view.InputSubmit:
		a.form.Submit(in.Value)
	case view.InputRemoveTrack:
		return a.panel.RemoveTrack(in.ID)
	case view.InputWidget:
		e, ok := view.ParseWidgetEvent(in.Event)
		if !ok {
			return fmt.Errorf("%w: unknown widget event %q", ErrInvalidInput, in.Event)
		}
		// Events from a panel that was just replaced are stale.
		if !a.panel.HandleWidget(in.ID, e) {
			logging.Debug("Ignoring %s from unknown track %s", e, in.ID)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, in.Kind)
	}
	return nil
}

// Resync hands send the players of the shown playlist that have settled.
// A browser renders its page from a Snapshot before its websocket connects,
// and players that settle in between would otherwise never reach it. send
// runs on the loop, so every later op follows it.
func (a *App) Resync(ctx context.Context, send func([]view.Op)) error {
	return a.Do(ctx, func() error {
		send(a.panel.PlayerOps())
		return nil
	})
}

// Snapshot is everything needed to render the page from scratch.
type Snapshot struct {
	DocumentTitle string
	Menu          template.HTML
	Panel         template.HTML
	Playlists     []PlaylistInfo
}

// Snapshot captures the current state.
func (a *App) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := a.Do(ctx, func() error {
		s = Snapshot{
			DocumentTitle: a.panel.DocumentTitle(),
			Menu:          a.menu.Render(),
			Panel:         a.panel.Render(),
			Playlists:     a.infos(),
		}
		return nil
	})
	return s, err
}
