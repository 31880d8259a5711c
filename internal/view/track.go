package view

import (
	"context"
	"fmt"
	"html/template"

	"playlist-manager/internal/logging"
	"playlist-manager/internal/oembed"
	"playlist-manager/internal/playlist"
)

// WidgetEvent is a lifecycle event of the embedded player.
type WidgetEvent int

const (
	WidgetReady WidgetEvent = iota
	WidgetPlay
	WidgetPause
	WidgetFinish
)

func (e WidgetEvent) String() string {
	switch e {
	case WidgetReady:
		return "ready"
	case WidgetPlay:
		return "play"
	case WidgetPause:
		return "pause"
	case WidgetFinish:
		return "finish"
	default:
		return fmt.Sprintf("WidgetEvent(%d)", int(e))
	}
}

// ParseWidgetEvent maps the browser's event name to a WidgetEvent.
func ParseWidgetEvent(s string) (WidgetEvent, bool) {
	switch s {
	case "ready":
		return WidgetReady, true
	case "play":
		return WidgetPlay, true
	case "pause":
		return WidgetPause, true
	case "finish":
		return WidgetFinish, true
	}
	return 0, false
}

type loadState int

const (
	loading loadState = iota
	loaded
	loadFailed
)

// TrackItem shows one track with its player.
type TrackItem struct {
	env    *Env
	id     string
	track  *playlist.Track
	parent func(*TrackItem, WidgetEvent)

	state   loadState
	embed   *oembed.Embed
	playing bool
	closed  bool
	cancel  context.CancelFunc

	observers []func(WidgetEvent)
}

// NewTrackItem creates the view and starts loading its player. Widget events
// are delivered to local observers first and then to parent.
func NewTrackItem(env *Env, id string, track *playlist.Track, parent func(*TrackItem, WidgetEvent)) *TrackItem {
	t := &TrackItem{env: env, id: id, track: track, parent: parent}
	t.OnEvent(t.onEvent)
	t.load()
	return t
}

func (t *TrackItem) load() {
	if t.env.Embedder == nil || t.env.Post == nil {
		return
	}
	ctx, cancel := context.WithCancel(t.env.ctx())
	t.cancel = cancel

	url := t.track.URL
	go func() {
		e, err := t.env.Embedder.Embed(ctx, url)
		t.env.Post(func() { t.finishLoad(e, err) })
	}()
}

func (t *TrackItem) finishLoad(e *oembed.Embed, err error) {
	if t.closed {
		return
	}
	if err == nil && (e == nil || e.PlayerURL == "") {
		err = fmt.Errorf("%w: no player in embed", oembed.ErrNotEmbeddable)
	}
	if err != nil {
		logging.Debug("Track %s did not load: %v", t.track.URL, err)
		t.state = loadFailed
	} else {
		t.state = loaded
		t.embed = e
	}
	if op, ok := t.PlayerOp(); ok {
		t.env.apply(op)
	}
}

// PlayerOp returns the op that draws the player as it is now. It reports
// false while the embed is still loading.
func (t *TrackItem) PlayerOp() (Op, bool) {
	if t.closed || t.state == loading {
		return Op{}, false
	}
	return Op{Action: ActionReplace, Target: "#" + t.playerID(), HTML: t.renderPlayer()}, true
}

// ID returns the element id of the track.
func (t *TrackItem) ID() string { return t.id }

// Track returns the displayed track.
func (t *TrackItem) Track() *playlist.Track { return t.track }

// Loaded reports whether the player is available.
func (t *TrackItem) Loaded() bool { return t.state == loaded }

// Failed reports whether the player could not be loaded.
func (t *TrackItem) Failed() bool { return t.state == loadFailed }

// Playing reports whether the widget last reported play.
func (t *TrackItem) Playing() bool { return t.playing }

func (t *TrackItem) playerID() string { return t.id + "-player" }

// FailureText is shown in place of a player that did not load.
func (t *TrackItem) FailureText() string { return t.track.URL + " did not load." }

// playerData is what the player fragment needs. Only the iframe src is taken
// from the provider; the surrounding markup is ours.
func (t *TrackItem) playerData() map[string]any {
	data := map[string]any{"ID": t.id, "Playing": t.playing, "PlayerURL": "", "Failure": ""}
	switch t.state {
	case loaded:
		data["PlayerURL"] = t.embed.PlayerURL
	case loadFailed:
		data["Failure"] = t.FailureText()
	}
	return data
}

func (t *TrackItem) renderPlayer() template.HTML {
	return render("player", t.playerData())
}

// Render implements ItemView.
func (t *TrackItem) Render() template.HTML {
	return render("track", t.playerData())
}

// OnEvent registers fn for the track's widget events.
func (t *TrackItem) OnEvent(fn func(WidgetEvent)) {
	t.observers = append(t.observers, fn)
}

// HandleWidget relays an event reported by the embedded player.
func (t *TrackItem) HandleWidget(e WidgetEvent) {
	if t.closed || t.state != loaded {
		return
	}
	for _, fn := range t.observers {
		fn(e)
	}
	if t.parent != nil {
		t.parent(t, e)
	}
}

func (t *TrackItem) onEvent(e WidgetEvent) {
	switch e {
	case WidgetPlay:
		t.setPlaying(true)
	case WidgetPause:
		t.setPlaying(false)
	}
}

func (t *TrackItem) setPlaying(v bool) {
	t.playing = v
	t.env.apply(Op{Action: ActionToggleClass, Target: "#" + t.id, Class: "playing", On: v})
}

// Play asks the widget to start playback. It reports false if there is no
// player.
func (t *TrackItem) Play() bool {
	if t.closed || t.state != loaded {
		return false
	}
	t.env.apply(Op{Action: ActionCommand, Target: "#" + t.playerID(), Value: "play"})
	return true
}

// Close implements ItemView. A load still in flight is abandoned.
func (t *TrackItem) Close() {
	t.closed = true
	t.observers = nil
	if t.cancel != nil {
		t.cancel()
	}
}
