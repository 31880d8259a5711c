package view

import (
	"html/template"
	"strconv"

	"playlist-manager/internal/collection"
	"playlist-manager/internal/metrics"
	"playlist-manager/internal/playlist"
)

// Placeholders of the editable fields.
const (
	TitlePlaceholder       = "No title yet, click to edit"
	DescriptionPlaceholder = "Click to add description"
)

// Element ids used by the panel.
const (
	PanelID         = "playlist"
	TracksContainer = "#tracks"
	EmptyIndicator  = "#empty-list"
	titleID         = "playlist-title"
	descriptionID   = "playlist-description"
)

// Editable field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

// DocumentTitle returns the browser title for a playlist title.
func DocumentTitle(title string) string {
	if title == "" {
		title = "Untitled"
	}
	return title + " | SoundCloud Playlist"
}

// PlaylistPanel shows one playlist: its title, description and tracks.
type PlaylistPanel struct {
	env         *Env
	playlist    *playlist.Playlist
	title       *Editable
	description *Editable
	tracks      *Binder[*playlist.Track]
	unsubscribe func()
	nextID      int
}

// NewPlaylistPanel binds a panel to pl. The caller sends Render to the
// browser before any later op.
func NewPlaylistPanel(env *Env, pl *playlist.Playlist) *PlaylistPanel {
	p := &PlaylistPanel{env: env, playlist: pl}

	p.title = NewEditable(env, titleID, FieldTitle, TitlePlaceholder, pl.Title, pl.SetTitle)
	p.description = NewEditable(env, descriptionID, FieldDescription, DescriptionPlaceholder, pl.Description, pl.SetDescription)

	list := pl.Tracks()
	p.tracks = Bind(list, env.Surface, TracksContainer, p.newTrack)
	p.unsubscribe = list.Subscribe(collection.ObserverFunc[*playlist.Track](p.onTracks))

	return p
}

func (p *PlaylistPanel) newTrack(t *playlist.Track) ItemView {
	p.nextID++
	id := "track-" + p.playlist.ID + "-" + strconv.Itoa(p.nextID)
	return NewTrackItem(p.env, id, t, p.onWidget)
}

func (p *PlaylistPanel) onTracks(e collection.Event[*playlist.Track]) {
	switch e.Kind {
	case collection.Added, collection.Removed, collection.Reset:
		p.toggleEmpty()
	}
}

func (p *PlaylistPanel) toggleEmpty() {
	action := ActionHide
	if p.playlist.Tracks().Len() == 0 {
		action = ActionShow
	}
	p.env.apply(Op{Action: action, Target: EmptyIndicator})
}

// onWidget receives every widget event of the panel's tracks.
func (p *PlaylistPanel) onWidget(t *TrackItem, e WidgetEvent) {
	if e == WidgetFinish {
		p.advance(t)
	}
}

// advance plays the track after t. The first and last tracks never advance.
func (p *PlaylistPanel) advance(t *TrackItem) bool {
	i := p.tracks.IndexOf(t)
	if i > 0 && i < p.tracks.Len()-1 {
		return p.tracks.View(i + 1).(*TrackItem).Play()
	}
	return false
}

// Playlist returns the shown playlist.
func (p *PlaylistPanel) Playlist() *playlist.Playlist { return p.playlist }

// Title returns the title editor.
func (p *PlaylistPanel) Title() *Editable { return p.title }

// Description returns the description editor.
func (p *PlaylistPanel) Description() *Editable { return p.description }

// Field returns the editor for a field name, or nil.
func (p *PlaylistPanel) Field(name string) *Editable {
	switch name {
	case FieldTitle:
		return p.title
	case FieldDescription:
		return p.description
	}
	return nil
}

// Tracks returns the track views in order.
func (p *PlaylistPanel) Tracks() []*TrackItem {
	out := make([]*TrackItem, p.tracks.Len())
	for i := range out {
		out[i] = p.tracks.View(i).(*TrackItem)
	}
	return out
}

// Track returns the track view with the given element id.
func (p *PlaylistPanel) Track(id string) (*TrackItem, int, bool) {
	for i, t := range p.Tracks() {
		if t.ID() == id {
			return t, i, true
		}
	}
	return nil, -1, false
}

// AddTrack appends a track to the playlist.
func (p *PlaylistPanel) AddTrack(url string) {
	metrics.PlaylistMutationsTotal.WithLabelValues("add_track").Inc()
	p.playlist.AddTrack(url)
}

// RemoveTrack removes the track shown by the view with the given id.
func (p *PlaylistPanel) RemoveTrack(id string) error {
	_, i, ok := p.Track(id)
	if !ok {
		return playlist.ErrTrackIndex
	}
	if err := p.playlist.RemoveTrack(i); err != nil {
		return err
	}
	metrics.PlaylistMutationsTotal.WithLabelValues("remove_track").Inc()
	return nil
}

// HandleWidget routes a widget event to the track view with the given id.
func (p *PlaylistPanel) HandleWidget(id string, e WidgetEvent) bool {
	t, _, ok := p.Track(id)
	if !ok {
		return false
	}
	t.HandleWidget(e)
	return true
}

// PlayerOps redraws every player whose embed has settled, loaded or failed.
func (p *PlaylistPanel) PlayerOps() []Op {
	var ops []Op
	for _, t := range p.Tracks() {
		if op, ok := t.PlayerOp(); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// DocumentTitle returns the browser title for the playlist.
func (p *PlaylistPanel) DocumentTitle() string { return DocumentTitle(p.playlist.Title()) }

// Refresh redraws the fields and the browser title after the playlist
// changed.
func (p *PlaylistPanel) Refresh() {
	p.title.Refresh()
	p.description.Refresh()
	p.env.apply(Op{Action: ActionTitle, Text: p.DocumentTitle()})
}

// Render renders the whole panel.
func (p *PlaylistPanel) Render() template.HTML {
	return render("panel", map[string]any{
		"Title":       p.title.Render(),
		"Description": p.description.Render(),
		"Empty":       p.playlist.Tracks().Len() == 0,
		"Tracks":      p.tracks.Render(),
	})
}

// Close detaches the panel from the playlist and abandons its tracks.
func (p *PlaylistPanel) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	p.tracks.Close()
	p.title.Close()
	p.description.Close()
}
