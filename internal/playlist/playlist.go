package playlist

import (
	"encoding/json"
	"fmt"

	"playlist-manager/internal/collection"
)

// Track is a single externally hosted audio track.
type Track struct {
	URL string
}

// Playlist is a named, ordered list of tracks.
type Playlist struct {
	ID string

	title       string
	description string
	urls        []string
	selected    bool

	tracks   *collection.List[*Track]
	onChange func(*Playlist)
}

// New creates an empty playlist with the given id.
func New(id string) *Playlist {
	return &Playlist{ID: id, urls: []string{}}
}

// Title returns the title, empty when unset.
func (p *Playlist) Title() string { return p.title }

// Description returns the description, empty when unset.
func (p *Playlist) Description() string { return p.description }

// IsSelected reports the selected flag.
func (p *Playlist) IsSelected() bool { return p.selected }

// SetSelected sets the selected flag. The owning collection manages it.
func (p *Playlist) SetSelected(v bool) { p.selected = v }

// URLs returns a copy of the track URLs in order.
func (p *Playlist) URLs() []string {
	out := make([]string, len(p.urls))
	copy(out, p.urls)
	return out
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.urls) }

// SetTitle changes the title.
func (p *Playlist) SetTitle(v string) {
	if p.title == v {
		return
	}
	p.title = v
	p.changed()
}

// SetDescription changes the description.
func (p *Playlist) SetDescription(v string) {
	if p.description == v {
		return
	}
	p.description = v
	p.changed()
}

// Tracks returns the live track list, building it from the URL slice on
// first use.
func (p *Playlist) Tracks() *collection.List[*Track] {
	if p.tracks == nil {
		items := make([]*Track, len(p.urls))
		for i, u := range p.urls {
			items[i] = &Track{URL: u}
		}
		p.tracks = collection.NewList(items...)
		p.tracks.Subscribe(collection.ObserverFunc[*Track](p.syncTracks))
	}
	return p.tracks
}

// AddTrack appends a track.
func (p *Playlist) AddTrack(url string) *Track {
	t := &Track{URL: url}
	p.Tracks().Add(t)
	return t
}

// RemoveTrack removes the track at position i.
func (p *Playlist) RemoveTrack(i int) error {
	if _, err := p.Tracks().RemoveAt(i); err != nil {
		return fmt.Errorf("%w: %v", ErrTrackIndex, err)
	}
	return nil
}

// SetTrackURL replaces the URL of the track at position i.
func (p *Playlist) SetTrackURL(i int, url string) error {
	tracks := p.Tracks()
	if i < 0 || i >= tracks.Len() {
		return fmt.Errorf("%w: %d of %d", ErrTrackIndex, i, tracks.Len())
	}
	t := tracks.At(i)
	t.URL = url
	tracks.Touch(t)
	return nil
}

func (p *Playlist) syncTracks(collection.Event[*Track]) {
	urls := make([]string, p.tracks.Len())
	for i, t := range p.tracks.Items() {
		urls[i] = t.URL
	}
	p.urls = urls
	p.changed()
}

func (p *Playlist) changed() {
	if p.onChange != nil {
		p.onChange(p)
	}
}

// record is the persisted shape of a playlist.
type record struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tracks      []string `json:"tracks"`
	Selected    bool     `json:"selected,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p *Playlist) MarshalJSON() ([]byte, error) {
	urls := p.urls
	if urls == nil {
		urls = []string{}
	}
	return json.Marshal(record{
		ID:          p.ID,
		Title:       p.title,
		Description: p.description,
		Tracks:      urls,
		Selected:    p.selected,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Playlist) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Tracks == nil {
		r.Tracks = []string{}
	}
	*p = Playlist{
		ID:          r.ID,
		title:       r.Title,
		description: r.Description,
		urls:        r.Tracks,
		selected:    r.Selected,
	}
	return nil
}
