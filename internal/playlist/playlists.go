package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"playlist-manager/internal/collection"
	"playlist-manager/internal/database"
	"playlist-manager/internal/logging"
	"playlist-manager/internal/metrics"

	"github.com/google/uuid"
)

// StorageKey is the key the whole collection is stored under.
const StorageKey = "playlists"

// Options configures a Playlists collection.
type Options struct {
	// Key overrides StorageKey.
	Key string

	// PersistDelay coalesces writes that happen within the delay into one.
	// Zero writes synchronously on every mutation.
	PersistDelay time.Duration

	// NewID generates playlist ids. Defaults to random UUIDs.
	NewID func() string
}

// Playlists is the top-level playlist collection. Exactly one playlist is
// selected at any time.
//
// Playlists is not safe for concurrent use except for Flush and GetStats,
// which may be called from any goroutine.
type Playlists struct {
	store Store
	key   string
	delay time.Duration
	newID func() string

	sel *collection.Selection[*Playlist]

	// loading suppresses writes while the stored content is read back.
	loading bool

	mu      sync.Mutex
	pending []byte
	timer   *time.Timer
	stats   metrics.Stats
}

// Open reads the stored collection and establishes the selection. An empty
// store yields a single, selected, untitled playlist.
func Open(ctx context.Context, store Store, opts Options) (*Playlists, error) {
	p := &Playlists{
		store: store,
		key:   opts.Key,
		delay: opts.PersistDelay,
		newID: opts.NewID,
	}
	if p.key == "" {
		p.key = StorageKey
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}

	items, err := p.read(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		item.onChange = p.touch
	}
	list := collection.NewList(items...)
	list.Subscribe(collection.ObserverFunc[*Playlist](p.observe))

	p.loading = true
	p.sel = collection.NewSelection(list, p.create)
	p.loading = false
	p.recordStats()

	// A bootstrap that had to synthesize or repair the selection is a
	// mutation like any other.
	if p.needsWrite(items) {
		p.persist()
	}

	return p, nil
}

func (p *Playlists) read(ctx context.Context) ([]*Playlist, error) {
	data, err := p.store.Get(ctx, p.key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read playlists: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []*Playlist
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}

	out := items[:0]
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			item.ID = p.newID()
		}
		out = append(out, item)
	}
	return out, nil
}

// needsWrite reports whether loading changed anything compared to what was
// read.
func (p *Playlists) needsWrite(loaded []*Playlist) bool {
	if p.sel.List().Len() != len(loaded) {
		return true
	}
	flagged := 0
	for _, item := range loaded {
		if item.selected {
			flagged++
		}
	}
	return flagged != 1
}

func (p *Playlists) create() *Playlist {
	pl := New(p.newID())
	pl.onChange = p.touch
	return pl
}

func (p *Playlists) touch(pl *Playlist) {
	p.sel.List().Touch(pl)
}

func (p *Playlists) observe(e collection.Event[*Playlist]) {
	if p.loading {
		return
	}
	switch e.Kind {
	case collection.Added, collection.Removed, collection.Changed:
		p.persist()
	}
}

// List returns the observable playlist list.
func (p *Playlists) List() *collection.List[*Playlist] { return p.sel.List() }

// Selected returns the selected playlist.
func (p *Playlists) Selected() *Playlist { return p.sel.Selected() }

// All returns the playlists in order.
func (p *Playlists) All() []*Playlist { return p.sel.List().Items() }

// Len returns the number of playlists.
func (p *Playlists) Len() int { return p.sel.List().Len() }

// OnSelect registers fn to run whenever the selection changes.
func (p *Playlists) OnSelect(fn func(*Playlist)) (unsubscribe func()) {
	return p.sel.OnSelect(collection.ObserverFunc[*Playlist](func(e collection.Event[*Playlist]) {
		fn(e.Item)
	}))
}

// Get returns the playlist with the given id.
func (p *Playlists) Get(id string) (*Playlist, error) {
	for _, pl := range p.sel.List().Items() {
		if pl.ID == id {
			return pl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlaylistNotFound, id)
}

// Create adds a new empty playlist and selects it.
func (p *Playlists) Create() *Playlist {
	metrics.PlaylistMutationsTotal.WithLabelValues("create").Inc()
	pl := p.sel.AddNew()
	logging.Debug("Created playlist %s", pl.ID)
	return pl
}

// Select makes the playlist with the given id the selected one.
func (p *Playlists) Select(id string) error {
	pl, err := p.Get(id)
	if err != nil {
		return err
	}
	metrics.PlaylistMutationsTotal.WithLabelValues("select").Inc()
	p.sel.Select(pl)
	return nil
}

// Remove deletes the playlist with the given id.
func (p *Playlists) Remove(id string) error {
	pl, err := p.Get(id)
	if err != nil {
		return err
	}
	metrics.PlaylistMutationsTotal.WithLabelValues("remove").Inc()
	p.sel.Remove(pl)
	logging.Debug("Removed playlist %s", id)
	return nil
}

// RemoveSelected deletes the selected playlist.
func (p *Playlists) RemoveSelected() *Playlist {
	pl := p.sel.Selected()
	metrics.PlaylistMutationsTotal.WithLabelValues("remove").Inc()
	p.sel.RemoveSelected()
	logging.Debug("Removed selected playlist %s", pl.ID)
	return pl
}

// SetTitle changes the title of a playlist.
func (p *Playlists) SetTitle(id, title string) error {
	pl, err := p.Get(id)
	if err != nil {
		return err
	}
	metrics.PlaylistMutationsTotal.WithLabelValues("edit").Inc()
	pl.SetTitle(title)
	return nil
}

// SetDescription changes the description of a playlist.
func (p *Playlists) SetDescription(id, description string) error {
	pl, err := p.Get(id)
	if err != nil {
		return err
	}
	metrics.PlaylistMutationsTotal.WithLabelValues("edit").Inc()
	pl.SetDescription(description)
	return nil
}

// AddTrack appends a track to a playlist.
func (p *Playlists) AddTrack(id, url string) error {
	pl, err := p.Get(id)
	if err != nil {
		return err
	}
	metrics.PlaylistMutationsTotal.WithLabelValues("add_track").Inc()
	pl.AddTrack(url)
	return nil
}

// RemoveTrack removes the track at index from a playlist.
func (p *Playlists) RemoveTrack(id string, index int) error {
	pl, err := p.Get(id)
	if err != nil {
		return err
	}
	if err := pl.RemoveTrack(index); err != nil {
		return err
	}
	metrics.PlaylistMutationsTotal.WithLabelValues("remove_track").Inc()
	return nil
}

// GetStats implements metrics.StatsProvider. It is safe to call from any
// goroutine; the counts are refreshed on every write.
func (p *Playlists) GetStats() metrics.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
