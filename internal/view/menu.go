package view

import (
	"html/template"

	"playlist-manager/internal/playlist"
)

// UntitledList labels playlists without a title in the menu.
const UntitledList = "Untitled list"

// MenuContainer is the selector of the playlist menu.
const MenuContainer = "#menu"

// MenuItem is one playlist entry in the menu.
type MenuItem struct {
	env      *Env
	playlist *playlist.Playlist
}

// NewMenuItem creates the entry for pl.
func NewMenuItem(env *Env, pl *playlist.Playlist) *MenuItem {
	return &MenuItem{env: env, playlist: pl}
}

// ElementID returns the id of the rendered element.
func (m *MenuItem) ElementID() string { return "menu-" + m.playlist.ID }

// Label returns the entry's text.
func (m *MenuItem) Label() string {
	if t := m.playlist.Title(); t != "" {
		return t
	}
	return UntitledList
}

// Render implements ItemView.
func (m *MenuItem) Render() template.HTML {
	return render("menu-item", map[string]any{
		"ID":         m.ElementID(),
		"PlaylistID": m.playlist.ID,
		"Label":      m.Label(),
		"Active":     m.playlist.IsSelected(),
	})
}

// Refresh redraws the entry after a title or selection change.
func (m *MenuItem) Refresh() {
	m.env.apply(Op{Action: ActionReplace, Target: "#" + m.ElementID(), HTML: m.Render()})
}

// Close implements ItemView.
func (m *MenuItem) Close() {}

// Menu lists every playlist and lets the user pick, create and destroy
// them.
type Menu struct {
	playlists *playlist.Playlists
	binder    *Binder[*playlist.Playlist]
}

// NewMenu binds the menu to the playlist collection.
func NewMenu(env *Env, playlists *playlist.Playlists) *Menu {
	newItem := func(pl *playlist.Playlist) ItemView { return NewMenuItem(env, pl) }
	return &Menu{
		playlists: playlists,
		binder:    Bind(playlists.List(), env.Surface, MenuContainer, newItem),
	}
}

// Select selects the playlist with the given id.
func (m *Menu) Select(id string) error { return m.playlists.Select(id) }

// Create adds a new playlist and selects it.
func (m *Menu) Create() *playlist.Playlist { return m.playlists.Create() }

// Destroy removes the selected playlist.
func (m *Menu) Destroy() *playlist.Playlist { return m.playlists.RemoveSelected() }

// Items returns the menu entries in order.
func (m *Menu) Items() []*MenuItem {
	out := make([]*MenuItem, m.binder.Len())
	for i := range out {
		out[i] = m.binder.View(i).(*MenuItem)
	}
	return out
}

// Render renders every entry.
func (m *Menu) Render() template.HTML { return m.binder.Render() }

// Close detaches the menu.
func (m *Menu) Close() { m.binder.Close() }
