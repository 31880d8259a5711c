package app

import (
	"context"

	"playlist-manager/internal/playlist"
	"playlist-manager/internal/view"
)

// PlaylistInfo is the API view of a playlist.
type PlaylistInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tracks      []string `json:"tracks"`
	Selected    bool     `json:"selected"`
}

func info(pl *playlist.Playlist) PlaylistInfo {
	return PlaylistInfo{
		ID:          pl.ID,
		Title:       pl.Title(),
		Description: pl.Description(),
		Tracks:      pl.URLs(),
		Selected:    pl.IsSelected(),
	}
}

func (a *App) infos() []PlaylistInfo {
	all := a.playlists.All()
	out := make([]PlaylistInfo, len(all))
	for i, pl := range all {
		out[i] = info(pl)
	}
	return out
}

// Playlists lists every playlist.
func (a *App) Playlists(ctx context.Context) ([]PlaylistInfo, error) {
	var out []PlaylistInfo
	err := a.Do(ctx, func() error {
		out = a.infos()
		return nil
	})
	return out, err
}

// CreatePlaylist adds a playlist and selects it.
func (a *App) CreatePlaylist(ctx context.Context) (PlaylistInfo, error) {
	var out PlaylistInfo
	err := a.Do(ctx, func() error {
		out = info(a.menu.Create())
		return nil
	})
	return out, err
}

// RemoveSelected removes the selected playlist and returns it.
func (a *App) RemoveSelected(ctx context.Context) (PlaylistInfo, error) {
	var out PlaylistInfo
	err := a.Do(ctx, func() error {
		out = info(a.menu.Destroy())
		return nil
	})
	return out, err
}

// SelectPlaylist selects the playlist with the given id.
func (a *App) SelectPlaylist(ctx context.Context, id string) error {
	return a.Do(ctx, func() error { return a.menu.Select(id) })
}

// Update holds optional new field values.
type Update struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdatePlaylist changes the title and/or description of a playlist.
func (a *App) UpdatePlaylist(ctx context.Context, id string, u Update) (PlaylistInfo, error) {
	var out PlaylistInfo
	err := a.Do(ctx, func() error {
		if u.Title != nil {
			if err := a.playlists.SetTitle(id, view.Normalize(*u.Title)); err != nil {
				return err
			}
		}
		if u.Description != nil {
			if err := a.playlists.SetDescription(id, view.Normalize(*u.Description)); err != nil {
				return err
			}
		}
		pl, err := a.playlists.Get(id)
		if err != nil {
			return err
		}
		out = info(pl)
		return nil
	})
	return out, err
}

// AddTrack validates url and appends it to the selected playlist. Invalid
// URLs yield oembed.ErrNotEmbeddable and leave the playlist unchanged.
func (a *App) AddTrack(ctx context.Context, url string) (PlaylistInfo, error) {
	url = view.Normalize(url)
	if _, err := a.validator.Validate(ctx, url); err != nil {
		return PlaylistInfo{}, err
	}

	var out PlaylistInfo
	err := a.Do(ctx, func() error {
		a.panel.AddTrack(url)
		out = info(a.panel.Playlist())
		return nil
	})
	return out, err
}

// RemoveTrack removes the track at index from a playlist.
func (a *App) RemoveTrack(ctx context.Context, id string, index int) error {
	return a.Do(ctx, func() error { return a.playlists.RemoveTrack(id, index) })
}

// AddFromBookmarklet adds url to the selected playlist and returns that
// playlist's title.
func (a *App) AddFromBookmarklet(ctx context.Context, url string) (string, error) {
	pl, err := a.AddTrack(ctx, url)
	if err != nil {
		return "", err
	}
	return pl.Title, nil
}
