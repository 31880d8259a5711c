package playlist

import "errors"

var (
	// ErrPlaylistNotFound is returned for an unknown playlist id.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrTrackIndex is returned for a track position outside the playlist.
	ErrTrackIndex = errors.New("track index out of range")
)
