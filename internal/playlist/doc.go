// Package playlist holds the playlist records and the top-level collection
// that owns them.
//
// A [Playlist] keeps its tracks as a plain ordered slice of URLs, which is
// what gets persisted. [Playlist.Tracks] materializes that slice into an
// observable list on first use; from then on every add, remove or edit on
// the list is written back to the URL slice.
//
// [Playlists] loads all playlists from a [Store] under a single key, keeps
// exactly one of them selected, and writes the whole serialized collection
// back after every mutation. Writes can be coalesced with
// [Options.PersistDelay].
package playlist
