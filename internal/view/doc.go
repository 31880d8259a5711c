/*
Package view keeps the browser in step with the playlist data.

Views never touch a DOM. They render HTML fragments with html/template and
describe every later change as an Op sent to a Surface; the live package
forwards those ops to connected browsers, and tests record them.

# Binding

Binder attaches to a collection.List and maintains one ItemView per item:

	binder := view.Bind(list, surface, "#tracks", newItem)

Added inserts a rendered view at the item's index, Removed closes and drops
the view at that index, and Reset closes everything and rebuilds. Changed is
forwarded to views implementing Refresher.

# Views

  - Menu and MenuItem list the playlists and mark the selected one
  - PlaylistPanel shows the selected playlist with its tracks
  - TrackItem loads a player embed and relays widget events
  - Editable is an inline editor for one playlist attribute
  - AddTrackForm validates a URL before handing it to the panel

All view methods must run on the application loop. Work that blocks, such as
oEmbed lookups, runs in its own goroutine and hands its result back through
Env.Post.
*/
package view
