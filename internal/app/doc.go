// Package app owns the application state and serializes every change to it.
//
// An App is built once at startup from the playlist collection, the oEmbed
// client and the Surface that reaches the browsers. Views and the collection
// are not safe for concurrent use, so all access goes through a single loop:
// Run drains queued actions, Do runs one on the loop and waits for it, and
// Post queues one without waiting, which is how background lookups report
// back.
//
// Browser input arrives as view.Input through Dispatch. The HTTP API and the
// bookmarklet page use the typed methods, which go through the same loop and
// so update connected browsers as well.
package app
