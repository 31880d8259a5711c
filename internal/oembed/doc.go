// Package oembed asks a third-party oEmbed endpoint whether a URL points at
// an embeddable track, and returns the player markup when it does.
//
// A URL is valid if and only if the endpoint answers with non-empty html.
// Everything else, including non-2xx statuses and malformed bodies, is
// reported as ErrNotEmbeddable. Transport failures are wrapped and returned
// as they are.
//
// Lookups share a bounded number of concurrent slots sized with
// workers.ForIO, so a burst of track views cannot flood the endpoint.
package oembed
