// Package middleware provides HTTP middleware for the playlist manager.
//
// It includes:
//   - Request logging in W3C Extended Log Format through internal/logging
//   - Prometheus request metrics labelled by route template
//   - gzip compression of pages and API responses
//
// All wrappers keep http.Hijacker working so the websocket endpoint can be
// served behind them.
package middleware
