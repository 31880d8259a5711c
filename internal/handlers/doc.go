// Package handlers provides the HTTP surfaces of the playlist manager.
//
// It includes handlers for:
//   - The main page, rendered from the application snapshot
//   - The bookmarklet popup that adds the current page to the selected playlist
//   - The JSON playlist API
//   - The websocket that keeps open pages in sync
//   - Health checks and build information
package handlers
