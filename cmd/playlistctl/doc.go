// Command playlistctl inspects and maintains the playlist database of the
// playlist manager.
//
// It supports the following operations:
//   - status: Show how many playlists and tracks are stored and which one is selected
//   - export: Print the stored playlists as indented JSON
//   - import: Replace the stored playlists with the contents of a JSON file
//
// Usage:
//
//	playlistctl <command> [file]
//
// Commands:
//
//	status  Summarize the stored playlists. Nothing is written.
//
//	export  Write the stored collection to standard output. The output
//	        can be fed back to import.
//
//	import  Validate a previously exported file and store it. Stop the
//	        server first: a running server overwrites the database with
//	        its own state on the next change.
//
// Environment:
//
//	DATABASE_DIR  Path to the database directory (default: ./data)
package main
