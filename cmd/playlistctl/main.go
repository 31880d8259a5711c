package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"playlist-manager/internal/database"
	"playlist-manager/internal/playlist"
)

const (
	// Default timeout for database operations
	defaultTimeout = 30 * time.Second
	// Default database directory path
	defaultDatabaseDir = "./data"
)

// kv is the part of the database the commands use.
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	command := os.Args[1]

	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	// Get database directory from env or default
	databaseDir := os.Getenv("DATABASE_DIR")
	if databaseDir == "" {
		databaseDir = defaultDatabaseDir
	}
	dbPath := filepath.Join(databaseDir, "playlists.db")

	db, err := database.New(ctx, dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Make sure DATABASE_DIR is set correctly (current: %s)\n", databaseDir)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
	}()

	ctx, cancelOp := context.WithTimeout(ctx, defaultTimeout)
	defer cancelOp()

	switch command {
	case "status":
		err = showStatus(ctx, db, os.Stdout)
	case "export":
		err = exportPlaylists(ctx, db, os.Stdout)
	case "import":
		if len(os.Args) < 3 {
			printUsage(os.Stdout)
			os.Exit(1)
		}
		err = importFile(ctx, db, os.Args[2], os.Stdout)
	case "reset":
		err = resetPlaylists(ctx, db, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitizeCommand(command))
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// sanitizeCommand replaces anything but letters, digits, '-' and '_' so
// an unknown command can be echoed safely.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Playlist Manager Maintenance")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: playlistctl <command> [file]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  status         - Summarize the stored playlists")
	fmt.Fprintln(w, "  export         - Print the stored playlists as JSON")
	fmt.Fprintln(w, "  import <file>  - Replace the stored playlists (stop the server first)")
	fmt.Fprintln(w, "  reset          - Delete the stored playlists (stop the server first)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  DATABASE_DIR - Path to database directory (default: %s)\n", defaultDatabaseDir)
}

// readOnly drops writes so that loading a collection for inspection leaves
// the database untouched.
type readOnly struct{ kv }

func (readOnly) Set(context.Context, string, []byte) error { return nil }

func (readOnly) Delete(context.Context, string) error { return nil }

// load decodes stored data the way the server does.
func load(ctx context.Context, store playlist.Store) (*playlist.Playlists, error) {
	return playlist.Open(ctx, store, playlist.Options{})
}

func showStatus(ctx context.Context, db kv, w io.Writer) error {
	if _, err := db.Get(ctx, playlist.StorageKey); errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(w, "Status: No playlists stored yet")
		return nil
	}

	pls, err := load(ctx, readOnly{db})
	if err != nil {
		return err
	}

	stats := pls.GetStats()
	title := pls.Selected().Title()
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "Playlists: %d\n", stats.TotalPlaylists)
	fmt.Fprintf(w, "Tracks:    %d\n", stats.TotalTracks)
	fmt.Fprintf(w, "Selected:  %s\n", title)

	keys, err := db.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	fmt.Fprintf(w, "Keys:      %s\n", strings.Join(keys, ", "))
	return nil
}

func exportPlaylists(ctx context.Context, db kv, w io.Writer) error {
	data, err := db.Get(ctx, playlist.StorageKey)
	if errors.Is(err, database.ErrNotFound) {
		data = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("failed to read playlists: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("stored playlists are not valid JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

func importFile(ctx context.Context, db kv, path string, w io.Writer) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied CLI argument
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return importPlaylists(ctx, db, data, w)
}

// importPlaylists stores data after checking it loads. What is stored is
// the loaded collection, so a missing selection is repaired on the way in.
func importPlaylists(ctx context.Context, db kv, data []byte, w io.Writer) error {
	scratch := playlist.NewMemoryStore()
	if err := scratch.Set(ctx, playlist.StorageKey, data); err != nil {
		return err
	}
	pls, err := load(ctx, scratch)
	if err != nil {
		return fmt.Errorf("invalid playlist file: %w", err)
	}

	normalized, err := json.Marshal(pls.All())
	if err != nil {
		return err
	}
	if err := db.Set(ctx, playlist.StorageKey, normalized); err != nil {
		return fmt.Errorf("failed to store playlists: %w", err)
	}

	stats := pls.GetStats()
	fmt.Fprintf(w, "Imported %d playlist(s) with %d track(s).\n", stats.TotalPlaylists, stats.TotalTracks)
	return nil
}

// resetPlaylists deletes the stored collection. The server bootstraps a
// fresh one on its next start.
func resetPlaylists(ctx context.Context, db kv, w io.Writer) error {
	if _, err := db.Get(ctx, playlist.StorageKey); errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(w, "Nothing to reset")
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read playlists: %w", err)
	}
	if err := db.Delete(ctx, playlist.StorageKey); err != nil {
		return fmt.Errorf("failed to delete playlists: %w", err)
	}
	fmt.Fprintln(w, "Deleted the stored playlists.")
	return nil
}
