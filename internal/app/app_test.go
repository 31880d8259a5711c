package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"playlist-manager/internal/oembed"
	"playlist-manager/internal/playlist"
	"playlist-manager/internal/view"
)

type syncRecorder struct {
	mu  sync.Mutex
	ops []view.Op
}

func (r *syncRecorder) Apply(ops ...view.Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, ops...)
}

func (r *syncRecorder) find(action view.Action, target string) []view.Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []view.Op
	for _, op := range r.ops {
		if op.Action == action && (target == "" || op.Target == target) {
			out = append(out, op)
		}
	}
	return out
}

type fakeOEmbed struct{}

func (fakeOEmbed) lookup(url string) (*oembed.Embed, error) {
	if !strings.HasPrefix(url, "https://soundcloud.com/") {
		return nil, fmt.Errorf("%w: %s", oembed.ErrNotEmbeddable, url)
	}
	return &oembed.Embed{
		HTML:      `<iframe src="https://w.soundcloud.com/player/"></iframe>`,
		PlayerURL: "https://w.soundcloud.com/player/",
	}, nil
}

func (f fakeOEmbed) Validate(_ context.Context, url string) (*oembed.Embed, error) {
	return f.lookup(url)
}

func (f fakeOEmbed) Embed(_ context.Context, url string) (*oembed.Embed, error) {
	return f.lookup(url)
}

func startApp(t *testing.T) (*App, *syncRecorder, *playlist.MemoryStore) {
	t.Helper()

	store := playlist.NewMemoryStore()
	n := 0
	pls, err := playlist.Open(context.Background(), store, playlist.Options{
		NewID: func() string { n++; return fmt.Sprintf("p%d", n) },
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	rec := &syncRecorder{}
	a := New(Deps{Playlists: pls, Validator: fakeOEmbed{}, Embedder: fakeOEmbed{}, Surface: rec})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = a.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return a, rec, store
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func selected(t *testing.T, a *App) PlaylistInfo {
	t.Helper()
	all, err := a.Playlists(testCtx(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range all {
		if p.Selected {
			return p
		}
	}
	t.Fatal("no playlist selected")
	return PlaylistInfo{}
}

// =============================================================================
// Bookmarklet Tests
// =============================================================================

func TestBookmarklet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base string
		want string
	}{
		{
			base: "http://localhost:8080/",
			want: "javascript:window.open('http://localhost:8080/bookmarklet.html%3F'%2BencodeURI(window.location.href)%2C'add-track'%2C%20'width%3D500%2Cheight%3D180')",
		},
		{
			base: "https://example.com/my lists",
			want: "javascript:window.open('https://example.com/my%20lists/bookmarklet.html%3F'%2BencodeURI(window.location.href)%2C'add-track'%2C%20'width%3D500%2Cheight%3D180')",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.base, func(t *testing.T) {
			t.Parallel()
			if got := Bookmarklet(tt.base); got != tt.want {
				t.Errorf("Bookmarklet(%q) =\n%s\nwant\n%s", tt.base, got, tt.want)
			}
		})
	}
}

func TestEncodeURI(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://a.b/c?d=e&f#g": "https://a.b/c?d=e&f#g",
		"a b":                   "a%20b",
		"ü":                     "%C3%BC",
		"100%":                  "100%25",
	}
	for in, want := range tests {
		if got := encodeURI(in); got != want {
			t.Errorf("encodeURI(%q) = %q, want %q", in, got, want)
		}
	}
}

// =============================================================================
// Snapshot and Dispatch Tests
// =============================================================================

func TestSnapshotBootstrap(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	s, err := a.Snapshot(testCtx(t))
	if err != nil {
		t.Fatal(err)
	}

	if s.DocumentTitle != "Untitled | SoundCloud Playlist" {
		t.Errorf("DocumentTitle = %q", s.DocumentTitle)
	}
	if len(s.Playlists) != 1 || !s.Playlists[0].Selected {
		t.Errorf("expected one selected playlist, got %+v", s.Playlists)
	}
	if !strings.Contains(string(s.Menu), view.UntitledList) {
		t.Errorf("menu = %s", s.Menu)
	}
	if !strings.Contains(string(s.Panel), view.TitlePlaceholder) {
		t.Errorf("panel = %s", s.Panel)
	}
}

func TestDispatchCreateSwapsPanel(t *testing.T) {
	t.Parallel()

	a, rec, _ := startApp(t)
	ctx := testCtx(t)

	if err := a.Dispatch(ctx, view.Input{Kind: view.InputCreate}); err != nil {
		t.Fatal(err)
	}

	if sel := selected(t, a); sel.ID != "p2" {
		t.Errorf("selected = %s, want p2", sel.ID)
	}
	if ops := rec.find(view.ActionReplace, "#"+view.PanelID); len(ops) != 1 {
		t.Errorf("expected the panel to be replaced once, got %d", len(ops))
	}

	if err := a.Dispatch(ctx, view.Input{Kind: view.InputSelect, ID: "p1"}); err != nil {
		t.Fatal(err)
	}
	if sel := selected(t, a); sel.ID != "p1" {
		t.Errorf("selected = %s, want p1", sel.ID)
	}
}

func TestDispatchDestroy(t *testing.T) {
	t.Parallel()

	a, _, store := startApp(t)
	ctx := testCtx(t)

	if err := a.Dispatch(ctx, view.Input{Kind: view.InputDestroy}); err != nil {
		t.Fatal(err)
	}

	all, _ := a.Playlists(ctx)
	if len(all) != 1 || all[0].ID != "p2" || !all[0].Selected {
		t.Errorf("destroying the only playlist should leave a fresh one, got %+v", all)
	}
	if store.Writes() < 2 {
		t.Errorf("destroy should persist, writes = %d", store.Writes())
	}
}

func TestDispatchEditTitle(t *testing.T) {
	t.Parallel()

	a, rec, _ := startApp(t)
	ctx := testCtx(t)

	inputs := []view.Input{
		{Kind: view.InputEdit, Field: view.FieldTitle},
		{Kind: view.InputKey, Field: view.FieldTitle, Key: "x", Value: "ignored"},
		{Kind: view.InputKey, Field: view.FieldTitle, Key: view.KeyEnter, Value: "  Night drive "},
	}
	for _, in := range inputs {
		if err := a.Dispatch(ctx, in); err != nil {
			t.Fatalf("Dispatch(%+v) failed: %v", in, err)
		}
	}

	if sel := selected(t, a); sel.Title != "Night drive" {
		t.Errorf("title = %q", sel.Title)
	}
	titles := rec.find(view.ActionTitle, "")
	if len(titles) == 0 || titles[len(titles)-1].Text != "Night drive | SoundCloud Playlist" {
		t.Errorf("document title ops = %v", titles)
	}
	if menu := rec.find(view.ActionReplace, "#menu-p1"); len(menu) == 0 || !strings.Contains(string(menu[len(menu)-1].HTML), "Night drive") {
		t.Error("menu entry should show the new title")
	}
}

func TestDispatchInvalid(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	ctx := testCtx(t)

	for _, in := range []view.Input{
		{Kind: "dance"},
		{Kind: view.InputWidget, ID: "x", Event: "seek"},
		{Kind: view.InputEdit, Field: "tracks"},
	} {
		if err := a.Dispatch(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Dispatch(%+v) = %v, want ErrInvalidInput", in, err)
		}
	}
	if err := a.Dispatch(ctx, view.Input{Kind: view.InputSelect, ID: "nope"}); !errors.Is(err, playlist.ErrPlaylistNotFound) {
		t.Errorf("select unknown = %v", err)
	}
}

func TestDispatchSubmitAddsTrack(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	ctx := testCtx(t)

	a.Dispatch(ctx, view.Input{Kind: view.InputShowForm})
	if err := a.Dispatch(ctx, view.Input{Kind: view.InputSubmit, Value: "https://soundcloud.com/a/b"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sel := selected(t, a); len(sel.Tracks) == 1 {
			if sel.Tracks[0] != "https://soundcloud.com/a/b" {
				t.Errorf("tracks = %v", sel.Tracks)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("submitted track never arrived")
}

func TestResyncSendsSettledPlayers(t *testing.T) {
	t.Parallel()

	a, rec, _ := startApp(t)
	ctx := testCtx(t)

	if _, err := a.AddTrack(ctx, "https://soundcloud.com/a/b"); err != nil {
		t.Fatal(err)
	}
	loaded := func() bool {
		for _, op := range rec.find(view.ActionReplace, "") {
			if strings.HasSuffix(op.Target, "-player") {
				return true
			}
		}
		return false
	}
	deadline := time.Now().Add(2 * time.Second)
	for !loaded() {
		if time.Now().After(deadline) {
			t.Fatal("player never loaded")
		}
		time.Sleep(5 * time.Millisecond)
	}

	var got []view.Op
	if err := a.Resync(ctx, func(ops []view.Op) { got = ops }); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Action != view.ActionReplace || !strings.HasSuffix(got[0].Target, "-player") {
		t.Fatalf("resync ops = %+v", got)
	}
	if !strings.Contains(string(got[0].HTML), `src="https://w.soundcloud.com/player/"`) {
		t.Errorf("resync should carry the loaded player: %s", got[0].HTML)
	}
}

// =============================================================================
// API Tests
// =============================================================================

func TestAddTrack(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	ctx := testCtx(t)

	if _, err := a.AddTrack(ctx, "https://example.com/x"); !errors.Is(err, oembed.ErrNotEmbeddable) {
		t.Errorf("invalid AddTrack = %v", err)
	}
	if sel := selected(t, a); len(sel.Tracks) != 0 {
		t.Errorf("invalid track must not be added, got %v", sel.Tracks)
	}

	pl, err := a.AddTrack(ctx, " https://soundcloud.com/a/b ")
	if err != nil {
		t.Fatal(err)
	}
	if len(pl.Tracks) != 1 || pl.Tracks[0] != "https://soundcloud.com/a/b" {
		t.Errorf("tracks = %v", pl.Tracks)
	}

	if err := a.RemoveTrack(ctx, pl.ID, 0); err != nil {
		t.Fatal(err)
	}
	if err := a.RemoveTrack(ctx, pl.ID, 0); !errors.Is(err, playlist.ErrTrackIndex) {
		t.Errorf("second remove = %v, want ErrTrackIndex", err)
	}
}

func TestAddFromBookmarklet(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	ctx := testCtx(t)

	title := "Finds"
	if _, err := a.UpdatePlaylist(ctx, "p1", Update{Title: &title}); err != nil {
		t.Fatal(err)
	}

	got, err := a.AddFromBookmarklet(ctx, "https://soundcloud.com/a/b")
	if err != nil || got != "Finds" {
		t.Errorf("AddFromBookmarklet = %q, %v", got, err)
	}
}

func TestUpdatePlaylist(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	ctx := testCtx(t)

	desc := "  late "
	pl, err := a.UpdatePlaylist(ctx, "p1", Update{Description: &desc})
	if err != nil {
		t.Fatal(err)
	}
	if pl.Description != "late" || pl.Title != "" {
		t.Errorf("updated = %+v", pl)
	}

	if _, err := a.UpdatePlaylist(ctx, "nope", Update{Description: &desc}); !errors.Is(err, playlist.ErrPlaylistNotFound) {
		t.Errorf("unknown id = %v", err)
	}
}

func TestCreateAndRemoveSelected(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	ctx := testCtx(t)

	created, err := a.CreatePlaylist(ctx)
	if err != nil || !created.Selected {
		t.Fatalf("CreatePlaylist = %+v, %v", created, err)
	}
	removed, err := a.RemoveSelected(ctx)
	if err != nil || removed.ID != created.ID {
		t.Fatalf("RemoveSelected = %+v, %v", removed, err)
	}
	if sel := selected(t, a); sel.ID != "p1" {
		t.Errorf("selected after removal = %s", sel.ID)
	}
}

// =============================================================================
// Loop Tests
// =============================================================================

func TestLoopSurvivesPanic(t *testing.T) {
	t.Parallel()

	a, _, _ := startApp(t)
	a.Post(func() { panic("boom") })

	if err := a.Do(testCtx(t), func() error { return nil }); err != nil {
		t.Errorf("loop should keep running, got %v", err)
	}
}

func TestDoAfterStop(t *testing.T) {
	t.Parallel()

	pls, err := playlist.Open(context.Background(), playlist.NewMemoryStore(), playlist.Options{})
	if err != nil {
		t.Fatal(err)
	}
	a := New(Deps{Playlists: pls, Validator: fakeOEmbed{}, Embedder: fakeOEmbed{}, Surface: &syncRecorder{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if err := a.Do(context.Background(), func() error { return nil }); !errors.Is(err, ErrStopped) {
		t.Errorf("Do after stop = %v, want ErrStopped", err)
	}
	a.Post(func() {})
}
