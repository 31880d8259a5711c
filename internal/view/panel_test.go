package view

import (
	"strings"
	"testing"

	"playlist-manager/internal/playlist"
)

func panelWithTracks(t *testing.T, f *fixture, names ...string) *PlaylistPanel {
	t.Helper()
	pl := playlist.New("p1")
	for _, n := range names {
		pl.AddTrack(track(n))
	}
	p := NewPlaylistPanel(f.env, pl)
	f.loop.settle(t, len(names))
	f.surface.reset()
	return p
}

// =============================================================================
// Auto-advance Tests
// =============================================================================

func TestPanelAdvanceOnFinish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		finished int
		wantPlay string
	}{
		{name: "first track does not advance", finished: 0},
		{name: "middle track plays the next", finished: 1, wantPlay: "t3"},
		{name: "last track stops", finished: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			p := panelWithTracks(t, f, "t1", "t2", "t3")
			tracks := p.Tracks()

			if !p.HandleWidget(tracks[tt.finished].ID(), WidgetFinish) {
				t.Fatal("HandleWidget did not find the track")
			}

			cmds := f.surface.find(ActionCommand, "")
			if tt.wantPlay == "" {
				if len(cmds) != 0 {
					t.Errorf("expected no play command, got %v", cmds)
				}
				return
			}
			want := "#" + tracks[2].ID() + "-player"
			if len(cmds) != 1 || cmds[0].Target != want || cmds[0].Value != "play" {
				t.Errorf("expected play on %s, got %v", want, cmds)
			}
		})
	}
}

func TestPanelSingleTrackNeverAdvances(t *testing.T) {
	t.Parallel()

	f := newFixture()
	p := panelWithTracks(t, f, "only")
	p.HandleWidget(p.Tracks()[0].ID(), WidgetFinish)

	if cmds := f.surface.find(ActionCommand, ""); len(cmds) != 0 {
		t.Errorf("unexpected commands: %v", cmds)
	}
}

// =============================================================================
// Track List Tests
// =============================================================================

func TestPanelEmptyIndicator(t *testing.T) {
	t.Parallel()

	f := newFixture()
	p := panelWithTracks(t, f)

	if !strings.Contains(string(p.Render()), `id="empty-list" class="alert empty-list">`) {
		t.Error("empty playlist should show the indicator")
	}

	p.AddTrack(track("a"))
	if ops := f.surface.find(ActionHide, EmptyIndicator); len(ops) != 1 {
		t.Errorf("adding a track should hide the indicator, got %v", f.surface.ops)
	}
	inserts := f.surface.find(ActionInsert, TracksContainer)
	if len(inserts) != 1 || inserts[0].Index != 0 {
		t.Errorf("expected one track insert, got %v", inserts)
	}

	f.loop.settle(t, 1)
	if err := p.RemoveTrack(p.Tracks()[0].ID()); err != nil {
		t.Fatal(err)
	}
	if ops := f.surface.find(ActionShow, EmptyIndicator); len(ops) != 1 {
		t.Errorf("removing the last track should show the indicator, got %v", f.surface.ops)
	}
	if p.Playlist().Len() != 0 {
		t.Errorf("playlist should be empty, has %v", p.Playlist().URLs())
	}
}

func TestPanelRemoveTrackUnknown(t *testing.T) {
	t.Parallel()

	f := newFixture()
	p := panelWithTracks(t, f, "a")
	if err := p.RemoveTrack("track-nope"); err == nil {
		t.Error("expected an error for an unknown track")
	}
}

func TestPanelAddTrackUpdatesPlaylist(t *testing.T) {
	t.Parallel()

	f := newFixture()
	p := panelWithTracks(t, f, "a")
	p.AddTrack(track("b"))

	if got := strings.Join(p.Playlist().URLs(), " "); got != track("a")+" "+track("b") {
		t.Errorf("URLs = %s", got)
	}
	if len(p.Tracks()) != 2 {
		t.Errorf("expected 2 track views, got %d", len(p.Tracks()))
	}
}

// =============================================================================
// Title Tests
// =============================================================================

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	if got := DocumentTitle(""); got != "Untitled | SoundCloud Playlist" {
		t.Errorf("DocumentTitle(\"\") = %q", got)
	}
	if got := DocumentTitle("Roadtrip"); got != "Roadtrip | SoundCloud Playlist" {
		t.Errorf("DocumentTitle(Roadtrip) = %q", got)
	}
}

func TestPanelRefreshSetsTitle(t *testing.T) {
	t.Parallel()

	f := newFixture()
	p := panelWithTracks(t, f)
	p.Playlist().SetTitle("Evening")
	p.Refresh()

	ops := f.surface.find(ActionTitle, "")
	if len(ops) != 1 || ops[0].Text != "Evening | SoundCloud Playlist" {
		t.Errorf("title ops = %v", ops)
	}
}

func TestPanelRendersPlaceholders(t *testing.T) {
	t.Parallel()

	f := newFixture()
	html := string(panelWithTracks(t, f).Render())

	for _, want := range []string{TitlePlaceholder, DescriptionPlaceholder, `class="editable empty"`} {
		if !strings.Contains(html, want) {
			t.Errorf("panel should contain %q", want)
		}
	}
}

func TestPanelPlayerOpsSkipsLoading(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.oembed.bad[track("broken")] = true
	p := panelWithTracks(t, f, "a", "broken")

	pl := p.Playlist()
	pl.AddTrack(track("pending"))

	ops := p.PlayerOps()
	if len(ops) != 2 {
		t.Fatalf("expected the two settled players, got %v", ops)
	}
	tracks := p.Tracks()
	if ops[0].Target != "#"+tracks[0].ID()+"-player" || !strings.Contains(string(ops[0].HTML), "<iframe") {
		t.Errorf("first op = %+v", ops[0])
	}
	if ops[1].Target != "#"+tracks[1].ID()+"-player" || !strings.Contains(string(ops[1].HTML), "did not load.") {
		t.Errorf("second op = %+v", ops[1])
	}

	f.loop.settle(t, 1)
	if len(p.PlayerOps()) != 3 {
		t.Error("a player that settles later should be included")
	}
}

func TestPanelCloseAbandonsTracks(t *testing.T) {
	t.Parallel()

	f := newFixture()
	pl := playlist.New("p1")
	pl.AddTrack(track("a"))
	p := NewPlaylistPanel(f.env, pl)
	p.Close()
	f.loop.settle(t, 1)

	pl.AddTrack(track("b"))
	if len(f.surface.ops) != 0 {
		t.Errorf("closed panel must not emit, got %v", f.surface.ops)
	}
}
