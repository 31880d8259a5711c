package view

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"playlist-manager/internal/oembed"
	"playlist-manager/internal/playlist"
)

// recorder is a Surface that keeps every op.
type recorder struct {
	ops []Op
}

func (r *recorder) Apply(ops ...Op) { r.ops = append(r.ops, ops...) }

func (r *recorder) reset() { r.ops = nil }

func (r *recorder) find(action Action, target string) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Action == action && (target == "" || op.Target == target) {
			out = append(out, op)
		}
	}
	return out
}

// loop stands in for the application loop: posted functions run when the
// test settles them.
type loop struct {
	ch chan func()
}

func newLoop() *loop { return &loop{ch: make(chan func(), 64)} }

func (l *loop) post(fn func()) { l.ch <- fn }

func (l *loop) settle(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case fn := <-l.ch:
			fn()
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for posted work %d of %d", i+1, n)
		}
	}
}

// fakeOEmbed accepts every URL containing "soundcloud.com/" except those
// listed in bad. URLs in bare get an embed without an iframe.
type fakeOEmbed struct {
	bad  map[string]bool
	bare map[string]bool
}

func (f *fakeOEmbed) lookup(url string) (*oembed.Embed, error) {
	if f.bad[url] || !strings.Contains(url, "soundcloud.com/") {
		return nil, fmt.Errorf("%w: %s", oembed.ErrNotEmbeddable, url)
	}
	if f.bare[url] {
		return &oembed.Embed{Type: "rich", HTML: `<div>` + url + `</div>`}, nil
	}
	return &oembed.Embed{
		Type:      "rich",
		HTML:      `<iframe src="https://w.soundcloud.com/player/?url=` + url + `"></iframe>`,
		PlayerURL: "https://w.soundcloud.com/player/?url=" + url,
	}, nil
}

func (f *fakeOEmbed) Validate(_ context.Context, url string) (*oembed.Embed, error) {
	return f.lookup(url)
}

func (f *fakeOEmbed) Embed(_ context.Context, url string) (*oembed.Embed, error) {
	return f.lookup(url)
}

type fixture struct {
	env     *Env
	surface *recorder
	loop    *loop
	oembed  *fakeOEmbed
}

func newFixture() *fixture {
	f := &fixture{
		surface: &recorder{},
		loop:    newLoop(),
		oembed:  &fakeOEmbed{bad: map[string]bool{}},
	}
	f.env = &Env{
		Context:   context.Background(),
		Surface:   f.surface,
		Validator: f.oembed,
		Embedder:  f.oembed,
		Post:      f.loop.post,
	}
	return f
}

func openPlaylists(t *testing.T) *playlist.Playlists {
	t.Helper()
	n := 0
	p, err := playlist.Open(context.Background(), playlist.NewMemoryStore(), playlist.Options{
		NewID: func() string { n++; return fmt.Sprintf("p%d", n) },
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return p
}

func track(name string) string { return "https://soundcloud.com/artist/" + name }
