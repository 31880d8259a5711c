package playlist

import (
	"context"
	"encoding/json"
	"time"

	"playlist-manager/internal/logging"
	"playlist-manager/internal/metrics"
)

// writeTimeout bounds a single background write.
const writeTimeout = 5 * time.Second

// persist serializes the whole collection and writes it, or schedules the
// write when a delay is configured. Write failures are logged and counted,
// never returned.
func (p *Playlists) persist() {
	p.recordStats()

	data, err := json.Marshal(p.sel.List().Items())
	if err != nil {
		logging.Error("Failed to encode playlists: %v", err)
		metrics.PersistFailuresTotal.Inc()
		return
	}

	if p.delay <= 0 {
		p.write(data)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = data
	if p.timer == nil {
		p.timer = time.AfterFunc(p.delay, p.flushPending)
	}
}

func (p *Playlists) flushPending() {
	p.mu.Lock()
	data := p.pending
	p.pending = nil
	p.timer = nil
	p.mu.Unlock()

	if data != nil {
		p.write(data)
	}
}

func (p *Playlists) write(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.store.Set(ctx, p.key, data); err != nil {
		logging.Error("Failed to save playlists: %v", err)
		metrics.PersistFailuresTotal.Inc()
		return
	}
	logging.Debug("Saved playlists (%d bytes)", len(data))
}

// Flush writes any coalesced, not yet written state right away.
func (p *Playlists) Flush(ctx context.Context) error {
	p.mu.Lock()
	data := p.pending
	p.pending = nil
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	if data == nil {
		return nil
	}
	return p.store.Set(ctx, p.key, data)
}

func (p *Playlists) recordStats() {
	tracks := 0
	items := p.sel.List().Items()
	for _, pl := range items {
		tracks += pl.Len()
	}

	p.mu.Lock()
	p.stats = metrics.Stats{TotalPlaylists: len(items), TotalTracks: tracks}
	p.mu.Unlock()
}
