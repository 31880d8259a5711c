package oembed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"playlist-manager/internal/logging"
	"playlist-manager/internal/metrics"
	"playlist-manager/internal/workers"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/semaphore"
)

// DefaultEndpoint is the SoundCloud oEmbed endpoint.
const DefaultEndpoint = "https://soundcloud.com/oembed"

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
	maxWorkers     = 16
)

// ErrNotEmbeddable is returned when the endpoint does not produce player
// markup for a URL.
var ErrNotEmbeddable = errors.New("url is not embeddable")

// Options are extra player parameters passed through to the endpoint.
type Options map[string]bool

// PlayerOptions hide everything but the player controls.
var PlayerOptions = Options{
	"show_comments":  false,
	"liking":         false,
	"sharing":        false,
	"show_artwork":   false,
	"show_playcount": false,
}

// Embed is an oEmbed response.
type Embed struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	HTML         string `json:"html"`

	// PlayerURL is the src of the first iframe in HTML.
	PlayerURL string `json:"-"`
}

// Validator checks that a URL is a playable track.
type Validator interface {
	Validate(ctx context.Context, trackURL string) (*Embed, error)
}

// Embedder fetches the player for a track.
type Embedder interface {
	Embed(ctx context.Context, trackURL string) (*Embed, error)
}

// Config configures a Client.
type Config struct {
	Endpoint string
	Timeout  time.Duration

	// Workers overrides the number of concurrent lookups.
	Workers int

	// HTTPClient replaces the default pooled client.
	HTTPClient *http.Client
}

// Client talks to an oEmbed endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	sem      *semaphore.Weighted
}

var (
	_ Validator = (*Client)(nil)
	_ Embedder  = (*Client)(nil)
)

// New creates a Client.
func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = newHTTPClient(cfg.Timeout)
	}

	n := workers.ForIO(cfg.Workers, maxWorkers)
	logging.Debug("oEmbed client: endpoint=%s timeout=%v workers=%d", cfg.Endpoint, cfg.Timeout, n)

	return &Client{
		endpoint: cfg.Endpoint,
		http:     cfg.HTTPClient,
		sem:      semaphore.NewWeighted(int64(n)),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   maxWorkers,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// Validate reports whether trackURL can be embedded.
func (c *Client) Validate(ctx context.Context, trackURL string) (*Embed, error) {
	e, err := c.Fetch(ctx, trackURL, nil)
	switch {
	case err == nil:
		metrics.ValidationsTotal.WithLabelValues("valid").Inc()
	case errors.Is(err, ErrNotEmbeddable):
		metrics.ValidationsTotal.WithLabelValues("invalid").Inc()
	default:
		metrics.ValidationsTotal.WithLabelValues("error").Inc()
	}
	return e, err
}

// Embed fetches the track player with PlayerOptions.
func (c *Client) Embed(ctx context.Context, trackURL string) (*Embed, error) {
	e, err := c.Fetch(ctx, trackURL, PlayerOptions)
	if err != nil {
		metrics.EmbedLoadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.EmbedLoadsTotal.WithLabelValues("loaded").Inc()
	return e, nil
}

// Fetch performs one oEmbed lookup.
func (c *Client) Fetch(ctx context.Context, trackURL string, opts Options) (*Embed, error) {
	trackURL = strings.TrimSpace(trackURL)
	if trackURL == "" {
		return nil, fmt.Errorf("%w: empty url", ErrNotEmbeddable)
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("oembed lookup for %s: %w", trackURL, err)
	}
	defer c.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(trackURL, opts), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.OEmbedRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("oembed lookup for %s: %w", trackURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Debug("oEmbed %s returned %d", trackURL, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrNotEmbeddable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read oembed response: %w", err)
	}

	var e Embed
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotEmbeddable, err)
	}
	if strings.TrimSpace(e.HTML) == "" {
		return nil, fmt.Errorf("%w: no html", ErrNotEmbeddable)
	}

	e.PlayerURL = playerURL(e.HTML)
	return &e, nil
}

func (c *Client) requestURL(trackURL string, opts Options) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("url", trackURL)

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, strconv.FormatBool(opts[k]))
	}

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + q.Encode()
}

// playerURL extracts the iframe src from embed markup.
func playerURL(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return doc.Find("iframe").First().AttrOr("src", "")
}
