package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/neon-snake/internal/storage"
)

// Client talks to a remote Server. Every failed call falls back to the local
// board so scores are never lost.
type Client struct {
	base     *url.URL
	http     *http.Client
	fallback Board
	log      *log.Logger

	mu     sync.RWMutex
	cache  []storage.ScoreEntry // All-time board kept fresh by Listen
	synced bool
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, fallback Board, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("leaderboard: bad server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("leaderboard: server url %q must be http or https", baseURL)
	}
	return &Client{
		base:     u,
		http:     &http.Client{Timeout: 5 * time.Second},
		fallback: fallback,
		log:      logger,
	}, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = q.Encode()
	return u.String()
}

// Top returns the best scores, from the live cache when it is in sync.
func (c *Client) Top(ctx context.Context, period storage.Period, limit int) ([]storage.ScoreEntry, error) {
	if period == storage.PeriodAllTime {
		c.mu.RLock()
		if c.synced {
			out := slices.Clone(c.cache[:min(limit, len(c.cache))])
			c.mu.RUnlock()
			return out, nil
		}
		c.mu.RUnlock()
	}

	entries, err := c.fetchTop(ctx, period, limit)
	if err != nil {
		c.log.Warn("remote leaderboard unavailable, using local", "err", err)
		return c.fallback.Top(ctx, period, limit)
	}
	return entries, nil
}

func (c *Client) fetchTop(ctx context.Context, period storage.Period, limit int) ([]storage.ScoreEntry, error) {
	q := url.Values{"period": {string(period)}, "limit": {strconv.Itoa(limit)}}
	var resp ScoresResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint("/api/scores", q), nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Submit posts a score. On failure the score goes to the local board.
func (c *Client) Submit(ctx context.Context, name string, score int) (storage.ScoreEntry, error) {
	body, err := json.Marshal(SubmitRequest{Name: CleanName(name), Score: score})
	if err != nil {
		return storage.ScoreEntry{}, fmt.Errorf("leaderboard: encode submission: %w", err)
	}

	var entry storage.ScoreEntry
	if err := c.do(ctx, http.MethodPost, c.endpoint("/api/scores", nil), body, http.StatusCreated, &entry); err != nil {
		c.log.Warn("remote submit failed, saving locally", "err", err)
		return c.fallback.Submit(ctx, name, score)
	}
	c.insert(entry)
	return entry, nil
}

// Rank asks the server where score would place.
func (c *Client) Rank(ctx context.Context, period storage.Period, score int) (int, error) {
	q := url.Values{"period": {string(period)}, "score": {strconv.Itoa(score)}}
	var resp RankResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint("/api/scores/rank", q), nil, http.StatusOK, &resp); err != nil {
		c.log.Warn("remote rank failed, using local", "err", err)
		return c.fallback.Rank(ctx, period, score)
	}
	return resp.Rank, nil
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, want int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return fmt.Errorf("leaderboard: %s %s: unexpected status %s", method, target, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leaderboard: decode response: %w", err)
	}
	return nil
}

// Listen keeps the all-time cache in sync with the server's live feed until
// ctx is cancelled or the connection drops.
func (c *Client) Listen(ctx context.Context) error {
	ws := *c.base
	ws.Scheme = "ws"
	if c.base.Scheme == "https" {
		ws.Scheme = "wss"
	}
	ws.Path = c.base.Path + "/api/live"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, ws.String(), nil)
	if err != nil {
		return fmt.Errorf("leaderboard: dial live feed: %w", err)
	}
	defer conn.Close()

	// Seed after subscribing so no entry falls between the two.
	top, err := c.fetchTop(ctx, storage.PeriodAllTime, LocalKeep)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.cache = top
	c.synced = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.synced = false
		c.mu.Unlock()
	}()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("leaderboard: live feed: %w", err)
		}
		var entry storage.ScoreEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			c.log.Warn("bad live entry", "err", err)
			continue
		}
		c.insert(entry)
	}
}

// insert adds entry to the cache in score order, ignoring duplicates.
func (c *Client) insert(entry storage.ScoreEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.synced {
		return
	}
	if slices.ContainsFunc(c.cache, func(e storage.ScoreEntry) bool { return e.ID == entry.ID }) {
		return
	}
	i, _ := slices.BinarySearchFunc(c.cache, entry, func(a, b storage.ScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score // descending
		}
		return int(a.ID - b.ID)
	})
	c.cache = slices.Insert(c.cache, i, entry)
	if len(c.cache) > LocalKeep {
		c.cache = c.cache[:LocalKeep]
	}
}

// Synced reports whether the live cache is active.
func (c *Client) Synced() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synced
}
