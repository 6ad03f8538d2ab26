// Package schedule fetches upcoming LoL esports matches from the
// PandaScore HTTP API.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"oecli/internal/config"
)

// upcomingPath is the LoL upcoming-matches endpoint.
const upcomingPath = "/lol/matches/upcoming"

// Match is one scheduled match.
type Match struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	BeginAt time.Time `json:"begin_at"`
	League  League    `json:"league"`
	Status  string    `json:"status"`
}

// League identifies the competition a match belongs to.
type League struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Client talks to the schedule API with client-side rate limiting.
type Client struct {
	baseURL string
	token   string
	perPage int
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient builds a schedule client from configuration.
func NewClient(cfg config.ScheduleConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		perPage: cfg.PerPage,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  logger,
	}
}

// UpcomingMatches fetches one page of upcoming matches.
func (c *Client) UpcomingMatches(ctx context.Context, page int) ([]Match, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u, err := url.Parse(c.baseURL + upcomingPath)
	if err != nil {
		return nil, fmt.Errorf("parse schedule URL: %w", err)
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.perPage))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.DebugContext(ctx, "fetching upcoming matches",
		"page", page,
		"per_page", c.perPage,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch upcoming matches: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("schedule API returned %s: %s", resp.Status, body)
	}

	var matches []Match
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("decode schedule response: %w", err)
	}

	return matches, nil
}
