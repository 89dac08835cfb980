package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joystick-informer/backend/internal/domain"
	"github.com/joystick-informer/backend/internal/metrics"
	"golang.org/x/time/rate"
)

const searchPageSize = 25

// Client handles communication with the IGDB game catalog API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog API client. rps is the allowed
// request rate in requests per second.
func NewClient(apiKey, baseURL string, rps float64) *Client {
	if rps <= 0 {
		rps = 4
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 8),
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SearchGames returns loosely matching candidates for a free-text
// title. An empty result set returns an empty slice, not an error: the
// resolver treats absence as "no match".
func (c *Client) SearchGames(ctx context.Context, search string) ([]domain.IGDBGame, error) {
	params := url.Values{}
	params.Add("search", search)
	params.Add("fields", "id")
	params.Add("limit", strconv.Itoa(searchPageSize))

	reqURL := fmt.Sprintf("%s/games?%s", c.baseURL, params.Encode())

	var games []domain.IGDBGame
	if err := c.getJSON(ctx, reqURL, &games); err != nil {
		return nil, err
	}

	if c.debug {
		log.Printf("[IGDB] SearchGames %q returned %d candidates", search, len(games))
	}

	return games, nil
}

// GetGames fetches details for a batch of ids restricted to the given
// field set. A nil field set fetches all fields.
func (c *Client) GetGames(ctx context.Context, ids []int, fields []string) ([]domain.IGDBGame, error) {
	if len(ids) == 0 {
		return []domain.IGDBGame{}, nil
	}

	params := url.Values{}
	if len(fields) > 0 {
		params.Add("fields", strings.Join(fields, ","))
	}

	reqURL := fmt.Sprintf("%s/games/%s?%s", c.baseURL, joinIDs(ids), params.Encode())

	var games []domain.IGDBGame
	if err := c.getJSON(ctx, reqURL, &games); err != nil {
		return nil, err
	}

	return games, nil
}

// GetPlatforms fetches platform names for a set of platform ids
func (c *Client) GetPlatforms(ctx context.Context, ids []int) ([]domain.IGDBPlatform, error) {
	if len(ids) == 0 {
		return []domain.IGDBPlatform{}, nil
	}

	params := url.Values{}
	params.Add("fields", "name")

	reqURL := fmt.Sprintf("%s/platforms/%s?%s", c.baseURL, joinIDs(ids), params.Encode())

	var platforms []domain.IGDBPlatform
	if err := c.getJSON(ctx, reqURL, &platforms); err != nil {
		return nil, err
	}

	return platforms, nil
}

// GetRelated returns the catalog's related-game ids for one title.
// An id the catalog does not know maps to ErrGameNotFound.
func (c *Client) GetRelated(ctx context.Context, id int) ([]int, error) {
	params := url.Values{}
	params.Add("fields", "similar_games")

	reqURL := fmt.Sprintf("%s/games/%d?%s", c.baseURL, id, params.Encode())

	var games []domain.IGDBGame
	if err := c.getJSON(ctx, reqURL, &games); err != nil {
		return nil, err
	}

	if len(games) == 0 {
		return nil, domain.ErrGameNotFound
	}

	return games[0].SimilarGames, nil
}

// getJSON executes a rate-limited GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("user-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("igdb", "error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.ExternalRequestsTotal.WithLabelValues("igdb", "no_match").Inc()
		return domain.ErrGameNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.ExternalRequestsTotal.WithLabelValues("igdb", "error").Inc()
		if c.debug {
			log.Printf("[IGDB] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("igdb", "error").Inc()
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrCatalogUnavailable, err)
	}

	metrics.ExternalRequestsTotal.WithLabelValues("igdb", "success").Inc()
	return nil
}

// joinIDs renders ids as the comma-separated path segment the API expects
func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
