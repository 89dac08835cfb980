package amazon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/joystick-informer/backend/internal/domain"
	"github.com/joystick-informer/backend/internal/metrics"
	"golang.org/x/time/rate"
)

// searchCategory restricts keyword searches to the video-game category
const searchCategory = "VideoGames"

// Client handles communication with the primary marketplace's item
// search API. One search request per reconciliation; the pipeline does
// not retry.
type Client struct {
	httpClient   *http.Client
	accessKey    string
	associateTag string
	baseURL      string
	rateLimiter  *rate.Limiter
	debug        bool
}

// NewClient creates a new marketplace search client. rps is the
// allowed request rate in requests per second.
func NewClient(accessKey, associateTag, baseURL string, rps float64) *Client {
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		accessKey:    accessKey,
		associateTag: associateTag,
		baseURL:      baseURL,
		rateLimiter:  rate.NewLimiter(rate.Limit(rps), 2),
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SearchItems runs a keyword search in the video-game category and
// returns the raw result set, including the reported total-result
// count. A zero count is a valid response, not an error.
func (c *Client) SearchItems(ctx context.Context, keywords string) (*domain.AmazonSearchResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("Keywords", keywords)
	params.Add("SearchIndex", searchCategory)
	params.Add("ResponseGroup", "ItemAttributes,OfferSummary")
	params.Add("AccessKey", c.accessKey)
	params.Add("AssociateTag", c.associateTag)

	reqURL := fmt.Sprintf("%s/onca/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("amazon", "error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrMarketplaceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.ExternalRequestsTotal.WithLabelValues("amazon", "error").Inc()
		if c.debug {
			log.Printf("[AMAZON] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrMarketplaceUnavailable, resp.StatusCode)
	}

	var result domain.AmazonSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("amazon", "error").Inc()
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMarketplaceUnavailable, err)
	}

	if c.debug {
		log.Printf("[AMAZON] SearchItems %q: %d total, %d returned", keywords, result.TotalResults, len(result.Items))
	}

	metrics.ExternalRequestsTotal.WithLabelValues("amazon", "success").Inc()
	return &result, nil
}
