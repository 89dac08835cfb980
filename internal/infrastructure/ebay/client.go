package ebay

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

// Client handles communication with the eBay Finding API's
// findItemsByProduct operation
type Client struct {
	httpClient  *http.Client
	appID       string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Finding API client. rps is the allowed
// request rate in requests per second.
func NewClient(appID, baseURL string, rps float64) *Client {
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		appID:       appID,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 2),
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// The Finding API wraps every value in a single-element array.
type findItemsResponse struct {
	FindItemsByProductResponse []struct {
		Ack          []string `json:"ack"`
		SearchResult []struct {
			Item []findItem `json:"item"`
		} `json:"searchResult"`
	} `json:"findItemsByProductResponse"`
}

type findItem struct {
	ItemID      []string `json:"itemId"`
	Title       []string `json:"title"`
	ViewItemURL []string `json:"viewItemURL"`
	Condition   []struct {
		ConditionDisplayName []string `json:"conditionDisplayName"`
	} `json:"condition"`
	SellingStatus []struct {
		CurrentPrice []struct {
			Value      string `json:"__value__"`
			CurrencyID string `json:"@currencyId"`
		} `json:"currentPrice"`
		SellingState []string `json:"sellingState"`
		TimeLeft     []string `json:"timeLeft"`
	} `json:"sellingStatus"`
	ListingInfo []struct {
		BuyItNowAvailable []string `json:"buyItNowAvailable"`
	} `json:"listingInfo"`
}

// FindByProductCode searches for listings keyed by UPC and maps the
// first result item. A failure acknowledgement from the service means
// the code resolved to nothing and maps to ErrNoMatch, not a fault.
// One attempt per call; the pipeline does not retry.
func (c *Client) FindByProductCode(ctx context.Context, upc string) (*domain.EbayListing, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("OPERATION-NAME", "findItemsByProduct")
	params.Add("SERVICE-VERSION", "1.0.0")
	params.Add("SECURITY-APPNAME", c.appID)
	params.Add("RESPONSE-DATA-FORMAT", "JSON")
	params.Add("REST-PAYLOAD", "")
	params.Add("productId.@type", "UPC")
	params.Add("productId", upc)

	reqURL := fmt.Sprintf("%s/services/search/FindingService/v1?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("ebay", "error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrMarketplaceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.ExternalRequestsTotal.WithLabelValues("ebay", "error").Inc()
		if c.debug {
			log.Printf("[EBAY] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrMarketplaceUnavailable, resp.StatusCode)
	}

	var result findItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("ebay", "error").Inc()
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMarketplaceUnavailable, err)
	}

	if len(result.FindItemsByProductResponse) == 0 {
		metrics.ExternalRequestsTotal.WithLabelValues("ebay", "error").Inc()
		return nil, fmt.Errorf("%w: empty response envelope", domain.ErrMarketplaceUnavailable)
	}

	envelope := result.FindItemsByProductResponse[0]
	if first(envelope.Ack) == "Failure" {
		if c.debug {
			log.Printf("[EBAY] findItemsByProduct for UPC %s acknowledged failure", upc)
		}
		metrics.ExternalRequestsTotal.WithLabelValues("ebay", "no_match").Inc()
		return nil, domain.ErrNoMatch
	}

	if len(envelope.SearchResult) == 0 || len(envelope.SearchResult[0].Item) == 0 {
		metrics.ExternalRequestsTotal.WithLabelValues("ebay", "no_match").Inc()
		return nil, domain.ErrNoMatch
	}

	metrics.ExternalRequestsTotal.WithLabelValues("ebay", "success").Inc()
	return mapListing(envelope.SearchResult[0].Item[0]), nil
}

// mapListing converts a Finding API item into the domain listing
func mapListing(item findItem) *domain.EbayListing {
	listing := &domain.EbayListing{
		ItemID: first(item.ItemID),
		URL:    first(item.ViewItemURL),
		Attributes: domain.EbayAttributes{
			Title: first(item.Title),
		},
	}

	if len(item.Condition) > 0 {
		listing.Attributes.Condition = first(item.Condition[0].ConditionDisplayName)
	}

	if len(item.SellingStatus) > 0 {
		status := item.SellingStatus[0]
		listing.Pricing.SellingState = first(status.SellingState)
		listing.Pricing.TimeLeft = first(status.TimeLeft)
		if len(status.CurrentPrice) > 0 {
			listing.Pricing.CurrentPrice = status.CurrentPrice[0].Value
			listing.Pricing.CurrencyID = status.CurrentPrice[0].CurrencyID
		}
	}

	if len(item.ListingInfo) > 0 {
		listing.BuyItNow = first(item.ListingInfo[0].BuyItNowAvailable) == "true"
	}

	return listing
}

// first unwraps the Finding API's single-element arrays
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
