package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joystick-informer/backend/internal/domain"
	"github.com/joystick-informer/backend/internal/metrics"
)

// releaseDateTolerance is the fixed matching window around the
// requested release date. A marketplace candidate matches the
// timeframe filter when its release date falls within this distance of
// the target, in either direction. The window is applied to full
// dates, not release years.
const releaseDateTolerance = 184 * 24 * time.Hour

// releaseDateLayout is the wire format for release dates
const releaseDateLayout = "2006-01-02"

// PricingService reconciles a game across two marketplaces: it matches
// a listing on the primary marketplace, extracts its UPC, and uses the
// UPC to locate the corresponding listing on the secondary marketplace.
// Absence of a match at any stage is an expected outcome and yields a
// result with the corresponding field left nil.
type PricingService struct {
	amazon domain.MarketplaceClient
	ebay   domain.ProductLookupClient
	debug  bool
}

// NewPricingService creates a new pricing service with dependencies
func NewPricingService(amazon domain.MarketplaceClient, ebay domain.ProductLookupClient) *PricingService {
	return &PricingService{
		amazon: amazon,
		ebay:   ebay,
	}
}

// SetDebug enables per-stage match logging
func (s *PricingService) SetDebug(debug bool) {
	s.debug = debug
}

// Compare runs the full reconciliation pipeline for one query.
// Flow: primary keyword search -> platform filter -> timeframe filter
// -> tie-break -> UPC extraction -> secondary product-code lookup.
// Any stage may end the pipeline with "no match"; the partial result
// built so far is still returned with a nil error. Only transport
// faults surface as errors.
func (s *PricingService) Compare(ctx context.Context, query *domain.PriceQuery) (*domain.PriceComparison, error) {
	target, err := validateQuery(query)
	if err != nil {
		return nil, err
	}

	result := &domain.PriceComparison{}

	listing, upc, err := s.matchPrimary(ctx, query, target)
	if errors.Is(err, domain.ErrNoMatch) {
		metrics.PriceReconciliationsTotal.WithLabelValues("none").Inc()
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Amazon = listing

	secondary, err := s.ebay.FindByProductCode(ctx, upc)
	if errors.Is(err, domain.ErrNoMatch) {
		metrics.PriceReconciliationsTotal.WithLabelValues("primary_only").Inc()
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Ebay = secondary

	metrics.PriceReconciliationsTotal.WithLabelValues("full").Inc()
	return result, nil
}

// validateQuery checks the query fields and parses the target release date
func validateQuery(query *domain.PriceQuery) (time.Time, error) {
	if query == nil {
		return time.Time{}, domain.ErrInvalidRequest
	}
	if strings.TrimSpace(query.Search) == "" || strings.TrimSpace(query.Console) == "" {
		return time.Time{}, domain.ErrInvalidRequest
	}

	target, err := time.Parse(releaseDateLayout, query.ReleaseDate)
	if err != nil {
		return time.Time{}, domain.ErrInvalidRequest
	}

	return target, nil
}

// matchPrimary finds the best matching listing on the primary
// marketplace and extracts its UPC for the cross-reference lookup
func (s *PricingService) matchPrimary(ctx context.Context, query *domain.PriceQuery, target time.Time) (*domain.AmazonListing, string, error) {
	searchResult, err := s.amazon.SearchItems(ctx, query.Search)
	if err != nil {
		return nil, "", err
	}

	if searchResult.TotalResults == 0 {
		if s.debug {
			log.Printf("[MATCH] %q: zero total results", query.Search)
		}
		return nil, "", domain.ErrNoMatch
	}

	// Platform filter: attribute must equal the requested console
	var candidates []domain.AmazonItem
	for _, item := range searchResult.Items {
		if item.ItemAttributes.Platform == query.Console {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		if s.debug {
			log.Printf("[MATCH] %q: no candidate on platform %q", query.Search, query.Console)
		}
		return nil, "", domain.ErrNoMatch
	}

	// Timeframe filter: release date within the tolerance window.
	// Candidates with a missing or unparsable date cannot be placed in
	// time and are rejected.
	var matches []domain.AmazonItem
	for _, item := range candidates {
		released, err := time.Parse(releaseDateLayout, item.ItemAttributes.ReleaseDate)
		if err != nil {
			continue
		}
		if withinTolerance(released, target) {
			matches = append(matches, item)
		}
	}
	if len(matches) == 0 {
		if s.debug {
			log.Printf("[MATCH] %q: no candidate within %s of %s", query.Search, releaseDateTolerance, query.ReleaseDate)
		}
		return nil, "", domain.ErrNoMatch
	}

	selected := pickListing(matches)

	upc := selected.ItemAttributes.UPC
	if upc == "" {
		// Without a UPC there is no cross-reference key, so the whole
		// pipeline ends with no match rather than a primary-only result.
		if s.debug {
			log.Printf("[MATCH] %q: selected item %s has no UPC", query.Search, selected.ASIN)
		}
		return nil, "", domain.ErrNoMatch
	}

	if s.debug {
		log.Printf("[MATCH] %q: selected %s (UPC %s)", query.Search, selected.ASIN, upc)
	}

	return mapListing(selected), upc, nil
}

// withinTolerance reports whether a candidate release date falls inside
// the fixed window around the target
func withinTolerance(released, target time.Time) bool {
	diff := released.Sub(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= releaseDateTolerance
}

// pickListing breaks ties among timeframe matches: the first candidate
// exposing a lowest-new-price in its offer summary wins; if none does,
// the first candidate in service order wins.
//
// Known limitation: this is a deterministic, order-dependent tie-break
// over the upstream result ordering, not a price-optimal selection.
// The upstream ordering is not contractually stable.
func pickListing(matches []domain.AmazonItem) domain.AmazonItem {
	for _, item := range matches {
		if item.OfferSummary.LowestNewPrice != nil && item.OfferSummary.LowestNewPrice.FormattedPrice != "" {
			return item
		}
	}
	return matches[0]
}

// mapListing converts a raw search item into the externally visible listing
func mapListing(item domain.AmazonItem) *domain.AmazonListing {
	return &domain.AmazonListing{
		ItemID:     item.ASIN,
		URL:        item.DetailPageURL,
		Attributes: item.ItemAttributes,
		Pricing:    item.OfferSummary,
	}
}
