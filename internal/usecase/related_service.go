package usecase

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/joystick-informer/backend/internal/domain"
	"github.com/joystick-informer/backend/internal/metrics"
)

// relatedSampleSize is the target number of recommendations per sample
const relatedSampleSize = 5

// RelatedService draws a bounded random sample of related-game
// recommendations from the catalog's per-title related lists.
//
// The sample is drawn without replacement from the precomputed
// eligible set (the union of all related lists minus the watchlist
// itself), so the draw always terminates. When fewer than
// relatedSampleSize eligible candidates exist, the sample is simply
// shorter; insufficient candidates are not an error.
type RelatedService struct {
	catalog domain.CatalogClient

	// rand.Rand is not safe for concurrent use; samples for
	// independent requests share this source.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRelatedService creates a new related-game sampler. A nil source
// seeds from the clock; tests pass a fixed source for determinism.
func NewRelatedService(catalog domain.CatalogClient, src rand.Source) *RelatedService {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32)
	}

	return &RelatedService{
		catalog: catalog,
		rng:     rand.New(src),
	}
}

// Sample returns up to relatedSampleSize unique game ids related to
// the watchlist entries, none of which appear in the watchlist itself.
// An empty watchlist yields an empty sample without any catalog calls.
func (s *RelatedService) Sample(ctx context.Context, gameIDs []int) ([]int, error) {
	if len(gameIDs) == 0 {
		return []int{}, nil
	}

	excluded := make(map[int]bool, len(gameIDs))
	for _, id := range gameIDs {
		excluded[id] = true
	}

	// Eligible set: union of the per-title related lists, minus
	// anything already on the watchlist
	seen := make(map[int]bool)
	var eligible []int
	for _, id := range gameIDs {
		related, err := s.catalog.GetRelated(ctx, id)
		if errors.Is(err, domain.ErrGameNotFound) {
			// A stale watchlist entry shrinks the pool but does not
			// fail the whole sample
			log.Printf("[RELATED] watchlist entry %d unknown to catalog, skipping", id)
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, rid := range related {
			if excluded[rid] || seen[rid] {
				continue
			}
			seen[rid] = true
			eligible = append(eligible, rid)
		}
	}

	sample := s.draw(eligible)
	metrics.RelatedSampleSize.Observe(float64(len(sample)))
	return sample, nil
}

// draw shuffles the eligible set and takes the head, which is a
// uniform sample without replacement
func (s *RelatedService) draw(eligible []int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if len(eligible) > relatedSampleSize {
		eligible = eligible[:relatedSampleSize]
	}
	if eligible == nil {
		eligible = []int{}
	}
	return eligible
}
