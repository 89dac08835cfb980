package usecase

import (
	"context"

	"github.com/joystick-informer/backend/internal/domain"
)

// RelatedSampler produces related-game recommendations for a watchlist
type RelatedSampler interface {
	Sample(ctx context.Context, gameIDs []int) ([]int, error)
}

// WatchlistService handles reading and updating a user's watchlist.
// Every non-empty update re-samples the related-game recommendations;
// an update to an empty list clears them without invoking the sampler.
type WatchlistService struct {
	watchlists domain.WatchlistRepository
	related    RelatedSampler
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(watchlists domain.WatchlistRepository, related RelatedSampler) *WatchlistService {
	return &WatchlistService{
		watchlists: watchlists,
		related:    related,
	}
}

// Get returns the user's stored watchlist
func (s *WatchlistService) Get(ctx context.Context, userID string) (*domain.Watchlist, error) {
	return s.watchlists.Get(ctx, userID)
}

// Update replaces the user's game ids and refreshes the related-game
// sample. Duplicate ids are dropped, preserving first-seen order.
func (s *WatchlistService) Update(ctx context.Context, userID string, gameIDs []int) (*domain.Watchlist, error) {
	list := &domain.Watchlist{
		UserID:     userID,
		GameIDs:    dedupe(gameIDs),
		RelatedIDs: []int{},
	}

	if len(list.GameIDs) > 0 {
		related, err := s.related.Sample(ctx, list.GameIDs)
		if err != nil {
			return nil, err
		}
		list.RelatedIDs = related
	}

	if err := s.watchlists.Save(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// dedupe removes duplicate ids, preserving first-seen order
func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
