package usecase

import (
	"context"
	"strings"

	"github.com/joystick-informer/backend/internal/domain"
)

// defaultGameFields is the display field set fetched for search results
var defaultGameFields = []string{"name", "cover", "rating"}

// CatalogService resolves free-text titles against the game catalog
type CatalogService struct {
	catalog domain.CatalogClient
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog domain.CatalogClient) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Search resolves a free-text title to display-ready catalog entries.
// Flow: loose keyword search -> batched detail fetch by id set.
// Empty search results resolve to an empty list, not an error.
func (s *CatalogService) Search(ctx context.Context, search string) ([]domain.CatalogGame, error) {
	if strings.TrimSpace(search) == "" {
		return nil, domain.ErrInvalidRequest
	}

	candidates, err := s.catalog.SearchGames(ctx, search)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.CatalogGame{}, nil
	}

	ids := make([]int, len(candidates))
	for i, candidate := range candidates {
		ids[i] = candidate.ID
	}

	details, err := s.catalog.GetGames(ctx, ids, defaultGameFields)
	if err != nil {
		return nil, err
	}

	games := make([]domain.CatalogGame, len(details))
	for i, detail := range details {
		games[i] = domain.CatalogGame{
			ID:     detail.ID,
			Name:   detail.Name,
			Cover:  detail.Cover,
			Rating: detail.Rating,
		}
	}

	return games, nil
}

// Get returns a single catalog entry plus the display names of its
// platforms
func (s *CatalogService) Get(ctx context.Context, id int) (*domain.GameDetail, error) {
	games, err := s.catalog.GetGames(ctx, []int{id}, nil)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, domain.ErrGameNotFound
	}

	game := games[0]
	detail := &domain.GameDetail{
		Game: &domain.CatalogGame{
			ID:     game.ID,
			Name:   game.Name,
			Cover:  game.Cover,
			Rating: game.Rating,
		},
		Platforms: []string{},
	}

	if len(game.Platforms) == 0 {
		return detail, nil
	}

	platforms, err := s.catalog.GetPlatforms(ctx, game.Platforms)
	if err != nil {
		return nil, err
	}

	for _, platform := range platforms {
		if !displayablePlatform(platform) {
			continue
		}
		detail.Platforms = append(detail.Platforms, platform.Name)
	}

	return detail, nil
}

// displayablePlatform filters the catalog's platform list down to the
// consoles the storefront carries: ids 42-47 are the legacy
// handheld/mobile block (except 46) and iOS has no boxed releases.
func displayablePlatform(platform domain.IGDBPlatform) bool {
	if platform.Name == "iOS" {
		return false
	}
	return platform.ID <= 41 || platform.ID >= 48 || platform.ID == 46
}
