package domain

import "context"

// CatalogClient defines the interface for the external game catalog service
type CatalogClient interface {
	// SearchGames returns loosely matching candidates for a free-text
	// title. An empty result is not an error.
	SearchGames(ctx context.Context, search string) ([]IGDBGame, error)

	// GetGames fetches display-ready details for a batch of ids,
	// restricted to the given field set (nil means all fields).
	GetGames(ctx context.Context, ids []int, fields []string) ([]IGDBGame, error)

	// GetPlatforms fetches platform names for a set of platform ids
	GetPlatforms(ctx context.Context, ids []int) ([]IGDBPlatform, error)

	// GetRelated returns the catalog's related-game ids for one title
	GetRelated(ctx context.Context, id int) ([]int, error)
}

// MarketplaceClient defines the interface for the primary marketplace's
// keyword search, restricted to the video-game category
type MarketplaceClient interface {
	SearchItems(ctx context.Context, keywords string) (*AmazonSearchResult, error)
}

// ProductLookupClient defines the interface for the secondary
// marketplace's product-code-keyed search
type ProductLookupClient interface {
	FindByProductCode(ctx context.Context, upc string) (*EbayListing, error)
}

// UserRepository defines the interface for account persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// WatchlistRepository defines the interface for watchlist persistence
type WatchlistRepository interface {
	// Get returns the user's watchlist, or an empty one if none is stored
	Get(ctx context.Context, userID string) (*Watchlist, error)
	Save(ctx context.Context, list *Watchlist) error
}
