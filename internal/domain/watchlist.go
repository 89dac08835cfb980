package domain

import "time"

// User is a registered account
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Watchlist is a user's tracked set of game ids plus the most recently
// sampled related-game recommendations. GameIDs preserves insertion
// order for display; duplicates are removed on update.
type Watchlist struct {
	UserID     string `json:"-"`
	GameIDs    []int  `json:"gameIds"`
	RelatedIDs []int  `json:"relatedIds"`
}
