package domain

// CatalogGame is a display-ready catalog entry produced by the
// resolver. Cover is the catalog's numeric image id; clients build the
// image URL from it.
type CatalogGame struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Cover  int     `json:"cover,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}

// GameDetail is a single catalog entry plus the display names of the
// platforms it was released on
type GameDetail struct {
	Game      *CatalogGame `json:"game"`
	Platforms []string     `json:"platforms"`
}

// IGDBGame represents a game payload from the catalog service.
// Fields outside the requested field set arrive zero-valued.
type IGDBGame struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Cover        int     `json:"cover,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	Platforms    []int   `json:"platforms,omitempty"`
	SimilarGames []int   `json:"similar_games,omitempty"`
}

// IGDBPlatform represents a platform payload from the catalog service
type IGDBPlatform struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
