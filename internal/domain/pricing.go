package domain

// PriceQuery is the immutable input to a price reconciliation request
type PriceQuery struct {
	Search      string `json:"search" binding:"required"`
	Console     string `json:"console" binding:"required"`
	ReleaseDate string `json:"releaseDate" binding:"required"` // YYYY-MM-DD
}

// AmazonItem is a raw search result item from the primary marketplace
type AmazonItem struct {
	ASIN           string         `json:"ASIN"`
	DetailPageURL  string         `json:"DetailPageURL"`
	ItemAttributes ItemAttributes `json:"ItemAttributes"`
	OfferSummary   OfferSummary   `json:"OfferSummary"`
}

// ItemAttributes is the attribute bag attached to a marketplace item
type ItemAttributes struct {
	Title       string `json:"Title"`
	Platform    string `json:"Platform"`
	ReleaseDate string `json:"ReleaseDate,omitempty"` // YYYY-MM-DD
	UPC         string `json:"UPC,omitempty"`
	Publisher   string `json:"Publisher,omitempty"`
}

// Price is a single price point in an offer summary
type Price struct {
	Amount         int    `json:"Amount"` // minor units, e.g. cents
	CurrencyCode   string `json:"CurrencyCode"`
	FormattedPrice string `json:"FormattedPrice"`
}

// OfferSummary aggregates the offers available for a marketplace item
type OfferSummary struct {
	LowestNewPrice  *Price `json:"LowestNewPrice,omitempty"`
	LowestUsedPrice *Price `json:"LowestUsedPrice,omitempty"`
	TotalNew        string `json:"TotalNew,omitempty"`
	TotalUsed       string `json:"TotalUsed,omitempty"`
}

// AmazonSearchResult is the primary marketplace's keyword search response
type AmazonSearchResult struct {
	TotalResults int          `json:"TotalResults"`
	Items        []AmazonItem `json:"Items"`
}

// AmazonListing is the matched primary listing as exposed to API clients
type AmazonListing struct {
	ItemID     string         `json:"itemId"`
	URL        string         `json:"url"`
	Attributes ItemAttributes `json:"attributes"`
	Pricing    OfferSummary   `json:"pricing"`
}

// EbayAttributes is the attribute subset exposed for a secondary listing
type EbayAttributes struct {
	Title     string `json:"title"`
	Condition string `json:"condition,omitempty"`
}

// SellingStatus summarizes the live selling state of a secondary listing
type SellingStatus struct {
	CurrentPrice string `json:"currentPrice,omitempty"`
	CurrencyID   string `json:"currencyId,omitempty"`
	SellingState string `json:"sellingState,omitempty"`
	TimeLeft     string `json:"timeLeft,omitempty"`
}

// EbayListing is the cross-referenced listing on the secondary marketplace
type EbayListing struct {
	ItemID     string         `json:"itemId"`
	URL        string         `json:"url"`
	Attributes EbayAttributes `json:"attributes"`
	Pricing    SellingStatus  `json:"pricing"`
	BuyItNow   bool           `json:"buyItNow"`
}

// PriceComparison is the combined reconciliation result. Both fields are
// independently nullable; a populated Ebay always implies a populated
// Amazon because the cross-reference key comes from the Amazon match.
type PriceComparison struct {
	Amazon *AmazonListing `json:"amazon"`
	Ebay   *EbayListing   `json:"ebay"`
}
