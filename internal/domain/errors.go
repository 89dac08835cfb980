package domain

import "errors"

var (
	// ErrNoMatch is returned when a reconciliation stage finds no
	// matching listing. It is an expected outcome, not a fault: the
	// pipeline resolves it to a successful response with null fields.
	ErrNoMatch = errors.New("no marketplace match")

	// ErrGameNotFound is returned when the catalog does not know an id
	ErrGameNotFound = errors.New("game not found in catalog")

	// ErrCatalogUnavailable is returned when a catalog service request fails
	ErrCatalogUnavailable = errors.New("catalog service request failed")

	// ErrMarketplaceUnavailable is returned when a marketplace request fails
	ErrMarketplaceUnavailable = errors.New("marketplace service request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidCredentials is returned for a failed login attempt
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned for a missing, malformed or expired token
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound is returned when no account exists for a username
	ErrUserNotFound = errors.New("user not found")
)
