package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joystick-informer/backend/internal/domain"
	"github.com/joystick-informer/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog   *usecase.CatalogService
	pricing   *usecase.PricingService
	watchlist *usecase.WatchlistService
	auth      *usecase.AuthService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	pricing *usecase.PricingService,
	watchlist *usecase.WatchlistService,
	auth *usecase.AuthService,
) *Handler {
	return &Handler{
		catalog:   catalog,
		pricing:   pricing,
		watchlist: watchlist,
		auth:      auth,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "joystick-informer-backend",
		"version": "1.0.0",
	})
}

// SearchGames resolves a free-text title against the game catalog
func (h *Handler) SearchGames(c *gin.Context) {
	games, err := h.catalog.Search(c.Request.Context(), c.Param("search"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
			return
		}
		serviceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=180")
	c.JSON(http.StatusOK, games)
}

// GetGame returns a single catalog entry plus its platform names
func (h *Handler) GetGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game id must be numeric"})
		return
	}

	detail, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ComparePrices runs the cross-marketplace price reconciliation.
// "No match" outcomes are a 200 with null fields; only transport
// faults produce a non-2xx status.
func (h *Handler) ComparePrices(c *gin.Context) {
	var query domain.PriceQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search, console or releaseDate"})
		return
	}

	result, err := h.pricing.Compare(c.Request.Context(), &query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "releaseDate must be YYYY-MM-DD"})
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Register creates a new account. Field type errors and validation
// failures return the 422 ValidationError shape.
func (h *Handler) Register(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	fields := make(map[string]string, 3)
	for _, location := range []string{"username", "password", "email"} {
		raw, ok := body[location]
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"code":     422,
				"reason":   "ValidationError",
				"message":  "Missing field",
				"location": location,
			})
			return
		}
		value, ok := raw.(string)
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"code":     422,
				"reason":   "ValidationError",
				"message":  "Incorrect field type: expected string",
				"location": location,
			})
			return
		}
		fields[location] = value
	}

	user, err := h.auth.Register(c.Request.Context(), fields["username"], fields["password"], fields["email"])
	if err != nil {
		var verr *usecase.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, verr)
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates HTTP Basic credentials and issues a JWT
func (h *Handler) Login(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="joystick-informer"`)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Basic credentials required"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authToken": token})
}

// RefreshToken issues a fresh JWT for the authenticated identity
func (h *Handler) RefreshToken(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	token, err := h.auth.Refresh(claims)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authToken": token})
}

// GetDashboard returns the authenticated user's watchlist
func (h *Handler) GetDashboard(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	list, err := h.watchlist.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// dashboardUpdate is the PUT /dashboard body. GameIDs is a pointer so
// a missing key is distinguishable from an explicit empty list.
type dashboardUpdate struct {
	GameIDs *[]int `json:"gameIds"`
}

// UpdateDashboard replaces the watchlist and re-samples the related
// games. An empty id list clears the stored sample.
func (h *Handler) UpdateDashboard(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var body dashboardUpdate
	if err := c.ShouldBindJSON(&body); err != nil || body.GameIDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing gameIds in request body"})
		return
	}

	list, err := h.watchlist.Update(c.Request.Context(), claims.UserID, *body.GameIDs)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// currentClaims returns the claims set by the auth middleware
func currentClaims(c *gin.Context) *usecase.Claims {
	value, exists := c.Get(contextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := value.(*usecase.Claims)
	if !ok {
		return nil
	}
	return claims
}

// serviceError hides internal failure detail behind a generic response
func serviceError(c *gin.Context, err error) {
	log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
