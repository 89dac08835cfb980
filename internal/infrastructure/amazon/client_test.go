package amazon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joystick-informer/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchItems(t *testing.T) {
	t.Run("successful search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/onca/search", r.URL.Path)
			assert.Equal(t, "breath of the wild", r.URL.Query().Get("Keywords"))
			assert.Equal(t, "VideoGames", r.URL.Query().Get("SearchIndex"))
			assert.Equal(t, "ItemAttributes,OfferSummary", r.URL.Query().Get("ResponseGroup"))
			assert.Equal(t, "access-key", r.URL.Query().Get("AccessKey"))
			assert.Equal(t, "associate-tag", r.URL.Query().Get("AssociateTag"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"TotalResults": 2,
				"Items": [
					{
						"ASIN": "B01MS6MO77",
						"DetailPageURL": "https://www.amazon.com/dp/B01MS6MO77",
						"ItemAttributes": {
							"Title": "The Legend of Zelda: Breath of the Wild",
							"Platform": "Nintendo Switch",
							"ReleaseDate": "2017-03-03",
							"UPC": "045496590420",
							"Publisher": "Nintendo"
						},
						"OfferSummary": {
							"LowestNewPrice": {"Amount": 5999, "CurrencyCode": "USD", "FormattedPrice": "$59.99"},
							"TotalNew": "41"
						}
					},
					{
						"ASIN": "B01N3ASPNV",
						"ItemAttributes": {
							"Title": "The Legend of Zelda: Breath of the Wild",
							"Platform": "Nintendo Wii U",
							"ReleaseDate": "2017-03-03",
							"UPC": "045496904159"
						}
					}
				]
			}`))
		}))
		defer server.Close()

		client := NewClient("access-key", "associate-tag", server.URL, 100)
		result, err := client.SearchItems(context.Background(), "breath of the wild")

		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalResults)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "B01MS6MO77", result.Items[0].ASIN)
		assert.Equal(t, "Nintendo Switch", result.Items[0].ItemAttributes.Platform)
		require.NotNil(t, result.Items[0].OfferSummary.LowestNewPrice)
		assert.Equal(t, "$59.99", result.Items[0].OfferSummary.LowestNewPrice.FormattedPrice)
		assert.Nil(t, result.Items[1].OfferSummary.LowestNewPrice)
	})

	t.Run("zero results is a valid response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"TotalResults": 0, "Items": []}`))
		}))
		defer server.Close()

		client := NewClient("access-key", "associate-tag", server.URL, 100)
		result, err := client.SearchItems(context.Background(), "no such game")

		require.NoError(t, err)
		assert.Equal(t, 0, result.TotalResults)
		assert.Empty(t, result.Items)
	})

	t.Run("server error maps to marketplace unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient("access-key", "associate-tag", server.URL, 100)
		_, err := client.SearchItems(context.Background(), "zelda")

		assert.ErrorIs(t, err, domain.ErrMarketplaceUnavailable)
	})

	t.Run("malformed body maps to marketplace unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		}))
		defer server.Close()

		client := NewClient("access-key", "associate-tag", server.URL, 100)
		_, err := client.SearchItems(context.Background(), "zelda")

		assert.ErrorIs(t, err, domain.ErrMarketplaceUnavailable)
	})
}
