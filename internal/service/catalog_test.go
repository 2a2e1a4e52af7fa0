package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/go-storefront/internal/api"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, time.Second, staticToken(""), testLogger())
}

func TestCatalogList_PaginatedEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("size"))
		w.Write([]byte(`{
			"success": true,
			"data": {
				"data": [{"id": 1, "name": "Lamp", "price": 19.99, "category": "Home, Kitchen & Garden"}],
				"totalPages": 5, "totalElements": 55, "currentPage": 0, "pageSize": 12
			}
		}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.List(context.Background(), 1, 12)
	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	require.NotNil(t, result.Pagination)
	assert.Equal(t, 5, result.Pagination.TotalPages)
	assert.Equal(t, 55, result.Pagination.TotalElements)
	assert.Equal(t, "Lamp", result.Data[0].Name)
	assert.True(t, result.Data[0].Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestCatalogList_FlatEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": [{"id": 2, "name": "Mug", "price": 5}]}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.List(context.Background(), 1, 12)
	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Nil(t, result.Pagination)
}

func TestCatalogList_AppliesDefaults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": [{"id": 3}]}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.List(context.Background(), 1, 12)
	require.True(t, result.Success)
	require.Len(t, result.Data, 1)

	p := result.Data[0]
	assert.Equal(t, "No Name", p.Name)
	assert.Equal(t, "Uncategorized", p.Category)
	assert.Equal(t, "Generic", p.Brand)
	assert.NotEmpty(t, p.ImageURL)
	assert.True(t, p.Price.IsZero())
	assert.Equal(t, 0, p.StockQuantity)
	assert.True(t, p.Available)
	assert.Equal(t, 4.0, p.Rating)
	assert.Equal(t, "Free Shipping", p.Shipping)
	assert.NotNil(t, p.Tags)
}

func TestCatalogList_NonSuccessEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "backend says no"}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.List(context.Background(), 1, 12)
	assert.False(t, result.Success)
	assert.Equal(t, "backend says no", result.Message)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func TestCatalogList_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := api.NewClient(server.URL, time.Second, staticToken(""), testLogger())
	server.Close()
	svc := NewCatalogService(client, nil)

	result := svc.List(context.Background(), 1, 12)
	assert.False(t, result.Success)
	assert.Equal(t, "network error, check your connection", result.Message)
	assert.Empty(t, result.Data)
}

func TestCatalogSearch_EmptyDataIsZeroResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "lamp", r.URL.Query().Get("keyword"))
		w.Write([]byte(`{"success": true}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.Search(context.Background(), "lamp", SearchFilters{})
	assert.True(t, result.Success)
	assert.Empty(t, result.Data)
}

func TestCatalogSearch_ForwardsFilters(t *testing.T) {
	minPrice := decimal.NewFromInt(10)
	maxPrice := decimal.NewFromInt(100)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10", q.Get("minPrice"))
		assert.Equal(t, "100", q.Get("maxPrice"))
		assert.Equal(t, "Toys, Kids & Baby", q.Get("category"))
		assert.Equal(t, "5", q.Get("topK"))
		w.Write([]byte(`{"success": true, "data": [{"id": 1, "name": "Lamp", "price": 20}]}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.Search(context.Background(), "lamp", SearchFilters{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Category: "Toys, Kids & Baby",
		TopK:     5,
	})
	require.True(t, result.Success)
	assert.Len(t, result.Data, 1)
}

func TestCatalogSearch_SkipsSentinelCategory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("category"))
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.Search(context.Background(), "lamp", SearchFilters{Category: AllCategories})
	assert.True(t, result.Success)
}

func TestCatalogGetByID_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	svc := NewCatalogService(client, nil)

	result := svc.GetByID(context.Background(), 42)
	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
}

func TestCatalogGetByID_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/42", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"id": 42, "name": "Lamp", "price": "19.99", "available": false}}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.GetByID(context.Background(), 42)
	require.True(t, result.Success)
	require.NotNil(t, result.Data)
	assert.False(t, result.Data.Available)
	assert.False(t, result.Data.Purchasable())
	assert.True(t, result.Data.Price.Equal(decimal.NewFromFloat(19.99)))
}

func TestCatalogListByCategory_EscapesPath(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/Electronics & Computers", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.ListByCategory(context.Background(), "Electronics & Computers", 1, 12)
	assert.True(t, result.Success)
}

func TestCatalogRecommendations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7/recommendations", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": [{"id": 8, "name": "Shade", "price": 9}]}`))
	}))
	svc := NewCatalogService(client, nil)

	result := svc.Recommendations(context.Background(), 7)
	require.True(t, result.Success)
	assert.Len(t, result.Data, 1)
}
