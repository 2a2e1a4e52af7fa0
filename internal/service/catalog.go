package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/flicky/go-storefront/internal/api"
	"github.com/flicky/go-storefront/internal/dto"
	"github.com/flicky/go-storefront/internal/model"
)

const (
	productCacheTTL = 60 * time.Second

	defaultName     = "No Name"
	defaultCategory = "Uncategorized"
	defaultBrand    = "Generic"
	defaultImageURL = "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop&q=80"
	defaultRating   = 4.0
	defaultShipping = "Free Shipping"
)

var errEmptyData = errors.New("response has no data")

// Result is the uniform outcome of every multi-product catalog call.
// Failures are carried in Message, never as a Go error: callers decide
// presentation.
type Result struct {
	Success    bool              `json:"success"`
	Data       []model.Product   `json:"data"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
}

type ItemResult struct {
	Success bool           `json:"success"`
	Data    *model.Product `json:"data"`
	Message string         `json:"message,omitempty"`
}

type OpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SearchFilters struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Category string
	TopK     int
}

// CatalogService fetches products from the backend and normalizes the two
// envelope shapes (flat list vs. paginated object) into one result. The
// Redis client is optional; without it every read goes to the backend.
type CatalogService struct {
	client      *api.Client
	redisClient *redis.Client
}

func NewCatalogService(client *api.Client, redisClient *redis.Client) *CatalogService {
	return &CatalogService{client: client, redisClient: redisClient}
}

// List fetches one page of the whole catalog. Pages are 1-based here; the
// backend counts from 0.
func (s *CatalogService) List(ctx context.Context, page, size int) Result {
	query := url.Values{}
	query.Set("page", strconv.Itoa(backendPage(page)))
	query.Set("size", strconv.Itoa(size))

	envelope, err := s.client.Get(ctx, "/products", query)
	if err != nil {
		return failure(err)
	}
	return s.listResult(envelope)
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string, page, size int) Result {
	query := url.Values{}
	query.Set("page", strconv.Itoa(backendPage(page)))
	query.Set("size", strconv.Itoa(size))

	envelope, err := s.client.Get(ctx, "/products/category/"+url.PathEscape(category), query)
	if err != nil {
		return failure(err)
	}
	return s.listResult(envelope)
}

// Search queries the backend full-text endpoint. A success envelope with an
// empty or missing data field means zero results, not an error.
func (s *CatalogService) Search(ctx context.Context, keyword string, filters SearchFilters) Result {
	query := url.Values{}
	query.Set("keyword", keyword)
	if filters.MinPrice != nil {
		query.Set("minPrice", filters.MinPrice.String())
	}
	if filters.MaxPrice != nil {
		query.Set("maxPrice", filters.MaxPrice.String())
	}
	if filters.Category != "" && filters.Category != AllCategories {
		query.Set("category", filters.Category)
	}
	if filters.TopK > 0 {
		query.Set("topK", strconv.Itoa(filters.TopK))
	}

	envelope, err := s.client.Get(ctx, "/products/search", query)
	if err != nil {
		return failure(err)
	}
	if !envelope.Success {
		return failure(errors.New(envelopeMessage(envelope, "search failed")))
	}

	products, _, err := decodeProducts(envelope.Data)
	if err != nil {
		return Result{Success: true, Data: []model.Product{}}
	}
	return Result{Success: true, Data: products}
}

// GetByID reads one product, through the cache when Redis is configured.
func (s *CatalogService) GetByID(ctx context.Context, id int64) ItemResult {
	cacheKey := productCacheKey(id)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var product model.Product
			if json.Unmarshal([]byte(cached), &product) == nil {
				return ItemResult{Success: true, Data: &product}
			}
		}
	}

	envelope, err := s.client.Get(ctx, "/products/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return ItemResult{Success: false, Message: failureMessage(err)}
	}
	product, err := decodeProduct(envelope)
	if err != nil {
		return ItemResult{Success: false, Message: envelopeMessage(envelope, "product not found")}
	}

	s.cacheProduct(ctx, cacheKey, product)
	return ItemResult{Success: true, Data: product}
}

func (s *CatalogService) Recommendations(ctx context.Context, id int64) Result {
	envelope, err := s.client.Get(ctx, "/products/"+strconv.FormatInt(id, 10)+"/recommendations", nil)
	if err != nil {
		return failure(err)
	}
	if !envelope.Success || len(envelope.Data) == 0 {
		return Result{Success: false, Data: []model.Product{}, Message: envelope.Message}
	}
	products, _, err := decodeProducts(envelope.Data)
	if err != nil {
		return Result{Success: false, Data: []model.Product{}, Message: failureMessage(err)}
	}
	return Result{Success: true, Data: products}
}

// Create adds a product. Administrative: not reachable from the shipped UI
// flows but part of the backend contract.
func (s *CatalogService) Create(ctx context.Context, req dto.CreateProductRequest) ItemResult {
	envelope, err := s.client.Post(ctx, "/products", req)
	if err != nil {
		return ItemResult{Success: false, Message: failureMessage(err)}
	}
	product, err := decodeProduct(envelope)
	if err != nil {
		return ItemResult{Success: false, Message: envelopeMessage(envelope, "failed to create product")}
	}
	return ItemResult{Success: true, Data: product, Message: "product created"}
}

func (s *CatalogService) Update(ctx context.Context, id int64, req dto.UpdateProductRequest) ItemResult {
	envelope, err := s.client.Put(ctx, "/products/"+strconv.FormatInt(id, 10), req)
	if err != nil {
		return ItemResult{Success: false, Message: failureMessage(err)}
	}
	product, err := decodeProduct(envelope)
	if err != nil {
		return ItemResult{Success: false, Message: envelopeMessage(envelope, "failed to update product")}
	}
	s.invalidateCache(ctx, id)
	return ItemResult{Success: true, Data: product, Message: "product updated"}
}

func (s *CatalogService) Delete(ctx context.Context, id int64) OpResult {
	envelope, err := s.client.Delete(ctx, "/products/"+strconv.FormatInt(id, 10))
	if err != nil {
		return OpResult{Success: false, Message: failureMessage(err)}
	}
	s.invalidateCache(ctx, id)
	return OpResult{Success: envelope.Success, Message: envelopeMessage(envelope, "product deleted")}
}

func (s *CatalogService) listResult(envelope *dto.Envelope) Result {
	if !envelope.Success {
		return failure(errors.New(envelopeMessage(envelope, "invalid response format")))
	}
	products, pagination, err := decodeProducts(envelope.Data)
	if err != nil {
		return failure(err)
	}
	return Result{Success: true, Data: products, Pagination: pagination}
}

func (s *CatalogService) cacheProduct(ctx context.Context, key string, product *model.Product) {
	if s.redisClient == nil {
		return
	}
	if data, err := json.Marshal(product); err == nil {
		s.redisClient.Set(ctx, key, data, productCacheTTL)
	}
}

func (s *CatalogService) invalidateCache(ctx context.Context, id int64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, productCacheKey(id))
	}
}

func productCacheKey(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}

func backendPage(page int) int {
	if page < 1 {
		return 0
	}
	return page - 1
}

// decodeProducts accepts either envelope data shape: a bare product array,
// or a pagination object whose data field holds the array.
func decodeProducts(data json.RawMessage) ([]model.Product, *model.Pagination, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, errEmptyData
	}

	if trimmed[0] == '[' {
		var payloads []dto.ProductPayload
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			return nil, nil, fmt.Errorf("decode product list: %w", err)
		}
		return normalizeProducts(payloads), nil, nil
	}

	var page dto.PageData
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, nil, fmt.Errorf("decode product page: %w", err)
	}
	inner := bytes.TrimSpace(page.Data)
	if len(inner) == 0 || inner[0] != '[' {
		return nil, nil, errEmptyData
	}
	var payloads []dto.ProductPayload
	if err := json.Unmarshal(inner, &payloads); err != nil {
		return nil, nil, fmt.Errorf("decode product page: %w", err)
	}
	pagination := &model.Pagination{
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		CurrentPage:   page.CurrentPage,
		PageSize:      page.PageSize,
	}
	return normalizeProducts(payloads), pagination, nil
}

func decodeProduct(envelope *dto.Envelope) (*model.Product, error) {
	if !envelope.Success || len(envelope.Data) == 0 {
		return nil, errEmptyData
	}
	var payload dto.ProductPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	product := normalizeProduct(payload)
	return &product, nil
}

func normalizeProducts(payloads []dto.ProductPayload) []model.Product {
	products := make([]model.Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, normalizeProduct(p))
	}
	return products
}

// normalizeProduct fills documented defaults for absent fields so
// presentation never branches on missing data. The trailing fields are
// display-only and carry no server-side meaning.
func normalizeProduct(p dto.ProductPayload) model.Product {
	product := model.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         decimal.Zero,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		Brand:         p.Brand,
		StockQuantity: p.StockQuantity,
		Available:     true,
		Rating:        defaultRating,
		Shipping:      defaultShipping,
		Tags:          []string{},
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Available != nil {
		product.Available = *p.Available
	}
	if product.Name == "" {
		product.Name = defaultName
	}
	if product.Category == "" {
		product.Category = defaultCategory
	}
	if product.Brand == "" {
		product.Brand = defaultBrand
	}
	if product.ImageURL == "" {
		product.ImageURL = defaultImageURL
	}
	return product
}

func failure(err error) Result {
	return Result{Success: false, Data: []model.Product{}, Message: failureMessage(err)}
}

// failureMessage maps the client error taxonomy to the user-facing text
// presentation shows inline. Raw transport detail never reaches the UI.
func failureMessage(err error) string {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, api.ErrTimeout):
		return "connection timeout"
	case errors.Is(err, api.ErrNetwork):
		return "network error, check your connection"
	case errors.As(err, &statusErr):
		return statusErr.Error()
	default:
		return err.Error()
	}
}

func envelopeMessage(envelope *dto.Envelope, fallback string) string {
	if envelope != nil && envelope.Message != "" {
		return envelope.Message
	}
	return fallback
}
