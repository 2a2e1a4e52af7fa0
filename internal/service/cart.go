package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/flicky/go-storefront/internal/api"
	"github.com/flicky/go-storefront/internal/dto"
	"github.com/flicky/go-storefront/internal/model"
)

// SessionState is the slice of the session store the cart needs.
type SessionState interface {
	IsAuthenticated() bool
}

// CartResult is the uniform outcome of reading the cart. RequireAuth set
// means no network call was made and presentation should prompt for login.
type CartResult struct {
	Success     bool             `json:"success"`
	RequireAuth bool             `json:"requireAuth"`
	Items       []model.CartItem `json:"items"`
	Total       decimal.Decimal  `json:"total"`
	Count       int              `json:"count"`
	Message     string           `json:"message,omitempty"`
}

type CartOpResult struct {
	Success     bool   `json:"success"`
	RequireAuth bool   `json:"requireAuth"`
	Message     string `json:"message,omitempty"`
}

// CartService maps cart operations onto the backend's generic order
// resource: every pending order of the user is one or more cart lines.
// No operation lets an error escape; failures come back in the result.
type CartService struct {
	client  *api.Client
	catalog *CatalogService
	session SessionState
}

func NewCartService(client *api.Client, catalog *CatalogService, session SessionState) *CartService {
	return &CartService{client: client, catalog: catalog, session: session}
}

// GetCart flattens all PENDING orders into one item list, tags each line
// with its owning order id, and enriches lines with their product record.
// A failed product lookup keeps the raw line rather than dropping it.
func (s *CartService) GetCart(ctx context.Context) CartResult {
	if !s.session.IsAuthenticated() {
		return CartResult{RequireAuth: true, Items: []model.CartItem{}, Message: "user not authenticated"}
	}

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return CartResult{Items: []model.CartItem{}, Message: failureMessage(err)}
	}

	items := []model.CartItem{}
	total := decimal.Zero
	for _, order := range orders {
		if order.Status != model.OrderStatusPending {
			continue
		}
		for _, line := range order.Items {
			item := model.CartItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
				OrderID:   order.ID,
			}
			if lookup := s.catalog.GetByID(ctx, line.ProductID); lookup.Success {
				item.Product = lookup.Data
			}
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			items = append(items, item)
		}
	}

	return CartResult{Success: true, Items: items, Total: total, Count: len(items)}
}

// AddToCart creates a new pending order holding one line. The line price is
// sent as zero: the backend resolves the real price and is authoritative.
func (s *CartService) AddToCart(ctx context.Context, productID int64, quantity int, onRequireAuth func()) CartOpResult {
	if !s.session.IsAuthenticated() {
		if onRequireAuth != nil {
			onRequireAuth()
		}
		return CartOpResult{RequireAuth: true, Message: "authentication required"}
	}
	if quantity < 1 {
		quantity = 1
	}

	if lookup := s.catalog.GetByID(ctx, productID); !lookup.Success {
		return CartOpResult{Message: lookup.Message}
	}

	req := dto.CreateOrderRequest{
		Status: model.OrderStatusPending,
		Items: []dto.OrderItemPayload{
			{ProductID: productID, Quantity: quantity, Price: decimal.Zero},
		},
	}
	envelope, err := s.client.Post(ctx, "/orders", req)
	if err != nil {
		return CartOpResult{Message: failureMessage(err)}
	}
	if !envelope.Success {
		return CartOpResult{Message: envelopeMessage(envelope, "failed to add to cart")}
	}
	return CartOpResult{Success: true, Message: "product added to cart"}
}

// RemoveFromCart cancels the order owning the line.
func (s *CartService) RemoveFromCart(ctx context.Context, orderID int64) CartOpResult {
	if !s.session.IsAuthenticated() {
		return CartOpResult{RequireAuth: true, Message: "authentication required"}
	}

	if err := s.cancelOrder(ctx, orderID); err != nil {
		return CartOpResult{Message: failureMessage(err)}
	}
	return CartOpResult{Success: true, Message: "product removed from cart"}
}

// ClearCart cancels every pending order.
func (s *CartService) ClearCart(ctx context.Context) CartOpResult {
	if !s.session.IsAuthenticated() {
		return CartOpResult{RequireAuth: true, Message: "authentication required"}
	}

	orders, err := s.fetchOrders(ctx)
	if err != nil {
		return CartOpResult{Message: failureMessage(err)}
	}
	for _, order := range orders {
		if order.Status != model.OrderStatusPending {
			continue
		}
		if err := s.cancelOrder(ctx, order.ID); err != nil {
			return CartOpResult{Message: failureMessage(err)}
		}
	}
	return CartOpResult{Success: true, Message: "cart cleared"}
}

func (s *CartService) fetchOrders(ctx context.Context) ([]dto.OrderPayload, error) {
	envelope, err := s.client.Get(ctx, "/orders", nil)
	if err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}
	var orders []dto.OrderPayload
	if err := json.Unmarshal(envelope.Data, &orders); err != nil {
		// Treat an unexpected shape as an empty order list, not a crash.
		return nil, nil
	}
	return orders, nil
}

func (s *CartService) cancelOrder(ctx context.Context, orderID int64) error {
	_, err := s.client.Post(ctx, "/orders/"+strconv.FormatInt(orderID, 10)+"/cancel", nil)
	return err
}
