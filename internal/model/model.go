package model

import (
	"github.com/shopspring/decimal"
)

// Product is the normalized catalog entry every service hands to
// presentation. Fields past Available are display-only: they are defaulted
// client-side when the backend omits them and are never written back.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"imageUrl"`
	Brand         string          `json:"brand"`
	StockQuantity int             `json:"stockQuantity"`
	Available     bool            `json:"available"`

	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Discount      float64          `json:"discount"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"reviewCount"`
	Shipping      string           `json:"shipping"`
	Tags          []string         `json:"tags"`
}

// Purchasable reports whether add-to-cart may be offered for this product.
func (p Product) Purchasable() bool {
	return p.Available && p.StockQuantity > 0
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCancelled = "CANCELLED"
)

// Order mirrors the backend's generic order resource. Pending orders double
// as the cart's storage: there is no dedicated cart resource server-side.
type Order struct {
	ID     int64       `json:"id"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CartItem is one pending-order line flattened into the cart view. OrderID
// identifies the owning order; cancelling it removes the line. Product is
// filled best-effort and may be nil when the lookup failed.
type CartItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	OrderID   int64           `json:"orderId"`
	Product   *Product        `json:"product,omitempty"`
}

type Pagination struct {
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	CurrentPage   int `json:"currentPage"`
	PageSize      int `json:"pageSize"`
}
