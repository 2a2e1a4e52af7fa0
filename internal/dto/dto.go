package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// --- Backend wire shapes ---

// Envelope is the {success, data, message} wrapper every backend response
// uses. Data stays raw because its shape varies per endpoint (bare array,
// single object, or a PageData).
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// PageData is the paginated variant of an envelope's data field.
type PageData struct {
	Data          json.RawMessage `json:"data"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int             `json:"totalElements"`
	CurrentPage   int             `json:"currentPage"`
	PageSize      int             `json:"pageSize"`
}

// ProductPayload is a product as the backend serializes it. Pointer fields
// distinguish "absent" from zero so normalization can apply defaults.
type ProductPayload struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      string           `json:"category"`
	ImageURL      string           `json:"imageUrl"`
	Brand         string           `json:"brand"`
	StockQuantity int              `json:"stockQuantity"`
	Available     *bool            `json:"available"`
}

type UserPayload struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type AuthData struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

type OrderItemPayload struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPayload struct {
	ID     int64              `json:"id"`
	Status string             `json:"status"`
	Items  []OrderItemPayload `json:"items"`
}

type CreateOrderRequest struct {
	Status string             `json:"status"`
	Items  []OrderItemPayload `json:"items"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"imageUrl"`
	Brand         string          `json:"brand"`
	StockQuantity int             `json:"stockQuantity" binding:"min=0"`
	Available     *bool           `json:"available"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      *string          `json:"category"`
	ImageURL      *string          `json:"imageUrl"`
	Brand         *string          `json:"brand"`
	StockQuantity *int             `json:"stockQuantity"`
	Available     *bool            `json:"available"`
}

// --- Local surface ---

type CatalogQuery struct {
	Category string  `form:"category"`
	MinPrice float64 `form:"min_price,default=0"`
	MaxPrice float64 `form:"max_price,default=1000"`
	Sort     string  `form:"sort,default=featured"`
	Search   string  `form:"q"`
	Page     int     `form:"page,default=1" binding:"min=1"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          interface{} `json:"user,omitempty"`
	ShowAuthModal bool        `json:"show_auth_modal"`
}
