package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flicky/go-storefront/internal/model"
)

// AllCategories is the sentinel that disables category filtering.
const AllCategories = "All Categories"

const ProductsPerPage = 12

// Categories the storefront offers in its filter sidebar.
var Categories = []string{
	AllCategories,
	"Home, Kitchen & Garden",
	"Electronics & Computers",
	"Beauty, Health & Personal Care",
	"Women's Fashion",
	"Toys, Kids & Baby",
	"Automotive & Industrial",
	"Sports & Outdoors",
	"Men's Fashion",
	"Tools & Home Improvement",
	"Food & Grocery",
}

type PriceRange struct {
	Label string          `json:"label"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

var PriceRanges = []PriceRange{
	{Label: "Under $50", Min: decimal.Zero, Max: decimal.NewFromInt(50)},
	{Label: "$50-100", Min: decimal.NewFromInt(50), Max: decimal.NewFromInt(100)},
	{Label: "$100-200", Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(200)},
	{Label: "$200-500", Min: decimal.NewFromInt(200), Max: decimal.NewFromInt(500)},
	{Label: "Over $500", Min: decimal.NewFromInt(500), Max: decimal.NewFromInt(10000)},
}

const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
	SortNewest    = "newest"
	SortRating    = "rating"
	SortDiscount  = "discount"
)

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var SortOptions = []SortOption{
	{Value: SortFeatured, Label: "Featured"},
	{Value: SortPriceLow, Label: "Price: Low to High"},
	{Value: SortPriceHigh, Label: "Price: High to Low"},
	{Value: SortName, Label: "Name: A-Z"},
	{Value: SortNewest, Label: "Newest"},
	{Value: SortRating, Label: "Highest Rated"},
	{Value: SortDiscount, Label: "Best Discount"},
}

// Query is the catalog's UI state: filter, sort, and page selections. It is
// a value type; the With* mutators return an adjusted copy and reset the
// page to 1 so a narrowed result set is never viewed through a stale page
// number.
type Query struct {
	Category string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	SortBy   string
	Search   string
	Page     int
	PageSize int
}

func NewQuery() Query {
	return Query{
		Category: AllCategories,
		MinPrice: decimal.Zero,
		MaxPrice: decimal.NewFromInt(1000),
		SortBy:   SortFeatured,
		Page:     1,
		PageSize: ProductsPerPage,
	}
}

func (q Query) WithCategory(category string) Query {
	q.Category = category
	q.Page = 1
	return q
}

func (q Query) WithPriceRange(min, max decimal.Decimal) Query {
	q.MinPrice = min
	q.MaxPrice = max
	q.Page = 1
	return q
}

func (q Query) WithSort(sortBy string) Query {
	q.SortBy = sortBy
	q.Page = 1
	return q
}

func (q Query) WithSearch(search string) Query {
	q.Search = search
	q.Page = 1
	return q
}

func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Page is the presentation-ready slice of a product list plus pagination
// metadata. Start and End are 1-based display indices; both are 0 for an
// empty page.
type Page struct {
	Items       []model.Product `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	Start       int             `json:"start"`
	End         int             `json:"end"`
}

// Apply runs the filter → sort → paginate pipeline over products. It is
// pure: the input slice is never mutated, and the same inputs always yield
// the same page.
func Apply(products []model.Product, q Query) Page {
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, q.Category) {
			continue
		}
		if p.Price.Cmp(q.MinPrice) < 0 || p.Price.Cmp(q.MaxPrice) > 0 {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, q.SortBy)

	size := q.PageSize
	if size <= 0 {
		size = ProductsPerPage
	}
	total := len(filtered)
	totalPages := (total + size - 1) / size

	start := (q.Page - 1) * size
	if start < 0 || start >= total {
		return Page{Items: []model.Product{}, TotalItems: total, TotalPages: totalPages, CurrentPage: q.Page}
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Items:       filtered[start:end],
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		Start:       start + 1,
		End:         end,
	}
}

func matchCategory(p model.Product, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || category == AllCategories {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(p.Category), category)
}

// sortProducts orders in place with a stable sort so ties keep their input
// order.
func sortProducts(products []model.Product, sortBy string) {
	var less func(a, b model.Product) bool
	switch sortBy {
	case SortPriceLow:
		less = func(a, b model.Product) bool { return a.Price.Cmp(b.Price) < 0 }
	case SortPriceHigh:
		less = func(a, b model.Product) bool { return a.Price.Cmp(b.Price) > 0 }
	case SortName:
		less = func(a, b model.Product) bool { return a.Name < b.Name }
	case SortNewest:
		// Larger ids are newer; there is no created-at on the wire.
		less = func(a, b model.Product) bool { return a.ID > b.ID }
	case SortRating, SortFeatured:
		less = func(a, b model.Product) bool { return a.Rating > b.Rating }
	case SortDiscount:
		less = func(a, b model.Product) bool { return a.Discount > b.Discount }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
