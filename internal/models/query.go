package models

import "math"

type SortBy string

const (
	SortNone      SortBy = ""
	SortPriceAsc  SortBy = "priceAsc"
	SortPriceDesc SortBy = "priceDesc"
	SortDateAdded SortBy = "dateAdded"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// QueryRequest is the typed form of the /api/products query string.
// Every field already carries its default when the caller omitted it.
type QueryRequest struct {
	Search     string
	Brands     []string
	Categories []string
	PriceMin   float64
	PriceMax   float64
	SortBy     SortBy
	Page       int
	Limit      int
}

// NewQueryRequest returns a request matching everything, first page.
func NewQueryRequest() QueryRequest {
	return QueryRequest{
		PriceMin: 0,
		PriceMax: math.Inf(1),
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}
}

// PageEnvelope is one page of products plus pagination metadata.
type PageEnvelope struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Pages    int64     `json:"pages"`
}

// Facet is a field whose distinct values feed filter controls.
type Facet string

const (
	FacetBrand    Facet = FieldBrand
	FacetCategory Facet = FieldCategory
)

func (f Facet) Valid() bool {
	return f == FacetBrand || f == FacetCategory
}

// FilterMode selects how brand and category parameters are interpreted.
type FilterMode string

const (
	// FilterModeList treats the parameter as a comma-separated set of exact values.
	FilterModeList FilterMode = "list"
	// FilterModePattern treats the parameter as one case-insensitive substring.
	FilterModePattern FilterMode = "pattern"
)
