package catalog

import (
	"math"
	"strings"

	"github.com/cstockton/go-conv"

	"github.com/nguyentranbao-ct/product-store/internal/models"
)

// RawQuery holds /api/products parameters exactly as received.
type RawQuery struct {
	Page     string `query:"page"`
	Limit    string `query:"limit"`
	Search   string `query:"search"`
	Brand    string `query:"brand"`
	Category string `query:"category"`
	PriceMin string `query:"priceMin"`
	PriceMax string `query:"priceMax"`
	SortBy   string `query:"sortBy"`
}

type ParseOptions struct {
	Mode         models.FilterMode
	DefaultLimit int
	MaxLimit     int
}

// Parse builds a QueryRequest. Invalid or missing values fall back to
// defaults; it never fails.
func Parse(raw RawQuery, opts ParseOptions) models.QueryRequest {
	req := models.NewQueryRequest()

	defLimit := opts.DefaultLimit
	if defLimit < 1 {
		defLimit = models.DefaultLimit
	}
	w := NewWindow(positiveInt(raw.Page, models.DefaultPage), positiveInt(raw.Limit, defLimit), opts.MaxLimit)
	req.Page, req.Limit = w.Page, w.Limit

	req.Search = strings.TrimSpace(raw.Search)
	req.Brands = splitValues(raw.Brand, opts.Mode)
	req.Categories = splitValues(raw.Category, opts.Mode)

	if v, ok := finiteFloat(raw.PriceMin); ok {
		req.PriceMin = v
	}
	if v, ok := finiteFloat(raw.PriceMax); ok {
		req.PriceMax = v
	}

	switch s := models.SortBy(strings.TrimSpace(raw.SortBy)); s {
	case models.SortPriceAsc, models.SortPriceDesc, models.SortDateAdded:
		req.SortBy = s
	}

	return req
}

// positiveInt accepts only base-10 integer text; "2.9" or "true" fall back to def.
func positiveInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "+-0123456789") != "" {
		return def
	}
	v, err := conv.Int(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func finiteFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := conv.Float64(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// splitValues returns the deduplicated, non-empty values of a parameter.
// Pattern mode keeps the whole parameter as a single term.
func splitValues(s string, mode models.FilterMode) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if mode == models.FilterModePattern {
		return []string{s}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
