package catalog

import (
	"math"

	"github.com/nguyentranbao-ct/product-store/internal/models"
)

// Window is a validated page/limit pair.
type Window struct {
	Page  int
	Limit int
}

// NewWindow clamps non-positive page and limit to their defaults.
// maxLimit caps the limit when positive.
func NewWindow(page, limit, maxLimit int) Window {
	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Window{Page: page, Limit: limit}
}

// Offset is the number of documents to skip. It saturates at math.MaxInt64
// instead of wrapping, so it is never negative.
func (w Window) Offset() int64 {
	pages, limit := int64(w.Page-1), int64(w.Limit)
	if pages <= 0 || limit <= 0 {
		return 0
	}
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// Pages returns ceil(total/limit). A non-positive limit counts as the default.
func Pages(total int64, limit int) int64 {
	if total <= 0 {
		return 0
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}
	l := int64(limit)
	q := total / l
	if total%l != 0 {
		q++
	}
	return q
}
