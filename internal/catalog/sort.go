package catalog

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nguyentranbao-ct/product-store/internal/models"
)

// ResolveSort maps a sort keyword to a single sort key.
// Unknown keywords return nil, leaving the store's natural order.
func ResolveSort(s models.SortBy) bson.D {
	switch s {
	case models.SortPriceAsc:
		return bson.D{{Key: models.FieldPrice, Value: 1}}
	case models.SortPriceDesc:
		return bson.D{{Key: models.FieldPrice, Value: -1}}
	case models.SortDateAdded:
		return bson.D{{Key: models.FieldCreatedAt, Value: -1}}
	default:
		return nil
	}
}
