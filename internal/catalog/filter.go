package catalog

import (
	"math"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nguyentranbao-ct/product-store/internal/models"
)

// BuildFilter converts a request into a product predicate.
// User input is always escaped before it becomes a pattern.
func BuildFilter(req models.QueryRequest, mode models.FilterMode) bson.M {
	filter := bson.M{}

	if term := strings.TrimSpace(req.Search); term != "" {
		filter[models.FieldName] = containsFold(term)
	}

	setConstraint(filter, models.FieldBrand, req.Brands, mode)
	setConstraint(filter, models.FieldCategory, req.Categories, mode)

	price := bson.M{"$gte": req.PriceMin}
	if !math.IsInf(req.PriceMax, 1) && !math.IsNaN(req.PriceMax) {
		price["$lte"] = req.PriceMax
	}
	filter[models.FieldPrice] = price

	return filter
}

func setConstraint(filter bson.M, field string, values []string, mode models.FilterMode) {
	if len(values) == 0 {
		return
	}
	if mode == models.FilterModePattern {
		filter[field] = containsFold(values[0])
		return
	}
	filter[field] = bson.M{"$in": values}
}

func containsFold(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
