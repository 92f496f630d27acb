package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nguyentranbao-ct/product-store/internal/models"
)

func TestResolveSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, ResolveSort(models.SortPriceAsc))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, ResolveSort(models.SortPriceDesc))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, ResolveSort(models.SortDateAdded))
	assert.Nil(t, ResolveSort(models.SortNone))
	assert.Nil(t, ResolveSort("name"))
	assert.Nil(t, ResolveSort("PRICEASC"))
}
