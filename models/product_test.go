package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductFinalPrice(t *testing.T) {
	price := decimal.NewFromInt(200)
	sale := decimal.NewFromInt(150)

	product := Product{Price: price}
	assert.True(t, product.FinalPrice().Equal(price))

	// Sale price only applies while the sale flag is set.
	product.SalePrice = &sale
	assert.True(t, product.FinalPrice().Equal(price))

	product.IsOnSale = true
	assert.True(t, product.FinalPrice().Equal(sale))
}

func TestProductDiscountPercentage(t *testing.T) {
	original := decimal.NewFromInt(200)
	sale := decimal.NewFromInt(150)

	product := Product{
		Price:         original,
		OriginalPrice: &original,
		SalePrice:     &sale,
		IsOnSale:      true,
	}
	assert.True(t, product.DiscountPercentage().Equal(decimal.NewFromInt(25)))

	product.IsOnSale = false
	assert.True(t, product.DiscountPercentage().IsZero())
}

func TestProductIsActive(t *testing.T) {
	product := Product{Status: ProductAvailable, StockQuantity: 1}
	assert.True(t, product.IsActive())

	product.StockQuantity = 0
	assert.False(t, product.IsActive())

	product.StockQuantity = 1
	product.Status = ProductSold
	assert.False(t, product.IsActive())
}

func TestProductIsLowStock(t *testing.T) {
	product := Product{StockQuantity: 3, LowStockThreshold: 5}
	assert.True(t, product.IsLowStock())

	product.StockQuantity = 6
	assert.False(t, product.IsLowStock())
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "eichenschrank-mit-spiegel", Slugify("Eichenschrank mit Spiegel"))
}

func TestProductStatusValid(t *testing.T) {
	assert.True(t, ProductAvailable.Valid())
	assert.True(t, ProductReserved.Valid())
	assert.False(t, ProductStatus("broken").Valid())
}

func TestServiceCategoryTypeValid(t *testing.T) {
	assert.True(t, CategoryAutoAnkauf.Valid())
	assert.True(t, CategoryTransport.Valid())
	assert.False(t, ServiceCategoryType("gardening").Valid())
}
