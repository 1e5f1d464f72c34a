package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCondition describes the physical state of a second-hand product.
type ProductCondition string

const (
	ConditionNew         ProductCondition = "new"
	ConditionLikeNew     ProductCondition = "like_new"
	ConditionGood        ProductCondition = "good"
	ConditionFair        ProductCondition = "fair"
	ConditionRefurbished ProductCondition = "refurbished"
)

func (c ProductCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionRefurbished:
		return true
	}
	return false
}

// ProductStatus is the sales state of a product.
type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductSold      ProductStatus = "sold"
	ProductReserved  ProductStatus = "reserved"
	ProductPending   ProductStatus = "pending"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductAvailable, ProductSold, ProductReserved, ProductPending:
		return true
	}
	return false
}

// Product is a physical catalog item: furniture, electrical appliances,
// antiques. Prices are decimals and serialize as JSON strings.
type Product struct {
	Timestamped
	Title            string `json:"title" db:"title" gorm:"type:text;not null"`
	Slug             string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	ShortDescription string `json:"short_description" db:"short_description" gorm:"type:text;not null"`
	FullDescription  string `json:"full_description" db:"full_description" gorm:"type:text"`

	Categories []ProductCategory `json:"categories,omitempty" gorm:"many2many:product_category_assignments"`

	Price         decimal.Decimal  `json:"price" db:"price" gorm:"type:decimal(10,2);not null;index"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty" db:"original_price" gorm:"type:decimal(10,2)"`
	IsOnSale      bool             `json:"is_on_sale" db:"is_on_sale" gorm:"not null;default:false"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty" db:"sale_price" gorm:"type:decimal(10,2)"`

	SKU               *string          `json:"sku,omitempty" db:"sku" gorm:"type:text;uniqueIndex"`
	StockQuantity     int              `json:"stock_quantity" db:"stock_quantity" gorm:"not null;default:1"`
	LowStockThreshold int              `json:"low_stock_threshold" db:"low_stock_threshold" gorm:"not null;default:5"`
	Condition         ProductCondition `json:"condition" db:"condition" gorm:"type:text;not null;default:good"`
	Status            ProductStatus    `json:"status" db:"status" gorm:"type:text;not null;default:available;index"`

	Brand      string           `json:"brand,omitempty" db:"brand" gorm:"type:text"`
	Model      string           `json:"model,omitempty" db:"model" gorm:"type:text"`
	Dimensions string           `json:"dimensions,omitempty" db:"dimensions" gorm:"type:text"`
	Weight     *decimal.Decimal `json:"weight,omitempty" db:"weight" gorm:"type:decimal(8,2)"`
	Material   string           `json:"material,omitempty" db:"material" gorm:"type:text"`
	Color      string           `json:"color,omitempty" db:"color" gorm:"type:text"`

	IsFeatured   bool `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	IsBestseller bool `json:"is_bestseller" db:"is_bestseller" gorm:"not null;default:false"`
	ViewsCount   int  `json:"views_count" db:"views_count" gorm:"not null;default:0"`

	RequiresAssembly         bool `json:"requires_assembly" db:"requires_assembly" gorm:"not null;default:false"`
	AssemblyServiceAvailable bool `json:"assembly_service_available" db:"assembly_service_available" gorm:"not null;default:true"`
	DeliveryAvailable        bool `json:"delivery_available" db:"delivery_available" gorm:"not null;default:true"`

	MetaTitle       string `json:"meta_title,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription string `json:"meta_description,omitempty" db:"meta_description" gorm:"type:text"`
	MetaKeywords    string `json:"meta_keywords,omitempty" db:"meta_keywords" gorm:"type:text"`

	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`

	Images   []ProductImage   `json:"images,omitempty" gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
	Features []ProductFeature `json:"features,omitempty" gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
	Reviews  []ProductReview  `json:"-" gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
}

// IsActive reports whether the product is sellable right now.
func (p Product) IsActive() bool {
	return p.Status == ProductAvailable && p.StockQuantity > 0
}

// FinalPrice is the effective price, honoring an active sale.
func (p Product) FinalPrice() decimal.Decimal {
	if p.IsOnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// DiscountPercentage is the sale discount relative to the original price,
// rounded to two decimals. Zero when no sale is active.
func (p Product) DiscountPercentage() decimal.Decimal {
	if p.IsOnSale && p.SalePrice != nil && p.OriginalPrice != nil && p.OriginalPrice.IsPositive() {
		return p.OriginalPrice.Sub(*p.SalePrice).
			Div(*p.OriginalPrice).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return decimal.Zero
}

func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}
