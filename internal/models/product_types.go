package models

import (
	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
// Rows are owned by the feed importer: the SKU (the feed's 'Indeks' field) is the
// natural key and every attribute column is overwritten wholesale on each import.
// Pointers are used for nullable references so JSON stays clean.
type Product struct {
	ID          int64  `json:"id" db:"id"`
	SKU         string `json:"sku" db:"sku"`
	Name        string `json:"name" db:"name"`
	EAN         string `json:"ean" db:"ean"`
	Description string `json:"description" db:"description"`

	// --- Pricing & Stock ---
	Price          decimal.Decimal `json:"price" db:"price"`
	SuggestedPrice decimal.Decimal `json:"suggestedPrice" db:"suggested_price"`
	VAT            int             `json:"vat" db:"vat"` // integer percent, e.g. 23
	StockQuantity  int             `json:"stock" db:"stock_quantity"`

	// --- Packaging ---
	PackageLength decimal.Decimal `json:"packageLength" db:"package_length"`
	PackageWidth  decimal.Decimal `json:"packageWidth" db:"package_width"`
	PackageHeight decimal.Decimal `json:"packageHeight" db:"package_height"`
	GrossWeight   decimal.Decimal `json:"grossWeight" db:"gross_weight"`

	// --- Media & Content ---
	// ImageURLs is a single space-joined string, mirroring the feed importer's
	// flattening of the image link list. Downstream readers split on whitespace.
	ImageURLs    string `json:"imageUrls" db:"image_urls"`
	CategoryPath string `json:"categoryPath" db:"category_path"`

	// --- References (nullable) ---
	BrandID    *int64 `json:"brandId,omitempty" db:"brand_id"`
	ProducerID *int64 `json:"producerId,omitempty" db:"producer_id"`

	// Joined names for UI convenience (populated by LEFT JOIN, not table columns)
	BrandName    *string `json:"brandName,omitempty" db:"-"`
	ProducerName *string `json:"producerName,omitempty" db:"-"`
}
