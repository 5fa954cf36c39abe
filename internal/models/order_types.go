package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. A new order always starts as pending.
const (
	OrderStatusPending = "pending"
)

// Order is the model for the 'orders' table.
// An order is immutable once created: TotalAmount is computed server-side from
// the locked cart snapshot, never trusted from the client.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	CustomerID      int64           `json:"customerId" db:"customer_id"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	ShippingAddress string          `json:"shippingAddress" db:"shipping_address"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// OrderItem is the model for the 'order_items' table.
// PriceAtPurchase is the unit price snapshot taken at checkout; later catalog
// price changes never touch it.
type OrderItem struct {
	ID              int64           `json:"id" db:"id"`
	OrderID         int64           `json:"orderId" db:"order_id"`
	ProductID       int64           `json:"productId" db:"product_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase" db:"price_at_purchase"`
}
