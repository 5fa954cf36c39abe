package models

// CartItem defines the struct for the 'cart_items' table.
// The primary key is (customer_id, product_id); adding an existing product
// increments quantity instead of inserting a second row. Cart rows are only
// ever deleted by the owner (remove item) or by a successful checkout.
type CartItem struct {
	CustomerID int64 `json:"customerId" db:"customer_id"`
	ProductID  int64 `json:"productId" db:"product_id"`
	Quantity   int   `json:"quantity" db:"quantity"`
}
