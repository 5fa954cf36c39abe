package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kidshop/kidshop-golang/internal/models"
	"github.com/shopspring/decimal"
)

//
// --- Order Handlers (Authenticated) ---
//

// lockedCartItem is a helper struct for the cart snapshot taken at checkout.
// Price is the unit price from the locked read; it becomes price_at_purchase.
type lockedCartItem struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

// CreateOrderInput defines the JSON for checkout.
type CreateOrderInput struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// CreateOrder is the handler for POST /v1/orders
//
// The whole conversion runs in one transaction with a fixed statement order:
// lock cart rows, compute the total from that read, insert the order, insert
// the order items from the same snapshot, clear the cart, commit. Any failure
// rolls everything back — no partial order is ever observable. The customer-
// scoped FOR UPDATE serializes concurrent checkouts by the same customer: the
// loser of the race sees an already-emptied cart and fails cleanly.
func (h *Handlers) CreateOrder(c *gin.Context) {
	// 1. --- Get Customer ID ---
	customerID_raw, _ := c.Get("customerID")
	customerID := customerID_raw.(int64)

	// 2. --- Validate Input (before any transaction) ---
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.ShippingAddress) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required"})
		return
	}

	// 3. --- Begin Transaction ---
	tx, err := h.DB.BeginTx(c, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback() // Safety net

	// 4. --- Lock the Cart & Take the Snapshot ---
	// This single read is the only source for BOTH the total and the
	// price_at_purchase values; there is no second price read anywhere.
	query := `
		SELECT ci.product_id, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.customer_id = $1
		FOR UPDATE`

	rows, err := tx.Query(query, customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cart"})
		return
	}

	var cartItems []lockedCartItem
	totalAmount := decimal.Zero

	for rows.Next() {
		var item lockedCartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan cart item"})
			return
		}
		totalAmount = totalAmount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		cartItems = append(cartItems, item)
	}
	// Close before the next statement: the tx owns a single connection.
	rows.Close()
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cart"})
		return
	}

	// 5. --- Business Rule: the Cart Must Not Be Empty ---
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot create order from an empty cart"})
		return
	}

	// 6. --- Insert the Order ---
	var orderID int64
	orderQuery := `
		INSERT INTO orders (customer_id, total_amount, shipping_address, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err = tx.QueryRow(orderQuery, customerID, totalAmount, input.ShippingAddress, models.OrderStatusPending).Scan(&orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	// 7. --- Insert the Order Items from the Snapshot ---
	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4)`
	for _, item := range cartItems {
		if _, err := tx.Exec(itemQuery, orderID, item.ProductID, item.Quantity, item.Price); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order item"})
			return
		}
	}

	// 8. --- Clear the Cart ---
	if _, err := tx.Exec("DELETE FROM cart_items WHERE customer_id = $1", customerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	// 9. --- Commit ---
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	// 10. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order created successfully",
		"orderId":     orderID,
		"totalAmount": totalAmount,
	})
}

// OrderItemDetail extends the base OrderItem to include product info.
type OrderItemDetail struct {
	models.OrderItem
	ProductName string `json:"productName"`
	ProductSKU  string `json:"productSku"`
}

// GetMyOrders is the handler for GET /v1/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	customerID_raw, _ := c.Get("customerID")
	customerID := customerID_raw.(int64)

	query := `
		SELECT id, customer_id, total_amount, shipping_address, status, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC`

	rows, err := h.DB.Query(query, customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.ShippingAddress, &o.Status, &o.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order data"})
			return
		}
		orders = append(orders, o)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /v1/orders/:id
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	// 1. --- Get IDs ---
	customerID_raw, _ := c.Get("customerID")
	customerID := customerID_raw.(int64)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	// 2. --- Fetch Order & Verify Ownership ---
	var o models.Order
	queryOrder := `
		SELECT id, customer_id, total_amount, shipping_address, status, created_at
		FROM orders
		WHERE id = $1 AND customer_id = $2`
	err = h.DB.QueryRow(queryOrder, orderID, customerID).Scan(
		&o.ID, &o.CustomerID, &o.TotalAmount, &o.ShippingAddress, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	// 3. --- Fetch Order Items with Product Details ---
	queryItems := `
		SELECT
			oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_purchase,
			p.name, p.sku
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1`

	rows, err := h.DB.Query(queryItems, o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}
	defer rows.Close()

	items := []OrderItemDetail{}
	for rows.Next() {
		var item OrderItemDetail
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchase,
			&item.ProductName, &item.ProductSKU,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order item"})
			return
		}
		items = append(items, item)
	}

	// 4. --- Return Combined Response ---
	c.JSON(http.StatusOK, gin.H{
		"order": o,
		"items": items,
	})
}
