package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//
// --- Cart Handlers (Authenticated) ---
//

// CartItemResponse is a helper struct for the GetCart handler.
type CartItemResponse struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	ImageURLs string          `json:"imageUrls"`
}

// GetCart is the handler for GET /v1/cart
// It retrieves the full contents of the customer's cart.
func (h *Handlers) GetCart(c *gin.Context) {
	// 1. --- Get Customer ID ---
	customerID_raw, _ := c.Get("customerID")
	customerID := customerID_raw.(int64)

	// 2. --- Query for Cart Items + Product Details ---
	query := `
		SELECT ci.product_id, p.name, p.sku, p.price, ci.quantity, p.image_urls
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.customer_id = $1`

	rows, err := h.DB.Query(query, customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query cart items"})
		return
	}
	defer rows.Close()

	// 3. --- Scan Rows and Calculate Totals ---
	items := []CartItemResponse{}
	subtotal := decimal.Zero
	totalItems := 0

	for rows.Next() {
		var item CartItemResponse
		if err := rows.Scan(
			&item.ProductID, &item.Name, &item.SKU, &item.Price, &item.Quantity, &item.ImageURLs,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan cart item"})
			return
		}

		item.LineTotal = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(item.LineTotal)
		totalItems += item.Quantity
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating cart items"})
		return
	}

	// 4. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"subtotal":   subtotal,
		"totalItems": totalItems,
	})
}

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

// AddToCart is the handler for POST /v1/cart
// Adding a product already in the cart increments its quantity.
func (h *Handlers) AddToCart(c *gin.Context) {
	customerID_raw, _ := c.Get("customerID")
	customerID := customerID_raw.(int64)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid productId and quantity are required"})
		return
	}

	// Insert or increment in one statement, keyed on (customer_id, product_id).
	query := `
		INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING quantity`

	var quantity int
	if err := h.DB.QueryRow(query, customerID, input.ProductID, input.Quantity).Scan(&quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customerId": customerID,
		"productId":  input.ProductID,
		"quantity":   quantity,
	})
}

// DeleteCartItem is the handler for DELETE /v1/cart/:product_id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	customerID_raw, _ := c.Get("customerID")
	customerID := customerID_raw.(int64)

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	query := "DELETE FROM cart_items WHERE customer_id = $1 AND product_id = $2"
	if _, err := h.DB.Exec(query, customerID, productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.Status(http.StatusNoContent)
}
