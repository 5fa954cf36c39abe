package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kidshop/kidshop-golang/internal/models"
)

//
// --- Product Handlers (Public) ---
//

const productColumns = `
	p.id, p.sku, p.name, p.ean, p.description, p.price, p.suggested_price, p.vat,
	p.stock_quantity, p.package_length, p.package_width, p.package_height,
	p.gross_weight, p.image_urls, p.category_path, p.brand_id, p.producer_id,
	b.name AS brand_name, pr.name AS producer_name`

// scanProduct scans one joined product row.
func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.EAN, &p.Description, &p.Price, &p.SuggestedPrice,
		&p.VAT, &p.StockQuantity, &p.PackageLength, &p.PackageWidth, &p.PackageHeight,
		&p.GrossWeight, &p.ImageURLs, &p.CategoryPath, &p.BrandID, &p.ProducerID,
		&p.BrandName, &p.ProducerName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProducts is the handler for GET /v1/products
// Supports ?category= prefix filtering and ?page=&limit= pagination.
func (h *Handlers) GetProducts(c *gin.Context) {
	// 1. --- Read Query Parameters ---
	category := c.Query("category")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if err != nil || limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	// 2. --- Count Matching Products ---
	countQuery := "SELECT COUNT(*) FROM products p"
	countArgs := []any{}
	if category != "" {
		countQuery += " WHERE p.category_path ILIKE $1"
		countArgs = append(countArgs, category+"%")
	}

	var totalProducts int
	if err := h.DB.QueryRow(countQuery, countArgs...).Scan(&totalProducts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}
	totalPages := (totalProducts + limit - 1) / limit

	// 3. --- Fetch the Page ---
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN brands b ON p.brand_id = b.id
		LEFT JOIN producers pr ON p.producer_id = pr.id`
	args := []any{}
	if category != "" {
		query += " WHERE p.category_path ILIKE $1"
		args = append(args, category+"%")
	}
	query += " ORDER BY p.id ASC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating products"})
		return
	}

	// 4. --- Send Response ---
	c.JSON(http.StatusOK, gin.H{
		"pagination": gin.H{
			"totalProducts": totalProducts,
			"totalPages":    totalPages,
			"currentPage":   page,
		},
		"products": products,
	})
}

// GetProductBySKU is the handler for GET /v1/products/:sku
func (h *Handlers) GetProductBySKU(c *gin.Context) {
	sku := c.Param("sku")

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN brands b ON p.brand_id = b.id
		LEFT JOIN producers pr ON p.producer_id = pr.id
		WHERE p.sku = $1`

	p, err := scanProduct(h.DB.QueryRow(query, sku))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, p)
}
