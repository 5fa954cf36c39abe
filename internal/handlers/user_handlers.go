package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kidshop/kidshop-golang/internal/auth"
	"github.com/kidshop/kidshop-golang/internal/models"
	"github.com/lib/pq"
)

//
// --- Customer Account Handlers ---
//

// RegisterInput defines the JSON for customer registration.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register is the handler for POST /v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required: " + err.Error()})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process registration"})
		return
	}

	// 3. --- Insert the Customer ---
	var customer models.Customer
	query := `
		INSERT INTO customers (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, created_at`
	err := h.DB.QueryRow(query, input.Email, password.Hash, input.FirstName, input.LastName).
		Scan(&customer.ID, &customer.Email, &customer.CreatedAt)
	if err != nil {
		// A duplicate email is a conflict, not a generic failure.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "A customer with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register customer"})
		return
	}

	// 4. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"id":        customer.ID,
		"email":     customer.Email,
		"createdAt": customer.CreatedAt.Format(time.RFC3339),
	})
}

// LoginInput defines the JSON for customer login.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	// 2. --- Look Up the Customer ---
	var customer models.Customer
	query := "SELECT id, email, password_hash FROM customers WHERE email = $1"
	err := h.DB.QueryRow(query, input.Email).Scan(&customer.ID, &customer.Email, &customer.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up customer"})
		return
	}

	// 3. --- Check the Password ---
	password := models.Password{Hash: customer.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 4. --- Issue a Token ---
	token, err := auth.GenerateToken(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// GetProfile is the handler for GET /v1/account/profile
func (h *Handlers) GetProfile(c *gin.Context) {
	customerID_raw, _ := c.Get("customerID")
	customerID := customerID_raw.(int64)

	var customer models.Customer
	query := "SELECT id, email, first_name, last_name, created_at FROM customers WHERE id = $1"
	err := h.DB.QueryRow(query, customerID).Scan(
		&customer.ID, &customer.Email, &customer.FirstName, &customer.LastName, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}
