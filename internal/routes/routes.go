package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kidshop/kidshop-golang/internal/handlers"
	"github.com/kidshop/kidshop-golang/internal/middleware"
)

// CORSMiddleware allows the storefront frontend to talk to us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Reply to the browser's preflight request with "204 No Content".
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)

		// --- Public Product Routes ---
		v1.GET("/products", h.GetProducts)
		v1.GET("/products/:sku", h.GetProductBySKU)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/account/profile", h.GetProfile)

			// --- Cart Routes ---
			auth.GET("/cart", h.GetCart)
			auth.POST("/cart", h.AddToCart)
			auth.DELETE("/cart/:product_id", h.DeleteCartItem)

			// --- Order Routes ---
			auth.POST("/orders", h.CreateOrder)
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrderDetails)
		}
	}

	return router
}
