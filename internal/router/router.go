package router

import (
	"net/http"

	"gokhale/internal/auth"
	"gokhale/internal/dashboard"
	"gokhale/internal/kitchen"
	"gokhale/internal/metrics"
	"gokhale/internal/middleware"
	"gokhale/internal/orders"

	"github.com/gin-gonic/gin"
)

// Services are built in main and handed over here for routing only.
type Services struct {
	Auth      *auth.Service
	Tokens    *auth.TokenIssuer
	Orders    *orders.Service
	Kitchen   *kitchen.Service
	Dashboard *dashboard.Service
	Metrics   *metrics.Registry
}

func NewRouter(s Services) *gin.Engine {
	r := gin.Default()
	Register(r, s)
	return r
}

// Register mounts every route on r. Split out so main can add CORS first.
func Register(r *gin.Engine, s Services) {
	authHandler := auth.NewHandler(s.Auth, s.Tokens)
	orderHandler := orders.NewHandler(s.Orders)
	kitchenHandler := kitchen.NewHandler(s.Kitchen)
	dashboardHandler := dashboard.NewHandler(s.Dashboard)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(s.Tokens))
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/change-password", authHandler.ChangePassword)
		}
	}

	// ───────────────────────── CUSTOMER ORDERS ─────────────────────────
	customer := r.Group("/orders")
	customer.Use(middleware.AuthMiddleware(s.Tokens))
	{
		customer.POST("", orderHandler.PlaceOrder)
		customer.GET("", orderHandler.ListMyOrders)
		customer.PATCH("/:id/cancel", orderHandler.Cancel)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(s.Tokens),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		// Orders
		admin.GET("/orders", orderHandler.ListForAdmin)
		admin.PATCH("/orders/:id", orderHandler.UpdateStatus)

		// Kitchen
		admin.GET("/kitchen-prep", kitchenHandler.PrepList)
		admin.POST("/kitchen-prep/export", kitchenHandler.Export)

		// Dashboard
		admin.GET("/dashboard/summary", dashboardHandler.Summary)
		admin.GET("/dashboard/revenue", dashboardHandler.Revenue)
		admin.GET("/dashboard/top-products", dashboardHandler.TopProducts)
	}
}
