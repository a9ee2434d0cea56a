package main

import (
	"context"
	"log"
	"time"

	"gokhale/internal/auth"
	"gokhale/internal/bootstrap"
	"gokhale/internal/dashboard"
	"gokhale/internal/kitchen"
	"gokhale/internal/metrics"
	"gokhale/internal/orders"
	"gokhale/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := bootstrap.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// amounts go out as JSON numbers, like the storefront expects
	decimal.MarshalJSONWithoutQuotes = true

	// ───────────────────────── DB ─────────────────────────
	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ database init failed: %v", err)
	}
	defer stores.Close()

	// ───────────────────────── EVENTS + STORAGE ─────────────────────────
	publisher, closePublisher := bootstrap.Publisher(cfg)
	defer closePublisher()

	exportStorage := bootstrap.ExportStorage(ctx, cfg)

	// ───────────────────────── SERVICES ─────────────────────────
	m := metrics.NewRegistry()

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	authService := auth.NewService(stores.Users)
	orderService := orders.NewService(stores.Orders, publisher, m)
	kitchenService := kitchen.NewService(stores.Orders, exportStorage, m)
	dashboardService := dashboard.NewService(stores.Orders)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("❌ admin seed failed: %v", err)
		}
	}

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Register(r, router.Services{
		Auth:      authService,
		Tokens:    tokens,
		Orders:    orderService,
		Kitchen:   kitchenService,
		Dashboard: dashboardService,
		Metrics:   m,
	})

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 API running at http://localhost:%s (db=%s)", cfg.Port, cfg.DBDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
