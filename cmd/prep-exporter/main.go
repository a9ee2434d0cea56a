package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gokhale/internal/bootstrap"
	"gokhale/internal/kitchen"
	"gokhale/internal/metrics"
	"gokhale/internal/orders"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := bootstrap.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Println("🧾 Prep sheet exporter starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ database init failed: %v", err)
	}
	defer stores.Close()

	exportStorage := bootstrap.ExportStorage(ctx, cfg)
	if exportStorage == nil {
		log.Fatal("❌ R2 must be configured for the exporter")
	}

	m := metrics.NewRegistry()
	service := kitchen.NewService(stores.Orders, exportStorage, m)

	go serveMetrics(cfg.ExportMetricsPort, m)

	log.Printf("✅ Exporting kitchen prep sheet every %s. Press Ctrl+C to stop.", cfg.ExportInterval)

	ticker := time.NewTicker(cfg.ExportInterval)
	defer ticker.Stop()

	for {
		exportOnce(ctx, service)

		select {
		case <-ctx.Done():
			log.Println("👋 exporter stopped")
			return
		case <-ticker.C:
		}
	}
}

func exportOnce(ctx context.Context, service *kitchen.Service) {
	result, err := service.Export(ctx, orders.DefaultKitchenStatuses, "json")
	if err != nil {
		log.Printf("⚠️  export error: %v", err)
		return
	}
	log.Printf("[KITCHEN] exported %d products to %s", result.Items, result.URL)
}

// serveMetrics exposes the export counters for scraping.
func serveMetrics(port string, m *metrics.Registry) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(m.Handler()))

	log.Printf("📈 exporter metrics at http://localhost:%s/metrics", port)
	if err := r.Run(":" + port); err != nil {
		log.Printf("⚠️  metrics server stopped: %v", err)
	}
}
