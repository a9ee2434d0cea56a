package bootstrap

import (
	"context"
	"log"

	"gokhale/internal/auth"
	"gokhale/internal/db"
	"gokhale/internal/events"
	"gokhale/internal/kitchen"
	"gokhale/internal/orders"
	"gokhale/internal/storage"
)

// Stores are the repositories for the configured driver.
type Stores struct {
	Orders orders.Repository
	Users  auth.UserRepository
	Close  func()
}

func OpenStores(ctx context.Context, cfg Config) (*Stores, error) {
	switch cfg.DBDriver {
	case DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Orders: orders.NewSQLiteRepository(conn),
			Users:  auth.NewSQLiteUserRepository(conn),
			Close:  func() { conn.Close() },
		}, nil
	default:
		pool := db.ConnectPostgres(cfg.DatabaseURL)
		return &Stores{
			Orders: orders.NewPostgresRepository(pool),
			Users:  auth.NewPostgresUserRepository(pool),
			Close:  pool.Close,
		}, nil
	}
}

// Publisher returns Kafka when brokers are configured, the log otherwise.
func Publisher(cfg Config) (events.Publisher, func()) {
	if cfg.KafkaBrokers == "" {
		log.Println("[EVENTS] KAFKA_BROKERS not set, order events go to the log only")
		return events.LogPublisher{}, func() {}
	}

	p := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	log.Printf("[EVENTS] publishing order events to topic=%s", cfg.KafkaTopic)
	return p, func() {
		if err := p.Close(); err != nil {
			log.Printf("[EVENTS] close failed: %v", err)
		}
	}
}

// ExportStorage returns the R2 client, or a nil Storage (export disabled)
// when R2 is not configured.
func ExportStorage(ctx context.Context, cfg Config) kitchen.Storage {
	if !cfg.R2Enabled {
		log.Println("⚠️  R2 not configured, prep sheet export disabled")
		return nil
	}

	client, err := storage.NewR2Client(ctx, cfg.R2)
	if err != nil {
		log.Printf("⚠️  R2 init failed, prep sheet export disabled: %v", err)
		return nil
	}
	return client
}
