package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/config"
	pginfra "github.com/oksasatya/devcamper-api/internal/infrastructure/postgres"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

// seed upserts an admin account. SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD and
// SEED_ADMIN_NAME override the defaults.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, AppName: cfg.AppName + "-seed"})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email := envOr("SEED_ADMIN_EMAIL", "admin@devcamper.io")
	password := envOr("SEED_ADMIN_PASSWORD", "password123")
	name := envOr("SEED_ADMIN_NAME", "Admin Account")

	hash, err := helpers.NewBcryptHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		logger.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, role = 'admin'
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		logger.Fatalf("failed to seed admin: %v", err)
	}
	logger.WithFields(logrus.Fields{"id": id, "email": email}).Info("seeded admin user")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
