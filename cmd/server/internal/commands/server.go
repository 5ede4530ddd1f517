package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/wolfeidau/stockroom/internal/auth"
	"github.com/wolfeidau/stockroom/internal/logger"
	"github.com/wolfeidau/stockroom/internal/server"
	"github.com/wolfeidau/stockroom/internal/store"
	memorystore "github.com/wolfeidau/stockroom/internal/store/memory"
	postgresstore "github.com/wolfeidau/stockroom/internal/store/postgres"
	"github.com/wolfeidau/stockroom/internal/telemetry"
)

type ServerCmd struct {
	// Server configuration
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:8080" env:"STOCKROOM_LISTEN"`
	Cert   string `help:"path to TLS cert file" default:"" env:"STOCKROOM_TLS_CERT"`
	Key    string `help:"path to TLS key file" default:"" env:"STOCKROOM_TLS_KEY"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"*" env:"STOCKROOM_CORS_ORIGINS"`

	// Authentication configuration
	TokenSigningSecret string        `help:"secret key for HMAC signing of access tokens" env:"STOCKROOM_TOKEN_SECRET"`
	TokenTTL           time.Duration `help:"access token TTL" default:"24h" env:"STOCKROOM_TOKEN_TTL"`
	BcryptCost         int           `help:"bcrypt cost for password hashing" default:"10" env:"STOCKROOM_BCRYPT_COST"`

	// Operational modes
	Tracing bool `help:"enable tracing" default:"false" env:"STOCKROOM_TRACING"`

	// Store configuration
	StoreType     string             `help:"store type (memory or postgres)" default:"memory" env:"STOCKROOM_STORE_TYPE" enum:"memory,postgres"`
	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`
}

type PostgresStoreFlags struct {
	// Connection Configuration
	ConnString string `help:"PostgreSQL connection string" env:"POSTGRES_CONNECTION_STRING"`

	// Connection Pool Configuration
	MaxConns        int32 `help:"maximum number of connections in pool" default:"20"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"5"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`

	// Migration Configuration
	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"STOCKROOM_POSTGRES_AUTO_MIGRATE"`
}

func (c *ServerCmd) Validate() error {
	if c.TokenSigningSecret == "" {
		return errors.New("token signing secret is required (--token-signing-secret or STOCKROOM_TOKEN_SECRET)")
	}
	if len(c.TokenSigningSecret) < 32 {
		return errors.New("token signing secret must be at least 32 bytes (256 bits) for HMAC-SHA256")
	}
	if c.StoreType == "postgres" && c.PostgresStore.ConnString == "" {
		return errors.New("PostgreSQL connection string is required (--postgres-conn-string or POSTGRES_CONNECTION_STRING)")
	}
	return nil
}

func (c *ServerCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting server")

	// Setup telemetry if enabled
	if c.Tracing {
		log.Info().Msg("Tracing is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, "stockroom-server", globals.Version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	tokens, err := auth.NewTokens([]byte(c.TokenSigningSecret), c.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure tokens: %w", err)
	}

	// Create stores based on store type
	var (
		identityStore store.IdentityStore
		productStore  store.ProductStore
	)

	switch c.StoreType {
	case "postgres":
		// Create shared connection pool for all PostgreSQL stores
		poolCfg := &postgresstore.PoolConfig{
			ConnString:      c.PostgresStore.ConnString,
			MaxConns:        c.PostgresStore.MaxConns,
			MinConns:        c.PostgresStore.MinConns,
			MaxConnLifetime: c.PostgresStore.MaxConnLifetime,
			MaxConnIdleTime: c.PostgresStore.MaxConnIdleTime,
		}
		pool, err := postgresstore.NewPool(ctx, poolCfg)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		// Run migrations if enabled
		if c.PostgresStore.AutoMigrate {
			if err := postgresstore.RunMigrations(ctx, pool); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Info().Msg("Database migrations completed")
		}

		identityStore = postgresstore.NewIdentityStore(pool)
		productStore = postgresstore.NewProductStore(pool)

		log.Info().Msg("Using PostgreSQL stores with shared connection pool")

	default:
		identityStore = memorystore.NewIdentityStore()
		productStore = memorystore.NewProductStore()
		log.Info().Msg("Using in-memory stores")
	}

	srv := server.NewServer(identityStore, productStore, tokens, c.BcryptCost)

	handler := withCORS(c.CORSOrigins, srv.Handler(log))
	if c.Tracing {
		handler = telemetry.GetMetrics().Middleware()(handler)
	}

	httpServer := configureHTTPServer(c.Listen, handler)

	if c.Cert != "" || c.Key != "" {
		if _, err := os.Stat(c.Cert); err != nil {
			return fmt.Errorf("TLS certificate not found at %s: %w", c.Cert, err)
		}
		if _, err := os.Stat(c.Key); err != nil {
			return fmt.Errorf("TLS key not found at %s: %w", c.Key, err)
		}

		log.Info().Str("addr", c.Listen).Msg("Starting HTTPS server")
		return httpServer.ListenAndServeTLS(c.Cert, c.Key)
	}

	log.Info().Str("addr", c.Listen).Msg("Starting HTTP server")
	return httpServer.ListenAndServe()
}

// withCORS adds CORS support for browser clients of the API.
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return middleware.Handler(h)
}
