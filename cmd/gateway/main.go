package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hotel-front/internal/api/http"
	"github.com/spec-kit/hotel-front/internal/api/http/handlers"
	"github.com/spec-kit/hotel-front/internal/authflow"
	"github.com/spec-kit/hotel-front/internal/config"
	"github.com/spec-kit/hotel-front/internal/credstore"
	"github.com/spec-kit/hotel-front/internal/events"
	"github.com/spec-kit/hotel-front/internal/identity"
	"github.com/spec-kit/hotel-front/internal/observability"
	"github.com/spec-kit/hotel-front/internal/session"
	"github.com/spec-kit/hotel-front/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store, err := newCredentialStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open credential store", zap.Error(err))
	}
	defer store.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	observability.RegisterAuditSinks(dispatcher, logger, metrics)

	registry := session.NewRegistry(store, logger)
	cookies := session.NewCookieManager(cfg.Auth.SessionSecret, cfg.Auth.CredentialTTL())

	client, err := newBookingClient(cfg, registry, dispatcher, metrics, logger)
	if err != nil {
		logger.Fatal("failed to build booking api client", zap.Error(err))
	}

	flows := authflow.New(client, registry, dispatcher, logger)

	janitorStop := make(chan struct{})
	go sessionJanitor(registry, store, cfg.Auth.CredentialTTL(), logger, janitorStop)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, cookies, registry, cfg.Auth.SecureCookies, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(store),
		StaffAuth:    handlers.NewAuthHandler(flows, cookies, cfg.Auth.SecureCookies, identity.Staff),
		CustomerAuth: handlers.NewAuthHandler(flows, cookies, cfg.Auth.SecureCookies, identity.Customer),
		Rooms:        handlers.NewRoomsHandler(client),
		Bookings:     handlers.NewBookingsHandler(client),
		Admin:        handlers.NewAdminHandler(client),
		Metrics:      metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	close(janitorStop)
	_ = app.Shutdown()
}

// sessionJanitor evicts idle in-memory sessions and purges expired
// credential rows. Evicted sessions rehydrate from the store on their next
// visit, so the sweep only bounds memory.
func sessionJanitor(registry *session.Registry, store credstore.Store, ttl time.Duration, logger *zap.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if evicted := registry.Sweep(ttl); evicted > 0 {
				logger.Debug("evicted idle sessions", zap.Int("count", evicted))
			}
			purger, ok := store.(interface {
				PurgeExpired(context.Context) (int64, error)
			})
			if !ok {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			purged, err := purger.PurgeExpired(ctx)
			cancel()
			if err != nil {
				logger.Warn("credential purge failed", zap.Error(err))
			} else if purged > 0 {
				logger.Debug("purged expired credentials", zap.Int64("count", purged))
			}
		}
	}
}

func newCredentialStore(cfg *config.Config, logger *zap.Logger) (credstore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		return credstore.NewRedisStore(cfg.Redis, cfg.Auth.CredentialTTL(), logger), nil
	default:
		return credstore.NewSQLiteStore(cfg.Store.SQLitePath, cfg.Auth.CredentialTTL(), logger)
	}
}

func newBookingClient(cfg *config.Config, registry *session.Registry, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) (*upstream.Client, error) {
	parsed, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse booking api url: %w", err)
	}
	basePath := strings.TrimSuffix(parsed.Path, "/")
	authorizer := upstream.NewAuthorizer(nil, registry, dispatcher, metrics, logger, basePath)
	return upstream.NewClient(cfg.Upstream.BaseURL, authorizer, cfg.Upstream.Timeout(), logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
