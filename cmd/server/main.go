package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateup/backend/config"
	httpDelivery "github.com/plateup/backend/internal/delivery/http"
	"github.com/plateup/backend/internal/domain"
	"github.com/plateup/backend/internal/infrastructure/cache"
	"github.com/plateup/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PlateUp icon service v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("Server error: %v", err)
	}
	log.Printf("Server stopped")
}

// run wires the services and serves HTTP until ctx is cancelled. Every
// resource it opens is released before it returns.
func run(ctx context.Context, cfg *config.Config) error {
	table := usecase.DefaultGlyphTable()
	iconResolver := usecase.NewIconResolver(usecase.IconResolverConfig{
		Table:              table,
		EnableDebugLogging: cfg.Icons.DebugLogging,
	})
	log.Printf("Glyph table: %d keywords, default %s", table.Len(), domain.DefaultGlyph)

	var resolver domain.IconResolver = iconResolver
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCacheWithOptions(cache.MemoryCacheOptions{MaxEntries: cfg.Cache.MaxEntries})
		defer memoryCache.Close()
		resolver = usecase.NewCachedIconResolver(iconResolver, memoryCache, cfg.Cache.TTL)
		log.Printf("Cache: memory (TTL %s, max entries %d)", cfg.Cache.TTL, cfg.Cache.MaxEntries)
	} else {
		log.Printf("Cache: disabled")
	}

	mealIcons := usecase.NewMealIconService(resolver, usecase.MealIconServiceConfig{
		DefaultLimit:       cfg.Icons.DefaultLimit,
		EnableDebugLogging: cfg.Icons.DebugLogging,
	})

	log.Printf("Icons: default limit=%d, max limit=%d, debug=%v",
		cfg.Icons.DefaultLimit, cfg.Icons.MaxLimit, cfg.Icons.DebugLogging)
	if cfg.RateLimit.PerIP > 0 {
		log.Printf("Rate limit: %d requests/min per IP", cfg.RateLimit.PerIP)
	} else {
		log.Printf("Rate limit: disabled")
	}

	handler := httpDelivery.NewHandler(httpDelivery.HandlerConfig{
		Resolver: resolver,
		Table:    table,
		Meals:    mealIcons,
		MaxLimit: cfg.Icons.MaxLimit,
	})

	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	return serve(ctx, server, cfg.Server.ShutdownTimeout)
}

// serve runs server until ctx is cancelled, then drains in-flight requests
// for at most timeout.
func serve(ctx context.Context, server *http.Server, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down (timeout %s)", timeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
