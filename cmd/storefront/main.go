package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johnwards/storefront/internal/api"
	"github.com/johnwards/storefront/internal/api/admin"
	"github.com/johnwards/storefront/internal/api/listings"
	"github.com/johnwards/storefront/internal/commerce"
	"github.com/johnwards/storefront/internal/config"
	"github.com/johnwards/storefront/internal/database"
	"github.com/johnwards/storefront/internal/domain"
	"github.com/johnwards/storefront/internal/listing"
	"github.com/johnwards/storefront/internal/logging"
	"github.com/johnwards/storefront/internal/metrics"
	"github.com/johnwards/storefront/internal/navigation"
	"github.com/johnwards/storefront/internal/store"
)

// Listing keys served by the BFF.
const (
	listingSearch   = "search"
	listingCategory = "category"
	listingOrders   = "account-orders"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	if err != nil {
		slog.Warn("invalid logging configuration", "error", err)
	}
	for _, w := range cfg.Warnings {
		slog.Warn("invalid configuration value", "detail", w)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		shutdownCtx, done := context.WithTimeout(context.Background(), 15*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting storefront server",
		"addr", cfg.Addr,
		"listings", a.registry.Keys(),
		"commerce", cfg.Commerce.BaseURL,
		"apiVersion", cfg.Commerce.APIVersion,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// app is the wired storefront: slot store, commerce client, reconcilers and
// the HTTP handler serving them.
type app struct {
	handler  http.Handler
	registry *listings.Registry
	close    func()
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	s, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	var rec *metrics.Recorder
	clientOpts := []commerce.Option{}
	listingOpts := []listing.Option{
		listing.WithDefaults(domain.Criteria{domain.CriteriaLimit: cfg.DefaultLimit}),
		listing.WithLogger(logger),
	}
	if cfg.Metrics {
		rec = metrics.New()
		clientOpts = append(clientOpts, commerce.WithObserver(rec))
		listingOpts = append(listingOpts, listing.WithObserver(rec))
	}
	if cfg.DiscardStale {
		listingOpts = append(listingOpts, listing.WithStaleResponseDiscard())
	}

	client := commerce.New(commerce.Config{
		BaseURL:      cfg.Commerce.BaseURL,
		AccessKey:    cfg.Commerce.AccessKey,
		ContextToken: cfg.Commerce.ContextToken,
		APIVersion:   cfg.Commerce.APIVersion,
		Timeout:      cfg.Commerce.Timeout,
		RPS:          cfg.Commerce.RPS,
		Burst:        cfg.Commerce.Burst,
	}, clientOpts...)

	reg, err := newRegistry(s.Backend, client, listingOpts)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	mux := http.NewServeMux()

	listings.RegisterRoutes(mux, reg)
	admin.RegisterRoutes(mux, s.Backend)

	public := []string{}
	if rec != nil {
		mux.Handle("GET /metrics", rec.Handler())
		public = append(public, "/metrics")
	}

	// Catch-all: return 404 in the storefront error format.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.AuthToken, public...),
		api.JSONContentType(),
		api.Logging(),
	)

	return &app{handler: handler, registry: reg, close: func() { _ = s.Close() }}, nil
}

// openStore opens the SQLite slot store at path, or an in-memory store when
// path is empty.
func openStore(ctx context.Context, path string) (*store.Store, error) {
	if path == "" {
		slog.Info("keeping listing slots in memory")
		return store.NewInMemory(), nil
	}

	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open slot store: %w", err)
	}
	return store.New(db), nil
}

// newRegistry builds one reconciler per listing key, each with its own
// navigation query, all sharing b.
func newRegistry(b store.Backend, client *commerce.Client, opts []listing.Option) (*listings.Registry, error) {
	products := store.NewSlots[domain.Product](b)
	orders := store.NewSlots[domain.Order](b)

	reg := listings.NewRegistry()
	for _, err := range []error{
		listings.Register(reg, listing.New(listingSearch, client.SearchFunc(), products, navigation.NewMemory(nil), opts...)),
		listings.Register(reg, listing.New(listingCategory, client.CategoryListingFunc(), products, navigation.NewMemory(nil), opts...)),
		listings.Register(reg, listing.New(listingOrders, client.OrdersFunc(), orders, navigation.NewMemory(nil), opts...)),
	} {
		if err != nil {
			return nil, fmt.Errorf("register listings: %w", err)
		}
	}
	return reg, nil
}
