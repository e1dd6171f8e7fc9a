package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/api"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/shop"
	"github.com/goliatone/go-formbuilder/internal/store"
)

// readHeaderTimeout bounds how long a client may take to send request headers.
const readHeaderTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr, backend string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form builder API",
		Long: `Serve the JSON API, shopper previews and the field type catalogue.

Settings come from FORMBUILDER_* environment variables, for example:
  FORMBUILDER_STORE=file FORMBUILDER_DATA_FILE=data/forms.json formbuilder serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			if cmd.Flags().Changed("store") {
				a.cfg.Store = backend
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FORMBUILDER_ADDR)")
	cmd.Flags().StringVar(&backend, "store", "", "store backend: memory, file or mongo (overrides FORMBUILDER_STORE)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	st, err := openStore(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
	}()

	resolver, err := newResolver(a.cfg, a.logger)
	if err != nil {
		return err
	}
	srv, err := api.New(st, resolver,
		api.WithLogger(a.logger),
		api.WithExposeErrors(a.cfg.ExposeErrors),
	)
	if err != nil {
		return err
	}

	httpServer := newHTTPServer(a.cfg, srv.Handler())
	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	a.logger.Info("listening", zap.String("addr", a.cfg.Addr), zap.String("store", a.cfg.Store))

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return store.NewFile(cfg.DataFile)
	case config.StoreMongo:
		return store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StoreMemory, "":
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

func newResolver(cfg config.Config, logger *zap.Logger) (shop.Resolver, error) {
	if cfg.UsesShopify() {
		return shop.NewShopify(cfg.ShopDomain, cfg.ShopifyAccessToken,
			shop.WithAPIVersion(cfg.ShopifyAPIVersion),
			shop.WithLogger(logger),
		)
	}
	return shop.Static{ID: cfg.ShopID, Name: cfg.ShopName, Domain: cfg.ShopDomain}, nil
}

func newHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
