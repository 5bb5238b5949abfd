package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagviz/internal/server"
	"github.com/matzehuels/dagviz/pkg/cache"
	"github.com/matzehuels/dagviz/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		mongoURI  string
		mongoDB   string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dagviz HTTP API",
		Long: `Run the dagviz HTTP API.

The server stores uploaded graphs in MongoDB, computes their layouts on
upload, and serves rendered SVG and HTML. Rendered artifacts are cached in
Redis when --redis is given, otherwise in the local file cache.

Endpoints:
  POST   /graphs           upload a graph with an optional layout config
  GET    /graphs           list stored graphs
  GET    /graphs/{id}      fetch a graph with its computed geometry
  DELETE /graphs/{id}      remove a graph
  GET    /graphs/{id}/svg  rendered SVG drawing
  GET    /graphs/{id}/html interactive HTML page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, mongoURI, mongoDB, redisAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&mongoDB, "db", appName, "MongoDB database name")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the artifact cache (host:port)")

	return cmd
}

// runServe wires the store and caches together and runs the listener until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, mongoURI, mongoDB, redisAddr string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.Connect(connectCtx, mongoURI, mongoDB)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	artifacts, err := c.artifactCache(connectCtx, redisAddr)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(st, artifacts, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// artifactCache builds the rendered-artifact cache: Redis when configured,
// otherwise the local file cache.
func (c *CLI) artifactCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return cache.NewInstrumented(rc, "render"), nil
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewInstrumented(fc, "render"), nil
}
