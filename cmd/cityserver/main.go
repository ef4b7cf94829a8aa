// Command cityserver is the HTTP presentation layer over the core
// indexes: a lexical /search, a /city lookup, and a /proximity k-nearest
// query, the same three routes the original Flask prototype exposed.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/globalindex/citycore"
	"github.com/globalindex/citycore/config"
	"github.com/globalindex/citycore/internal/logging"
	"github.com/globalindex/citycore/loader"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("cityserver: load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		slog.Error("cityserver: configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	grid, err := citycore.NewGeoGrid(citycore.WithDivision(cfg.Index.GridDivision))
	if err != nil {
		logger.Error("cityserver: build grid", "error", err)
		os.Exit(1)
	}
	idx := citycore.NewTieredInvertedIndex()

	logger.Info("cityserver: loading dataset", "path", cfg.Index.DataPath)
	places, err := loader.LoadFile(cfg.Index.DataPath)
	if err != nil {
		logger.Error("cityserver: load dataset", "error", err)
		os.Exit(1)
	}
	loader.WarmUp(grid, idx, places)

	byID := make(map[int64]citycore.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	srv := newServer(cfg, logger, grid, idx, byID)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      srv.routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("cityserver: starting", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("cityserver: listen", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("cityserver: shutdown", "error", err)
	}
}
