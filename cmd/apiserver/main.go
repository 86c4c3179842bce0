// apiserver serves the SMILES pipeline over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appchem "github.com/turtacn/SmilesKit/internal/application/chem"
	"github.com/turtacn/SmilesKit/internal/config"
	redisc "github.com/turtacn/SmilesKit/internal/infrastructure/cache/redis"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/prometheus"
	routerhttp "github.com/turtacn/SmilesKit/internal/interfaces/http"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	logging.SetDefault(log)

	metrics := prometheus.NewPipelineMetrics()

	opts := []appchem.Option{
		appchem.WithLogger(log),
		appchem.WithMetrics(metrics),
	}
	if cfg.Cache.Enabled {
		cache := redisc.New(cfg.Cache, log)
		if err := cache.Ping(context.Background()); err != nil {
			log.Warn("canonical-result cache unreachable; continuing without it",
				logging.Err(err))
		} else {
			opts = append(opts, appchem.WithCache(cache))
			defer cache.Close()
		}
	}

	svc := appchem.NewService(cfg.Chem, opts...)
	handler := routerhttp.NewRouter(cfg, svc, metrics, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("api server listening", logging.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", logging.Err(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown incomplete", logging.Err(err))
	}
	log.Info("api server stopped")
}
