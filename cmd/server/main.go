/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point for starting the cache server.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/relieflink/cachestore/internal/cache/engine"
	"github.com/relieflink/cachestore/internal/cache/store"
	"github.com/relieflink/cachestore/internal/system/cert"
	"github.com/relieflink/cachestore/internal/system/config"
	"github.com/relieflink/cachestore/internal/system/constants"
	"github.com/relieflink/cachestore/internal/system/database/provider"
	"github.com/relieflink/cachestore/internal/system/log"
	"github.com/relieflink/cachestore/internal/system/managers"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := log.GetLogger()
	defer log.Sync()

	serverHome := getServerHome(logger)

	cfg := initServerConfigurations(logger, serverHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbProvider := provider.GetDBProvider()
	defer func() {
		if err := dbProvider.Close(); err != nil {
			logger.Error("Failed to close the database connections", log.Error(err))
		}
	}()

	cacheEngine, gatherer := initCacheEngine(ctx, logger, cfg, dbProvider)

	mux := initMultiplexer(logger, cacheEngine, gatherer)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	if err := run(ctx, logger, cfg, serverHome, mux, cacheEngine); err != nil {
		logger.Error("Server stopped with an error", log.Error(err))
		return
	}
	logger.Info("Cache server stopped")
}

// getServerHome retrieves and returns the server home directory.
func getServerHome(logger *log.Logger) string {
	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("serverHome", "", "Path to the cache server home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using serverHome from command line argument", log.String("serverHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initServerConfigurations loads the deployment configuration and initializes the server runtime.
func initServerConfigurations(logger *log.Logger, serverHome string) *config.Config {
	configFilePath := path.Join(serverHome, constants.DeploymentConfigPath)
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeServerRuntime(serverHome, cfg); err != nil {
		logger.Fatal("Failed to initialize server runtime", log.Error(err))
	}

	return cfg
}

// initCacheEngine prepares the durable store and builds the cache engine on top of it.
// The returned gatherer is nil when metrics are disabled.
func initCacheEngine(ctx context.Context, logger *log.Logger, cfg *config.Config,
	dbProvider provider.DBProviderInterface) (*engine.Engine, prometheus.Gatherer) {
	cacheStore := store.NewCacheStore(dbProvider)

	if cfg.Cache.AutoMigrate && !cfg.Cache.Disabled {
		if err := cacheStore.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to prepare the cache schema", log.Error(err))
		}
		logger.Info("Cache schema is ready", log.String("database", cfg.Database.Cache.Type))
	}

	opts := []engine.Option{engine.WithConfig(cfg.Cache)}

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(
			collectors.ProcessCollectorOpts{}))
		opts = append(opts, engine.WithMetrics(engine.NewMetrics(cfg.Metrics.Namespace, registry)))
		gatherer = registry
	}

	cacheEngine := engine.NewEngine(cacheStore, opts...)
	if cacheEngine.IsDisabled() {
		logger.Warn("Cache is disabled, every lookup is a miss")
	}
	return cacheEngine, gatherer
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger, cacheEngine engine.CacheEngineInterface,
	gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, cacheEngine, gatherer)

	// Register the services.
	err := serviceManager.RegisterServices()
	if err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// run serves the admin API and runs the sweeper until the context is cancelled.
func run(ctx context.Context, logger *log.Logger, cfg *config.Config, serverHome string, mux *http.ServeMux,
	cacheEngine *engine.Engine) error {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	listener, err := createListener(cfg, serverHome, serverAddr)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("Cache server started", log.String("address", serverAddr),
			log.Bool("tls", !cfg.Server.HTTPOnly))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve requests: %w", err)
		}
		return nil
	})

	if !cacheEngine.IsDisabled() {
		sweeper := engine.NewSweeper(cacheEngine, time.Duration(cfg.Cache.CleanupInterval)*time.Second)
		group.Go(func() error {
			return sweeper.Run(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down the cache server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// createListener opens the server listener, with TLS unless the server runs in HTTP only mode.
func createListener(cfg *config.Config, serverHome, serverAddr string) (net.Listener, error) {
	if cfg.Server.HTTPOnly {
		return net.Listen("tcp", serverAddr)
	}

	tlsConfig, err := cert.GetTLSConfig(cfg.Security, serverHome)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS configuration: %w", err)
	}
	return tls.Listen("tcp", serverAddr, tlsConfig)
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	// Wrap the multiplexer with AccessLogHandler.
	wrappedMux := log.AccessLogHandler(logger, mux)

	// Build the server address using hostname and port from the configurations.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
