// Package app provides the dependency injection container that assembles application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	binHTTP "github.com/allisson/pangen/internal/bin/http"
	binUseCase "github.com/allisson/pangen/internal/bin/usecase"
	"github.com/allisson/pangen/internal/config"
	"github.com/allisson/pangen/internal/database"
	"github.com/allisson/pangen/internal/export"
	"github.com/allisson/pangen/internal/http"
	"github.com/allisson/pangen/internal/metrics"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
	panHTTP "github.com/allisson/pangen/internal/pan/http"
	panUseCase "github.com/allisson/pangen/internal/pan/usecase"
)

// startupTimeout bounds I/O made while building components (database ping, bucket open).
const startupTimeout = 10 * time.Second

// Container holds all application dependencies and creates them on first access.
type Container struct {
	config    *config.Config
	logOutput io.Writer

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	exporter        export.Exporter

	// BIN reference store
	binRepository binUseCase.BINRepository
	binUseCase    binUseCase.BINUseCase
	binHandler    *binHTTP.BINHandler

	// PAN generation
	issuerRanges        *panDomain.IssuerRangeTable
	generatorUseCase    panUseCase.GeneratorUseCase
	orchestratorUseCase panUseCase.OrchestratorUseCase
	historyRepository   panUseCase.GenerationRecordRepository
	historyUseCase      panUseCase.HistoryUseCase
	panHandler          *panHTTP.PANHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	loggerInit              sync.Once
	dbInit                  sync.Once
	txManagerInit           sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	exporterInit            sync.Once
	binRepositoryInit       sync.Once
	binUseCaseInit          sync.Once
	binHandlerInit          sync.Once
	issuerRangesInit        sync.Once
	generatorUseCaseInit    sync.Once
	orchestratorUseCaseInit sync.Once
	historyRepositoryInit   sync.Once
	historyUseCaseInit      sync.Once
	panHandlerInit          sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once

	mu         sync.Mutex
	initErrors map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		logOutput:  os.Stdout,
		initErrors: make(map[string]error),
	}
}

// WithLogOutput sends log records to w. It must be called before Logger.
// CLI commands log to stderr so stdout carries only generated data.
func (c *Container) WithLogOutput(w io.Writer) *Container {
	c.logOutput = w
	return c
}

// resolve runs init once and remembers its result, including a failure, under key.
func resolve[T any](c *Container, once *sync.Once, key string, dst *T, init func() (T, error)) (T, error) {
	once.Do(func() {
		value, err := init()
		if err != nil {
			c.mu.Lock()
			c.initErrors[key] = err
			c.mu.Unlock()
			return
		}
		*dst = value
	})

	c.mu.Lock()
	err, failed := c.initErrors[key]
	c.mu.Unlock()
	if failed {
		var zero T
		return zero, err
	}
	return *dst, nil
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured with the log level from configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection pool.
func (c *Container) DB() (*sql.DB, error) {
	return resolve(c, &c.dbInit, "db", &c.db, c.initDB)
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return resolve(c, &c.txManagerInit, "txManager", &c.txManager, c.initTxManager)
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return resolve(c, &c.metricsProviderInit, "metricsProvider", &c.metricsProvider, c.initMetricsProvider)
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return resolve(c, &c.businessMetricsInit, "businessMetrics", &c.businessMetrics, c.initBusinessMetrics)
}

// Exporter returns the bucket exporter.
func (c *Container) Exporter() (export.Exporter, error) {
	return resolve(c, &c.exporterInit, "exporter", &c.exporter, c.initExporter)
}

// HTTPServer returns the API server with its routes registered.
func (c *Container) HTTPServer() (*http.Server, error) {
	return resolve(c, &c.httpServerInit, "httpServer", &c.httpServer, c.initHTTPServer)
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return resolve(c, &c.metricsServerInit, "metricsServer", &c.metricsServer, c.initMetricsServer)
}

// Shutdown releases every initialized resource.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.exporter != nil {
		if err := c.exporter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("exporter close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(c.logOutput, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

func (c *Container) initExporter() (export.Exporter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	exporter, err := export.NewBucketExporter(ctx, c.config.ExportBucketURL, c.config.ExportSecretsKeeperURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}
	return exporter, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	panHandler, err := c.PANHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get pan handler for http server: %w", err)
	}

	binHandler, err := c.BINHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get bin handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	var db *sql.DB
	if c.config.NeedsDatabase() {
		if db, err = c.DB(); err != nil {
			return nil, fmt.Errorf("failed to get database for http server: %w", err)
		}
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.config, panHandler, binHandler, provider)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
