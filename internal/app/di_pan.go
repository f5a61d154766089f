package app

import (
	"context"
	"fmt"
	"log/slog"

	binRepository "github.com/allisson/pangen/internal/bin/repository"
	"github.com/allisson/pangen/internal/config"
	"github.com/allisson/pangen/internal/database"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
	panHTTP "github.com/allisson/pangen/internal/pan/http"
	panRepository "github.com/allisson/pangen/internal/pan/repository"
	panService "github.com/allisson/pangen/internal/pan/service"
	panUseCase "github.com/allisson/pangen/internal/pan/usecase"
)

// IssuerRanges returns the issuer range table from the configured source.
func (c *Container) IssuerRanges() (*panDomain.IssuerRangeTable, error) {
	return resolve(c, &c.issuerRangesInit, "issuerRanges", &c.issuerRanges, c.initIssuerRanges)
}

// GeneratorUseCase returns the PAN generator.
func (c *Container) GeneratorUseCase() (panUseCase.GeneratorUseCase, error) {
	return resolve(c, &c.generatorUseCaseInit, "generatorUseCase", &c.generatorUseCase, c.initGeneratorUseCase)
}

// OrchestratorUseCase returns the parallel batch orchestrator.
func (c *Container) OrchestratorUseCase() (panUseCase.OrchestratorUseCase, error) {
	return resolve(
		c,
		&c.orchestratorUseCaseInit,
		"orchestratorUseCase",
		&c.orchestratorUseCase,
		c.initOrchestratorUseCase,
	)
}

// GenerationRecordRepository returns the generation history repository for the
// configured database driver.
func (c *Container) GenerationRecordRepository() (panUseCase.GenerationRecordRepository, error) {
	return resolve(
		c,
		&c.historyRepositoryInit,
		"historyRepository",
		&c.historyRepository,
		c.initGenerationRecordRepository,
	)
}

// HistoryUseCase returns the generation history use case, or nil when history is disabled.
func (c *Container) HistoryUseCase() (panUseCase.HistoryUseCase, error) {
	return resolve(c, &c.historyUseCaseInit, "historyUseCase", &c.historyUseCase, c.initHistoryUseCase)
}

// PANHandler returns the PAN HTTP handler.
func (c *Container) PANHandler() (*panHTTP.PANHandler, error) {
	return resolve(c, &c.panHandlerInit, "panHandler", &c.panHandler, c.initPANHandler)
}

// GeneratorConfig maps the configuration onto the generator settings.
func (c *Container) GeneratorConfig() panUseCase.GeneratorConfig {
	return panUseCase.GeneratorConfig{
		ExhaustiveThreshold:  c.config.PANExhaustiveThreshold,
		GenerateMaxWildcards: c.config.PANGenerateMaxWildcards,
		MaxAttempts:          c.config.PANMaxAttempts,
		StandardLength:       c.config.PANStandardLength,
		MinBINLength:         c.config.PANMinBINLength,
		LookupTimeout:        c.config.PANLookupTimeout,
	}
}

func (c *Container) initIssuerRanges() (*panDomain.IssuerRangeTable, error) {
	var (
		table *panDomain.IssuerRangeTable
		err   error
	)

	switch c.config.IssuerRangesSource {
	case "", config.IssuerRangesDefault:
		table = panDomain.DefaultIssuerRangeTable()
	case config.IssuerRangesFile:
		table, err = binRepository.LoadIssuerRangeFile(c.config.IssuerRangesFile)
	case config.IssuerRangesDatabase:
		useCase, ucErr := c.BINUseCase()
		if ucErr != nil {
			return nil, fmt.Errorf("failed to get bin use case for issuer ranges: %w", ucErr)
		}
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		table, err = useCase.RangeTable(ctx)
	default:
		return nil, fmt.Errorf("unsupported issuer ranges source: %s", c.config.IssuerRangesSource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load issuer ranges from %s: %w", c.config.IssuerRangesSource, err)
	}

	c.Logger().Info("issuer ranges loaded",
		slog.String("source", c.config.IssuerRangesSource),
		slog.Int("ranges", table.Len()),
	)
	return table, nil
}

func (c *Container) initGeneratorUseCase() (panUseCase.GeneratorUseCase, error) {
	table, err := c.IssuerRanges()
	if err != nil {
		return nil, fmt.Errorf("failed to get issuer ranges for generator use case: %w", err)
	}

	var lookup panUseCase.ReferenceLookup
	if c.config.BINLookupEnabled {
		binUC, err := c.BINUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get bin use case for generator use case: %w", err)
		}
		lookup = binUC
	}

	baseUseCase := panUseCase.NewGeneratorUseCase(
		c.GeneratorConfig(),
		panService.NewExpander(c.config.PANExhaustiveMaxWildcards, nil),
		panService.NewRangeMatcher(table),
		lookup,
		nil,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for generator use case: %w", err)
		}
		return panUseCase.NewGeneratorUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initOrchestratorUseCase() (panUseCase.OrchestratorUseCase, error) {
	generator, err := c.GeneratorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get generator use case for orchestrator use case: %w", err)
	}

	baseUseCase := panUseCase.NewOrchestratorUseCase(
		generator,
		c.config.PANWorkerPoolSize,
		c.config.PANMaxAttempts,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for orchestrator use case: %w", err)
		}
		return panUseCase.NewOrchestratorUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initGenerationRecordRepository() (panUseCase.GenerationRecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for generation record repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return panRepository.NewPostgreSQLGenerationRecordRepository(db), nil
	case database.DriverMySQL:
		return panRepository.NewMySQLGenerationRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initHistoryUseCase() (panUseCase.HistoryUseCase, error) {
	if !c.config.HistoryEnabled {
		return nil, nil
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for history use case: %w", err)
	}

	repo, err := c.GenerationRecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get generation record repository for history use case: %w", err)
	}

	return panUseCase.NewHistoryUseCase(txManager, repo), nil
}

func (c *Container) initPANHandler() (*panHTTP.PANHandler, error) {
	generator, err := c.GeneratorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get generator use case for pan handler: %w", err)
	}

	orchestrator, err := c.OrchestratorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get orchestrator use case for pan handler: %w", err)
	}

	history, err := c.HistoryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get history use case for pan handler: %w", err)
	}

	return panHTTP.NewPANHandler(generator, orchestrator, history, c.config.PANMaxAttempts, c.Logger()), nil
}
