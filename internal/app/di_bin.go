package app

import (
	"fmt"

	binHTTP "github.com/allisson/pangen/internal/bin/http"
	binRepository "github.com/allisson/pangen/internal/bin/repository"
	binUseCase "github.com/allisson/pangen/internal/bin/usecase"
	"github.com/allisson/pangen/internal/database"
)

// BINRepository returns the BIN repository for the configured database driver.
func (c *Container) BINRepository() (binUseCase.BINRepository, error) {
	return resolve(c, &c.binRepositoryInit, "binRepository", &c.binRepository, c.initBINRepository)
}

// BINUseCase returns the BIN reference store use case.
func (c *Container) BINUseCase() (binUseCase.BINUseCase, error) {
	return resolve(c, &c.binUseCaseInit, "binUseCase", &c.binUseCase, c.initBINUseCase)
}

// BINHandler returns the BIN HTTP handler, or nil when BIN lookup is disabled.
func (c *Container) BINHandler() (*binHTTP.BINHandler, error) {
	return resolve(c, &c.binHandlerInit, "binHandler", &c.binHandler, c.initBINHandler)
}

func (c *Container) initBINRepository() (binUseCase.BINRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for bin repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return binRepository.NewPostgreSQLBINRepository(db), nil
	case database.DriverMySQL:
		return binRepository.NewMySQLBINRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initBINUseCase() (binUseCase.BINUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for bin use case: %w", err)
	}

	repo, err := c.BINRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get bin repository for bin use case: %w", err)
	}

	baseUseCase := binUseCase.NewBINUseCase(txManager, repo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for bin use case: %w", err)
		}
		return binUseCase.NewBINUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initBINHandler() (*binHTTP.BINHandler, error) {
	if !c.config.BINLookupEnabled {
		return nil, nil
	}

	useCase, err := c.BINUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get bin use case for bin handler: %w", err)
	}
	return binHTTP.NewBINHandler(useCase, c.Logger()), nil
}
