package app

import (
	"errors"
	"fmt"

	"rankings-admin/pkg/config"
	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/slug"
	"rankings-admin/services/ranking/internal/repo/persistent"
	"rankings-admin/services/ranking/internal/usecase"

	"gorm.io/gorm"
)

// Dependencies are the process-level resources the container builds on.
// Images and Events are optional.
type Dependencies struct {
	DB     *gorm.DB
	Images usecase.ImageStorage
	Events usecase.EventPublisher
	Logger *logger.Logger
}

// Container holds the repositories and use cases for one process. It is
// built once at start-up and handed to the router by reference.
type Container struct {
	cfg  *config.Config
	deps Dependencies

	RankingRepo    persistent.RankingRepository
	ItemRepo       persistent.ItemRepository
	RankingUseCase usecase.RankingUseCase
	ItemUseCase    usecase.ItemUseCase
}

// Overrides replaces parts of a container; nil fields are left alone.
type Overrides struct {
	RankingRepo    persistent.RankingRepository
	ItemRepo       persistent.ItemRepository
	RankingUseCase usecase.RankingUseCase
	ItemUseCase    usecase.ItemUseCase
}

func NewContainer(cfg *config.Config, deps Dependencies) (*Container, error) {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}

	c := &Container{cfg: cfg, deps: deps}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset rebuilds every repository and use case from the stored config,
// discarding any overrides.
func (c *Container) Reset() error {
	slugs, err := slug.NewGenerator()
	if err != nil {
		return fmt.Errorf("slug generator: %w", err)
	}

	log := c.deps.Logger
	switch c.cfg.StorageBackend {
	case config.StorageDatabase:
		if c.deps.DB == nil {
			return errors.New("database storage selected but no database connection was provided")
		}
		c.RankingRepo = persistent.NewRankingRepository(c.deps.DB, slugs, log)
		c.ItemRepo = persistent.NewItemRepository(c.deps.DB, log)
	case config.StorageJSON:
		source := persistent.NewJSONSource(c.cfg.RankingsJSONPath)
		c.RankingRepo = persistent.NewJSONRankingRepository(source, slugs, log)
		c.ItemRepo = persistent.NewJSONItemRepository(source, log)
	default:
		return fmt.Errorf("unknown storage backend %q", c.cfg.StorageBackend)
	}

	c.buildUseCases()
	return nil
}

// Override merges the non-nil replacements. Use cases that are not replaced
// themselves are rebuilt so they see replaced repositories.
func (c *Container) Override(o Overrides) {
	if o.RankingRepo != nil {
		c.RankingRepo = o.RankingRepo
	}
	if o.ItemRepo != nil {
		c.ItemRepo = o.ItemRepo
	}
	if o.RankingRepo != nil || o.ItemRepo != nil {
		c.buildUseCases()
	}

	if o.RankingUseCase != nil {
		c.RankingUseCase = o.RankingUseCase
	}
	if o.ItemUseCase != nil {
		c.ItemUseCase = o.ItemUseCase
	}
}

func (c *Container) buildUseCases() {
	c.RankingUseCase = usecase.NewRankingUseCase(c.RankingRepo, c.deps.Images, c.deps.Events, c.cfg.DefaultAuthorID, c.deps.Logger)
	c.ItemUseCase = usecase.NewItemUseCase(c.RankingRepo, c.ItemRepo, c.deps.Logger)
}
