// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/infra/catalog"
	"github.com/runoshun/taskring/internal/infra/config"
	"github.com/runoshun/taskring/internal/infra/jsonstore"
	"github.com/runoshun/taskring/internal/infra/logging"
	"github.com/runoshun/taskring/internal/infra/sqlitestore"
	"github.com/runoshun/taskring/internal/interaction"
	"github.com/runoshun/taskring/internal/persist"
	"github.com/runoshun/taskring/internal/placement"
	"github.com/runoshun/taskring/internal/taskring"
	"github.com/runoshun/taskring/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	DataDir        string // Data directory (logs, store, categories, local config)
	StorePath      string // Task store file
	CategoriesPath string // Category catalog file
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	Categories       domain.CategoryProvider
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	Logger           domain.Logger

	// Pointer fields
	ConfigManager *config.Manager
	AppConfig     *domain.Config
	Ring          *taskring.Ring
	Searcher      *placement.Searcher

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a Container rooted at dataDir. An empty dataDir resolves to
// $XDG_DATA_HOME/taskring.
func New(dataDir string) (*Container, error) {
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}

	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		DataDir:        dataDir,
		StorePath:      appConfig.StorePath(dataDir),
		CategoriesPath: appConfig.CategoriesPath(dataDir),
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))
	for _, w := range appConfig.Warnings {
		logger.Warn("", "config", w)
	}

	var (
		taskRepo  domain.TaskRepository
		storeInit domain.StoreInitializer
		closers   = []io.Closer{logger}
	)
	switch appConfig.Store.Type {
	case domain.StoreTypeJSON:
		store := jsonstore.New(cfg.StorePath)
		taskRepo, storeInit = store, store
	default:
		store := sqlitestore.New(cfg.StorePath)
		taskRepo, storeInit = store, store
		closers = append(closers, store)
	}
	if err := storeInit.Initialize(); err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	categories, err := catalog.Load(cfg.CategoriesPath)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	c := &Container{
		Tasks:            taskRepo,
		StoreInitializer: storeInit,
		Categories:       categories,
		Clock:            domain.RealClock{},
		ConfigLoader:     configLoader,
		Logger:           logger,
		ConfigManager:    config.NewManager(dataDir),
		AppConfig:        appConfig,
		Ring:             taskring.New(),
		Searcher:         newSearcher(appConfig.Placement),
		closers:          closers,
		Config:           cfg,
	}
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	cfg Config,
	appConfig *domain.Config,
	tasks domain.TaskRepository,
	categories domain.CategoryProvider,
	clock domain.Clock,
	logger domain.Logger,
) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Tasks:         tasks,
		Categories:    categories,
		Clock:         clock,
		Logger:        logger,
		ConfigManager: config.NewManager(cfg.DataDir),
		AppConfig:     appConfig,
		Ring:          taskring.New(),
		Searcher:      newSearcher(appConfig.Placement),
		Config:        cfg,
	}
}

func newSearcher(p domain.PlacementConfig) *placement.Searcher {
	return placement.NewSearcher(
		placement.WithStep(p.Step.Std()),
		placement.WithBound(p.SearchBound.Std()),
		placement.WithCache(placement.NewCache(p.CacheSize)),
	)
}

// Close releases the store and log file.
func (c *Container) Close() error {
	err := closeAll(c.closers)
	c.closers = nil
	return err
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RingConfiguration returns the ring settings for day. Center and Radius
// are left for the renderer to fill in.
func (c *Container) RingConfiguration(day time.Time) domain.RingConfiguration {
	return domain.RingConfiguration{
		BaseDate:        domain.StartOfDay(day),
		ZeroPosition:    c.AppConfig.Ring.ZeroPosition,
		HitTolerance:    c.AppConfig.Ring.HitTolerance,
		HandleTolerance: c.AppConfig.Ring.HandleTolerance.Std(),
	}
}

// NewPersister starts an asynchronous writer over the task repository.
// The caller must Close it to drain pending writes.
func (c *Container) NewPersister(onFailure func(*domain.PersistenceFailure)) *persist.Queue {
	return persist.New(c.Tasks,
		persist.WithLogger(c.Logger),
		persist.WithFailureHandler(onFailure),
	)
}

// NewController creates a gesture controller over the shared ring.
func (c *Container) NewController(cfg domain.RingConfiguration, persister domain.Persister) (*interaction.Controller, error) {
	return interaction.New(c.Ring, cfg,
		interaction.WithPersister(persister),
		interaction.WithLogger(c.Logger),
		interaction.WithSearcher(c.Searcher),
	)
}

// UseCase factory methods

// LoadDayUseCase returns a new LoadDay use case over the shared ring.
func (c *Container) LoadDayUseCase() *usecase.LoadDay {
	return usecase.NewLoadDay(c.Tasks, c.Ring, c.Logger)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.LoadDayUseCase())
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Tasks, c.Categories, c.Searcher, c.Logger)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks, c.Categories, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Logger)
}

// FindSlotUseCase returns a new FindSlot use case.
func (c *Container) FindSlotUseCase() *usecase.FindSlot {
	return usecase.NewFindSlot(c.Tasks, c.Categories, c.Searcher)
}
