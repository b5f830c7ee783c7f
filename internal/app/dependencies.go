package app

import (
	"github.com/budgetboi/budgetboi/internal/event_bus"
	"github.com/budgetboi/budgetboi/internal/storage"
	"github.com/budgetboi/budgetboi/internal/utils"
	"github.com/budgetboi/budgetboi/pkg/entry"
	"github.com/budgetboi/budgetboi/pkg/projection"
	"github.com/budgetboi/budgetboi/pkg/settings"
	"github.com/budgetboi/budgetboi/pkg/snapshot"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	SettingsRepo    settings.Repository
	SettingsService settings.Service
	SettingsHandler *settings.Handler

	EntryRepo      entry.Repository
	EntryService   entry.Service
	ExpenseHandler *entry.Handler
	IncomeHandler  *entry.Handler

	ProjectionService *projection.ServiceImpl
	CsvRenderer       *projection.CsvExportRenderer
	ProjectionHandler *projection.Handler

	Serializer      snapshot.Serializer
	RegistryRepo    snapshot.RegistryRepo
	Registry        snapshot.Registry
	SnapshotHandler *snapshot.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store storage.Store) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.SettingsRepo = settings.NewRepository(store)
	deps.SettingsService = settings.NewService(deps.SettingsRepo)
	deps.SettingsHandler = settings.NewHandler(deps.SettingsService)

	deps.EntryRepo = entry.NewRepository(store)
	deps.EntryService = entry.NewService(deps.EntryRepo)
	deps.ExpenseHandler = entry.NewHandler(deps.EntryService, entry.KindExpense)
	deps.IncomeHandler = entry.NewHandler(deps.EntryService, entry.KindIncome)

	deps.ProjectionService = projection.NewService(deps.SettingsService, deps.EntryService)
	deps.CsvRenderer = projection.NewCsvExportRenderer()
	deps.ProjectionHandler = projection.NewHandler(deps.ProjectionService, deps.CsvRenderer)

	deps.Serializer = snapshot.NewSerializer(deps.SettingsRepo, deps.EntryRepo, deps.Bus)
	deps.RegistryRepo = snapshot.NewRegistryRepo(store)
	deps.Registry = snapshot.NewRegistry(deps.RegistryRepo, deps.Serializer, deps.Clock, deps.Bus)
	deps.SnapshotHandler = snapshot.NewHandler(deps.Serializer, deps.Registry)

	registerEventLogging(deps.Bus)

	return deps
}

// registerEventLogging subscribes audit-style log lines to the budget
// lifecycle events.
func registerEventLogging(bus *event_bus.EventBus) {
	bus.Subscribe(event_bus.BudgetImportedEvent, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.BudgetImported); ok {
			log.Infof("budget imported: %d expenses, %d incomes", data.Expenses, data.Incomes)
		}
		return nil
	})
	bus.Subscribe(event_bus.BudgetSavedEvent, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.BudgetSaved); ok {
			log.Infof("budget saved to registry: id=%s name=%q", data.Id, data.Name)
		}
		return nil
	})
	bus.Subscribe(event_bus.BudgetRestoredEvent, func(e event_bus.Event) error {
		if data, ok := e.Data.(event_bus.BudgetRestored); ok {
			log.Infof("budget restored from registry: id=%s", data.Id)
		}
		return nil
	})
}
