package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/budgetboi/budgetboi/internal/event_bus"
	"github.com/budgetboi/budgetboi/pkg/entry"
	"github.com/budgetboi/budgetboi/pkg/settings"
	log "github.com/sirupsen/logrus"
)

// Serializer bundles the live settings, expenses, and incomes into a
// versioned JSON document and restores them from one. Import and ClearAll
// treat the three collections as one atomic unit; no collection is ever
// written without the others.
type Serializer interface {
	Export(ctx context.Context) (string, error)
	// Import validates the whole document before writing anything: a failed
	// import leaves the live state untouched.
	Import(ctx context.Context, raw string) error
	ClearAll(ctx context.Context) error
}

type SerializerImpl struct {
	settingsRepo settings.Repository
	entryRepo    entry.Repository
	bus          *event_bus.EventBus
}

func NewSerializer(settingsRepo settings.Repository, entryRepo entry.Repository, bus *event_bus.EventBus) *SerializerImpl {
	return &SerializerImpl{
		settingsRepo: settingsRepo,
		entryRepo:    entryRepo,
		bus:          bus,
	}
}

func (s *SerializerImpl) Export(ctx context.Context) (string, error) {
	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	expenses, err := s.entryRepo.GetAll(ctx, entry.KindExpense)
	if err != nil {
		return "", err
	}
	incomes, err := s.entryRepo.GetAll(ctx, entry.KindIncome)
	if err != nil {
		return "", err
	}
	doc, err := json.Marshal(Snapshot{
		Version:  Version,
		Settings: stored,
		Expenses: expenses,
		Incomes:  incomes,
	})
	if err != nil {
		return "", fmt.Errorf("could not serialize budget: %w", err)
	}
	return string(doc), nil
}

func (s *SerializerImpl) Import(ctx context.Context, raw string) error {
	var doc struct {
		Version  *int               `json:"version"`
		Settings *settings.Settings `json:"settings"`
		Expenses []entry.Entry      `json:"expenses"`
		Incomes  []entry.Entry      `json:"incomes"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		log.Debugf("budget document does not parse: %v", err)
		return ErrInvalidBudgetFile
	}
	if doc.Version == nil || *doc.Version != Version || doc.Settings == nil {
		return ErrInvalidBudgetFile
	}
	if doc.Expenses == nil {
		doc.Expenses = []entry.Entry{}
	}
	if doc.Incomes == nil {
		doc.Incomes = []entry.Entry{}
	}

	if err := s.settingsRepo.Save(ctx, *doc.Settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}
	if err := s.entryRepo.SaveAll(ctx, entry.KindExpense, doc.Expenses); err != nil {
		return fmt.Errorf("failed to import expenses: %w", err)
	}
	if err := s.entryRepo.SaveAll(ctx, entry.KindIncome, doc.Incomes); err != nil {
		return fmt.Errorf("failed to import incomes: %w", err)
	}

	if s.bus != nil {
		_ = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetImportedEvent, event_bus.BudgetImported{
			Expenses: len(doc.Expenses),
			Incomes:  len(doc.Incomes),
		}))
	}
	return nil
}

func (s *SerializerImpl) ClearAll(ctx context.Context) error {
	if err := s.settingsRepo.Clear(ctx); err != nil {
		return err
	}
	if err := s.entryRepo.Clear(ctx, entry.KindExpense); err != nil {
		return err
	}
	return s.entryRepo.Clear(ctx, entry.KindIncome)
}
