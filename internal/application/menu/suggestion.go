package menu

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// TargetResolver yields a user's daily nutrition target
type TargetResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) nutrition.Nutrients
}

// Aggregator totals the nutrition of a set of portions
type Aggregator interface {
	Aggregate(ctx context.Context, portions []nutrition.Portion) (nutrition.Nutrients, error)
}

// SuggestionEngine builds a daily menu by filling each meal slot greedily
type SuggestionEngine struct {
	resolver   TargetResolver
	selector   *CandidateSelector
	aggregator Aggregator
	profiles   outbound.UserProfileRepository
	menus      outbound.DailyMenuRepository
	slots      []Slot
	metrics    outbound.MetricsRecorder
	publisher  outbound.EventPublisher
	logger     *zap.Logger
}

// NewSuggestionEngine creates a suggestion engine
func NewSuggestionEngine(
	resolver TargetResolver,
	selector *CandidateSelector,
	aggregator Aggregator,
	profiles outbound.UserProfileRepository,
	menus outbound.DailyMenuRepository,
	weights SlotWeights,
	metrics outbound.MetricsRecorder,
	publisher outbound.EventPublisher,
	logger *zap.Logger,
) *SuggestionEngine {
	return &SuggestionEngine{
		resolver:   resolver,
		selector:   selector,
		aggregator: aggregator,
		profiles:   profiles,
		menus:      menus,
		slots:      weights.Slots(),
		metrics:    metrics,
		publisher:  publisher,
		logger:     logger.Named("suggestion-engine"),
	}
}

// Suggest generates and stores the menu for a user and date. Slots with no
// eligible recipe are left empty. Earlier slots' picks are never repeated.
func (e *SuggestionEngine) Suggest(ctx context.Context, userID uuid.UUID, date time.Time, usage menu.UsageStats) (*menu.DailyMenu, error) {
	day := shared.Day(date)
	log := e.logger.With(zap.String("user_id", userID.String()), zap.String("date", day.Format(shared.DateLayout)))

	target := e.resolver.Resolve(ctx, userID)

	banned, err := e.bannedIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	exclude := make(map[uuid.UUID]struct{}, len(e.slots))
	items := make([]menu.Item, 0, len(e.slots))
	for _, slot := range e.slots {
		slotTarget := target.Calories * slot.Weight
		picked, err := e.selector.Pick(ctx, SelectionRequest{
			TargetCalories:    slotTarget,
			Categories:        slot.Categories,
			BannedIngredients: banned,
			ExcludeIDs:        exclude,
			Usage:             usage,
		})
		if err != nil {
			return nil, err
		}
		if picked == nil {
			log.Info("No candidate for slot", zap.String("slot", string(slot.ServingTime)), zap.Float64("target_calories", slotTarget))
			e.metrics.SlotSkipped(string(slot.ServingTime))
			continue
		}

		exclude[picked.ID()] = struct{}{}
		item, err := menu.NewItem(picked.ID(), nil, "", slot.ServingTime)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build menu item")
		}
		items = append(items, item)
		log.Debug("Filled slot",
			zap.String("slot", string(slot.ServingTime)),
			zap.String("recipe_id", picked.ID().String()),
			zap.Float64("target_calories", slotTarget),
			zap.Float64("recipe_calories", picked.Calories()),
		)
	}

	m, err := e.Store(ctx, userID, day, items)
	if err != nil {
		return nil, err
	}
	e.metrics.MenuSuggested(len(items))
	log.Info("Suggested daily menu", zap.String("menu_id", m.ID().String()), zap.Int("items", len(items)))
	return m, nil
}

// Store aggregates items and writes them as the AI suggestion for the date,
// replacing the content of any live menu already there.
func (e *SuggestionEngine) Store(ctx context.Context, userID uuid.UUID, date time.Time, items []menu.Item) (*menu.DailyMenu, error) {
	totals, err := e.aggregator.Aggregate(ctx, menu.Portions(items))
	if err != nil {
		return nil, err
	}

	existing, err := e.menus.FindByUserAndDate(ctx, userID, date)
	switch {
	case err == nil:
		return e.overwrite(ctx, existing, items, totals)
	case !stderrors.Is(err, outbound.ErrNotFound):
		return nil, errors.NewDatabaseError("find daily menu", err)
	}

	m, err := menu.NewSuggestedMenu(userID, date, items, totals)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := e.menus.Create(ctx, m); err != nil {
		if !stderrors.Is(err, outbound.ErrDuplicate) {
			return nil, errors.NewDatabaseError("create daily menu", err)
		}
		// Lost a race with another writer for the same date; update theirs instead.
		existing, err := e.menus.FindByUserAndDate(ctx, userID, date)
		if err != nil {
			return nil, errors.NewDatabaseError("reload daily menu", err)
		}
		return e.overwrite(ctx, existing, items, totals)
	}

	publishEvents(ctx, e.publisher, e.logger, m)
	return m, nil
}

func (e *SuggestionEngine) overwrite(ctx context.Context, m *menu.DailyMenu, items []menu.Item, totals nutrition.Nutrients) (*menu.DailyMenu, error) {
	if err := m.OverwriteWithSuggestion(items, totals); err != nil {
		return nil, translate(err)
	}
	if err := e.menus.Save(ctx, m); err != nil {
		return nil, saveError(err)
	}
	publishEvents(ctx, e.publisher, e.logger, m)
	return m, nil
}

func (e *SuggestionEngine) bannedIngredients(ctx context.Context, userID uuid.UUID) ([]string, error) {
	profile, err := e.profiles.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("load user profile", err)
	}
	return profile.Banned(), nil
}
