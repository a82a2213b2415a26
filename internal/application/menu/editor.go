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

// EditorConfig bounds which menus accept consumption changes
type EditorConfig struct {
	FreezeWindowDays int
}

// DefaultEditorConfig returns the stock seven day freeze window
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{FreezeWindowDays: 7}
}

// Change is a user's modification of an existing menu
type Change struct {
	Items    *[]menu.Item
	Feedback *string
}

// Empty reports whether the change modifies nothing
func (c Change) Empty() bool {
	return c.Items == nil && c.Feedback == nil
}

// Editor applies user changes to menus. Editing an AI suggestion's content
// archives the suggestion and continues on an edited copy; every other menu
// is changed in place.
type Editor struct {
	menus      outbound.DailyMenuRepository
	uow        outbound.UnitOfWork
	aggregator Aggregator
	cfg        EditorConfig
	clock      func() time.Time
	metrics    outbound.MetricsRecorder
	publisher  outbound.EventPublisher
	logger     *zap.Logger
}

// NewEditor creates an editor; a nil clock uses time.Now
func NewEditor(
	menus outbound.DailyMenuRepository,
	uow outbound.UnitOfWork,
	aggregator Aggregator,
	cfg EditorConfig,
	clock func() time.Time,
	metrics outbound.MetricsRecorder,
	publisher outbound.EventPublisher,
	logger *zap.Logger,
) *Editor {
	if clock == nil {
		clock = time.Now
	}
	return &Editor{
		menus:      menus,
		uow:        uow,
		aggregator: aggregator,
		cfg:        cfg,
		clock:      clock,
		metrics:    metrics,
		publisher:  publisher,
		logger:     logger.Named("menu-editor"),
	}
}

// CreateOrReplace sets the item list of the user's menu for date, creating
// a selected menu when the date has none.
func (e *Editor) CreateOrReplace(ctx context.Context, userID uuid.UUID, date time.Time, items []menu.Item) (*menu.DailyMenu, error) {
	existing, err := e.findLive(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return e.Edit(ctx, existing, Change{Items: &items})
	}

	fresh, err := menu.ReconcileItems(nil, items)
	if err != nil {
		return nil, translate(err)
	}
	totals, err := e.aggregator.Aggregate(ctx, menu.Portions(fresh))
	if err != nil {
		return nil, err
	}
	m, err := menu.NewSelectedMenu(userID, date, fresh, totals)
	if err != nil {
		return nil, translate(err)
	}
	if err := e.menus.Create(ctx, m); err != nil {
		if !stderrors.Is(err, outbound.ErrDuplicate) {
			return nil, errors.NewDatabaseError("create daily menu", err)
		}
		existing, err := e.menus.FindByUserAndDate(ctx, userID, date)
		if err != nil {
			return nil, errors.NewDatabaseError("reload daily menu", err)
		}
		return e.Edit(ctx, existing, Change{Items: &items})
	}

	e.logger.Info("Created daily menu",
		zap.String("menu_id", m.ID().String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(items)),
	)
	publishEvents(ctx, e.publisher, e.logger, m)
	return m, nil
}

// Append adds one item to the user's menu for date
func (e *Editor) Append(ctx context.Context, userID uuid.UUID, date time.Time, item menu.Item) (*menu.DailyMenu, error) {
	existing, err := e.findLive(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return e.CreateOrReplace(ctx, userID, date, []menu.Item{item})
	}
	items := append(existing.Items(), item)
	return e.Edit(ctx, existing, Change{Items: &items})
}

// Ensure returns the live menu for date, creating an empty planned menu if none exists
func (e *Editor) Ensure(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error) {
	existing, err := e.findLive(ctx, userID, date)
	if err != nil || existing != nil {
		return existing, err
	}

	m, err := menu.NewPlannedMenu(userID, date)
	if err != nil {
		return nil, translate(err)
	}
	if err := e.menus.Create(ctx, m); err != nil {
		if !stderrors.Is(err, outbound.ErrDuplicate) {
			return nil, errors.NewDatabaseError("create daily menu", err)
		}
		existing, err := e.menus.FindByUserAndDate(ctx, userID, date)
		if err != nil {
			return nil, errors.NewDatabaseError("reload daily menu", err)
		}
		return existing, nil
	}
	return m, nil
}

// Edit applies change to m and returns the menu that now carries the change,
// which is a new edited copy when m was an AI suggestion.
func (e *Editor) Edit(ctx context.Context, m *menu.DailyMenu, change Change) (*menu.DailyMenu, error) {
	if change.Empty() {
		return nil, errors.NewValidationError("no changes supplied")
	}
	if m.IsArchived() {
		return nil, errors.NewResourceStateError("archived menus cannot be modified")
	}

	var items []menu.Item
	totals := m.TotalNutrition()
	if change.Items != nil {
		reconciled, err := menu.ReconcileItems(m.Items(), *change.Items)
		if err != nil {
			return nil, translate(err)
		}
		if dropped := menu.DroppedConsumed(m.Items(), reconciled); len(dropped) > 0 {
			if err := e.checkWindow(m); err != nil {
				return nil, err
			}
		}
		items = reconciled
		aggregated, err := e.aggregator.Aggregate(ctx, menu.Portions(items))
		if err != nil {
			return nil, err
		}
		totals = aggregated
	}

	if change.Items != nil && m.RequiresCloneOnEdit() {
		return e.fork(ctx, m, change, items, totals)
	}

	if change.Items != nil {
		if err := m.ReplaceItems(items, totals); err != nil {
			return nil, translate(err)
		}
		if err := m.MarkEdited(); err != nil {
			return nil, translate(err)
		}
	}
	if change.Feedback != nil {
		if err := m.SetFeedback(*change.Feedback); err != nil {
			return nil, translate(err)
		}
		// Feedback on a suggestion rates it without forking, so it stays suggested.
		if change.Items == nil && touchedByFeedback(m.Status()) {
			if err := m.MarkEdited(); err != nil {
				return nil, translate(err)
			}
		}
	}
	if err := e.menus.Save(ctx, m); err != nil {
		return nil, saveError(err)
	}

	if change.Items != nil {
		e.metrics.MenuEdited()
	}
	e.logger.Info("Edited daily menu in place",
		zap.String("menu_id", m.ID().String()),
		zap.String("status", string(m.Status())),
	)
	publishEvents(ctx, e.publisher, e.logger, m)
	return m, nil
}

// fork archives the suggestion, stores the edited copy and repoints every
// plan that referenced the suggestion, all in one unit of work.
func (e *Editor) fork(ctx context.Context, original *menu.DailyMenu, change Change, items []menu.Item, totals nutrition.Nutrients) (*menu.DailyMenu, error) {
	var (
		clone   *menu.DailyMenu
		touched []eventSource
	)
	err := e.uow.Do(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		c, err := original.Fork()
		if err != nil {
			return translate(err)
		}
		if err := c.ReplaceItems(items, totals); err != nil {
			return translate(err)
		}
		if change.Feedback != nil {
			if err := c.SetFeedback(*change.Feedback); err != nil {
				return translate(err)
			}
		}

		if err := repos.Menus.Save(ctx, original); err != nil {
			return saveError(err)
		}
		if err := repos.Menus.Create(ctx, c); err != nil {
			return errors.NewDatabaseError("create edited menu", err)
		}

		plans, err := repos.Plans.FindByDailyMenuID(ctx, original.ID())
		if err != nil {
			return errors.NewDatabaseError("find plans referencing menu", err)
		}
		for _, p := range plans {
			if !p.ReplaceMenu(original.ID(), c.ID()) {
				continue
			}
			if err := repos.Plans.Save(ctx, p); err != nil {
				return errors.NewDatabaseError("repoint meal plan", err)
			}
			touched = append(touched, p)
		}
		clone = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.MenuForked()
	e.logger.Info("Forked suggestion on edit",
		zap.String("original_menu_id", original.ID().String()),
		zap.String("menu_id", clone.ID().String()),
		zap.Int("plans_repointed", len(touched)),
	)
	publishEvents(ctx, e.publisher, e.logger, append([]eventSource{original, clone}, touched...)...)
	return clone, nil
}

// SetItemStatus records consumption of one item. Only menus dated between
// the freeze window and today accept the change; totals are not recomputed.
func (e *Editor) SetItemStatus(ctx context.Context, m *menu.DailyMenu, itemID uuid.UUID, status menu.ItemStatus) (*menu.DailyMenu, error) {
	if m.IsArchived() {
		return nil, errors.NewResourceStateError("archived menus cannot be modified")
	}

	if err := e.checkWindow(m); err != nil {
		return nil, err
	}

	if err := m.SetItemStatus(itemID, status); err != nil {
		if stderrors.Is(err, menu.ErrItemNotFound) {
			return nil, errors.NewItemNotFoundError(itemID.String())
		}
		return nil, translate(err)
	}
	if err := e.menus.Save(ctx, m); err != nil {
		return nil, saveError(err)
	}

	publishEvents(ctx, e.publisher, e.logger, m)
	return m, nil
}

// checkWindow guards any change to item consumption status, including
// dropping an item already marked eaten or deleted.
func (e *Editor) checkWindow(m *menu.DailyMenu) error {
	today := shared.Day(e.clock())
	err := menu.CheckConsumptionWindow(m.Date(), today, e.cfg.FreezeWindowDays)
	if err == nil {
		return nil
	}
	reason := "future"
	if stderrors.Is(err, menu.ErrConsumptionFrozen) {
		reason = "frozen"
	}
	e.metrics.ItemStatusRejected(reason)
	e.logger.Info("Rejected item status change",
		zap.String("menu_id", m.ID().String()),
		zap.String("menu_date", m.Date().Format(shared.DateLayout)),
		zap.String("reason", reason),
	)
	return translate(err)
}

func touchedByFeedback(s menu.Status) bool {
	return s == menu.StatusSelected || s == menu.StatusPlanned
}

func (e *Editor) findLive(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error) {
	m, err := e.menus.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("find daily menu", err)
	}
	return m, nil
}
