package menu

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// maxListDays bounds the date range ListMenus accepts
const maxListDays = 366

// UsageConfig sets the history window used to discourage repeated suggestions
type UsageConfig struct {
	WindowDays int
	RecentDays int
}

// DefaultUsageConfig returns a 14 day history with a 3 day recency window
func DefaultUsageConfig() UsageConfig {
	return UsageConfig{WindowDays: 14, RecentDays: 3}
}

// Service implements the daily menu use cases
type Service struct {
	engine  *SuggestionEngine
	editor  *Editor
	menus   outbound.DailyMenuRepository
	recipes outbound.RecipeRepository
	usage   UsageConfig
	tracer  trace.Tracer
	logger  *zap.Logger
}

// NewService creates a new menu service
func NewService(
	engine *SuggestionEngine,
	editor *Editor,
	menus outbound.DailyMenuRepository,
	recipes outbound.RecipeRepository,
	usage UsageConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		engine:  engine,
		editor:  editor,
		menus:   menus,
		recipes: recipes,
		usage:   usage,
		tracer:  otel.Tracer("nutriplan/menu"),
		logger:  logger.Named("menu-service"),
	}
}

var _ inbound.MenuService = (*Service)(nil)

// SuggestDailyMenu generates the AI menu for a date
func (s *Service) SuggestDailyMenu(ctx context.Context, cmd inbound.SuggestMenuCommand) (dto *inbound.DailyMenuDTO, err error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.SuggestDailyMenu")
	defer func() { endSpan(span, err) }()

	if err := validateOwnerAndDate(cmd.UserID, cmd.Date); err != nil {
		return nil, err
	}
	m, err := s.SuggestMenu(ctx, cmd.UserID, cmd.Date)
	if err != nil {
		return nil, err
	}
	return ToDTO(m), nil
}

// SuggestMenu generates the AI menu for a date using the user's recent history
func (s *Service) SuggestMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error) {
	day := shared.Day(date)
	usage, err := s.loadUsage(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	return s.engine.Suggest(ctx, userID, day, usage)
}

// StoreSuggestedMenu stores caller-supplied content as the AI suggestion for a date
func (s *Service) StoreSuggestedMenu(ctx context.Context, userID uuid.UUID, date time.Time, inputs []inbound.MenuItemInput) (*menu.DailyMenu, error) {
	items, err := s.buildItems(ctx, inputs)
	if err != nil {
		return nil, err
	}
	items, err = menu.ReconcileItems(nil, items)
	if err != nil {
		return nil, translate(err)
	}
	return s.engine.Store(ctx, userID, shared.Day(date), items)
}

// EnsureMenu returns the live menu for a date, creating an empty one if needed
func (s *Service) EnsureMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error) {
	return s.editor.Ensure(ctx, userID, shared.Day(date))
}

// CreateOrUpdateDailyMenu sets the full item list of a date's menu
func (s *Service) CreateOrUpdateDailyMenu(ctx context.Context, cmd inbound.CreateOrUpdateMenuCommand) (dto *inbound.DailyMenuDTO, err error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.CreateOrUpdateDailyMenu")
	defer func() { endSpan(span, err) }()

	if err := validateOwnerAndDate(cmd.UserID, cmd.Date); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}
	m, err := s.editor.CreateOrReplace(ctx, cmd.UserID, shared.Day(cmd.Date), items)
	if err != nil {
		return nil, err
	}
	return ToDTO(m), nil
}

// AddRecipeToMenu appends a recipe to a date's menu
func (s *Service) AddRecipeToMenu(ctx context.Context, cmd inbound.AddRecipeCommand) (dto *inbound.DailyMenuDTO, err error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.AddRecipeToMenu")
	defer func() { endSpan(span, err) }()

	if err := validateOwnerAndDate(cmd.UserID, cmd.Date); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, []inbound.MenuItemInput{cmd.Item})
	if err != nil {
		return nil, err
	}
	m, err := s.editor.Append(ctx, cmd.UserID, shared.Day(cmd.Date), items[0])
	if err != nil {
		return nil, err
	}
	return ToDTO(m), nil
}

// SetItemStatus marks a menu item planned, eaten or deleted
func (s *Service) SetItemStatus(ctx context.Context, cmd inbound.SetItemStatusCommand) (dto *inbound.DailyMenuDTO, err error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.SetItemStatus")
	defer func() { endSpan(span, err) }()

	status, err := menu.ParseItemStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("status must be one of planned, eaten or deleted")
	}
	m, err := s.loadOwned(ctx, cmd.UserID, cmd.MenuID)
	if err != nil {
		return nil, err
	}
	m, err = s.editor.SetItemStatus(ctx, m, cmd.ItemID, status)
	if err != nil {
		return nil, err
	}
	return ToDTO(m), nil
}

// EditMenu changes an existing menu's items and/or feedback
func (s *Service) EditMenu(ctx context.Context, cmd inbound.EditMenuCommand) (dto *inbound.DailyMenuDTO, err error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.EditMenu")
	defer func() { endSpan(span, err) }()

	m, err := s.loadOwned(ctx, cmd.UserID, cmd.MenuID)
	if err != nil {
		return nil, err
	}

	change := Change{Feedback: cmd.Feedback}
	if cmd.Items != nil {
		items, err := s.buildItems(ctx, *cmd.Items)
		if err != nil {
			return nil, err
		}
		change.Items = &items
	}

	m, err = s.editor.Edit(ctx, m, change)
	if err != nil {
		return nil, err
	}
	return ToDTO(m), nil
}

// SubmitFeedback stores free-text feedback on a menu
func (s *Service) SubmitFeedback(ctx context.Context, cmd inbound.SubmitFeedbackCommand) (*inbound.DailyMenuDTO, error) {
	feedback := cmd.Feedback
	return s.EditMenu(ctx, inbound.EditMenuCommand{
		UserID:   cmd.UserID,
		MenuID:   cmd.MenuID,
		Feedback: &feedback,
	})
}

// GetMenu returns one of the user's menus, archived ones included
func (s *Service) GetMenu(ctx context.Context, userID, menuID uuid.UUID) (*inbound.DailyMenuDTO, error) {
	m, err := s.loadOwned(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}
	return ToDTO(m), nil
}

// ListMenus lists the user's menus in an inclusive date range
func (s *Service) ListMenus(ctx context.Context, query inbound.ListMenusQuery) (dtos []*inbound.DailyMenuDTO, err error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.ListMenus")
	defer func() { endSpan(span, err) }()

	if query.UserID == uuid.Nil {
		return nil, errors.NewValidationError("user is required")
	}
	if query.Start.IsZero() || query.End.IsZero() {
		return nil, errors.NewValidationError("start and end dates are required")
	}
	start, end := shared.Day(query.Start), shared.Day(query.End)
	if end.Before(start) {
		return nil, errors.NewValidationError("end date must not be before start date")
	}
	if end.Sub(start) > maxListDays*24*time.Hour {
		return nil, errors.NewValidationError("date range must not exceed one year")
	}

	var status *menu.Status
	if query.Status != nil {
		parsed, err := menu.ParseStatus(*query.Status)
		if err != nil {
			return nil, errors.NewValidationError("unknown menu status " + *query.Status)
		}
		status = &parsed
	}

	menus, err := s.menus.FindByUserAndDateRange(ctx, query.UserID, start, end, status)
	if err != nil {
		return nil, errors.NewDatabaseError("list daily menus", err)
	}
	dtos = make([]*inbound.DailyMenuDTO, 0, len(menus))
	for _, m := range menus {
		dtos = append(dtos, ToDTO(m))
	}
	return dtos, nil
}

func (s *Service) loadOwned(ctx context.Context, userID, menuID uuid.UUID) (*menu.DailyMenu, error) {
	m, err := s.menus.FindByID(ctx, menuID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewMenuNotFoundError(menuID.String())
		}
		return nil, errors.NewDatabaseError("find daily menu", err)
	}
	if m.UserID() != userID {
		return nil, errors.NewMenuNotFoundError(menuID.String())
	}
	return m, nil
}

func (s *Service) loadUsage(ctx context.Context, userID uuid.UUID, day time.Time) (menu.UsageStats, error) {
	history, err := s.menus.FindByUserAndDateRange(ctx, userID,
		shared.AddDays(day, -s.usage.WindowDays), shared.AddDays(day, -1), nil)
	if err != nil {
		return menu.UsageStats{}, errors.NewDatabaseError("load menu history", err)
	}
	return menu.BuildUsageStats(history, day, s.usage.RecentDays), nil
}

// buildItems validates inputs and checks every referenced recipe exists
func (s *Service) buildItems(ctx context.Context, inputs []inbound.MenuItemInput) ([]menu.Item, error) {
	items := make([]menu.Item, 0, len(inputs))
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		servingTime, err := menu.ParseServingTime(in.ServingTime)
		if err != nil {
			return nil, errors.NewValidationError("serving_time must be one of breakfast, lunch, dinner or other")
		}
		item, err := menu.NewItem(in.RecipeID, in.Portion, in.Note, servingTime)
		if err != nil {
			return nil, translate(err)
		}
		// Identity is settled against the target menu by the editor
		item.ID = uuid.Nil
		if in.ID != nil {
			item.ID = *in.ID
		}
		items = append(items, item)
		ids = append(ids, in.RecipeID)
	}
	if len(ids) == 0 {
		return items, nil
	}

	found, err := s.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("load recipes", err)
	}
	known := make(map[uuid.UUID]struct{}, len(found))
	for _, r := range found {
		known[r.ID()] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, errors.NewRecipeNotFoundError(id.String())
		}
	}
	return items, nil
}

func validateOwnerAndDate(userID uuid.UUID, date time.Time) error {
	if userID == uuid.Nil {
		return errors.NewValidationError("user is required")
	}
	if date.IsZero() {
		return errors.NewValidationError("date is required")
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
