// Package plan coordinates day and week meal plans over daily menus
package plan

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// MenuProvider produces the daily menus a plan references
type MenuProvider interface {
	SuggestMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error)
	StoreSuggestedMenu(ctx context.Context, userID uuid.UUID, date time.Time, items []inbound.MenuItemInput) (*menu.DailyMenu, error)
	EnsureMenu(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error)
}

// Orchestrator implements the meal plan use cases
type Orchestrator struct {
	menus     MenuProvider
	plans     outbound.MealPlanRepository
	uow       outbound.UnitOfWork
	metrics   outbound.MetricsRecorder
	publisher outbound.EventPublisher
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewOrchestrator creates a new plan orchestrator
func NewOrchestrator(
	menus MenuProvider,
	plans outbound.MealPlanRepository,
	uow outbound.UnitOfWork,
	metrics outbound.MetricsRecorder,
	publisher outbound.EventPublisher,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		menus:     menus,
		plans:     plans,
		uow:       uow,
		metrics:   metrics,
		publisher: publisher,
		tracer:    otel.Tracer("nutriplan/plan"),
		logger:    logger.Named("plan-orchestrator"),
	}
}

var _ inbound.PlanService = (*Orchestrator)(nil)

// CreatePlan builds one menu per covered day and a plan referencing them.
// Days with supplied content get that content as a suggestion; with UseAI the
// remaining days are generated; otherwise an empty planned menu is used.
func (o *Orchestrator) CreatePlan(ctx context.Context, cmd inbound.CreatePlanCommand) (dto *inbound.MealPlanDTO, err error) {
	ctx, span := o.tracer.Start(ctx, "PlanService.CreatePlan")
	defer func() { endSpan(span, err) }()

	if cmd.UserID == uuid.Nil {
		return nil, errors.NewValidationError("user is required")
	}
	if cmd.StartDate.IsZero() {
		return nil, errors.NewValidationError("start_date is required")
	}
	period, err := plan.ParsePeriod(cmd.Period)
	if err != nil {
		return nil, errors.NewValidationError("period must be day or week")
	}
	dates := plan.Dates(cmd.StartDate, period)
	for offset := range cmd.PerDayRecipes {
		if offset < 0 || offset >= len(dates) {
			return nil, errors.NewValidationError(fmt.Sprintf("day offset %d is outside the %s plan", offset, period))
		}
	}

	log := o.logger.With(
		zap.String("user_id", cmd.UserID.String()),
		zap.String("start_date", dates[0].Format(shared.DateLayout)),
		zap.String("period", string(period)),
	)

	menuIDs := make([]uuid.UUID, 0, len(dates))
	aiAuthored := false
	for offset, date := range dates {
		var m *menu.DailyMenu
		content, supplied := cmd.PerDayRecipes[offset]
		switch {
		case supplied && len(content) > 0:
			m, err = o.menus.StoreSuggestedMenu(ctx, cmd.UserID, date, content)
			aiAuthored = true
		case cmd.UseAI:
			m, err = o.menus.SuggestMenu(ctx, cmd.UserID, date)
			aiAuthored = true
		default:
			m, err = o.menus.EnsureMenu(ctx, cmd.UserID, date)
		}
		if err != nil {
			log.Warn("Failed to prepare plan day", zap.Int("offset", offset), zap.Error(err))
			return nil, err
		}
		menuIDs = append(menuIDs, m.ID())
	}

	p, err := plan.NewMealPlan(cmd.UserID, dates[0], period, menuIDs, aiAuthored)
	if err != nil {
		return nil, translate(err)
	}
	if err := o.plans.Create(ctx, p); err != nil {
		return nil, errors.NewDatabaseError("create meal plan", err)
	}

	log.Info("Created meal plan",
		zap.String("plan_id", p.ID().String()),
		zap.String("status", string(p.Status())),
		zap.Int("menus", len(menuIDs)),
	)
	o.publish(ctx, p)
	return ToDTO(p), nil
}

// UpdatePlanStatus moves a plan to a new status. Confirming a plan as planned
// cancels every other suggested plan the user has.
func (o *Orchestrator) UpdatePlanStatus(ctx context.Context, cmd inbound.UpdatePlanStatusCommand) (dto *inbound.MealPlanDTO, err error) {
	ctx, span := o.tracer.Start(ctx, "PlanService.UpdatePlanStatus")
	defer func() { endSpan(span, err) }()

	status, err := plan.ParseStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("status must be one of suggested, planned, completed or cancelled")
	}

	var (
		updated   *plan.MealPlan
		from      plan.Status
		cancelled int64
	)
	err = o.uow.Do(ctx, func(ctx context.Context, repos outbound.Repositories) error {
		p, err := loadOwned(ctx, repos.Plans, cmd.UserID, cmd.PlanID)
		if err != nil {
			return err
		}
		from = p.Status()
		if err := p.TransitionTo(status); err != nil {
			return translate(err)
		}
		if err := repos.Plans.Save(ctx, p); err != nil {
			return errors.NewDatabaseError("save meal plan", err)
		}
		if status == plan.StatusPlanned {
			n, err := repos.Plans.CancelAllSuggestedExcept(ctx, p.UserID(), p.ID())
			if err != nil {
				return errors.NewDatabaseError("cancel suggested meal plans", err)
			}
			cancelled = n
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.metrics.PlanTransition(string(from), string(status))
	if cancelled > 0 {
		o.metrics.PlansCancelled(cancelled)
		// Cancellation is not scoped to overlapping dates
		o.logger.Warn("Cancelled other suggested meal plans",
			zap.String("user_id", updated.UserID().String()),
			zap.String("kept_plan_id", updated.ID().String()),
			zap.Int64("cancelled", cancelled),
		)
	}
	o.logger.Info("Updated meal plan status",
		zap.String("plan_id", updated.ID().String()),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	o.publish(ctx, updated)
	return ToDTO(updated), nil
}

// DeletePlan removes a plan that is still a suggestion
func (o *Orchestrator) DeletePlan(ctx context.Context, userID, planID uuid.UUID) (err error) {
	ctx, span := o.tracer.Start(ctx, "PlanService.DeletePlan")
	defer func() { endSpan(span, err) }()

	p, err := loadOwned(ctx, o.plans, userID, planID)
	if err != nil {
		return err
	}
	if err := p.CanDelete(); err != nil {
		return translate(err)
	}

	deleted, err := o.plans.DeleteIfSuggested(ctx, userID, planID)
	if err != nil {
		return errors.NewDatabaseError("delete meal plan", err)
	}
	if !deleted {
		// Status changed between the read and the delete
		return errors.NewResourceStateError(plan.ErrNotDeletable.Error())
	}

	o.logger.Info("Deleted meal plan", zap.String("plan_id", planID.String()), zap.String("user_id", userID.String()))
	return nil
}

// GetPlan returns one of the user's plans
func (o *Orchestrator) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*inbound.MealPlanDTO, error) {
	p, err := loadOwned(ctx, o.plans, userID, planID)
	if err != nil {
		return nil, err
	}
	return ToDTO(p), nil
}

// ListPlans returns the user's plans, newest first
func (o *Orchestrator) ListPlans(ctx context.Context, userID uuid.UUID) ([]*inbound.MealPlanDTO, error) {
	plans, err := o.plans.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list meal plans", err)
	}
	dtos := make([]*inbound.MealPlanDTO, 0, len(plans))
	for _, p := range plans {
		dtos = append(dtos, ToDTO(p))
	}
	return dtos, nil
}

func (o *Orchestrator) publish(ctx context.Context, p *plan.MealPlan) {
	events := p.Events()
	if len(events) == 0 {
		return
	}
	if err := o.publisher.Publish(ctx, events...); err != nil {
		o.logger.Warn("Failed to publish plan events", zap.String("plan_id", p.ID().String()), zap.Error(err))
	}
}

func loadOwned(ctx context.Context, plans outbound.MealPlanRepository, userID, planID uuid.UUID) (*plan.MealPlan, error) {
	p, err := plans.FindByID(ctx, planID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewPlanNotFoundError(planID.String())
		}
		return nil, errors.NewDatabaseError("find meal plan", err)
	}
	if p.UserID() != userID {
		return nil, errors.NewPlanNotFoundError(planID.String())
	}
	return p, nil
}

func translate(err error) error {
	switch {
	case stderrors.Is(err, plan.ErrTerminalStatus), stderrors.Is(err, plan.ErrNotDeletable):
		return errors.NewResourceStateError(err.Error()).WithCause(err)
	case stderrors.Is(err, plan.ErrInvalidStatus),
		stderrors.Is(err, plan.ErrInvalidPeriod),
		stderrors.Is(err, plan.ErrMissingPlanOwner),
		stderrors.Is(err, plan.ErrNoMenus):
		return errors.NewValidationError(err.Error())
	default:
		return errors.Wrap(err, "meal plan operation failed")
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
