// Package nutrition resolves daily nutrition targets and sums menu nutrition
package nutrition

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// TargetResolver derives a user's per-day nutrition target
type TargetResolver struct {
	profiles outbound.UserProfileRepository
	goals    outbound.NutritionGoalRepository
	defaults nutrition.Defaults
	logger   *zap.Logger
}

// NewTargetResolver creates a resolver falling back to defaults when a user has no goal
func NewTargetResolver(
	profiles outbound.UserProfileRepository,
	goals outbound.NutritionGoalRepository,
	defaults nutrition.Defaults,
	logger *zap.Logger,
) *TargetResolver {
	return &TargetResolver{
		profiles: profiles,
		goals:    goals,
		defaults: defaults,
		logger:   logger.Named("target-resolver"),
	}
}

// Resolve returns the daily target from the user's latest active goal, or the
// fallback target. Store failures are logged and answered with the fallback.
func (r *TargetResolver) Resolve(ctx context.Context, userID uuid.UUID) nutrition.Nutrients {
	log := r.logger.With(zap.String("user_id", userID.String()))

	if _, err := r.profiles.FindByID(ctx, userID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			log.Debug("No profile for user")
		} else {
			log.Warn("Failed to load profile", zap.Error(err))
		}
	}

	goal, err := r.goals.FindActiveLatest(ctx, userID)
	switch {
	case err == nil && goal != nil:
		target := goal.DailyTarget()
		log.Debug("Resolved target from goal",
			zap.String("goal_id", goal.ID.String()),
			zap.String("period", string(goal.Period)),
			zap.Float64("calories", target.Calories),
		)
		return target
	case err == nil, errors.Is(err, outbound.ErrNotFound):
		log.Debug("No active goal, using default target")
	default:
		log.Warn("Failed to load goal, using default target", zap.Error(err))
	}

	return r.defaults.Target()
}
