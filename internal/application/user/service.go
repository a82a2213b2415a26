// Package user provides the application layer for diet profiles and nutrition goals
package user

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/user"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

const profileCacheTTL = 10 * time.Minute

// TargetResolver yields a user's daily nutrition target
type TargetResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) nutrition.Nutrients
}

// ProfileService implements profile and goal management
type ProfileService struct {
	profiles outbound.UserProfileRepository
	goals    outbound.NutritionGoalRepository
	resolver TargetResolver
	cache    outbound.CacheRepository
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	profiles outbound.UserProfileRepository,
	goals outbound.NutritionGoalRepository,
	resolver TargetResolver,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		goals:    goals,
		resolver: resolver,
		cache:    cache,
		logger:   logger.Named("profile-service"),
	}
}

var _ inbound.ProfileService = (*ProfileService)(nil)

// SaveProfile creates or replaces the user's profile
func (s *ProfileService) SaveProfile(ctx context.Context, cmd inbound.SaveProfileCommand) (*inbound.ProfileDTO, error) {
	if cmd.UserID == uuid.Nil {
		return nil, errors.NewValidationError("user is required")
	}

	profile, err := user.NewProfile(cmd.UserID, cmd.Age, user.Gender(cmd.Gender), cmd.HeightCM, cmd.WeightKG, cmd.Goal, cmd.BannedIngredients)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, errors.NewDatabaseError("save profile", err)
	}
	s.invalidateProfileCache(ctx, cmd.UserID)

	s.logger.Info("Profile saved",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("banned_ingredients", len(profile.BannedIngredients)),
	)

	return profileToDTO(profile), nil
}

// GetProfile retrieves the user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*inbound.ProfileDTO, error) {
	if dto, ok := s.cachedProfile(ctx, userID); ok {
		return dto, nil
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewNotFoundError("Profile")
		}
		return nil, errors.NewDatabaseError("find profile", err)
	}

	dto := profileToDTO(profile)
	s.cacheProfile(ctx, dto)
	return dto, nil
}

// SetGoal records a new active goal; the newest active goal drives targets
func (s *ProfileService) SetGoal(ctx context.Context, cmd inbound.SetGoalCommand) (*inbound.GoalDTO, error) {
	if cmd.UserID == uuid.Nil {
		return nil, errors.NewValidationError("user is required")
	}
	period, err := nutrition.ParsePeriod(cmd.Period)
	if err != nil {
		return nil, errors.NewValidationError("period must be one of day, week, month or custom")
	}

	goal, err := nutrition.NewGoal(cmd.UserID, cmd.Target, period, cmd.PeriodValue)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, errors.NewDatabaseError("create nutrition goal", err)
	}

	s.logger.Info("Nutrition goal set",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("goal_id", goal.ID.String()),
		zap.String("period", string(period)),
	)

	return &inbound.GoalDTO{
		ID:          goal.ID,
		Target:      goal.Target,
		DailyTarget: goal.DailyTarget().Round(2),
		Period:      string(goal.Period),
		PeriodValue: goal.PeriodValue,
		Active:      goal.Active,
		CreatedAt:   goal.CreatedAt,
	}, nil
}

// GetDailyTarget returns the per-day target the planner uses for the user
func (s *ProfileService) GetDailyTarget(ctx context.Context, userID uuid.UUID) (nutrition.Nutrients, error) {
	if userID == uuid.Nil {
		return nutrition.Nutrients{}, errors.NewValidationError("user is required")
	}
	return s.resolver.Resolve(ctx, userID).Round(2), nil
}

func profileCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("profile:%s", userID)
}

func (s *ProfileService) cachedProfile(ctx context.Context, userID uuid.UUID) (*inbound.ProfileDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, profileCacheKey(userID))
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			s.logger.Warn("Profile cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var dto inbound.ProfileDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		s.logger.Warn("Discarding corrupt cached profile", zap.Error(err))
		return nil, false
	}
	return &dto, true
}

func (s *ProfileService) cacheProfile(ctx context.Context, dto *inbound.ProfileDTO) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, profileCacheKey(dto.UserID), data, profileCacheTTL); err != nil {
		s.logger.Warn("Profile cache write failed", zap.Error(err))
	}
}

func (s *ProfileService) invalidateProfileCache(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, profileCacheKey(userID)); err != nil {
		s.logger.Warn("Profile cache invalidation failed", zap.Error(err))
	}
}

func profileToDTO(p *user.Profile) *inbound.ProfileDTO {
	banned := p.Banned()
	if banned == nil {
		banned = []string{}
	}
	return &inbound.ProfileDTO{
		UserID:            p.ID,
		Age:               p.Age,
		Gender:            string(p.Gender),
		HeightCM:          p.HeightCM,
		WeightKG:          p.WeightKG,
		Goal:              p.Goal,
		BannedIngredients: banned,
	}
}
