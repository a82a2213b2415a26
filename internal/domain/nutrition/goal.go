package nutrition

import (
	"time"

	"github.com/google/uuid"
)

// Period is the span a goal's target covers
type Period string

const (
	PeriodDay    Period = "day"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodCustom Period = "custom"
)

// Valid reports whether p is a known period
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodCustom:
		return true
	}
	return false
}

// ParsePeriod converts a raw string into a Period
func ParsePeriod(raw string) (Period, error) {
	p := Period(raw)
	if !p.Valid() {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

// Days returns how many days the period spans. Custom periods use
// periodValue and fall back to a single day when it is not positive.
func (p Period) Days(periodValue int) int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodCustom:
		if periodValue > 0 {
			return periodValue
		}
		return 1
	default:
		return 1
	}
}

// Goal is a user's nutrition target over a period
type Goal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Target      Nutrients
	Period      Period
	PeriodValue int
	Active      bool
	CreatedAt   time.Time
}

// NewGoal creates an active goal
func NewGoal(userID uuid.UUID, target Nutrients, period Period, periodValue int) (*Goal, error) {
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Target:      target,
		Period:      period,
		PeriodValue: periodValue,
		Active:      true,
		CreatedAt:   time.Now(),
	}, nil
}

// DailyTarget spreads the goal's target evenly over the days of its period
func (g *Goal) DailyTarget() Nutrients {
	return g.Target.Divide(float64(g.Period.Days(g.PeriodValue)))
}
