// Package plan holds the meal plan aggregate, a dated group of daily menus
package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/shared"
)

// MealPlan groups the daily menus covering a day or a week
type MealPlan struct {
	shared.AggregateRoot

	id           uuid.UUID
	userID       uuid.UUID
	startDate    time.Time
	endDate      time.Time
	period       Period
	dailyMenuIDs []uuid.UUID
	source       shared.Source
	status       Status
	modified     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// Snapshot is the flat form of a MealPlan used by persistence adapters
type Snapshot struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	Period       Period
	DailyMenuIDs []uuid.UUID
	Source       shared.Source
	Status       Status
	Modified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Dates enumerates the calendar days a plan starting at start covers
func Dates(start time.Time, period Period) []time.Time {
	days := make([]time.Time, period.Days())
	for i := range days {
		days[i] = shared.AddDays(start, i)
	}
	return days
}

// NewMealPlan creates a plan over the given menus. Plans carrying any
// generated content start as AI suggestions; otherwise they start planned.
func NewMealPlan(userID uuid.UUID, start time.Time, period Period, menuIDs []uuid.UUID, aiAuthored bool) (*MealPlan, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingPlanOwner
	}
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}
	if len(menuIDs) == 0 {
		return nil, ErrNoMenus
	}

	status, source := StatusPlanned, shared.SourceUser
	if aiAuthored {
		status, source = StatusSuggested, shared.SourceAI
	}

	now := time.Now()
	startDay := shared.Day(start)
	p := &MealPlan{
		id:           uuid.New(),
		userID:       userID,
		startDate:    startDay,
		endDate:      shared.AddDays(startDay, period.Days()-1),
		period:       period,
		dailyMenuIDs: append([]uuid.UUID(nil), menuIDs...),
		source:       source,
		status:       status,
		createdAt:    now,
		updatedAt:    now,
	}
	p.AddEvent(PlanCreatedEvent{PlanID: p.id, UserID: userID, Status: status, CreatedAt: now})
	return p, nil
}

// Restore rebuilds a plan from persisted state without raising events
func Restore(s Snapshot) *MealPlan {
	return &MealPlan{
		id:           s.ID,
		userID:       s.UserID,
		startDate:    shared.Day(s.StartDate),
		endDate:      shared.Day(s.EndDate),
		period:       s.Period,
		dailyMenuIDs: append([]uuid.UUID(nil), s.DailyMenuIDs...),
		source:       s.Source,
		status:       s.Status,
		modified:     s.Modified,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}

// Snapshot returns the plan's state as a plain value
func (p *MealPlan) Snapshot() Snapshot {
	return Snapshot{
		ID:           p.id,
		UserID:       p.userID,
		StartDate:    p.startDate,
		EndDate:      p.endDate,
		Period:       p.period,
		DailyMenuIDs: p.DailyMenuIDs(),
		Source:       p.source,
		Status:       p.status,
		Modified:     p.modified,
		CreatedAt:    p.createdAt,
		UpdatedAt:    p.updatedAt,
	}
}

// TransitionTo moves the plan to status. Completed and cancelled plans are final.
func (p *MealPlan) TransitionTo(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if p.status.Terminal() {
		return ErrTerminalStatus
	}
	from := p.status
	p.status = status
	p.updatedAt = time.Now()
	p.AddEvent(PlanStatusChangedEvent{PlanID: p.id, From: from, To: status, ChangedAt: p.updatedAt})
	return nil
}

// CanDelete reports whether the plan may be removed
func (p *MealPlan) CanDelete() error {
	if p.status != StatusSuggested {
		return ErrNotDeletable
	}
	return nil
}

// ReplaceMenu swaps a referenced menu for another and marks the plan modified.
// It reports whether the plan referenced oldID.
func (p *MealPlan) ReplaceMenu(oldID, newID uuid.UUID) bool {
	replaced := false
	for i, id := range p.dailyMenuIDs {
		if id == oldID {
			p.dailyMenuIDs[i] = newID
			replaced = true
		}
	}
	if replaced {
		p.modified = true
		p.updatedAt = time.Now()
		p.AddEvent(PlanMenuReplacedEvent{PlanID: p.id, OldMenuID: oldID, NewMenuID: newID, ReplacedAt: p.updatedAt})
	}
	return replaced
}

// References reports whether the plan includes the menu
func (p *MealPlan) References(menuID uuid.UUID) bool {
	for _, id := range p.dailyMenuIDs {
		if id == menuID {
			return true
		}
	}
	return false
}

// Getters

func (p *MealPlan) ID() uuid.UUID         { return p.id }
func (p *MealPlan) UserID() uuid.UUID     { return p.userID }
func (p *MealPlan) StartDate() time.Time  { return p.startDate }
func (p *MealPlan) EndDate() time.Time    { return p.endDate }
func (p *MealPlan) Period() Period        { return p.period }
func (p *MealPlan) Source() shared.Source { return p.source }
func (p *MealPlan) Status() Status        { return p.status }
func (p *MealPlan) Modified() bool        { return p.modified }
func (p *MealPlan) CreatedAt() time.Time  { return p.createdAt }
func (p *MealPlan) UpdatedAt() time.Time  { return p.updatedAt }

// DailyMenuIDs returns a copy of the referenced menu IDs
func (p *MealPlan) DailyMenuIDs() []uuid.UUID {
	return append([]uuid.UUID(nil), p.dailyMenuIDs...)
}
