package plan

import (
	"time"

	"github.com/google/uuid"
)

// PlanCreatedEvent is raised when a meal plan is created
type PlanCreatedEvent struct {
	PlanID    uuid.UUID
	UserID    uuid.UUID
	Status    Status
	CreatedAt time.Time
}

func (e PlanCreatedEvent) EventName() string     { return "plan.created" }
func (e PlanCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// PlanStatusChangedEvent is raised on every status transition
type PlanStatusChangedEvent struct {
	PlanID    uuid.UUID
	From      Status
	To        Status
	ChangedAt time.Time
}

func (e PlanStatusChangedEvent) EventName() string     { return "plan.status_changed" }
func (e PlanStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// PlanMenuReplacedEvent is raised when a referenced menu is swapped for its edited clone
type PlanMenuReplacedEvent struct {
	PlanID     uuid.UUID
	OldMenuID  uuid.UUID
	NewMenuID  uuid.UUID
	ReplacedAt time.Time
}

func (e PlanMenuReplacedEvent) EventName() string     { return "plan.menu_replaced" }
func (e PlanMenuReplacedEvent) OccurredAt() time.Time { return e.ReplacedAt }
