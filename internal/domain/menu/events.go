package menu

import (
	"time"

	"github.com/google/uuid"
)

// MenuCreatedEvent is raised when a user builds a menu for a new date
type MenuCreatedEvent struct {
	MenuID    uuid.UUID
	UserID    uuid.UUID
	Date      time.Time
	CreatedAt time.Time
}

func (e MenuCreatedEvent) EventName() string     { return "menu.created" }
func (e MenuCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// MenuSuggestedEvent is raised when generated content is written to a menu
type MenuSuggestedEvent struct {
	MenuID      uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	ItemCount   int
	SuggestedAt time.Time
}

func (e MenuSuggestedEvent) EventName() string     { return "menu.suggested" }
func (e MenuSuggestedEvent) OccurredAt() time.Time { return e.SuggestedAt }

// MenuForkedEvent is raised when editing a suggestion produces a clone
type MenuForkedEvent struct {
	OriginalID uuid.UUID
	CloneID    uuid.UUID
	UserID     uuid.UUID
	ForkedAt   time.Time
}

func (e MenuForkedEvent) EventName() string     { return "menu.forked" }
func (e MenuForkedEvent) OccurredAt() time.Time { return e.ForkedAt }

// MenuEditedEvent is raised when a menu's content changes in place
type MenuEditedEvent struct {
	MenuID   uuid.UUID
	EditedAt time.Time
}

func (e MenuEditedEvent) EventName() string     { return "menu.edited" }
func (e MenuEditedEvent) OccurredAt() time.Time { return e.EditedAt }

// MenuArchivedEvent is raised when a suggestion is superseded
type MenuArchivedEvent struct {
	MenuID     uuid.UUID
	ArchivedAt time.Time
}

func (e MenuArchivedEvent) EventName() string     { return "menu.archived" }
func (e MenuArchivedEvent) OccurredAt() time.Time { return e.ArchivedAt }

// ItemStatusChangedEvent is raised when an item is marked eaten or deleted
type ItemStatusChangedEvent struct {
	MenuID    uuid.UUID
	ItemID    uuid.UUID
	OldStatus ItemStatus
	NewStatus ItemStatus
	ChangedAt time.Time
}

func (e ItemStatusChangedEvent) EventName() string     { return "menu.item.status_changed" }
func (e ItemStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }
