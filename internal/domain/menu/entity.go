package menu

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/shared"
)

// DailyMenu is the set of recipes a user plans to eat on one calendar day
type DailyMenu struct {
	shared.AggregateRoot

	id             uuid.UUID
	userID         uuid.UUID
	date           time.Time
	items          []Item
	totalNutrition nutrition.Nutrients
	status         Status
	source         shared.Source
	originalMenuID *uuid.UUID
	feedback       string
	createdAt      time.Time
	updatedAt      time.Time
}

// Snapshot is the flat form of a DailyMenu used by persistence adapters
type Snapshot struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Date           time.Time
	Items          []Item
	TotalNutrition nutrition.Nutrients
	Status         Status
	Source         shared.Source
	OriginalMenuID *uuid.UUID
	Feedback       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func newMenu(userID uuid.UUID, date time.Time, items []Item, totals nutrition.Nutrients, status Status, source shared.Source) (*DailyMenu, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingMenuOwner
	}
	now := time.Now()
	return &DailyMenu{
		id:             uuid.New(),
		userID:         userID,
		date:           shared.Day(date),
		items:          copyItems(items),
		totalNutrition: totals,
		status:         status,
		source:         source,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// NewSelectedMenu creates a menu the user composed for a date that had none
func NewSelectedMenu(userID uuid.UUID, date time.Time, items []Item, totals nutrition.Nutrients) (*DailyMenu, error) {
	m, err := newMenu(userID, date, items, totals, StatusSelected, shared.SourceUser)
	if err != nil {
		return nil, err
	}
	m.AddEvent(MenuCreatedEvent{MenuID: m.id, UserID: userID, Date: m.date, CreatedAt: m.createdAt})
	return m, nil
}

// NewSuggestedMenu creates a menu holding generated content
func NewSuggestedMenu(userID uuid.UUID, date time.Time, items []Item, totals nutrition.Nutrients) (*DailyMenu, error) {
	m, err := newMenu(userID, date, items, totals, StatusSuggested, shared.SourceAI)
	if err != nil {
		return nil, err
	}
	m.AddEvent(MenuSuggestedEvent{MenuID: m.id, UserID: userID, Date: m.date, ItemCount: len(items), SuggestedAt: m.createdAt})
	return m, nil
}

// NewPlannedMenu creates an empty placeholder menu for a plan date
func NewPlannedMenu(userID uuid.UUID, date time.Time) (*DailyMenu, error) {
	return newMenu(userID, date, nil, nutrition.Nutrients{}, StatusPlanned, shared.SourceUser)
}

// Restore rebuilds a menu from persisted state without raising events
func Restore(s Snapshot) *DailyMenu {
	var original *uuid.UUID
	if s.OriginalMenuID != nil {
		id := *s.OriginalMenuID
		original = &id
	}
	return &DailyMenu{
		id:             s.ID,
		userID:         s.UserID,
		date:           shared.Day(s.Date),
		items:          copyItems(s.Items),
		totalNutrition: s.TotalNutrition,
		status:         s.Status,
		source:         s.Source,
		originalMenuID: original,
		feedback:       s.Feedback,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

// Snapshot returns the menu's state as a plain value
func (m *DailyMenu) Snapshot() Snapshot {
	return Snapshot{
		ID:             m.id,
		UserID:         m.userID,
		Date:           m.date,
		Items:          m.Items(),
		TotalNutrition: m.totalNutrition,
		Status:         m.status,
		Source:         m.source,
		OriginalMenuID: m.OriginalMenuID(),
		Feedback:       m.feedback,
		CreatedAt:      m.createdAt,
		UpdatedAt:      m.updatedAt,
	}
}

// Duplicate copies every field of m except identity and timestamps
func Duplicate(m *DailyMenu) *DailyMenu {
	s := m.Snapshot()
	now := time.Now()
	s.ID = uuid.New()
	s.CreatedAt = now
	s.UpdatedAt = now
	return Restore(s)
}

// RequiresCloneOnEdit reports whether a content change must fork this menu
// instead of modifying it.
func (m *DailyMenu) RequiresCloneOnEdit() bool {
	return m.status == StatusSuggested && m.source == shared.SourceAI
}

// Fork archives an AI suggestion and returns an edited copy pointing back at it.
// The caller applies the user's change to the returned copy.
func (m *DailyMenu) Fork() (*DailyMenu, error) {
	if !m.RequiresCloneOnEdit() {
		return nil, ErrNotASuggestion
	}
	clone := Duplicate(m)
	if err := m.Archive(); err != nil {
		return nil, err
	}
	original := m.id
	clone.status = StatusEdited
	clone.originalMenuID = &original
	clone.AddEvent(MenuForkedEvent{OriginalID: m.id, CloneID: clone.id, UserID: m.userID, ForkedAt: clone.createdAt})
	return clone, nil
}

// Archive freezes the menu; archived menus are never written again
func (m *DailyMenu) Archive() error {
	if m.IsArchived() {
		return ErrMenuArchived
	}
	m.status = StatusArchived
	m.touch()
	m.AddEvent(MenuArchivedEvent{MenuID: m.id, ArchivedAt: m.updatedAt})
	return nil
}

// ReplaceItems swaps the item list and its aggregated totals together
func (m *DailyMenu) ReplaceItems(items []Item, totals nutrition.Nutrients) error {
	if m.IsArchived() {
		return ErrMenuArchived
	}
	m.items = copyItems(items)
	m.totalNutrition = totals
	m.touch()
	return nil
}

// MarkEdited records a user change made after creation
func (m *DailyMenu) MarkEdited() error {
	if m.IsArchived() {
		return ErrMenuArchived
	}
	m.status = StatusEdited
	m.touch()
	m.AddEvent(MenuEditedEvent{MenuID: m.id, EditedAt: m.updatedAt})
	return nil
}

// OverwriteWithSuggestion replaces content with generated content, keeping identity
func (m *DailyMenu) OverwriteWithSuggestion(items []Item, totals nutrition.Nutrients) error {
	if err := m.ReplaceItems(items, totals); err != nil {
		return err
	}
	m.status = StatusSuggested
	m.source = shared.SourceAI
	m.AddEvent(MenuSuggestedEvent{MenuID: m.id, UserID: m.userID, Date: m.date, ItemCount: len(items), SuggestedAt: m.updatedAt})
	return nil
}

// SetFeedback stores the user's free-text feedback
func (m *DailyMenu) SetFeedback(feedback string) error {
	if m.IsArchived() {
		return ErrMenuArchived
	}
	m.feedback = feedback
	m.touch()
	return nil
}

// SetItemStatus changes one item's consumption status. Totals are left as is.
func (m *DailyMenu) SetItemStatus(itemID uuid.UUID, status ItemStatus) error {
	if m.IsArchived() {
		return ErrMenuArchived
	}
	if !status.Valid() {
		return ErrInvalidItemStatus
	}
	for i := range m.items {
		if m.items[i].ID != itemID {
			continue
		}
		old := m.items[i].Status
		m.items[i].Status = status
		m.touch()
		m.AddEvent(ItemStatusChangedEvent{MenuID: m.id, ItemID: itemID, OldStatus: old, NewStatus: status, ChangedAt: m.updatedAt})
		return nil
	}
	return ErrItemNotFound
}

// FindItem looks up an item by ID
func (m *DailyMenu) FindItem(itemID uuid.UUID) (Item, bool) {
	for _, it := range m.items {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

func (m *DailyMenu) touch() {
	m.updatedAt = time.Now()
}

func copyItems(items []Item) []Item {
	if len(items) == 0 {
		return []Item{}
	}
	return append([]Item(nil), items...)
}

// Getters

func (m *DailyMenu) ID() uuid.UUID                       { return m.id }
func (m *DailyMenu) UserID() uuid.UUID                   { return m.userID }
func (m *DailyMenu) Date() time.Time                     { return m.date }
func (m *DailyMenu) TotalNutrition() nutrition.Nutrients { return m.totalNutrition }
func (m *DailyMenu) Status() Status                      { return m.status }
func (m *DailyMenu) Source() shared.Source               { return m.source }
func (m *DailyMenu) Feedback() string                    { return m.feedback }
func (m *DailyMenu) CreatedAt() time.Time                { return m.createdAt }
func (m *DailyMenu) UpdatedAt() time.Time                { return m.updatedAt }
func (m *DailyMenu) IsArchived() bool                    { return m.status == StatusArchived }

// Items returns a copy of the menu's items
func (m *DailyMenu) Items() []Item {
	return copyItems(m.items)
}

// OriginalMenuID returns the suggestion this menu was forked from, if any
func (m *DailyMenu) OriginalMenuID() *uuid.UUID {
	if m.originalMenuID == nil {
		return nil
	}
	id := *m.originalMenuID
	return &id
}
