package menu

// Status is the lifecycle state of a daily menu. StatusArchived marks a
// superseded AI suggestion kept only for history.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusSelected  Status = "selected"
	StatusSuggested Status = "suggested"
	StatusCompleted Status = "completed"
	StatusDeleted   Status = "deleted"
	StatusEdited    Status = "edited"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusSelected, StatusSuggested, StatusCompleted,
		StatusDeleted, StatusEdited, StatusArchived:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ServingTime is the meal slot an item is eaten at
type ServingTime string

const (
	ServingBreakfast ServingTime = "breakfast"
	ServingLunch     ServingTime = "lunch"
	ServingDinner    ServingTime = "dinner"
	ServingOther     ServingTime = "other"
)

// Valid reports whether t is a known serving time
func (t ServingTime) Valid() bool {
	switch t {
	case ServingBreakfast, ServingLunch, ServingDinner, ServingOther:
		return true
	}
	return false
}

// ParseServingTime converts a raw string into a ServingTime; empty means other
func ParseServingTime(raw string) (ServingTime, error) {
	if raw == "" {
		return ServingOther, nil
	}
	t := ServingTime(raw)
	if !t.Valid() {
		return "", ErrInvalidServingTime
	}
	return t, nil
}

// ItemStatus tracks whether a menu item was consumed
type ItemStatus string

const (
	ItemPlanned ItemStatus = "planned"
	ItemEaten   ItemStatus = "eaten"
	ItemDeleted ItemStatus = "deleted"
)

// Valid reports whether s is a known item status
func (s ItemStatus) Valid() bool {
	return s == ItemPlanned || s == ItemEaten || s == ItemDeleted
}

// ParseItemStatus converts a raw string into an ItemStatus
func ParseItemStatus(raw string) (ItemStatus, error) {
	s := ItemStatus(raw)
	if !s.Valid() {
		return "", ErrInvalidItemStatus
	}
	return s, nil
}
