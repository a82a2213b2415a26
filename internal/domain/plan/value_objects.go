package plan

// Status is the lifecycle state of a meal plan
type Status string

const (
	StatusSuggested Status = "suggested"
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusSuggested, StatusPlanned, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseStatus converts a raw string into a Status
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Period is the span a plan covers
type Period string

const (
	PeriodDay  Period = "day"
	PeriodWeek Period = "week"
)

// Valid reports whether p is a known period
func (p Period) Valid() bool {
	return p == PeriodDay || p == PeriodWeek
}

// Days returns the number of calendar days in the period
func (p Period) Days() int {
	if p == PeriodWeek {
		return 7
	}
	return 1
}

// ParsePeriod converts a raw string into a Period
func ParsePeriod(raw string) (Period, error) {
	p := Period(raw)
	if !p.Valid() {
		return "", ErrInvalidPeriod
	}
	return p, nil
}
