package menu

import (
	"time"

	"github.com/nutriplan/v1/internal/domain/shared"
)

// CheckConsumptionWindow rejects consumption changes for menus dated after
// today or more than freezeDays before today. A menu exactly freezeDays old
// is still editable.
func CheckConsumptionWindow(menuDate, today time.Time, freezeDays int) error {
	day := shared.Day(menuDate)
	now := shared.Day(today)
	if day.After(now) {
		return ErrFutureConsumption
	}
	if day.Before(shared.AddDays(now, -freezeDays)) {
		return ErrConsumptionFrozen
	}
	return nil
}
