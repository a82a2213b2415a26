package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckConsumptionWindow(t *testing.T) {
	today := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset int
		want   error
	}{
		{"Today", 0, nil},
		{"Tomorrow", 1, ErrFutureConsumption},
		{"SevenDaysAgo_BoundaryIsEditable", -7, nil},
		{"EightDaysAgo", -8, ErrConsumptionFrozen},
		{"Yesterday", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConsumptionWindow(today.AddDate(0, 0, tt.offset), today, 7)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
