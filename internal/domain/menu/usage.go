package menu

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/shared"
)

// UsageStats summarizes how often recipes appeared on a user's recent menus
type UsageStats struct {
	Counts    map[uuid.UUID]int
	RecentIDs map[uuid.UUID]struct{}
}

// Count returns how many times a recipe was used
func (u UsageStats) Count(id uuid.UUID) int {
	return u.Counts[id]
}

// IsRecent reports whether a recipe was used in the recent window
func (u UsageStats) IsRecent(id uuid.UUID) bool {
	_, ok := u.RecentIDs[id]
	return ok
}

// BuildUsageStats counts recipe use across menus dated before reference.
// Menus dated within recentDays before reference also mark their recipes recent.
// Archived menus and deleted items are ignored.
func BuildUsageStats(menus []*DailyMenu, reference time.Time, recentDays int) UsageStats {
	stats := UsageStats{
		Counts:    make(map[uuid.UUID]int),
		RecentIDs: make(map[uuid.UUID]struct{}),
	}
	ref := shared.Day(reference)
	recentFrom := shared.AddDays(ref, -recentDays)

	for _, m := range menus {
		if m == nil || m.IsArchived() || !m.Date().Before(ref) {
			continue
		}
		recent := !m.Date().Before(recentFrom)
		for _, it := range m.items {
			if it.Status == ItemDeleted {
				continue
			}
			stats.Counts[it.RecipeID]++
			if recent {
				stats.RecentIDs[it.RecipeID] = struct{}{}
			}
		}
	}
	return stats
}
