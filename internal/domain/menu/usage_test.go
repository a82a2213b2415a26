package menu

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

func TestBuildUsageStats(t *testing.T) {
	userID := uuid.New()
	ref := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	oats, soup, pasta, cake := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	menuOn := func(offset int, recipes ...uuid.UUID) *DailyMenu {
		items := make([]Item, 0, len(recipes))
		for _, r := range recipes {
			it, err := NewItem(r, nil, "", ServingLunch)
			require.NoError(t, err)
			items = append(items, it)
		}
		m, err := NewSelectedMenu(userID, ref.AddDate(0, 0, offset), items, nutrition.Nutrients{})
		require.NoError(t, err)
		return m
	}

	old := menuOn(-10, oats, soup)
	recent := menuOn(-2, oats)
	sameDay := menuOn(0, pasta)
	archived := menuOn(-1, cake)
	require.NoError(t, archived.Archive())
	withDeleted := menuOn(-3, soup)
	require.NoError(t, withDeleted.SetItemStatus(withDeleted.Items()[0].ID, ItemDeleted))

	stats := BuildUsageStats([]*DailyMenu{old, recent, sameDay, archived, withDeleted, nil}, ref, 3)

	assert.Equal(t, 2, stats.Count(oats))
	assert.Equal(t, 1, stats.Count(soup))
	assert.Equal(t, 0, stats.Count(pasta), "menus on the reference date are not history")
	assert.Equal(t, 0, stats.Count(cake), "archived menus are ignored")
	assert.True(t, stats.IsRecent(oats))
	assert.False(t, stats.IsRecent(soup))
}

func TestUsageStats_ZeroValueIsUsable(t *testing.T) {
	var stats UsageStats

	assert.Equal(t, 0, stats.Count(uuid.New()))
	assert.False(t, stats.IsRecent(uuid.New()))
}
