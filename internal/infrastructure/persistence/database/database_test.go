package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	gormrepo "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/memory"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			Database:    filepath.Join(t.TempDir(), "nutriplan.db"),
			AutoMigrate: true,
			LogLevel:    "silent",
		},
	}
}

func TestOpen_MigratesAndSeeds(t *testing.T) {
	db, err := Open(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	ctx := context.Background()
	require.NoError(t, Ping(ctx, db))

	n, err := Seed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(demoCatalogue), n)

	again, err := Seed(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, again)

	repo := gormrepo.NewRecipeRepository(db)
	drinks, err := repo.FindByCategoryExcluding(ctx, []recipe.Category{recipe.CategoryDrink}, nil)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Green Smoothie", drinks[0].Title())
}

func TestOpen_VersionedIndexKeepsOneLiveMenu(t *testing.T) {
	db, err := Open(sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	ctx := context.Background()
	menus := gormrepo.NewDailyMenuRepository(db)
	userID := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	first, err := menu.NewPlannedMenu(userID, day)
	require.NoError(t, err)
	require.NoError(t, menus.Create(ctx, first))
	second, err := menu.NewPlannedMenu(userID, day)
	require.NoError(t, err)

	assert.ErrorIs(t, menus.Create(ctx, second), outbound.ErrDuplicate)
}

func TestOpen_RejectsDriverWithoutDialect(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Database.Driver = "memory"

	_, err := Open(cfg, zap.NewNop())

	assert.Error(t, err)
}

func TestSeedRecipes_MemoryRepository(t *testing.T) {
	repo := memory.NewRecipeRepository(memory.NewStore())

	n, err := SeedRecipes(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, len(demoCatalogue), n)

	mains, err := repo.FindByCategoryExcluding(context.Background(), []recipe.Category{recipe.CategoryMain}, []string{"rice"})
	require.NoError(t, err)
	assert.Len(t, mains, 3)
	for _, r := range mains {
		assert.False(t, r.ContainsAnyIngredient([]string{"rice"}), r.Title())
	}
}
