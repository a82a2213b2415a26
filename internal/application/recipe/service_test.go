package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/memory"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"github.com/nutriplan/v1/test/testutils"
)

type RecipeServiceTestSuite struct {
	suite.Suite
	fx      *testutils.MemoryFixture
	cache   *memory.CacheRepository
	service *RecipeService
	ctx     context.Context
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.fx = testutils.NewMemoryFixture()
	suite.cache = memory.NewCacheRepository(0)
	suite.service = NewRecipeService(suite.fx.Recipes, suite.cache, outbound.NopPublisher{}, zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *RecipeServiceTestSuite) TestCreateRecipe() {
	// Arrange
	cmd := inbound.CreateRecipeCommand{
		Title:       "Chickpea Curry",
		Category:    "Main",
		Ingredients: []string{"chickpeas", "coconut milk"},
		Nutrition:   nutrition.Nutrients{Calories: 540, Protein: 18},
	}

	// Act
	dto, err := suite.service.CreateRecipe(suite.ctx, cmd)

	// Assert
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, dto.ID)
	assert.Equal(suite.T(), "main", dto.Category)

	got, err := suite.service.GetRecipe(suite.ctx, dto.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Chickpea Curry", got.Title)
	assert.Equal(suite.T(), 540.0, got.Nutrition.Calories)
}

func (suite *RecipeServiceTestSuite) TestCreateRecipeInvalidatesCandidatePools() {
	key := outbound.CandidatePoolKeyPrefix + "main"
	require.NoError(suite.T(), suite.cache.Set(suite.ctx, key, []byte("[]"), time.Minute))

	_, err := suite.service.CreateRecipe(suite.ctx, inbound.CreateRecipeCommand{Title: "Veggie Chili", Category: "main"})
	require.NoError(suite.T(), err)

	_, err = suite.cache.Get(suite.ctx, key)
	assert.ErrorIs(suite.T(), err, outbound.ErrCacheMiss)
}

func (suite *RecipeServiceTestSuite) TestCreateRecipeValidation() {
	_, err := suite.service.CreateRecipe(suite.ctx, inbound.CreateRecipeCommand{Title: "Stew", Category: "breakfast"})
	assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))

	_, err = suite.service.CreateRecipe(suite.ctx, inbound.CreateRecipeCommand{Title: "No", Category: "main"})
	assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
}

func (suite *RecipeServiceTestSuite) TestGetRecipeNotFound() {
	_, err := suite.service.GetRecipe(suite.ctx, uuid.New())

	assert.Equal(suite.T(), apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
}

func (suite *RecipeServiceTestSuite) TestListRecipes() {
	t := suite.T()
	suite.fx.AddRecipe(t, "Apple Pie", "dessert", 420, "apple", "butter")
	suite.fx.AddRecipe(t, "Bean Salad", "side", 210, "beans")
	suite.fx.AddRecipe(t, "Peanut Cookies", "dessert", 180, "peanut")

	all, err := suite.service.ListRecipes(suite.ctx, inbound.ListRecipesQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	desserts, err := suite.service.ListRecipes(suite.ctx, inbound.ListRecipesQuery{
		Categories: []string{"dessert"},
		Exclude:    []string{"Peanut"},
	})
	require.NoError(t, err)
	require.Len(t, desserts, 1)
	assert.Equal(t, "Apple Pie", desserts[0].Title)

	_, err = suite.service.ListRecipes(suite.ctx, inbound.ListRecipesQuery{Categories: []string{"brunch"}})
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(err))
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
