package menu

import (
	"time"

	"go.uber.org/zap"

	appnutrition "github.com/nutriplan/v1/internal/application/nutrition"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/test/testutils"
)

type harness struct {
	fx      *testutils.MemoryFixture
	engine  *SuggestionEngine
	editor  *Editor
	service *Service
}

// newHarness wires the menu services over an in-memory store with a fixed clock
func newHarness(now time.Time, metrics outbound.MetricsRecorder) *harness {
	if metrics == nil {
		metrics = outbound.NopMetrics{}
	}
	fx := testutils.NewMemoryFixture()
	log := zap.NewNop()

	resolver := appnutrition.NewTargetResolver(fx.Profiles, fx.Goals, nutrition.StandardDefaults(), log)
	aggregator := appnutrition.NewAggregator(fx.Recipes, log)
	selector := NewCandidateSelector(fx.Recipes, DefaultSelectorConfig(), ZeroNoise{})

	engine := NewSuggestionEngine(resolver, selector, aggregator, fx.Profiles, fx.Menus,
		DefaultSlotWeights(), metrics, outbound.NopPublisher{}, log)
	editor := NewEditor(fx.Menus, fx.UoW, aggregator, DefaultEditorConfig(),
		testutils.FixedClock(now), metrics, outbound.NopPublisher{}, log)

	return &harness{
		fx:      fx,
		engine:  engine,
		editor:  editor,
		service: NewService(engine, editor, fx.Menus, fx.Recipes, DefaultUsageConfig(), log),
	}
}
