package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/plan"
	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/domain/user"
)

// Store is the shared backing state of every in-memory repository.
// Aggregates are kept as snapshots so callers never alias stored state.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	recipes  map[uuid.UUID]recipe.Snapshot
	profiles map[uuid.UUID]user.Profile
	goals    map[uuid.UUID]nutrition.Goal
	menus    map[uuid.UUID]menu.Snapshot
	plans    map[uuid.UUID]plan.Snapshot
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		recipes:  make(map[uuid.UUID]recipe.Snapshot),
		profiles: make(map[uuid.UUID]user.Profile),
		goals:    make(map[uuid.UUID]nutrition.Goal),
		menus:    make(map[uuid.UUID]menu.Snapshot),
		plans:    make(map[uuid.UUID]plan.Snapshot),
	}
}

type checkpoint struct {
	menus map[uuid.UUID]menu.Snapshot
	plans map[uuid.UUID]plan.Snapshot
}

func (s *Store) checkpoint() checkpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := checkpoint{
		menus: make(map[uuid.UUID]menu.Snapshot, len(s.menus)),
		plans: make(map[uuid.UUID]plan.Snapshot, len(s.plans)),
	}
	for k, v := range s.menus {
		cp.menus[k] = v
	}
	for k, v := range s.plans {
		cp.plans[k] = v
	}
	return cp
}

func (s *Store) restore(cp checkpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.menus = cp.menus
	s.plans = cp.plans
}
