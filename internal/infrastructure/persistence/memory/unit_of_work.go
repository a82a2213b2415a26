package memory

import (
	"context"

	"github.com/nutriplan/v1/internal/ports/outbound"
)

// UnitOfWork serializes transactional work on a Store and restores menus
// and plans when the work fails. Writes made outside a unit of work while
// one is rolling back are lost.
type UnitOfWork struct {
	store *Store
}

// NewUnitOfWork creates a unit of work over store
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Do runs fn and rolls back on error
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos outbound.Repositories) error) error {
	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	cp := u.store.checkpoint()
	err := fn(ctx, outbound.Repositories{
		Menus: NewDailyMenuRepository(u.store),
		Plans: NewMealPlanRepository(u.store),
	})
	if err != nil {
		u.store.restore(cp)
	}
	return err
}
