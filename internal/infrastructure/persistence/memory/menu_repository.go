package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/domain/shared"
	"github.com/nutriplan/v1/internal/ports/outbound"
)

// DailyMenuRepository implements outbound.DailyMenuRepository over a Store
type DailyMenuRepository struct {
	store *Store
}

// NewDailyMenuRepository creates a daily menu repository
func NewDailyMenuRepository(store *Store) *DailyMenuRepository {
	return &DailyMenuRepository{store: store}
}

// Create stores a new menu, enforcing one live menu per user and date
func (r *DailyMenuRepository) Create(ctx context.Context, m *menu.DailyMenu) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.menus[m.ID()]; exists {
		return outbound.ErrDuplicate
	}
	if !m.IsArchived() {
		if _, live := r.liveLocked(m.UserID(), m.Date()); live {
			return outbound.ErrDuplicate
		}
	}
	r.store.menus[m.ID()] = m.Snapshot()
	return nil
}

// Save replaces a stored menu unless the stored copy is archived
func (r *DailyMenuRepository) Save(ctx context.Context, m *menu.DailyMenu) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.menus[m.ID()]
	if !ok {
		return outbound.ErrNotFound
	}
	if stored.Status == menu.StatusArchived {
		return outbound.ErrArchivedWrite
	}
	r.store.menus[m.ID()] = m.Snapshot()
	return nil
}

// FindByID retrieves a menu by ID
func (r *DailyMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.DailyMenu, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.menus[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return menu.Restore(s), nil
}

// FindByUserAndDate returns the live menu for a user and date
func (r *DailyMenuRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*menu.DailyMenu, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.liveLocked(userID, date)
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return menu.Restore(s), nil
}

// FindByUserAndDateRange lists menus in [start, end] ordered by date
func (r *DailyMenuRepository) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time, status *menu.Status) ([]*menu.DailyMenu, error) {
	from, to := shared.Day(start), shared.Day(end)

	r.store.mu.RLock()
	matched := make([]menu.Snapshot, 0)
	for _, s := range r.store.menus {
		if s.UserID != userID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		if status == nil && s.Status == menu.StatusArchived {
			continue
		}
		matched = append(matched, s)
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	out := make([]*menu.DailyMenu, 0, len(matched))
	for _, s := range matched {
		out = append(out, menu.Restore(s))
	}
	return out, nil
}

func (r *DailyMenuRepository) liveLocked(userID uuid.UUID, date time.Time) (menu.Snapshot, bool) {
	day := shared.Day(date)
	for _, s := range r.store.menus {
		if s.UserID == userID && s.Date.Equal(day) && s.Status != menu.StatusArchived {
			return s, true
		}
	}
	return menu.Snapshot{}, false
}
