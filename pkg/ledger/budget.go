package ledger

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SetBudget sets the limit for a category and period, creating the budget if
// there is none for this pair yet.
func (s *Store) SetBudget(ctx context.Context, categoryID string, limit decimal.Decimal, period Period) (Budget, error) {
	if !period.Valid() {
		return Budget{}, ErrInvalidPeriod
	}
	if limit.IsNegative() {
		return Budget{}, ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.budgets.list() {
		if b.CategoryID == categoryID && b.Period == period {
			b.Limit = limit
			s.budgets.put(b.ID, b)
			return b, s.persist(ctx)
		}
	}

	b := Budget{
		ID:         s.newID(),
		CategoryID: categoryID,
		Limit:      limit,
		Period:     period,
	}
	s.budgets.put(b.ID, b)

	return b, s.persist(ctx)
}

func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.budgets.remove(id) {
		log.Warn().Str("budget", id).Msg("delete for unknown budget ignored")
		return ErrBudgetNotFound
	}

	return s.persist(ctx)
}
