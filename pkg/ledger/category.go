package ledger

import (
	"context"

	"github.com/rs/zerolog/log"
)

func (s *Store) AddCategory(ctx context.Context, in CategoryInput) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Category{
		ID:    s.newID(),
		Name:  in.Name,
		Icon:  in.Icon,
		Color: in.Color,
	}
	s.categories.put(c.ID, c)

	return c, s.persist(ctx)
}

func (s *Store) UpdateCategory(ctx context.Context, id string, u CategoryUpdate) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories.get(id)
	if !ok {
		log.Warn().Str("category", id).Msg("update for unknown category ignored")
		return Category{}, ErrCategoryNotFound
	}

	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Icon != nil {
		c.Icon = *u.Icon
	}
	if u.Color != nil {
		c.Color = *u.Color
	}

	s.categories.put(id, c)
	return c, s.persist(ctx)
}

// DeleteCategory removes a category. Transactions and budgets keep
// referencing the deleted ID.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categories.remove(id) {
		log.Warn().Str("category", id).Msg("delete for unknown category ignored")
		return ErrCategoryNotFound
	}

	return s.persist(ctx)
}
