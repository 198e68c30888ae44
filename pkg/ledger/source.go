package ledger

import (
	"context"

	"github.com/rs/zerolog/log"
)

// AddSource appends a source. Its balance is taken as the starting balance.
func (s *Store) AddSource(ctx context.Context, in SourceInput) (Source, error) {
	if in.Kind == "" {
		in.Kind = Other
	}
	if !in.Kind.Valid() {
		return Source{}, ErrInvalidSourceKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src := Source{
		ID:             s.newID(),
		Name:           in.Name,
		Balance:        in.Balance,
		InitialBalance: in.Balance,
		Kind:           in.Kind,
		Color:          in.Color,
	}
	s.sources.put(src.ID, src)

	return src, s.persist(ctx)
}

// UpdateSource changes the given fields of a source.
//
// A new balance is a manual correction: it is not recomputed from the
// transactions, the initial balance moves by the same amount instead.
func (s *Store) UpdateSource(ctx context.Context, id string, u SourceUpdate) (Source, error) {
	if u.Kind != nil && !u.Kind.Valid() {
		return Source{}, ErrInvalidSourceKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.sources.get(id)
	if !ok {
		log.Warn().Str("source", id).Msg("update for unknown source ignored")
		return Source{}, ErrSourceNotFound
	}

	if u.Name != nil {
		src.Name = *u.Name
	}
	if u.Kind != nil {
		src.Kind = *u.Kind
	}
	if u.Color != nil {
		src.Color = *u.Color
	}
	if u.Balance != nil {
		delta := u.Balance.Sub(src.Balance)
		src.Balance = *u.Balance
		src.InitialBalance = src.InitialBalance.Add(delta)

		log.Info().Str("source", id).Str("correction", delta.String()).Msg("source balance corrected manually")
	}

	s.sources.put(id, src)
	return src, s.persist(ctx)
}
