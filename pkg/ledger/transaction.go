package ledger

import (
	"context"

	"github.com/rs/zerolog/log"
)

// AddTransaction records a transaction and applies its effect to the source.
//
// The amount is stored as its magnitude. A transaction on an unknown source
// is recorded without touching any balance.
//
// Like all mutations, a returned error wrapping ErrPersistence means the
// change was applied in memory but not saved.
func (s *Store) AddTransaction(ctx context.Context, in TransactionInput) (Transaction, error) {
	if in.Type == "" {
		in.Type = Expense
	}
	if !in.Type.Valid() {
		return Transaction{}, ErrInvalidTransactionType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Transaction{
		ID:         s.newID(),
		Amount:     in.Amount.Abs(),
		SourceID:   in.SourceID,
		CategoryID: in.CategoryID,
		Date:       in.Date,
		Note:       in.Note,
		Type:       in.Type,
	}
	if t.Date.IsZero() {
		t.Date = s.now()
	}

	s.transactions.prepend(t.ID, t)
	if !s.applyEffect(t.SourceID, t.Effect()) {
		log.Warn().Str("transaction", t.ID).Str("source", t.SourceID).Msg("transaction references an unknown source, no balance was changed")
	}

	return t, s.persist(ctx)
}

// UpdateTransaction changes a transaction and moves its balance effect.
//
// The old effect is reverted on the old source before the new effect is
// applied on the (possibly different) new source.
func (s *Store) UpdateTransaction(ctx context.Context, id string, u TransactionUpdate) (Transaction, error) {
	if u.Type != nil && !u.Type.Valid() {
		return Transaction{}, ErrInvalidTransactionType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.transactions.get(id)
	if !ok {
		log.Warn().Str("transaction", id).Msg("update for unknown transaction ignored")
		return Transaction{}, ErrTransactionNotFound
	}

	updated := old
	if u.Amount != nil {
		updated.Amount = u.Amount.Abs()
	}
	if u.SourceID != nil {
		updated.SourceID = *u.SourceID
	}
	if u.CategoryID != nil {
		updated.CategoryID = *u.CategoryID
	}
	if u.Date != nil {
		updated.Date = *u.Date
	}
	if u.Note != nil {
		updated.Note = *u.Note
	}
	if u.Type != nil {
		updated.Type = *u.Type
	}

	s.applyEffect(old.SourceID, old.Effect().Neg())
	s.transactions.put(id, updated)
	if !s.applyEffect(updated.SourceID, updated.Effect()) {
		log.Warn().Str("transaction", id).Str("source", updated.SourceID).Msg("transaction references an unknown source, no balance was changed")
	}

	return updated, s.persist(ctx)
}

// DeleteTransaction reverts the effect of a transaction and removes it.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions.get(id)
	if !ok {
		log.Warn().Str("transaction", id).Msg("delete for unknown transaction ignored")
		return ErrTransactionNotFound
	}

	s.applyEffect(t.SourceID, t.Effect().Neg())
	s.transactions.remove(id)

	return s.persist(ctx)
}
