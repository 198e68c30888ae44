package ledger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func (s *Store) AddGoal(ctx context.Context, in GoalInput) (Goal, error) {
	if in.TargetAmount.IsNegative() || in.CurrentAmount.IsNegative() {
		return Goal{}, ErrNegativeAmount
	}
	if in.PeriodicTarget != nil && in.PeriodicTarget.IsNegative() {
		return Goal{}, ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := Goal{
		ID:            s.newID(),
		Title:         in.Title,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
	}
	if in.PeriodicTarget != nil && !in.PeriodicTarget.IsZero() {
		p := *in.PeriodicTarget
		g.PeriodicTarget = &p
	}
	s.goals.put(g.ID, g)

	return g, s.persist(ctx)
}

func (s *Store) UpdateGoal(ctx context.Context, id string, u GoalUpdate) (Goal, error) {
	for _, d := range []*decimal.Decimal{u.TargetAmount, u.CurrentAmount, u.PeriodicTarget} {
		if d != nil && d.IsNegative() {
			return Goal{}, ErrNegativeAmount
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals.get(id)
	if !ok {
		log.Warn().Str("goal", id).Msg("update for unknown goal ignored")
		return Goal{}, ErrGoalNotFound
	}

	if u.Title != nil {
		g.Title = *u.Title
	}
	if u.TargetAmount != nil {
		g.TargetAmount = *u.TargetAmount
	}
	if u.CurrentAmount != nil {
		g.CurrentAmount = *u.CurrentAmount
	}
	if u.PeriodicTarget != nil {
		if u.PeriodicTarget.IsZero() {
			g.PeriodicTarget = nil
		} else {
			p := *u.PeriodicTarget
			g.PeriodicTarget = &p
		}
	}

	s.goals.put(id, g)
	return g, s.persist(ctx)
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.goals.remove(id) {
		log.Warn().Str("goal", id).Msg("delete for unknown goal ignored")
		return ErrGoalNotFound
	}

	return s.persist(ctx)
}

// Deposit moves money from a source into a savings goal.
//
// It records an expense on the source and advances the goal in one step,
// with a single save, so the goal progress and the transaction history
// cannot diverge.
func (s *Store) Deposit(ctx context.Context, in DepositInput) (DepositResult, error) {
	if !in.Amount.IsPositive() {
		return DepositResult{}, ErrDepositNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals.get(in.GoalID)
	if !ok {
		return DepositResult{}, ErrGoalNotFound
	}

	src, ok := s.sources.get(in.SourceID)
	if !ok {
		return DepositResult{}, ErrSourceNotFound
	}

	if src.Balance.LessThan(in.Amount) {
		return DepositResult{}, fmt.Errorf("%w: %s holds %s", ErrInsufficientFunds, src.Name, src.Balance)
	}

	categoryID := in.CategoryID
	if categoryID == "" {
		if c, ok := s.categories.first(); ok {
			categoryID = c.ID
		}
	}

	t := Transaction{
		ID:         s.newID(),
		Amount:     in.Amount,
		SourceID:   src.ID,
		CategoryID: categoryID,
		Date:       in.Date,
		Note:       fmt.Sprintf("Deposit to goal: %s", g.Title),
		Type:       Expense,
	}
	if t.Date.IsZero() {
		t.Date = s.now()
	}

	before := GoalProgressOf(g)
	g.CurrentAmount = g.CurrentAmount.Add(in.Amount)
	after := GoalProgressOf(g)

	s.transactions.prepend(t.ID, t)
	s.applyEffect(src.ID, t.Effect())
	s.goals.put(g.ID, g)

	src, _ = s.sources.get(src.ID)
	result := DepositResult{
		Transaction: t,
		Source:      src,
		Goal:        g,
		Completed:   after.Completed,
		JustReached: after.Completed && !before.Completed,
	}

	return result, s.persist(ctx)
}
