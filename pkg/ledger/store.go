// Package ledger implements the SmartSpend ledger: sources, categories,
// transactions, budgets and goals kept mutually consistent and saved to a
// storage backend after every change.
//
// The central invariant is that every source balance equals its initial
// balance plus the signed effects of all transactions referencing it. All
// mutations hold the store lock for their full duration, including the
// persistence write, so readers never observe a partially applied change.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/pkg/storage"
)

// Store owns all ledger entities.
type Store struct {
	mu sync.Mutex

	backend        storage.Backend
	key            string
	now            func() time.Time
	newID          func() string
	resetOnCorrupt bool

	transactions collection[Transaction]
	sources      collection[Source]
	categories   collection[Category]
	budgets      collection[Budget]
	goals        collection[Goal]

	persistErr error
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key the snapshot is read from and written to.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock sets the function used for "now".
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the function generating IDs for new entities.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithResetOnCorrupt makes Open start from the default state when the stored
// snapshot cannot be decoded. The undecodable data is kept under
// "<key>.corrupt".
func WithResetOnCorrupt(reset bool) Option {
	return func(s *Store) {
		s.resetOnCorrupt = reset
	}
}

// Open loads the ledger from the backend.
//
// When nothing is stored yet, the store starts with the default sources and
// categories and saves them right away. If that first save fails, the usable
// store is returned together with an error wrapping ErrPersistence.
func Open(ctx context.Context, backend storage.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := backend.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info().Str("key", s.key).Msg("no stored ledger, starting with defaults")
		s.load(DefaultSnapshot())
		return s, s.persist(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}

	snapshot, err := DecodeSnapshot(data, s.newID, s.now())
	if errors.Is(err, ErrCorruptSnapshot) && s.resetOnCorrupt {
		log.Error().Err(err).Str("key", s.key).Msg("stored ledger is corrupt, keeping a copy and starting with defaults")

		if err := backend.Put(ctx, s.key+".corrupt", data); err != nil {
			return nil, fmt.Errorf("could not keep a copy of the corrupt ledger: %w", err)
		}

		s.load(DefaultSnapshot())
		return s, s.persist(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.load(snapshot)

	for _, d := range s.checkBalances() {
		log.Warn().Str("source", d.SourceID).Str("cached", d.Cached.String()).Str("expected", d.Expected.String()).Msg("stored balance does not match transaction history")
	}

	log.Debug().
		Int("transactions", s.transactions.len()).
		Int("sources", s.sources.len()).
		Int("categories", s.categories.len()).
		Int("budgets", s.budgets.len()).
		Int("goals", s.goals.len()).
		Msg("ledger loaded")

	return s, nil
}

func (s *Store) load(snapshot Snapshot) {
	s.transactions = newCollection(snapshot.Transactions, func(t Transaction) string { return t.ID })
	s.sources = newCollection(snapshot.Sources, func(t Source) string { return t.ID })
	s.categories = newCollection(snapshot.Categories, func(t Category) string { return t.ID })
	s.budgets = newCollection(snapshot.Budgets, func(t Budget) string { return t.ID })
	s.goals = newCollection(snapshot.Goals, func(t Goal) string { return t.ID }, Goal.clone)
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Transactions: s.transactions.list(),
		Sources:      s.sources.list(),
		Categories:   s.categories.list(),
		Budgets:      s.budgets.list(),
		Goals:        s.goals.list(),
	}
}

// persist writes the full snapshot. It must be called with the lock held.
//
// A failed write leaves the in-memory state untouched, it is still correct.
// The error is kept until the next successful write.
func (s *Store) persist(ctx context.Context) error {
	data, err := EncodeSnapshot(s.snapshot())
	if err == nil {
		err = s.backend.Put(ctx, s.key, data)
	}

	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("could not save ledger")
		s.persistErr = fmt.Errorf("%w: %w", ErrPersistence, err)
		return s.persistErr
	}

	s.persistErr = nil
	return nil
}

// PersistError returns the error of the last failed save, or nil when the
// stored data matches the in-memory state.
func (s *Store) PersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// Save writes the current state again, e.g. to retry after a failed save.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// Snapshot returns a copy of all collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Transactions returns all transactions, most recently added first.
func (s *Store) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.list()
}

func (s *Store) Sources() []Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sources.list()
}

func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.list()
}

func (s *Store) Budgets() []Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.list()
}

func (s *Store) Goals() []Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goals.list()
}

func (s *Store) Transaction(id string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions.get(id)
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return t, nil
}

func (s *Store) Source(id string) (Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.sources.get(id)
	if !ok {
		return Source{}, ErrSourceNotFound
	}
	return src, nil
}

func (s *Store) Category(id string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories.get(id)
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (s *Store) Budget(id string) (Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets.get(id)
	if !ok {
		return Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

func (s *Store) Goal(id string) (Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals.get(id)
	if !ok {
		return Goal{}, ErrGoalNotFound
	}
	return g, nil
}

// GetBalance is the sum of all source balances.
func (s *Store) GetBalance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, src := range s.sources.items {
		total = total.Add(src.Balance)
	}
	return total
}

// CheckBalances recomputes every source balance from its initial balance and
// transaction history and reports the ones that differ from the cached value.
func (s *Store) CheckBalances() []BalanceDrift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkBalances()
}

func (s *Store) checkBalances() []BalanceDrift {
	effects := effectsBySource(s.transactions.list())

	var drifts []BalanceDrift
	for _, src := range s.sources.list() {
		expected := src.InitialBalance.Add(effects[src.ID])
		if !expected.Equal(src.Balance) {
			drifts = append(drifts, BalanceDrift{
				SourceID: src.ID,
				Cached:   src.Balance,
				Expected: expected,
			})
		}
	}
	return drifts
}

// applyEffect moves the balance of a source by delta. Unknown sources are
// skipped and reported as false.
func (s *Store) applyEffect(sourceID string, delta decimal.Decimal) bool {
	src, ok := s.sources.get(sourceID)
	if !ok {
		return false
	}
	src.Balance = src.Balance.Add(delta)
	s.sources.put(sourceID, src)
	return true
}
