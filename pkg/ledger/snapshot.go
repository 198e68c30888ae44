package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// schemaVersion is the version written with every snapshot.
//
// Version 1 is the original shape without a version field and without
// initial balances on sources.
const schemaVersion = 2

// Snapshot is a consistent copy of all ledger collections.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Sources      []Source      `json:"sources"`
	Categories   []Category    `json:"categories"`
	Budgets      []Budget      `json:"budgets"`
	Goals        []Goal        `json:"goals"`
}

type persistedSnapshot struct {
	Version int `json:"version"`
	Snapshot
}

// EncodeSnapshot serializes a snapshot in the current schema version.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(persistedSnapshot{Version: schemaVersion, Snapshot: s})
}

// The stored* types mirror the persisted shape with every field optional so
// that records written by older versions get per-field defaults.
type storedSnapshot struct {
	Version      int                  `json:"version"`
	Transactions *[]storedTransaction `json:"transactions"`
	Sources      *[]storedSource      `json:"sources"`
	Categories   *[]Category          `json:"categories"`
	Budgets      *[]storedBudget      `json:"budgets"`
	Goals        *[]storedGoal        `json:"goals"`
}

type storedTransaction struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	SourceID   string          `json:"sourceId"`
	CategoryID string          `json:"categoryId"`
	Date       *time.Time      `json:"date"`
	Note       string          `json:"note"`
	Type       TransactionType `json:"type"`
}

type storedSource struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Balance        *decimal.Decimal `json:"balance"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
	Kind           SourceKind       `json:"type"`
	Color          string           `json:"color"`
}

type storedBudget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
	Period     Period          `json:"period"`
}

type storedGoal struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	TargetAmount   decimal.Decimal  `json:"targetAmount"`
	CurrentAmount  decimal.Decimal  `json:"currentAmount"`
	PeriodicTarget *decimal.Decimal `json:"periodicTarget"`
}

// DecodeSnapshot parses a stored snapshot of any supported version.
//
// newID fills in missing identifiers and now is used for transactions
// without a date.
func DecodeSnapshot(data []byte, newID func() string, now time.Time) (Snapshot, error) {
	var stored storedSnapshot
	if err := json.Unmarshal(data, &stored); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	if stored.Version == 0 {
		stored.Version = 1
	}
	if stored.Version > schemaVersion {
		return Snapshot{}, fmt.Errorf("%w: %d, this build supports up to %d", ErrUnsupportedVersion, stored.Version, schemaVersion)
	}

	s := DefaultSnapshot()

	if stored.Transactions != nil {
		s.Transactions = make([]Transaction, 0, len(*stored.Transactions))
		seen := make(map[string]bool, len(*stored.Transactions))
		for _, st := range *stored.Transactions {
			t := st.normalize(newID, now)

			// Only the first entry of an id is kept, its effect is the one in the balances
			if seen[t.ID] {
				log.Warn().Str("transaction", t.ID).Msg("dropping duplicate transaction while loading")
				continue
			}
			seen[t.ID] = true
			s.Transactions = append(s.Transactions, t)
		}
	}

	if stored.Sources != nil {
		effects := effectsBySource(s.Transactions)
		s.Sources = make([]Source, 0, len(*stored.Sources))
		for _, ss := range *stored.Sources {
			s.Sources = append(s.Sources, ss.normalize(newID, effects))
		}
	}

	if stored.Categories != nil {
		s.Categories = make([]Category, 0, len(*stored.Categories))
		for _, c := range *stored.Categories {
			if c.ID == "" {
				c.ID = newID()
			}
			if c.Name == "" {
				c.Name = UncategorizedName
			}
			s.Categories = append(s.Categories, c)
		}
	}

	if stored.Budgets != nil {
		s.Budgets = make([]Budget, 0, len(*stored.Budgets))
		index := map[budgetKey]int{}
		for _, sb := range *stored.Budgets {
			b := sb.normalize(newID)
			key := budgetKey{b.CategoryID, b.Period}

			// Collapse duplicate pairs so that the uniqueness holds after loading
			if i, ok := index[key]; ok {
				log.Warn().Str("category", b.CategoryID).Str("period", string(b.Period)).Msg("dropping duplicate budget while loading")
				s.Budgets[i].Limit = b.Limit
				continue
			}
			index[key] = len(s.Budgets)
			s.Budgets = append(s.Budgets, b)
		}
	}

	if stored.Goals != nil {
		s.Goals = make([]Goal, 0, len(*stored.Goals))
		for _, sg := range *stored.Goals {
			s.Goals = append(s.Goals, sg.normalize(newID))
		}
	}

	return s, nil
}

func (st storedTransaction) normalize(newID func() string, now time.Time) Transaction {
	t := Transaction{
		ID:         st.ID,
		Amount:     st.Amount.Abs(),
		SourceID:   st.SourceID,
		CategoryID: st.CategoryID,
		Note:       st.Note,
		Type:       st.Type,
	}

	if t.ID == "" {
		t.ID = newID()
	}

	if !t.Type.Valid() {
		if t.Type != "" {
			log.Warn().Str("transaction", t.ID).Str("type", string(t.Type)).Msg("unknown transaction type, treating as expense")
		}
		t.Type = Expense
	}

	if st.Date != nil {
		t.Date = *st.Date
	} else {
		t.Date = now
	}

	return t
}

func (ss storedSource) normalize(newID func() string, effects map[string]decimal.Decimal) Source {
	s := Source{
		ID:    ss.ID,
		Name:  ss.Name,
		Kind:  ss.Kind,
		Color: ss.Color,
	}

	if s.ID == "" {
		s.ID = newID()
	}

	if !s.Kind.Valid() {
		s.Kind = Other
	}

	effect := effects[s.ID]
	switch {
	case ss.Balance != nil && ss.InitialBalance != nil:
		s.Balance = *ss.Balance
		s.InitialBalance = *ss.InitialBalance
	case ss.Balance != nil:
		s.Balance = *ss.Balance
		s.InitialBalance = ss.Balance.Sub(effect)
	case ss.InitialBalance != nil:
		s.InitialBalance = *ss.InitialBalance
		s.Balance = ss.InitialBalance.Add(effect)
	default:
		s.InitialBalance = effect.Neg()
	}

	return s
}

func (sb storedBudget) normalize(newID func() string) Budget {
	b := Budget{
		ID:         sb.ID,
		CategoryID: sb.CategoryID,
		Limit:      sb.Limit.Abs(),
		Period:     sb.Period,
	}

	if b.ID == "" {
		b.ID = newID()
	}

	if !b.Period.Valid() {
		b.Period = Monthly
	}

	return b
}

func (sg storedGoal) normalize(newID func() string) Goal {
	g := Goal{
		ID:            sg.ID,
		Title:         sg.Title,
		TargetAmount:  sg.TargetAmount.Abs(),
		CurrentAmount: sg.CurrentAmount.Abs(),
	}

	if g.ID == "" {
		g.ID = newID()
	}

	if sg.PeriodicTarget != nil && !sg.PeriodicTarget.IsZero() {
		p := sg.PeriodicTarget.Abs()
		g.PeriodicTarget = &p
	}

	return g
}

type budgetKey struct {
	categoryID string
	period     Period
}

// effectsBySource sums the balance effects of all transactions per source.
func effectsBySource(transactions []Transaction) map[string]decimal.Decimal {
	effects := map[string]decimal.Decimal{}
	for _, t := range transactions {
		effects[t.SourceID] = effects[t.SourceID].Add(t.Effect())
	}
	return effects
}
