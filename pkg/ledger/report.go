package ledger

import (
	"slices"
	"time"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/internal/types"
)

var hundred = decimal.NewFromInt(100)

// PeriodRange returns the half-open range [from, until) of the budget
// period containing now.
func PeriodRange(p Period, now time.Time) (from, until time.Time) {
	if p == Weekly {
		w := types.WeekOf(now)
		return w.Start(), w.End()
	}

	m := types.MonthOf(now)
	return m.Start(), m.End()
}

// Balance is the sum of all source balances in the snapshot.
func (s Snapshot) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, src := range s.Sources {
		total = total.Add(src.Balance)
	}
	return total
}

// CategoryName resolves a category ID, unknown IDs are "Uncategorized".
func (s Snapshot) CategoryName(id string) string {
	for _, c := range s.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UncategorizedName
}

// SourceName resolves a source ID. Unknown IDs resolve to the ID itself.
func (s Snapshot) SourceName(id string) string {
	for _, src := range s.Sources {
		if src.ID == id {
			return src.Name
		}
	}
	return id
}

// Spent sums the amounts of all transactions of a category in [from, until).
func (s Snapshot) Spent(categoryID string, from, until time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Transactions {
		if t.CategoryID == categoryID && inRange(t.Date, from, until) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Totals is the money flow over a range.
type Totals struct {
	Income decimal.Decimal `json:"income" example:"1000"`
	Spent  decimal.Decimal `json:"spent" example:"120"` // Expenses and transfers
	Net    decimal.Decimal `json:"net" example:"880"`
}

// Totals sums income and spending of all transactions in [from, until).
func (s Snapshot) Totals(from, until time.Time) Totals {
	income, spent := decimal.Zero, decimal.Zero
	for _, t := range s.Transactions {
		if !inRange(t.Date, from, until) {
			continue
		}

		if t.Type == Income {
			income = income.Add(t.Amount)
		} else {
			spent = spent.Add(t.Amount)
		}
	}

	return Totals{Income: income, Spent: spent, Net: income.Sub(spent)}
}

// CategorySpend is the total of one category over a range.
type CategorySpend struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
}

// SpendByCategory totals the transactions in [from, until) per category.
//
// Known categories come first in their order, followed by the unknown
// category IDs that were used.
func (s Snapshot) SpendByCategory(from, until time.Time) []CategorySpend {
	out := make([]CategorySpend, 0, len(s.Categories))
	index := map[string]int{}
	for _, c := range s.Categories {
		index[c.ID] = len(out)
		out = append(out, CategorySpend{CategoryID: c.ID, Name: c.Name, Total: decimal.Zero})
	}

	for _, t := range s.Transactions {
		if !inRange(t.Date, from, until) {
			continue
		}

		i, ok := index[t.CategoryID]
		if !ok {
			i = len(out)
			index[t.CategoryID] = i
			out = append(out, CategorySpend{CategoryID: t.CategoryID, Name: UncategorizedName, Total: decimal.Zero})
		}

		out[i].Total = out[i].Total.Add(t.Amount)
		out[i].Count++
	}

	return out
}

// BudgetProgress is the state of a budget in its current period.
type BudgetProgress struct {
	Budget  Budget          `json:"budget"`
	From    time.Time       `json:"from"`
	Until   time.Time       `json:"until"`
	Spent   decimal.Decimal `json:"spent"`
	Percent decimal.Decimal `json:"percent"` // Clamped to [0, 100]
	Over    bool            `json:"over"`
}

// BudgetProgressOf computes the progress of b in the period containing now.
func (s Snapshot) BudgetProgressOf(b Budget, now time.Time) BudgetProgress {
	from, until := PeriodRange(b.Period, now)
	spent := s.Spent(b.CategoryID, from, until)

	return BudgetProgress{
		Budget:  b,
		From:    from,
		Until:   until,
		Spent:   spent,
		Percent: percent(spent, b.Limit),
		Over:    b.Limit.IsPositive() && spent.GreaterThan(b.Limit),
	}
}

// BudgetProgress computes the progress of every budget in the snapshot.
func (s Snapshot) BudgetProgress(now time.Time) []BudgetProgress {
	out := make([]BudgetProgress, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		out = append(out, s.BudgetProgressOf(b, now))
	}
	return out
}

// GoalProgress is how far a goal has come.
type GoalProgress struct {
	Percent   decimal.Decimal `json:"percent"` // Clamped to [0, 100]
	Completed bool            `json:"completed"`
}

// GoalProgressOf computes the progress of a goal. A goal is completed as
// soon as the current amount reaches a positive target.
func GoalProgressOf(g Goal) GoalProgress {
	return GoalProgress{
		Percent:   percent(g.CurrentAmount, g.TargetAmount),
		Completed: g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount),
	}
}

// percent returns part/whole in percent, rounded to two places and clamped
// to [0, 100]. A whole of zero or less is 0 percent.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}

	p := part.Div(whole).Mul(hundred).Round(2)
	if p.GreaterThan(hundred) {
		return hundred
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// SourceTransactions returns the transactions of a source, newest first by date.
func (s Snapshot) SourceTransactions(sourceID string) []Transaction {
	out := s.Filter(TransactionFilter{SourceID: sourceID})
	slices.SortStableFunc(out, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// TransactionFilter selects transactions. Empty fields match everything.
type TransactionFilter struct {
	SourceID   string
	CategoryID string
	Type       TransactionType
	From       time.Time // Inclusive
	Until      time.Time // Exclusive
	Note       string    // Glob pattern, "*" matches any sequence
}

func (f TransactionFilter) Matches(t Transaction) bool {
	if f.SourceID != "" && t.SourceID != f.SourceID {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Note != "" && !glob.Glob(f.Note, t.Note) {
		return false
	}
	return inRange(t.Date, f.From, f.Until)
}

// Filter returns the matching transactions in snapshot order.
func (s Snapshot) Filter(f TransactionFilter) []Transaction {
	out := []Transaction{}
	for _, t := range s.Transactions {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// inRange reports whether t is in [from, until). Zero bounds are open.
func inRange(t, from, until time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !until.IsZero() && !t.Before(until) {
		return false
	}
	return true
}
