package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Expense  TransactionType = "EXPENSE"
	Income   TransactionType = "INCOME"
	Transfer TransactionType = "TRANSFER"
)

func (t TransactionType) Valid() bool {
	return t == Expense || t == Income || t == Transfer
}

// Signed returns the balance effect of a transaction of the given amount and type.
//
// Income adds to the source. Expense and transfer both subtract from it,
// transfers have no receiving side.
func Signed(amount decimal.Decimal, t TransactionType) decimal.Decimal {
	if t == Income {
		return amount
	}
	return amount.Neg()
}

// SourceKind classifies a source of money.
type SourceKind string

const (
	Bank  SourceKind = "BANK"
	Cash  SourceKind = "CASH"
	Other SourceKind = "OTHER"
)

func (k SourceKind) Valid() bool {
	return k == Bank || k == Cash || k == Other
}

// Period is the recurrence of a budget.
type Period string

const (
	Weekly  Period = "WEEKLY"
	Monthly Period = "MONTHLY"
)

func (p Period) Valid() bool {
	return p == Weekly || p == Monthly
}

// Source is a named money container with a running balance.
//
// Balance always equals InitialBalance plus the signed effects of every
// transaction referencing the source.
type Source struct {
	ID             string          `json:"id" example:"3"`
	Name           string          `json:"name" example:"Cash"`
	Balance        decimal.Decimal `json:"balance" example:"380"`
	InitialBalance decimal.Decimal `json:"initialBalance" example:"500"`
	Kind           SourceKind      `json:"type" example:"CASH"`
	Color          string          `json:"color" example:"bg-green-500"`
}

// Category classifies transactions for budgets and reports.
type Category struct {
	ID    string `json:"id" example:"food"`
	Name  string `json:"name" example:"Food & Dining"`
	Icon  string `json:"icon" example:"🍽️"`
	Color string `json:"color" example:"#ef4444"`
}

// Transaction is a single money movement on one source.
//
// Amount is always stored as a non-negative magnitude, the sign of its
// effect comes from Type.
type Transaction struct {
	ID         string          `json:"id" example:"c1f6e3b0-1e43-4a53-9d57-4c2b6e1d0a11"`
	Amount     decimal.Decimal `json:"amount" example:"120"`
	SourceID   string          `json:"sourceId" example:"3"`
	CategoryID string          `json:"categoryId" example:"food"`
	Date       time.Time       `json:"date" example:"2024-05-01T12:00:00Z"`
	Note       string          `json:"note" example:"Lunch"`
	Type       TransactionType `json:"type" example:"EXPENSE"`
}

// Effect is the balance delta this transaction contributes to its source.
func (t Transaction) Effect() decimal.Decimal {
	return Signed(t.Amount, t.Type)
}

// Budget is a spending limit for a category over a recurring period.
type Budget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId" example:"food"`
	Limit      decimal.Decimal `json:"limit" example:"3000"`
	Period     Period          `json:"period" example:"MONTHLY"`
}

// Goal is a savings target with manually tracked progress.
type Goal struct {
	ID             string           `json:"id"`
	Title          string           `json:"title" example:"New bike"`
	TargetAmount   decimal.Decimal  `json:"targetAmount" example:"1000"`
	CurrentAmount  decimal.Decimal  `json:"currentAmount" example:"950"`
	PeriodicTarget *decimal.Decimal `json:"periodicTarget,omitempty" example:"50"`
}

func (g Goal) clone() Goal {
	if g.PeriodicTarget != nil {
		p := *g.PeriodicTarget
		g.PeriodicTarget = &p
	}
	return g
}

// TransactionInput is the data needed to record a transaction.
type TransactionInput struct {
	Amount     decimal.Decimal `json:"amount" example:"120"`
	SourceID   string          `json:"sourceId" example:"3"`
	CategoryID string          `json:"categoryId" example:"food"`
	Date       time.Time       `json:"date" example:"2024-05-01T12:00:00Z"` // Defaults to now
	Note       string          `json:"note" example:"Lunch"`
	Type       TransactionType `json:"type" example:"EXPENSE"`
}

// TransactionUpdate lists the fields to change on a transaction. Nil fields
// stay unchanged.
type TransactionUpdate struct {
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	SourceID   *string          `json:"sourceId,omitempty"`
	CategoryID *string          `json:"categoryId,omitempty"`
	Date       *time.Time       `json:"date,omitempty"`
	Note       *string          `json:"note,omitempty"`
	Type       *TransactionType `json:"type,omitempty"`
}

type SourceInput struct {
	Name    string          `json:"name" example:"Savings"`
	Balance decimal.Decimal `json:"balance" example:"1200"` // Starting balance
	Kind    SourceKind      `json:"type" example:"BANK"`    // Defaults to OTHER
	Color   string          `json:"color" example:"bg-blue-500"`
}

// SourceUpdate lists the fields to change on a source. A changed balance is
// treated as a manual correction.
type SourceUpdate struct {
	Name    *string          `json:"name,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
	Kind    *SourceKind      `json:"type,omitempty"`
	Color   *string          `json:"color,omitempty"`
}

type CategoryInput struct {
	Name  string `json:"name" example:"Groceries"`
	Icon  string `json:"icon" example:"🛒"`
	Color string `json:"color" example:"#22c55e"`
}

type CategoryUpdate struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

type GoalInput struct {
	Title          string           `json:"title" example:"New bike"`
	TargetAmount   decimal.Decimal  `json:"targetAmount" example:"1000"`
	CurrentAmount  decimal.Decimal  `json:"currentAmount" example:"0"`
	PeriodicTarget *decimal.Decimal `json:"periodicTarget,omitempty" example:"50"`
}

// GoalUpdate lists the fields to change on a goal. Setting PeriodicTarget to
// zero removes the periodic target.
type GoalUpdate struct {
	Title          *string          `json:"title,omitempty"`
	TargetAmount   *decimal.Decimal `json:"targetAmount,omitempty"`
	CurrentAmount  *decimal.Decimal `json:"currentAmount,omitempty"`
	PeriodicTarget *decimal.Decimal `json:"periodicTarget,omitempty"`
}

// DepositInput moves money from a source into a goal.
type DepositInput struct {
	GoalID     string          `json:"-"`
	SourceID   string          `json:"sourceId" example:"1"`
	Amount     decimal.Decimal `json:"amount" example:"50"`
	CategoryID string          `json:"categoryId,omitempty"` // Defaults to the first category
	Date       time.Time       `json:"date"`                 // Defaults to now
}

// DepositResult is the outcome of a goal deposit.
type DepositResult struct {
	Transaction Transaction `json:"transaction"`
	Source      Source      `json:"source"`
	Goal        Goal        `json:"goal"`
	Completed   bool        `json:"completed"`     // The goal is reached after the deposit
	JustReached bool        `json:"justCompleted"` // This deposit crossed the target
}

// BalanceDrift reports a source whose cached balance disagrees with its
// transaction history.
type BalanceDrift struct {
	SourceID string          `json:"sourceId"`
	Cached   decimal.Decimal `json:"cached"`
	Expected decimal.Decimal `json:"expected"`
}
