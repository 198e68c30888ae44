package controllers

import (
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/pkg/insight"
	"github.com/smartspend/backend/pkg/ledger"
)

// We use one type per endpoint so that swagger can parse them - it cannot handle generics yet, see
// https://github.com/swaggo/swag/issues/1170

type SourceResponse struct {
	Error string         `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *ledger.Source `json:"data"`                                           // This field contains the Source data
}

type SourceListResponse struct {
	Error string          `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  []ledger.Source `json:"data"`                                           // List of Sources
}

type CategoryResponse struct {
	Error string           `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *ledger.Category `json:"data"`                                           // This field contains the Category data
}

type CategoryListResponse struct {
	Error string            `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  []ledger.Category `json:"data"`                                           // List of Categories
}

type TransactionResponse struct {
	Error string              `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *ledger.Transaction `json:"data"`                                           // This field contains the Transaction data
}

type TransactionListResponse struct {
	Error string               `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  []ledger.Transaction `json:"data"`                                           // List of Transactions
}

type BudgetResponse struct {
	Error string         `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *ledger.Budget `json:"data"`                                           // This field contains the Budget data
}

type BudgetListResponse struct {
	Error string          `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  []ledger.Budget `json:"data"`                                           // List of Budgets
}

type BudgetProgressListResponse struct {
	Error string                  `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  []ledger.BudgetProgress `json:"data"`                                           // Progress of every budget in its current period
}

// Goal is a goal with its progress.
type Goal struct {
	ledger.Goal
	Progress ledger.GoalProgress `json:"progress"`
}

func newGoal(g ledger.Goal) Goal {
	return Goal{Goal: g, Progress: ledger.GoalProgressOf(g)}
}

type GoalResponse struct {
	Error string `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *Goal  `json:"data"`                                           // This field contains the Goal data
}

type GoalListResponse struct {
	Error string `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  []Goal `json:"data"`                                           // List of Goals
}

type DepositResponse struct {
	Error string                `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *ledger.DepositResult `json:"data"`                                           // The transaction, source and goal after the deposit
}

type Balance struct {
	Total     decimal.Decimal       `json:"total" example:"11500"`          // Sum of all source balances
	Formatted string                `json:"formatted" example:"฿11,500.00"` // Total in the configured currency
	Sources   []ledger.Source       `json:"sources"`                        // All sources with their balances
	Drift     []ledger.BalanceDrift `json:"drift"`                          // Sources whose balance disagrees with their history
}

type BalanceResponse struct {
	Error string   `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *Balance `json:"data"`                                           // Balance data
}

type Summary struct {
	Month string `json:"month" example:"2024-05"`
	ledger.Totals
	Categories []ledger.CategorySpend  `json:"categories"`
	Budgets    []ledger.BudgetProgress `json:"budgets"`
}

type SummaryResponse struct {
	Error string   `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *Summary `json:"data"`                                           // Summary of the month
}

type InsightResponse struct {
	Error string           `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *insight.Insight `json:"data"`                                           // The insight, null if none could be generated
}
