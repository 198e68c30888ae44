package ledger

import "github.com/shopspring/decimal"

// DefaultKey is the storage key the ledger snapshot lives under.
const DefaultKey = "smartspend_data_v1"

// UncategorizedName is shown for transactions whose category does not exist.
const UncategorizedName = "Uncategorized"

// DefaultSources returns the sources a new ledger starts with.
func DefaultSources() []Source {
	return []Source{
		{ID: "1", Name: "Bank A", Balance: decimal.NewFromInt(5000), InitialBalance: decimal.NewFromInt(5000), Kind: Bank, Color: "bg-blue-500"},
		{ID: "2", Name: "Bank B", Balance: decimal.NewFromInt(6000), InitialBalance: decimal.NewFromInt(6000), Kind: Bank, Color: "bg-indigo-500"},
		{ID: "3", Name: "Cash", Balance: decimal.NewFromInt(500), InitialBalance: decimal.NewFromInt(500), Kind: Cash, Color: "bg-green-500"},
	}
}

// DefaultCategories returns the categories a new ledger starts with.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food & Dining", Icon: "🍽️", Color: "#ef4444"},
		{ID: "transport", Name: "Transportation", Icon: "🚌", Color: "#f59e0b"},
		{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#ec4899"},
		{ID: "personal", Name: "Personal Care", Icon: "💇", Color: "#8b5cf6"},
		{ID: "housing", Name: "Housing", Icon: "🏠", Color: "#3b82f6"},
		{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#10b981"},
		{ID: "utilities", Name: "Utilities", Icon: "⚡", Color: "#6366f1"},
		{ID: "health", Name: "Health", Icon: "⚕️", Color: "#ef4444"},
	}
}

// DefaultSnapshot is the state of a ledger that has never been saved.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Transactions: []Transaction{},
		Sources:      DefaultSources(),
		Categories:   DefaultCategories(),
		Budgets:      []Budget{},
		Goals:        []Goal{},
	}
}
