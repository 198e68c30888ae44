package ledger_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario walks through adding, editing and deleting transactions on
// the default cash source.
func (suite *TestSuiteStandard) TestScenario() {
	ctx := context.Background()
	assertDecimal(suite.T(), "500", suite.balance("3"))

	expense := suite.createTestTransaction(ledger.TransactionInput{Amount: d("120"), SourceID: "3", CategoryID: "food", Type: ledger.Expense})
	assertDecimal(suite.T(), "380", suite.balance("3"))

	income := suite.createTestTransaction(ledger.TransactionInput{Amount: d("1000"), SourceID: "3", Type: ledger.Income})
	assertDecimal(suite.T(), "1380", suite.balance("3"))

	_, err := suite.store.UpdateTransaction(ctx, expense.ID, ledger.TransactionUpdate{Amount: ptr(d("20"))})
	require.Nil(suite.T(), err)
	assertDecimal(suite.T(), "1280", suite.balance("3"))

	require.Nil(suite.T(), suite.store.DeleteTransaction(ctx, income.ID))
	assertDecimal(suite.T(), "280", suite.balance("3"))

	suite.assertInvariant()
}

func (suite *TestSuiteStandard) TestAddTransactionOrderAndDefaults() {
	first := suite.createTestTransaction(ledger.TransactionInput{Amount: d("1"), SourceID: "1", Date: now.AddDate(0, 0, 5)})
	second := suite.createTestTransaction(ledger.TransactionInput{Amount: d("-2"), SourceID: "1"})

	transactions := suite.store.Transactions()
	require.Len(suite.T(), transactions, 2)

	// Newest insertion first, independent of the date
	assert.Equal(suite.T(), second.ID, transactions[0].ID)
	assert.Equal(suite.T(), first.ID, transactions[1].ID)

	// Magnitude is stored, type defaults to expense, date to now
	assertDecimal(suite.T(), "2", second.Amount)
	assert.Equal(suite.T(), ledger.Expense, second.Type)
	assert.True(suite.T(), now.Equal(second.Date))

	assertDecimal(suite.T(), "4997", suite.balance("1"))
}

func (suite *TestSuiteStandard) TestAddTransactionInvalidType() {
	_, err := suite.store.AddTransaction(context.Background(), ledger.TransactionInput{Amount: d("1"), SourceID: "1", Type: "REFUND"})
	assert.ErrorIs(suite.T(), err, ledger.ErrInvalidTransactionType)
	assert.Empty(suite.T(), suite.store.Transactions())
}

func (suite *TestSuiteStandard) TestAddTransactionUnknownSource() {
	before := suite.store.GetBalance()

	tx := suite.createTestTransaction(ledger.TransactionInput{Amount: d("10"), SourceID: "does-not-exist"})

	assert.True(suite.T(), before.Equal(suite.store.GetBalance()))
	_, err := suite.store.Transaction(tx.ID)
	assert.Nil(suite.T(), err)
	suite.assertInvariant()
}

func (suite *TestSuiteStandard) TestUpdateTransactionReconciliation() {
	ctx := context.Background()

	tests := []struct {
		name     string
		update   ledger.TransactionUpdate
		balance1 string // Bank A, starts at 5000
		balance2 string // Bank B, starts at 6000
	}{
		{"Shrink amount", ledger.TransactionUpdate{Amount: ptr(d("40"))}, "4960", "6000"},
		{"Move source", ledger.TransactionUpdate{SourceID: ptr("2")}, "5000", "5900"},
		{"Flip to income", ledger.TransactionUpdate{Type: ptr(ledger.Income)}, "5100", "6000"},
		{"Move and change", ledger.TransactionUpdate{SourceID: ptr("2"), Amount: ptr(d("250")), Type: ptr(ledger.Income)}, "5000", "6250"},
		{"Transfer debits", ledger.TransactionUpdate{Type: ptr(ledger.Transfer)}, "4900", "6000"},
		{"Note only", ledger.TransactionUpdate{Note: ptr("changed")}, "4900", "6000"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.SetupTest()

			tx := suite.createTestTransaction(ledger.TransactionInput{Amount: d("100"), SourceID: "1", Type: ledger.Expense})
			assertDecimal(t, "4900", suite.balance("1"))

			_, err := suite.store.UpdateTransaction(ctx, tx.ID, tt.update)
			require.Nil(t, err)

			assertDecimal(t, tt.balance1, suite.balance("1"))
			assertDecimal(t, tt.balance2, suite.balance("2"))
			suite.assertInvariant()
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateTransactionKeepsOtherFields() {
	date := now.AddDate(0, -1, 0)
	tx := suite.createTestTransaction(ledger.TransactionInput{Amount: d("100"), SourceID: "1", CategoryID: "food", Date: date, Note: "Dinner", Type: ledger.Expense})

	updated, err := suite.store.UpdateTransaction(context.Background(), tx.ID, ledger.TransactionUpdate{CategoryID: ptr("health")})
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), "health", updated.CategoryID)
	assert.Equal(suite.T(), "Dinner", updated.Note)
	assert.Equal(suite.T(), "1", updated.SourceID)
	assert.True(suite.T(), date.Equal(updated.Date))
	assertDecimal(suite.T(), "100", updated.Amount)
}

func (suite *TestSuiteStandard) TestUpdateTransactionToUnknownSource() {
	tx := suite.createTestTransaction(ledger.TransactionInput{Amount: d("100"), SourceID: "1"})

	_, err := suite.store.UpdateTransaction(context.Background(), tx.ID, ledger.TransactionUpdate{SourceID: ptr("gone")})
	require.Nil(suite.T(), err)

	assertDecimal(suite.T(), "5000", suite.balance("1"))
	suite.assertInvariant()
}

func (suite *TestSuiteStandard) TestUpdateTransactionInvalidType() {
	tx := suite.createTestTransaction(ledger.TransactionInput{Amount: d("100"), SourceID: "1"})

	_, err := suite.store.UpdateTransaction(context.Background(), tx.ID, ledger.TransactionUpdate{Type: ptr(ledger.TransactionType("nope"))})
	assert.ErrorIs(suite.T(), err, ledger.ErrInvalidTransactionType)
	assertDecimal(suite.T(), "4900", suite.balance("1"))
}

func (suite *TestSuiteStandard) TestDeleteTransactionReversal() {
	tests := []struct {
		name    string
		txType  ledger.TransactionType
		balance string
	}{
		{"Expense", ledger.Expense, "450"},
		{"Income", ledger.Income, "550"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.SetupTest()

			// Seed an unrelated transaction so the balance under test is not trivially the initial one
			seed := suite.createTestTransaction(ledger.TransactionInput{Amount: d("50"), SourceID: "3", Type: tt.txType})
			_ = suite.createTestTransaction(ledger.TransactionInput{Amount: d("50"), SourceID: "3", Type: tt.txType})

			before := suite.balance("3")
			require.Nil(t, suite.store.DeleteTransaction(context.Background(), seed.ID))

			diff := suite.balance("3").Sub(before)
			if tt.txType == ledger.Expense {
				assertDecimal(t, "50", diff)
			} else {
				assertDecimal(t, "-50", diff)
			}
			assertDecimal(t, tt.balance, suite.balance("3"))
			assert.Len(t, suite.store.Transactions(), 1)
			suite.assertInvariant()
		})
	}
}

func (suite *TestSuiteStandard) TestUnknownTransaction() {
	ctx := context.Background()
	puts := suite.backend.Puts(ledger.DefaultKey)

	_, err := suite.store.UpdateTransaction(ctx, "missing", ledger.TransactionUpdate{Amount: ptr(d("1"))})
	assert.ErrorIs(suite.T(), err, ledger.ErrTransactionNotFound)
	assert.True(suite.T(), ledger.IsNotFound(err))

	err = suite.store.DeleteTransaction(ctx, "missing")
	assert.ErrorIs(suite.T(), err, ledger.ErrTransactionNotFound)

	_, err = suite.store.Transaction("missing")
	assert.ErrorIs(suite.T(), err, ledger.ErrTransactionNotFound)

	// No-ops do not write
	assert.Equal(suite.T(), puts, suite.backend.Puts(ledger.DefaultKey))
}

// TestBalanceInvariant runs a random sequence of mutations and checks the
// balance invariant after every step.
func (suite *TestSuiteStandard) TestBalanceInvariant() {
	ctx := context.Background()
	r := rand.New(rand.NewPCG(7, 42))
	sources := []string{"1", "2", "3", "unknown"}
	txTypes := []ledger.TransactionType{ledger.Expense, ledger.Income, ledger.Transfer}

	amount := func() decimal.Decimal {
		return decimal.New(int64(r.IntN(100000)), -2)
	}

	for i := range 300 {
		transactions := suite.store.Transactions()

		switch op := r.IntN(3); {
		case op == 0 || len(transactions) == 0:
			suite.createTestTransaction(ledger.TransactionInput{
				Amount:   amount(),
				SourceID: sources[r.IntN(len(sources))],
				Type:     txTypes[r.IntN(len(txTypes))],
				Date:     now.Add(time.Duration(-r.IntN(1000)) * time.Hour),
			})
		case op == 1:
			update := ledger.TransactionUpdate{}
			if r.IntN(2) == 0 {
				update.Amount = ptr(amount())
			}
			if r.IntN(2) == 0 {
				update.SourceID = ptr(sources[r.IntN(len(sources))])
			}
			if r.IntN(2) == 0 {
				update.Type = ptr(txTypes[r.IntN(len(txTypes))])
			}
			_, err := suite.store.UpdateTransaction(ctx, transactions[r.IntN(len(transactions))].ID, update)
			require.Nil(suite.T(), err, "step %d", i)
		default:
			err := suite.store.DeleteTransaction(ctx, transactions[r.IntN(len(transactions))].ID)
			require.Nil(suite.T(), err, "step %d", i)
		}

		suite.assertInvariant()
	}
}
