package ledger_test

import (
	"context"
	"testing"

	"github.com/smartspend/backend/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetBudgetUnique verifies that there is at most one budget per category
// and period.
func (suite *TestSuiteStandard) TestSetBudgetUnique() {
	ctx := context.Background()

	first, err := suite.store.SetBudget(ctx, "food", d("100"), ledger.Monthly)
	require.Nil(suite.T(), err)

	second, err := suite.store.SetBudget(ctx, "food", d("250"), ledger.Monthly)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), first.ID, second.ID)

	weekly, err := suite.store.SetBudget(ctx, "food", d("40"), ledger.Weekly)
	require.Nil(suite.T(), err)
	assert.NotEqual(suite.T(), first.ID, weekly.ID)

	budgets := suite.store.Budgets()
	require.Len(suite.T(), budgets, 2)
	assertDecimal(suite.T(), "250", budgets[0].Limit)
	assert.Equal(suite.T(), ledger.Weekly, budgets[1].Period)
}

func (suite *TestSuiteStandard) TestSetBudgetValidation() {
	ctx := context.Background()

	tests := []struct {
		name   string
		limit  string
		period ledger.Period
		err    error
	}{
		{"Invalid period", "100", "YEARLY", ledger.ErrInvalidPeriod},
		{"Empty period", "100", "", ledger.ErrInvalidPeriod},
		{"Negative limit", "-1", ledger.Monthly, ledger.ErrNegativeAmount},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.store.SetBudget(ctx, "food", d(tt.limit), tt.period)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, ledger.IsValidation(err))
		})
	}

	assert.Empty(suite.T(), suite.store.Budgets())
}

func (suite *TestSuiteStandard) TestSetBudgetZeroLimit() {
	b, err := suite.store.SetBudget(context.Background(), "food", d("0"), ledger.Monthly)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), b.Limit.IsZero())
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	ctx := context.Background()

	b, err := suite.store.SetBudget(ctx, "food", d("100"), ledger.Monthly)
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), suite.store.DeleteBudget(ctx, b.ID))
	assert.Empty(suite.T(), suite.store.Budgets())

	assert.ErrorIs(suite.T(), suite.store.DeleteBudget(ctx, b.ID), ledger.ErrBudgetNotFound)
}
