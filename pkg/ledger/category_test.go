package ledger_test

import (
	"context"

	"github.com/smartspend/backend/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryLifecycle() {
	ctx := context.Background()

	c, err := suite.store.AddCategory(ctx, ledger.CategoryInput{Name: "Pets", Icon: "🐶", Color: "#000000"})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), suite.store.Categories(), 9)

	c, err = suite.store.UpdateCategory(ctx, c.ID, ledger.CategoryUpdate{Name: ptr("Animals")})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Animals", c.Name)
	assert.Equal(suite.T(), "🐶", c.Icon)

	require.Nil(suite.T(), suite.store.DeleteCategory(ctx, c.ID))
	_, err = suite.store.Category(c.ID)
	assert.ErrorIs(suite.T(), err, ledger.ErrCategoryNotFound)
}

// TestDeleteCategoryDangling verifies that transactions keep their category
// ID after the category is deleted and resolve to "Uncategorized".
func (suite *TestSuiteStandard) TestDeleteCategoryDangling() {
	ctx := context.Background()
	tx := suite.createTestTransaction(ledger.TransactionInput{Amount: d("30"), SourceID: "3", CategoryID: "food", Date: now})
	_, err := suite.store.SetBudget(ctx, "food", d("100"), ledger.Monthly)
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), suite.store.DeleteCategory(ctx, "food"))

	got, err := suite.store.Transaction(tx.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "food", got.CategoryID)
	assert.Len(suite.T(), suite.store.Budgets(), 1)

	snapshot := suite.store.Snapshot()
	assert.Equal(suite.T(), ledger.UncategorizedName, snapshot.CategoryName("food"))
	assertDecimal(suite.T(), "30", snapshot.BudgetProgress(now)[0].Spent)
}

func (suite *TestSuiteStandard) TestUnknownCategory() {
	ctx := context.Background()

	_, err := suite.store.UpdateCategory(ctx, "nope", ledger.CategoryUpdate{Name: ptr("x")})
	assert.ErrorIs(suite.T(), err, ledger.ErrCategoryNotFound)

	err = suite.store.DeleteCategory(ctx, "nope")
	assert.ErrorIs(suite.T(), err, ledger.ErrCategoryNotFound)
	assert.Len(suite.T(), suite.store.Categories(), 8)
}
