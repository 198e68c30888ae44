package controllers_test

import (
	"net/http"

	"github.com/smartspend/backend/pkg/controllers"
	"github.com/smartspend/backend/pkg/ledger"
	"github.com/smartspend/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateTransaction() {
	r := suite.request(http.MethodPost, "/v1/transactions", ledger.TransactionInput{Amount: dec("120"), SourceID: "3", CategoryID: "food", Note: "Lunch", Type: ledger.Expense})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var transaction controllers.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &transaction)
	assert.Equal(suite.T(), "Lunch", transaction.Data.Note)
	assert.True(suite.T(), now.Equal(transaction.Data.Date), "Date defaults to now, got %s", transaction.Data.Date)
	assertDecimal(suite.T(), "380", suite.balanceOf("3"))

	r = suite.request(http.MethodPost, "/v1/transactions", map[string]any{"amount": "1000", "sourceId": "1", "categoryId": "housing", "type": "INCOME"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	assertDecimal(suite.T(), "6000", suite.balanceOf("1"))

	r = suite.request(http.MethodGet, "/v1/balance", nil)
	var balance controllers.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &balance)
	assertDecimal(suite.T(), "12380", balance.Data.Total)
}

func (suite *TestSuiteStandard) TestCreateTransactionDefaultsToExpense() {
	r := suite.request(http.MethodPost, "/v1/transactions", map[string]any{"amount": 20, "sourceId": "2"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var transaction controllers.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &transaction)
	assert.Equal(suite.T(), ledger.Expense, transaction.Data.Type)
	assertDecimal(suite.T(), "5980", suite.balanceOf("2"))
}

func (suite *TestSuiteStandard) TestCreateTransactionUnknownSource() {
	r := suite.request(http.MethodPost, "/v1/transactions", ledger.TransactionInput{Amount: dec("50"), SourceID: "gone"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	assertDecimal(suite.T(), "11500", suite.controller.Ledger.GetBalance())
	assert.Len(suite.T(), suite.controller.Ledger.Transactions(), 1)
}

func (suite *TestSuiteStandard) TestCreateTransactionInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"Negative amount", map[string]any{"amount": "-5", "sourceId": "1"}},
		{"Invalid type", map[string]any{"amount": "5", "sourceId": "1", "type": "REFUND"}},
		{"Broken date", map[string]any{"amount": "5", "sourceId": "1", "date": "yesterday"}},
		{"Broken JSON", `{"amount": 5`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/transactions", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}

	assert.Empty(suite.T(), suite.controller.Ledger.Transactions())
	assertDecimal(suite.T(), "11500", suite.controller.Ledger.GetBalance())
}

func (suite *TestSuiteStandard) TestGetTransactionsFilter() {
	suite.createTestTransaction(ledger.TransactionInput{Amount: dec("10"), SourceID: "3", CategoryID: "food", Date: date(4, 30), Note: "Lunch at work", Type: ledger.Expense})
	suite.createTestTransaction(ledger.TransactionInput{Amount: dec("1000"), SourceID: "1", CategoryID: "housing", Date: date(5, 1), Note: "Salary", Type: ledger.Income})
	suite.createTestTransaction(ledger.TransactionInput{Amount: dec("12"), SourceID: "3", CategoryID: "food", Date: date(5, 2), Note: "Lunch", Type: ledger.Expense})
	suite.createTestTransaction(ledger.TransactionInput{Amount: dec("200"), SourceID: "2", CategoryID: "transport", Date: date(5, 3), Note: "Train pass", Type: ledger.Transfer})

	tests := []struct {
		name  string
		query string
		notes []string
	}{
		{"All", "", []string{"Train pass", "Lunch", "Salary", "Lunch at work"}},
		{"Source", "source=3", []string{"Lunch", "Lunch at work"}},
		{"Category", "category=housing", []string{"Salary"}},
		{"Type", "type=TRANSFER", []string{"Train pass"}},
		{"Note glob", "note=Lunch*", []string{"Lunch", "Lunch at work"}},
		{"From", "from=2024-05-01T00:00:00Z", []string{"Train pass", "Lunch", "Salary"}},
		{"Range", "from=2024-05-01T00:00:00Z&until=2024-05-03T00:00:00Z", []string{"Lunch", "Salary"}},
		{"Combined", "source=3&from=2024-05-01T00:00:00Z", []string{"Lunch"}},
		{"Nothing", "category=health", []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, "/v1/transactions?"+tt.query, nil)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var list controllers.TransactionListResponse
			test.DecodeResponse(suite.T(), &r, &list)

			notes := []string{}
			for _, t := range list.Data {
				notes = append(notes, t.Note)
			}
			assert.Equal(suite.T(), tt.notes, notes)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsInvalidQuery() {
	for _, query := range []string{"type=REFUND", "from=yesterday"} {
		suite.Run(query, func() {
			r := suite.request(http.MethodGet, "/v1/transactions?"+query, nil)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	t := suite.createTestTransaction(ledger.TransactionInput{Amount: dec("100"), SourceID: "3", CategoryID: "food", Type: ledger.Expense})
	assertDecimal(suite.T(), "400", suite.balanceOf("3"))

	// Moving the transaction to another source reverts it on the old one
	r := suite.request(http.MethodPatch, "/v1/transactions/"+t.ID, ledger.TransactionUpdate{Amount: ptr(dec("150")), SourceID: ptr("1")})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var transaction controllers.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &transaction)
	assertDecimal(suite.T(), "150", transaction.Data.Amount)
	assert.Equal(suite.T(), "food", transaction.Data.CategoryID)
	assertDecimal(suite.T(), "500", suite.balanceOf("3"))
	assertDecimal(suite.T(), "4850", suite.balanceOf("1"))

	r = suite.request(http.MethodPatch, "/v1/transactions/"+t.ID, map[string]any{"type": "INCOME"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assertDecimal(suite.T(), "5150", suite.balanceOf("1"))
	assert.Empty(suite.T(), suite.controller.Ledger.CheckBalances())
}

func (suite *TestSuiteStandard) TestUpdateTransactionErrors() {
	t := suite.createTestTransaction(ledger.TransactionInput{Amount: dec("100"), SourceID: "3"})

	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Unknown", "gone", map[string]any{"note": "x"}, http.StatusNotFound},
		{"Negative amount", t.ID, map[string]any{"amount": "-1"}, http.StatusBadRequest},
		{"Invalid type", t.ID, map[string]any{"type": "GIFT"}, http.StatusBadRequest},
		{"Empty body", t.ID, "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPatch, "/v1/transactions/"+tt.id, tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	assertDecimal(suite.T(), "400", suite.balanceOf("3"))
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	t := suite.createTestTransaction(ledger.TransactionInput{Amount: dec("1000"), SourceID: "2", Type: ledger.Income})
	assertDecimal(suite.T(), "7000", suite.balanceOf("2"))

	r := suite.request(http.MethodDelete, "/v1/transactions/"+t.ID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assertDecimal(suite.T(), "6000", suite.balanceOf("2"))

	r = suite.request(http.MethodGet, "/v1/transactions/"+t.ID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodDelete, "/v1/transactions/"+t.ID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteTransactionPersistenceFailure() {
	t := suite.createTestTransaction(ledger.TransactionInput{Amount: dec("100"), SourceID: "3"})
	suite.failWrites()

	r := suite.request(http.MethodDelete, "/v1/transactions/"+t.ID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusServiceUnavailable)
	assertDecimal(suite.T(), "500", suite.balanceOf("3"))

	suite.backend.FailWrites(nil)
	assert.Nil(suite.T(), suite.controller.Ledger.Save(suite.T().Context()))
}
