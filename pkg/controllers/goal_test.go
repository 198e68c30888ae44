package controllers_test

import (
	"net/http"

	"github.com/smartspend/backend/pkg/controllers"
	"github.com/smartspend/backend/pkg/ledger"
	"github.com/smartspend/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestGoal(in ledger.GoalInput) controllers.Goal {
	r := suite.request(http.MethodPost, "/v1/goals", in)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var goal controllers.GoalResponse
	test.DecodeResponse(suite.T(), &r, &goal)
	return *goal.Data
}

func (suite *TestSuiteStandard) TestGoalLifecycle() {
	goal := suite.createTestGoal(ledger.GoalInput{Title: "Bike", TargetAmount: dec("1000"), CurrentAmount: dec("250"), PeriodicTarget: ptr(dec("50"))})
	assertDecimal(suite.T(), "25", goal.Progress.Percent)
	assert.False(suite.T(), goal.Progress.Completed)
	if assert.NotNil(suite.T(), goal.PeriodicTarget) {
		assertDecimal(suite.T(), "50", *goal.PeriodicTarget)
	}

	r := suite.request(http.MethodPatch, "/v1/goals/"+goal.ID, map[string]any{"title": "E-Bike", "periodicTarget": 0})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated controllers.GoalResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "E-Bike", updated.Data.Title)
	assert.Nil(suite.T(), updated.Data.PeriodicTarget)
	assertDecimal(suite.T(), "250", updated.Data.CurrentAmount)

	r = suite.request(http.MethodGet, "/v1/goals", nil)
	var list controllers.GoalListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 1)

	r = suite.request(http.MethodDelete, "/v1/goals/"+goal.ID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, "/v1/goals/"+goal.ID, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalInvalid() {
	r := suite.request(http.MethodPost, "/v1/goals", map[string]any{"title": "Bike", "targetAmount": "-1"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	goal := suite.createTestGoal(ledger.GoalInput{Title: "Bike", TargetAmount: dec("1000")})

	r = suite.request(http.MethodPatch, "/v1/goals/"+goal.ID, map[string]any{"currentAmount": "-5"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPatch, "/v1/goals/gone", map[string]any{"title": "x"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(http.MethodDelete, "/v1/goals/gone", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeposit() {
	goal := suite.createTestGoal(ledger.GoalInput{Title: "Bike", TargetAmount: dec("1000"), CurrentAmount: dec("950")})

	r := suite.request(http.MethodPost, "/v1/goals/"+goal.ID+"/deposit", map[string]any{"sourceId": "1", "amount": "50"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var deposit controllers.DepositResponse
	test.DecodeResponse(suite.T(), &r, &deposit)
	assert.True(suite.T(), deposit.Data.Completed)
	assert.True(suite.T(), deposit.Data.JustReached)
	assertDecimal(suite.T(), "4950", deposit.Data.Source.Balance)
	assertDecimal(suite.T(), "1000", deposit.Data.Goal.CurrentAmount)
	assert.Equal(suite.T(), "Deposit to goal: Bike", deposit.Data.Transaction.Note)
	assert.Equal(suite.T(), ledger.Expense, deposit.Data.Transaction.Type)

	r = suite.request(http.MethodGet, "/v1/goals/"+goal.ID, nil)
	var got controllers.GoalResponse
	test.DecodeResponse(suite.T(), &r, &got)
	assert.True(suite.T(), got.Data.Progress.Completed)
	assertDecimal(suite.T(), "100", got.Data.Progress.Percent)

	r = suite.request(http.MethodGet, "/v1/sources/1/transactions", nil)
	var transactions controllers.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	assert.Len(suite.T(), transactions.Data, 1)
}

func (suite *TestSuiteStandard) TestDepositErrors() {
	goal := suite.createTestGoal(ledger.GoalInput{Title: "Bike", TargetAmount: dec("1000")})

	tests := []struct {
		name   string
		goal   string
		body   any
		status int
	}{
		{"Unknown goal", "gone", map[string]any{"sourceId": "1", "amount": "5"}, http.StatusNotFound},
		{"Unknown source", goal.ID, map[string]any{"sourceId": "99", "amount": "5"}, http.StatusNotFound},
		{"Zero amount", goal.ID, map[string]any{"sourceId": "1", "amount": "0"}, http.StatusBadRequest},
		{"Negative amount", goal.ID, map[string]any{"sourceId": "1", "amount": "-5"}, http.StatusBadRequest},
		{"Insufficient funds", goal.ID, map[string]any{"sourceId": "3", "amount": "500.01"}, http.StatusBadRequest},
		{"Empty body", goal.ID, "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/goals/"+tt.goal+"/deposit", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	assert.Empty(suite.T(), suite.controller.Ledger.Transactions())
	assertDecimal(suite.T(), "11500", suite.controller.Ledger.GetBalance())
}

func (suite *TestSuiteStandard) TestDepositInsufficientFundsMessage() {
	goal := suite.createTestGoal(ledger.GoalInput{Title: "Bike", TargetAmount: dec("1000")})

	r := suite.request(http.MethodPost, "/v1/goals/"+goal.ID+"/deposit", map[string]any{"sourceId": "3", "amount": "600"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var deposit controllers.DepositResponse
	test.DecodeResponse(suite.T(), &r, &deposit)
	assert.Nil(suite.T(), deposit.Data)
	assert.Contains(suite.T(), deposit.Error, "Cash")
}
