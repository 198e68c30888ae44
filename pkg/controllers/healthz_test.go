package controllers_test

import (
	"errors"
	"net/http"

	"github.com/smartspend/backend/pkg/controllers"
	"github.com/smartspend/backend/pkg/ledger"
	"github.com/smartspend/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestHealthzSuccess() {
	suite.controller.Health = fakePinger{}

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestHealthzPingFails() {
	suite.controller.Health = fakePinger{err: errors.New("database is locked")}

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusServiceUnavailable)

	var health controllers.HealthResponse
	test.DecodeResponse(suite.T(), &recorder, &health)
	assert.Equal(suite.T(), "database is locked", health.Error)
}

func (suite *TestSuiteStandard) TestHealthzUnsavedChanges() {
	suite.failWrites()
	_, _ = suite.controller.Ledger.AddTransaction(suite.T().Context(), ledger.TransactionInput{Amount: dec("1"), SourceID: "1"})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusServiceUnavailable)

	suite.backend.FailWrites(nil)
	assert.Nil(suite.T(), suite.controller.Ledger.Save(suite.T().Context()))

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}
