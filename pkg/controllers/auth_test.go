package controllers_test

import (
	"context"
	"net/http"

	"github.com/smartspend/backend/pkg/auth"
	"github.com/smartspend/backend/pkg/controllers"
	"github.com/smartspend/backend/pkg/storage"
	"github.com/smartspend/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func (suite *TestSuiteStandard) TestAuthStatus() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/auth/status", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var status controllers.AuthStatusResponse
	test.DecodeResponse(suite.T(), &r, &status)
	assert.True(suite.T(), status.Data.HasAccount)
	assert.True(suite.T(), status.Data.Authenticated)
	assert.Equal(suite.T(), "alice", status.Data.User)

	r = suite.request(http.MethodPost, "/v1/auth/logout", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/auth/status", nil)
	test.DecodeResponse(suite.T(), &r, &status)
	assert.True(suite.T(), status.Data.HasAccount)
	assert.False(suite.T(), status.Data.Authenticated)
	assert.Equal(suite.T(), "", status.Data.User)
}

func (suite *TestSuiteStandard) TestLogin() {
	r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/login", controllers.Credentials{Username: "alice", Password: "correct horse"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var session controllers.SessionResponse
	test.DecodeResponse(suite.T(), &r, &session)
	assert.Equal(suite.T(), "alice", session.Data.User)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/sources", nil, test.Bearer(session.Data.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Wrong password", controllers.Credentials{Username: "alice", Password: "battery staple"}, http.StatusUnauthorized},
		{"Wrong user", controllers.Credentials{Username: "bob", Password: "correct horse"}, http.StatusUnauthorized},
		{"Empty body", "", http.StatusBadRequest},
		{"Broken JSON", `{"username": "alice"`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/login", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestRegister() {
	gate, err := auth.New(storage.NewMemory(), []byte("secret"), auth.WithBcryptCost(bcrypt.MinCost))
	require.Nil(suite.T(), err)
	co := suite.controller
	co.Auth = gate

	r := test.Request(co, suite.T(), http.MethodPost, "http://example.com/v1/auth/register", controllers.Credentials{Username: "bob", Password: "hunter2"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var session controllers.SessionResponse
	test.DecodeResponse(suite.T(), &r, &session)
	assert.Equal(suite.T(), "bob", session.Data.User)

	r = test.Request(co, suite.T(), http.MethodGet, "http://example.com/v1/sources", nil, test.Bearer(session.Data.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestRegisterReplacesAccountWithSession() {
	r := suite.request(http.MethodPost, "/v1/auth/register", controllers.Credentials{Username: "bob", Password: "hunter2"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var session controllers.SessionResponse
	test.DecodeResponse(suite.T(), &r, &session)
	assert.Equal(suite.T(), "bob", session.Data.User)

	// The previous user's token is no longer valid
	r = suite.request(http.MethodGet, "/v1/sources", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/sources", nil, test.Bearer(session.Data.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestRegisterExistingAccount() {
	tests := []struct {
		name    string
		headers map[string]string
		status  int
	}{
		{"Anonymous", map[string]string{}, http.StatusConflict},
		{"Invalid token", test.Bearer("not-a-token"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/register", controllers.Credentials{Username: "mallory", Password: "pw"}, tt.headers)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)

			var session controllers.SessionResponse
			test.DecodeResponse(suite.T(), &r, &session)
			assert.Nil(suite.T(), session.Data)
		})
	}

	// The account and its session are untouched
	r := suite.request(http.MethodGet, "/v1/transactions", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/login", controllers.Credentials{Username: "alice", Password: "correct horse"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/login", controllers.Credentials{Username: "mallory", Password: "pw"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestRegisterMissingCredentials() {
	r := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/register", controllers.Credentials{Username: "bob"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRequireSession() {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"No header", map[string]string{}},
		{"Not bearer", map[string]string{"Authorization": "Basic YWxpY2U6cHc="}},
		{"Empty token", test.Bearer("")},
		{"Garbage", test.Bearer("not-a-token")},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/transactions", nil, tt.headers)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
		})
	}
}

func (suite *TestSuiteStandard) TestLogoutInvalidatesToken() {
	r := suite.request(http.MethodPost, "/v1/auth/logout", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, "/v1/sources", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	ok, err := suite.controller.Auth.IsAuthenticated(context.Background())
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), ok)
}
