package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/auth"
	"github.com/smartspend/backend/pkg/httputil"
	"github.com/smartspend/backend/pkg/ledger"
)

var (
	errMissingToken    = errors.New("this endpoint requires a session token in the Authorization header")
	errLoginFailed     = errors.New("the username or password is wrong")
	errNoInsight       = errors.New("no insight could be generated right now")
	errInvalidMonth    = errors.New("could not parse the specified month, did you use YYYY-MM format?")
	errMissingCategory = errors.New("the categoryId must be set")
)

// status returns the HTTP status for an error returned by the store.
func status(err error) int {
	switch {
	case ledger.IsNotFound(err):
		return http.StatusNotFound
	case ledger.IsValidation(err),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, httputil.ErrInvalidQueryString),
		errors.Is(err, errInvalidMonth),
		errors.Is(err, errMissingCategory):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrPersistence):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// result maps the outcome of a store operation to the response status and
// error message. keep reports whether the data belongs in the response:
// after a failed save the change is applied in memory, so the data is
// returned along with the error.
func result(c *gin.Context, err error, success int) (code int, msg string, keep bool) {
	if err == nil {
		return success, "", true
	}

	code = status(err)
	if code == http.StatusInternalServerError {
		return code, httputil.InternalError(c, err), false
	}

	return code, err.Error(), code == http.StatusServiceUnavailable
}

// fail writes an error response with an empty data field.
func fail(c *gin.Context, err error) {
	code, msg, _ := result(c, err, http.StatusOK)
	c.JSON(code, httputil.HTTPError{Error: msg})
}
