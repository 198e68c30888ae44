package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/httputil"
)

const contextUser = "user"

func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)
	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)
	r.OPTIONS("/logout", httputil.OptionsPost)
	r.POST("/logout", co.Logout)
	r.OPTIONS("/status", httputil.OptionsGet)
	r.GET("/status", co.GetAuthStatus)
}

type Credentials struct {
	Username string `json:"username" example:"anna"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type Session struct {
	User  string `json:"user" example:"anna"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Send as "Authorization: Bearer <token>"
}

type SessionResponse struct {
	Error string   `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *Session `json:"data"`                                           // The session
}

type AuthStatus struct {
	HasAccount    bool   `json:"hasAccount"`    // An account has been registered
	Authenticated bool   `json:"authenticated"` // There is an active session
	User          string `json:"user,omitempty" example:"anna"`
}

type AuthStatusResponse struct {
	Error string      `json:"error" example:"A human readable error message"` // This field contains a human readable error message
	Data  *AuthStatus `json:"data"`                                           // The current state of the credential gate
}

// Register creates the account and starts a session
//
//	@Summary		Register
//	@Description	Registers the local account and logs it in. Replacing an existing account requires its session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	SessionResponse
//	@Failure		400			{object}	SessionResponse
//	@Failure		401			{object}	SessionResponse
//	@Failure		409			{object}	SessionResponse
//	@Failure		500			{object}	SessionResponse
//	@Param			credentials	body		Credentials	true	"Credentials"
//	@Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var creds Credentials
	if err := httputil.BindData(c, &creds); err != nil {
		fail(c, err)
		return
	}

	ctx := c.Request.Context()
	var err error
	if token, ok := bearer(c); ok {
		err = co.Auth.Replace(ctx, token, creds.Username, creds.Password)
	} else {
		err = co.Auth.Register(ctx, creds.Username, creds.Password)
	}
	if err != nil {
		fail(c, err)
		return
	}

	co.session(c, creds.Username, http.StatusCreated)
}

// Login starts a session
//
//	@Summary		Login
//	@Description	Checks the credentials and returns a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	SessionResponse
//	@Failure		400			{object}	SessionResponse
//	@Failure		401			{object}	SessionResponse
//	@Param			credentials	body		Credentials	true	"Credentials"
//	@Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var creds Credentials
	if err := httputil.BindData(c, &creds); err != nil {
		fail(c, err)
		return
	}

	ok, err := co.Auth.Login(c.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		fail(c, err)
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, SessionResponse{Error: errLoginFailed.Error()})
		return
	}

	co.session(c, creds.Username, http.StatusOK)
}

func (co Controller) session(c *gin.Context, user string, code int) {
	token, err := co.Auth.Token(user)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(code, SessionResponse{Data: &Session{User: user, Token: token}})
}

// Logout ends the session
//
//	@Summary		Logout
//	@Description	Ends the session. All issued tokens become invalid.
//	@Tags			Auth
//	@Success		204
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/auth/logout [post]
func (co Controller) Logout(c *gin.Context) {
	if err := co.Auth.Logout(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAuthStatus returns the state of the credential gate
//
//	@Summary		Auth status
//	@Description	Returns if an account exists and if there is an active session
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthStatusResponse
//	@Failure		500	{object}	AuthStatusResponse
//	@Router			/v1/auth/status [get]
func (co Controller) GetAuthStatus(c *gin.Context) {
	ctx := c.Request.Context()

	hasAccount, err := co.Auth.HasAccount(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	user, err := co.Auth.User(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthStatusResponse{Data: &AuthStatus{
		HasAccount:    hasAccount,
		Authenticated: user != "",
		User:          user,
	}})
}

// RequireSession rejects requests without a valid session token.
func (co Controller) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			httputil.Abort(c, http.StatusUnauthorized, errMissingToken)
			return
		}

		user, err := co.Auth.Verify(c.Request.Context(), token)
		if err != nil {
			httputil.Abort(c, http.StatusUnauthorized, err)
			return
		}

		c.Set(contextUser, user)
		c.Next()
	}
}

func bearer(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	return token, ok && token != ""
}
