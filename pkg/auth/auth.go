// Package auth is the credential gate in front of the ledger.
//
// There is a single local account. Its credentials and the current session
// are kept in the storage backend, next to the ledger but never inside it.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/smartspend/backend/pkg/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	CredentialsKey = "smartspend_auth_creds"
	SessionKey     = "smartspend_session"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("username and password must not be empty")
	ErrInvalidToken       = errors.New("the session token is invalid or has expired")
	ErrNoSecret           = errors.New("a signing secret is required")
	ErrAccountExists      = errors.New("an account is already registered, log in to replace it")
)

type credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Gate registers, logs in and logs out the local user and issues session
// tokens for the HTTP API.
type Gate struct {
	mu      sync.Mutex
	backend storage.Backend
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	cost    int
}

type Option func(*Gate)

// WithTokenTTL sets how long issued tokens are valid.
func WithTokenTTL(ttl time.Duration) Option {
	return func(g *Gate) {
		g.ttl = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// WithBcryptCost sets the bcrypt cost for new password hashes.
func WithBcryptCost(cost int) Option {
	return func(g *Gate) {
		g.cost = cost
	}
}

func New(backend storage.Backend, secret []byte, opts ...Option) (*Gate, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}

	g := &Gate{
		backend: backend,
		secret:  secret,
		ttl:     24 * time.Hour,
		now:     time.Now,
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// HasAccount reports whether a user has been registered.
func (g *Gate) HasAccount(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.credentials(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// IsAuthenticated reports whether there is an active session.
func (g *Gate) IsAuthenticated(ctx context.Context) (bool, error) {
	user, err := g.User(ctx)
	return user != "", err
}

// User returns the name of the logged in user, or "" without a session.
func (g *Gate) User(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session(ctx)
}

// Register creates the account and logs the user in. It fails with
// ErrAccountExists once an account has been registered.
func (g *Gate) Register(ctx context.Context, username, password string) error {
	return g.store(ctx, username, password, false)
}

// Replace overwrites the existing account and logs the new user in. token
// must be a valid session token of the current user.
func (g *Gate) Replace(ctx context.Context, token, username, password string) error {
	if _, err := g.Verify(ctx, token); err != nil {
		log.Warn().Str("user", username).Msg("account replacement without a valid session")
		return err
	}

	return g.store(ctx, username, password, true)
}

func (g *Gate) store(ctx context.Context, username, password string, replace bool) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	data, err := json.Marshal(credentials{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !replace {
		_, err := g.credentials(ctx)
		if err == nil {
			log.Warn().Str("user", username).Msg("registration refused, an account exists")
			return ErrAccountExists
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	if err := g.backend.Put(ctx, CredentialsKey, data); err != nil {
		return fmt.Errorf("could not save credentials: %w", err)
	}

	log.Info().Str("user", username).Bool("replaced", replace).Msg("account registered")
	return g.backend.Put(ctx, SessionKey, []byte(username))
}

// Login starts a session when the credentials match the registered account.
func (g *Gate) Login(ctx context.Context, username, password string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	creds, err := g.credentials(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if creds.Username != username || bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		log.Info().Str("user", username).Msg("failed login")
		return false, nil
	}

	return true, g.backend.Put(ctx, SessionKey, []byte(username))
}

// Logout ends the session. Tokens issued before are rejected afterwards.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.backend.Delete(ctx, SessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// Token issues a signed session token for the user.
func (g *Gate) Token(username string) (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Verify checks a session token and returns the user it was issued for.
//
// The token is only accepted while that user still has an active session.
func (g *Gate) Verify(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(g.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := g.User(ctx)
	if err != nil {
		return "", err
	}
	if user == "" || user != claims.Subject {
		return "", ErrInvalidToken
	}

	return user, nil
}

func (g *Gate) credentials(ctx context.Context) (credentials, error) {
	data, err := g.backend.Get(ctx, CredentialsKey)
	if err != nil {
		return credentials{}, err
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return credentials{}, fmt.Errorf("stored credentials are corrupt: %w", err)
	}
	return creds, nil
}

func (g *Gate) session(ctx context.Context) (string, error) {
	data, err := g.backend.Get(ctx, SessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
