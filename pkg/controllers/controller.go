// Package controllers is the JSON API over the ledger.
package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/auth"
	"github.com/smartspend/backend/pkg/insight"
	"github.com/smartspend/backend/pkg/ledger"
)

// Pinger checks that the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Controller holds everything the handlers need. It is created once in main
// and passed to the router.
type Controller struct {
	Ledger   *ledger.Store
	Auth     *auth.Gate
	Insights *insight.Generator
	Health   Pinger // Optional
	Currency string
	Now      func() time.Time
}

func (co Controller) now() time.Time {
	if co.Now == nil {
		return time.Now()
	}
	return co.Now()
}

// RegisterRoutes attaches all API routes to the group. Everything except the
// auth routes requires a session token.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterAuthRoutes(r.Group("/auth"))

	protected := r.Group("", co.RequireSession())
	co.RegisterSourceRoutes(protected.Group("/sources"))
	co.RegisterCategoryRoutes(protected.Group("/categories"))
	co.RegisterTransactionRoutes(protected.Group("/transactions"))
	co.RegisterBudgetRoutes(protected.Group("/budgets"))
	co.RegisterGoalRoutes(protected.Group("/goals"))
	co.RegisterReportRoutes(protected)
}
