package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/httputil"
)

// RegisterHealthzRoutes registers the routes for the healthz endpoint.
func (co Controller) RegisterHealthzRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetHealthz)
}

type HealthResponse struct {
	Error string `json:"error" example:"The database cannot be accessed"`
}

// GetHealthz returns data about the application health
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error. The last save failing also counts as unhealthy.
//	@Tags			General
//	@Success		204
//	@Failure		503	{object}	HealthResponse
//	@Router			/healthz [get]
func (co Controller) GetHealthz(c *gin.Context) {
	if co.Health != nil {
		if err := co.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Error: err.Error()})
			return
		}
	}

	if err := co.Ledger.PersistError(); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
