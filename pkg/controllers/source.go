package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/httputil"
	"github.com/smartspend/backend/pkg/ledger"
)

// RegisterSourceRoutes registers the routes for sources with
// the RouterGroup that is passed.
func (co Controller) RegisterSourceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetSources)
		r.POST("", co.CreateSource)
	}

	// Source with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatch)
		r.GET("/:id", co.GetSource)
		r.PATCH("/:id", co.UpdateSource)
		r.OPTIONS("/:id/transactions", httputil.OptionsGet)
		r.GET("/:id/transactions", co.GetSourceTransactions)
	}
}

// GetSources returns all sources
//
//	@Summary		Get sources
//	@Description	Returns all sources in the order they were created
//	@Tags			Sources
//	@Produce		json
//	@Success		200	{object}	SourceListResponse
//	@Router			/v1/sources [get]
func (co Controller) GetSources(c *gin.Context) {
	c.JSON(http.StatusOK, SourceListResponse{Data: co.Ledger.Sources()})
}

// CreateSource creates a source
//
//	@Summary		Create source
//	@Description	Creates a source. The balance is its starting balance.
//	@Tags			Sources
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	SourceResponse
//	@Failure		400		{object}	SourceResponse
//	@Failure		503		{object}	SourceResponse
//	@Param			source	body		ledger.SourceInput	true	"Source"
//	@Router			/v1/sources [post]
func (co Controller) CreateSource(c *gin.Context) {
	var in ledger.SourceInput
	if err := httputil.BindData(c, &in); err != nil {
		fail(c, err)
		return
	}

	src, err := co.Ledger.AddSource(c.Request.Context(), in)
	code, msg, keep := result(c, err, http.StatusCreated)

	r := SourceResponse{Error: msg}
	if keep {
		r.Data = &src
	}
	c.JSON(code, r)
}

// GetSource returns a specific source
//
//	@Summary		Get source
//	@Description	Returns a specific source
//	@Tags			Sources
//	@Produce		json
//	@Success		200	{object}	SourceResponse
//	@Failure		404	{object}	SourceResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/sources/{id} [get]
func (co Controller) GetSource(c *gin.Context) {
	src, err := co.Ledger.Source(c.Param("id"))
	if err != nil {
		c.JSON(status(err), SourceResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SourceResponse{Data: &src})
}

// UpdateSource updates a specific source
//
//	@Summary		Update source
//	@Description	Updates a source. Only values to be updated need to be specified. A new balance is recorded as a manual correction.
//	@Tags			Sources
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	SourceResponse
//	@Failure		400		{object}	SourceResponse
//	@Failure		404		{object}	SourceResponse
//	@Failure		503		{object}	SourceResponse
//	@Param			id		path		string				true	"ID formatted as string"
//	@Param			source	body		ledger.SourceUpdate	true	"Source"
//	@Router			/v1/sources/{id} [patch]
func (co Controller) UpdateSource(c *gin.Context) {
	var u ledger.SourceUpdate
	if err := httputil.BindData(c, &u); err != nil {
		fail(c, err)
		return
	}

	src, err := co.Ledger.UpdateSource(c.Request.Context(), c.Param("id"), u)
	code, msg, keep := result(c, err, http.StatusOK)

	r := SourceResponse{Error: msg}
	if keep {
		r.Data = &src
	}
	c.JSON(code, r)
}

// GetSourceTransactions returns the transactions of a source
//
//	@Summary		Get source transactions
//	@Description	Returns the transactions of a source, newest first
//	@Tags			Sources
//	@Produce		json
//	@Success		200	{object}	TransactionListResponse
//	@Failure		404	{object}	TransactionListResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/sources/{id}/transactions [get]
func (co Controller) GetSourceTransactions(c *gin.Context) {
	id := c.Param("id")
	if _, err := co.Ledger.Source(id); err != nil {
		c.JSON(status(err), TransactionListResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: co.Ledger.Snapshot().SourceTransactions(id)})
}
