package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/httputil"
	"github.com/smartspend/backend/pkg/ledger"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

func (f TransactionQueryFilter) model() (ledger.TransactionFilter, error) {
	t := ledger.TransactionType(f.Type)
	if t != "" && !t.Valid() {
		return ledger.TransactionFilter{}, ledger.ErrInvalidTransactionType
	}

	return ledger.TransactionFilter{
		SourceID:   f.Source,
		CategoryID: f.Category,
		Type:       t,
		From:       f.From,
		Until:      f.Until,
		Note:       f.Note,
	}, nil
}

// GetTransactions returns transactions
//
//	@Summary		Get transactions
//	@Description	Returns the transactions matching the filter, most recently added first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	TransactionListResponse
//	@Failure		400			{object}	TransactionListResponse
//	@Param			source		query		string	false	"Filter by source ID"
//	@Param			category	query		string	false	"Filter by category ID"
//	@Param			type		query		string	false	"Filter by type"
//	@Param			from		query		string	false	"Only transactions at or after this RFC3339 time"
//	@Param			until		query		string	false	"Only transactions before this RFC3339 time"
//	@Param			note		query		string	false	"Glob pattern for the note, e.g. Lunch*"
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: httputil.ErrInvalidQueryString.Error()})
		return
	}

	filter, err := query.model()
	if err != nil {
		c.JSON(status(err), TransactionListResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: co.Ledger.Snapshot().Filter(filter)})
}

// CreateTransaction records a transaction
//
//	@Summary		Create transaction
//	@Description	Records a transaction and applies it to the balance of its source
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	TransactionResponse
//	@Failure		400			{object}	TransactionResponse
//	@Failure		503			{object}	TransactionResponse
//	@Param			transaction	body		ledger.TransactionInput	true	"Transaction"
//	@Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var in ledger.TransactionInput
	if err := httputil.BindData(c, &in); err != nil {
		fail(c, err)
		return
	}

	if in.Amount.IsNegative() {
		fail(c, ledger.ErrNegativeAmount)
		return
	}

	t, err := co.Ledger.AddTransaction(c.Request.Context(), in)
	code, msg, keep := result(c, err, http.StatusCreated)

	r := TransactionResponse{Error: msg}
	if keep {
		r.Data = &t
	}
	c.JSON(code, r)
}

// GetTransaction returns a specific transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		404	{object}	TransactionResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	t, err := co.Ledger.Transaction(c.Param("id"))
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &t})
}

// UpdateTransaction updates a specific transaction
//
//	@Summary		Update transaction
//	@Description	Updates a transaction and moves its balance effect. Only values to be updated need to be specified.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	TransactionResponse
//	@Failure		400			{object}	TransactionResponse
//	@Failure		404			{object}	TransactionResponse
//	@Failure		503			{object}	TransactionResponse
//	@Param			id			path		string						true	"ID formatted as string"
//	@Param			transaction	body		ledger.TransactionUpdate	true	"Transaction"
//	@Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var u ledger.TransactionUpdate
	if err := httputil.BindData(c, &u); err != nil {
		fail(c, err)
		return
	}

	if u.Amount != nil && u.Amount.IsNegative() {
		fail(c, ledger.ErrNegativeAmount)
		return
	}

	t, err := co.Ledger.UpdateTransaction(c.Request.Context(), c.Param("id"), u)
	code, msg, keep := result(c, err, http.StatusOK)

	r := TransactionResponse{Error: msg}
	if keep {
		r.Data = &t
	}
	c.JSON(code, r)
}

// DeleteTransaction deletes a specific transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction and reverts its effect on the source balance
//	@Tags			Transactions
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		503	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	if err := co.Ledger.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
