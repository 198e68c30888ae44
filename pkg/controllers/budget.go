package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smartspend/backend/pkg/httputil"
	"github.com/smartspend/backend/pkg/ledger"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPut)
		r.GET("", co.GetBudgets)
		r.PUT("", co.SetBudget)
		r.OPTIONS("/progress", httputil.OptionsGet)
		r.GET("/progress", co.GetBudgetProgress)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", httputil.OptionsDelete)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// BudgetEditable are the fields of a budget that can be set.
type BudgetEditable struct {
	CategoryID string          `json:"categoryId" example:"food"`
	Limit      decimal.Decimal `json:"limit" example:"3000"`
	Period     ledger.Period   `json:"period" example:"MONTHLY"`
}

// GetBudgets returns all budgets
//
//	@Summary		Get budgets
//	@Description	Returns all budgets
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetListResponse
//	@Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, BudgetListResponse{Data: co.Ledger.Budgets()})
}

// SetBudget sets the limit for a category and period
//
//	@Summary		Set budget
//	@Description	Sets the limit for a category and period. There is at most one budget per category and period, an existing one is updated.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	BudgetResponse
//	@Failure		503		{object}	BudgetResponse
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/v1/budgets [put]
func (co Controller) SetBudget(c *gin.Context) {
	var in BudgetEditable
	if err := httputil.BindData(c, &in); err != nil {
		fail(c, err)
		return
	}

	if in.CategoryID == "" {
		fail(c, errMissingCategory)
		return
	}

	b, err := co.Ledger.SetBudget(c.Request.Context(), in.CategoryID, in.Limit, in.Period)
	code, msg, keep := result(c, err, http.StatusOK)

	r := BudgetResponse{Error: msg}
	if keep {
		r.Data = &b
	}
	c.JSON(code, r)
}

// DeleteBudget deletes a specific budget
//
//	@Summary		Delete budget
//	@Description	Deletes a budget
//	@Tags			Budgets
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		503	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	if err := co.Ledger.DeleteBudget(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBudgetProgress returns the progress of all budgets
//
//	@Summary		Get budget progress
//	@Description	Returns how much of every budget is spent in its period containing the reference time
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetProgressListResponse
//	@Failure		400	{object}	BudgetProgressListResponse
//	@Param			at	query		string	false	"Reference time in RFC3339 format, defaults to now"
//	@Router			/v1/budgets/progress [get]
func (co Controller) GetBudgetProgress(c *gin.Context) {
	var query QueryTime
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, BudgetProgressListResponse{Error: httputil.ErrInvalidQueryString.Error()})
		return
	}

	at := query.At
	if at.IsZero() {
		at = co.now()
	}

	c.JSON(http.StatusOK, BudgetProgressListResponse{Data: co.Ledger.Snapshot().BudgetProgress(at)})
}
