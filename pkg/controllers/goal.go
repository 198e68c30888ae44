package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/httputil"
	"github.com/smartspend/backend/pkg/ledger"
)

// RegisterGoalRoutes registers the routes for goals with
// the RouterGroup that is passed.
func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetGoals)
		r.POST("", co.CreateGoal)
	}

	// Goal with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetGoal)
		r.PATCH("/:id", co.UpdateGoal)
		r.DELETE("/:id", co.DeleteGoal)
		r.OPTIONS("/:id/deposit", httputil.OptionsPost)
		r.POST("/:id/deposit", co.Deposit)
	}
}

// GetGoals returns all goals
//
//	@Summary		Get goals
//	@Description	Returns all goals with their progress
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalListResponse
//	@Router			/v1/goals [get]
func (co Controller) GetGoals(c *gin.Context) {
	goals := co.Ledger.Goals()

	data := make([]Goal, 0, len(goals))
	for _, g := range goals {
		data = append(data, newGoal(g))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: data})
}

// CreateGoal creates a goal
//
//	@Summary		Create goal
//	@Description	Creates a savings goal
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	GoalResponse
//	@Failure		400		{object}	GoalResponse
//	@Failure		503		{object}	GoalResponse
//	@Param			goal	body		ledger.GoalInput	true	"Goal"
//	@Router			/v1/goals [post]
func (co Controller) CreateGoal(c *gin.Context) {
	var in ledger.GoalInput
	if err := httputil.BindData(c, &in); err != nil {
		fail(c, err)
		return
	}

	g, err := co.Ledger.AddGoal(c.Request.Context(), in)
	co.goalResponse(c, g, err, http.StatusCreated)
}

// GetGoal returns a specific goal
//
//	@Summary		Get goal
//	@Description	Returns a specific goal with its progress
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		404	{object}	GoalResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/goals/{id} [get]
func (co Controller) GetGoal(c *gin.Context) {
	g, err := co.Ledger.Goal(c.Param("id"))
	co.goalResponse(c, g, err, http.StatusOK)
}

// UpdateGoal updates a specific goal
//
//	@Summary		Update goal
//	@Description	Updates a goal. Only values to be updated need to be specified. A periodicTarget of 0 removes it.
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	GoalResponse
//	@Failure		400		{object}	GoalResponse
//	@Failure		404		{object}	GoalResponse
//	@Failure		503		{object}	GoalResponse
//	@Param			id		path		string				true	"ID formatted as string"
//	@Param			goal	body		ledger.GoalUpdate	true	"Goal"
//	@Router			/v1/goals/{id} [patch]
func (co Controller) UpdateGoal(c *gin.Context) {
	var u ledger.GoalUpdate
	if err := httputil.BindData(c, &u); err != nil {
		fail(c, err)
		return
	}

	g, err := co.Ledger.UpdateGoal(c.Request.Context(), c.Param("id"), u)
	co.goalResponse(c, g, err, http.StatusOK)
}

func (co Controller) goalResponse(c *gin.Context, g ledger.Goal, err error, success int) {
	code, msg, keep := result(c, err, success)

	r := GoalResponse{Error: msg}
	if keep {
		data := newGoal(g)
		r.Data = &data
	}
	c.JSON(code, r)
}

// DeleteGoal deletes a specific goal
//
//	@Summary		Delete goal
//	@Description	Deletes a goal. Deposit transactions stay.
//	@Tags			Goals
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		503	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/goals/{id} [delete]
func (co Controller) DeleteGoal(c *gin.Context) {
	if err := co.Ledger.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Deposit moves money from a source into a goal
//
//	@Summary		Deposit to goal
//	@Description	Records an expense on the source and adds the amount to the goal
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	DepositResponse
//	@Failure		400		{object}	DepositResponse
//	@Failure		404		{object}	DepositResponse
//	@Failure		503		{object}	DepositResponse
//	@Param			id		path		string				true	"ID formatted as string"
//	@Param			deposit	body		ledger.DepositInput	true	"Deposit"
//	@Router			/v1/goals/{id}/deposit [post]
func (co Controller) Deposit(c *gin.Context) {
	var in ledger.DepositInput
	if err := httputil.BindData(c, &in); err != nil {
		fail(c, err)
		return
	}
	in.GoalID = c.Param("id")

	res, err := co.Ledger.Deposit(c.Request.Context(), in)
	code, msg, keep := result(c, err, http.StatusOK)

	r := DepositResponse{Error: msg}
	if keep {
		r.Data = &res
	}
	c.JSON(code, r)
}
