package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartspend/backend/pkg/httputil"
	"github.com/smartspend/backend/pkg/ledger"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

// GetCategories returns all categories
//
//	@Summary		Get categories
//	@Description	Returns all categories
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoryListResponse{Data: co.Ledger.Categories()})
}

// CreateCategory creates a category
//
//	@Summary		Create category
//	@Description	Creates a category
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	CategoryResponse
//	@Failure		400			{object}	CategoryResponse
//	@Failure		503			{object}	CategoryResponse
//	@Param			category	body		ledger.CategoryInput	true	"Category"
//	@Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var in ledger.CategoryInput
	if err := httputil.BindData(c, &in); err != nil {
		fail(c, err)
		return
	}

	category, err := co.Ledger.AddCategory(c.Request.Context(), in)
	code, msg, keep := result(c, err, http.StatusCreated)

	r := CategoryResponse{Error: msg}
	if keep {
		r.Data = &category
	}
	c.JSON(code, r)
}

// GetCategory returns a specific category
//
//	@Summary		Get category
//	@Description	Returns a specific category
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	CategoryResponse
//	@Failure		404	{object}	CategoryResponse
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	category, err := co.Ledger.Category(c.Param("id"))
	if err != nil {
		c.JSON(status(err), CategoryResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// UpdateCategory updates a specific category
//
//	@Summary		Update category
//	@Description	Updates a category. Only values to be updated need to be specified.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	CategoryResponse
//	@Failure		400			{object}	CategoryResponse
//	@Failure		404			{object}	CategoryResponse
//	@Failure		503			{object}	CategoryResponse
//	@Param			id			path		string					true	"ID formatted as string"
//	@Param			category	body		ledger.CategoryUpdate	true	"Category"
//	@Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	var u ledger.CategoryUpdate
	if err := httputil.BindData(c, &u); err != nil {
		fail(c, err)
		return
	}

	category, err := co.Ledger.UpdateCategory(c.Request.Context(), c.Param("id"), u)
	code, msg, keep := result(c, err, http.StatusOK)

	r := CategoryResponse{Error: msg}
	if keep {
		r.Data = &category
	}
	c.JSON(code, r)
}

// DeleteCategory deletes a specific category
//
//	@Summary		Delete category
//	@Description	Deletes a category. Transactions and budgets keep referencing it and show as "Uncategorized".
//	@Tags			Categories
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		503	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	if err := co.Ledger.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
