// Package handler contains the HTTP handlers behind the route table.
package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/delicious-app/delicious/api/auth"
	"github.com/delicious-app/delicious/api/models"
	"github.com/delicious-app/delicious/config"
	"github.com/delicious-app/delicious/database"
)

const (
	homeCategoryCount = 6
	homeFeaturedCount = 6
)

type Handler struct {
	db   *database.Client
	auth *auth.Service
	cfg  *config.Config
}

func New(db *database.Client, authService *auth.Service, cfg *config.Config) *Handler {
	return &Handler{
		db:   db,
		auth: authService,
		cfg:  cfg,
	}
}

// render merges the session context (current user, flash messages) into the
// template data and writes the page.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = models.ToUserView(auth.CurrentUser(c))
	data["Flashes"] = auth.ConsumeFlashes(c)
	c.HTML(status, name, data)
}

// NotFound renders the generic 404 page.
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404", nil)
}

// Home shows a category summary and the latest approved recipes.
func (h *Handler) Home(c *gin.Context) {
	categories, err := h.db.ListCategories(c.Request.Context(), homeCategoryCount)
	if err != nil {
		c.Error(err) //nolint:errcheck
	}
	featured, err := h.db.FeaturedRecipes(c.Request.Context(), homeFeaturedCount)
	if err != nil {
		c.Error(err) //nolint:errcheck
	}
	h.render(c, http.StatusOK, "home", gin.H{
		"Categories": models.ToCategoryViews(categories),
		"Featured":   models.ToRecipeViews(featured),
	})
}

// ListRecipes shows approved recipes filtered by category and text query.
func (h *Handler) ListRecipes(c *gin.Context) {
	category := c.Query("category")
	query := c.Query("q")

	recipes, err := h.db.ListApproved(c.Request.Context(), category, query)
	if err != nil {
		log.Error("failed to list recipes", "error", err)
		recipes = nil
	}
	categories, err := h.db.ListCategories(c.Request.Context(), 0)
	if err != nil {
		log.Error("failed to list categories", "error", err)
	}

	h.render(c, http.StatusOK, "recipe_list", gin.H{
		"Recipes":    models.ToRecipeViews(recipes),
		"Categories": models.ToCategoryViews(categories),
		"Category":   category,
		"Query":      query,
	})
}

type feedbackForm struct {
	Message string `form:"message" binding:"required"`
}

// Feedback accepts a free-text feedback message, attributed to the current
// user when one is logged in.
func (h *Handler) Feedback(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.render(c, http.StatusOK, "feedback", nil)
		return
	}

	var form feedbackForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "feedback", gin.H{"Error": "Message is required."})
		return
	}
	var userID *uint
	if user := auth.CurrentUser(c); user != nil {
		userID = &user.ID
	}
	if _, err := h.db.AddFeedback(c.Request.Context(), userID, form.Message); err != nil {
		c.Error(err) //nolint:errcheck
	}
	auth.AddFlash(c, "success", "Thanks for your feedback!")
	c.Redirect(http.StatusFound, "/")
}

// mapDomainError maps repository errors onto the error pages: permission
// denials get an explicit 403, everything else falls through to
// notFoundOr500. The explicit 403 here is resource-level authorization and
// deliberately differs from the disguised 404 of the staff namespaces.
func (h *Handler) mapDomainError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrPermissionDenied) {
		h.render(c, http.StatusForbidden, "403", nil)
		return
	}
	h.notFoundOr500(c, err)
}

// notFoundOr500 maps a repository error onto the 404 or 500 page.
func (h *Handler) notFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		h.render(c, http.StatusNotFound, "404", nil)
		return
	}
	log.Error("handler failure", "path", c.Request.URL.Path, "error", err)
	h.render(c, http.StatusInternalServerError, "500", nil)
}
