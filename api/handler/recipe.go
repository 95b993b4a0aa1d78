package handler

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/delicious-app/delicious/api/auth"
	"github.com/delicious-app/delicious/api/models"
	"github.com/delicious-app/delicious/database"
)

type recipeForm struct {
	Title            string `form:"title" binding:"required,max=200"`
	Category         string `form:"category"`
	ShortDescription string `form:"short_description" binding:"max=255"`
	Ingredients      string `form:"ingredients"`
	Steps            string `form:"steps"`
}

// input converts the form into a repository input, resolving the category
// and storing an uploaded image if one was sent.
func (h *Handler) input(c *gin.Context, form recipeForm) database.RecipeInput {
	in := database.RecipeInput{
		Title:            form.Title,
		ShortDescription: form.ShortDescription,
		Ingredients:      form.Ingredients,
		Steps:            form.Steps,
	}
	if form.Category != "" {
		if id, err := strconv.ParseUint(form.Category, 10, 32); err == nil {
			cid := uint(id)
			in.CategoryID = &cid
		}
	}
	if file, err := c.FormFile("image"); err == nil {
		name := filepath.Join("recipes", uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.MediaDir, name)); err != nil {
			log.Error("failed to store recipe image", "error", err)
		} else {
			in.ImagePath = name
		}
	}
	return in
}

// RecipeDetail shows an approved recipe, or any state of it to its author.
// POST requests carry the interaction branches: comment, rate, like — each
// requiring an authenticated session.
func (h *Handler) RecipeDetail(c *gin.Context) {
	var viewerID uint
	user := auth.CurrentUser(c)
	if user != nil {
		viewerID = user.ID
	}

	recipe, err := h.db.VisibleRecipeBySlug(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	if c.Request.Method == http.MethodPost {
		h.handleInteraction(c, recipe.ID, recipe.Slug)
		return
	}

	likeCount, _ := h.db.LikeCount(c.Request.Context(), recipe.ID)
	avgRating, _ := h.db.AvgRating(c.Request.Context(), recipe.ID)
	liked := false
	if user != nil {
		liked, _ = h.db.Liked(c.Request.Context(), recipe.ID, user.ID)
	}

	h.render(c, http.StatusOK, "recipe_detail", gin.H{
		"Recipe": models.ToRecipeView(recipe, likeCount, avgRating, liked),
	})
}

type commentForm struct {
	Content string `form:"content" binding:"required"`
}

type ratingForm struct {
	Score int `form:"score" binding:"required,min=1,max=5"`
}

// handleInteraction dispatches the POST branches of the detail page.
func (h *Handler) handleInteraction(c *gin.Context, recipeID uint, slug string) {
	user := auth.CurrentUser(c)
	action := c.PostForm("action")
	if user == nil {
		switch action {
		case "comment":
			auth.AddFlash(c, "error", "Login required to comment")
		case "rate":
			auth.AddFlash(c, "error", "Login required to rate")
		default:
			auth.AddFlash(c, "error", "Login required to like")
		}
		c.Redirect(http.StatusFound, "/login/")
		return
	}

	ctx := c.Request.Context()
	switch action {
	case "comment":
		var form commentForm
		if err := c.ShouldBind(&form); err != nil {
			auth.AddFlash(c, "error", "Comment cannot be empty")
			break
		}
		if _, err := h.db.AddComment(ctx, recipeID, user.ID, form.Content); err != nil {
			c.Error(err) //nolint:errcheck
			break
		}
		auth.AddFlash(c, "success", "Comment added")
	case "rate":
		var form ratingForm
		if err := c.ShouldBind(&form); err != nil {
			auth.AddFlash(c, "error", "Rating must be between 1 and 5")
			break
		}
		if err := h.db.SetRating(ctx, recipeID, user.ID, form.Score); err != nil {
			c.Error(err) //nolint:errcheck
			break
		}
		auth.AddFlash(c, "success", "Rating saved")
	case "like":
		if _, err := h.db.ToggleLike(ctx, recipeID, user.ID); err != nil {
			c.Error(err) //nolint:errcheck
		}
	}
	c.Redirect(http.StatusFound, "/recipes/"+slug+"/")
}

// CreateRecipe submits a new recipe for review.
func (h *Handler) CreateRecipe(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.renderRecipeForm(c, http.StatusOK, "Add Recipe", nil, "")
		return
	}

	var form recipeForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRecipeForm(c, http.StatusBadRequest, "Add Recipe", &form, "Please fill in all required fields.")
		return
	}

	user := auth.CurrentUser(c)
	recipe, err := h.db.CreateRecipe(c.Request.Context(), user.ID, h.input(c, form))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	auth.AddFlash(c, "success", "Recipe submitted for review")
	c.Redirect(http.StatusFound, "/recipes/"+recipe.Slug+"/")
}

// EditRecipe lets the owning author mutate a recipe in place. Approval is
// untouched, so an approved recipe stays publicly visible after an edit.
func (h *Handler) EditRecipe(c *gin.Context) {
	user := auth.CurrentUser(c)
	recipe, err := h.db.GetRecipeBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	if recipe.AuthorID != user.ID {
		h.render(c, http.StatusForbidden, "403", nil)
		return
	}

	if c.Request.Method == http.MethodGet {
		form := recipeForm{
			Title:            recipe.Title,
			ShortDescription: recipe.ShortDescription,
			Ingredients:      recipe.Ingredients,
			Steps:            recipe.Steps,
		}
		if recipe.CategoryID != nil {
			form.Category = strconv.FormatUint(uint64(*recipe.CategoryID), 10)
		}
		h.renderRecipeForm(c, http.StatusOK, "Edit Recipe", &form, "")
		return
	}

	var form recipeForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRecipeForm(c, http.StatusBadRequest, "Edit Recipe", &form, "Please fill in all required fields.")
		return
	}

	updated, err := h.db.UpdateRecipe(c.Request.Context(), user, recipe.ID, h.input(c, form))
	if err != nil {
		h.mapDomainError(c, err)
		return
	}
	auth.AddFlash(c, "success", "Recipe updated")
	c.Redirect(http.StatusFound, "/recipes/"+updated.Slug+"/")
}

// DeleteRecipe removes a recipe; permitted for the owning author or staff.
// GET shows the confirmation page, POST performs the deletion.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	user := auth.CurrentUser(c)
	recipe, err := h.db.GetRecipeBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	if c.Request.Method == http.MethodGet {
		if recipe.AuthorID != user.ID && !user.IsStaff {
			h.render(c, http.StatusForbidden, "403", nil)
			return
		}
		h.render(c, http.StatusOK, "recipe_confirm_delete", gin.H{
			"Recipe": models.ToRecipeView(recipe, 0, 0, false),
		})
		return
	}

	if err := h.db.DeleteRecipe(c.Request.Context(), user, recipe.ID); err != nil {
		h.mapDomainError(c, err)
		return
	}
	auth.AddFlash(c, "success", "Recipe deleted")
	c.Redirect(http.StatusFound, "/recipes/")
}

// ApproveRecipe transitions a pending recipe to approved. Staff only,
// idempotent.
func (h *Handler) ApproveRecipe(c *gin.Context) {
	user := auth.CurrentUser(c)
	recipe, err := h.db.GetRecipeBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	if err := h.db.ApproveRecipe(c.Request.Context(), user, recipe.ID); err != nil {
		h.mapDomainError(c, err)
		return
	}
	auth.AddFlash(c, "success", "Recipe approved")
	c.Redirect(http.StatusFound, "/dashboard/")
}

// PreviewRecipe is the staff read-only view of a recipe in any state. It
// renders without the interaction forms and never mutates likes, ratings or
// comments.
func (h *Handler) PreviewRecipe(c *gin.Context) {
	if user := auth.CurrentUser(c); user == nil || !user.IsStaff {
		h.render(c, http.StatusForbidden, "403", nil)
		return
	}
	recipe, err := h.db.GetRecipeBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	likeCount, _ := h.db.LikeCount(c.Request.Context(), recipe.ID)
	avgRating, _ := h.db.AvgRating(c.Request.Context(), recipe.ID)

	h.render(c, http.StatusOK, "recipe_preview", gin.H{
		"Recipe": models.ToRecipeView(recipe, likeCount, avgRating, false),
	})
}

// renderRecipeForm renders the shared add/edit form.
func (h *Handler) renderRecipeForm(c *gin.Context, status int, title string, form *recipeForm, errMsg string) {
	categories, err := h.db.ListCategories(c.Request.Context(), 0)
	if err != nil {
		log.Error("failed to list categories", "error", err)
	}
	data := gin.H{
		"Title":      title,
		"Categories": models.ToCategoryViews(categories),
		"Error":      errMsg,
	}
	if form != nil {
		data["Form"] = form
	}
	h.render(c, status, "recipe_form", data)
}
