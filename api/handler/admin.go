package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delicious-app/delicious/api/auth"
	"github.com/delicious-app/delicious/api/models"
)

// Dashboard shows the staff overview: pending recipes, users and feedback.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	pending, err := h.db.ListPending(ctx)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	users, err := h.db.ListUsers(ctx)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	feedback, err := h.db.ListFeedback(ctx)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	h.render(c, http.StatusOK, "dashboard", gin.H{
		"Pending":  models.ToRecipeViews(pending),
		"Users":    models.ToUserViews(users),
		"Feedback": models.ToFeedbackViews(feedback),
	})
}

// ErrorDashboard lists captured failures. `?resolved=true` flips the filter.
func (h *Handler) ErrorDashboard(c *gin.Context) {
	resolved := c.Query("resolved") == "true"

	entries, err := h.db.ListErrors(c.Request.Context(), resolved)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	h.render(c, http.StatusOK, "error_dashboard", gin.H{
		"Errors":   models.ToErrorLogViews(entries),
		"Resolved": resolved,
	})
}

// ResolveError deletes an error log entry.
func (h *Handler) ResolveError(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.render(c, http.StatusNotFound, "404", nil)
		return
	}

	if err := h.db.ResolveError(c.Request.Context(), uint(id)); err != nil {
		h.notFoundOr500(c, err)
		return
	}
	auth.AddFlash(c, "success", "Error log resolved")
	c.Redirect(http.StatusFound, "/dev/errors/")
}

type inviteMemberForm struct {
	MasterKey string `form:"master_key" binding:"required"`
}

// InviteMember creates a single-use developer invite code. The only guard
// is the configured master key submitted with the form; the route is
// otherwise unauthenticated.
func (h *Handler) InviteMember(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.render(c, http.StatusOK, "invite_member", nil)
		return
	}

	var form inviteMemberForm
	if err := c.ShouldBind(&form); err != nil || h.cfg.MasterKey == "" || form.MasterKey != h.cfg.MasterKey {
		h.render(c, http.StatusForbidden, "invite_member", gin.H{
			"Error": "Invalid master key.",
		})
		return
	}

	code, err := h.db.CreateInviteCode(c.Request.Context())
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	h.render(c, http.StatusOK, "invite_member", gin.H{
		"Code": code.Code,
	})
}
