package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/delicious-app/delicious/api/auth"
	"github.com/delicious-app/delicious/database"
)

const usernameSuggestionCount = 3

type registerForm struct {
	Username  string `form:"username" binding:"required,max=150"`
	Email     string `form:"email" binding:"required,email"`
	Password1 string `form:"password1" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
}

// Register creates a regular account. A taken username is rejected with
// generated alternatives.
func (h *Handler) Register(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.render(c, http.StatusOK, "register", nil)
		return
	}

	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "register", gin.H{
			"Error": "Please check the form: all fields are required and passwords must match.",
			"Form":  form,
		})
		return
	}

	_, err := h.db.CreateUser(c.Request.Context(), form.Username, form.Email, form.Password1)
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			suggestions := h.db.SuggestUsernames(c.Request.Context(), form.Username, usernameSuggestionCount, 0)
			h.render(c, http.StatusBadRequest, "register", gin.H{
				"Error": fmt.Sprintf("Username '%s' is already taken. Suggestions: %s",
					form.Username, strings.Join(suggestions, ", ")),
				"Form": form,
			})
			return
		}
		h.notFoundOr500(c, err)
		return
	}

	auth.AddFlash(c, "success", "Account created successfully! Please login with your credentials.")
	c.Redirect(http.StatusFound, "/login/")
}

type developerRegisterForm struct {
	registerForm
	InviteCode string `form:"invite_code" binding:"required"`
}

// RegisterDeveloper creates a staff/superuser account gated by an invite
// code: either a single-use code from the database or the statically
// configured one.
func (h *Handler) RegisterDeveloper(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.render(c, http.StatusOK, "register_dev", nil)
		return
	}

	var form developerRegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "register_dev", gin.H{
			"Error": "Please check the form: all fields are required and passwords must match.",
			"Form":  form,
		})
		return
	}

	ctx := c.Request.Context()
	var err error
	if h.cfg.DeveloperInviteCode != "" && form.InviteCode == h.cfg.DeveloperInviteCode {
		_, err = h.db.CreateElevatedUser(ctx, form.Username, form.Email, form.Password1)
	} else {
		_, err = h.db.RedeemInviteCode(ctx, form.InviteCode, form.Username, form.Email, form.Password1)
	}
	if err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidOrUsedCode):
			h.render(c, http.StatusBadRequest, "register_dev", gin.H{
				"Error": "Invalid invite code.",
				"Form":  form,
			})
		case errors.Is(err, database.ErrUsernameTaken):
			suggestions := h.db.SuggestUsernames(ctx, form.Username, usernameSuggestionCount, 0)
			h.render(c, http.StatusBadRequest, "register_dev", gin.H{
				"Error": fmt.Sprintf("Username '%s' is already taken. Suggestions: %s",
					form.Username, strings.Join(suggestions, ", ")),
				"Form": form,
			})
		default:
			h.notFoundOr500(c, err)
		}
		return
	}

	auth.AddFlash(c, "success", "Developer account created. You can now login.")
	c.Redirect(http.StatusFound, "/login/")
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login authenticates a session.
func (h *Handler) Login(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		h.render(c, http.StatusOK, "login", nil)
		return
	}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login", gin.H{
			"Error": "Username and password are required.",
		})
		return
	}

	if _, err := h.auth.Login(c, form.Username, form.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.render(c, http.StatusUnauthorized, "login", gin.H{
				"Error": "Invalid credentials. Please try again.",
			})
			return
		}
		h.notFoundOr500(c, err)
		return
	}

	auth.AddFlash(c, "success", "Logged in successfully!")
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	auth.AddFlash(c, "success", "Logged out successfully!")
	c.Redirect(http.StatusFound, "/")
}

type profileForm struct {
	Bio string `form:"bio" binding:"max=1000"`
}

type infoForm struct {
	Username  string `form:"username" binding:"required,max=150"`
	Email     string `form:"email" binding:"required,email"`
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
}

type passwordForm struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword1    string `form:"new_password1" binding:"required,min=8"`
	NewPassword2    string `form:"new_password2" binding:"required,eqfield=NewPassword1"`
}

// Profile shows the profile page and handles its three POST branches:
// profile update, account info update and password change.
func (h *Handler) Profile(c *gin.Context) {
	user := auth.CurrentUser(c)

	if c.Request.Method == http.MethodGet {
		h.render(c, http.StatusOK, "profile", nil)
		return
	}

	ctx := c.Request.Context()
	switch c.PostForm("action") {
	case "update_profile":
		var form profileForm
		if err := c.ShouldBind(&form); err != nil {
			h.render(c, http.StatusBadRequest, "profile", gin.H{"Error": "Bio is too long."})
			return
		}
		avatarPath := ""
		if file, err := c.FormFile("profile_image"); err == nil {
			name := filepath.Join("profiles", uuid.NewString()+filepath.Ext(file.Filename))
			if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.MediaDir, name)); err != nil {
				log.Error("failed to store profile image", "error", err)
			} else {
				avatarPath = name
			}
		}
		if err := h.db.UpdateProfile(ctx, user.ID, avatarPath, form.Bio); err != nil {
			h.notFoundOr500(c, err)
			return
		}
		auth.AddFlash(c, "success", "Profile updated successfully!")

	case "update_info":
		var form infoForm
		if err := c.ShouldBind(&form); err != nil {
			h.render(c, http.StatusBadRequest, "profile", gin.H{"Error": "Username and a valid email are required."})
			return
		}
		err := h.db.UpdateUserInfo(ctx, user.ID, form.Username, form.Email, form.FirstName, form.LastName)
		if err != nil {
			if errors.Is(err, database.ErrUsernameTaken) {
				suggestions := h.db.SuggestUsernames(ctx, form.Username, usernameSuggestionCount, user.ID)
				h.render(c, http.StatusBadRequest, "profile", gin.H{
					"Error": fmt.Sprintf("Username '%s' is already taken. Suggestions: %s",
						form.Username, strings.Join(suggestions, ", ")),
				})
				return
			}
			h.notFoundOr500(c, err)
			return
		}
		auth.AddFlash(c, "success", "Account information updated successfully!")

	case "change_password":
		var form passwordForm
		if err := c.ShouldBind(&form); err != nil {
			h.render(c, http.StatusBadRequest, "profile", gin.H{"Error": "New passwords must match and be at least 8 characters."})
			return
		}
		if !h.db.CheckPassword(user, form.CurrentPassword) {
			h.render(c, http.StatusBadRequest, "profile", gin.H{"Error": "Current password is incorrect."})
			return
		}
		if err := h.db.UpdatePassword(ctx, user.ID, form.NewPassword1); err != nil {
			h.notFoundOr500(c, err)
			return
		}
		// Keep the session alive across the credential change.
		if err := h.auth.LoginAs(c, user); err != nil {
			log.Error("failed to refresh session", "error", err)
		}
		auth.AddFlash(c, "success", "Password changed successfully!")
	}

	c.Redirect(http.StatusFound, "/profile/")
}
