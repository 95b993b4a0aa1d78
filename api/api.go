// Package api wires the gin engine: sessions, middleware, routes and
// templates.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/delicious-app/delicious/api/auth"
	"github.com/delicious-app/delicious/api/handler"
	"github.com/delicious-app/delicious/config"
	"github.com/delicious-app/delicious/database"
	"github.com/delicious-app/delicious/web"
)

type Server struct {
	cfg         *config.Config
	ginEngine   *gin.Engine
	db          *database.Client
	authService *auth.Service
}

func New(cfg *config.Config, db *database.Client, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:         cfg,
		ginEngine:   gin.New(),
		db:          db,
		authService: auth.New(db),
	}
	s.ginEngine.Use(gin.Logger())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.ginEngine.SetHTMLTemplate(tmpl)

	s.setupSession()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("delicious_session", store))
}

func (s *Server) setupRoutes() {
	h := handler.New(s.db, s.authService, s.cfg)

	s.ginEngine.Use(s.authService.LoadUser())
	s.ginEngine.Use(errorCapture(s.db))
	s.ginEngine.NoRoute(h.NotFound)

	s.ginEngine.Static("/media", s.cfg.MediaDir)

	// Public pages.
	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/recipes/", h.ListRecipes)
	s.ginEngine.GET("/search/", h.ListRecipes)
	s.ginEngine.GET("/recipes/:slug/", h.RecipeDetail)
	s.ginEngine.POST("/recipes/:slug/", h.RecipeDetail)

	// Identity lifecycle.
	s.ginEngine.GET("/register/", h.Register)
	s.ginEngine.POST("/register/", h.Register)
	s.ginEngine.GET("/register/developer/", h.RegisterDeveloper)
	s.ginEngine.POST("/register/developer/", h.RegisterDeveloper)
	s.ginEngine.GET("/login/", h.Login)
	s.ginEngine.POST("/login/", h.Login)
	s.ginEngine.GET("/logout/", h.Logout)

	// Feedback, open to everyone.
	s.ginEngine.GET("/feedback/", h.Feedback)
	s.ginEngine.POST("/feedback/", h.Feedback)

	// Invite-code creation: master key in the form is the only guard.
	s.ginEngine.GET("/invite-member/", h.InviteMember)
	s.ginEngine.POST("/invite-member/", h.InviteMember)

	// Session-required routes. Resource-level ownership stays inside the
	// handlers and answers with an explicit 403.
	authed := s.ginEngine.Group("/")
	authed.Use(s.authService.RequireAuth())
	authed.GET("/recipes/add/", h.CreateRecipe)
	authed.POST("/recipes/add/", h.CreateRecipe)
	authed.GET("/recipes/:slug/edit/", h.EditRecipe)
	authed.POST("/recipes/:slug/edit/", h.EditRecipe)
	authed.GET("/recipes/:slug/delete/", h.DeleteRecipe)
	authed.POST("/recipes/:slug/delete/", h.DeleteRecipe)
	authed.POST("/recipes/:slug/approve/", h.ApproveRecipe)
	authed.GET("/recipes/:slug/preview/", h.PreviewRecipe)
	authed.GET("/profile/", h.Profile)
	authed.POST("/profile/", h.Profile)

	// Staff namespaces: anonymous users are redirected to login, non-staff
	// get the disguised 404.
	staff := s.ginEngine.Group("/")
	staff.Use(s.authService.RequireStaffNamespace())
	staff.GET("/dashboard/", h.Dashboard)
	staff.GET("/dev/errors/", h.ErrorDashboard)
	staff.POST("/dev/errors/:id/resolve/", h.ResolveError)
}

// Engine exposes the underlying gin engine, used by tests.
func (s *Server) Engine() *gin.Engine {
	return s.ginEngine
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
