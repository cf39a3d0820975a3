package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/teenfaith/teenfaith/internal/api/auth"
	"github.com/teenfaith/teenfaith/internal/api/handler"
	"github.com/teenfaith/teenfaith/internal/app"
	"github.com/teenfaith/teenfaith/internal/config"
)

// SessionName is the name of the session cookie.
const SessionName = "teenfaith_session"

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	ctrl      *app.Controller
}

func New(cfg *config.Config, ctrl *app.Controller, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if ctrl == nil {
		return nil, fmt.Errorf("controller is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), requestID(), requestLogger(), gzip.Gzip(gzip.DefaultCompression))

	s := &Server{
		cfg:       cfg,
		ginEngine: ginEngine,
		ctrl:      ctrl,
	}
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
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(SessionName, store))
}

func (s *Server) setupRoutes() {
	h := handler.New(s.ctrl)

	s.ginEngine.GET("/livez", h.Livez)

	api := s.ginEngine.Group("/api")
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
	api.GET("/state", h.State)
	api.POST("/navigate", h.Navigate)
	api.GET("/view", h.View)

	protected := api.Group("")
	protected.Use(auth.RequireAuth())

	contentGroup := protected.Group("/content")
	contentGroup.GET("/sermons", h.Sermons)
	contentGroup.GET("/music", h.Music)
	contentGroup.GET("/stories", h.Stories)
	contentGroup.GET("/quizzes", h.Quizzes)
	contentGroup.GET("/testimonies", h.Testimonies)
	contentGroup.GET("/plans", h.StudyPlans)
	contentGroup.GET("/bible/:version", h.Bible)

	protected.POST("/quizzes/:id/grade", h.GradeQuiz)
	protected.POST("/motivation", h.Motivation)

	admin := protected.Group("/admin")
	admin.Use(auth.RequireAdmin())
	admin.GET("/users", h.Users)
	admin.GET("/jobs", h.Jobs)
	admin.POST("/jobs/:id/run", h.RunJob)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting API server", "listen", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}
	return nil
}
