package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/teenfaith/teenfaith/internal/api/auth"
	apimodels "github.com/teenfaith/teenfaith/internal/api/models"
	"github.com/teenfaith/teenfaith/internal/app"
	authflow "github.com/teenfaith/teenfaith/internal/auth"
	"github.com/teenfaith/teenfaith/internal/content"
	"github.com/teenfaith/teenfaith/internal/nav"
)

// CredentialsNotFound is shown when a login does not match any account.
const CredentialsNotFound = "Credentials not found. Try registering!"

type Handler struct {
	ctrl *app.Controller
}

func New(ctrl *app.Controller) *Handler {
	return &Handler{
		ctrl: ctrl,
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

func internalError(c *gin.Context, msg string, err error) {
	log.Error(msg, "error", err)
	fail(c, http.StatusInternalServerError, msg)
}

// Livez reports that the server is up.
func (h *Handler) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Login(c *gin.Context) {
	var req apimodels.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "identifier and password are required")
		return
	}
	role, err := apimodels.ParseRole(req.Role)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.ctrl.Login(c.Request.Context(), sessions.Default(c), req.Identifier, req.Password, role)
	if err != nil {
		if errors.Is(err, authflow.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, CredentialsNotFound)
			return
		}
		internalError(c, "Failed to log in", err)
		return
	}

	c.JSON(http.StatusOK, apimodels.ToStateResponse(st))
}

func (h *Handler) Register(c *gin.Context) {
	var req apimodels.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "name, email and password are required")
		return
	}
	role, err := apimodels.ParseRole(req.Role)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.ctrl.Register(c.Request.Context(), sessions.Default(c), req.Name, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, authflow.ErrAccountExists) {
			fail(c, http.StatusConflict, "An account with this email or name already exists")
			return
		}
		internalError(c, "Failed to register", err)
		return
	}

	c.JSON(http.StatusOK, apimodels.ToStateResponse(st))
}

func (h *Handler) Logout(c *gin.Context) {
	st, err := h.ctrl.Logout(sessions.Default(c))
	if err != nil {
		internalError(c, "Failed to log out", err)
		return
	}
	c.JSON(http.StatusOK, apimodels.ToStateResponse(st))
}

// State returns the session and the resolved page.
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, apimodels.ToStateResponse(h.ctrl.State(sessions.Default(c))))
}

func (h *Handler) Navigate(c *gin.Context) {
	var req apimodels.NavigateRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, "page is required")
		return
	}
	page, err := nav.Parse(req.Page)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.ctrl.Navigate(sessions.Default(c), page)
	if err != nil {
		internalError(c, "Failed to navigate", err)
		return
	}
	c.JSON(http.StatusOK, apimodels.ToStateResponse(st))
}

// View returns the payload of the resolved page.
func (h *Handler) View(c *gin.Context) {
	v, err := h.ctrl.View(c.Request.Context(), sessions.Default(c), app.ViewOptions{
		Version: c.Query("version"),
		Mood:    c.Query("mood"),
	})
	if err != nil {
		internalError(c, "Failed to build view", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"view":    v,
	})
}

func (h *Handler) Sermons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "sermons": h.ctrl.Sermons()})
}

func (h *Handler) Music(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "music": h.ctrl.Catalog().Music})
}

func (h *Handler) Stories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "stories": h.ctrl.Catalog().Stories})
}

func (h *Handler) Quizzes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "quizzes": h.ctrl.Catalog().PublicQuizzes()})
}

func (h *Handler) Testimonies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "testimonies": h.ctrl.Testimonies()})
}

func (h *Handler) StudyPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "plans": h.ctrl.StudyPlans()})
}

func (h *Handler) Bible(c *gin.Context) {
	version := c.Param("version")
	catalog := h.ctrl.Catalog()
	if !catalog.HasVersion(version) {
		version = content.DefaultVersion
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"version":       version,
		"verses":        catalog.Verses(version),
		"verseOfTheDay": h.ctrl.Daily().Today().Verse,
	})
}

func (h *Handler) GradeQuiz(c *gin.Context) {
	var req apimodels.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "answers are required")
		return
	}

	res, err := h.ctrl.Grade(auth.CurrentUser(c), c.Param("id"), req.Answers)
	if err != nil {
		if errors.Is(err, content.ErrQuizNotFound) {
			fail(c, http.StatusNotFound, "Quiz not found")
			return
		}
		internalError(c, "Failed to grade quiz", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": res})
}

// Motivation never fails once the body is accepted, the collaborator falls
// back to a fixed message. An empty body means no mood.
func (h *Handler) Motivation(c *gin.Context) {
	var req apimodels.MotivationRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Debug("invalid motivation request", "error", err)
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"motivation": h.ctrl.Motivation(c.Request.Context(), auth.CurrentUser(c), req.Mood),
	})
}

// Users lists the registered accounts.
func (h *Handler) Users(c *gin.Context) {
	users, err := h.ctrl.Registry().Users(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to get users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// Jobs returns the background jobs as JSON.
func (h *Handler) Jobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    h.ctrl.Jobs(),
	})
}

// RunJob manually triggers a background job.
func (h *Handler) RunJob(c *gin.Context) {
	if err := h.ctrl.RunJob(c.Param("id")); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job triggered successfully",
	})
}
