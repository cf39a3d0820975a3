package models

import (
	"github.com/teenfaith/teenfaith/internal/app"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/nav"
)

// LoginRequest is the body of a login.
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier" binding:"required"`
	Password   string `form:"password" json:"password" binding:"required"`
	Role       string `form:"role" json:"role"`
}

// RegisterRequest is the body of a registration.
type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Role     string `form:"role" json:"role"`
}

// NavigateRequest is the body of a page change.
type NavigateRequest struct {
	Page string `form:"page" json:"page" binding:"required"`
}

// MotivationRequest is the body of a motivation request.
type MotivationRequest struct {
	Mood string `form:"mood" json:"mood"`
}

// GradeRequest maps question ids to the chosen option.
type GradeRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// StateResponse describes the state of the client.
type StateResponse struct {
	Success         bool           `json:"success"`
	IsAuthenticated bool           `json:"isAuthenticated"`
	User            *models.User   `json:"user"`
	Page            nav.Page       `json:"page"`
	StoredPage      nav.Page       `json:"storedPage"`
	Menu            []nav.MenuItem `json:"menu"`
}

// ToStateResponse converts an app.State, resolving the rendered page through the login gate.
func ToStateResponse(st app.State) StateResponse {
	resp := StateResponse{
		Success:         true,
		IsAuthenticated: st.Session.IsAuthenticated,
		User:            st.Session.User,
		Page:            nav.Resolve(st.Session.IsAuthenticated, st.Page),
		StoredPage:      st.Page,
		Menu:            []nav.MenuItem{},
	}
	if st.Session.IsAuthenticated && st.Session.User != nil {
		resp.Menu = nav.Menu(st.Session.User.Role)
	}
	return resp
}

// ParseRole parses an optional role, defaulting to teen.
func ParseRole(s string) (models.Role, error) {
	if s == "" {
		return models.RoleTeen, nil
	}
	return models.ParseRole(s)
}
