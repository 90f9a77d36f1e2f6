// Package handlers holds the Gin handlers behind /api.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/application"
	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/interface/middleware"
	"github.com/jb-laurans/dockitback/pkg/response"
	"github.com/jb-laurans/dockitback/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Type     string `json:"type" binding:"required,oneof=charterer shipowner"`
	Company  string `json:"company"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Type:     entity.UserType(req.Type),
		Company:  req.Company,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	token, exp, err := h.Svc.IssueToken(u)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":      userJSON(u),
		"token":     token,
		"expiresAt": exp,
	}, "registered")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	token, exp, err := h.Svc.IssueToken(u)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":      userJSON(u),
		"token":     token,
		"expiresAt": exp,
	}, "login successful")
}

// Logout is a stateless acknowledgement; the client discards its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, "logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, gin.H{"user": userJSON(u)}, "profile")
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(middleware.CurrentUser(c).ID, req.Name, req.Company)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("profile update failed")
		response.Error(c, http.StatusInternalServerError, "profile update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userJSON(u)}, "profile updated")
}

func (h *AuthHandler) ShipownerDashboard(c *gin.Context) {
	counts, err := h.Svc.Dashboard(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.Logger.WithError(err).Error("dashboard query failed")
		response.Error(c, http.StatusInternalServerError, "dashboard unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, counts, "dashboard")
}

// userJSON serializes an account without its password hash.
func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"type":      u.Type,
		"company":   u.Company,
		"verified":  u.Verified,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}
