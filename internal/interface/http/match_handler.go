package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/application"
	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/interface/middleware"
	"github.com/jb-laurans/dockitback/pkg/response"
	"github.com/jb-laurans/dockitback/pkg/validation"
)

type MatchHandler struct {
	Svc    *application.MatchService
	Logger *logrus.Logger
}

func NewMatchHandler(svc *application.MatchService, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{Svc: svc, Logger: logger}
}

type createMatchRequest struct {
	ShipID  int64  `json:"shipId" binding:"required,gt=0"`
	CargoID *int64 `json:"cargoId" binding:"omitempty,gt=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted negotiating confirmed"`
}

func (h *MatchHandler) Create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	m, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c).ID, req.ShipID, req.CargoID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyMatched):
			response.Error(c, http.StatusConflict, "ship already matched", nil)
		case errors.Is(err, application.ErrShipNotFound):
			response.Error(c, http.StatusNotFound, "ship not found", nil)
		default:
			h.Logger.WithError(err).Error("match create failed")
			response.Error(c, http.StatusInternalServerError, "match create failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, matchJSON(m), "match created")
}

func (h *MatchHandler) MyMatches(c *gin.Context) {
	matches, err := h.Svc.ListMine(middleware.CurrentUser(c).ID)
	if err != nil {
		h.Logger.WithError(err).Error("match listing failed")
		response.Error(c, http.StatusInternalServerError, "match listing failed", nil)
		return
	}

	out := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		item := matchJSON(&m.Match)
		item["ship"] = gin.H{
			"name":        m.Ship.Name,
			"owner":       m.Ship.Owner,
			"type":        m.Ship.Type,
			"dwt":         m.Ship.DWT,
			"currentPort": m.Ship.CurrentPort,
			"images":      m.Ship.Images,
		}
		out = append(out, item)
	}
	response.Success(c, http.StatusOK, out, "my matches")
}

func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid match id", nil)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	m, err := h.Svc.UpdateStatus(id, entity.MatchStatus(req.Status))
	if err != nil {
		if errors.Is(err, application.ErrMatchNotFound) {
			response.Error(c, http.StatusNotFound, "match not found", nil)
			return
		}
		h.Logger.WithError(err).Error("match status update failed")
		response.Error(c, http.StatusInternalServerError, "match status update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, matchJSON(m), "match updated")
}

func matchJSON(m *entity.Match) gin.H {
	return gin.H{
		"id":        m.ID,
		"shipId":    m.ShipID,
		"userId":    m.UserID,
		"cargoId":   m.CargoID,
		"status":    m.Status,
		"matchedAt": m.MatchedAt,
		"createdAt": m.CreatedAt,
		"updatedAt": m.UpdatedAt,
	}
}
