package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/application"
	"github.com/jb-laurans/dockitback/internal/domain/entity"
	"github.com/jb-laurans/dockitback/internal/interface/middleware"
	"github.com/jb-laurans/dockitback/pkg/response"
	"github.com/jb-laurans/dockitback/pkg/validation"
)

type CargoHandler struct {
	Svc    *application.CargoService
	Logger *logrus.Logger
}

func NewCargoHandler(svc *application.CargoService, logger *logrus.Logger) *CargoHandler {
	return &CargoHandler{Svc: svc, Logger: logger}
}

type createCargoRequest struct {
	Commodity     string `json:"commodity" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	LoadingPort   string `json:"loadingPort" binding:"required"`
	DischargePort string `json:"dischargePort" binding:"required"`
	LaycanStart   string `json:"laycanStart" binding:"required,datetime=2006-01-02"`
	LaycanEnd     string `json:"laycanEnd" binding:"required,datetime=2006-01-02"`
	Description   string `json:"description"`
}

func (h *CargoHandler) Create(c *gin.Context) {
	var req createCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	start, _ := time.Parse("2006-01-02", req.LaycanStart)
	end, _ := time.Parse("2006-01-02", req.LaycanEnd)
	if end.Before(start) {
		response.Error(c, http.StatusBadRequest, "invalid payload",
			map[string]string{"laycanEnd": "laycanEnd must not precede laycanStart"})
		return
	}

	cargo := &entity.Cargo{
		Commodity:     req.Commodity,
		Quantity:      req.Quantity,
		LoadingPort:   req.LoadingPort,
		DischargePort: req.DischargePort,
		LaycanStart:   start,
		LaycanEnd:     end,
		Description:   req.Description,
	}

	created, err := h.Svc.Create(middleware.CurrentUser(c).ID, cargo)
	if err != nil {
		h.Logger.WithError(err).Error("cargo create failed")
		response.Error(c, http.StatusInternalServerError, "cargo create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, cargoJSON(created), "cargo created")
}

func (h *CargoHandler) List(c *gin.Context) {
	cargos, err := h.Svc.List()
	if err != nil {
		h.Logger.WithError(err).Error("cargo listing failed")
		response.Error(c, http.StatusInternalServerError, "cargo listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, cargosJSON(cargos), "cargos")
}

func (h *CargoHandler) MyCargos(c *gin.Context) {
	cargos, err := h.Svc.MyCargos(middleware.CurrentUser(c).ID)
	if err != nil {
		h.Logger.WithError(err).Error("owned cargo listing failed")
		response.Error(c, http.StatusInternalServerError, "cargo listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, cargosJSON(cargos), "my cargos")
}

func cargoJSON(cg *entity.Cargo) gin.H {
	return gin.H{
		"id":            cg.ID,
		"commodity":     cg.Commodity,
		"quantity":      cg.Quantity,
		"loadingPort":   cg.LoadingPort,
		"dischargePort": cg.DischargePort,
		"laycanStart":   cg.LaycanStart,
		"laycanEnd":     cg.LaycanEnd,
		"charterer":     cg.Charterer,
		"description":   cg.Description,
		"chartererId":   cg.ChartererID,
		"createdAt":     cg.CreatedAt,
		"updatedAt":     cg.UpdatedAt,
	}
}

func cargosJSON(cargos []*entity.Cargo) []gin.H {
	out := make([]gin.H, 0, len(cargos))
	for _, cg := range cargos {
		out = append(out, cargoJSON(cg))
	}
	return out
}
