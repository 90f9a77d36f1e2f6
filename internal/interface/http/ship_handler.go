package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jb-laurans/dockitback/internal/application"
	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	"github.com/jb-laurans/dockitback/internal/interface/middleware"
	"github.com/jb-laurans/dockitback/pkg/response"
	"github.com/jb-laurans/dockitback/pkg/validation"
)

type ShipHandler struct {
	Svc    *application.ShipService
	Logger *logrus.Logger
}

func NewShipHandler(svc *application.ShipService, logger *logrus.Logger) *ShipHandler {
	return &ShipHandler{Svc: svc, Logger: logger}
}

type listShipsQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=bulk_carrier container tanker general_cargo"`
	MinDWT int    `form:"minDwt" binding:"omitempty,gte=0"`
	MaxDWT int    `form:"maxDwt" binding:"omitempty,gte=0"`
	Port   string `form:"port"`
}

type createShipRequest struct {
	Name              string         `json:"name" binding:"required"`
	Type              string         `json:"type" binding:"required,oneof=bulk_carrier container tanker general_cargo"`
	DWT               int            `json:"dwt" binding:"required,gt=0"`
	CurrentPort       string         `json:"currentPort" binding:"required"`
	NextAvailableDate string         `json:"nextAvailableDate" binding:"required,datetime=2006-01-02"`
	Lat               float64        `json:"lat" binding:"omitempty,latitude"`
	Lng               float64        `json:"lng" binding:"omitempty,longitude"`
	Images            []string       `json:"images" binding:"omitempty,dive,url"`
	Specifications    map[string]any `json:"specifications"`
	RatePerDay        *int           `json:"ratePerDay" binding:"omitempty,gt=0"`
}

func (h *ShipHandler) List(c *gin.Context) {
	var q listShipsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", validation.ToDetails(err))
		return
	}

	ships, err := h.Svc.List(repo.ShipFilters{
		Type:   q.Type,
		MinDWT: q.MinDWT,
		MaxDWT: q.MaxDWT,
		Port:   q.Port,
	})
	if err != nil {
		h.Logger.WithError(err).Error("ship listing failed")
		response.Error(c, http.StatusInternalServerError, "ship listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, shipsJSON(ships), "ships")
}

func (h *ShipHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ship id", nil)
		return
	}

	ship, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, application.ErrShipNotFound) {
			response.Error(c, http.StatusNotFound, "ship not found", nil)
			return
		}
		h.Logger.WithError(err).Error("ship lookup failed")
		response.Error(c, http.StatusInternalServerError, "ship lookup failed", nil)
		return
	}
	response.Success(c, http.StatusOK, shipJSON(ship), "ship")
}

func (h *ShipHandler) Create(c *gin.Context) {
	var req createShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	available, _ := time.Parse("2006-01-02", req.NextAvailableDate)

	ship := &entity.Ship{
		Name:              req.Name,
		Type:              entity.ShipType(req.Type),
		DWT:               req.DWT,
		CurrentPort:       req.CurrentPort,
		NextAvailableDate: available,
		Lat:               req.Lat,
		Lng:               req.Lng,
		Images:            req.Images,
		Specifications:    req.Specifications,
		RatePerDay:        req.RatePerDay,
	}

	created, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c).ID, ship)
	if err != nil {
		h.Logger.WithError(err).Error("ship create failed")
		response.Error(c, http.StatusInternalServerError, "ship create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, shipJSON(created), "ship created")
}

func (h *ShipHandler) MyShips(c *gin.Context) {
	ships, err := h.Svc.MyShips(middleware.CurrentUser(c).ID)
	if err != nil {
		h.Logger.WithError(err).Error("owned ship listing failed")
		response.Error(c, http.StatusInternalServerError, "ship listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, shipsJSON(ships), "my ships")
}

// UploadImage accepts a multipart "image" file and appends its public
// URL to the ship's gallery.
func (h *ShipHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ship id", nil)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable image file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	ship, err := h.Svc.AddImage(c.Request.Context(), id, middleware.CurrentUser(c).ID,
		f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrShipNotFound):
			response.Error(c, http.StatusNotFound, "ship not found", nil)
		case errors.Is(err, application.ErrNotShipOwner):
			response.Error(c, http.StatusForbidden, "ship belongs to another owner", nil)
		default:
			h.Logger.WithError(err).Error("image upload failed")
			response.Error(c, http.StatusInternalServerError, "image upload failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, shipJSON(ship), "image uploaded")
}

func (h *ShipHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("ship search failed")
		response.Error(c, http.StatusInternalServerError, "ship search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}

func shipJSON(s *entity.Ship) gin.H {
	return gin.H{
		"id":                s.ID,
		"name":              s.Name,
		"type":              s.Type,
		"dwt":               s.DWT,
		"currentPort":       s.CurrentPort,
		"nextAvailableDate": s.NextAvailableDate,
		"lat":               s.Lat,
		"lng":               s.Lng,
		"owner":             s.Owner,
		"images":            s.Images,
		"specifications":    s.Specifications,
		"ratePerDay":        s.RatePerDay,
		"ownerId":           s.OwnerID,
		"createdAt":         s.CreatedAt,
		"updatedAt":         s.UpdatedAt,
	}
}

func shipsJSON(ships []*entity.Ship) []gin.H {
	out := make([]gin.H, 0, len(ships))
	for _, s := range ships {
		out = append(out, shipJSON(s))
	}
	return out
}
