package list_branches

import (
	"net/http"
	"strconv"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	"github.com/m04kA/WM-BookingService/internal/service/branches/models"
)

const (
	msgInvalidLat  = "некорректная широта"
	msgInvalidLng  = "некорректная долгота"
	msgPartialGeo  = "lat и lng задаются вместе"
	msgInvalidUnit = "некорректная единица измерения, ожидается km или mi"
)

type Handler struct {
	service BranchService
	logger  Logger
}

func NewHandler(service BranchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches
// Query params: lat, lng (опционально, вместе), unit (km | mi, по умолчанию km)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListBranchesRequest{}

	latStr := query.Get("lat")
	lngStr := query.Get("lng")
	if (latStr == "") != (lngStr == "") {
		h.logger.Warn("GET /branches - Partial coordinates: lat=%q, lng=%q", latStr, lngStr)
		handlers.RespondBadRequest(w, msgPartialGeo)
		return
	}

	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			h.logger.Warn("GET /branches - Invalid lat: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLat)
			return
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			h.logger.Warn("GET /branches - Invalid lng: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLng)
			return
		}
		req.Lat = &lat
		req.Lng = &lng
	}

	if unit := query.Get("unit"); unit != "" {
		if unit != "km" && unit != "mi" {
			h.logger.Warn("GET /branches - Invalid unit: %q", unit)
			handlers.RespondBadRequest(w, msgInvalidUnit)
			return
		}
		req.Unit = unit
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /branches - Failed to list branches: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches - Listed %d branches", len(resp.Branches))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
