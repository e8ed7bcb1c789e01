package get_branch_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/internal/service/bookings"
	"github.com/m04kA/WM-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBranchID  = "некорректный ID филиала"
	msgInvalidStartDate = "некорректный формат startDate, ожидается YYYY-MM-DD"
	msgInvalidEndDate   = "некорректный формат endDate, ожидается YYYY-MM-DD"
	msgBranchNotFound   = "филиал не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/bookings
// Query params: startDate, endDate (YYYY-MM-DD), requestType (booking | quotation),
// includeInactive (true | false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/bookings - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	query := r.URL.Query()
	req := &models.GetBranchBookingsRequest{BranchID: branchID}

	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/bookings - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		req.StartDate = &start
	}

	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/bookings - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		req.EndDate = &end
	}

	if typeStr := query.Get("requestType"); typeStr != "" {
		req.RequestType = &typeStr
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	resp, err := h.service.GetBranchBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/bookings - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/bookings - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /branches/{id}/bookings - Failed to get bookings: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/bookings - Fetched %d bookings: branch_id=%d", len(resp.Bookings), branchID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
