package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/WM-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем branchId из URL
	branchIDStr := vars["branchId"]
	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/available-slots - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	// Извлекаем date из query
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /branches/{id}/available-slots - Missing date: branch_id=%d", branchID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), getAvailableSlots.Request{
		BranchID: branchID,
		Date:     dateStr,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/available-slots - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/available-slots - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		default:
			h.logger.Error("GET /branches/{id}/available-slots - Failed to calculate slots: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/available-slots - Slots calculated: branch_id=%d, date=%s, available=%d",
		branchID, dateStr, len(resp.AvailableSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
