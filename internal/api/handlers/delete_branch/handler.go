package delete_branch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	"github.com/m04kA/WM-BookingService/internal/service/branches"
)

const (
	msgInvalidBranchID  = "некорректный ID филиала"
	msgBranchNotFound   = "филиал не найден"
	msgBranchHasHistory = "филиал нельзя удалить: на него ссылаются записи"
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

// Handle DELETE /api/v1/branches/{branchId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /branches/{id} - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	if err := h.service.Delete(r.Context(), branchID); err != nil {
		switch {
		case errors.Is(err, branches.ErrBranchNotFound):
			h.logger.Warn("DELETE /branches/{id} - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, branches.ErrBranchHasBookings):
			h.logger.Warn("DELETE /branches/{id} - Branch has bookings: branch_id=%d", branchID)
			handlers.RespondConflict(w, msgBranchHasHistory)

		default:
			h.logger.Error("DELETE /branches/{id} - Failed to delete branch: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /branches/{id} - Branch deleted: branch_id=%d", branchID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
