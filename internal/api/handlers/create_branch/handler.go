package create_branch

import (
	"errors"
	"net/http"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	"github.com/m04kA/WM-BookingService/internal/service/branches"
	"github.com/m04kA/WM-BookingService/internal/service/branches/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/branches
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBranchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("POST /branches - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /branches - Failed to create branch: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /branches - Branch created: branch_id=%d", resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
