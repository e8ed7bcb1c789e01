package advance_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	"github.com/m04kA/WM-BookingService/internal/service/drafts"
	"github.com/m04kA/WM-BookingService/internal/service/drafts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDraftNotFound      = "черновик не найден или истёк"
	msgBranchNotFound     = "филиал не найден"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/advance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req models.AdvanceDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, fieldErrs, err := h.service.Advance(r.Context(), draftID, &req)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/advance - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, drafts.ErrBranchNotFound):
			h.logger.Warn("POST /drafts/{id}/advance - Branch not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("POST /drafts/{id}/advance - Invalid input: draft_id=%s, error=%v", draftID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /drafts/{id}/advance - Failed to advance draft: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if fieldErrs.HasErrors() {
		h.logger.Warn("POST /drafts/{id}/advance - Validation failed: draft_id=%s, fields=%v", draftID, fieldErrs)
		handlers.RespondUnprocessable(w, models.ValidationErrorResponse{Errors: fieldErrs})
		return
	}

	h.logger.Info("POST /drafts/{id}/advance - Draft advanced: draft_id=%s, step=%s", draftID, resp.Step)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
