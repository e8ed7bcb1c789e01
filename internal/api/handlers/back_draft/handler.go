package back_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	"github.com/m04kA/WM-BookingService/internal/service/drafts"
)

const (
	msgDraftNotFound = "черновик не найден или истёк"
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

// Handle POST /api/v1/drafts/{draftId}/back
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	resp, err := h.service.Back(r.Context(), draftID)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/back - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("POST /drafts/{id}/back - Invalid transition: draft_id=%s, error=%v", draftID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /drafts/{id}/back - Failed to move draft back: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/back - Draft moved back: draft_id=%s, step=%s", draftID, resp.Step)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
