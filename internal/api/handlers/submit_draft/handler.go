package submit_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	"github.com/m04kA/WM-BookingService/internal/service/drafts"
	"github.com/m04kA/WM-BookingService/internal/service/drafts/models"
	submitBooking "github.com/m04kA/WM-BookingService/internal/usecase/submit_booking"
)

const (
	msgDraftNotFound  = "черновик не найден или истёк"
	msgNotReady       = "черновик не готов к отправке"
	msgBranchNotFound = "филиал не найден"
	msgSlotTaken      = "выбранный слот уже занят"
	msgPastDate       = "дата записи уже прошла"
	msgInvalidSlot    = "время не попадает в сетку слотов"
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

// Handle POST /api/v1/drafts/{draftId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	resp, err := h.service.Submit(r.Context(), draftID)
	if err != nil {
		var validationErr *submitBooking.ValidationError
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/submit - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, drafts.ErrNotReady):
			h.logger.Warn("POST /drafts/{id}/submit - Draft not ready: draft_id=%s", draftID)
			handlers.RespondBadRequest(w, msgNotReady)

		case errors.As(err, &validationErr):
			h.logger.Warn("POST /drafts/{id}/submit - Validation failed: draft_id=%s, fields=%v", draftID, validationErr.Fields)
			handlers.RespondUnprocessable(w, models.ValidationErrorResponse{Errors: validationErr.Fields})

		case errors.Is(err, submitBooking.ErrBranchNotFound):
			h.logger.Warn("POST /drafts/{id}/submit - Branch not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, submitBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /drafts/{id}/submit - Slot taken: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, submitBooking.ErrInvalidDate):
			h.logger.Warn("POST /drafts/{id}/submit - Past date: draft_id=%s", draftID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, submitBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /drafts/{id}/submit - Invalid slot: draft_id=%s", draftID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /drafts/{id}/submit - Failed to submit draft: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/submit - Draft submitted: draft_id=%s, reference=%s", draftID, resp.ReferenceNumber)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
