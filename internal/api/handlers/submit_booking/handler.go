package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/WM-BookingService/internal/api/handlers"
	submitBooking "github.com/m04kA/WM-BookingService/internal/usecase/submit_booking"
	"github.com/m04kA/WM-BookingService/internal/wizard"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBranchNotFound     = "филиал не найден"
	msgSlotTaken          = "выбранный слот уже занят"
	msgPastDate           = "дата записи уже прошла"
	msgInvalidSlot        = "время не попадает в сетку слотов"
)

// ValidationErrorResponse ошибки валидации черновика по полям
type ValidationErrorResponse struct {
	Errors wizard.FieldErrors `json:"errors"`
}

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), submitBooking.Request{Draft: draft})
	if err != nil {
		var validationErr *submitBooking.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /bookings - Validation failed: fields=%v", validationErr.Fields)
			handlers.RespondUnprocessable(w, ValidationErrorResponse{Errors: validationErr.Fields})

		case errors.Is(err, submitBooking.ErrBranchNotFound):
			h.logger.Warn("POST /bookings - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, submitBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot taken: branch_id=%d", req.BranchID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, submitBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Past date: %v", err)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, submitBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Submitted: reference=%s", resp.ReferenceNumber)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
