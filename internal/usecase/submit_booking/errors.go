package submit_booking

import (
	"errors"

	"github.com/m04kA/WM-BookingService/internal/wizard"
)

var (
	// ErrBranchNotFound возвращается, когда выбранный филиал не найден
	ErrBranchNotFound = errors.New("submit_booking: branch not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят другим бронированием
	ErrSlotNotAvailable = errors.New("submit_booking: time slot is not available")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("submit_booking: scheduled date is in the past")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов
	ErrInvalidTimeSlot = errors.New("submit_booking: time is not a valid slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// ValidationError ошибка валидации черновика с детализацией по полям
type ValidationError struct {
	Fields wizard.FieldErrors
}

func (e *ValidationError) Error() string {
	return "submit_booking: draft validation failed"
}
