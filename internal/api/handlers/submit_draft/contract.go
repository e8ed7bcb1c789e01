package submit_draft

import (
	"context"

	submitBooking "github.com/m04kA/WM-BookingService/internal/usecase/submit_booking"
)

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Submit(ctx context.Context, id string) (*submitBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
