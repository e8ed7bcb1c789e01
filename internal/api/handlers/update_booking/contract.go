package update_booking

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/service/bookings/models"
)

// BookingService интерфейс сервиса записей
type BookingService interface {
	Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
