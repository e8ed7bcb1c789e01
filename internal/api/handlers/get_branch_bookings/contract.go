package get_branch_bookings

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/service/bookings/models"
)

// BookingService интерфейс сервиса записей
type BookingService interface {
	GetBranchBookings(ctx context.Context, req *models.GetBranchBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
