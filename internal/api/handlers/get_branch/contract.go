package get_branch

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/service/branches/models"
)

// BranchService интерфейс сервиса филиалов
type BranchService interface {
	GetByID(ctx context.Context, id int64) (*models.BranchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
