package create_branch

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/service/branches/models"
)

// BranchService интерфейс сервиса филиалов
type BranchService interface {
	Create(ctx context.Context, req *models.CreateBranchRequest) (*models.BranchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
