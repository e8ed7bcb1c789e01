package branches

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error)
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	List(ctx context.Context) ([]*domain.Branch, error)
	Update(ctx context.Context, id int64, patch domain.BranchPatch) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория записей: сервису нужен только
// счётчик для защиты целостности при удалении филиала
type BookingRepository interface {
	CountByBranchID(ctx context.Context, branchID int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
