package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/internal/integrations/mailer"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create создаёт бронирование и возвращает его с присвоенным ID
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetByBranchWithFilter получает бронирования филиала по фильтру.
	// Внутри транзакции с точной датой блокирует строки через FOR UPDATE.
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в транзакции с уровнем изоляции Serializable
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс асинхронной отправки уведомлений
type Notifier interface {
	// Enqueue ставит уведомление в очередь, не блокируя вызывающего
	Enqueue(n mailer.Notification)
}

// TimeProvider абстракция над текущим временем для тестируемости
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
