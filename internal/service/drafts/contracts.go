package drafts

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/WM-BookingService/internal/usecase/submit_booking"
	"github.com/m04kA/WM-BookingService/internal/wizard"
)

// DraftStore интерфейс хранилища черновиков с TTL
type DraftStore interface {
	Create(ctx context.Context, state wizard.State) (string, error)
	Get(ctx context.Context, id string) (wizard.State, error)
	Save(ctx context.Context, id string, state wizard.State) error
	Delete(ctx context.Context, id string) error
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// SlotsUsecase расчёт свободных слотов: снимок доступности снимается
// при входе на шаг выбора даты
type SlotsUsecase interface {
	Execute(ctx context.Context, req get_available_slots.Request) (*get_available_slots.Response, error)
}

// SubmitUsecase оформление записи из собранного черновика
type SubmitUsecase interface {
	Execute(ctx context.Context, req submit_booking.Request) (*submit_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
