package get_draft

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/service/drafts/models"
)

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Get(ctx context.Context, id string) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
