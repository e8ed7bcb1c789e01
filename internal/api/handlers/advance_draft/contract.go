package advance_draft

import (
	"context"

	"github.com/m04kA/WM-BookingService/internal/service/drafts/models"
	"github.com/m04kA/WM-BookingService/internal/wizard"
)

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Advance(ctx context.Context, id string, req *models.AdvanceDraftRequest) (*models.DraftResponse, wizard.FieldErrors, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
