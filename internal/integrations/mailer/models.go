package mailer

import "github.com/m04kA/WM-BookingService/internal/domain"

// Notification данные для письма-уведомления о созданной записи
type Notification struct {
	ReferenceNumber string
	RequestType     domain.RequestType
	RequestSource   domain.RequestSource

	CustomerName  string
	CustomerEmail string

	BranchName    string
	ScheduledDate string // пусто для котировок
	ScheduledTime string // пусто для котировок

	SubjectKind domain.SubjectKind
	Quantity    int

	VehicleYear  string
	VehicleMake  string
	VehicleModel string
}

// Result результат best-effort отправки: какие получатели получили письмо
type Result struct {
	CustomerSent bool `json:"customerSent"`
	AdminSent    bool `json:"adminSent"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
