package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/WM-BookingService/pkg/types"
)

// RequestType distinguishes a scheduled appointment from a pricing inquiry
type RequestType string

const (
	RequestTypeBooking   RequestType = "booking"
	RequestTypeQuotation RequestType = "quotation"
)

// RequestSource identifies which storefront flow produced the request.
// Independent of SubjectKind: a service page may submit a tire quotation.
type RequestSource string

const (
	RequestSourceTire    RequestSource = "tire"
	RequestSourceService RequestSource = "service"
)

// SubjectKind identifies what is being booked
type SubjectKind string

const (
	SubjectKindTire    SubjectKind = "tire"
	SubjectKindService SubjectKind = "service"
)

// Booking represents a persisted booking or quotation request
type Booking struct {
	ID          int64
	SubjectID   int64
	SubjectKind SubjectKind
	Quantity    int

	VehicleYear  string
	VehicleMake  string
	VehicleModel string

	BranchID int64
	// Denormalized at creation time so history survives branch renames
	BranchName string

	// Both nil for quotations
	ScheduledDate *time.Time
	ScheduledTime *types.TimeString

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	RequestType   RequestType
	RequestSource RequestSource

	// Soft-cancellation flag; bookings are never hard-deleted
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReferenceNumber derives the human-readable identifier from the persisted id
// and request type: WM-000123 for bookings, QT-000123 for quotations
func (b *Booking) ReferenceNumber() string {
	return ReferenceNumber(b.RequestType, b.ID)
}

// ReferenceNumber is a pure function of request type and persisted id
func ReferenceNumber(t RequestType, id int64) string {
	prefix := ReferencePrefixBooking
	if t == RequestTypeQuotation {
		prefix = ReferencePrefixQuotation
	}
	return fmt.Sprintf("%s-%06d", prefix, id)
}

// ConsumesSlot returns true if the booking occupies a time slot:
// only active scheduled appointments do; quotations never do
func (b *Booking) ConsumesSlot() bool {
	return b.IsActive &&
		b.RequestType == RequestTypeBooking &&
		b.ScheduledDate != nil &&
		b.ScheduledTime != nil
}

// BranchBookingsFilter фильтр для выборки бронирований филиала
type BranchBookingsFilter struct {
	BranchID        int64        // Обязательный параметр
	StartDate       *time.Time   // Начало периода (опционально)
	EndDate         *time.Time   // Конец периода (опционально)
	RequestType     *RequestType // Фильтр по типу запроса (опционально)
	IncludeInactive bool         // Включать ли отменённые (is_active = false)
}

// BookingPatch частичное обновление бронирования администратором
// nil-поле означает "не менять"
type BookingPatch struct {
	BranchID *int64
	// Новый снимок названия филиала; заполняется сервисом при смене BranchID
	BranchName    *string
	ScheduledDate *time.Time
	ScheduledTime *types.TimeString
	Quantity      *int
}
