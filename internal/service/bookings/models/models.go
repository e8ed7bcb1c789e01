package models

import (
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

// Request модели

// GetBranchBookingsRequest запрос на получение бронирований филиала
type GetBranchBookingsRequest struct {
	BranchID        int64      `json:"branchId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	RequestType     *string    `json:"requestType,omitempty"`     // booking | quotation (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchBookingsRequest) ToDomainFilter() (domain.BranchBookingsFilter, error) {
	filter := domain.BranchBookingsFilter{
		BranchID:        r.BranchID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.RequestType != nil {
		rt := domain.RequestType(*r.RequestType)
		if rt != domain.RequestTypeBooking && rt != domain.RequestTypeQuotation {
			return filter, ErrInvalidRequestType
		}
		filter.RequestType = &rt
	}

	return filter, nil
}

// UpdateBookingRequest частичное обновление записи администратором
type UpdateBookingRequest struct {
	BranchID      *int64  `json:"branchId,omitempty"`
	ScheduledDate *string `json:"scheduledDate,omitempty"` // "2025-10-15"
	ScheduledTime *string `json:"scheduledTime,omitempty"` // "10:00"
	Quantity      *int    `json:"quantity,omitempty"`
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	SubjectID       int64  `json:"subjectId"`
	SubjectKind     string `json:"subjectKind"`
	Quantity        int    `json:"quantity"`

	VehicleYear  string `json:"vehicleYear"`
	VehicleMake  string `json:"vehicleMake"`
	VehicleModel string `json:"vehicleModel"`

	BranchID   int64  `json:"branchId"`
	BranchName string `json:"branchName"`

	ScheduledDate *string `json:"scheduledDate,omitempty"` // "2025-10-15"
	ScheduledTime *string `json:"scheduledTime,omitempty"` // "10:00"

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	RequestType   string `json:"requestType"`
	RequestSource string `json:"requestSource"`
	IsActive      bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ReferenceNumber: b.ReferenceNumber(),
		SubjectID:       b.SubjectID,
		SubjectKind:     string(b.SubjectKind),
		Quantity:        b.Quantity,
		VehicleYear:     b.VehicleYear,
		VehicleMake:     b.VehicleMake,
		VehicleModel:    b.VehicleModel,
		BranchID:        b.BranchID,
		BranchName:      b.BranchName,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		RequestType:     string(b.RequestType),
		RequestSource:   string(b.RequestSource),
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.ScheduledDate != nil {
		date := b.ScheduledDate.Format(domain.DateFormat)
		resp.ScheduledDate = &date
	}
	if b.ScheduledTime != nil {
		t := b.ScheduledTime.String()
		resp.ScheduledTime = &t
	}

	return resp
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainPatch конвертирует запрос обновления в domain патч
func (r *UpdateBookingRequest) ToDomainPatch() (domain.BookingPatch, error) {
	patch := domain.BookingPatch{
		BranchID: r.BranchID,
		Quantity: r.Quantity,
	}

	if r.ScheduledDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.ScheduledDate)
		if err != nil {
			return patch, ErrInvalidDate
		}
		patch.ScheduledDate = &date
	}

	if r.ScheduledTime != nil {
		t, err := types.NewTimeStringFromString(*r.ScheduledTime)
		if err != nil {
			return patch, ErrInvalidTime
		}
		patch.ScheduledTime = &t
	}

	return patch, nil
}
