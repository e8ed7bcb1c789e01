package submit_booking

import "github.com/m04kA/WM-BookingService/internal/domain"

// Request входные данные: полностью собранный черновик бронирования
type Request struct {
	Draft domain.BookingDraft
}

// Response результат оформления бронирования
type Response struct {
	ID              int64              `json:"id"`
	ReferenceNumber string             `json:"referenceNumber"`
	RequestType     domain.RequestType `json:"requestType"`
	BranchID        int64              `json:"branchId"`
	BranchName      string             `json:"branchName"`
	ScheduledDate   *string            `json:"scheduledDate,omitempty"`
	ScheduledTime   *string            `json:"scheduledTime,omitempty"`
	Customer        domain.Customer    `json:"customer"`
}
