package submit_booking

import (
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

// SubmitBookingRequest HTTP-модель полного черновика для прямого оформления
type SubmitBookingRequest struct {
	SubjectID   int64  `json:"subjectId"`
	SubjectKind string `json:"subjectKind"`
	Quantity    int    `json:"quantity"`

	Vehicle struct {
		Year  string `json:"year"`
		Make  string `json:"make"`
		Model string `json:"model"`
	} `json:"vehicle"`

	BranchID int64 `json:"branchId"`

	ScheduledDate *string `json:"scheduledDate,omitempty"` // "2025-10-15"
	ScheduledTime *string `json:"scheduledTime,omitempty"` // "10:00"

	Customer struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"customer"`

	RequestType   string `json:"requestType"`   // booking | quotation
	RequestSource string `json:"requestSource"` // tire | service
}

// ToDraft конвертирует HTTP-модель в доменный черновик
func (r *SubmitBookingRequest) ToDraft() (domain.BookingDraft, error) {
	draft := domain.BookingDraft{
		SubjectID:   r.SubjectID,
		SubjectKind: domain.SubjectKind(r.SubjectKind),
		Quantity:    r.Quantity,
		Vehicle: domain.Vehicle{
			Year:  r.Vehicle.Year,
			Make:  r.Vehicle.Make,
			Model: r.Vehicle.Model,
		},
		BranchID: r.BranchID,
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		RequestType:   domain.RequestType(r.RequestType),
		RequestSource: domain.RequestSource(r.RequestSource),
	}

	if r.ScheduledDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.ScheduledDate)
		if err != nil {
			return draft, err
		}
		draft.ScheduledDate = &date
	}
	if r.ScheduledTime != nil {
		slot, err := types.NewTimeStringFromString(*r.ScheduledTime)
		if err != nil {
			return draft, err
		}
		draft.ScheduledTime = &slot
	}

	return draft, nil
}
