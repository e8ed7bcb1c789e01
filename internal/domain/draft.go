package domain

import (
	"time"

	"github.com/m04kA/WM-BookingService/pkg/types"
)

// Vehicle is the free-text vehicle triple collected on the first wizard step.
// No cross-validation against a vehicle catalog is performed.
type Vehicle struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// Customer is the contact triple collected on the final wizard step
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingDraft is the transient record accumulated across wizard steps.
// It is not persisted as a booking until submission; abandoned drafts
// simply expire.
type BookingDraft struct {
	SubjectID   int64       `json:"subjectId"`
	SubjectKind SubjectKind `json:"subjectKind"`
	Quantity    int         `json:"quantity"`

	Vehicle Vehicle `json:"vehicle"`

	BranchID int64 `json:"branchId"`
	// Denormalized at branch selection time, before any slot lookup
	BranchName string `json:"branchName"`

	ScheduledDate *time.Time        `json:"scheduledDate,omitempty"`
	ScheduledTime *types.TimeString `json:"scheduledTime,omitempty"`

	Customer Customer `json:"customer"`

	RequestType   RequestType   `json:"requestType"`
	RequestSource RequestSource `json:"requestSource"`
}

// IsQuotation returns true for pricing inquiries, which carry no date/time
func (d *BookingDraft) IsQuotation() bool {
	return d.RequestType == RequestTypeQuotation
}
