package models

import (
	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/internal/wizard"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

// Request модели

// CreateDraftRequest запрос на создание черновика записи
type CreateDraftRequest struct {
	SubjectID     int64  `json:"subjectId"`
	SubjectKind   string `json:"subjectKind"`   // tire | service
	RequestType   string `json:"requestType"`   // booking | quotation
	RequestSource string `json:"requestSource"` // tire | service
}

// VehiclePayload данные автомобиля для шага subject_and_vehicle
type VehiclePayload struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// CustomerPayload контактные данные для шага customer_info
type CustomerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AdvanceDraftRequest данные текущего шага при продвижении мастера.
// Заполняется секция, соответствующая шагу черновика; остальные игнорируются
type AdvanceDraftRequest struct {
	// subject_and_vehicle
	Quantity *int            `json:"quantity,omitempty"`
	Vehicle  *VehiclePayload `json:"vehicle,omitempty"`

	// branch_selection
	BranchID *int64 `json:"branchId,omitempty"`

	// date_time
	ScheduledDate *string `json:"scheduledDate,omitempty"` // "2025-10-15"
	ScheduledTime *string `json:"scheduledTime,omitempty"` // "10:00"

	// customer_info
	Customer *CustomerPayload `json:"customer,omitempty"`
}

// Response модели

// DraftResponse текущее состояние черновика
type DraftResponse struct {
	ID    string              `json:"id"`
	Step  string              `json:"step"`
	Draft domain.BookingDraft `json:"draft"`

	// Снимок доступности, снятый при выборе даты
	AvailableSlots []types.TimeString `json:"availableSlots,omitempty"`
}

// ValidationErrorResponse ошибки валидации шага по полям
type ValidationErrorResponse struct {
	Errors wizard.FieldErrors `json:"errors"`
}

// FromState конвертирует состояние мастера в DTO
func FromState(id string, state wizard.State) *DraftResponse {
	return &DraftResponse{
		ID:             id,
		Step:           state.Step.String(),
		Draft:          state.Draft,
		AvailableSlots: state.AvailabilitySnapshot,
	}
}
