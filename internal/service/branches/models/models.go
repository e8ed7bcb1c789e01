package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
)

var (
	// ErrNameRequired возвращается при создании филиала без названия
	ErrNameRequired = errors.New("branch name is required")

	// ErrAddressRequired возвращается при создании филиала без адреса
	ErrAddressRequired = errors.New("branch address is required")

	// ErrPartialCoordinates возвращается, когда задана только одна координата
	ErrPartialCoordinates = errors.New("lat and lng must be set together")
)

// Request модели

// CreateBranchRequest запрос на создание филиала
type CreateBranchRequest struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	WorkingHours string   `json:"workingHours"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Subdomain    *string  `json:"subdomain,omitempty"`
}

// Validate проверяет обязательные поля и согласованность координат
func (r *CreateBranchRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Address) == "" {
		return ErrAddressRequired
	}
	if (r.Lat == nil) != (r.Lng == nil) {
		return ErrPartialCoordinates
	}
	return nil
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateBranchRequest) ToDomain() *domain.Branch {
	return &domain.Branch{
		Name:         strings.TrimSpace(r.Name),
		Address:      strings.TrimSpace(r.Address),
		Phone:        strings.TrimSpace(r.Phone),
		WorkingHours: strings.TrimSpace(r.WorkingHours),
		Lat:          r.Lat,
		Lng:          r.Lng,
		Subdomain:    r.Subdomain,
	}
}

// UpdateBranchRequest частичное обновление филиала
type UpdateBranchRequest struct {
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	WorkingHours *string  `json:"workingHours,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Subdomain    *string  `json:"subdomain,omitempty"`
}

// ToDomainPatch конвертирует запрос в domain патч
func (r *UpdateBranchRequest) ToDomainPatch() domain.BranchPatch {
	return domain.BranchPatch{
		Name:         r.Name,
		Address:      r.Address,
		Phone:        r.Phone,
		WorkingHours: r.WorkingHours,
		Lat:          r.Lat,
		Lng:          r.Lng,
		Subdomain:    r.Subdomain,
	}
}

// ListBranchesRequest запрос каталога филиалов.
// Координаты клиента опциональны: с ними список аннотируется расстоянием
// и сортируется от ближнего к дальнему
type ListBranchesRequest struct {
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
	Unit string   `json:"unit,omitempty"` // km (по умолчанию) | mi
}

// HasOrigin возвращает true, если заданы обе координаты клиента
func (r *ListBranchesRequest) HasOrigin() bool {
	return r.Lat != nil && r.Lng != nil
}

// Response модели

// BranchResponse ответ с данными филиала
type BranchResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	WorkingHours string   `json:"workingHours"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Subdomain    *string  `json:"subdomain,omitempty"`

	// Заполняется только при запросе с координатами клиента
	Distance *float64 `json:"distance,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BranchListResponse ответ со списком филиалов
type BranchListResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// FromDomainBranch конвертирует domain модель в DTO
func FromDomainBranch(b *domain.Branch) *BranchResponse {
	if b == nil {
		return nil
	}
	return &BranchResponse{
		ID:           b.ID,
		Name:         b.Name,
		Address:      b.Address,
		Phone:        b.Phone,
		WorkingHours: b.WorkingHours,
		Lat:          b.Lat,
		Lng:          b.Lng,
		Subdomain:    b.Subdomain,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
