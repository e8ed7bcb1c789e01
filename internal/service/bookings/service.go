package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/WM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/WM-BookingService/internal/infra/storage/booking"
	branchRepo "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/service/bookings/models"
	"github.com/m04kA/WM-BookingService/pkg/ptr"
)

// Service сервис для административной работы с записями
type Service struct {
	bookingRepo BookingRepository
	branchRepo  BranchRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(bookingRepo BookingRepository, branchRepo BranchRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		branchRepo:  branchRepo,
		logger:      logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetBranchBookings получает записи филиала с фильтрацией по периоду и типу
func (s *Service) GetBranchBookings(ctx context.Context, req *models.GetBranchBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBranchBookings: fetching bookings for branch=%d", req.BranchID)

	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBranchBookings: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем существование филиала, чтобы отличить пустую историю от опечатки в ID
	if _, err := s.branchRepo.GetByID(ctx, filter.BranchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("GetBranchBookings: branch=%d not found", filter.BranchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("GetBranchBookings: failed to get branch=%d: %v", filter.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchBookings - repository error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchBookings: repository error for branch=%d: %v", filter.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchBookings: fetched %d bookings for branch=%d", len(bookings), filter.BranchID)
	return models.FromDomainBookings(bookings), nil
}

// Cancel мягко отменяет запись (is_active = false), освобождая её слот.
// Запись остаётся в истории филиала
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.IsActive {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", id)
		return nil, ErrAlreadyCancelled
	}

	if err := s.bookingRepo.SetActive(ctx, id, false); err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.IsActive = false
	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return models.FromDomainBooking(booking), nil
}

// Reactivate возвращает отменённую запись в активное состояние.
// Для бронирований слот должен быть по-прежнему свободен
func (s *Service) Reactivate(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Reactivate: reactivating booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Reactivate: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Reactivate: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reactivate - repository error: %v", ErrInternal, err)
	}

	if booking.IsActive {
		s.logger.Warn("Reactivate: booking id=%d is already active", id)
		return nil, ErrAlreadyActive
	}

	if booking.RequestType == domain.RequestTypeBooking && booking.ScheduledDate != nil && booking.ScheduledTime != nil {
		taken, err := s.slotTaken(ctx, booking.BranchID, booking)
		if err != nil {
			return nil, err
		}
		if taken {
			s.logger.Warn("Reactivate: slot is taken for booking id=%d", id)
			return nil, ErrSlotNotAvailable
		}
	}

	if err := s.bookingRepo.SetActive(ctx, id, true); err != nil {
		s.logger.Error("Reactivate: failed to reactivate booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reactivate - repository error: %v", ErrInternal, err)
	}

	booking.IsActive = true
	s.logger.Info("Reactivate: booking id=%d reactivated", id)
	return models.FromDomainBooking(booking), nil
}

// Update частично обновляет запись: перенос даты/времени, смена филиала,
// корректировка количества. При смене филиала снимок названия обновляется
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("Update: invalid patch for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if patch.Quantity != nil {
		if *patch.Quantity < domain.MinQuantity || *patch.Quantity > domain.MaxQuantity {
			return nil, fmt.Errorf("%w: quantity must be between %d and %d", ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
		}
	}

	// При смене филиала обновляем денормализованный снимок названия
	if patch.BranchID != nil {
		branch, err := s.branchRepo.GetByID(ctx, *patch.BranchID)
		if err != nil {
			if errors.Is(err, branchRepo.ErrBranchNotFound) {
				s.logger.Warn("Update: branch=%d not found for booking id=%d", *patch.BranchID, id)
				return nil, ErrBranchNotFound
			}
			s.logger.Error("Update: failed to get branch=%d: %v", *patch.BranchID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		patch.BranchName = &branch.Name
	}

	// Для бронирований перенос проверяется против сетки и занятости дня
	if booking.RequestType == domain.RequestTypeBooking {
		if err := s.validateReschedule(ctx, booking, &patch); err != nil {
			return nil, err
		}
	} else if patch.ScheduledDate != nil || patch.ScheduledTime != nil {
		// Котировки даты и времени не несут
		return nil, fmt.Errorf("%w: quotations carry no schedule", ErrInvalidInput)
	}

	if err := s.bookingRepo.Update(ctx, id, patch); err != nil {
		s.logger.Error("Update: failed to update booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reread booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: booking id=%d updated", id)
	return models.FromDomainBooking(updated), nil
}

// validateReschedule проверяет целевой слот переноса: попадание в сетку
// и отсутствие конфликта с другими активными бронированиями
func (s *Service) validateReschedule(ctx context.Context, booking *domain.Booking, patch *domain.BookingPatch) error {
	targetDate := booking.ScheduledDate
	targetTime := booking.ScheduledTime
	targetBranch := booking.BranchID

	if patch.ScheduledDate != nil {
		targetDate = patch.ScheduledDate
	}
	if patch.ScheduledTime != nil {
		targetTime = patch.ScheduledTime
	}
	if patch.BranchID != nil {
		targetBranch = *patch.BranchID
	}

	// Перенос не затрагивает расписание
	if patch.ScheduledDate == nil && patch.ScheduledTime == nil && patch.BranchID == nil {
		return nil
	}
	if targetDate == nil || targetTime == nil {
		return nil
	}

	if patch.ScheduledTime != nil {
		inGrid := false
		for _, slot := range domain.GenerateDaySlots() {
			if slot == *targetTime {
				inGrid = true
				break
			}
		}
		if !inGrid {
			s.logger.Warn("Update: time %s is not a valid slot for booking id=%d", targetTime.String(), booking.ID)
			return ErrInvalidTimeSlot
		}
	}

	target := &domain.Booking{
		ID:            booking.ID,
		BranchID:      targetBranch,
		ScheduledDate: targetDate,
		ScheduledTime: targetTime,
	}
	taken, err := s.slotTaken(ctx, targetBranch, target)
	if err != nil {
		return err
	}
	if taken {
		s.logger.Warn("Update: target slot is taken for booking id=%d", booking.ID)
		return ErrSlotNotAvailable
	}
	return nil
}

// slotTaken проверяет, занят ли слот записи другим активным бронированием
func (s *Service) slotTaken(ctx context.Context, branchID int64, target *domain.Booking) (bool, error) {
	filter := domain.BranchBookingsFilter{
		BranchID:    branchID,
		StartDate:   target.ScheduledDate,
		EndDate:     target.ScheduledDate,
		RequestType: ptr.Ptr(domain.RequestTypeBooking),
	}
	existing, err := s.bookingRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("slotTaken: repository error for branch=%d: %v", branchID, err)
		return false, fmt.Errorf("%w: slot check - repository error: %v", ErrInternal, err)
	}

	for _, b := range existing {
		if b.ID == target.ID {
			continue
		}
		if b.ConsumesSlot() && *b.ScheduledTime == *target.ScheduledTime {
			return true, nil
		}
	}
	return false, nil
}
