package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
	storage "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/integrations/mailer"
	"github.com/m04kA/WM-BookingService/internal/wizard"
	"github.com/m04kA/WM-BookingService/pkg/ptr"
)

// Usecase оформление бронирования или запроса котировки из собранного черновика
type Usecase struct {
	bookingRepo BookingRepository
	branchRepo  BranchRepository
	txManager   TransactionManager
	notifier    Notifier
	timeNow     TimeProvider
	logs        Logger
}

func NewUsecase(
	bookingRepo BookingRepository,
	branchRepo BranchRepository,
	txManager TransactionManager,
	notifier Notifier,
	timeNow TimeProvider,
	logs Logger,
) *Usecase {
	return &Usecase{
		bookingRepo: bookingRepo,
		branchRepo:  branchRepo,
		txManager:   txManager,
		notifier:    notifier,
		timeNow:     timeNow,
		logs:        logs,
	}
}

// Execute валидирует черновик, создаёт запись и ставит уведомление в очередь.
// Для бронирований создание идёт в Serializable-транзакции с повторной
// проверкой занятости слота под блокировкой строк.
func (uc *Usecase) Execute(ctx context.Context, req Request) (*Response, error) {
	draft := req.Draft

	// 1. Проверяем филиал и обновляем снимок названия.
	// Прямое оформление приходит без денормализованного названия,
	// поэтому снимок снимается до полной валидации
	if draft.BranchID > 0 {
		branch, err := uc.branchRepo.GetByID(ctx, draft.BranchID)
		if err != nil {
			if errors.Is(err, storage.ErrBranchNotFound) {
				uc.logs.Warn("[SubmitBooking] Branch not found: branchID=%d", draft.BranchID)
				return nil, fmt.Errorf("%w: branch %d", ErrBranchNotFound, draft.BranchID)
			}
			uc.logs.Error("[SubmitBooking] Failed to get branch: branchID=%d, error=%v", draft.BranchID, err)
			return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
		}
		draft.BranchName = branch.Name
	}

	// 2. Полная валидация черновика по всем обязательным шагам
	if fieldErrs := wizard.ValidateForSubmission(&draft); fieldErrs.HasErrors() {
		uc.logs.Warn("[SubmitBooking] Draft validation failed: fields=%v", fieldErrs)
		return nil, &ValidationError{Fields: fieldErrs}
	}

	booking := bookingFromDraft(&draft)

	// 3. Создаём запись
	var (
		created *domain.Booking
		err     error
	)
	if draft.IsQuotation() {
		// Котировки слотов не занимают, транзакция не нужна
		created, err = uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			uc.logs.Error("[SubmitBooking] Failed to create quotation: branchID=%d, error=%v", draft.BranchID, err)
			return nil, fmt.Errorf("%w: failed to create quotation: %v", ErrInternal, err)
		}
	} else {
		if err = uc.validateSchedule(&draft); err != nil {
			return nil, err
		}
		created, err = uc.createWithSlotCheck(ctx, booking)
		if err != nil {
			return nil, err
		}
	}

	uc.logs.Info("[SubmitBooking] Created: id=%d, reference=%s, type=%s, branchID=%d",
		created.ID, created.ReferenceNumber(), created.RequestType, created.BranchID)

	// 4. Уведомление уходит после коммита, ошибки отправки запись не откатывают
	uc.notifier.Enqueue(notificationFor(created))

	return responseFrom(created), nil
}

// validateSchedule проверяет дату и время бронирования:
// дата не в прошлом, время попадает в каноническую сетку слотов
func (uc *Usecase) validateSchedule(draft *domain.BookingDraft) error {
	now := uc.timeNow.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if draft.ScheduledDate.Before(today) {
		uc.logs.Warn("[SubmitBooking] Scheduled date is in the past: date=%s", draft.ScheduledDate.Format(domain.DateFormat))
		return fmt.Errorf("%w: %s", ErrInvalidDate, draft.ScheduledDate.Format(domain.DateFormat))
	}

	for _, slot := range domain.GenerateDaySlots() {
		if slot == *draft.ScheduledTime {
			return nil
		}
	}
	uc.logs.Warn("[SubmitBooking] Time is not a valid slot: time=%s", draft.ScheduledTime.String())
	return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, draft.ScheduledTime.String())
}

// createWithSlotCheck создаёт бронирование в Serializable-транзакции:
// читает занятость дня под FOR UPDATE и отклоняет занятый слот
func (uc *Usecase) createWithSlotCheck(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		filter := domain.BranchBookingsFilter{
			BranchID:    booking.BranchID,
			StartDate:   booking.ScheduledDate,
			EndDate:     booking.ScheduledDate,
			RequestType: ptr.Ptr(domain.RequestTypeBooking),
		}
		existing, err := uc.bookingRepo.GetByBranchWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to get day bookings: %w", err)
		}

		for _, b := range existing {
			if b.ConsumesSlot() && *b.ScheduledTime == *booking.ScheduledTime {
				return fmt.Errorf("%w: %s at %s", ErrSlotNotAvailable,
					booking.ScheduledDate.Format(domain.DateFormat), booking.ScheduledTime.String())
			}
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logs.Warn("[SubmitBooking] Slot is not available: branchID=%d, date=%s, time=%s",
				booking.BranchID, booking.ScheduledDate.Format(domain.DateFormat), booking.ScheduledTime.String())
			return nil, err
		}
		uc.logs.Error("[SubmitBooking] Transaction failed: branchID=%d, error=%v", booking.BranchID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return created, nil
}

// bookingFromDraft собирает доменную запись из черновика
func bookingFromDraft(d *domain.BookingDraft) *domain.Booking {
	return &domain.Booking{
		SubjectID:     d.SubjectID,
		SubjectKind:   d.SubjectKind,
		Quantity:      d.Quantity,
		VehicleYear:   d.Vehicle.Year,
		VehicleMake:   d.Vehicle.Make,
		VehicleModel:  d.Vehicle.Model,
		BranchID:      d.BranchID,
		BranchName:    d.BranchName,
		ScheduledDate: d.ScheduledDate,
		ScheduledTime: d.ScheduledTime,
		CustomerName:  d.Customer.Name,
		CustomerEmail: d.Customer.Email,
		CustomerPhone: d.Customer.Phone,
		RequestType:   d.RequestType,
		RequestSource: d.RequestSource,
		IsActive:      true,
	}
}

func notificationFor(b *domain.Booking) mailer.Notification {
	n := mailer.Notification{
		ReferenceNumber: b.ReferenceNumber(),
		RequestType:     b.RequestType,
		RequestSource:   b.RequestSource,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		BranchName:      b.BranchName,
		SubjectKind:     b.SubjectKind,
		Quantity:        b.Quantity,
		VehicleYear:     b.VehicleYear,
		VehicleMake:     b.VehicleMake,
		VehicleModel:    b.VehicleModel,
	}
	if b.ScheduledDate != nil {
		n.ScheduledDate = b.ScheduledDate.Format(domain.DateFormat)
	}
	if b.ScheduledTime != nil {
		n.ScheduledTime = b.ScheduledTime.String()
	}
	return n
}

func responseFrom(b *domain.Booking) *Response {
	resp := &Response{
		ID:              b.ID,
		ReferenceNumber: b.ReferenceNumber(),
		RequestType:     b.RequestType,
		BranchID:        b.BranchID,
		BranchName:      b.BranchName,
		Customer: domain.Customer{
			Name:  b.CustomerName,
			Email: b.CustomerEmail,
			Phone: b.CustomerPhone,
		},
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
