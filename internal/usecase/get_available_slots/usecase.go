package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/WM-BookingService/internal/domain"
	storage "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/pkg/ptr"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

// Usecase расчёт свободных временных слотов филиала на конкретную дату
type Usecase struct {
	bookingRepo BookingRepository
	branchRepo  BranchRepository
	logs        Logger
}

func NewUsecase(bookingRepo BookingRepository, branchRepo BranchRepository, logs Logger) *Usecase {
	return &Usecase{
		bookingRepo: bookingRepo,
		branchRepo:  branchRepo,
		logs:        logs,
	}
}

// Execute возвращает сетку слотов на день: все, занятые и свободные.
// Дата в прошлом не является ошибкой: возвращается пустая сетка занятости,
// отказ по прошедшей дате происходит на этапе оформления бронирования.
func (uc *Usecase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	// 2. Проверяем существование филиала
	if _, err := uc.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, storage.ErrBranchNotFound) {
			uc.logs.Warn("[GetAvailableSlots] Branch not found: branchID=%d", req.BranchID)
			return nil, fmt.Errorf("%w: branch %d", ErrBranchNotFound, req.BranchID)
		}
		uc.logs.Error("[GetAvailableSlots] Failed to get branch: branchID=%d, error=%v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Получаем активные бронирования филиала на дату.
	// Запросы котировок слотов не занимают и в выборку не попадают.
	filter := domain.BranchBookingsFilter{
		BranchID:    req.BranchID,
		StartDate:   ptr.Ptr(date),
		EndDate:     ptr.Ptr(date),
		RequestType: ptr.Ptr(domain.RequestTypeBooking),
	}
	bookings, err := uc.bookingRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		uc.logs.Error("[GetAvailableSlots] Failed to get bookings: branchID=%d, date=%s, error=%v", req.BranchID, req.Date, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Разбиваем каноническую сетку дня на занятые и свободные слоты
	allSlots := domain.GenerateDaySlots()

	booked := make(map[types.TimeString]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.ConsumesSlot() {
			continue
		}
		if b.ScheduledTime != nil {
			booked[*b.ScheduledTime] = struct{}{}
		}
	}

	bookedSlots := make([]types.TimeString, 0, len(booked))
	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if _, ok := booked[slot]; ok {
			bookedSlots = append(bookedSlots, slot)
		} else {
			availableSlots = append(availableSlots, slot)
		}
	}

	uc.logs.Info("[GetAvailableSlots] Calculated slots: branchID=%d, date=%s, booked=%d, available=%d",
		req.BranchID, req.Date, len(bookedSlots), len(availableSlots))

	return &Response{
		BranchID:       req.BranchID,
		Date:           req.Date,
		AllSlots:       allSlots,
		BookedSlots:    bookedSlots,
		AvailableSlots: availableSlots,
	}, nil
}
