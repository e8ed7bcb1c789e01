package get_available_slots_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WM-BookingService/internal/domain"
	storage "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	getAvailableSlots "github.com/m04kA/WM-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings   []*domain.Booking
	err        error
	lastFilter domain.BranchBookingsFilter
}

func (f *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.bookings, f.err
}

type fakeBranchRepo struct {
	branch *domain.Branch
	err    error
}

func (f *fakeBranchRepo) GetByID(context.Context, int64) (*domain.Branch, error) {
	return f.branch, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeBooking(branchID int64, date time.Time, slot types.TimeString) *domain.Booking {
	return &domain.Booking{
		BranchID:      branchID,
		RequestType:   domain.RequestTypeBooking,
		ScheduledDate: &date,
		ScheduledTime: &slot,
		IsActive:      true,
	}
}

func TestExecute_EmptyDay(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := getAvailableSlots.NewUsecase(bookingRepo, branchRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), getAvailableSlots.Request{BranchID: 3, Date: "2025-06-10"})
	require.NoError(t, err)

	// В пустой день свободна вся сетка
	assert.Len(t, resp.AllSlots, domain.SlotsPerDay)
	assert.Empty(t, resp.BookedSlots)
	assert.Equal(t, resp.AllSlots, resp.AvailableSlots)
}

func TestExecute_PartitionsBookedSlots(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		activeBooking(3, date, "09:00"),
		activeBooking(3, date, "14:30"),
	}}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := getAvailableSlots.NewUsecase(bookingRepo, branchRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), getAvailableSlots.Request{BranchID: 3, Date: "2025-06-10"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []types.TimeString{"09:00", "14:30"}, resp.BookedSlots)
	assert.Len(t, resp.AvailableSlots, domain.SlotsPerDay-2)
	assert.NotContains(t, resp.AvailableSlots, types.TimeString("09:00"))
	assert.NotContains(t, resp.AvailableSlots, types.TimeString("14:30"))

	// Занятые и свободные слоты в сумме дают всю сетку
	assert.Len(t, append(resp.BookedSlots, resp.AvailableSlots...), domain.SlotsPerDay)
}

func TestExecute_CancelledAndQuotationsDoNotBlock(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	cancelled := activeBooking(3, date, "10:00")
	cancelled.IsActive = false

	quotation := &domain.Booking{
		BranchID:    3,
		RequestType: domain.RequestTypeQuotation,
		IsActive:    true,
	}

	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{cancelled, quotation}}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := getAvailableSlots.NewUsecase(bookingRepo, branchRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), getAvailableSlots.Request{BranchID: 3, Date: "2025-06-10"})
	require.NoError(t, err)

	assert.Empty(t, resp.BookedSlots)
	assert.Len(t, resp.AvailableSlots, domain.SlotsPerDay)
}

func TestExecute_FilterIsScopedToDayAndBookings(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := getAvailableSlots.NewUsecase(bookingRepo, branchRepo, nopLogger{})

	_, err := uc.Execute(context.Background(), getAvailableSlots.Request{BranchID: 3, Date: "2025-06-10"})
	require.NoError(t, err)

	filter := bookingRepo.lastFilter
	assert.Equal(t, int64(3), filter.BranchID)
	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, *filter.StartDate, *filter.EndDate)
	require.NotNil(t, filter.RequestType)
	assert.Equal(t, domain.RequestTypeBooking, *filter.RequestType)
	assert.False(t, filter.IncludeInactive)
}

func TestExecute_BranchNotFound(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	branchRepo := &fakeBranchRepo{err: storage.ErrBranchNotFound}
	uc := getAvailableSlots.NewUsecase(bookingRepo, branchRepo, nopLogger{})

	_, err := uc.Execute(context.Background(), getAvailableSlots.Request{BranchID: 99, Date: "2025-06-10"})
	assert.ErrorIs(t, err, getAvailableSlots.ErrBranchNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := getAvailableSlots.NewUsecase(&fakeBookingRepo{}, &fakeBranchRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), getAvailableSlots.Request{BranchID: 0, Date: "2025-06-10"})
	assert.ErrorIs(t, err, getAvailableSlots.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), getAvailableSlots.Request{BranchID: 3, Date: "10.06.2025"})
	assert.ErrorIs(t, err, getAvailableSlots.ErrInvalidInput)
}
