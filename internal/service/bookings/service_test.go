package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WM-BookingService/internal/domain"
	bookingStorage "github.com/m04kA/WM-BookingService/internal/infra/storage/booking"
	branchStorage "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/service/bookings"
	"github.com/m04kA/WM-BookingService/internal/service/bookings/models"
	"github.com/m04kA/WM-BookingService/pkg/ptr"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	setActive map[int64]bool
	updated   map[int64]domain.BookingPatch
}

func newFakeBookingRepo(items ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:  make(map[int64]*domain.Booking),
		setActive: make(map[int64]bool),
		updated:   make(map[int64]domain.BookingPatch),
	}
	for _, b := range items {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.BranchID != filter.BranchID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive {
			continue
		}
		if filter.RequestType != nil && b.RequestType != *filter.RequestType {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, id int64, patch domain.BookingPatch) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingStorage.ErrBookingNotFound
	}
	f.updated[id] = patch
	return nil
}

func (f *fakeBookingRepo) SetActive(_ context.Context, id int64, active bool) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	f.setActive[id] = active
	b.IsActive = active
	return nil
}

type fakeBranchRepo struct {
	branches map[int64]*domain.Branch
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id int64) (*domain.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return nil, branchStorage.ErrBranchNotFound
	}
	return b, nil
}

func dayAt(day int) *time.Time {
	d := time.Date(2025, 10, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func activeBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		SubjectID:     10,
		SubjectKind:   domain.SubjectKindTire,
		Quantity:      4,
		BranchID:      1,
		BranchName:    "Central",
		ScheduledDate: dayAt(15),
		ScheduledTime: ptr.Ptr(types.TimeString("10:00")),
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
		RequestType:   domain.RequestTypeBooking,
		RequestSource: domain.RequestSourceTire,
		IsActive:      true,
	}
}

func quotation(id int64) *domain.Booking {
	b := activeBooking(id)
	b.RequestType = domain.RequestTypeQuotation
	b.ScheduledDate = nil
	b.ScheduledTime = nil
	return b
}

func newTestService(bookingRepo *fakeBookingRepo, branchRepo *fakeBranchRepo) *bookings.Service {
	if branchRepo == nil {
		branchRepo = &fakeBranchRepo{branches: map[int64]*domain.Branch{
			1: {ID: 1, Name: "Central"},
		}}
	}
	return bookings.NewService(bookingRepo, branchRepo, nopLogger{})
}

func TestCancel_DeactivatesBooking(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1))
	svc := newTestService(repo, nil)

	resp, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, false, repo.setActive[1])
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := activeBooking(1)
	b.IsActive = false
	svc := newTestService(newFakeBookingRepo(b), nil)

	_, err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, bookings.ErrAlreadyCancelled)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil)

	_, err := svc.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestReactivate_RestoresBooking(t *testing.T) {
	b := activeBooking(1)
	b.IsActive = false
	repo := newFakeBookingRepo(b)
	svc := newTestService(repo, nil)

	resp, err := svc.Reactivate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, true, repo.setActive[1])
}

func TestReactivate_AlreadyActive(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(activeBooking(1)), nil)

	_, err := svc.Reactivate(context.Background(), 1)
	assert.ErrorIs(t, err, bookings.ErrAlreadyActive)
}

func TestReactivate_SlotTakenByAnotherBooking(t *testing.T) {
	cancelled := activeBooking(1)
	cancelled.IsActive = false
	rival := activeBooking(2)
	repo := newFakeBookingRepo(cancelled, rival)
	svc := newTestService(repo, nil)

	_, err := svc.Reactivate(context.Background(), 1)
	assert.ErrorIs(t, err, bookings.ErrSlotNotAvailable)
	_, touched := repo.setActive[1]
	assert.False(t, touched)
}

func TestReactivate_QuotationSkipsSlotCheck(t *testing.T) {
	q := quotation(1)
	q.IsActive = false
	rival := activeBooking(2)
	svc := newTestService(newFakeBookingRepo(q, rival), nil)

	resp, err := svc.Reactivate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}

func TestUpdate_QuantityOutOfBounds(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(activeBooking(1)), nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Quantity: ptr.Ptr(13),
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestUpdate_QuotationRejectsSchedule(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(quotation(1)), nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ScheduledDate: ptr.Ptr("2025-10-20"),
		ScheduledTime: ptr.Ptr("10:00"),
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestUpdate_RescheduleOffGrid(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(activeBooking(1)), nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ScheduledTime: ptr.Ptr("10:15"),
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidTimeSlot)
}

func TestUpdate_RescheduleToTakenSlot(t *testing.T) {
	first := activeBooking(1)
	second := activeBooking(2)
	second.ScheduledTime = ptr.Ptr(types.TimeString("11:00"))
	repo := newFakeBookingRepo(first, second)
	svc := newTestService(repo, nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ScheduledTime: ptr.Ptr("11:00"),
	})
	assert.ErrorIs(t, err, bookings.ErrSlotNotAvailable)
}

func TestUpdate_RescheduleToFreeSlot(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1))
	svc := newTestService(repo, nil)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ScheduledTime: ptr.Ptr("11:30"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	patch, ok := repo.updated[1]
	require.True(t, ok)
	require.NotNil(t, patch.ScheduledTime)
	assert.Equal(t, types.TimeString("11:30"), *patch.ScheduledTime)
}

func TestUpdate_BranchChangeResnapsName(t *testing.T) {
	repo := newFakeBookingRepo(activeBooking(1))
	branchRepo := &fakeBranchRepo{branches: map[int64]*domain.Branch{
		1: {ID: 1, Name: "Central"},
		2: {ID: 2, Name: "Riverside"},
	}}
	svc := bookings.NewService(repo, branchRepo, nopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		BranchID: ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)

	patch := repo.updated[1]
	require.NotNil(t, patch.BranchName)
	assert.Equal(t, "Riverside", *patch.BranchName)
}

func TestUpdate_BranchChangeToMissingBranch(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(activeBooking(1)), nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		BranchID: ptr.Ptr(int64(77)),
	})
	assert.ErrorIs(t, err, bookings.ErrBranchNotFound)
}
