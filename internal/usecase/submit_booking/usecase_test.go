package submit_booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WM-BookingService/internal/domain"
	storage "github.com/m04kA/WM-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/WM-BookingService/internal/integrations/mailer"
	submitBooking "github.com/m04kA/WM-BookingService/internal/usecase/submit_booking"
	"github.com/m04kA/WM-BookingService/pkg/ptr"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	nextID   int64
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	stored := *b
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
}

func (f *fakeBookingRepo) GetByBranchWithFilter(context.Context, domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeBranchRepo struct {
	branch *domain.Branch
	err    error
}

func (f *fakeBranchRepo) GetByID(context.Context, int64) (*domain.Branch, error) {
	return f.branch, f.err
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeNotifier struct {
	enqueued []mailer.Notification
}

func (f *fakeNotifier) Enqueue(n mailer.Notification) {
	f.enqueued = append(f.enqueued, n)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validBookingDraft() domain.BookingDraft {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return domain.BookingDraft{
		SubjectID:     10,
		SubjectKind:   domain.SubjectKindTire,
		Quantity:      4,
		Vehicle:       domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"},
		BranchID:      3,
		ScheduledDate: &date,
		ScheduledTime: ptr.Ptr(types.TimeString("14:30")),
		Customer:      domain.Customer{Name: "Ivan", Email: "ivan@example.com", Phone: "+79000000000"},
		RequestType:   domain.RequestTypeBooking,
		RequestSource: domain.RequestSourceTire,
	}
}

func newUsecase(bookingRepo *fakeBookingRepo, branchRepo *fakeBranchRepo, txMgr *fakeTxManager, notifier *fakeNotifier) *submitBooking.Usecase {
	clock := fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return submitBooking.NewUsecase(bookingRepo, branchRepo, txMgr, notifier, clock, nopLogger{})
}

func TestExecute_BookingSuccess(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 42}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "WheelMasters North"}}
	txMgr := &fakeTxManager{}
	notifier := &fakeNotifier{}
	uc := newUsecase(bookingRepo, branchRepo, txMgr, notifier)

	resp, err := uc.Execute(context.Background(), submitBooking.Request{Draft: validBookingDraft()})
	require.NoError(t, err)

	assert.Equal(t, "WM-000042", resp.ReferenceNumber)
	assert.Equal(t, "WheelMasters North", resp.BranchName)
	require.NotNil(t, resp.ScheduledDate)
	assert.Equal(t, "2025-06-10", *resp.ScheduledDate)
	require.NotNil(t, resp.ScheduledTime)
	assert.Equal(t, "14:30", *resp.ScheduledTime)

	// Бронирование создаётся внутри Serializable транзакции
	assert.Equal(t, 1, txMgr.calls)
	assert.True(t, bookingRepo.created.IsActive)

	// Уведомление поставлено в очередь после создания
	require.Len(t, notifier.enqueued, 1)
	assert.Equal(t, "WM-000042", notifier.enqueued[0].ReferenceNumber)
	assert.Equal(t, "ivan@example.com", notifier.enqueued[0].CustomerEmail)
}

func TestExecute_QuotationSkipsTransactionAndSchedule(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 7}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "WheelMasters North"}}
	txMgr := &fakeTxManager{}
	notifier := &fakeNotifier{}
	uc := newUsecase(bookingRepo, branchRepo, txMgr, notifier)

	draft := validBookingDraft()
	draft.RequestType = domain.RequestTypeQuotation
	draft.ScheduledDate = nil
	draft.ScheduledTime = nil

	resp, err := uc.Execute(context.Background(), submitBooking.Request{Draft: draft})
	require.NoError(t, err)

	assert.Equal(t, "QT-000007", resp.ReferenceNumber)
	assert.Nil(t, resp.ScheduledDate)
	assert.Nil(t, resp.ScheduledTime)

	// Котировки не проходят через транзакцию: слот им не нужен
	assert.Equal(t, 0, txMgr.calls)
	assert.Nil(t, bookingRepo.created.ScheduledDate)

	require.Len(t, notifier.enqueued, 1)
	assert.Empty(t, notifier.enqueued[0].ScheduledDate)
}

func TestExecute_SameIDDistinctPrefixes(t *testing.T) {
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}

	bookingRepo := &fakeBookingRepo{nextID: 7}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})
	resp, err := uc.Execute(context.Background(), submitBooking.Request{Draft: validBookingDraft()})
	require.NoError(t, err)
	assert.Equal(t, "WM-000007", resp.ReferenceNumber)

	quotationRepo := &fakeBookingRepo{nextID: 7}
	uc = newUsecase(quotationRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})
	draft := validBookingDraft()
	draft.RequestType = domain.RequestTypeQuotation
	draft.ScheduledDate = nil
	draft.ScheduledTime = nil
	resp, err = uc.Execute(context.Background(), submitBooking.Request{Draft: draft})
	require.NoError(t, err)
	assert.Equal(t, "QT-000007", resp.ReferenceNumber)
}

func TestExecute_SlotConflict(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	taken := &domain.Booking{
		ID:            1,
		BranchID:      3,
		RequestType:   domain.RequestTypeBooking,
		ScheduledDate: &date,
		ScheduledTime: ptr.Ptr(types.TimeString("14:30")),
		IsActive:      true,
	}
	bookingRepo := &fakeBookingRepo{nextID: 42, existing: []*domain.Booking{taken}}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	notifier := &fakeNotifier{}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, notifier)

	_, err := uc.Execute(context.Background(), submitBooking.Request{Draft: validBookingDraft()})
	assert.ErrorIs(t, err, submitBooking.ErrSlotNotAvailable)
	assert.Nil(t, bookingRepo.created)
	assert.Empty(t, notifier.enqueued)
}

func TestExecute_CancelledSlotIsFree(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	cancelled := &domain.Booking{
		ID:            1,
		BranchID:      3,
		RequestType:   domain.RequestTypeBooking,
		ScheduledDate: &date,
		ScheduledTime: ptr.Ptr(types.TimeString("14:30")),
		IsActive:      false,
	}
	bookingRepo := &fakeBookingRepo{nextID: 42, existing: []*domain.Booking{cancelled}}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), submitBooking.Request{Draft: validBookingDraft()})
	require.NoError(t, err)
	assert.Equal(t, "WM-000042", resp.ReferenceNumber)
}

func TestExecute_PastDateRejected(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 42}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})

	draft := validBookingDraft()
	past := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	draft.ScheduledDate = &past

	_, err := uc.Execute(context.Background(), submitBooking.Request{Draft: draft})
	assert.ErrorIs(t, err, submitBooking.ErrInvalidDate)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 42}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})

	draft := validBookingDraft()
	draft.ScheduledTime = ptr.Ptr(types.TimeString("14:45"))

	_, err := uc.Execute(context.Background(), submitBooking.Request{Draft: draft})
	assert.ErrorIs(t, err, submitBooking.ErrInvalidTimeSlot)
}

func TestExecute_ValidationErrorCarriesFields(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 42}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "North"}}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})

	draft := validBookingDraft()
	draft.Customer.Email = "not-an-email"

	_, err := uc.Execute(context.Background(), submitBooking.Request{Draft: draft})
	var validationErr *submitBooking.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "customer.email")
}

func TestExecute_BranchNotFound(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 42}
	branchRepo := &fakeBranchRepo{err: storage.ErrBranchNotFound}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), submitBooking.Request{Draft: validBookingDraft()})
	assert.ErrorIs(t, err, submitBooking.ErrBranchNotFound)
}

func TestExecute_BranchNameResnapshotted(t *testing.T) {
	bookingRepo := &fakeBookingRepo{nextID: 42}
	branchRepo := &fakeBranchRepo{branch: &domain.Branch{ID: 3, Name: "Renamed Branch"}}
	uc := newUsecase(bookingRepo, branchRepo, &fakeTxManager{}, &fakeNotifier{})

	draft := validBookingDraft()
	draft.BranchName = "Stale Name"

	resp, err := uc.Execute(context.Background(), submitBooking.Request{Draft: draft})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Branch", resp.BranchName)
	assert.Equal(t, "Renamed Branch", bookingRepo.created.BranchName)
}
