package wizard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/internal/wizard"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

func newBookingMachine(t *testing.T) *wizard.Machine {
	t.Helper()
	m, err := wizard.New(10, domain.SubjectKindTire, domain.RequestTypeBooking, domain.RequestSourceTire)
	require.NoError(t, err)
	return m
}

func newQuotationMachine(t *testing.T) *wizard.Machine {
	t.Helper()
	m, err := wizard.New(10, domain.SubjectKindTire, domain.RequestTypeQuotation, domain.RequestSourceTire)
	require.NoError(t, err)
	return m
}

func TestNew_InvalidEnums(t *testing.T) {
	_, err := wizard.New(10, "bicycle", domain.RequestTypeBooking, domain.RequestSourceTire)
	assert.Error(t, err)

	_, err = wizard.New(10, domain.SubjectKindTire, "reservation", domain.RequestSourceTire)
	assert.Error(t, err)

	_, err = wizard.New(0, domain.SubjectKindTire, domain.RequestTypeBooking, domain.RequestSourceTire)
	assert.Error(t, err)
}

func TestMachine_FullBookingWalkthrough(t *testing.T) {
	m := newBookingMachine(t)
	assert.Equal(t, wizard.StepSubjectAndVehicle, m.Step())

	m.SetVehicle(4, domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"})
	fieldErrs, err := m.Advance()
	require.NoError(t, err)
	require.False(t, fieldErrs.HasErrors())
	assert.Equal(t, wizard.StepBranchSelection, m.Step())

	m.SetBranch(3, "WheelMasters North")
	fieldErrs, err = m.Advance()
	require.NoError(t, err)
	require.False(t, fieldErrs.HasErrors())
	assert.Equal(t, wizard.StepDateTime, m.Step())

	m.SetAvailabilitySnapshot([]types.TimeString{"09:00", "14:30"})
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.SetSchedule(date, "14:30"))
	fieldErrs, err = m.Advance()
	require.NoError(t, err)
	require.False(t, fieldErrs.HasErrors())
	assert.Equal(t, wizard.StepCustomerInfo, m.Step())

	m.SetCustomer(domain.Customer{Name: "Ivan", Email: "ivan@example.com", Phone: "+7 900 000-00-00"})
	assert.True(t, m.CanSubmit())

	draft := m.Draft()
	assert.Equal(t, "WheelMasters North", draft.BranchName)
	assert.Equal(t, types.TimeString("14:30"), *draft.ScheduledTime)
}

func TestMachine_QuotationSkipsDateTime(t *testing.T) {
	m := newQuotationMachine(t)

	m.SetVehicle(4, domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"})
	_, err := m.Advance()
	require.NoError(t, err)

	m.SetBranch(3, "WheelMasters North")
	_, err = m.Advance()
	require.NoError(t, err)

	// Шаг даты пропущен целиком
	assert.Equal(t, wizard.StepCustomerInfo, m.Step())

	// И назад мастер тоже перепрыгивает через него
	require.NoError(t, m.Back())
	assert.Equal(t, wizard.StepBranchSelection, m.Step())
}

func TestMachine_QuotationCarriesNoSchedule(t *testing.T) {
	m := newQuotationMachine(t)

	m.SetVehicle(4, domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"})
	_, err := m.Advance()
	require.NoError(t, err)
	m.SetBranch(3, "WheelMasters North")
	_, err = m.Advance()
	require.NoError(t, err)
	m.SetCustomer(domain.Customer{Name: "Ivan", Email: "ivan@example.com", Phone: "+79000000000"})

	assert.True(t, m.CanSubmit())
	draft := m.Draft()
	assert.Nil(t, draft.ScheduledDate)
	assert.Nil(t, draft.ScheduledTime)
}

func TestMachine_ValidationGate(t *testing.T) {
	m := newBookingMachine(t)

	// Пустой автомобиль не пропускается дальше
	fieldErrs, err := m.Advance()
	require.ErrorIs(t, err, wizard.ErrValidationFailed)
	assert.True(t, fieldErrs.HasErrors())
	assert.Contains(t, fieldErrs, "vehicle.year")
	assert.Equal(t, wizard.StepSubjectAndVehicle, m.Step())
}

func TestMachine_EmailValidation(t *testing.T) {
	d := &domain.BookingDraft{
		Customer: domain.Customer{Name: "Ivan", Email: "not-an-email", Phone: "+79000000000"},
	}
	fieldErrs, err := wizard.ValidateStep(wizard.StepCustomerInfo, d)
	require.NoError(t, err)
	assert.Contains(t, fieldErrs, "customer.email")

	d.Customer.Email = "ivan@example.com"
	fieldErrs, err = wizard.ValidateStep(wizard.StepCustomerInfo, d)
	require.NoError(t, err)
	assert.False(t, fieldErrs.HasErrors())
}

func TestMachine_QuantityBounds(t *testing.T) {
	m := newBookingMachine(t)
	m.SetVehicle(13, domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"})

	fieldErrs, err := m.Advance()
	require.ErrorIs(t, err, wizard.ErrValidationFailed)
	assert.Contains(t, fieldErrs, "quantity")
}

func TestMachine_SlotMustBeInSnapshot(t *testing.T) {
	m := newBookingMachine(t)
	m.SetVehicle(4, domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"})
	_, err := m.Advance()
	require.NoError(t, err)
	m.SetBranch(3, "WheelMasters North")
	_, err = m.Advance()
	require.NoError(t, err)

	m.SetAvailabilitySnapshot([]types.TimeString{"09:00"})
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	err = m.SetSchedule(date, "14:30")
	assert.ErrorIs(t, err, wizard.ErrSlotNotInSnapshot)
}

func TestMachine_BackRetainsValues(t *testing.T) {
	m := newBookingMachine(t)
	vehicle := domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"}
	m.SetVehicle(4, vehicle)
	_, err := m.Advance()
	require.NoError(t, err)

	require.NoError(t, m.Back())
	assert.Equal(t, wizard.StepSubjectAndVehicle, m.Step())
	assert.Equal(t, vehicle, m.Draft().Vehicle)
	assert.Equal(t, 4, m.Draft().Quantity)
}

func TestMachine_BackAtFirstStep(t *testing.T) {
	m := newBookingMachine(t)
	assert.ErrorIs(t, m.Back(), wizard.ErrAtFirstStep)
}

func TestMachine_RestoreRoundTrip(t *testing.T) {
	m := newBookingMachine(t)
	m.SetVehicle(4, domain.Vehicle{Year: "2021", Make: "Toyota", Model: "Camry"})
	_, err := m.Advance()
	require.NoError(t, err)

	restored, err := wizard.Restore(m.State())
	require.NoError(t, err)
	assert.Equal(t, m.Step(), restored.Step())
	assert.Equal(t, m.Draft(), restored.Draft())
}
