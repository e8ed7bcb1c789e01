package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/WM-BookingService/internal/domain"
	"github.com/m04kA/WM-BookingService/pkg/ptr"
	"github.com/m04kA/WM-BookingService/pkg/types"
)

func TestReferenceNumber_Booking(t *testing.T) {
	assert.Equal(t, "WM-000007", domain.ReferenceNumber(domain.RequestTypeBooking, 7))
	assert.Equal(t, "WM-000123", domain.ReferenceNumber(domain.RequestTypeBooking, 123))
	assert.Equal(t, "WM-1000000", domain.ReferenceNumber(domain.RequestTypeBooking, 1000000))
}

func TestReferenceNumber_Quotation(t *testing.T) {
	assert.Equal(t, "QT-000007", domain.ReferenceNumber(domain.RequestTypeQuotation, 7))
}

func TestReferenceNumber_SameIDDifferentPrefix(t *testing.T) {
	booking := domain.Booking{ID: 42, RequestType: domain.RequestTypeBooking}
	quotation := domain.Booking{ID: 42, RequestType: domain.RequestTypeQuotation}

	assert.Equal(t, "WM-000042", booking.ReferenceNumber())
	assert.Equal(t, "QT-000042", quotation.ReferenceNumber())
}

func TestConsumesSlot(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	slot := types.TimeString("10:00")

	active := domain.Booking{
		RequestType:   domain.RequestTypeBooking,
		ScheduledDate: &date,
		ScheduledTime: &slot,
		IsActive:      true,
	}
	assert.True(t, active.ConsumesSlot())

	cancelled := active
	cancelled.IsActive = false
	assert.False(t, cancelled.ConsumesSlot())

	quotation := domain.Booking{
		RequestType: domain.RequestTypeQuotation,
		IsActive:    true,
	}
	assert.False(t, quotation.ConsumesSlot())
}

func TestHasCoordinates(t *testing.T) {
	withCoords := domain.Branch{Lat: ptr.Ptr(55.75), Lng: ptr.Ptr(37.61)}
	assert.True(t, withCoords.HasCoordinates())

	partial := domain.Branch{Lat: ptr.Ptr(55.75)}
	assert.False(t, partial.HasCoordinates())

	assert.False(t, (&domain.Branch{}).HasCoordinates())
}
