package mailer

import (
	"fmt"
	"strings"

	"github.com/m04kA/WM-BookingService/internal/domain"
)

// Тексты писем выбираются комбинацией (requestType, requestSource):
// запись на шиномонтаж, запись на сервис, запрос цены на шины,
// запрос цены на работы

func customerSubject(n Notification) string {
	if n.RequestType == domain.RequestTypeQuotation {
		return fmt.Sprintf("Your WheelMasters quote request %s", n.ReferenceNumber)
	}
	return fmt.Sprintf("Your WheelMasters appointment %s", n.ReferenceNumber)
}

func adminSubject(n Notification) string {
	if n.RequestType == domain.RequestTypeQuotation {
		return fmt.Sprintf("New quote request %s (%s)", n.ReferenceNumber, n.RequestSource)
	}
	return fmt.Sprintf("New appointment %s (%s)", n.ReferenceNumber, n.RequestSource)
}

func customerBody(n Notification) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", n.CustomerName)

	switch {
	case n.RequestType == domain.RequestTypeBooking:
		fmt.Fprintf(&b, "Your appointment %s is confirmed at %s on %s at %s.\n",
			n.ReferenceNumber, n.BranchName, n.ScheduledDate, n.ScheduledTime)
	case n.RequestSource == domain.RequestSourceTire:
		fmt.Fprintf(&b, "We received your tire quote request %s. Our team at %s will contact you with pricing shortly.\n",
			n.ReferenceNumber, n.BranchName)
	default:
		fmt.Fprintf(&b, "We received your service quote request %s. Our team at %s will contact you with pricing shortly.\n",
			n.ReferenceNumber, n.BranchName)
	}

	fmt.Fprintf(&b, "\nVehicle: %s %s %s\n", n.VehicleYear, n.VehicleMake, n.VehicleModel)
	if n.SubjectKind == domain.SubjectKindTire {
		fmt.Fprintf(&b, "Quantity: %d\n", n.Quantity)
	}

	b.WriteString("\nWheelMasters\n")
	return b.String()
}

func adminBody(n Notification) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reference: %s\n", n.ReferenceNumber)
	fmt.Fprintf(&b, "Type: %s / %s\n", n.RequestType, n.RequestSource)
	fmt.Fprintf(&b, "Branch: %s\n", n.BranchName)
	if n.ScheduledDate != "" {
		fmt.Fprintf(&b, "Scheduled: %s %s\n", n.ScheduledDate, n.ScheduledTime)
	}
	fmt.Fprintf(&b, "Customer: %s <%s>\n", n.CustomerName, n.CustomerEmail)
	fmt.Fprintf(&b, "Vehicle: %s %s %s\n", n.VehicleYear, n.VehicleMake, n.VehicleModel)
	if n.SubjectKind == domain.SubjectKindTire {
		fmt.Fprintf(&b, "Quantity: %d\n", n.Quantity)
	}

	return b.String()
}
