package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/WM-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BranchID       int64    `json:"branchId"`
	Date           string   `json:"date"`
	AllSlots       []string `json:"allSlots"`
	BookedSlots    []string `json:"bookedSlots"`
	AvailableSlots []string `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		BranchID:       resp.BranchID,
		Date:           resp.Date,
		AllSlots:       make([]string, 0, len(resp.AllSlots)),
		BookedSlots:    make([]string, 0, len(resp.BookedSlots)),
		AvailableSlots: make([]string, 0, len(resp.AvailableSlots)),
	}
	for _, s := range resp.AllSlots {
		out.AllSlots = append(out.AllSlots, s.String())
	}
	for _, s := range resp.BookedSlots {
		out.BookedSlots = append(out.BookedSlots, s.String())
	}
	for _, s := range resp.AvailableSlots {
		out.AvailableSlots = append(out.AvailableSlots, s.String())
	}
	return out
}
