package domain

import "github.com/m04kA/WM-BookingService/pkg/types"

// GenerateDaySlots генерирует канонический дневной грид слотов:
// получасовые метки от открытия до закрытия включительно
// (09:00, 09:30, ..., 17:00, 17:30 - всего 18)
func GenerateDaySlots() []types.TimeString {
	open := types.TimeString(ServiceDayOpenTime)
	close := types.TimeString(ServiceDayCloseTime)

	slots := make([]types.TimeString, 0, SlotsPerDay)
	current := open

	for {
		slots = append(slots, current)
		if !current.IsBefore(close) {
			break
		}
		next, err := current.AddMinutes(SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}

// SlotAvailability is the availability picture for one branch and date:
// the canonical grid, the taken labels and their difference
type SlotAvailability struct {
	AllSlots       []types.TimeString
	BookedSlots    []types.TimeString
	AvailableSlots []types.TimeString
}

// IsAvailable returns true if the label is currently available
func (s *SlotAvailability) IsAvailable(slot types.TimeString) bool {
	for _, available := range s.AvailableSlots {
		if available == slot {
			return true
		}
	}
	return false
}

// IsFullyBooked returns true if no slot is left for the day
func (s *SlotAvailability) IsFullyBooked() bool {
	return len(s.AvailableSlots) == 0
}
