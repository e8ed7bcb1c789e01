package get_available_slots

import "github.com/m04kA/WM-BookingService/pkg/types"

// Request входные данные для расчёта свободных слотов
type Request struct {
	BranchID int64
	Date     string // формат YYYY-MM-DD
}

// Response результат расчёта: полная сетка дня и её разбиение
type Response struct {
	BranchID       int64
	Date           string
	AllSlots       []types.TimeString
	BookedSlots    []types.TimeString
	AvailableSlots []types.TimeString
}
