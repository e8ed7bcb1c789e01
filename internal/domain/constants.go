package domain

// Service window for every branch: fixed half-hour slots 09:00..17:30
const (
	ServiceDayOpenTime  = "09:00"
	ServiceDayCloseTime = "17:30" // последний слот, включительно
	SlotStepMinutes     = 30
	SlotsPerDay         = 18
)

// Reference number prefixes
const (
	ReferencePrefixBooking   = "WM"
	ReferencePrefixQuotation = "QT"
)

// Business validation constants
const (
	DefaultQuantity = 1
	MinQuantity     = 1
	MaxQuantity     = 12 // больше одного комплекта на запись не принимаем
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
