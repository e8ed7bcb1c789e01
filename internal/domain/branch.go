package domain

import "time"

// Branch represents a physical service location
type Branch struct {
	ID      int64
	Name    string
	Address string
	Phone   string
	// Free-text schedule shown on the storefront ("Mon-Sat 9:00-18:00")
	WorkingHours string
	Lat          *float64
	Lng          *float64
	// Optional regional routing key (e.g. "north" → north.wheelmasters.example)
	Subdomain *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCoordinates returns true if the branch can participate in distance ranking
func (b *Branch) HasCoordinates() bool {
	return b.Lat != nil && b.Lng != nil
}

// BranchPatch частичное обновление филиала
// nil-поле означает "не менять"
type BranchPatch struct {
	Name         *string
	Address      *string
	Phone        *string
	WorkingHours *string
	Lat          *float64
	Lng          *float64
	Subdomain    *string
}
