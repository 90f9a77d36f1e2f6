package entity

import "time"

// Cargo is a charterer's shipment listing. The laycan window is the
// period during which the cargo must be ready for loading.
type Cargo struct {
	ID            int64
	Commodity     string
	Quantity      int
	LoadingPort   string
	DischargePort string
	LaycanStart   time.Time
	LaycanEnd     time.Time
	Charterer     string // display name of the chartering company
	Description   string
	ChartererID   int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
