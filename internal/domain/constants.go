package domain

// Default slot configuration values
const (
	DefaultOpenHour           = 8
	DefaultCloseHour          = 20
	DefaultSlotWidthMinutes   = 60
	DefaultAdvanceBookingDays = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinSlotWidthMinutes       = 5
	MaxSlotWidthMinutes       = 720
	MaxPurposeLength          = 500
	MaxRejectionReasonLength  = 500
	MaxResourceNameLength     = 200
	MaxResourceCategoryLength = 100
	MaxAdvanceBookingDays     = 365
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SystemActorID is the actor id recorded for transitions performed by background workers
const SystemActorID = "system"
