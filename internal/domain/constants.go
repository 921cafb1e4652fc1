package domain

// Business validation constants
const (
	MinConcurrentBookings      = 1
	MaxConcurrentBookings      = 100
	DefaultMaxConcurrent       = 1
	MinBufferMinutes           = 0
	MaxBufferMinutes           = 240 // 4 hours
	MaxTimeBlockTitleLength    = 200
	MaxAvailabilityRangeDays   = 31
	MaxTimeBlocksListDays      = 366
	MaxExternalEventIDLength   = 255
	MaxRecurrencePatternLength = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DaysInWeek количество записей рабочих часов на арендатора
const DaysInWeek = 7
