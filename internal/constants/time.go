package constants

import "time"

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is how last-check timestamps are persisted
	TimestampFormat = time.RFC3339

	// DefaultTimezone uses the system local timezone
	DefaultTimezone = "Local"

	// RolloverPollInterval is how often long-running surfaces re-run the rollover check
	RolloverPollInterval = time.Minute
)
