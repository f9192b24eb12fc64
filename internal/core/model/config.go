package model

import "time"

// MonitorConfig contains runtime settings for the idle Monitor.
type MonitorConfig struct {
	// PollInterval is how often the idle handle is queried.
	PollInterval time.Duration
	// IdleAfter is the inactivity threshold that flips the system from
	// active to idle.
	IdleAfter time.Duration
}
