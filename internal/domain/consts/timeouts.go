package consts

import "time"

// Heartbeat and health checks
const (
	HeartbeatInterval     = 30 * time.Second
	StaleProcessThreshold = 2 * time.Minute
)

// Child process supervision
const (
	PollInterval     = 100 * time.Millisecond
	TerminationGrace = 5 * time.Second
	VersionTimeout   = 15 * time.Second
)

// Throttling
const (
	InterItemDelay = 300 * time.Millisecond
)

// Database
const (
	DatabaseTimeout = 5 * time.Second
)
