package tui

import "time"

// drainMsg fires on every drain interval while a scan is in flight
type drainMsg time.Time
