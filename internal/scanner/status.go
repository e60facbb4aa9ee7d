package scanner

import (
	"fmt"
	"sync"
	"time"
)

// ScanStatus is a point-in-time snapshot of what the engine is doing:
// either busy scanning a named location or waiting since some timestamp.
type ScanStatus struct {
	Busy     bool      `json:"busy"`
	Location string    `json:"location,omitempty"`
	Since    time.Time `json:"since,omitempty"`
}

// String renders the status in the form served by the status endpoint.
func (s ScanStatus) String() string {
	if s.Busy {
		return fmt.Sprintf("Busy with: %s", s.Location)
	}
	return fmt.Sprintf("Waiting since: %s", s.Since.Format(time.RFC3339))
}

// statusCell holds the current ScanStatus, last writer wins.
type statusCell struct {
	mu     sync.Mutex
	status ScanStatus
}

func newStatusCell() *statusCell {
	return &statusCell{
		status: ScanStatus{Since: time.Now()},
	}
}

func (c *statusCell) setBusy(location string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = ScanStatus{Busy: true, Location: location}
}

func (c *statusCell) setWaiting(since time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = ScanStatus{Since: since}
}

func (c *statusCell) get() ScanStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
