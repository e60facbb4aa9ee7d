package database

import (
	"time"
)

// PluginTag scopes every record this service writes to the shared event
// store. Queries and inserts always filter on it so other plugins' events
// are never touched.
const PluginTag = "media_scan"

// Media is one discovered media item.
type Media struct {
	Path         string    `json:"path"`
	TimeModified time.Time `json:"timeModified"`
	LocationName string    `json:"locationName"`
}

// Event is the durable envelope for one indexed media item.
// Path doubles as the dedup key: no two events share a path within
// a plugin's namespace.
type Event struct {
	ID     int64     `json:"id"`
	Plugin string    `json:"plugin"`
	Path   string    `json:"path"`
	Timing time.Time `json:"timing"`
	Media  Media     `json:"media"`
}

// NewMediaEvent wraps a discovered media item in its event envelope.
func NewMediaEvent(m Media) Event {
	return Event{
		Plugin: PluginTag,
		Path:   m.Path,
		Timing: m.TimeModified,
		Media:  m,
	}
}
