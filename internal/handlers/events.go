package handlers

import (
	"net/http"
	"strconv"
	"time"

	"media-scan/internal/database"
	"media-scan/internal/logging"
)

// SignedMedia is the wire form of an indexed item. The raw path never
// leaves the system without a signature proving it was issued here, and
// consumers must resubmit both fields together to retrieve the file.
type SignedMedia struct {
	Path      string `json:"path"`
	Signature string `json:"signature"`
}

// EventsResponse is the payload returned by the events query endpoint.
type EventsResponse struct {
	Events []SignedEvent `json:"events"`
	Count  int           `json:"count"`
}

// SignedEvent is one indexed event with its media payload signed.
type SignedEvent struct {
	ID     string      `json:"id"`
	Timing time.Time   `json:"timing"`
	Data   SignedMedia `json:"data"`
}

// GetEvents returns the indexed events in a time range, each with a fresh
// signed token. Range bounds are unix seconds; both default to open.
func (h *Handlers) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from := time.Unix(0, 0).UTC()
	to := time.Now()

	if raw := r.URL.Query().Get("from"); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, "invalid from parameter", http.StatusBadRequest)
			return
		}
		from = time.Unix(secs, 0).UTC()
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, "invalid to parameter", http.StatusBadRequest)
			return
		}
		to = time.Unix(secs, 0).UTC()
	}

	events, err := h.db.EventsBetween(ctx, database.PluginTag, from, to)
	if err != nil {
		logging.Error("Failed to query events: %v", err)
		writeJSONError(w, "failed to query events", http.StatusInternalServerError)
		return
	}

	response := EventsResponse{Events: make([]SignedEvent, 0, len(events))}
	for _, event := range events {
		signature, err := h.signer.Sign(event.Path)
		if err != nil {
			logging.Error("Failed to sign path %s: %v", event.Path, err)
			writeJSONError(w, "failed to sign events", http.StatusInternalServerError)
			return
		}
		response.Events = append(response.Events, SignedEvent{
			ID:     event.Path,
			Timing: event.Timing,
			Data: SignedMedia{
				Path:      event.Path,
				Signature: signature,
			},
		})
	}
	response.Count = len(response.Events)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
