package handlers

import (
	"fmt"
	"net/http"

	"media-scan/internal/logging"
)

// GetStatus reports what the scan engine is doing as plain text, either
// "Busy with: {name}" or "Waiting since: {timestamp}".
func (h *Handlers) GetStatus(w http.ResponseWriter, _ *http.Request) {
	status := h.engine.SnapshotStatus()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := fmt.Fprintln(w, status.String()); err != nil {
		logging.Error("failed to write status response: %v", err)
	}
}

// ScanStatusResponse is the JSON form of the engine state.
type ScanStatusResponse struct {
	Status                string `json:"status"`
	Location              string `json:"location,omitempty"`
	WaitingSince          string `json:"waitingSince,omitempty"`
	Scanning              bool   `json:"scanning"`
	CyclesUntilFullReload uint32 `json:"cyclesUntilFullReload"`
}

// GetScanStatus returns the engine state as JSON for API consumers.
func (h *Handlers) GetScanStatus(w http.ResponseWriter, _ *http.Request) {
	status := h.engine.SnapshotStatus()

	response := ScanStatusResponse{
		Scanning:              h.engine.IsScanning(),
		CyclesUntilFullReload: h.engine.CyclesUntilFullReload(),
	}
	if status.Busy {
		response.Status = "busy"
		response.Location = status.Location
	} else {
		response.Status = "waiting"
		response.WaitingSince = status.Since.Format("2006-01-02T15:04:05Z07:00")
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
