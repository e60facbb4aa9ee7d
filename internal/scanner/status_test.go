package scanner

import (
	"strings"
	"testing"
	"time"
)

func TestScanStatusString(t *testing.T) {
	busy := ScanStatus{Busy: true, Location: "Photos"}
	if got := busy.String(); got != "Busy with: Photos" {
		t.Errorf("busy String() = %q, want %q", got, "Busy with: Photos")
	}

	since := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	waiting := ScanStatus{Since: since}
	got := waiting.String()
	if !strings.HasPrefix(got, "Waiting since: ") {
		t.Errorf("waiting String() = %q, want Waiting since: prefix", got)
	}
	if !strings.Contains(got, "2024-06-01T12:00:00Z") {
		t.Errorf("waiting String() = %q, want the timestamp rendered", got)
	}
}

func TestStatusCellLastWriterWins(t *testing.T) {
	cell := newStatusCell()

	if cell.get().Busy {
		t.Error("new cell should start waiting")
	}

	cell.setBusy("Photos")
	cell.setBusy("Videos")
	status := cell.get()
	if !status.Busy || status.Location != "Videos" {
		t.Errorf("status = %+v, want busy with Videos", status)
	}

	since := time.Now()
	cell.setWaiting(since)
	status = cell.get()
	if status.Busy {
		t.Error("status should be waiting after setWaiting")
	}
	if !status.Since.Equal(since) {
		t.Errorf("status since = %v, want %v", status.Since, since)
	}
}
