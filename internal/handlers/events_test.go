package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"media-scan/internal/database"
)

func insertTestEvents(t *testing.T, db *database.Database, items ...database.Media) {
	t.Helper()

	events := make([]database.Event, 0, len(items))
	for _, m := range items {
		events = append(events, database.NewMediaEvent(m))
	}
	if err := db.InsertEvents(context.Background(), events); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}
}

func TestGetEventsEmpty(t *testing.T) {
	fx := setupTestHandlers(t)
	router := newTestRouter(fx.handlers)

	req := httptest.NewRequest("GET", "/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp EventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 0 || len(resp.Events) != 0 {
		t.Errorf("Expected empty response, got count=%d events=%d", resp.Count, len(resp.Events))
	}
}

func TestGetEventsSignsEachPath(t *testing.T) {
	fx := setupTestHandlers(t)
	router := newTestRouter(fx.handlers)

	insertTestEvents(t, fx.db,
		database.Media{Path: "/media/photos/a.jpg", TimeModified: time.Unix(100, 0).UTC(), LocationName: "Photos"},
		database.Media{Path: "/media/photos/b.png", TimeModified: time.Unix(200, 0).UTC(), LocationName: "Photos"},
	)

	req := httptest.NewRequest("GET", "/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp EventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("Expected 2 events, got %d", resp.Count)
	}

	// Oldest first, and every token must verify against its own path.
	if resp.Events[0].Data.Path != "/media/photos/a.jpg" {
		t.Errorf("Expected oldest event first, got %q", resp.Events[0].Data.Path)
	}
	for _, ev := range resp.Events {
		if ev.ID != ev.Data.Path {
			t.Errorf("Event ID should be the path, got id=%q path=%q", ev.ID, ev.Data.Path)
		}
		if !fx.signer.Verify(ev.Data.Path, ev.Data.Signature) {
			t.Errorf("Signature for %q does not verify", ev.Data.Path)
		}
	}
}

func TestGetEventsRange(t *testing.T) {
	fx := setupTestHandlers(t)
	router := newTestRouter(fx.handlers)

	insertTestEvents(t, fx.db,
		database.Media{Path: "/media/photos/old.jpg", TimeModified: time.Unix(100, 0).UTC(), LocationName: "Photos"},
		database.Media{Path: "/media/photos/mid.jpg", TimeModified: time.Unix(200, 0).UTC(), LocationName: "Photos"},
		database.Media{Path: "/media/photos/new.jpg", TimeModified: time.Unix(300, 0).UTC(), LocationName: "Photos"},
	)

	req := httptest.NewRequest("GET", "/events?from=150&to=250", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp EventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("Expected 1 event in window, got %d", resp.Count)
	}
	if resp.Events[0].Data.Path != "/media/photos/mid.jpg" {
		t.Errorf("Expected mid.jpg, got %q", resp.Events[0].Data.Path)
	}
}

func TestGetEventsBadRangeParams(t *testing.T) {
	fx := setupTestHandlers(t)
	router := newTestRouter(fx.handlers)

	tests := []struct {
		name string
		url  string
	}{
		{name: "bad from", url: "/events?from=yesterday"},
		{name: "bad to", url: "/events?to=1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}
