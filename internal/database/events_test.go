package database

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func mediaAt(path, location string, sec int64) Media {
	return Media{
		Path:         path,
		TimeModified: time.Unix(sec, 0).UTC(),
		LocationName: location,
	}
}

func TestFindExistingPathsEmpty(t *testing.T) {
	db := setupTestDB(t)

	existing, err := db.FindExistingPaths(context.Background(), PluginTag, nil)
	if err != nil {
		t.Fatalf("FindExistingPaths failed: %v", err)
	}
	if len(existing) != 0 {
		t.Errorf("Expected empty result for empty input, got %d entries", len(existing))
	}
}

func TestFindExistingPaths(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	events := []Event{
		NewMediaEvent(mediaAt("/media/photos/a.jpg", "Photos", 100)),
		NewMediaEvent(mediaAt("/media/photos/b.png", "Photos", 200)),
	}
	if err := db.InsertEvents(ctx, events); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}

	existing, err := db.FindExistingPaths(ctx, PluginTag, []string{
		"/media/photos/a.jpg",
		"/media/photos/b.png",
		"/media/photos/c.gif", // never inserted
	})
	if err != nil {
		t.Fatalf("FindExistingPaths failed: %v", err)
	}

	if len(existing) != 2 {
		t.Fatalf("Expected 2 existing paths, got %d", len(existing))
	}
	if _, ok := existing["/media/photos/a.jpg"]; !ok {
		t.Error("Expected a.jpg to be reported as existing")
	}
	if _, ok := existing["/media/photos/b.png"]; !ok {
		t.Error("Expected b.png to be reported as existing")
	}
	if _, ok := existing["/media/photos/c.gif"]; ok {
		t.Error("c.gif was never inserted but was reported as existing")
	}
}

func TestFindExistingPathsScopedToPlugin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.InsertEvents(ctx, []Event{
		NewMediaEvent(mediaAt("/media/photos/a.jpg", "Photos", 100)),
	}); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}

	// The same path under a different plugin tag is a different record.
	existing, err := db.FindExistingPaths(ctx, "other_plugin", []string{"/media/photos/a.jpg"})
	if err != nil {
		t.Fatalf("FindExistingPaths failed: %v", err)
	}
	if len(existing) != 0 {
		t.Errorf("Path indexed under %q should not match plugin %q", PluginTag, "other_plugin")
	}
}

func TestFindExistingPathsBatched(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// More paths than one chunk holds, so the lookup spans multiple queries.
	total := findChunkSize + 50
	events := make([]Event, 0, total)
	paths := make([]string, 0, total)
	for i := 0; i < total; i++ {
		path := fmt.Sprintf("/media/photos/batch-%04d.jpg", i)
		events = append(events, NewMediaEvent(mediaAt(path, "Photos", int64(i+1))))
		paths = append(paths, path)
	}
	if err := db.InsertEvents(ctx, events); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}

	existing, err := db.FindExistingPaths(ctx, PluginTag, paths)
	if err != nil {
		t.Fatalf("FindExistingPaths failed: %v", err)
	}
	if len(existing) != total {
		t.Errorf("Expected all %d paths to be found, got %d", total, len(existing))
	}
}

func TestInsertEventsEmpty(t *testing.T) {
	db := setupTestDB(t)

	if err := db.InsertEvents(context.Background(), nil); err != nil {
		t.Errorf("InsertEvents with no events should be a no-op, got %v", err)
	}
}

func TestInsertEventsConflictIgnored(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := NewMediaEvent(mediaAt("/media/photos/a.jpg", "Photos", 100))
	if err := db.InsertEvents(ctx, []Event{first}); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}

	// Re-inserting the same path must not error and must not duplicate.
	again := NewMediaEvent(mediaAt("/media/photos/a.jpg", "Photos", 999))
	if err := db.InsertEvents(ctx, []Event{again}); err != nil {
		t.Fatalf("InsertEvents with duplicate path failed: %v", err)
	}

	count, err := db.CountEvents(ctx, PluginTag)
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 event after duplicate insert, got %d", count)
	}

	// The original record wins; the later timing is discarded.
	events, err := db.EventsBetween(ctx, PluginTag, time.Unix(0, 0), time.Unix(2000, 0))
	if err != nil {
		t.Fatalf("EventsBetween failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if !events[0].Timing.Equal(time.Unix(100, 0).UTC()) {
		t.Errorf("Expected original timing to survive, got %v", events[0].Timing)
	}
}

func TestEventsBetween(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	events := []Event{
		NewMediaEvent(mediaAt("/media/photos/old.jpg", "Photos", 100)),
		NewMediaEvent(mediaAt("/media/photos/mid.jpg", "Photos", 200)),
		NewMediaEvent(mediaAt("/media/video/new.mp4", "Video", 300)),
	}
	if err := db.InsertEvents(ctx, events); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}

	tests := []struct {
		name      string
		from, to  int64
		wantPaths []string
	}{
		{
			name: "full range", from: 0, to: 1000,
			wantPaths: []string{"/media/photos/old.jpg", "/media/photos/mid.jpg", "/media/video/new.mp4"},
		},
		{
			name: "bounds are inclusive", from: 100, to: 300,
			wantPaths: []string{"/media/photos/old.jpg", "/media/photos/mid.jpg", "/media/video/new.mp4"},
		},
		{
			name: "interior window", from: 150, to: 250,
			wantPaths: []string{"/media/photos/mid.jpg"},
		},
		{
			name: "window past everything", from: 500, to: 1000,
			wantPaths: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.EventsBetween(ctx, PluginTag, time.Unix(tt.from, 0), time.Unix(tt.to, 0))
			if err != nil {
				t.Fatalf("EventsBetween failed: %v", err)
			}
			if len(got) != len(tt.wantPaths) {
				t.Fatalf("Expected %d events, got %d", len(tt.wantPaths), len(got))
			}
			// Results come back oldest first.
			for i, want := range tt.wantPaths {
				if got[i].Path != want {
					t.Errorf("Event %d: expected path %q, got %q", i, want, got[i].Path)
				}
			}
		})
	}
}

func TestEventsBetweenRestoresPayload(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	media := mediaAt("/media/photos/fäll.jpg", "Sommer Fotos", 1234)
	if err := db.InsertEvents(ctx, []Event{NewMediaEvent(media)}); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}

	events, err := db.EventsBetween(ctx, PluginTag, time.Unix(1234, 0), time.Unix(1234, 0))
	if err != nil {
		t.Fatalf("EventsBetween failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.ID == 0 {
		t.Error("Expected a database-assigned ID")
	}
	if ev.Plugin != PluginTag {
		t.Errorf("Expected plugin %q, got %q", PluginTag, ev.Plugin)
	}
	if ev.Media.Path != media.Path {
		t.Errorf("Expected payload path %q, got %q", media.Path, ev.Media.Path)
	}
	if ev.Media.LocationName != media.LocationName {
		t.Errorf("Expected payload location %q, got %q", media.LocationName, ev.Media.LocationName)
	}
	if !ev.Media.TimeModified.Equal(media.TimeModified) {
		t.Errorf("Expected payload mtime %v, got %v", media.TimeModified, ev.Media.TimeModified)
	}
	if !ev.Timing.Equal(media.TimeModified) {
		t.Errorf("Expected timing %v, got %v", media.TimeModified, ev.Timing)
	}
}

func TestCountEvents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	count, err := db.CountEvents(ctx, PluginTag)
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 events initially, got %d", count)
	}

	events := []Event{
		NewMediaEvent(mediaAt("/media/photos/a.jpg", "Photos", 100)),
		NewMediaEvent(mediaAt("/media/photos/b.png", "Photos", 200)),
	}
	if err := db.InsertEvents(ctx, events); err != nil {
		t.Fatalf("InsertEvents failed: %v", err)
	}

	count, err = db.CountEvents(ctx, PluginTag)
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 events, got %d", count)
	}

	// Other plugins' events do not count.
	count, err = db.CountEvents(ctx, "other_plugin")
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 events for other plugin, got %d", count)
	}
}

func TestNewMediaEvent(t *testing.T) {
	t.Parallel()

	media := mediaAt("/media/photos/a.jpg", "Photos", 100)
	ev := NewMediaEvent(media)

	if ev.Plugin != PluginTag {
		t.Errorf("Expected plugin %q, got %q", PluginTag, ev.Plugin)
	}
	if ev.Path != media.Path {
		t.Errorf("Expected path %q, got %q", media.Path, ev.Path)
	}
	if !ev.Timing.Equal(media.TimeModified) {
		t.Errorf("Expected timing %v, got %v", media.TimeModified, ev.Timing)
	}
	if ev.Media != media {
		t.Errorf("Expected embedded media %+v, got %+v", media, ev.Media)
	}
}
