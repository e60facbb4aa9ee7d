package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"media-scan/internal/database"
	"media-scan/internal/logging"
	"media-scan/internal/mediatypes"
	"media-scan/internal/metrics"
)

// epoch is the sentinel cutoff written for a never-scanned location. It is
// below any real file modification time, so the first scan sees everything.
var epoch = time.Unix(0, 0).UTC()

// Reporter receives per-file and per-location diagnostics from a scan.
type Reporter interface {
	Reportf(format string, args ...interface{})
}

// logReporter routes diagnostics to the application log.
type logReporter struct{}

func (logReporter) Reportf(format string, args ...interface{}) {
	logging.Error(format, args...)
}

// Scan recursively walks root and returns every supported media file whose
// modification time is strictly after cutoff, together with the new cutoff
// (the maximum modification time among returned files, never below cutoff).
//
// Files with unsupported extensions are skipped silently. Files whose
// metadata cannot be read, or whose extension is not valid text, are
// skipped with a diagnostic. A failure to enumerate a directory fails the
// whole call: the caller treats that as a per-location error and retries
// the same window next cycle.
//
// Symlinked directories are never descended into, which guarantees the
// walk terminates even when links form cycles.
func Scan(locationName, root string, cutoff time.Time, diag Reporter) ([]database.Media, time.Time, error) {
	items := []database.Media{}
	newCutoff := cutoff

	err := scanDir(locationName, root, cutoff, &items, &newCutoff, diag)
	if err != nil {
		return nil, cutoff, err
	}

	return items, newCutoff, nil
}

func scanDir(locationName, dir string, cutoff time.Time, items *[]database.Media, newCutoff *time.Time, diag Reporter) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Type() does not follow symlinks, so a symlinked directory is
		// reported as a symlink and skipped by the regular-file check
		// below. That keeps the walk finite even with link cycles.
		if entry.IsDir() {
			if err := scanDir(locationName, path, cutoff, items, newCutoff, diag); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if !utf8.ValidString(ext) {
			diag.Reportf("skipping %s: extension is not valid text", path)
			metrics.ScanFilesSkipped.Inc()
			continue
		}
		if !mediatypes.IsMediaFile(strings.ToLower(ext)) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			diag.Reportf("skipping %s: failed to read metadata: %v", path, err)
			metrics.ScanFilesSkipped.Inc()
			continue
		}

		modTime := info.ModTime()
		if !modTime.After(cutoff) {
			continue
		}

		*items = append(*items, database.Media{
			Path:         path,
			TimeModified: modTime,
			LocationName: locationName,
		})
		if modTime.After(*newCutoff) {
			*newCutoff = modTime
		}
	}

	return nil
}
