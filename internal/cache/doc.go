// Package cache persists the per-location timing cache: a mapping from an
// indexed root directory to the newest modification time already committed
// to the event store (the "cutoff").
//
// The cache lives in a single versioned JSON file. It is loaded once at
// startup; every mutation goes through Modify, which applies the change to
// a copy, persists the copy atomically (temp file + rename), and only then
// swaps it in. A crash mid-write therefore leaves the previous snapshot
// intact on disk, which at worst costs one redundant rescan.
package cache
