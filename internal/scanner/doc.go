/*
Package scanner implements the scheduled media indexing engine.

Each cycle walks the configured media locations, bounded by a per-location
modification time cutoff held in the timing cache. Newly modified files
with supported media extensions are reconciled against the event store
with one batched existence query per location, the unseen delta is
inserted, and the cutoff advances only after the insert succeeded, so a
failed cycle retries the same window next time.

An optional countdown policy forces a periodic full rescan that ignores
every cutoff. The engine exposes a busy/waiting status snapshot for the
HTTP status endpoint.
*/
package scanner
