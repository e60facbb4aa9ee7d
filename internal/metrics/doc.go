// Package metrics defines all Prometheus collectors for the media scan
// service. Metrics are registered via promauto at package init and exposed
// by the metrics HTTP listener configured in main.
package metrics
