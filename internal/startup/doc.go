/*
Package startup handles application initialization, configuration loading,
and structured startup/shutdown logging.

Configuration comes from environment variables:

	MEDIA_LOCATIONS       name=path pairs, comma separated (required)
	SIGNING_KEY_FILE      PEM RSA private key for media tokens (required)
	SCAN_INTERVAL         time between scan cycles (default 30m)
	FULL_RELOAD_INTERVAL  cycles between forced full rescans (default off)
	SCAN_PARALLEL         scan locations concurrently (default false)
	CACHE_DIR             timing cache directory (default /cache)
	DATABASE_DIR          event store directory (default /database)
	PORT                  HTTP port (default 8080)
	METRICS_PORT          Prometheus port (default 9090)
	METRICS_ENABLED       expose metrics (default true)

Missing required configuration or an unparsable signing key is fatal: the
process refuses to start rather than run half-configured.
*/
package startup
