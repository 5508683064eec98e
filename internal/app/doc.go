// Package app wires configuration, logging, telemetry and the PPE services
// into an HTTP application.
//
// NewApplication builds the quote fetcher and premium source selected in the
// configuration, the PPE and health services, and a chi router:
//
//	GET /api/health, /api/health/ready, /api/health/live, /api/version
//	GET /api/v1/ppe                              full report
//	GET /api/v1/ppe/{instrument}                 one PPE table
//	GET /api/v1/ppe/{instrument}/sensitivity     FX sensitivity grid
//	GET /metrics                                 Prometheus exposition
//
// Run serves until SIGINT or SIGTERM and then shuts the server and the
// telemetry providers down within Server.ShutdownTimeout. Initialization
// errors are returned to the caller; the package never calls os.Exit.
package app
