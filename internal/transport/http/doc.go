// Package http implements the HTTP handlers of the PPE web service. Handlers
// are thin: they parse and validate the request, call the service and render
// the result with chi/render. Errors go through the shared RFC 7807 error
// handler.
//
// # Routes
//
//	GET /api/v1/ppe                               both tables
//	GET /api/v1/ppe/{instrument}                  one table (zc, zs, milho, soja)
//	GET /api/v1/ppe/{instrument}/sensitivity      NDF sensitivity (?premium=&forward=)
//	GET /api/health, /api/health/ready, /api/health/live
//	GET /api/version
//	GET /metrics
package http
