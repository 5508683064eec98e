// Package services implements the business logic layer of the PPE engine.
// It sits between the transports (CLI and HTTP handlers) and the pure
// calculation packages, wiring the quote and premium collaborators into one
// run and carrying the cross-cutting concerns (logging, tracing, metrics).
//
// # Available Services
//
//	- PPEService: runs the quote → curve → export-parity pipeline
//	- HealthService: liveness, readiness and version information
//
// # Run flow
//
// A run takes today's month in the configured timezone, builds the month
// grid, generates the contract tickers of each instrument, loads the premium
// and NDF tables, collects quotes, builds the price map and finally the PPE
// table of every instrument:
//
//	svc, err := services.NewPPEService(cfg.Run, fetcher, source, logger,
//	    services.WithMetrics(metrics))
//	report, err := svc.Compute(ctx)
//
// # Error Handling
//
// A quote that cannot be fetched is isolated: it is logged, counted and its
// contract is left unpriced. A premium source failure aborts the run since
// nothing can be aligned without it.
package services
