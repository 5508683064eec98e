package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"ppecli/internal/config"
	"ppecli/internal/curve"
	"ppecli/internal/futures"
	"ppecli/internal/infrastructure"
	"ppecli/internal/ppe"
	"ppecli/internal/premiums"
	"ppecli/internal/quotes"
	"ppecli/pkg/contracts/domain"
)

// DisplayPlaces is the rounding applied to every table handed to callers
const DisplayPlaces = 2

// PPEService runs the export-parity pipeline. Every call builds a fresh
// report; the service holds no state between runs besides its collaborators.
type PPEService struct {
	run       config.RunConfig
	constants ppe.Constants
	location  *time.Location
	fetcher   quotes.Fetcher
	source    premiums.Source
	collect   []quotes.CollectOption
	tracer    trace.Tracer
	metrics   *infrastructure.PPEMetrics
	now       func() time.Time
	logger    *slog.Logger
}

// PPEOption configures a PPEService
type PPEOption func(*PPEService)

// WithTracer sets the tracer spans are started on
func WithTracer(t trace.Tracer) PPEOption {
	return func(s *PPEService) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithMetrics records run and quote failure metrics
func WithMetrics(m *infrastructure.PPEMetrics) PPEOption {
	return func(s *PPEService) {
		s.metrics = m
	}
}

// WithClock overrides the wall clock, mostly for tests
func WithClock(now func() time.Time) PPEOption {
	return func(s *PPEService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCollectOptions tunes quote retries and pacing
func WithCollectOptions(opts ...quotes.CollectOption) PPEOption {
	return func(s *PPEService) {
		s.collect = append(s.collect, opts...)
	}
}

// NewPPEService creates the pipeline service
func NewPPEService(run config.RunConfig, fetcher quotes.Fetcher, source premiums.Source, logger *slog.Logger, opts ...PPEOption) (*PPEService, error) {
	if fetcher == nil || source == nil {
		return nil, fmt.Errorf("%w: fetcher and premium source are required", ErrInvalidInput)
	}
	loc, err := run.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", run.Timezone, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &PPEService{
		run:       run,
		constants: ConstantsFrom(run),
		location:  loc,
		fetcher:   fetcher,
		source:    source,
		tracer:    tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName),
		now:       time.Now,
		logger:    logger.With(slog.String("service", "ppe")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ConstantsFrom maps the run section of the configuration onto calculator constants
func ConstantsFrom(run config.RunConfig) ppe.Constants {
	c := ppe.DefaultConstants()
	c.HandlingCost = run.HandlingCost
	c.DomesticFreight = run.DomesticFreight
	c.OceanFreight = run.OceanFreight
	c.ConversionFactors[domain.Soybean] = run.SoybeanFactor
	c.ConversionFactors[domain.Corn] = run.CornFactor
	return c
}

// Constants returns the constants the service computes with
func (s *PPEService) Constants() ppe.Constants {
	return s.constants
}

// AsOf returns the current month in the run timezone
func (s *PPEService) AsOf() domain.YearMonth {
	return domain.YearMonthOf(s.now().In(s.location))
}

// Tickers lists the quotes a run needs for insts as of the given month
func (s *PPEService) Tickers(asOf domain.YearMonth, insts ...domain.Instrument) []string {
	var out []string
	for _, inst := range insts {
		out = append(out, futures.ExplicitTickers(inst, asOf, s.run.ContractsPerSymbol)...)
		if s.run.FrontMonths {
			out = append(out, futures.GenericTickers(inst)...)
		}
	}
	return out
}

// Compute runs the pipeline for both instruments and returns the tables
// rounded for display.
func (s *PPEService) Compute(ctx context.Context) (*domain.Report, error) {
	report, err := s.build(ctx, domain.Instruments...)
	if err != nil {
		return nil, err
	}
	for inst, rows := range report.Tables {
		report.Tables[inst] = ppe.Round(rows, DisplayPlaces)
	}
	return report, nil
}

// Table runs the pipeline for a single instrument
func (s *PPEService) Table(ctx context.Context, inst domain.Instrument) ([]domain.PPERow, error) {
	if !inst.Valid() {
		return nil, fmt.Errorf("%w: %q", futures.ErrUnknownInstrument, inst)
	}
	report, err := s.build(ctx, inst)
	if err != nil {
		return nil, err
	}
	return ppe.Round(report.Tables[inst], DisplayPlaces), nil
}

// Sensitivity builds the NDF sensitivity table of inst. A nil premium or
// forward defaults to the value aligned on the first curve month.
func (s *PPEService) Sensitivity(ctx context.Context, inst domain.Instrument, premium, forward *float64) (domain.SensitivityTable, error) {
	if !inst.Valid() {
		return domain.SensitivityTable{}, fmt.Errorf("%w: %q", futures.ErrUnknownInstrument, inst)
	}
	report, err := s.build(ctx, inst)
	if err != nil {
		return domain.SensitivityTable{}, err
	}

	return s.sensitivity(report.Tables[inst], inst, premium, forward)
}

// ComputeWithSensitivity runs the pipeline once and returns the report
// together with the sensitivity table of every instrument that has the
// inputs for one. Instruments without an aligned premium or forward are
// skipped.
func (s *PPEService) ComputeWithSensitivity(ctx context.Context, premium, forward *float64) (*domain.Report, []domain.SensitivityTable, error) {
	report, err := s.build(ctx, domain.Instruments...)
	if err != nil {
		return nil, nil, err
	}

	var tables []domain.SensitivityTable
	for _, inst := range domain.Instruments {
		table, err := s.sensitivity(report.Tables[inst], inst, premium, forward)
		if errors.Is(err, ErrNoSensitivityInputs) {
			s.logger.WarnContext(ctx, "sensitivity skipped",
				slog.String("instrument", string(inst)),
				slog.String("reason", err.Error()))
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		tables = append(tables, table)
	}

	for inst, rows := range report.Tables {
		report.Tables[inst] = ppe.Round(rows, DisplayPlaces)
	}
	return report, tables, nil
}

// sensitivity crosses unrounded rows with the NDF grid and rounds the result
func (s *PPEService) sensitivity(rows []domain.PPERow, inst domain.Instrument, premium, forward *float64) (domain.SensitivityTable, error) {
	prem, fwd := domain.FromPointer(premium), domain.FromPointer(forward)
	if len(rows) > 0 {
		if !prem.Valid() {
			prem = rows[0].Premium.Value
		}
		if !fwd.Valid() {
			fwd = rows[0].Forward.Value
		}
	}
	p, ok := prem.Get()
	if !ok {
		return domain.SensitivityTable{}, fmt.Errorf("%w: no premium for %s", ErrNoSensitivityInputs, inst)
	}
	f, ok := fwd.Get()
	if !ok {
		return domain.SensitivityTable{}, fmt.Errorf("%w: no forward rate", ErrNoSensitivityInputs)
	}

	table, err := ppe.Sensitivity(rows, p, f, s.constants, inst)
	if err != nil {
		return domain.SensitivityTable{}, err
	}
	for i := range table.Rows {
		r := &table.Rows[i]
		r.Chicago = r.Chicago.Round(DisplayPlaces)
		r.EquivalentBushel = r.EquivalentBushel.Round(DisplayPlaces)
		for j := range r.Values {
			r.Values[j] = r.Values[j].Round(DisplayPlaces)
		}
	}
	return table, nil
}

// build runs one pipeline pass for insts and returns unrounded tables
func (s *PPEService) build(ctx context.Context, insts ...domain.Instrument) (report *domain.Report, err error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.tracer.Start(ctx, "ppe.run", trace.WithAttributes(attribute.String("run_id", runID)))
	logger := s.logger.With(slog.String("run_id", runID))
	defer func() {
		s.metrics.RecordRun(ctx, time.Since(start), err)
		infrastructure.RecordError(ctx, err)
		span.End()
	}()

	now := s.now().In(s.location)
	asOf := domain.YearMonthOf(now)
	grid := curve.Grid(asOf, s.run.Horizon)
	tickers := s.Tickers(asOf, insts...)

	logger.InfoContext(ctx, "PPE run started",
		slog.String("as_of", asOf.Label()),
		slog.Int("horizon", len(grid)),
		slog.Int("tickers", len(tickers)))

	// Nothing can be aligned without the spreadsheet, so load it before
	// spending time on quotes.
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPremiumsUnavailable, err)
	}

	collectOpts := append([]quotes.CollectOption{
		quotes.WithLogger(logger),
		quotes.WithFailureHook(func(ctx context.Context, ticker string, _ error) {
			s.metrics.RecordQuoteFailure(ctx, ticker)
		}),
	}, s.collect...)
	quoted, err := quotes.Collect(ctx, s.fetcher, tickers, collectOpts...)
	if err != nil {
		return nil, fmt.Errorf("collect quotes: %w", err)
	}

	var pmOpts []curve.Option
	if s.run.FrontMonths {
		pmOpts = append(pmOpts, curve.WithFrontMonths(asOf))
	}
	prices, units := curve.BuildPriceMap(quoted, pmOpts...)

	report = &domain.Report{
		RunID:   runID,
		AsOf:    now,
		Grid:    grid,
		Tickers: tickers,
		Missing: []string{},
		Tables:  make(map[domain.Instrument][]domain.PPERow, len(insts)),
	}
	for _, tk := range tickers {
		if !quoted[tk].Valid() {
			report.Missing = append(report.Missing, tk)
		}
	}
	for _, inst := range insts {
		report.Tables[inst] = ppe.BuildTable(inst, grid, prices, units,
			tables.Premium(inst), tables.Forward, s.constants)
	}

	logger.InfoContext(ctx, "PPE run completed",
		slog.Int("missing_quotes", len(report.Missing)),
		slog.Int("priced_contracts", len(prices)),
		slog.Duration("duration", time.Since(start)))
	return report, nil
}
