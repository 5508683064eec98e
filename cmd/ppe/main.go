package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"ppecli/internal/app"
	"ppecli/internal/config"
	"ppecli/internal/exporter"
	"ppecli/internal/futures"
	"ppecli/internal/infrastructure"
	"ppecli/pkg/contracts"
	"ppecli/pkg/contracts/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("ppe failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// options are the parsed command line flags
type options struct {
	configPath  string
	format      exporter.Format
	instrument  domain.Instrument
	sensitivity bool
	premium     *float64
	forward     *float64
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("ppe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "path to config.yaml (defaults to $PPE_CONFIG, ./config.yaml, ./configs/config.yaml)")
	format := fs.String("format", "text", "output format: text, csv or json")
	instrument := fs.String("instrument", "", "only print one instrument (zc, zs, milho, soja)")
	sensitivity := fs.Bool("sensitivity", false, "also print the NDF sensitivity grid of each instrument")
	premium := fs.String("premium", "", "sensitivity premium in c$/bu (defaults to the first curve month)")
	forward := fs.String("forward", "", "sensitivity NDF rate (defaults to the first curve month)")
	version := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{
		configPath:  *configPath,
		sensitivity: *sensitivity,
		version:     *version,
	}

	var err error
	if opts.format, err = exporter.ParseFormat(*format); err != nil {
		return nil, err
	}
	if *instrument != "" {
		if opts.instrument, err = futures.ParseInstrument(*instrument); err != nil {
			return nil, err
		}
	}
	if opts.premium, err = parseNumber("premium", *premium); err != nil {
		return nil, err
	}
	if opts.forward, err = parseNumber("forward", *forward); err != nil {
		return nil, err
	}
	return opts, nil
}

// parseNumber accepts a decimal comma as typed in Brazilian spreadsheets
func parseNumber(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s %q: %w", name, raw, err)
	}
	return &v, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// stdout carries the tables
	logger := infrastructure.NewLogger(stderr, cfg.Logging.Level)

	otelCfg := infrastructure.OTelConfigFrom(cfg.Telemetry, contracts.Version)
	otelCfg.TraceWriter = stderr
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer providers.Shutdown(context.WithoutCancel(ctx))

	svc, err := app.BuildPPEService(ctx, cfg, logger, providers)
	if err != nil {
		return err
	}

	var (
		report *domain.Report
		tables []domain.SensitivityTable
	)
	if opts.sensitivity {
		report, tables, err = svc.ComputeWithSensitivity(ctx, opts.premium, opts.forward)
	} else {
		report, err = svc.Compute(ctx)
	}
	if err != nil {
		return err
	}

	if opts.instrument != "" {
		report.Tables = map[domain.Instrument][]domain.PPERow{
			opts.instrument: report.Tables[opts.instrument],
		}
		kept := tables[:0]
		for _, t := range tables {
			if t.Instrument == opts.instrument {
				kept = append(kept, t)
			}
		}
		tables = kept
	}
	if err := exporter.WriteRun(stdout, opts.format, report, tables); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	logger.InfoContext(ctx, "ppe run complete",
		slog.String("run_id", report.RunID),
		slog.Int("missing_quotes", len(report.Missing)))
	return nil
}
