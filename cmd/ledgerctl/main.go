// Command ledgerctl runs maintenance operations against the ledger
// database: rebuilding materialized balances from journal history and
// bulk-loading currency rates from CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	"github.com/hawwa-platform/ledgercore/internal/core/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/platform/config"
	"github.com/hawwa-platform/ledgercore/internal/repositories/database/pgsql"
	"github.com/hawwa-platform/ledgercore/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	switch os.Args[1] {
	case "rebuild-balances":
		os.Exit(runRebuild(ctx, logger, os.Args[2:]))
	case "seed-rates":
		os.Exit(runSeedRates(ctx, logger, os.Args[2:]))
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "ledgerctl: unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func usage(w *os.File) {
	fmt.Fprintln(w, `Usage: ledgerctl <command> [flags]

Commands:
  rebuild-balances  Recompute materialized balances from journal history
                    Flags: --dry-run --reset --account=<code> (repeatable)
  seed-rates        Bulk-load currency rates from a CSV file
                    Usage: seed-rates [--commit] <file.csv>
                    Without --commit the import is a dry-run preview.`)
}

// stringSliceFlag collects repeated flag values.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return fmt.Sprint(*s) }

func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func connect(ctx context.Context) (*portsrepo.RepositoryContainer, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pgsql.NewRepositoryContainer(pool), func() { database.ClosePgxPool(pool) }, nil
}

func runRebuild(ctx context.Context, logger *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("rebuild-balances", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "report deltas without writing")
	reset := fs.Bool("reset", false, "zero in-scope balances before recomputing")
	var accounts stringSliceFlag
	fs.Var(&accounts, "account", "scope to this account code (repeatable; default all)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	repos, closePool, err := connect(ctx)
	if err != nil {
		logger.Error("rebuild-balances failed", slog.String("error", err.Error()))
		return 1
	}
	defer closePool()

	balanceService := services.NewBalanceService(repos.Account, repos.Balance)
	report, err := balanceService.Rebuild(ctx, dto.RebuildRequest{
		Accounts: accounts,
		Reset:    *reset,
		DryRun:   *dryRun,
	})
	if err != nil {
		logger.Error("rebuild-balances failed", slog.String("error", err.Error()))
		return 1
	}

	if report.DryRun {
		for _, delta := range report.Deltas {
			fmt.Printf("account %s: stored %s, computed %s\n", delta.AccountCode, delta.Stored, delta.Computed)
		}
	}
	fmt.Printf("examined %d accounts, %d changed", report.Examined, report.Changed)
	if report.DryRun {
		fmt.Print(" (dry-run, nothing written)")
	}
	fmt.Println()
	return 0
}

func runSeedRates(ctx context.Context, logger *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("seed-rates", flag.ExitOnError)
	commit := fs.Bool("commit", false, "persist the rates (default is a dry-run preview)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "seed-rates: exactly one CSV file argument is required")
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		logger.Error("seed-rates failed", slog.String("error", err.Error()))
		return 1
	}
	defer f.Close()

	repos, closePool, err := connect(ctx)
	if err != nil {
		logger.Error("seed-rates failed", slog.String("error", err.Error()))
		return 1
	}
	defer closePool()

	ratesService := services.NewRatesService(repos.Rate)
	summary, err := ratesService.ImportRatesCSV(ctx, f, *commit, "ledgerctl")
	if err != nil {
		logger.Error("seed-rates failed", slog.String("error", err.Error()))
		return 1
	}

	for _, rowErr := range summary.Errors {
		fmt.Fprintf(os.Stderr, "line %d: %s\n", rowErr.Line, rowErr.Reason)
	}
	mode := "dry-run, nothing written; rerun with --commit to persist"
	if !summary.DryRun {
		mode = "committed"
	}
	fmt.Printf("imported %d, skipped %d, %d errors (%s)\n", summary.Imported, summary.Skipped, len(summary.Errors), mode)
	if len(summary.Errors) > 0 {
		return 1
	}
	return 0
}
