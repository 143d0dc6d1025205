// Command migrate-legacy carries data over from the legacy MariaDB database
// into PostgreSQL. It is a one-shot command, intended to be re-runnable:
// every phase deletes its destination rows before recreating them.
//
// Flags:
//
//	--phases   comma-separated list of phases to run (default: all)
//	--dry-run  read and map source rows without writing to PostgreSQL
//
// Exit codes: 0 = success, 1 = error or any phase recorded row errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lemarche/marketplace-backend/internal/adapter/legacy"
	"github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	networkrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/network"
	sectorrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/sector"
	siaerepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/siae"
	userrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/user"
	"github.com/lemarche/marketplace-backend/internal/app"
	"github.com/lemarche/marketplace-backend/internal/config"
	"github.com/lemarche/marketplace-backend/internal/migrator"
)

// Compile-time interface assertions.
var (
	_ migrator.Source       = (*legacy.Client)(nil)
	_ migrator.SiaeStore    = (*siaerepo.Repo)(nil)
	_ migrator.NetworkStore = (*networkrepo.Repo)(nil)
	_ migrator.SectorStore  = (*sectorrepo.Repo)(nil)
	_ migrator.UserStore    = (*userrepo.Repo)(nil)
)

func main() {
	// os.Exit in main would skip the connection-closing defers, so the
	// actual work lives in run.
	os.Exit(run())
}

func run() int {
	phasesFlag := flag.String("phases", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "read source rows without writing to PostgreSQL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	logger := app.NewLogger(cfg.Log)

	phases, err := parsePhases(*phasesFlag)
	if err != nil {
		logger.Error("invalid --phases", slog.String("error", err.Error()))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	source, err := legacy.Open(ctx, cfg.LegacyDB)
	if err != nil {
		logger.Error("connect to legacy database", slog.String("error", err.Error()))
		return 1
	}
	defer source.Close()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	m := migrator.New(logger,
		source,
		siaerepo.New(pool),
		networkrepo.New(pool),
		sectorrepo.New(pool),
		userrepo.New(pool),
		migrator.Config{Phases: phases, DryRun: *dryRunFlag},
	)

	if err := m.Run(ctx); err != nil {
		logger.Error("migration aborted", slog.String("error", err.Error()))
		return 1
	}

	for name, res := range m.Results() {
		logger.Info("phase result",
			slog.String("phase", name),
			slog.Int("inserted", res.Inserted),
			slog.Int("updated", res.Updated),
			slog.Int("skipped", res.Skipped),
			slog.Int("errors", res.Errors),
			slog.Duration("duration", res.Duration))
	}

	if !*dryRunFlag {
		if rep, err := m.Report(ctx); err != nil {
			logger.Warn("destination count report failed", slog.String("error", err.Error()))
		} else {
			logger.Info("destination counts",
				slog.Int("siaes", rep.Siaes),
				slog.Int("siaes_with_logo", rep.SiaesWithLogo),
				slog.Int("networks", rep.Networks),
				slog.Int("network_links", rep.NetworkLinks),
				slog.Int("sector_groups", rep.SectorGroups),
				slog.Int("sectors", rep.Sectors),
				slog.Int("sector_links", rep.SectorLinks),
				slog.Int("users", rep.Users),
				slog.Int("users_with_image", rep.UsersWithImage),
				slog.Int("user_links", rep.UserLinks))
		}
	}

	if m.HasErrors() {
		logger.Warn("migration completed with errors")
		return 1
	}

	logger.Info("migration completed successfully")
	return 0
}

// parsePhases splits and validates the --phases flag against the known
// phase names.
func parsePhases(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	known := make(map[string]bool)
	for _, p := range migrator.Phases() {
		known[p] = true
	}

	var phases []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !known[p] {
			return nil, fmt.Errorf("unknown phase %q; known phases: %s", p, strings.Join(migrator.Phases(), ", "))
		}
		phases = append(phases, p)
	}
	return phases, nil
}
