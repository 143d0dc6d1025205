// Command import-perimeters loads the geographic reference data into the
// perimeters table from the geo.api.gouv.fr JSON exports. Run it once per
// kind, regions before departments before communes:
//
//	import-perimeters --kind regions --file regions.json
//	import-perimeters --kind departments --file departements.json
//	import-perimeters --kind communes --file communes.json
//
// The import is get-or-create, so reruns only add missing rows.
//
// Flags:
//
//	--kind     regions, departments or communes
//	--file     path to the JSON export
//	--dry-run  decode and map the file without writing to PostgreSQL
//
// Exit codes: 0 = success, 1 = error or any row failed to import.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lemarche/marketplace-backend/internal/adapter/postgres"
	perimeterrepo "github.com/lemarche/marketplace-backend/internal/adapter/postgres/perimeter"
	"github.com/lemarche/marketplace-backend/internal/app"
	"github.com/lemarche/marketplace-backend/internal/config"
	"github.com/lemarche/marketplace-backend/internal/domain"
	"github.com/lemarche/marketplace-backend/internal/perimeterimport"
)

// Compile-time interface assertion.
var _ perimeterimport.Store = (*perimeterrepo.Repo)(nil)

// kinds maps the --kind flag onto the perimeter kind and import entry point.
var kinds = map[string]domain.PerimeterKind{
	"regions":     domain.PerimeterKindRegion,
	"departments": domain.PerimeterKindDepartment,
	"communes":    domain.PerimeterKindCity,
}

func main() {
	// os.Exit in main would skip the pool-closing defer, so the actual
	// work lives in run.
	os.Exit(run())
}

func run() int {
	kindFlag := flag.String("kind", "", "perimeter kind to import: regions, departments or communes")
	fileFlag := flag.String("file", "", "path to the JSON export")
	dryRunFlag := flag.Bool("dry-run", false, "decode the file without writing to PostgreSQL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	logger := app.NewLogger(cfg.Log)

	kind, ok := kinds[*kindFlag]
	if !ok {
		logger.Error("invalid --kind", slog.String("kind", *kindFlag),
			slog.String("expected", "regions, departments or communes"))
		return 1
	}
	if *fileFlag == "" {
		logger.Error("missing --file")
		return 1
	}

	file, err := os.Open(*fileFlag)
	if err != nil {
		logger.Error("open export file", slog.String("error", err.Error()))
		return 1
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	im := perimeterimport.New(logger, perimeterrepo.New(pool), *dryRunFlag)

	before, err := im.Count(ctx, kind)
	if err != nil {
		logger.Error("count perimeters", slog.String("error", err.Error()))
		return 1
	}
	logger.Info("import starting",
		slog.String("kind", *kindFlag),
		slog.String("file", *fileFlag),
		slog.Int("before", before))

	var result perimeterimport.Result
	switch kind {
	case domain.PerimeterKindRegion:
		result, err = im.ImportRegions(ctx, file)
	case domain.PerimeterKindDepartment:
		result, err = im.ImportDepartments(ctx, file)
	case domain.PerimeterKindCity:
		result, err = im.ImportCommunes(ctx, file)
	}
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		return 1
	}

	after, err := im.Count(ctx, kind)
	if err != nil {
		logger.Error("count perimeters", slog.String("error", err.Error()))
		return 1
	}
	logger.Info("import finished",
		slog.String("kind", *kindFlag),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", result.Errors),
		slog.Int("after", after))

	if result.Errors > 0 {
		logger.Warn(fmt.Sprintf("%d rows failed to import", result.Errors))
		return 1
	}
	return 0
}
