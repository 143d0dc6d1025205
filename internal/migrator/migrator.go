// Package migrator carries the marketplace data over from the legacy
// Symfony/MariaDB database into the PostgreSQL schema. It runs as a sequence
// of independently toggleable phases, each of which fully replaces its
// destination rows so reruns are idempotent.
package migrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lemarche/marketplace-backend/internal/adapter/legacy"
	"github.com/lemarche/marketplace-backend/internal/adapter/postgres/siae"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// allPhases defines the canonical execution order. Link and image phases
// depend on the entity phases before them.
var allPhases = []string{
	"siae",
	"siae_logo",
	"network",
	"siae_network",
	"sector",
	"siae_sector",
	"siae_offer",
	"siae_label",
	"siae_client_reference",
	"siae_image",
	"user",
	"user_image",
	"siae_user",
	"siae_contact",
}

// Phases returns the canonical phase list, for command-line validation.
func Phases() []string {
	out := make([]string, len(allPhases))
	copy(out, allPhases)
	return out
}

// Source reads the legacy database.
type Source interface {
	Directories(ctx context.Context) ([]legacy.DirectoryRow, error)
	DirectoryImages(ctx context.Context) ([]legacy.DirectoryImageRow, error)
	Networks(ctx context.Context) ([]legacy.NetworkRow, error)
	DirectoryNetworks(ctx context.Context) ([]legacy.DirectoryNetworkRow, error)
	ListingCategories(ctx context.Context) ([]legacy.ListingCategoryRow, error)
	ListingCategoryTranslations(ctx context.Context) ([]legacy.ListingCategoryTranslationRow, error)
	DirectoryListingCategories(ctx context.Context) ([]legacy.DirectoryListingCategoryRow, error)
	DirectoryOffers(ctx context.Context) ([]legacy.DirectoryOfferRow, error)
	DirectoryLabels(ctx context.Context) ([]legacy.DirectoryLabelRow, error)
	DirectoryClientImages(ctx context.Context) ([]legacy.DirectoryClientImageRow, error)
	Listings(ctx context.Context) ([]legacy.ListingRow, error)
	ListingTranslations(ctx context.Context) ([]legacy.ListingTranslationRow, error)
	ListingImages(ctx context.Context) ([]legacy.ListingImageRow, error)
	Users(ctx context.Context) ([]legacy.UserRow, error)
	UserImages(ctx context.Context) ([]legacy.UserImageRow, error)
	DirectoryUsers(ctx context.Context) ([]legacy.DirectoryUserRow, error)
}

// SiaeStore is the destination for enterprises and their attached rows.
type SiaeStore interface {
	Create(ctx context.Context, s *domain.Siae) (*domain.Siae, error)
	DeleteAll(ctx context.Context) error
	SetImageName(ctx context.Context, id int64, imageName string) error
	UpdateContact(ctx context.Context, id int64, c siae.UserContact) error
	ListFirstUserContacts(ctx context.Context) ([]siae.UserContact, error)
	IDsByLegacyUserID(ctx context.Context, c4ID int64) ([]int64, error)

	AddNetwork(ctx context.Context, siaeID, networkID int64) error
	AddSector(ctx context.Context, siaeID, sectorID int64) error
	AddUser(ctx context.Context, siaeID, userID int64) error
	DeleteAllNetworkLinks(ctx context.Context) error
	DeleteAllSectorLinks(ctx context.Context) error
	DeleteAllUserLinks(ctx context.Context) error

	CreateOffer(ctx context.Context, o *domain.SiaeOffer) (*domain.SiaeOffer, error)
	CreateLabel(ctx context.Context, l *domain.SiaeLabel) (*domain.SiaeLabel, error)
	CreateClientReference(ctx context.Context, c *domain.SiaeClientReference) (*domain.SiaeClientReference, error)
	CreateImage(ctx context.Context, img *domain.SiaeImage) (*domain.SiaeImage, error)
	DeleteAllOffers(ctx context.Context) error
	DeleteAllLabels(ctx context.Context) error
	DeleteAllClientReferences(ctx context.Context) error
	DeleteAllImages(ctx context.Context) error

	ResetIDSequence(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	CountWithImage(ctx context.Context) (int, error)
	CountNetworkLinks(ctx context.Context) (int, error)
	CountSectorLinks(ctx context.Context) (int, error)
	CountUserLinks(ctx context.Context) (int, error)
}

// NetworkStore is the destination for networks.
type NetworkStore interface {
	Create(ctx context.Context, n *domain.Network) (*domain.Network, error)
	DeleteAll(ctx context.Context) error
	ResetIDSequence(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// SectorStore is the destination for the sector hierarchy.
type SectorStore interface {
	CreateGroup(ctx context.Context, g *domain.SectorGroup) (*domain.SectorGroup, error)
	CreateSector(ctx context.Context, s *domain.Sector) (*domain.Sector, error)
	DeleteAll(ctx context.Context) error
	ResetIDSequences(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	CountGroups(ctx context.Context) (int, error)
}

// UserStore is the destination for accounts.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	DeleteMigrated(ctx context.Context) error
	GetByLegacyID(ctx context.Context, c4ID int64) (*domain.User, error)
	SetImageNameByLegacyID(ctx context.Context, c4ID int64, imageName string) error
	Count(ctx context.Context) (int, error)
	CountWithImage(ctx context.Context) (int, error)
}

// Config controls a migration run.
type Config struct {
	// Phases restricts the run to the listed phases; empty means all, in
	// canonical order.
	Phases []string
	// DryRun fetches and maps source rows without writing anything.
	DryRun bool
}

// PhaseResult holds the outcome of a single phase.
type PhaseResult struct {
	Inserted int
	Updated  int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Migrator orchestrates the phase pipeline.
type Migrator struct {
	log      *slog.Logger
	source   Source
	siaes    SiaeStore
	networks NetworkStore
	sectors  SectorStore
	users    UserStore
	cfg      Config
	results  map[string]PhaseResult
}

// New creates a Migrator.
func New(log *slog.Logger, source Source, siaes SiaeStore, networks NetworkStore, sectors SectorStore, users UserStore, cfg Config) *Migrator {
	return &Migrator{
		log:      log.With("component", "migrator"),
		source:   source,
		siaes:    siaes,
		networks: networks,
		sectors:  sectors,
		users:    users,
		cfg:      cfg,
		results:  make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (m *Migrator) Results() map[string]PhaseResult {
	return m.results
}

// Report holds destination row counts taken after a run, mirroring the
// per-entity totals the legacy migration scripts printed at the end.
type Report struct {
	Siaes          int
	SiaesWithLogo  int
	Networks       int
	NetworkLinks   int
	SectorGroups   int
	Sectors        int
	SectorLinks    int
	Users          int
	UsersWithImage int
	UserLinks      int
}

// Report counts the migrated rows in the destination.
func (m *Migrator) Report(ctx context.Context) (Report, error) {
	var (
		rep Report
		err error
	)
	for _, c := range []struct {
		name  string
		dst   *int
		count func(context.Context) (int, error)
	}{
		{"siaes", &rep.Siaes, m.siaes.Count},
		{"siaes with logo", &rep.SiaesWithLogo, m.siaes.CountWithImage},
		{"networks", &rep.Networks, m.networks.Count},
		{"network links", &rep.NetworkLinks, m.siaes.CountNetworkLinks},
		{"sector groups", &rep.SectorGroups, m.sectors.CountGroups},
		{"sectors", &rep.Sectors, m.sectors.Count},
		{"sector links", &rep.SectorLinks, m.siaes.CountSectorLinks},
		{"users", &rep.Users, m.users.Count},
		{"users with image", &rep.UsersWithImage, m.users.CountWithImage},
		{"user links", &rep.UserLinks, m.siaes.CountUserLinks},
	} {
		if *c.dst, err = c.count(ctx); err != nil {
			return Report{}, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	return rep, nil
}

// HasErrors reports whether any phase failed or recorded row errors.
func (m *Migrator) HasErrors() bool {
	for _, r := range m.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the configured phases in canonical order. A phase failure is
// recorded and the pipeline moves on; only a cancelled context aborts.
func (m *Migrator) Run(ctx context.Context) error {
	toRun := allPhases
	if len(m.cfg.Phases) > 0 {
		filter := make(map[string]bool, len(m.cfg.Phases))
		for _, ph := range m.cfg.Phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		m.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case "siae":
			result = m.migrateSiae(ctx)
		case "siae_logo":
			result = m.migrateSiaeLogo(ctx)
		case "network":
			result = m.migrateNetwork(ctx)
		case "siae_network":
			result = m.migrateSiaeNetwork(ctx)
		case "sector":
			result = m.migrateSector(ctx)
		case "siae_sector":
			result = m.migrateSiaeSector(ctx)
		case "siae_offer":
			result = m.migrateSiaeOffer(ctx)
		case "siae_label":
			result = m.migrateSiaeLabel(ctx)
		case "siae_client_reference":
			result = m.migrateSiaeClientReference(ctx)
		case "siae_image":
			result = m.migrateSiaeImage(ctx)
		case "user":
			result = m.migrateUser(ctx)
		case "user_image":
			result = m.migrateUserImage(ctx)
		case "siae_user":
			result = m.migrateSiaeUser(ctx)
		case "siae_contact":
			result = m.updateSiaeContact(ctx)
		}
		result.Duration = time.Since(start)
		m.results[phase] = result

		if result.Err != nil {
			m.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			m.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", result.Inserted),
				slog.Int("updated", result.Updated),
				slog.Int("skipped", result.Skipped),
				slog.Int("errors", result.Errors),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	m.log.Info("migration completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// migrateSiae replaces all enterprises with the legacy directory rows.
func (m *Migrator) migrateSiae(ctx context.Context) PhaseResult {
	rows, err := m.source.Directories(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch directories: %w", err)}
	}
	m.log.Info("directories fetched", slog.Int("rows", len(rows)))

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.siaes.DeleteAll(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete siaes: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if _, err := m.siaes.Create(ctx, siaeFromRow(row)); err != nil {
			m.log.Warn("siae create failed", slog.Int64("legacy_id", row.ID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}

	// The rows above carry legacy ids, so realign the sequence for
	// runtime inserts.
	if err := m.siaes.ResetIDSequence(ctx); err != nil {
		result.Err = err
	}
	return result
}

// migrateSiaeLogo stores the first gallery logo (position 1) on each
// enterprise.
func (m *Migrator) migrateSiaeLogo(ctx context.Context) PhaseResult {
	rows, err := m.source.DirectoryImages(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch directory images: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if row.Position != 1 {
			result.Skipped++
			continue
		}
		if m.cfg.DryRun {
			result.Skipped++
			continue
		}
		if err := m.siaes.SetImageName(ctx, row.DirectoryID, row.Name); err != nil {
			m.log.Warn("siae logo update failed",
				slog.Int64("siae_id", row.DirectoryID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Updated++
	}
	return result
}

// migrateNetwork replaces all networks.
func (m *Migrator) migrateNetwork(ctx context.Context) PhaseResult {
	rows, err := m.source.Networks(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch networks: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.networks.DeleteAll(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete networks: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if _, err := m.networks.Create(ctx, networkFromRow(row)); err != nil {
			m.log.Warn("network create failed", slog.Int64("legacy_id", row.ID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}

	if err := m.networks.ResetIDSequence(ctx); err != nil {
		result.Err = err
	}
	return result
}

// migrateSiaeNetwork replaces the siae-network links.
func (m *Migrator) migrateSiaeNetwork(ctx context.Context) PhaseResult {
	rows, err := m.source.DirectoryNetworks(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch directory networks: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.siaes.DeleteAllNetworkLinks(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete network links: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if err := m.siaes.AddNetwork(ctx, row.DirectoryID, row.NetworkID); err != nil {
			m.log.Warn("siae network link failed",
				slog.Int64("siae_id", row.DirectoryID), slog.Int64("network_id", row.NetworkID),
				slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}
	return result
}

// migrateSector rebuilds the sector hierarchy. Slug collisions across groups
// are resolved by retrying with the group id appended, matching the
// destination's unique constraint.
func (m *Migrator) migrateSector(ctx context.Context) PhaseResult {
	categories, err := m.source.ListingCategories(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch listing categories: %w", err)}
	}
	translations, err := m.source.ListingCategoryTranslations(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch category translations: %w", err)}
	}

	nodes, buildErrs := buildSectorHierarchy(categories, translations)
	for _, err := range buildErrs {
		m.log.Warn("sector hierarchy", slog.String("error", err.Error()))
	}

	if m.cfg.DryRun {
		total := 0
		for _, n := range nodes {
			total += 1 + len(n.Sectors)
		}
		return PhaseResult{Skipped: total, Errors: len(buildErrs)}
	}

	if err := m.sectors.DeleteAll(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete sectors: %w", err)}
	}

	result := PhaseResult{Errors: len(buildErrs)}
	for _, node := range nodes {
		group := node.Group
		if _, err := m.sectors.CreateGroup(ctx, &group); err != nil {
			m.log.Warn("sector group create failed", slog.Int64("group_id", group.ID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++

		for _, sector := range node.Sectors {
			s := sector
			_, err := m.sectors.CreateSector(ctx, &s)
			if errors.Is(err, domain.ErrAlreadyExists) {
				// duplicated slugs across groups (e.g. "autre")
				s.Slug = fmt.Sprintf("%s-%d", sector.Slug, group.ID)
				_, err = m.sectors.CreateSector(ctx, &s)
			}
			if err != nil {
				m.log.Warn("sector create failed", slog.Int64("sector_id", sector.ID), slog.String("error", err.Error()))
				result.Errors++
				continue
			}
			result.Inserted++
		}
	}

	if err := m.sectors.ResetIDSequences(ctx); err != nil {
		result.Err = err
	}
	return result
}

// migrateSiaeSector replaces the siae-sector links. Legacy rows sometimes
// point at a sector group instead of a sector; those fail the foreign key and
// are skipped.
func (m *Migrator) migrateSiaeSector(ctx context.Context) PhaseResult {
	rows, err := m.source.DirectoryListingCategories(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch directory categories: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.siaes.DeleteAllSectorLinks(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete sector links: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		err := m.siaes.AddSector(ctx, row.DirectoryID, row.ListingCategoryID)
		if errors.Is(err, domain.ErrNotFound) {
			result.Skipped++
			continue
		}
		if err != nil {
			m.log.Warn("siae sector link failed",
				slog.Int64("siae_id", row.DirectoryID), slog.Int64("sector_id", row.ListingCategoryID),
				slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}
	return result
}

// migrateSiaeOffer replaces enterprise offers.
func (m *Migrator) migrateSiaeOffer(ctx context.Context) PhaseResult {
	rows, err := m.source.DirectoryOffers(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch directory offers: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.siaes.DeleteAllOffers(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete offers: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if _, err := m.siaes.CreateOffer(ctx, offerFromRow(row)); err != nil {
			m.log.Warn("siae offer create failed", slog.Int64("siae_id", row.DirectoryID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}
	return result
}

// migrateSiaeLabel replaces enterprise labels.
func (m *Migrator) migrateSiaeLabel(ctx context.Context) PhaseResult {
	rows, err := m.source.DirectoryLabels(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch directory labels: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.siaes.DeleteAllLabels(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete labels: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if _, err := m.siaes.CreateLabel(ctx, labelFromRow(row)); err != nil {
			m.log.Warn("siae label create failed", slog.Int64("siae_id", row.DirectoryID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}
	return result
}

// migrateSiaeClientReference replaces client reference logos.
func (m *Migrator) migrateSiaeClientReference(ctx context.Context) PhaseResult {
	rows, err := m.source.DirectoryClientImages(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch client images: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.siaes.DeleteAllClientReferences(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete client references: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if _, err := m.siaes.CreateClientReference(ctx, clientReferenceFromRow(row)); err != nil {
			m.log.Warn("siae client reference create failed",
				slog.Int64("siae_id", row.DirectoryID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}
	return result
}

// migrateSiaeImage rebuilds the enterprise galleries from the legacy
// listings. A gallery attaches only when its owner maps to exactly one
// enterprise; everything else is counted and skipped.
func (m *Migrator) migrateSiaeImage(ctx context.Context) PhaseResult {
	listings, err := m.source.Listings(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch listings: %w", err)}
	}
	translations, err := m.source.ListingTranslations(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch listing translations: %w", err)}
	}
	images, err := m.source.ListingImages(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch listing images: %w", err)}
	}
	m.log.Info("listings fetched",
		slog.Int("listings", len(listings)), slog.Int("images", len(images)))

	galleries := buildGalleries(listings, translations, images)

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(galleries)}
	}

	if err := m.siaes.DeleteAllImages(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete siae images: %w", err)}
	}

	var (
		result PhaseResult
		counts ImageErrorCounts
	)
	for _, g := range galleries {
		if len(g.Images) == 0 {
			counts.ListingWithoutImage++
			continue
		}

		_, err := m.users.GetByLegacyID(ctx, g.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			counts.UserNotFound++
			continue
		}
		if err != nil {
			m.log.Warn("siae image owner lookup failed", slog.Int64("user_id", g.UserID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}

		siaeIDs, err := m.siaes.IDsByLegacyUserID(ctx, g.UserID)
		if err != nil {
			m.log.Warn("siae image siae lookup failed", slog.Int64("user_id", g.UserID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		switch {
		case len(siaeIDs) == 0:
			counts.UserNoSiae++
			continue
		case len(siaeIDs) > 1:
			counts.UserMultipleSiae++
			continue
		}

		for _, img := range imagesForGallery(g, siaeIDs[0]) {
			if _, err := m.siaes.CreateImage(ctx, img); err != nil {
				m.log.Warn("siae image create failed", slog.Int64("siae_id", siaeIDs[0]), slog.String("error", err.Error()))
				result.Errors++
				continue
			}
			result.Inserted++
		}
	}

	result.Skipped += counts.Total()
	m.log.Info("siae image resolution",
		slog.Int("listing_without_image", counts.ListingWithoutImage),
		slog.Int("user_not_found", counts.UserNotFound),
		slog.Int("user_no_siae", counts.UserNoSiae),
		slog.Int("user_multiple_siae", counts.UserMultipleSiae),
	)
	return result
}

// migrateUser replaces migrated accounts. Accounts created on the new
// platform (holding an API key) are left untouched; legacy accounts without a
// recognizable kind are skipped.
func (m *Migrator) migrateUser(ctx context.Context) PhaseResult {
	rows, err := m.source.Users(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch users: %w", err)}
	}
	m.log.Info("users fetched", slog.Int("rows", len(rows)))

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.users.DeleteMigrated(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete migrated users: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		u, ok := userFromRow(row)
		if !ok {
			result.Skipped++
			continue
		}
		if _, err := m.users.Create(ctx, u); err != nil {
			m.log.Warn("user create failed", slog.Int64("legacy_id", row.ID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}
	return result
}

// migrateUserImage stores the first avatar (position 1) on each account.
func (m *Migrator) migrateUserImage(ctx context.Context) PhaseResult {
	rows, err := m.source.UserImages(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch user images: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		if row.Position != 1 {
			result.Skipped++
			continue
		}
		if m.cfg.DryRun {
			result.Skipped++
			continue
		}
		err := m.users.SetImageNameByLegacyID(ctx, row.UserID, row.Name)
		if errors.Is(err, domain.ErrNotFound) {
			// the account was skipped during the user phase
			result.Skipped++
			continue
		}
		if err != nil {
			m.log.Warn("user image update failed", slog.Int64("legacy_user_id", row.UserID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Updated++
	}
	return result
}

// migrateSiaeUser replaces the siae-user links. Links whose account was
// skipped during the user phase are skipped as well.
func (m *Migrator) migrateSiaeUser(ctx context.Context) PhaseResult {
	rows, err := m.source.DirectoryUsers(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("fetch directory users: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(rows)}
	}

	if err := m.siaes.DeleteAllUserLinks(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("delete user links: %w", err)}
	}

	var result PhaseResult
	for _, row := range rows {
		u, err := m.users.GetByLegacyID(ctx, row.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			result.Skipped++
			continue
		}
		if err != nil {
			m.log.Warn("siae user lookup failed", slog.Int64("legacy_user_id", row.UserID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		if err := m.siaes.AddUser(ctx, row.DirectoryID, u.ID); err != nil {
			m.log.Warn("siae user link failed",
				slog.Int64("siae_id", row.DirectoryID), slog.Int64("user_id", u.ID),
				slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Inserted++
	}
	return result
}

// updateSiaeContact back-fills each enterprise's contact fields from its
// first linked user (ordered by legacy id). The website comes from the
// enterprise itself, which was already an editable field in the legacy app.
func (m *Migrator) updateSiaeContact(ctx context.Context) PhaseResult {
	contacts, err := m.siaes.ListFirstUserContacts(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("list first user contacts: %w", err)}
	}

	if m.cfg.DryRun {
		return PhaseResult{Skipped: len(contacts)}
	}

	var result PhaseResult
	for _, c := range contacts {
		if err := m.siaes.UpdateContact(ctx, c.SiaeID, c); err != nil {
			m.log.Warn("siae contact update failed", slog.Int64("siae_id", c.SiaeID), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Updated++
	}
	return result
}
