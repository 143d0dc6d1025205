package migrator

import (
	"fmt"

	"github.com/lemarche/marketplace-backend/internal/adapter/legacy"
	"github.com/lemarche/marketplace-backend/internal/domain"
)

// sectorLocale selects which translation row names a category. The legacy
// tables carry several locales; the marketplace is French only.
const sectorLocale = "fr"

// sectorNode is one resolved group with its child sectors, in source order.
type sectorNode struct {
	Group   domain.SectorGroup
	Sectors []domain.Sector
}

// buildSectorHierarchy reshapes the flat legacy category rows into the
// two-level group/sector hierarchy. The legacy modelling allowed arbitrary
// nesting but only ever used two levels: rows without a parent are groups,
// the rest are sectors attached to their parent. A child can show up before
// its parent, so a placeholder group is created on first sight and filled in
// later. Categories without a French translation are reported as errors and
// dropped.
func buildSectorHierarchy(categories []legacy.ListingCategoryRow, translations []legacy.ListingCategoryTranslationRow) ([]sectorNode, []error) {
	type group struct {
		id       int64
		children []int64
	}

	var groups []*group
	index := make(map[int64]*group)

	ensureGroup := func(id int64) *group {
		if g, ok := index[id]; ok {
			return g
		}
		g := &group{id: id}
		groups = append(groups, g)
		index[id] = g
		return g
	}

	for _, c := range categories {
		if !c.ParentID.Valid {
			ensureGroup(c.ID)
			continue
		}
		parent := ensureGroup(c.ParentID.Int64)
		parent.children = append(parent.children, c.ID)
	}

	names := make(map[int64]legacy.ListingCategoryTranslationRow, len(translations))
	for _, tr := range translations {
		if tr.Locale == sectorLocale {
			names[tr.TranslatableID] = tr
		}
	}

	var (
		nodes []sectorNode
		errs  []error
	)
	for _, g := range groups {
		tr, ok := names[g.id]
		if !ok {
			errs = append(errs, fmt.Errorf("sector group %d: no %q translation", g.id, sectorLocale))
			continue
		}

		node := sectorNode{
			Group: domain.SectorGroup{ID: g.id, Name: tr.Name, Slug: tr.Slug},
		}
		for _, childID := range g.children {
			tr, ok := names[childID]
			if !ok {
				errs = append(errs, fmt.Errorf("sector %d: no %q translation", childID, sectorLocale))
				continue
			}
			node.Sectors = append(node.Sectors, domain.Sector{
				ID:      childID,
				GroupID: g.id,
				Name:    tr.Name,
				Slug:    tr.Slug,
			})
		}
		nodes = append(nodes, node)
	}
	return nodes, errs
}
