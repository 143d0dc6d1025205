package domain

import "time"

// SectorGroup is the top level of the two-level activity-sector hierarchy.
type SectorGroup struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sector is an activity sector; every sector belongs to exactly one group.
type Sector struct {
	ID        int64
	GroupID   int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
