package domain

import "time"

// Perimeter is a geographic area (city, department or region) used for
// location filtering.
type Perimeter struct {
	ID   int64
	Name string
	Slug string
	Kind PerimeterKind

	// InseeCode is the official geographic code (city or department).
	InseeCode      string
	DepartmentCode string
	RegionCode     string
	PostCodes      []string
	Coords         *Point

	CreatedAt time.Time
	UpdatedAt time.Time
}
