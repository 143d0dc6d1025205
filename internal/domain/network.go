package domain

import "time"

// Network is a federation of inclusive enterprises.
type Network struct {
	ID        int64
	Name      string
	Slug      string
	Brand     string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
