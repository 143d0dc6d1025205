package migrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

func TestMapNature(t *testing.T) {
	tests := []struct {
		input string
		want  domain.SiaeNature
	}{
		{input: "siege", want: domain.SiaeNatureHeadOffice},
		{input: "antenne", want: domain.SiaeNatureAntenna},
		{input: "n/a", want: ""},
		{input: "", want: ""},
		{input: "whatever", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MapNature(tt.input))
		})
	}
}

func TestMapPrestaTypes(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []domain.PrestaType
	}{
		{name: "0 means none", input: []byte("0"), want: []domain.PrestaType{}},
		{name: "2", input: []byte("2"), want: []domain.PrestaType{domain.PrestaTypeDisp}},
		{name: "4", input: []byte("4"), want: []domain.PrestaType{domain.PrestaTypePrest}},
		{name: "6", input: []byte("6"), want: []domain.PrestaType{domain.PrestaTypeDisp, domain.PrestaTypePrest}},
		{name: "8", input: []byte("8"), want: []domain.PrestaType{domain.PrestaTypeBuild}},
		{name: "10", input: []byte("10"), want: []domain.PrestaType{domain.PrestaTypeDisp, domain.PrestaTypeBuild}},
		{name: "12", input: []byte("12"), want: []domain.PrestaType{domain.PrestaTypePrest, domain.PrestaTypeBuild}},
		{name: "14", input: []byte("14"), want: []domain.PrestaType{domain.PrestaTypeDisp, domain.PrestaTypePrest, domain.PrestaTypeBuild}},
		{name: "unknown code", input: []byte("7"), want: nil},
		{name: "garbage", input: []byte("abc"), want: nil},
		{name: "nil", input: nil, want: nil},
		{name: "empty", input: []byte{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapPrestaTypes(tt.input))
		})
	}
}

func TestMapGeoRange(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  domain.GeoRange
	}{
		{name: "country", input: 3, want: domain.GeoRangeCountry},
		{name: "region", input: 2, want: domain.GeoRangeRegion},
		{name: "department", input: 1, want: domain.GeoRangeDepartment},
		{name: "custom", input: 0, want: domain.GeoRangeCustom},
		{name: "unknown", input: 42, want: ""},
		{name: "negative", input: -1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapGeoRange(tt.input))
		})
	}
}

func TestMapUserKind(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  domain.UserKind
	}{
		{name: "buyer", input: 3, want: domain.UserKindBuyer},
		{name: "siae", input: 4, want: domain.UserKindSiae},
		{name: "admin", input: 5, want: domain.UserKindAdmin},
		{name: "partner", input: 6, want: domain.UserKindPartner},
		{name: "retired perso", input: 1, want: ""},
		{name: "retired company", input: 2, want: ""},
		{name: "unknown", input: 99, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapUserKind(tt.input))
		})
	}
}
