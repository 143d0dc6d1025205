package migrator

import "github.com/lemarche/marketplace-backend/internal/domain"

// Enum mappers for the legacy encodings. All of them fail closed: unknown
// input yields the zero value (or nil) so a bad row never carries a bogus
// enum into the destination.

// MapNature converts the legacy nature string.
func MapNature(input string) domain.SiaeNature {
	switch input {
	case "siege":
		return domain.SiaeNatureHeadOffice
	case "antenne":
		return domain.SiaeNatureAntenna
	default:
		// includes "n/a" and empty
		return ""
	}
}

// prestaTypeCodes maps the legacy byte-encoded bitmask to service types.
var prestaTypeCodes = map[string][]domain.PrestaType{
	"0":  {},
	"2":  {domain.PrestaTypeDisp},
	"4":  {domain.PrestaTypePrest},
	"6":  {domain.PrestaTypeDisp, domain.PrestaTypePrest},
	"8":  {domain.PrestaTypeBuild},
	"10": {domain.PrestaTypeDisp, domain.PrestaTypeBuild},
	"12": {domain.PrestaTypePrest, domain.PrestaTypeBuild},
	"14": {domain.PrestaTypeDisp, domain.PrestaTypePrest, domain.PrestaTypeBuild},
}

// MapPrestaTypes converts the legacy presta_type column, stored as a
// byte-string code. Unknown codes and NULL map to nil.
func MapPrestaTypes(input []byte) []domain.PrestaType {
	if len(input) == 0 {
		return nil
	}
	types, ok := prestaTypeCodes[string(input)]
	if !ok {
		return nil
	}
	out := make([]domain.PrestaType, len(types))
	copy(out, types)
	return out
}

// MapGeoRange converts the legacy pol_range integer.
func MapGeoRange(input int64) domain.GeoRange {
	switch input {
	case 3:
		return domain.GeoRangeCountry
	case 2:
		return domain.GeoRangeRegion
	case 1:
		return domain.GeoRangeDepartment
	case 0:
		return domain.GeoRangeCustom
	default:
		return ""
	}
}

// MapUserKind converts the legacy person_type integer. Values 1 (person) and
// 2 (company) were retired before the migration and map to nothing, like any
// unknown value.
func MapUserKind(input int64) domain.UserKind {
	switch input {
	case 3:
		return domain.UserKindBuyer
	case 4:
		return domain.UserKindSiae
	case 5:
		return domain.UserKindAdmin
	case 6:
		return domain.UserKindPartner
	default:
		return ""
	}
}

// Serialized role strings from the legacy auth layer. Staff and superuser
// flags are derived from the prefix (the length marker encodes the role
// name length: 10 for ROLE_STAFF-like roles, 16 for super admin).
const (
	rolePrefixStaff     = "a:1:{i:0;s:10"
	rolePrefixSuperuser = "a:1:{i:0;s:16"
)
