package domain

// SiaeKind is the legal/agreement category of an inclusive enterprise.
type SiaeKind string

const (
	SiaeKindEI   SiaeKind = "EI"   // Entreprise d'insertion
	SiaeKindAI   SiaeKind = "AI"   // Association intermédiaire
	SiaeKindACI  SiaeKind = "ACI"  // Atelier chantier d'insertion
	SiaeKindETTI SiaeKind = "ETTI" // Entreprise de travail temporaire d'insertion
	SiaeKindEITI SiaeKind = "EITI" // Entreprise d'insertion par le travail indépendant
	SiaeKindGEIQ SiaeKind = "GEIQ" // Groupement d'employeurs pour l'insertion et la qualification
	SiaeKindEA   SiaeKind = "EA"   // Entreprise adaptée
	SiaeKindESAT SiaeKind = "ESAT" // Etablissement et service d'aide par le travail
	SiaeKindSEP  SiaeKind = "SEP"  // Structure d'emploi pénitentiaire
)

func (k SiaeKind) String() string { return string(k) }

func (k SiaeKind) IsValid() bool {
	switch k {
	case SiaeKindEI, SiaeKindAI, SiaeKindACI, SiaeKindETTI, SiaeKindEITI,
		SiaeKindGEIQ, SiaeKindEA, SiaeKindESAT, SiaeKindSEP:
		return true
	}
	return false
}

// SiaeNature distinguishes a head office from an antenna.
type SiaeNature string

const (
	SiaeNatureHeadOffice SiaeNature = "HEAD_OFFICE"
	SiaeNatureAntenna    SiaeNature = "ANTENNA"
)

func (n SiaeNature) String() string { return string(n) }

func (n SiaeNature) IsValid() bool {
	return n == SiaeNatureHeadOffice || n == SiaeNatureAntenna
}

// PrestaType is the type of service provision offered by an enterprise.
type PrestaType string

const (
	PrestaTypeDisp  PrestaType = "DISP"  // mise à disposition (staffing)
	PrestaTypePrest PrestaType = "PREST" // prestation de service
	PrestaTypeBuild PrestaType = "BUILD" // fabrication et commercialisation
)

func (p PrestaType) String() string { return string(p) }

func (p PrestaType) IsValid() bool {
	switch p {
	case PrestaTypeDisp, PrestaTypePrest, PrestaTypeBuild:
		return true
	}
	return false
}

// GeoRange is the geographic intervention range of an enterprise.
type GeoRange string

const (
	GeoRangeCountry    GeoRange = "COUNTRY"
	GeoRangeRegion     GeoRange = "REGION"
	GeoRangeDepartment GeoRange = "DEPARTMENT"
	GeoRangeCustom     GeoRange = "CUSTOM"
)

func (g GeoRange) String() string { return string(g) }

func (g GeoRange) IsValid() bool {
	switch g {
	case GeoRangeCountry, GeoRangeRegion, GeoRangeDepartment, GeoRangeCustom:
		return true
	}
	return false
}

// UserKind categorizes platform users.
type UserKind string

const (
	UserKindSiae    UserKind = "SIAE"
	UserKindBuyer   UserKind = "BUYER"
	UserKindPartner UserKind = "PARTNER"
	UserKindAdmin   UserKind = "ADMIN"
)

func (k UserKind) String() string { return string(k) }

func (k UserKind) IsValid() bool {
	switch k {
	case UserKindSiae, UserKindBuyer, UserKindPartner, UserKindAdmin:
		return true
	}
	return false
}

// TenderKind is the type of a buyer request.
type TenderKind string

const (
	TenderKindQuote   TenderKind = "QUOTE"
	TenderKindTender  TenderKind = "TENDER"
	TenderKindProject TenderKind = "PROJ"
)

func (k TenderKind) String() string { return string(k) }

func (k TenderKind) IsValid() bool {
	switch k {
	case TenderKindQuote, TenderKindTender, TenderKindProject:
		return true
	}
	return false
}

// ResponseKind is how a buyer wants to be contacted about a tender.
type ResponseKind string

const (
	ResponseKindEmail    ResponseKind = "EMAIL"
	ResponseKindTel      ResponseKind = "TEL"
	ResponseKindExternal ResponseKind = "EXTERN"
)

func (k ResponseKind) String() string { return string(k) }

func (k ResponseKind) IsValid() bool {
	switch k {
	case ResponseKindEmail, ResponseKindTel, ResponseKindExternal:
		return true
	}
	return false
}

// PerimeterKind is the granularity of a geographic perimeter.
type PerimeterKind string

const (
	PerimeterKindCity       PerimeterKind = "CITY"
	PerimeterKindDepartment PerimeterKind = "DEPARTMENT"
	PerimeterKindRegion     PerimeterKind = "REGION"
)

func (k PerimeterKind) String() string { return string(k) }

func (k PerimeterKind) IsValid() bool {
	switch k {
	case PerimeterKindCity, PerimeterKindDepartment, PerimeterKindRegion:
		return true
	}
	return false
}
