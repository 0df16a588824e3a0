package domain

// Company is read-only here; the export serializer needs its tax id (RUC).
type Company struct {
	CompanyID int64  `json:"companyID"`
	Name      string `json:"name"`
	TaxID     string `json:"taxID"` // SUNAT RUC, 11 digits
}

// PlaceholderTaxID is emitted when a company has no tax id on file. The
// regulatory format requires the field, so absence degrades to this value
// instead of failing the export.
const PlaceholderTaxID = "00000000000"
