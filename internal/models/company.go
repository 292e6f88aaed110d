package models

// Company is the row representation of a company and its Moroccan
// fiscal identifiers (ICE, IF, RC).
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	ICE       string `db:"ice"`
	IF        string `db:"if_number"`
	RC        string `db:"rc"`
	Address   string `db:"address"`
	City      string `db:"city"`
	AuditFields
}
