package models

// ThirdParty is the row representation of a client or supplier.
type ThirdParty struct {
	ThirdPartyID string `db:"third_party_id"`
	CompanyID    string `db:"company_id"`
	Code         string `db:"code"`
	Type         string `db:"type"`
	Name         string `db:"name"`
	ICE          string `db:"ice"`
	IF           string `db:"if_number"`
	RC           string `db:"rc"`
	Address      string `db:"address"`
	Email        string `db:"email"`
	PaymentTerms int    `db:"payment_terms"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
