package domain

// ThirdPartyType distinguishes customers from suppliers; BOTH covers entities
// the company both sells to and buys from.
type ThirdPartyType string

const (
	Client   ThirdPartyType = "CLIENT"
	Supplier ThirdPartyType = "SUPPLIER"
	Both     ThirdPartyType = "BOTH"
)

// ThirdParty is a customer or supplier with its Moroccan legal identifiers.
type ThirdParty struct {
	ThirdPartyID string         `json:"thirdPartyID"`
	CompanyID    string         `json:"companyID"`
	Type         ThirdPartyType `json:"type"`
	Code         string         `json:"code"` // Unique per company, e.g. "CLI-0001"
	Name         string         `json:"name"`
	ICE          string         `json:"ice"`
	IF           string         `json:"if"`
	RC           string         `json:"rc"`
	Address      string         `json:"address"`
	Email        string         `json:"email"`
	PaymentTerms int            `json:"paymentTerms"` // Days until an invoice falls due
	IsActive     bool           `json:"isActive"`
	AuditFields
}
