package domain

// Company is the accounting entity everything else hangs off. Creating a
// company seeds the CGNC chart and the standard journal books.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	ICE       string `json:"ice"` // Identifiant Commun de l'Entreprise, 15 digits
	IF        string `json:"if"`  // Identifiant Fiscal
	RC        string `json:"rc"`  // Registre de Commerce
	Address   string `json:"address"`
	City      string `json:"city"`
	AuditFields
}
