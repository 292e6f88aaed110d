package domain

// Journal is a CGNC journal book (ventes, achats, banque...). Every entry
// belongs to exactly one journal and draws its human-readable number from the
// journal's counter.
type Journal struct {
	JournalID       string `json:"journalID"` // Primary Key (UUID)
	CompanyID       string `json:"companyID"`
	Code            string `json:"code"` // Short unique code, e.g. "VTE"
	Label           string `json:"label"`
	LastEntryNumber int64  `json:"lastEntryNumber"` // Monotonic, only ever increases
	AuditFields
}

// SeedJournal is one of the standard journal books created with a company.
type SeedJournal struct {
	Code  string
	Label string
}

// StandardJournals are the books seeded at company initialization.
var StandardJournals = []SeedJournal{
	{Code: "VTE", Label: "Journal des ventes"},
	{Code: "ACH", Label: "Journal des achats"},
	{Code: "BNQ", Label: "Journal de banque"},
	{Code: "CSE", Label: "Journal de caisse"},
	{Code: "OD", Label: "Opérations diverses"},
}
