package models

// Journal is the row representation of a journal book (VTE, ACH, BNQ...).
// LastEntryNumber backs the per-journal sequential entry numbering.
type Journal struct {
	JournalID       string `db:"journal_id"`
	CompanyID       string `db:"company_id"`
	Code            string `db:"code"`
	Label           string `db:"label"`
	LastEntryNumber int64  `db:"last_entry_number"`
	AuditFields
}
