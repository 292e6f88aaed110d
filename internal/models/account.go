package models

// Account is the row representation of a chart-of-accounts entry.
type Account struct {
	AccountID       string `db:"account_id"`
	CompanyID       string `db:"company_id"`
	Number          string `db:"number"`
	Label           string `db:"label"`
	Class           int    `db:"class"`
	AccountType     string `db:"account_type"`
	IsDetailAccount bool   `db:"is_detail_account"`
	IsCustom        bool   `db:"is_custom"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}
