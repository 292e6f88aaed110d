package domain

import "time"

// FiscalYear is a company's accounting exercise, subdivided into 12 monthly
// periods generated when the year is created.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"`
	CompanyID    string    `json:"companyID"`
	Label        string    `json:"label"` // e.g. "Exercice 2026"
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
	AuditFields
}

// AccountingPeriod is one month of a fiscal year. Entries may only be created
// or edited while their period is open; closing a period locks its entries.
type AccountingPeriod struct {
	PeriodID     string    `json:"periodID"`
	FiscalYearID string    `json:"fiscalYearID"`
	CompanyID    string    `json:"companyID"`
	Label        string    `json:"label"` // e.g. "2026-01"
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsOpen       bool      `json:"isOpen"`
	IsClosed     bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether d falls within the period (inclusive bounds).
func (p AccountingPeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}
