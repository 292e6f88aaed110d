package models

import "time"

// FiscalYear is the row representation of an accounting exercise.
type FiscalYear struct {
	FiscalYearID string    `db:"fiscal_year_id"`
	CompanyID    string    `db:"company_id"`
	Label        string    `db:"label"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	IsClosed     bool      `db:"is_closed"`
	AuditFields
}

// AccountingPeriod is the row representation of a monthly period.
type AccountingPeriod struct {
	PeriodID     string    `db:"period_id"`
	FiscalYearID string    `db:"fiscal_year_id"`
	CompanyID    string    `db:"company_id"`
	Label        string    `db:"label"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	IsOpen       bool      `db:"is_open"`
	IsClosed     bool      `db:"is_closed"`
	AuditFields
}
