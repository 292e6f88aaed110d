package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the row representation of an accounting entry header.
type Entry struct {
	EntryID           string          `db:"entry_id"`
	CompanyID         string          `db:"company_id"`
	JournalID         string          `db:"journal_id"`
	EntryNumber       string          `db:"entry_number"`
	EntryDate         time.Time       `db:"entry_date"`
	PeriodID          string          `db:"period_id"`
	Reference         string          `db:"reference"`
	Description       string          `db:"description"`
	TotalDebit        decimal.Decimal `db:"total_debit"`
	TotalCredit       decimal.Decimal `db:"total_credit"`
	IsBalanced        bool            `db:"is_balanced"`
	IsValidated       bool            `db:"is_validated"`
	IsLocked          bool            `db:"is_locked"`
	ReversalOfEntryID *string         `db:"reversal_of_entry_id"`
	AuditFields
}

// EntryLine is the row representation of one debit or credit line.
type EntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	Label        string          `db:"label"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	Currency     string          `db:"currency"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	DebitMAD     decimal.Decimal `db:"debit_mad"`
	CreditMAD    decimal.Decimal `db:"credit_mad"`
}
