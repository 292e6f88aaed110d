package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum accepted |total debit - total credit| for an
// entry to be considered balanced. Amounts are MAD with 2 decimals, so one
// centime of rounding slack is allowed.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// EntryLine is a single debit or credit movement on one detail account.
// Debit/Credit carry the original currency amount; DebitMAD/CreditMAD the
// converted amounts the ledger balances on. A line has either a nonzero debit
// or a nonzero credit, never both.
type EntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Label        string          `json:"label"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Currency     string          `json:"currency"` // ISO code, "MAD" for domestic lines
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	DebitMAD     decimal.Decimal `json:"debitMAD"`
	CreditMAD    decimal.Decimal `json:"creditMAD"`
}

// Entry is a journal entry: a dated set of lines that should balance.
// Entries are created as drafts; validation checks the double-entry invariant
// and account/period validity before the entry contributes to any report.
// Locking comes from period close and freezes the entry entirely.
type Entry struct {
	EntryID     string          `json:"entryID"`
	CompanyID   string          `json:"companyID"`
	JournalID   string          `json:"journalID"`
	EntryNumber string          `json:"entryNumber"` // e.g. "VTE000042"
	EntryDate   time.Time       `json:"entryDate"`
	PeriodID    string          `json:"periodID"`
	Reference   string          `json:"reference"` // Free-form piece reference
	Description string          `json:"description"`
	Lines       []EntryLine     `json:"lines"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`  // Sum of DebitMAD over lines
	TotalCredit decimal.Decimal `json:"totalCredit"` // Sum of CreditMAD over lines
	IsBalanced  bool            `json:"isBalanced"`
	IsValidated bool            `json:"isValidated"`
	IsLocked    bool            `json:"isLocked"`
	// ReversalOfEntryID links a reversal entry back to the entry it cancels.
	ReversalOfEntryID *string `json:"reversalOfEntryID,omitempty"`
	AuditFields
}
