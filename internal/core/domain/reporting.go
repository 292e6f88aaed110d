package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRow is one detail account's aggregate in the trial balance.
// The net movement lands on whichever closing side is positive.
type BalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
}

// Balance is the trial balance of a period, built from validated entries only.
type Balance struct {
	PeriodID           string          `json:"periodID"`
	Rows               []BalanceRow    `json:"rows"`
	GrandTotalDebit    decimal.Decimal `json:"grandTotalDebit"`
	GrandTotalCredit   decimal.Decimal `json:"grandTotalCredit"`
	GrandClosingDebit  decimal.Decimal `json:"grandClosingDebit"`
	GrandClosingCredit decimal.Decimal `json:"grandClosingCredit"`
	IsBalanced         bool            `json:"isBalanced"`
}

// LedgerLine is one movement in the general ledger view, with the running
// balance (debit - credit, cumulative in date order).
type LedgerLine struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"`
	Label          string          `json:"label"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedger is the flattened, date-ordered view of a period's validated
// entry lines, optionally restricted to one account.
type GeneralLedger struct {
	PeriodID    string          `json:"periodID"`
	AccountID   string          `json:"accountID,omitempty"`
	Lines       []LedgerLine    `json:"lines"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}
