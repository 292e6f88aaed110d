package dto

import (
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one movement of a new or updated entry. A line carries
// either a debit or a credit, never both; the service enforces it.
type EntryLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Label        string           `json:"label"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	Currency     string           `json:"currency"` // Defaults to MAD
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
}

// CreateEntryRequest defines the data needed to create a draft entry.
type CreateEntryRequest struct {
	JournalID   string             `json:"journalID" binding:"required"`
	EntryDate   time.Time          `json:"entryDate" binding:"required"`
	Reference   string             `json:"reference"`
	Description string             `json:"description" binding:"required"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest replaces a draft entry's mutable data.
type UpdateEntryRequest struct {
	EntryDate   *time.Time         `json:"entryDate"`
	Reference   *string            `json:"reference"`
	Description *string            `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// EntryLineResponse mirrors domain.EntryLine.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Label        string          `json:"label"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	DebitMAD     decimal.Decimal `json:"debitMAD"`
	CreditMAD    decimal.Decimal `json:"creditMAD"`
}

// EntryResponse mirrors domain.Entry.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	JournalID         string              `json:"journalID"`
	EntryNumber       string              `json:"entryNumber"`
	EntryDate         time.Time           `json:"entryDate"`
	PeriodID          string              `json:"periodID"`
	Reference         string              `json:"reference"`
	Description       string              `json:"description"`
	Lines             []EntryLineResponse `json:"lines,omitempty"`
	TotalDebit        decimal.Decimal     `json:"totalDebit"`
	TotalCredit       decimal.Decimal     `json:"totalCredit"`
	IsBalanced        bool                `json:"isBalanced"`
	IsValidated       bool                `json:"isValidated"`
	IsLocked          bool                `json:"isLocked"`
	ReversalOfEntryID *string             `json:"reversalOfEntryID,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}

// ValidationResultResponse reports the outcome of validating an entry.
type ValidationResultResponse struct {
	EntryID string                   `json:"entryID"`
	Valid   bool                     `json:"valid"`
	Issues  []domain.ValidationIssue `json:"issues,omitempty"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the continuation token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.Entry to its response DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			Label:        l.Label,
			Debit:        l.Debit,
			Credit:       l.Credit,
			Currency:     l.Currency,
			ExchangeRate: l.ExchangeRate,
			DebitMAD:     l.DebitMAD,
			CreditMAD:    l.CreditMAD,
		}
	}
	return EntryResponse{
		EntryID:           e.EntryID,
		JournalID:         e.JournalID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		PeriodID:          e.PeriodID,
		Reference:         e.Reference,
		Description:       e.Description,
		Lines:             lines,
		TotalDebit:        e.TotalDebit,
		TotalCredit:       e.TotalCredit,
		IsBalanced:        e.IsBalanced,
		IsValidated:       e.IsValidated,
		IsLocked:          e.IsLocked,
		ReversalOfEntryID: e.ReversalOfEntryID,
		CreatedAt:         e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}
