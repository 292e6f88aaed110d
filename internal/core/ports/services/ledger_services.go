package services

import (
	"context"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries.
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.Entry, error)

	// ListEntries retrieves a paginated list of a company's entries.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListJournals retrieves the company's journal books.
	ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error)
}

// EntryWriterSvc defines write operations for journal entries.
type EntryWriterSvc interface {
	// CreateEntry persists a draft entry: totals and the balanced flag are
	// computed, the entry number is drawn from the journal counter, but an
	// unbalanced entry is NOT rejected; validation is the gate.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error)

	// UpdateEntry replaces a draft entry's lines and metadata.
	UpdateEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.Entry, error)

	// ValidateEntry re-checks the entry against current accounts and period
	// state and marks it validated on success. On failure the issue list
	// describes every failed check.
	ValidateEntry(ctx context.Context, companyID string, entryID string, userID string) ([]domain.ValidationIssue, error)

	// ReverseEntry creates a validated counter-entry cancelling a validated one.
	ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.Entry, error)

	// DeleteEntry removes a draft (never a validated or locked) entry.
	DeleteEntry(ctx context.Context, companyID string, entryID string, userID string) error
}

// LedgerReportingSvc derives the period reports from validated entries.
type LedgerReportingSvc interface {
	// GetBalance computes the trial balance of a period.
	GetBalance(ctx context.Context, companyID string, periodID string) (*domain.Balance, error)

	// GetGeneralLedger flattens a period's validated lines in date order with
	// a running balance, optionally restricted to one account.
	GetGeneralLedger(ctx context.Context, companyID string, periodID string, accountID *string) (*domain.GeneralLedger, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
	LedgerReportingSvc
}
