package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// JournalReader defines read operations for journal books.
type JournalReader interface {
	// FindJournalByID retrieves a journal book by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalByCode retrieves a journal book by its short code within a company.
	FindJournalByCode(ctx context.Context, companyID string, code string) (*domain.Journal, error)

	// ListJournals retrieves all journal books of a company.
	ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal books.
type JournalWriter interface {
	// SaveJournal persists a new journal book.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// SaveJournals persists a batch of journal books (company seeding).
	SaveJournals(ctx context.Context, journals []domain.Journal) error

	// NextEntryNumberInTx increments the journal's entry counter inside tx,
	// locking the row, and returns the new counter value.
	NextEntryNumberInTx(ctx context.Context, tx pgx.Tx, journalID string) (int64, error)
}

// JournalRepositoryFacade combines all journal-book repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
