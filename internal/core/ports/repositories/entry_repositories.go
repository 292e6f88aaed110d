package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// EntryReader defines read operations for journal entries.
type EntryReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntriesByPeriod retrieves entries of a period, validated only when
	// validatedOnly is set, ordered by entry date.
	ListEntriesByPeriod(ctx context.Context, periodID string, validatedOnly bool) ([]domain.Entry, error)

	// ListEntries retrieves a paginated list of a company's entries using an
	// opaque cursor token.
	ListEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// SaveEntryInTx persists an entry and its lines inside tx, so the insert
	// commits together with the journal counter increment that produced the
	// entry number.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error

	// UpdateEntry replaces a draft entry's mutable fields and lines.
	UpdateEntry(ctx context.Context, entry domain.Entry) error

	// MarkEntryValidated flips the validated flag after a successful check.
	MarkEntryValidated(ctx context.Context, entryID string, userID string, now time.Time) error

	// LockEntriesByPeriod locks every entry of a period (period close).
	LockEntriesByPeriod(ctx context.Context, periodID string, userID string, now time.Time) (int64, error)

	// DeleteEntry removes a draft entry and its lines.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends the facade with transaction capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
