package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
	"github.com/mizanpro/mizan_backend/internal/models"
	"github.com/mizanpro/mizan_backend/internal/utils/mapping"
)

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, company_id, code, label, last_entry_number, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.Code,
		&m.Label,
		&m.LastEntryNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal inserts a single journal book.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)

	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.JournalID,
		m.CompanyID,
		m.Code,
		m.Label,
		m.LastEntryNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save journal %s: %w", m.JournalID, err)
	}
	return nil
}

// SaveJournals inserts a batch of journal books (company seeding).
func (r *PgxJournalRepository) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	if len(journals) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, journal := range journals {
		m := mapping.ToModelJournal(journal)
		batch.Queue(query,
			m.JournalID,
			m.CompanyID,
			m.Code,
			m.Label,
			m.LastEntryNumber,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range journals {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: duplicate journal code in batch", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save journals batch: %w", err)
		}
	}
	return nil
}

// FindJournalByID retrieves a journal book by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournal(r.pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// FindJournalByCode retrieves a journal book by its short code within a company.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, companyID string, code string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE company_id = $1 AND code = $2;`

	m, err := scanJournal(r.pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal code %s: %w", code, err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals retrieves a company's journal books in code order.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE company_id = $1 ORDER BY code;`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for company %s: %w", companyID, err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

// NextEntryNumberInTx increments the journal's entry counter inside tx. The
// row lock from the UPDATE serializes concurrent entry creation on the same
// journal so no two entries can draw the same number.
func (r *PgxJournalRepository) NextEntryNumberInTx(ctx context.Context, tx pgx.Tx, journalID string) (int64, error) {
	query := `
		UPDATE journals
		SET last_entry_number = last_entry_number + 1
		WHERE journal_id = $1
		RETURNING last_entry_number;
	`
	var next int64
	if err := tx.QueryRow(ctx, query, journalID).Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to advance entry counter for journal %s: %w", journalID, err)
	}
	return next, nil
}
