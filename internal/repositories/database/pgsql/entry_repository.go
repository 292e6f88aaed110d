package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
	"github.com/mizanpro/mizan_backend/internal/models"
	"github.com/mizanpro/mizan_backend/internal/utils/mapping"
	"github.com/mizanpro/mizan_backend/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, company_id, journal_id, entry_number, entry_date, period_id, reference, description, total_debit, total_credit, is_balanced, is_validated, is_locked, reversal_of_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const entryLineColumns = `line_id, entry_id, account_id, label, debit, credit, currency, exchange_rate, debit_mad, credit_mad`

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.JournalID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.PeriodID,
		&m.Reference,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsBalanced,
		&m.IsValidated,
		&m.IsLocked,
		&m.ReversalOfEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanEntryLine(row pgx.Row) (models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Label,
		&m.Debit,
		&m.Credit,
		&m.Currency,
		&m.ExchangeRate,
		&m.DebitMAD,
		&m.CreditMAD,
	)
	return m, err
}

// SaveEntryInTx inserts an entry header and its lines inside tx, so the
// insert commits together with the journal counter increment that produced
// the entry number.
func (r *PgxEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)

	headerQuery := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.CompanyID,
		m.JournalID,
		m.EntryNumber,
		m.EntryDate,
		m.PeriodID,
		m.Reference,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.IsBalanced,
		m.IsValidated,
		m.IsLocked,
		m.ReversalOfEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to save entry %s: %w", m.EntryID, err)
	}

	return insertEntryLines(ctx, tx, entry.Lines)
}

func insertEntryLines(ctx context.Context, tx pgx.Tx, lines []domain.EntryLine) error {
	if len(lines) == 0 {
		return nil
	}

	lineQuery := `
		INSERT INTO entry_lines (` + entryLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelEntryLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.Label,
			ml.Debit,
			ml.Credit,
			ml.Currency,
			ml.ExchangeRate,
			ml.DebitMAD,
			ml.CreditMAD,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save entry lines: %w", err)
		}
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainEntry(m)
	lines, err := r.findLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// findLinesByEntryIDs loads the lines of several entries in one query, keyed
// by entry ID.
func (r *PgxEntryRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.EntryLine{}, nil
	}

	query := `SELECT ` + entryLineColumns + ` FROM entry_lines WHERE entry_id = ANY($1) ORDER BY line_id;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines: %w", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]domain.EntryLine)
	for rows.Next() {
		ml, err := scanEntryLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line row: %w", err)
		}
		linesByEntry[ml.EntryID] = append(linesByEntry[ml.EntryID], mapping.ToDomainEntryLine(ml))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry line rows: %w", err)
	}
	return linesByEntry, nil
}

// ListEntriesByPeriod retrieves a period's entries with their lines, ordered
// by entry date then number.
func (r *PgxEntryRepository) ListEntriesByPeriod(ctx context.Context, periodID string, validatedOnly bool) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE period_id = $1 AND ($2 = FALSE OR is_validated = TRUE)
		ORDER BY entry_date, entry_number;
	`
	rows, err := r.Pool.Query(ctx, query, periodID, validatedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for period %s: %w", periodID, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	entryIDs := []string{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
		entryIDs = append(entryIDs, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}

// ListEntries retrieves a page of a company's entry headers, newest first,
// resuming from an opaque cursor token.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		cursor = &c
	}

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE company_id = $1
		  AND ($2::timestamptz IS NULL OR (entry_date, entry_id) < ($2, $3))
		ORDER BY entry_date DESC, entry_id DESC
		LIMIT $4;
	`
	var lastDate interface{}
	var lastID interface{}
	if cursor != nil {
		lastDate = cursor.LastDate
		lastID = cursor.LastID
	}

	// Fetch one extra row to know whether another page exists.
	rows, err := r.Pool.Query(ctx, query, companyID, lastDate, lastID, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for company %s: %w", companyID, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		encoded, err := pagination.EncodeToken(pagination.Cursor{LastDate: last.EntryDate, LastID: last.EntryID})
		if err != nil {
			return nil, nil, err
		}
		token = &encoded
	}
	return entries, token, nil
}

// UpdateEntry replaces a draft entry's header fields and lines atomically.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEntry(entry)
	headerQuery := `
		UPDATE entries
		SET entry_date = $2, period_id = $3, reference = $4, description = $5,
		    total_debit = $6, total_credit = $7, is_balanced = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.EntryDate,
		m.PeriodID,
		m.Reference,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.IsBalanced,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to clear entry lines for %s: %w", m.EntryID, err)
	}
	if err := insertEntryLines(ctx, tx, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkEntryValidated flips the validated flag.
func (r *PgxEntryRepository) MarkEntryValidated(ctx context.Context, entryID string, userID string, now time.Time) error {
	query := `
		UPDATE entries
		SET is_validated = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s validated: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LockEntriesByPeriod locks every entry of a period and returns how many rows
// were affected.
func (r *PgxEntryRepository) LockEntriesByPeriod(ctx context.Context, periodID string, userID string, now time.Time) (int64, error) {
	query := `
		UPDATE entries
		SET is_locked = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE period_id = $1 AND is_locked = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock entries for period %s: %w", periodID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteEntry removes an entry and its lines. Lines go first to satisfy the
// foreign key.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete entry lines for %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
