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
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const fiscalYearColumns = `fiscal_year_id, company_id, label, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

const periodColumns = `period_id, fiscal_year_id, company_id, label, start_date, end_date, is_open, is_closed, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalYear(row pgx.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.CompanyID,
		&m.Label,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPeriod(row pgx.Row) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.FiscalYearID,
		&m.CompanyID,
		&m.Label,
		&m.StartDate,
		&m.EndDate,
		&m.IsOpen,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveFiscalYear persists a fiscal year and its generated periods in one
// transaction.
func (r *PgxPeriodRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	my := mapping.ToModelFiscalYear(year)
	yearQuery := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, yearQuery,
		my.FiscalYearID,
		my.CompanyID,
		my.Label,
		my.StartDate,
		my.EndDate,
		my.IsClosed,
		my.CreatedAt,
		my.CreatedBy,
		my.LastUpdatedAt,
		my.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fiscal year %s already exists", apperrors.ErrDuplicate, my.Label)
		}
		return fmt.Errorf("failed to save fiscal year %s: %w", my.FiscalYearID, err)
	}

	periodQuery := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, period := range periods {
		mp := mapping.ToModelPeriod(period)
		batch.Queue(periodQuery,
			mp.PeriodID,
			mp.FiscalYearID,
			mp.CompanyID,
			mp.Label,
			mp.StartDate,
			mp.EndDate,
			mp.IsOpen,
			mp.IsClosed,
			mp.CreatedAt,
			mp.CreatedBy,
			mp.LastUpdatedAt,
			mp.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range periods {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to save accounting periods: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to flush accounting periods batch: %w", err)
	}
	return r.Commit(ctx, tx)
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxPeriodRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	year := mapping.ToDomainFiscalYear(m)
	return &year, nil
}

// FindPeriodByID retrieves an accounting period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// FindPeriodByDate retrieves the period whose range contains the date.
func (r *PgxPeriodRepository) FindPeriodByDate(ctx context.Context, companyID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, companyID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period containing %s: %w", date.Format("2006-01-02"), err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ListFiscalYears retrieves a company's fiscal years, newest first.
func (r *PgxPeriodRepository) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE company_id = $1 ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal years for company %s: %w", companyID, err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
		}
		years = append(years, mapping.ToDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal year rows: %w", err)
	}
	return years, nil
}

// ListPeriods retrieves a fiscal year's periods in date order.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE fiscal_year_id = $1 ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for fiscal year %s: %w", fiscalYearID, err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return periods, nil
}

// UpdatePeriod updates a period's open/closed flags.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)

	query := `
		UPDATE accounting_periods
		SET is_open = $2, is_closed = $3, last_updated_at = $4, last_updated_by = $5
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.PeriodID, m.IsOpen, m.IsClosed, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateFiscalYear updates a fiscal year's closed flag.
func (r *PgxPeriodRepository) UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)

	query := `
		UPDATE fiscal_years
		SET is_closed = $2, last_updated_at = $3, last_updated_by = $4
		WHERE fiscal_year_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.FiscalYearID, m.IsClosed, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update fiscal year %s: %w", m.FiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
