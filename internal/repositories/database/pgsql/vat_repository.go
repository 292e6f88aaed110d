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

type PgxVATRepository struct {
	BaseRepository
}

func newPgxVATRepository(pool *pgxpool.Pool) portsrepo.VATRepositoryFacade {
	return &PgxVATRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VATRepositoryFacade = (*PgxVATRepository)(nil)

const vatLineColumns = `vat_line_id, company_id, type, rate, base_amount, vat_amount, deduction_rate, document_date, document_ref, invoice_id, created_at, created_by, last_updated_at, last_updated_by`

const declarationColumns = `declaration_id, company_id, label, regime, start_date, end_date, status, locked, total_collected_vat, total_deductible_vat, total_adjustments, net_vat, vat_credit, vat_to_pay, created_at, created_by, last_updated_at, last_updated_by`

const adjustmentColumns = `adjustment_id, declaration_id, label, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanVATLine(row pgx.Row) (models.VATLine, error) {
	var m models.VATLine
	err := row.Scan(
		&m.VATLineID,
		&m.CompanyID,
		&m.Type,
		&m.Rate,
		&m.BaseAmount,
		&m.VATAmount,
		&m.DeductionRate,
		&m.DocumentDate,
		&m.DocumentRef,
		&m.InvoiceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanDeclaration(row pgx.Row) (models.VATDeclaration, error) {
	var m models.VATDeclaration
	err := row.Scan(
		&m.DeclarationID,
		&m.CompanyID,
		&m.Label,
		&m.Regime,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.Locked,
		&m.TotalCollectedVAT,
		&m.TotalDeductibleVAT,
		&m.TotalAdjustments,
		&m.NetVAT,
		&m.VATCredit,
		&m.VATToPay,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveVATLine inserts a collected or deductible line.
func (r *PgxVATRepository) SaveVATLine(ctx context.Context, line domain.VATLine) error {
	m := mapping.ToModelVATLine(line)

	query := `
		INSERT INTO vat_lines (` + vatLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VATLineID,
		m.CompanyID,
		m.Type,
		m.Rate,
		m.BaseAmount,
		m.VATAmount,
		m.DeductionRate,
		m.DocumentDate,
		m.DocumentRef,
		m.InvoiceID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save VAT line %s: %w", m.VATLineID, err)
	}
	return nil
}

// DeleteVATLine removes a VAT line.
func (r *PgxVATRepository) DeleteVATLine(ctx context.Context, vatLineID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM vat_lines WHERE vat_line_id = $1;`, vatLineID)
	if err != nil {
		return fmt.Errorf("failed to delete VAT line %s: %w", vatLineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListVATLinesInRange retrieves VAT lines whose document date falls in
// [start, end], oldest first.
func (r *PgxVATRepository) ListVATLinesInRange(ctx context.Context, companyID string, start, end time.Time) ([]domain.VATLine, error) {
	query := `
		SELECT ` + vatLineColumns + `
		FROM vat_lines
		WHERE company_id = $1 AND document_date >= $2 AND document_date <= $3
		ORDER BY document_date, vat_line_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query VAT lines for company %s: %w", companyID, err)
	}
	defer rows.Close()

	lines := []domain.VATLine{}
	for rows.Next() {
		m, err := scanVATLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan VAT line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainVATLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating VAT line rows: %w", err)
	}
	return lines, nil
}

// SaveDeclaration inserts a new declaration header.
func (r *PgxVATRepository) SaveDeclaration(ctx context.Context, decl domain.VATDeclaration) error {
	m := mapping.ToModelVATDeclaration(decl)

	query := `
		INSERT INTO vat_declarations (` + declarationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DeclarationID,
		m.CompanyID,
		m.Label,
		m.Regime,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.Locked,
		m.TotalCollectedVAT,
		m.TotalDeductibleVAT,
		m.TotalAdjustments,
		m.NetVAT,
		m.VATCredit,
		m.VATToPay,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: declaration %s already exists", apperrors.ErrDuplicate, m.Label)
		}
		return fmt.Errorf("failed to save declaration %s: %w", m.DeclarationID, err)
	}
	return nil
}

// FindDeclarationByID retrieves a declaration with its per-rate buckets.
func (r *PgxVATRepository) FindDeclarationByID(ctx context.Context, declarationID string) (*domain.VATDeclaration, error) {
	query := `SELECT ` + declarationColumns + ` FROM vat_declarations WHERE declaration_id = $1;`

	m, err := scanDeclaration(r.Pool.QueryRow(ctx, query, declarationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find declaration %s: %w", declarationID, err)
	}
	decl := mapping.ToDomainVATDeclaration(m)

	buckets, err := r.findDeclarationBuckets(ctx, declarationID)
	if err != nil {
		return nil, err
	}
	mapping.ApplyDeclarationBuckets(&decl, buckets)
	return &decl, nil
}

func (r *PgxVATRepository) findDeclarationBuckets(ctx context.Context, declarationID string) ([]models.VATDeclarationBucket, error) {
	query := `
		SELECT declaration_id, direction, rate, base, vat_amount
		FROM vat_declaration_buckets
		WHERE declaration_id = $1
		ORDER BY direction, rate;
	`
	rows, err := r.Pool.Query(ctx, query, declarationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query buckets for declaration %s: %w", declarationID, err)
	}
	defer rows.Close()

	buckets := []models.VATDeclarationBucket{}
	for rows.Next() {
		var mb models.VATDeclarationBucket
		if err := rows.Scan(&mb.DeclarationID, &mb.Direction, &mb.Rate, &mb.Base, &mb.VATAmount); err != nil {
			return nil, fmt.Errorf("failed to scan declaration bucket row: %w", err)
		}
		buckets = append(buckets, mb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating declaration bucket rows: %w", err)
	}
	return buckets, nil
}

// ListDeclarations retrieves a company's declaration headers, newest first.
func (r *PgxVATRepository) ListDeclarations(ctx context.Context, companyID string) ([]domain.VATDeclaration, error) {
	query := `SELECT ` + declarationColumns + ` FROM vat_declarations WHERE company_id = $1 ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query declarations for company %s: %w", companyID, err)
	}
	defer rows.Close()

	decls := []domain.VATDeclaration{}
	for rows.Next() {
		m, err := scanDeclaration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan declaration row: %w", err)
		}
		decls = append(decls, mapping.ToDomainVATDeclaration(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating declaration rows: %w", err)
	}
	return decls, nil
}

// FindPrecedingDeclaration retrieves the declaration whose period ends last
// before the given start date.
func (r *PgxVATRepository) FindPrecedingDeclaration(ctx context.Context, companyID string, before time.Time) (*domain.VATDeclaration, error) {
	query := `
		SELECT ` + declarationColumns + `
		FROM vat_declarations
		WHERE company_id = $1 AND end_date < $2
		ORDER BY end_date DESC
		LIMIT 1;
	`
	m, err := scanDeclaration(r.Pool.QueryRow(ctx, query, companyID, before))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find preceding declaration for company %s: %w", companyID, err)
	}
	decl := mapping.ToDomainVATDeclaration(m)
	return &decl, nil
}

// UpdateDeclaration replaces a declaration's computed totals, status and lock
// flag, and rewrites its per-rate buckets, in one transaction.
func (r *PgxVATRepository) UpdateDeclaration(ctx context.Context, decl domain.VATDeclaration) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelVATDeclaration(decl)
	query := `
		UPDATE vat_declarations
		SET status = $2, locked = $3, total_collected_vat = $4, total_deductible_vat = $5,
		    total_adjustments = $6, net_vat = $7, vat_credit = $8, vat_to_pay = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE declaration_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.DeclarationID,
		m.Status,
		m.Locked,
		m.TotalCollectedVAT,
		m.TotalDeductibleVAT,
		m.TotalAdjustments,
		m.NetVAT,
		m.VATCredit,
		m.VATToPay,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update declaration %s: %w", m.DeclarationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM vat_declaration_buckets WHERE declaration_id = $1;`, m.DeclarationID); err != nil {
		return fmt.Errorf("failed to clear buckets for declaration %s: %w", m.DeclarationID, err)
	}

	buckets := mapping.ToModelDeclarationBuckets(decl)
	if len(buckets) > 0 {
		bucketQuery := `
			INSERT INTO vat_declaration_buckets (declaration_id, direction, rate, base, vat_amount)
			VALUES ($1, $2, $3, $4, $5);
		`
		batch := &pgx.Batch{}
		for _, b := range buckets {
			batch.Queue(bucketQuery, b.DeclarationID, b.Direction, b.Rate, b.Base, b.VATAmount)
		}
		results := tx.SendBatch(ctx, batch)
		for range buckets {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to save declaration buckets: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to flush declaration buckets batch: %w", err)
		}
	}
	return r.Commit(ctx, tx)
}

// SaveAdjustment inserts a manual correction.
func (r *PgxVATRepository) SaveAdjustment(ctx context.Context, adj domain.VATAdjustment) error {
	m := mapping.ToModelVATAdjustment(adj)

	query := `
		INSERT INTO vat_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AdjustmentID,
		m.DeclarationID,
		m.Label,
		m.Amount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save adjustment %s: %w", m.AdjustmentID, err)
	}
	return nil
}

// ListAdjustments retrieves a declaration's adjustments, oldest first.
func (r *PgxVATRepository) ListAdjustments(ctx context.Context, declarationID string) ([]domain.VATAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM vat_adjustments WHERE declaration_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, declarationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments for declaration %s: %w", declarationID, err)
	}
	defer rows.Close()

	adjustments := []domain.VATAdjustment{}
	for rows.Next() {
		var m models.VATAdjustment
		err := rows.Scan(
			&m.AdjustmentID,
			&m.DeclarationID,
			&m.Label,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row: %w", err)
		}
		adjustments = append(adjustments, mapping.ToDomainVATAdjustment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment rows: %w", err)
	}
	return adjustments, nil
}

// DeleteAdjustment removes an adjustment.
func (r *PgxVATRepository) DeleteAdjustment(ctx context.Context, adjustmentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM vat_adjustments WHERE adjustment_id = $1;`, adjustmentID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment %s: %w", adjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
