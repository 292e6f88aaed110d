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

type PgxThirdPartyRepository struct {
	pool *pgxpool.Pool
}

func newPgxThirdPartyRepository(pool *pgxpool.Pool) portsrepo.ThirdPartyRepositoryFacade {
	return &PgxThirdPartyRepository{pool: pool}
}

var _ portsrepo.ThirdPartyRepositoryFacade = (*PgxThirdPartyRepository)(nil)

const thirdPartyColumns = `third_party_id, company_id, code, type, name, ice, if_number, rc, address, email, payment_terms, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanThirdParty(row pgx.Row) (models.ThirdParty, error) {
	var m models.ThirdParty
	err := row.Scan(
		&m.ThirdPartyID,
		&m.CompanyID,
		&m.Code,
		&m.Type,
		&m.Name,
		&m.ICE,
		&m.IF,
		&m.RC,
		&m.Address,
		&m.Email,
		&m.PaymentTerms,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveThirdParty inserts a new third party.
func (r *PgxThirdPartyRepository) SaveThirdParty(ctx context.Context, tp domain.ThirdParty) error {
	m := mapping.ToModelThirdParty(tp)

	query := `
		INSERT INTO third_parties (` + thirdPartyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ThirdPartyID,
		m.CompanyID,
		m.Code,
		m.Type,
		m.Name,
		m.ICE,
		m.IF,
		m.RC,
		m.Address,
		m.Email,
		m.PaymentTerms,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: third party code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save third party %s: %w", m.ThirdPartyID, err)
	}
	return nil
}

// FindThirdPartyByID retrieves a third party by its ID.
func (r *PgxThirdPartyRepository) FindThirdPartyByID(ctx context.Context, thirdPartyID string) (*domain.ThirdParty, error) {
	query := `SELECT ` + thirdPartyColumns + ` FROM third_parties WHERE third_party_id = $1;`

	m, err := scanThirdParty(r.pool.QueryRow(ctx, query, thirdPartyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find third party %s: %w", thirdPartyID, err)
	}
	tp := mapping.ToDomainThirdParty(m)
	return &tp, nil
}

// FindThirdPartyByCode retrieves a third party by its code within a company.
func (r *PgxThirdPartyRepository) FindThirdPartyByCode(ctx context.Context, companyID string, code string) (*domain.ThirdParty, error) {
	query := `SELECT ` + thirdPartyColumns + ` FROM third_parties WHERE company_id = $1 AND code = $2;`

	m, err := scanThirdParty(r.pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find third party code %s: %w", code, err)
	}
	tp := mapping.ToDomainThirdParty(m)
	return &tp, nil
}

// ListThirdParties retrieves a page of a company's third parties in code
// order, optionally filtered by type.
func (r *PgxThirdPartyRepository) ListThirdParties(ctx context.Context, companyID string, tpType *domain.ThirdPartyType, limit int, offset int) ([]domain.ThirdParty, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + thirdPartyColumns + `
		FROM third_parties
		WHERE company_id = $1 AND ($2::text IS NULL OR type = $2)
		ORDER BY code
		LIMIT $3 OFFSET $4;
	`
	var typeFilter *string
	if tpType != nil {
		s := string(*tpType)
		typeFilter = &s
	}

	rows, err := r.pool.Query(ctx, query, companyID, typeFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query third parties for company %s: %w", companyID, err)
	}
	defer rows.Close()

	parties := []domain.ThirdParty{}
	for rows.Next() {
		m, err := scanThirdParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan third party row: %w", err)
		}
		parties = append(parties, mapping.ToDomainThirdParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating third party rows: %w", err)
	}
	return parties, nil
}

// CountThirdParties returns how many third parties carry the given code prefix.
func (r *PgxThirdPartyRepository) CountThirdParties(ctx context.Context, companyID string, codePrefix string) (int64, error) {
	query := `SELECT COUNT(*) FROM third_parties WHERE company_id = $1 AND code LIKE $2 || '-%';`

	var count int64
	if err := r.pool.QueryRow(ctx, query, companyID, codePrefix).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count third parties for company %s: %w", companyID, err)
	}
	return count, nil
}

// UpdateThirdParty updates a third party's mutable fields. Type and code are
// immutable and never touched here.
func (r *PgxThirdPartyRepository) UpdateThirdParty(ctx context.Context, tp domain.ThirdParty) error {
	m := mapping.ToModelThirdParty(tp)

	query := `
		UPDATE third_parties
		SET name = $2, ice = $3, if_number = $4, rc = $5, address = $6, email = $7,
		    payment_terms = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE third_party_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ThirdPartyID,
		m.Name,
		m.ICE,
		m.IF,
		m.RC,
		m.Address,
		m.Email,
		m.PaymentTerms,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update third party %s: %w", m.ThirdPartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateThirdParty marks a third party inactive.
func (r *PgxThirdPartyRepository) DeactivateThirdParty(ctx context.Context, thirdPartyID string, userID string, now time.Time) error {
	query := `
		UPDATE third_parties
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE third_party_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, thirdPartyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate third party %s: %w", thirdPartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
