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

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, company_id, number, type, status, third_party_id, issue_date, due_date, global_discount_rate, subtotal_ht, total_ht, total_vat, total_ttc, amount_paid, amount_due, reminder_count, converted_to_id, notes, created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_id, invoice_id, description, quantity, unit_price, discount_rate, vat_rate, subtotal, vat_amount, total`

const paymentColumns = `payment_id, invoice_id, amount, method, reference, date, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.Number,
		&m.Type,
		&m.Status,
		&m.ThirdPartyID,
		&m.IssueDate,
		&m.DueDate,
		&m.GlobalDiscountRate,
		&m.SubtotalHT,
		&m.TotalHT,
		&m.TotalVAT,
		&m.TotalTTC,
		&m.AmountPaid,
		&m.AmountDue,
		&m.ReminderCount,
		&m.ConvertedToID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice inserts an invoice header with its lines and VAT buckets in one
// transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertInvoiceHeader(ctx, tx, invoice); err != nil {
		return err
	}
	if err := insertInvoiceLines(ctx, tx, invoice.Lines); err != nil {
		return err
	}
	if err := insertInvoiceBuckets(ctx, tx, invoice.InvoiceID, invoice.VATBreakdown); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertInvoiceHeader(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.CompanyID,
		m.Number,
		m.Type,
		m.Status,
		m.ThirdPartyID,
		m.IssueDate,
		m.DueDate,
		m.GlobalDiscountRate,
		m.SubtotalHT,
		m.TotalHT,
		m.TotalVAT,
		m.TotalTTC,
		m.AmountPaid,
		m.AmountDue,
		m.ReminderCount,
		m.ConvertedToID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: document number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

func insertInvoiceLines(ctx context.Context, tx pgx.Tx, lines []domain.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO invoice_lines (` + invoiceLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelInvoiceLine(line)
		batch.Queue(query,
			ml.LineID,
			ml.InvoiceID,
			ml.Description,
			ml.Quantity,
			ml.UnitPrice,
			ml.DiscountRate,
			ml.VATRate,
			ml.Subtotal,
			ml.VATAmount,
			ml.Total,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save invoice lines: %w", err)
		}
	}
	return nil
}

func insertInvoiceBuckets(ctx context.Context, tx pgx.Tx, invoiceID string, buckets []domain.VATBucket) error {
	if len(buckets) == 0 {
		return nil
	}

	query := `
		INSERT INTO invoice_vat_buckets (invoice_id, rate, base, amount)
		VALUES ($1, $2, $3, $4);
	`
	batch := &pgx.Batch{}
	for _, bucket := range buckets {
		mb := mapping.ToModelVATBucket(invoiceID, bucket)
		batch.Queue(query, mb.InvoiceID, mb.Rate, mb.Base, mb.Amount)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range buckets {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save invoice VAT buckets: %w", err)
		}
	}
	return nil
}

// FindInvoiceByID retrieves an invoice with its lines, VAT buckets and payments.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	invoice := mapping.ToDomainInvoice(m)

	if invoice.Lines, err = r.findInvoiceLines(ctx, invoiceID); err != nil {
		return nil, err
	}
	if invoice.VATBreakdown, err = r.findInvoiceBuckets(ctx, invoiceID); err != nil {
		return nil, err
	}
	if invoice.Payments, err = r.findInvoicePayments(ctx, invoiceID); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *PgxInvoiceRepository) findInvoiceLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + ` FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_id;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice lines for %s: %w", invoiceID, err)
	}
	defer rows.Close()

	lines := []domain.InvoiceLine{}
	for rows.Next() {
		var ml models.InvoiceLine
		err := rows.Scan(
			&ml.LineID,
			&ml.InvoiceID,
			&ml.Description,
			&ml.Quantity,
			&ml.UnitPrice,
			&ml.DiscountRate,
			&ml.VATRate,
			&ml.Subtotal,
			&ml.VATAmount,
			&ml.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainInvoiceLine(ml))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", err)
	}
	return lines, nil
}

func (r *PgxInvoiceRepository) findInvoiceBuckets(ctx context.Context, invoiceID string) ([]domain.VATBucket, error) {
	query := `SELECT invoice_id, rate, base, amount FROM invoice_vat_buckets WHERE invoice_id = $1 ORDER BY rate;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query VAT buckets for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	buckets := []models.InvoiceVATBucket{}
	for rows.Next() {
		var mb models.InvoiceVATBucket
		if err := rows.Scan(&mb.InvoiceID, &mb.Rate, &mb.Base, &mb.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan VAT bucket row: %w", err)
		}
		buckets = append(buckets, mb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating VAT bucket rows: %w", err)
	}
	return mapping.ToDomainVATBuckets(buckets), nil
}

func (r *PgxInvoiceRepository) findInvoicePayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY date, payment_id;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var mp models.Payment
		err := rows.Scan(
			&mp.PaymentID,
			&mp.InvoiceID,
			&mp.Amount,
			&mp.Method,
			&mp.Reference,
			&mp.Date,
			&mp.CreatedAt,
			&mp.CreatedBy,
			&mp.LastUpdatedAt,
			&mp.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return mapping.ToDomainPayments(payments), nil
}

// ListInvoices retrieves a page of a company's invoice headers, newest first,
// optionally filtered by type and stored status.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, companyID string, typ *domain.InvoiceType, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY issue_date DESC, number DESC
		LIMIT $4 OFFSET $5;
	`
	var typeFilter, statusFilter *string
	if typ != nil {
		s := string(*typ)
		typeFilter = &s
	}
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	rows, err := r.Pool.Query(ctx, query, companyID, typeFilter, statusFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for company %s: %w", companyID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// ListUnsettledInvoicesDueBefore retrieves invoice headers past the cutoff
// that are neither settled nor cancelled. The status filter matches
// domain.Invoice.IsOverdue; only invoice-type documents carry a payment
// obligation. Paid/due totals live on the header so no line or payment
// loading is needed.
func (r *PgxInvoiceRepository) ListUnsettledInvoicesDueBefore(ctx context.Context, companyID string, cutoff time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1
		  AND due_date < $2
		  AND type IN ('INVOICE', 'PURCHASE_INVOICE')
		  AND status NOT IN ('PAID', 'CANCELLED')
		ORDER BY due_date;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled invoices for company %s: %w", companyID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// CountInvoicesForYear returns how many documents of a type the company
// issued in a calendar year.
func (r *PgxInvoiceRepository) CountInvoicesForYear(ctx context.Context, companyID string, typ domain.InvoiceType, year int) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM invoices
		WHERE company_id = $1 AND type = $2 AND EXTRACT(YEAR FROM issue_date) = $3;
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, companyID, string(typ), year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices for company %s: %w", companyID, err)
	}
	return count, nil
}

// UpdateInvoice replaces an invoice's header fields, lines and VAT buckets in
// one transaction.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateInvoiceHeader(ctx, tx, invoice); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear invoice lines for %s: %w", invoice.InvoiceID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_vat_buckets WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear invoice VAT buckets for %s: %w", invoice.InvoiceID, err)
	}
	if err := insertInvoiceLines(ctx, tx, invoice.Lines); err != nil {
		return err
	}
	if err := insertInvoiceBuckets(ctx, tx, invoice.InvoiceID, invoice.VATBreakdown); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func updateInvoiceHeader(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices
		SET status = $2, issue_date = $3, due_date = $4, global_discount_rate = $5,
		    subtotal_ht = $6, total_ht = $7, total_vat = $8, total_ttc = $9,
		    amount_paid = $10, amount_due = $11, notes = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.Status,
		m.IssueDate,
		m.DueDate,
		m.GlobalDiscountRate,
		m.SubtotalHT,
		m.TotalHT,
		m.TotalVAT,
		m.TotalTTC,
		m.AmountPaid,
		m.AmountDue,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateInvoiceStatus updates only the stored status and conversion link.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, convertedToID *string, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, converted_to_id = COALESCE($3, converted_to_id), last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), convertedToID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePayment appends a payment and persists the invoice's recomputed
// paid/due amounts and status in one transaction.
func (r *PgxInvoiceRepository) SavePayment(ctx context.Context, payment domain.Payment, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mp := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		mp.PaymentID,
		mp.InvoiceID,
		mp.Amount,
		mp.Method,
		mp.Reference,
		mp.Date,
		mp.CreatedAt,
		mp.CreatedBy,
		mp.LastUpdatedAt,
		mp.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment %s: %w", mp.PaymentID, err)
	}

	if err := updateInvoiceSettlement(ctx, tx, invoice); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeletePayment removes a payment and persists the invoice's recomputed
// paid/due amounts and status in one transaction.
func (r *PgxInvoiceRepository) DeletePayment(ctx context.Context, paymentID string, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := updateInvoiceSettlement(ctx, tx, invoice); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func updateInvoiceSettlement(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices
		SET status = $2, amount_paid = $3, amount_due = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query, m.InvoiceID, m.Status, m.AmountPaid, m.AmountDue, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update settlement of invoice %s: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementReminderCount bumps the reminder counter.
func (r *PgxInvoiceRepository) IncrementReminderCount(ctx context.Context, invoiceID string, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET reminder_count = reminder_count + 1, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to record reminder on invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
