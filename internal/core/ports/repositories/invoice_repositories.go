package repositories

import (
	"context"
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoices and their payments.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines and payments.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of a company's invoices,
	// optionally filtered by type and stored status.
	ListInvoices(ctx context.Context, companyID string, typ *domain.InvoiceType, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error)

	// ListUnsettledInvoicesDueBefore retrieves invoices with dueDate before
	// the cutoff whose stored status is neither PAID nor CANCELLED. Lines are
	// not loaded; payments totals are.
	ListUnsettledInvoicesDueBefore(ctx context.Context, companyID string, cutoff time.Time) ([]domain.Invoice, error)

	// CountInvoicesForYear returns how many documents of the given type the
	// company issued in a calendar year (number generation).
	CountInvoicesForYear(ctx context.Context, companyID string, typ domain.InvoiceType, year int) (int64, error)
}

// InvoiceWriter defines write operations for invoices and their payments.
type InvoiceWriter interface {
	// SaveInvoice persists an invoice and its lines atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice replaces an invoice's mutable fields, lines and totals.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus updates only the stored status (and conversion link).
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, convertedToID *string, userID string, now time.Time) error

	// SavePayment appends a payment and persists the invoice's recomputed
	// paid/due amounts and status atomically.
	SavePayment(ctx context.Context, payment domain.Payment, invoice domain.Invoice) error

	// DeletePayment removes a payment and persists the invoice's recomputed
	// paid/due amounts and status atomically.
	DeletePayment(ctx context.Context, paymentID string, invoice domain.Invoice) error

	// IncrementReminderCount bumps the reminder counter of an overdue invoice.
	IncrementReminderCount(ctx context.Context, invoiceID string, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
