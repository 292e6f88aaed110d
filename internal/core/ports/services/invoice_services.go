package services

import (
	"context"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with lines and payments.
	GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of a company's invoices.
	ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)

	// GetOverdueInvoices retrieves invoices past their due date that are
	// neither paid nor cancelled, each with its derived aging level.
	GetOverdueInvoices(ctx context.Context, companyID string) ([]dto.OverdueInvoice, error)

	// GetOverdueInvoicesByLevel restricts GetOverdueInvoices to one aging level.
	GetOverdueInvoicesByLevel(ctx context.Context, companyID string, level domain.OverdueLevel) ([]dto.OverdueInvoice, error)
}

// InvoiceWriterSvc defines write operations for invoices.
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new document with computed lines and totals.
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoice replaces a draft invoice's lines/fields and recomputes
	// totals and amount due.
	UpdateInvoice(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// ChangeInvoiceStatus applies a caller-driven status transition.
	ChangeInvoiceStatus(ctx context.Context, companyID string, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error)

	// AddPayment records a payment and recomputes amountPaid/amountDue and the
	// derived status (PAID / PARTIALLY_PAID).
	AddPayment(ctx context.Context, companyID string, invoiceID string, req dto.AddPaymentRequest, userID string) (*domain.Invoice, error)

	// DeletePayment removes a payment and recomputes the invoice's state.
	DeletePayment(ctx context.Context, companyID string, invoiceID string, paymentID string, userID string) (*domain.Invoice, error)

	// ConvertQuoteToInvoice clones a quote into a new draft invoice and marks
	// the quote CONVERTED. One-way.
	ConvertQuoteToInvoice(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Invoice, error)

	// RecordReminder bumps the reminder counter of an overdue invoice.
	RecordReminder(ctx context.Context, companyID string, invoiceID string, userID string) error
}

// InvoiceSvcFacade combines all invoicing service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
