package dto

import (
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one billed item of a new or updated document.
type InvoiceLineRequest struct {
	Description  string          `json:"description" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required,gte=0"`
	DiscountRate decimal.Decimal `json:"discountRate"`
	VATRate      decimal.Decimal `json:"vatRate"`
}

// CreateInvoiceRequest defines the data needed to create a document. DueDate
// defaults to IssueDate plus the third party's payment terms when omitted.
type CreateInvoiceRequest struct {
	Type               domain.InvoiceType   `json:"type" binding:"required,oneof=INVOICE QUOTE CREDIT_NOTE PROFORMA PURCHASE_INVOICE DELIVERY_NOTE"`
	ThirdPartyID       string               `json:"thirdPartyID" binding:"required"`
	IssueDate          time.Time            `json:"issueDate" binding:"required"`
	DueDate            *time.Time           `json:"dueDate"`
	Lines              []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
	GlobalDiscountRate decimal.Decimal      `json:"globalDiscountRate"`
	Notes              string               `json:"notes"`
}

// UpdateInvoiceRequest replaces a draft document's mutable data.
type UpdateInvoiceRequest struct {
	IssueDate          *time.Time           `json:"issueDate"`
	DueDate            *time.Time           `json:"dueDate"`
	Lines              []InvoiceLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
	GlobalDiscountRate *decimal.Decimal     `json:"globalDiscountRate"`
	Notes              *string              `json:"notes"`
}

// ChangeInvoiceStatusRequest carries a caller-driven status transition.
type ChangeInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=DRAFT SENT VIEWED PARTIALLY_PAID PAID CANCELLED CONVERTED"`
}

// AddPaymentRequest records a settlement against an invoice.
type AddPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date" binding:"required"`
}

// InvoiceLineResponse mirrors domain.InvoiceLine.
type InvoiceLineResponse struct {
	LineID       string          `json:"lineID"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	DiscountRate decimal.Decimal `json:"discountRate"`
	VATRate      decimal.Decimal `json:"vatRate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	Total        decimal.Decimal `json:"total"`
}

// PaymentResponse mirrors domain.Payment.
type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
}

// InvoiceResponse mirrors domain.Invoice. Overdue is the derived display
// state, computed at conversion time.
type InvoiceResponse struct {
	InvoiceID          string                `json:"invoiceID"`
	Number             string                `json:"number"`
	Type               domain.InvoiceType    `json:"type"`
	Status             domain.InvoiceStatus  `json:"status"`
	ThirdPartyID       string                `json:"thirdPartyID"`
	IssueDate          time.Time             `json:"issueDate"`
	DueDate            time.Time             `json:"dueDate"`
	Lines              []InvoiceLineResponse `json:"lines,omitempty"`
	GlobalDiscountRate decimal.Decimal       `json:"globalDiscountRate"`
	SubtotalHT         decimal.Decimal       `json:"subtotalHT"`
	TotalHT            decimal.Decimal       `json:"totalHT"`
	TotalVAT           decimal.Decimal       `json:"totalVAT"`
	TotalTTC           decimal.Decimal       `json:"totalTTC"`
	VATBreakdown       []domain.VATBucket    `json:"vatBreakdown"`
	Payments           []PaymentResponse     `json:"payments,omitempty"`
	AmountPaid         decimal.Decimal       `json:"amountPaid"`
	AmountDue          decimal.Decimal       `json:"amountDue"`
	IsOverdue          bool                  `json:"isOverdue"`
	ReminderCount      int                   `json:"reminderCount"`
	ConvertedToID      *string               `json:"convertedToID,omitempty"`
	Notes              string                `json:"notes"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// OverdueInvoice pairs an invoice with its derived aging data.
type OverdueInvoice struct {
	Invoice     InvoiceResponse     `json:"invoice"`
	DaysOverdue int                 `json:"daysOverdue"`
	Level       domain.OverdueLevel `json:"level"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Type   *domain.InvoiceType   `form:"type" binding:"omitempty,oneof=INVOICE QUOTE CREDIT_NOTE PROFORMA PURCHASE_INVOICE DELIVERY_NOTE"`
	Status *domain.InvoiceStatus `form:"status" binding:"omitempty,oneof=DRAFT SENT VIEWED PARTIALLY_PAID PAID CANCELLED CONVERTED"`
	Limit  int                   `form:"limit,default=20"`
	Offset int                   `form:"offset,default=0"`
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice, now time.Time) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			LineID:       l.LineID,
			Description:  l.Description,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			DiscountRate: l.DiscountRate,
			VATRate:      l.VATRate,
			Subtotal:     l.Subtotal,
			VATAmount:    l.VATAmount,
			Total:        l.Total,
		}
	}
	payments := make([]PaymentResponse, len(inv.Payments))
	for i, p := range inv.Payments {
		payments[i] = PaymentResponse{
			PaymentID: p.PaymentID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			Date:      p.Date,
		}
	}
	return InvoiceResponse{
		InvoiceID:          inv.InvoiceID,
		Number:             inv.Number,
		Type:               inv.Type,
		Status:             inv.Status,
		ThirdPartyID:       inv.ThirdPartyID,
		IssueDate:          inv.IssueDate,
		DueDate:            inv.DueDate,
		Lines:              lines,
		GlobalDiscountRate: inv.GlobalDiscountRate,
		SubtotalHT:         inv.SubtotalHT,
		TotalHT:            inv.TotalHT,
		TotalVAT:           inv.TotalVAT,
		TotalTTC:           inv.TotalTTC,
		VATBreakdown:       inv.VATBreakdown,
		Payments:           payments,
		AmountPaid:         inv.AmountPaid,
		AmountDue:          inv.AmountDue,
		IsOverdue:          inv.IsOverdue(now),
		ReminderCount:      inv.ReminderCount,
		ConvertedToID:      inv.ConvertedToID,
		Notes:              inv.Notes,
		CreatedAt:          inv.CreatedAt,
	}
}
