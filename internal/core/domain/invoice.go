package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType covers every commercial document the invoicing module handles.
type InvoiceType string

const (
	InvoiceTypeInvoice      InvoiceType = "INVOICE"
	InvoiceTypeQuote        InvoiceType = "QUOTE"
	InvoiceTypeCreditNote   InvoiceType = "CREDIT_NOTE"
	InvoiceTypeProforma     InvoiceType = "PROFORMA"
	InvoiceTypePurchase     InvoiceType = "PURCHASE_INVOICE"
	InvoiceTypeDeliveryNote InvoiceType = "DELIVERY_NOTE"
)

// InvoiceStatus is the stored state of an invoice. OVERDUE is intentionally
// absent: it is derived from the due date at read time, never persisted.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "DRAFT"
	InvoiceSent          InvoiceStatus = "SENT"
	InvoiceViewed        InvoiceStatus = "VIEWED"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
	InvoiceConverted     InvoiceStatus = "CONVERTED" // Quotes only, terminal
)

// InvoiceLine is one billed item. Subtotal, VATAmount and Total are recomputed
// from the raw fields whenever the line changes:
//
//	subtotal  = quantity * unitPrice * (1 - discountRate/100)
//	vatAmount = subtotal * vatRate/100
//	total     = subtotal + vatAmount
type InvoiceLine struct {
	LineID       string          `json:"lineID"`
	InvoiceID    string          `json:"invoiceID"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	DiscountRate decimal.Decimal `json:"discountRate"` // percent
	VATRate      decimal.Decimal `json:"vatRate"`      // percent, one of the statutory rates
	Subtotal     decimal.Decimal `json:"subtotal"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	Total        decimal.Decimal `json:"total"`
}

// VATBucket accumulates the taxable base and tax amount for one statutory
// rate. An invoice spanning several rates carries one bucket per rate.
type VATBucket struct {
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// Payment is a settlement recorded against an invoice.
type Payment struct {
	PaymentID string          `json:"paymentID"`
	InvoiceID string          `json:"invoiceID"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"` // virement, chèque, espèces, effet
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
	AuditFields
}

// Invoice is a commercial document with its lines, computed totals and
// payment state. AmountDue == TotalTTC - AmountPaid is maintained after every
// line or payment change.
type Invoice struct {
	InvoiceID          string          `json:"invoiceID"`
	CompanyID          string          `json:"companyID"`
	Number             string          `json:"number"` // e.g. "FAC-2026-0001"
	Type               InvoiceType     `json:"type"`
	Status             InvoiceStatus   `json:"status"`
	ThirdPartyID       string          `json:"thirdPartyID"`
	IssueDate          time.Time       `json:"issueDate"`
	DueDate            time.Time       `json:"dueDate"`
	Lines              []InvoiceLine   `json:"lines"`
	GlobalDiscountRate decimal.Decimal `json:"globalDiscountRate"` // percent
	SubtotalHT         decimal.Decimal `json:"subtotalHT"`         // before global discount
	TotalHT            decimal.Decimal `json:"totalHT"`            // after global discount
	TotalVAT           decimal.Decimal `json:"totalVAT"`
	TotalTTC           decimal.Decimal `json:"totalTTC"`
	VATBreakdown       []VATBucket     `json:"vatBreakdown"`
	Payments           []Payment       `json:"payments"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	AmountDue          decimal.Decimal `json:"amountDue"`
	ReminderCount      int             `json:"reminderCount"`
	// ConvertedToID is set on a quote once it has been turned into an invoice.
	ConvertedToID *string `json:"convertedToID,omitempty"`
	Notes         string  `json:"notes"`
	AuditFields
}

// IsOverdue reports the derived overdue display state.
func (inv Invoice) IsOverdue(now time.Time) bool {
	if inv.Status == InvoicePaid || inv.Status == InvoiceCancelled {
		return false
	}
	return inv.DueDate.Before(now)
}

// OverdueLevel buckets overdue invoices by age for reminder escalation.
type OverdueLevel string

const (
	OverdueRecent   OverdueLevel = "RECENT"   // < 30 days late
	OverdueModerate OverdueLevel = "MODERATE" // 30-60 days late
	OverdueSevere   OverdueLevel = "SEVERE"   // > 60 days late
)

// OverdueLevelFor returns the aging bucket for an invoice overdue at now.
func OverdueLevelFor(dueDate, now time.Time) OverdueLevel {
	days := int(now.Sub(dueDate).Hours() / 24)
	switch {
	case days > 60:
		return OverdueSevere
	case days >= 30:
		return OverdueModerate
	default:
		return OverdueRecent
	}
}

// invoiceTransitions enumerates the allowed stored-status transitions per the
// invoicing workflow. Derived states (OVERDUE) never appear here.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:         {InvoiceSent, InvoiceCancelled, InvoiceConverted},
	InvoiceSent:          {InvoiceViewed, InvoicePartiallyPaid, InvoicePaid, InvoiceCancelled, InvoiceConverted},
	InvoiceViewed:        {InvoicePartiallyPaid, InvoicePaid, InvoiceCancelled, InvoiceConverted},
	InvoicePartiallyPaid: {InvoicePaid, InvoiceCancelled},
	InvoicePaid:          {InvoiceCancelled},
	InvoiceCancelled:     {},
	InvoiceConverted:     {},
}

// CanTransition reports whether an invoice may move from one stored status to
// another. Conversion is reserved for quotes.
func CanTransition(typ InvoiceType, from, to InvoiceStatus) bool {
	if to == InvoiceConverted && typ != InvoiceTypeQuote {
		return false
	}
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
