package mapping

import (
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice header to a model Invoice. Lines,
// VAT buckets and payments are converted separately.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:          d.InvoiceID,
		CompanyID:          d.CompanyID,
		Number:             d.Number,
		Type:               string(d.Type),
		Status:             string(d.Status),
		ThirdPartyID:       d.ThirdPartyID,
		IssueDate:          d.IssueDate,
		DueDate:            d.DueDate,
		GlobalDiscountRate: d.GlobalDiscountRate,
		SubtotalHT:         d.SubtotalHT,
		TotalHT:            d.TotalHT,
		TotalVAT:           d.TotalVAT,
		TotalTTC:           d.TotalTTC,
		AmountPaid:         d.AmountPaid,
		AmountDue:          d.AmountDue,
		ReminderCount:      d.ReminderCount,
		ConvertedToID:      d.ConvertedToID,
		Notes:              d.Notes,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice header to a domain Invoice without
// its child collections.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:          m.InvoiceID,
		CompanyID:          m.CompanyID,
		Number:             m.Number,
		Type:               domain.InvoiceType(m.Type),
		Status:             domain.InvoiceStatus(m.Status),
		ThirdPartyID:       m.ThirdPartyID,
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		GlobalDiscountRate: m.GlobalDiscountRate,
		SubtotalHT:         m.SubtotalHT,
		TotalHT:            m.TotalHT,
		TotalVAT:           m.TotalVAT,
		TotalTTC:           m.TotalTTC,
		AmountPaid:         m.AmountPaid,
		AmountDue:          m.AmountDue,
		ReminderCount:      m.ReminderCount,
		ConvertedToID:      m.ConvertedToID,
		Notes:              m.Notes,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceLine converts a domain InvoiceLine to a model InvoiceLine
func ToModelInvoiceLine(d domain.InvoiceLine) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:       d.LineID,
		InvoiceID:    d.InvoiceID,
		Description:  d.Description,
		Quantity:     d.Quantity,
		UnitPrice:    d.UnitPrice,
		DiscountRate: d.DiscountRate,
		VATRate:      d.VATRate,
		Subtotal:     d.Subtotal,
		VATAmount:    d.VATAmount,
		Total:        d.Total,
	}
}

// ToDomainInvoiceLine converts a model InvoiceLine to a domain InvoiceLine
func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:       m.LineID,
		InvoiceID:    m.InvoiceID,
		Description:  m.Description,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		DiscountRate: m.DiscountRate,
		VATRate:      m.VATRate,
		Subtotal:     m.Subtotal,
		VATAmount:    m.VATAmount,
		Total:        m.Total,
	}
}

// ToDomainInvoiceLines converts a slice of model InvoiceLines
func ToDomainInvoiceLines(ms []models.InvoiceLine) []domain.InvoiceLine {
	ds := make([]domain.InvoiceLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceLine(m)
	}
	return ds
}

// ToModelVATBucket converts a domain VATBucket for one invoice
func ToModelVATBucket(invoiceID string, d domain.VATBucket) models.InvoiceVATBucket {
	return models.InvoiceVATBucket{
		InvoiceID: invoiceID,
		Rate:      d.Rate,
		Base:      d.Base,
		Amount:    d.Amount,
	}
}

// ToDomainVATBuckets converts a slice of model VAT buckets
func ToDomainVATBuckets(ms []models.InvoiceVATBucket) []domain.VATBucket {
	ds := make([]domain.VATBucket, len(ms))
	for i, m := range ms {
		ds[i] = domain.VATBucket{Rate: m.Rate, Base: m.Base, Amount: m.Amount}
	}
	return ds
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		InvoiceID:   d.InvoiceID,
		Amount:      d.Amount,
		Method:      d.Method,
		Reference:   d.Reference,
		Date:        d.Date,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		InvoiceID:   m.InvoiceID,
		Amount:      m.Amount,
		Method:      m.Method,
		Reference:   m.Reference,
		Date:        m.Date,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPayments converts a slice of model Payments
func ToDomainPayments(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
