package mapping

import (
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/models"
)

// ToModelVATLine converts a domain VATLine to a model VATLine
func ToModelVATLine(d domain.VATLine) models.VATLine {
	return models.VATLine{
		VATLineID:     d.VATLineID,
		CompanyID:     d.CompanyID,
		Type:          string(d.Type),
		Rate:          d.Rate,
		BaseAmount:    d.BaseAmount,
		VATAmount:     d.VATAmount,
		DeductionRate: d.DeductionRate,
		DocumentDate:  d.DocumentDate,
		DocumentRef:   d.DocumentRef,
		InvoiceID:     d.InvoiceID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVATLine converts a model VATLine to a domain VATLine
func ToDomainVATLine(m models.VATLine) domain.VATLine {
	return domain.VATLine{
		VATLineID:     m.VATLineID,
		CompanyID:     m.CompanyID,
		Type:          domain.VATLineType(m.Type),
		Rate:          m.Rate,
		BaseAmount:    m.BaseAmount,
		VATAmount:     m.VATAmount,
		DeductionRate: m.DeductionRate,
		DocumentDate:  m.DocumentDate,
		DocumentRef:   m.DocumentRef,
		InvoiceID:     m.InvoiceID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVATLines converts a slice of model VATLines
func ToDomainVATLines(ms []models.VATLine) []domain.VATLine {
	ds := make([]domain.VATLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVATLine(m)
	}
	return ds
}

// ToModelVATAdjustment converts a domain VATAdjustment to a model VATAdjustment
func ToModelVATAdjustment(d domain.VATAdjustment) models.VATAdjustment {
	return models.VATAdjustment{
		AdjustmentID:  d.AdjustmentID,
		DeclarationID: d.DeclarationID,
		Label:         d.Label,
		Amount:        d.Amount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVATAdjustment converts a model VATAdjustment to a domain VATAdjustment
func ToDomainVATAdjustment(m models.VATAdjustment) domain.VATAdjustment {
	return domain.VATAdjustment{
		AdjustmentID:  m.AdjustmentID,
		DeclarationID: m.DeclarationID,
		Label:         m.Label,
		Amount:        m.Amount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVATAdjustments converts a slice of model VATAdjustments
func ToDomainVATAdjustments(ms []models.VATAdjustment) []domain.VATAdjustment {
	ds := make([]domain.VATAdjustment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVATAdjustment(m)
	}
	return ds
}

// ToModelVATDeclaration converts a domain VATDeclaration header to a model.
// Per-rate buckets are converted with ToModelDeclarationBuckets.
func ToModelVATDeclaration(d domain.VATDeclaration) models.VATDeclaration {
	return models.VATDeclaration{
		DeclarationID:      d.DeclarationID,
		CompanyID:          d.CompanyID,
		Label:              d.Label,
		Regime:             d.Regime,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		Status:             string(d.Status),
		Locked:             d.Locked,
		TotalCollectedVAT:  d.TotalCollectedVAT,
		TotalDeductibleVAT: d.TotalDeductibleVAT,
		TotalAdjustments:   d.TotalAdjustments,
		NetVAT:             d.NetVAT,
		VATCredit:          d.VATCredit,
		VATToPay:           d.VATToPay,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVATDeclaration converts a model VATDeclaration header to a domain
// declaration without its buckets.
func ToDomainVATDeclaration(m models.VATDeclaration) domain.VATDeclaration {
	return domain.VATDeclaration{
		DeclarationID:      m.DeclarationID,
		CompanyID:          m.CompanyID,
		Label:              m.Label,
		Regime:             m.Regime,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		Status:             domain.VATDeclarationStatus(m.Status),
		Locked:             m.Locked,
		TotalCollectedVAT:  m.TotalCollectedVAT,
		TotalDeductibleVAT: m.TotalDeductibleVAT,
		TotalAdjustments:   m.TotalAdjustments,
		NetVAT:             m.NetVAT,
		VATCredit:          m.VATCredit,
		VATToPay:           m.VATToPay,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDeclarationBuckets flattens both directions of a declaration's
// per-rate totals into bucket rows.
func ToModelDeclarationBuckets(d domain.VATDeclaration) []models.VATDeclarationBucket {
	buckets := make([]models.VATDeclarationBucket, 0, len(d.Collected)+len(d.Deductible))
	for _, rt := range d.Collected {
		buckets = append(buckets, models.VATDeclarationBucket{
			DeclarationID: d.DeclarationID,
			Direction:     string(domain.VATCollected),
			Rate:          rt.Rate,
			Base:          rt.Base,
			VATAmount:     rt.VATAmount,
		})
	}
	for _, rt := range d.Deductible {
		buckets = append(buckets, models.VATDeclarationBucket{
			DeclarationID: d.DeclarationID,
			Direction:     string(domain.VATDeductible),
			Rate:          rt.Rate,
			Base:          rt.Base,
			VATAmount:     rt.VATAmount,
		})
	}
	return buckets
}

// ApplyDeclarationBuckets splits bucket rows back into the declaration's
// Collected and Deductible slices.
func ApplyDeclarationBuckets(d *domain.VATDeclaration, ms []models.VATDeclarationBucket) {
	for _, m := range ms {
		rt := domain.RateTotals{Rate: m.Rate, Base: m.Base, VATAmount: m.VATAmount}
		if m.Direction == string(domain.VATCollected) {
			d.Collected = append(d.Collected, rt)
		} else {
			d.Deductible = append(d.Deductible, rt)
		}
	}
}
