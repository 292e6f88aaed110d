package mapping

import (
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.FiscalYearID,
		CompanyID:    d.CompanyID,
		Label:        d.Label,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsClosed:     d.IsClosed,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		CompanyID:    m.CompanyID,
		Label:        m.Label,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsClosed:     m.IsClosed,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:     d.PeriodID,
		FiscalYearID: d.FiscalYearID,
		CompanyID:    d.CompanyID,
		Label:        d.Label,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsOpen:       d.IsOpen,
		IsClosed:     d.IsClosed,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:     m.PeriodID,
		FiscalYearID: m.FiscalYearID,
		CompanyID:    m.CompanyID,
		Label:        m.Label,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsOpen:       m.IsOpen,
		IsClosed:     m.IsClosed,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriods converts a slice of model periods to domain periods
func ToDomainPeriods(ms []models.AccountingPeriod) []domain.AccountingPeriod {
	ds := make([]domain.AccountingPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}
