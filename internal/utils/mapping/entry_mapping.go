package mapping

import (
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/models"
)

// ToModelEntry converts a domain Entry header to a model Entry. Lines are
// converted separately since they live in their own table.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:           d.EntryID,
		CompanyID:         d.CompanyID,
		JournalID:         d.JournalID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		PeriodID:          d.PeriodID,
		Reference:         d.Reference,
		Description:       d.Description,
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		IsBalanced:        d.IsBalanced,
		IsValidated:       d.IsValidated,
		IsLocked:          d.IsLocked,
		ReversalOfEntryID: d.ReversalOfEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry header to a domain Entry without lines.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:           m.EntryID,
		CompanyID:         m.CompanyID,
		JournalID:         m.JournalID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		PeriodID:          m.PeriodID,
		Reference:         m.Reference,
		Description:       m.Description,
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		IsBalanced:        m.IsBalanced,
		IsValidated:       m.IsValidated,
		IsLocked:          m.IsLocked,
		ReversalOfEntryID: m.ReversalOfEntryID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain EntryLine to a model EntryLine
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		Label:        d.Label,
		Debit:        d.Debit,
		Credit:       d.Credit,
		Currency:     d.Currency,
		ExchangeRate: d.ExchangeRate,
		DebitMAD:     d.DebitMAD,
		CreditMAD:    d.CreditMAD,
	}
}

// ToDomainEntryLine converts a model EntryLine to a domain EntryLine
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Label:        m.Label,
		Debit:        m.Debit,
		Credit:       m.Credit,
		Currency:     m.Currency,
		ExchangeRate: m.ExchangeRate,
		DebitMAD:     m.DebitMAD,
		CreditMAD:    m.CreditMAD,
	}
}

// ToDomainEntryLines converts a slice of model EntryLines to domain EntryLines
func ToDomainEntryLines(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}
