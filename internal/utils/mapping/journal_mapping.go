package mapping

import (
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:       d.JournalID,
		CompanyID:       d.CompanyID,
		Code:            d.Code,
		Label:           d.Label,
		LastEntryNumber: d.LastEntryNumber,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:       m.JournalID,
		CompanyID:       m.CompanyID,
		Code:            m.Code,
		Label:           m.Label,
		LastEntryNumber: m.LastEntryNumber,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournals converts a slice of model Journals to domain Journals
func ToDomainJournals(ms []models.Journal) []domain.Journal {
	ds := make([]domain.Journal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournal(m)
	}
	return ds
}
