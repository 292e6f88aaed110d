package mapping

import (
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		ICE:         d.ICE,
		IF:          d.IF,
		RC:          d.RC,
		Address:     d.Address,
		City:        d.City,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		ICE:         m.ICE,
		IF:          m.IF,
		RC:          m.RC,
		Address:     m.Address,
		City:        m.City,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
