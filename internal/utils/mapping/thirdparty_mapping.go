package mapping

import (
	"github.com/mizanpro/mizan_backend/internal/core/domain"
	"github.com/mizanpro/mizan_backend/internal/models"
)

// ToModelThirdParty converts a domain ThirdParty to a model ThirdParty
func ToModelThirdParty(d domain.ThirdParty) models.ThirdParty {
	return models.ThirdParty{
		ThirdPartyID: d.ThirdPartyID,
		CompanyID:    d.CompanyID,
		Code:         d.Code,
		Type:         string(d.Type),
		Name:         d.Name,
		ICE:          d.ICE,
		IF:           d.IF,
		RC:           d.RC,
		Address:      d.Address,
		Email:        d.Email,
		PaymentTerms: d.PaymentTerms,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainThirdParty converts a model ThirdParty to a domain ThirdParty
func ToDomainThirdParty(m models.ThirdParty) domain.ThirdParty {
	return domain.ThirdParty{
		ThirdPartyID: m.ThirdPartyID,
		CompanyID:    m.CompanyID,
		Code:         m.Code,
		Type:         domain.ThirdPartyType(m.Type),
		Name:         m.Name,
		ICE:          m.ICE,
		IF:           m.IF,
		RC:           m.RC,
		Address:      m.Address,
		Email:        m.Email,
		PaymentTerms: m.PaymentTerms,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainThirdParties converts a slice of model ThirdParties
func ToDomainThirdParties(ms []models.ThirdParty) []domain.ThirdParty {
	ds := make([]domain.ThirdParty, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainThirdParty(m)
	}
	return ds
}
