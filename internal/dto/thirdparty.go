package dto

import (
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// CreateThirdPartyRequest defines the data needed to register a customer or
// supplier. The ICE is the 15-digit company identifier; IF and RC are free-form
// because older registrations predate the normalized formats.
type CreateThirdPartyRequest struct {
	Type         domain.ThirdPartyType `json:"type" binding:"required,oneof=CLIENT SUPPLIER BOTH"`
	Name         string                `json:"name" binding:"required"`
	ICE          string                `json:"ice" binding:"omitempty,len=15,numeric"`
	IF           string                `json:"if"`
	RC           string                `json:"rc"`
	Address      string                `json:"address"`
	Email        string                `json:"email" binding:"omitempty,email"`
	PaymentTerms int                   `json:"paymentTerms" binding:"gte=0,lte=365"`
}

// UpdateThirdPartyRequest defines the fields that may be updated.
type UpdateThirdPartyRequest struct {
	Name         *string `json:"name"`
	ICE          *string `json:"ice" binding:"omitempty,len=15,numeric"`
	IF           *string `json:"if"`
	RC           *string `json:"rc"`
	Address      *string `json:"address"`
	Email        *string `json:"email" binding:"omitempty,email"`
	PaymentTerms *int    `json:"paymentTerms" binding:"omitempty,gte=0,lte=365"`
}

// ThirdPartyResponse mirrors domain.ThirdParty.
type ThirdPartyResponse struct {
	ThirdPartyID string                `json:"thirdPartyID"`
	Type         domain.ThirdPartyType `json:"type"`
	Code         string                `json:"code"`
	Name         string                `json:"name"`
	ICE          string                `json:"ice"`
	IF           string                `json:"if"`
	RC           string                `json:"rc"`
	Address      string                `json:"address"`
	Email        string                `json:"email"`
	PaymentTerms int                   `json:"paymentTerms"`
	IsActive     bool                  `json:"isActive"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ListThirdPartiesParams defines query parameters for listing third parties.
type ListThirdPartiesParams struct {
	Type   *domain.ThirdPartyType `form:"type" binding:"omitempty,oneof=CLIENT SUPPLIER BOTH"`
	Limit  int                    `form:"limit,default=20"`
	Offset int                    `form:"offset,default=0"`
}

// ToThirdPartyResponse converts a domain.ThirdParty to its response DTO.
func ToThirdPartyResponse(tp *domain.ThirdParty) ThirdPartyResponse {
	return ThirdPartyResponse{
		ThirdPartyID: tp.ThirdPartyID,
		Type:         tp.Type,
		Code:         tp.Code,
		Name:         tp.Name,
		ICE:          tp.ICE,
		IF:           tp.IF,
		RC:           tp.RC,
		Address:      tp.Address,
		Email:        tp.Email,
		PaymentTerms: tp.PaymentTerms,
		IsActive:     tp.IsActive,
		CreatedAt:    tp.CreatedAt,
	}
}

// ToThirdPartyResponses converts a slice of third parties.
func ToThirdPartyResponses(tps []domain.ThirdParty) []ThirdPartyResponse {
	res := make([]ThirdPartyResponse, len(tps))
	for i := range tps {
		res[i] = ToThirdPartyResponse(&tps[i])
	}
	return res
}
