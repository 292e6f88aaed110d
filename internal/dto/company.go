package dto

import (
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a company.
// Creating a company seeds its CGNC chart and standard journal books.
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	ICE     string `json:"ice" binding:"required,len=15,numeric"`
	IF      string `json:"if" binding:"required"`
	RC      string `json:"rc" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// UpdateCompanyRequest defines the fields that may be updated on a company.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
}

// CompanyResponse mirrors domain.Company.
type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	ICE       string    `json:"ice"`
	IF        string    `json:"if"`
	RC        string    `json:"rc"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to its response DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		ICE:       c.ICE,
		IF:        c.IF,
		RC:        c.RC,
		Address:   c.Address,
		City:      c.City,
		CreatedAt: c.CreatedAt,
	}
}
