package dto

import (
	"time"

	"github.com/mizanpro/mizan_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to append a custom account to
// the chart. Class and type are derived from the number, never provided.
type CreateAccountRequest struct {
	Number          string `json:"number" binding:"required,min=2,max=10,numeric"`
	Label           string `json:"label" binding:"required"`
	IsDetailAccount bool   `json:"isDetailAccount"`
}

// UpdateAccountRequest defines the fields that may be updated on an account.
type UpdateAccountRequest struct {
	Label    *string `json:"label"`
	IsActive *bool   `json:"isActive"`
}

// AccountResponse mirrors domain.Account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Number          string             `json:"number"`
	Label           string             `json:"label"`
	Class           int                `json:"class"`
	AccountType     domain.AccountType `json:"accountType"`
	IsDetailAccount bool               `json:"isDetailAccount"`
	IsCustom        bool               `json:"isCustom"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Class  int `form:"class"` // 0 means all classes
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Number:          acc.Number,
		Label:           acc.Label,
		Class:           acc.Class,
		AccountType:     acc.AccountType,
		IsDetailAccount: acc.IsDetailAccount,
		IsCustom:        acc.IsCustom,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
