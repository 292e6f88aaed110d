package domain

import "time"

// AuditFields holds the standard creation/update metadata embedded in every
// persisted record.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ValidationIssue describes a single failed validation check on a record.
// Services return the full list so callers can surface every problem at once
// instead of a bare pass/fail.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
