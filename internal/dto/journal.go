package dto

import "github.com/mizanpro/mizan_backend/internal/core/domain"

// JournalResponse mirrors domain.Journal (a journal book).
type JournalResponse struct {
	JournalID       string `json:"journalID"`
	Code            string `json:"code"`
	Label           string `json:"label"`
	LastEntryNumber int64  `json:"lastEntryNumber"`
}

// ListJournalsResponse wraps a company's journal books.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:       j.JournalID,
		Code:            j.Code,
		Label:           j.Label,
		LastEntryNumber: j.LastEntryNumber,
	}
}

// ToJournalResponses converts a slice of journal books.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return res
}
