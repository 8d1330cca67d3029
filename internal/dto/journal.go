package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// JournalLineRequest is a single line of a proposed journal entry.
type JournalLineRequest struct {
	AccountID int64           `json:"accountID" binding:"required,min=1"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to record a journal entry.
// Amount and balance rules are enforced by the accounting validator, not by
// binding tags, so the caller gets every violation in one response.
type CreateJournalEntryRequest struct {
	Date        string               `json:"date" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest replaces an entry wholesale; it carries the same
// shape as creation.
type UpdateJournalEntryRequest = CreateJournalEntryRequest

// ToEntryInput converts the request into the accounting engine's input form.
func (r CreateJournalEntryRequest) ToEntryInput() accounting.EntryInput {
	lines := make([]accounting.LineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = accounting.LineInput{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}
	return accounting.EntryInput{
		Date:        r.Date,
		Description: r.Description,
		Lines:       lines,
	}
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      int64           `json:"lineID"`
	AccountID   int64           `json:"accountID"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID       int64                 `json:"entryID"`
	Date          string                `json:"date"`
	Description   string                `json:"description"`
	TotalDebit    decimal.Decimal       `json:"totalDebit"`
	TotalCredit   decimal.Decimal       `json:"totalCredit"`
	Lines         []JournalLineResponse `json:"lines"`
	CreatedAt     time.Time             `json:"createdAt"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		Date:          e.Date.Format(accounting.DateLayout),
		Description:   e.Description,
		TotalDebit:    e.TotalDebit(),
		TotalCredit:   e.TotalCredit(),
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ListJournalEntriesParams defines query parameters for listing entries. From
// and To are optional YYYY-MM-DD bounds on the entry date, both inclusive.
type ListJournalEntriesParams struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
	Total   int64                  `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

// ToListJournalEntriesResponse converts a page of domain entries to its DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, total int64, params ListJournalEntriesParams) ListJournalEntriesResponse {
	res := ListJournalEntriesResponse{
		Entries: make([]JournalEntryResponse, len(entries)),
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
	for i, e := range entries {
		res.Entries[i] = ToJournalEntryResponse(&e)
	}
	return res
}
