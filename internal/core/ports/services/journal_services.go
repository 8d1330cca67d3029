package services

import (
	"context"

	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
	"github.com/jangbu-app/jangbu_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves a non-deleted entry with its lines.
	GetJournalEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of non-deleted entries, newest first,
	// together with the total count.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, int64, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateJournalEntry validates and records a new entry. Validation
	// failures surface as *accounting.ValidationError.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateJournalEntry replaces an existing entry wholesale after validation.
	UpdateJournalEntry(ctx context.Context, entryID int64, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error)

	// DeleteJournalEntry soft-deletes an entry, removing it from every
	// balance computation while keeping its rows.
	DeleteJournalEntry(ctx context.Context, entryID int64) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
