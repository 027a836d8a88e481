// Package services implements the CRM entity-resolution and record-synthesis
// core: fuzzy matching against existing records, schema-driven field mapping,
// and the resolve-then-create state machine.
package services

import (
	"context"

	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
)

// SchemaCatalog is the slice of the schema surface the services consume.
type SchemaCatalog interface {
	FindEntryType(ctx context.Context, name string) (*dealcloud.EntryType, error)
	EntryTypeFields(ctx context.Context, entryTypeID int) ([]dealcloud.Field, error)
}

// DataStore is the slice of the entry-data surface the services consume.
type DataStore interface {
	Rows(ctx context.Context, entryTypeID int, q dealcloud.Query, fields []string) (*dealcloud.RowSet, error)
	SubmitStoreRequests(ctx context.Context, entryTypeID int, requests []dealcloud.StoreRequest) ([]dealcloud.StoreResult, error)
	CreateRows(ctx context.Context, entryTypeID int, rows []map[string]any) ([]dealcloud.Row, error)
}

// UserDirectory resolves directory emails to numeric user ids.
type UserDirectory interface {
	UserIDsByEmail(ctx context.Context, emails []string) []int
}

// Outcome is the terminal state of a create call. Expected business results
// ("already exists", "could not create") are outcomes, never errors; errors
// are reserved for transport, credential, and schema faults.
type Outcome string

const (
	// OutcomeExisting means a matching record already existed; no write
	// was attempted.
	OutcomeExisting Outcome = "existing"
	// OutcomeCreated means a new record was written and read back.
	OutcomeCreated Outcome = "created"
	// OutcomeFailed means the CRM answered but no record was produced.
	OutcomeFailed Outcome = "failed"
	// OutcomeError means the conversation with the CRM could not be
	// completed at all.
	OutcomeError Outcome = "error"
	// OutcomeCompanyFailed means the dependent company step of a composed
	// contact create did not succeed; the contact itself was never attempted.
	OutcomeCompanyFailed Outcome = "company_failed"
)
