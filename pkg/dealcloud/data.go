package dealcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// NewEntrySentinel is the entry id that marks a store request as creating a
// new record rather than updating an existing one.
const NewEntrySentinel = -1

// StoreRequest is a single field-write instruction within a create/update
// batch. All requests of one create share EntryID == NewEntrySentinel.
type StoreRequest struct {
	FieldID        int  `json:"fieldId"`
	EntryID        int  `json:"entryId"`
	Value          any  `json:"value"`
	IgnoreNearDups bool `json:"ignoreNearDups"`
}

// StoreResult is the per-request result of a store-request batch. Error is
// non-nil when the CRM rejected that write.
type StoreResult struct {
	RowID int             `json:"rowId"`
	Error json.RawMessage `json:"error,omitempty"`
}

// Failed reports whether the CRM marked this request as errored.
func (r StoreResult) Failed() bool {
	return len(r.Error) > 0 && string(r.Error) != "null"
}

// RowSet is the rows endpoint response.
type RowSet struct {
	TotalRecords int   `json:"totalRecords"`
	Rows         []Row `json:"rows"`
}

// DataClient reads and writes entry data.
type DataClient struct {
	transport Transport
	logger    *zap.Logger
}

// NewDataClient creates an entry-data client over the given transport.
func NewDataClient(transport Transport, logger *zap.Logger) *DataClient {
	return &DataClient{
		transport: transport,
		logger:    logger.Named("data"),
	}
}

// Rows fetches records of one entry type, optionally filtered by a query
// predicate and restricted to the named fields.
func (d *DataClient) Rows(ctx context.Context, entryTypeID int, q Query, fields []string) (*RowSet, error) {
	params := url.Values{}
	params.Set("wrapIntoArrays", "true")
	if q != nil {
		encoded, err := q.JSON()
		if err != nil {
			return nil, fmt.Errorf("encode query predicate: %w", err)
		}
		params.Set("query", encoded)
	}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	var set RowSet
	path := fmt.Sprintf("/api/rest/v4/data/entrydata/rows/%d", entryTypeID)
	if err := d.transport.Get(ctx, path, params, &set); err != nil {
		return nil, fmt.Errorf("fetch rows for entry type %d: %w", entryTypeID, err)
	}

	return &set, nil
}

// SubmitStoreRequests issues a batch of field writes as one create/update
// call and returns the per-request results.
func (d *DataClient) SubmitStoreRequests(ctx context.Context, entryTypeID int, requests []StoreRequest) ([]StoreResult, error) {
	body := map[string]any{"storeRequests": requests}

	var results []StoreResult
	path := fmt.Sprintf("/api/rest/v4/data/entrydata/%d", entryTypeID)
	if err := d.transport.Post(ctx, path, body, &results); err != nil {
		return nil, fmt.Errorf("submit store requests for entry type %d: %w", entryTypeID, err)
	}

	d.logger.Debug("Submitted store requests",
		zap.Int("entry_type_id", entryTypeID),
		zap.Int("request_count", len(requests)),
		zap.Int("result_count", len(results)))

	return results, nil
}

// CreateRows creates records through the rows endpoint, used for simple
// name-only entries such as job titles.
func (d *DataClient) CreateRows(ctx context.Context, entryTypeID int, rows []map[string]any) ([]Row, error) {
	var created []Row
	path := fmt.Sprintf("/api/rest/v4/data/entrydata/rows/%d", entryTypeID)
	if err := d.transport.Post(ctx, path, rows, &created); err != nil {
		return nil, fmt.Errorf("create rows for entry type %d: %w", entryTypeID, err)
	}
	return created, nil
}
