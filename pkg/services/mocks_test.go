package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridian-vc/crm-engine/pkg/apperrors"
	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
)

// mockSchema serves a fixed entry-type list and field definitions.
type mockSchema struct {
	entryTypes  []dealcloud.EntryType
	fields      map[int][]dealcloud.Field
	findErr     error
	fieldsErr   error
	fieldsCalls int
}

func (m *mockSchema) FindEntryType(ctx context.Context, name string) (*dealcloud.EntryType, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.entryTypes {
		if m.entryTypes[i].Name == name || m.entryTypes[i].SingularName == name {
			return &m.entryTypes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrEntityTypeNotFound, name)
}

func (m *mockSchema) EntryTypeFields(ctx context.Context, entryTypeID int) ([]dealcloud.Field, error) {
	m.fieldsCalls++
	if m.fieldsErr != nil {
		return nil, m.fieldsErr
	}
	return m.fields[entryTypeID], nil
}

// mockData records the last query and delegates to injectable functions.
type mockData struct {
	rowsFn        func(ctx context.Context, entryTypeID int, q dealcloud.Query, fields []string) (*dealcloud.RowSet, error)
	submitFn      func(ctx context.Context, entryTypeID int, requests []dealcloud.StoreRequest) ([]dealcloud.StoreResult, error)
	createFn      func(ctx context.Context, entryTypeID int, rows []map[string]any) ([]dealcloud.Row, error)
	rowsCalls     int
	submitCalls   int
	createCalls   int
	lastEntryType int
	lastQuery     dealcloud.Query
}

func (m *mockData) Rows(ctx context.Context, entryTypeID int, q dealcloud.Query, fields []string) (*dealcloud.RowSet, error) {
	m.rowsCalls++
	m.lastEntryType = entryTypeID
	m.lastQuery = q
	if m.rowsFn != nil {
		return m.rowsFn(ctx, entryTypeID, q, fields)
	}
	return &dealcloud.RowSet{}, nil
}

func (m *mockData) SubmitStoreRequests(ctx context.Context, entryTypeID int, requests []dealcloud.StoreRequest) ([]dealcloud.StoreResult, error) {
	m.submitCalls++
	if m.submitFn != nil {
		return m.submitFn(ctx, entryTypeID, requests)
	}
	return nil, nil
}

func (m *mockData) CreateRows(ctx context.Context, entryTypeID int, rows []map[string]any) ([]dealcloud.Row, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, entryTypeID, rows)
	}
	return nil, nil
}

// mockUsers resolves emails through a fixed directory map.
type mockUsers struct {
	ids   map[string]int
	calls int
}

func (m *mockUsers) UserIDsByEmail(ctx context.Context, emails []string) []int {
	m.calls++
	out := make([]int, 0, len(emails))
	for _, email := range emails {
		if id, ok := m.ids[email]; ok {
			out = append(out, id)
		}
	}
	return out
}

// mockRefs resolves reference names through a fixed map.
type mockRefs struct {
	ids   map[string]int
	err   error
	calls int
}

func (m *mockRefs) ResolveReference(ctx context.Context, field *dealcloud.Field, name string) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.ids[name], nil
}

// fakeCRM is an in-memory CRM backing the synthesizer tests: Rows filters
// stored records, SubmitStoreRequests materializes a new row from the batch,
// CreateRows appends name-only rows.
type fakeCRM struct {
	schemaFields map[int][]dealcloud.Field
	rows         map[int][]dealcloud.Row
	nextID       int

	rowsErr       map[int]error
	submitErr     error
	submitFailAll bool
	dropCreated   bool

	rowsCalls     int
	submitCalls   int
	createCalls   int
	lastSubmitted []dealcloud.StoreRequest
}

func newFakeCRM(schemaFields map[int][]dealcloud.Field) *fakeCRM {
	return &fakeCRM{
		schemaFields: schemaFields,
		rows:         make(map[int][]dealcloud.Row),
		nextID:       1000,
		rowsErr:      make(map[int]error),
	}
}

func (f *fakeCRM) Rows(ctx context.Context, entryTypeID int, q dealcloud.Query, fields []string) (*dealcloud.RowSet, error) {
	f.rowsCalls++
	if err := f.rowsErr[entryTypeID]; err != nil {
		return nil, err
	}

	all := f.rows[entryTypeID]
	for fieldName, raw := range q {
		cond, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		want, ok := cond["$eq"]
		if !ok {
			continue
		}
		var out []dealcloud.Row
		for _, r := range all {
			if fieldName == "EntryId" {
				if id, ok := want.(int); ok && r.EntryID() == id {
					out = append(out, r)
				}
			} else if s, ok := want.(string); ok && r.Text(fieldName) == s {
				out = append(out, r)
			}
		}
		return &dealcloud.RowSet{TotalRecords: len(out), Rows: out}, nil
	}

	// $contains and $and are the coarse server-side filters; callers narrow
	// client-side, so the whole set is a valid superset answer.
	return &dealcloud.RowSet{TotalRecords: len(all), Rows: all}, nil
}

func (f *fakeCRM) SubmitStoreRequests(ctx context.Context, entryTypeID int, requests []dealcloud.StoreRequest) ([]dealcloud.StoreResult, error) {
	f.submitCalls++
	f.lastSubmitted = requests
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitFailAll {
		results := make([]dealcloud.StoreResult, len(requests))
		for i := range results {
			results[i] = dealcloud.StoreResult{Error: json.RawMessage(`"rejected"`)}
		}
		return results, nil
	}

	f.nextID++
	row := dealcloud.Row{"EntryId": float64(f.nextID)}
	for _, req := range requests {
		if name := f.fieldName(entryTypeID, req.FieldID); name != "" {
			row[name] = req.Value
		}
	}
	if !f.dropCreated {
		f.rows[entryTypeID] = append(f.rows[entryTypeID], row)
	}

	results := make([]dealcloud.StoreResult, len(requests))
	for i := range results {
		results[i] = dealcloud.StoreResult{RowID: f.nextID}
	}
	return results, nil
}

func (f *fakeCRM) CreateRows(ctx context.Context, entryTypeID int, rows []map[string]any) ([]dealcloud.Row, error) {
	f.createCalls++
	created := make([]dealcloud.Row, 0, len(rows))
	for _, src := range rows {
		f.nextID++
		row := dealcloud.Row{"EntryId": float64(f.nextID)}
		for k, v := range src {
			if k != "EntryId" {
				row[k] = v
			}
		}
		f.rows[entryTypeID] = append(f.rows[entryTypeID], row)
		created = append(created, row)
	}
	return created, nil
}

func (f *fakeCRM) seed(entryTypeID int, row dealcloud.Row) {
	f.rows[entryTypeID] = append(f.rows[entryTypeID], row)
}

func (f *fakeCRM) fieldName(entryTypeID, fieldID int) string {
	for _, field := range f.schemaFields[entryTypeID] {
		if field.ID == fieldID {
			return field.APIName
		}
	}
	return ""
}
