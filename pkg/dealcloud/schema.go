package dealcloud

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/apperrors"
)

// FieldKind is the closed set of DealCloud field behaviors. The wire format
// carries an integer fieldType; everything the mapper cares about reduces to
// these four kinds.
type FieldKind int

const (
	KindPlain FieldKind = iota
	KindChoice
	KindReference
	KindUser
)

func (k FieldKind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindReference:
		return "reference"
	case KindUser:
		return "user"
	default:
		return "plain"
	}
}

// Wire values of the fieldType discriminator.
const (
	fieldTypeChoice    = 2
	fieldTypeReference = 5
	fieldTypeUser      = 7
)

// EntryType identifies a CRM object class (Company, Contact, Job Title...).
type EntryType struct {
	ID           int    `json:"id"`
	APIName      string `json:"apiName"`
	Name         string `json:"name"`
	SingularName string `json:"singularName"`
	EntryListID  int    `json:"entryListId"`
}

// ChoiceValue is one allowed value of a choice field.
type ChoiceValue struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Field describes one attribute of an entry type.
type Field struct {
	ID                      int           `json:"id"`
	APIName                 string        `json:"apiName"`
	Name                    string        `json:"name"`
	FieldType               int           `json:"fieldType"`
	IsStoreRequestSupported bool          `json:"isStoreRequestSupported"`
	IsCalculated            bool          `json:"isCalculated"`
	ChoiceValues            []ChoiceValue `json:"choiceValues,omitempty"`
	EntryLists              []int         `json:"entryLists,omitempty"`
}

// Kind maps the wire fieldType to the closed kind set.
func (f *Field) Kind() FieldKind {
	switch f.FieldType {
	case fieldTypeChoice:
		return KindChoice
	case fieldTypeReference:
		return KindReference
	case fieldTypeUser:
		return KindUser
	default:
		return KindPlain
	}
}

// Writable reports whether the field may appear in an outgoing write payload.
func (f *Field) Writable() bool {
	return f.IsStoreRequestSupported && !f.IsCalculated
}

// ChoiceID looks up a choice id by name, case-insensitive exact match.
func (f *Field) ChoiceID(name string) (int, bool) {
	for _, cv := range f.ChoiceValues {
		if strings.EqualFold(cv.Name, name) {
			return cv.ID, true
		}
	}
	return 0, false
}

// SchemaCatalog looks up entry types and their field definitions. Schema
// changes rarely, so responses are cached for the life of the process.
type SchemaCatalog struct {
	transport Transport
	logger    *zap.Logger

	mu         sync.Mutex
	entryTypes []EntryType
	fields     map[int][]Field
}

// NewSchemaCatalog creates a schema catalog over the given transport.
func NewSchemaCatalog(transport Transport, logger *zap.Logger) *SchemaCatalog {
	return &SchemaCatalog{
		transport: transport,
		logger:    logger.Named("schema"),
		fields:    make(map[int][]Field),
	}
}

// EntryTypes returns the full entry-type list.
func (s *SchemaCatalog) EntryTypes(ctx context.Context) ([]EntryType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryTypes != nil {
		return s.entryTypes, nil
	}

	var types []EntryType
	if err := s.transport.Get(ctx, "/api/rest/v4/schema/entryTypes", nil, &types); err != nil {
		return nil, fmt.Errorf("list entry types: %w", err)
	}

	s.entryTypes = types
	s.logger.Debug("Cached entry types", zap.Int("count", len(types)))
	return types, nil
}

// EntryTypeFields returns the field definitions of one entry type, including
// choice enumerations.
func (s *SchemaCatalog) EntryTypeFields(ctx context.Context, entryTypeID int) ([]Field, error) {
	s.mu.Lock()
	if cached, ok := s.fields[entryTypeID]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	var fields []Field
	path := fmt.Sprintf("/api/rest/v4/schema/entryTypes/%d/fields", entryTypeID)
	if err := s.transport.Get(ctx, path, nil, &fields); err != nil {
		return nil, fmt.Errorf("list fields for entry type %d: %w", entryTypeID, err)
	}

	s.mu.Lock()
	s.fields[entryTypeID] = fields
	s.mu.Unlock()

	return fields, nil
}

// FindEntryType matches on display name OR singular name, case-sensitive
// exact. Callers must not assume an entry type always exists.
func (s *SchemaCatalog) FindEntryType(ctx context.Context, name string) (*EntryType, error) {
	types, err := s.EntryTypes(ctx)
	if err != nil {
		return nil, err
	}

	for i := range types {
		if types[i].Name == name || types[i].SingularName == name {
			return &types[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %q", apperrors.ErrEntityTypeNotFound, name)
}

// FindField returns the field with the given API name, or nil when absent.
// Schemas evolve; callers treat an absent field as "skip silently".
func FindField(fields []Field, apiName string) *Field {
	for i := range fields {
		if fields[i].APIName == apiName {
			return &fields[i]
		}
	}
	return nil
}
