package services

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
	"github.com/meridian-vc/crm-engine/pkg/models"
)

// FieldValueMapper translates one typed parameter into the wire
// representation demanded by a field's declared kind. It produces zero or
// one store request: zero when the field is unwritable, calculated, absent,
// or the value resolves to nothing. Unresolvable choice-list elements are
// dropped silently; schemas evolve and a stale value must not abort an
// otherwise-valid create.
type FieldValueMapper interface {
	Map(ctx context.Context, field *dealcloud.Field, value any, entryID int) (*dealcloud.StoreRequest, error)
}

type fieldMapper struct {
	users  UserDirectory
	refs   ReferenceResolver
	logger *zap.Logger
}

// NewFieldValueMapper creates a mapper backed by the user directory (for
// User-kind fields) and the reference resolver (for name-valued references).
func NewFieldValueMapper(users UserDirectory, refs ReferenceResolver, logger *zap.Logger) FieldValueMapper {
	return &fieldMapper{
		users:  users,
		refs:   refs,
		logger: logger.Named("field-mapper"),
	}
}

var _ FieldValueMapper = (*fieldMapper)(nil)

func (m *fieldMapper) Map(ctx context.Context, field *dealcloud.Field, value any, entryID int) (*dealcloud.StoreRequest, error) {
	if field == nil || value == nil {
		return nil, nil
	}
	if !field.Writable() {
		return nil, nil
	}

	switch field.Kind() {
	case dealcloud.KindChoice:
		return m.mapChoice(field, value, entryID), nil
	case dealcloud.KindReference:
		return m.mapReference(ctx, field, value, entryID)
	case dealcloud.KindUser:
		return m.mapUser(ctx, field, value, entryID), nil
	default:
		return store(field, value, entryID), nil
	}
}

// store builds the single write instruction. Near-duplicate suppression is
// always requested; client-side resolution happens before any write, the
// CRM flag is only a server-side backstop.
func store(field *dealcloud.Field, value any, entryID int) *dealcloud.StoreRequest {
	return &dealcloud.StoreRequest{
		FieldID:        field.ID,
		EntryID:        entryID,
		Value:          value,
		IgnoreNearDups: true,
	}
}

// mapChoice resolves names to choice ids case-insensitively. List elements
// with no matching choice value are dropped; a list where nothing resolves
// produces no store request at all.
func (m *fieldMapper) mapChoice(field *dealcloud.Field, value any, entryID int) *dealcloud.StoreRequest {
	if items, ok := asList(value); ok {
		ids := make([]int, 0, len(items))
		for _, item := range items {
			name := choiceName(item)
			id, ok := field.ChoiceID(name)
			if !ok {
				m.logger.Debug("Dropping unmatched choice value",
					zap.String("field", field.APIName),
					zap.String("value", name))
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return nil
		}
		return store(field, ids, entryID)
	}

	name := choiceName(value)
	id, ok := field.ChoiceID(name)
	if !ok {
		m.logger.Debug("Dropping unmatched choice value",
			zap.String("field", field.APIName),
			zap.String("value", name))
		return nil
	}
	return store(field, id, entryID)
}

// mapReference maps ids through directly and names through the reference
// resolver. List elements that fail to resolve are skipped.
func (m *fieldMapper) mapReference(ctx context.Context, field *dealcloud.Field, value any, entryID int) (*dealcloud.StoreRequest, error) {
	if items, ok := asList(value); ok {
		ids := make([]int, 0, len(items))
		for _, item := range items {
			id, err := m.referenceID(ctx, field, item)
			if err != nil {
				m.logger.Warn("Skipping unresolvable reference element",
					zap.String("field", field.APIName),
					zap.Error(err))
				continue
			}
			if id > 0 {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, nil
		}
		return store(field, ids, entryID), nil
	}

	id, err := m.referenceID(ctx, field, value)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, nil
	}
	return store(field, id, entryID), nil
}

func (m *fieldMapper) referenceID(ctx context.Context, field *dealcloud.Field, value any) (int, error) {
	switch v := value.(type) {
	case models.Ref:
		if v.ID != 0 {
			return v.ID, nil
		}
		if v.Name != "" {
			return m.refs.ResolveReference(ctx, field, v.Name)
		}
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return m.refs.ResolveReference(ctx, field, v)
	default:
		return 0, fmt.Errorf("unsupported reference value of type %T", value)
	}
}

// mapUser treats the value(s) as directory email addresses. A scalar input
// that resolves to one user stores a scalar id; lists store id lists.
func (m *fieldMapper) mapUser(ctx context.Context, field *dealcloud.Field, value any, entryID int) *dealcloud.StoreRequest {
	scalar := false
	var emails []string

	if items, ok := asList(value); ok {
		for _, item := range items {
			if email := choiceName(item); email != "" {
				emails = append(emails, email)
			}
		}
	} else if email := choiceName(value); email != "" {
		scalar = true
		emails = []string{email}
	}

	if len(emails) == 0 {
		return nil
	}

	ids := m.users.UserIDsByEmail(ctx, emails)
	if len(ids) == 0 {
		m.logger.Debug("No directory users resolved for field",
			zap.String("field", field.APIName),
			zap.Strings("emails", emails))
		return nil
	}

	if scalar {
		return store(field, ids[0], entryID)
	}
	return store(field, ids, entryID)
}

// asList flattens slice values (of any element type) to []any. Strings and
// byte slices are scalars.
func asList(value any) ([]any, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// choiceName unwraps typed domain values (string-kinded enums included) to
// their plain string form for choice lookup.
func choiceName(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
