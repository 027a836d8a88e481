package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
)

// ReferenceResolver maps a name onto the id of a record in a reference
// field's target entry list. Which list that is depends on the field, so
// reference resolution cannot be solved generically inside the mapper.
type ReferenceResolver interface {
	ResolveReference(ctx context.Context, field *dealcloud.Field, name string) (int, error)
}

type listReferenceResolver struct {
	data   DataStore
	logger *zap.Logger
}

// NewReferenceResolver creates a resolver that matches names against the
// Name field of the reference field's first target entry list,
// case-insensitive with diacritics folded.
func NewReferenceResolver(data DataStore, logger *zap.Logger) ReferenceResolver {
	return &listReferenceResolver{
		data:   data,
		logger: logger.Named("reference-resolver"),
	}
}

var _ ReferenceResolver = (*listReferenceResolver)(nil)

// ResolveReference returns the matched record id, or 0 when no record of the
// target list carries the name. Absence is not an error; the mapper drops
// unresolvable references silently.
func (l *listReferenceResolver) ResolveReference(ctx context.Context, field *dealcloud.Field, name string) (int, error) {
	if len(field.EntryLists) == 0 {
		return 0, fmt.Errorf("reference field %s has no target entry list", field.APIName)
	}

	targetList := field.EntryLists[0]
	set, err := l.data.Rows(ctx, targetList, dealcloud.Contains("Name", namePrefix(name)), nil)
	if err != nil {
		return 0, fmt.Errorf("query entry list %d for %q: %w", targetList, name, err)
	}

	want := normalizeName(name)
	for _, row := range set.Rows {
		if normalizeName(row.Text("Name")) == want {
			return row.EntryID(), nil
		}
	}

	l.logger.Debug("No reference target for name",
		zap.String("field", field.APIName),
		zap.String("name", name))
	return 0, nil
}
