package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
	"github.com/meridian-vc/crm-engine/pkg/models"
)

func newMapper(users *mockUsers, refs *mockRefs) FieldValueMapper {
	if users == nil {
		users = &mockUsers{}
	}
	if refs == nil {
		refs = &mockRefs{}
	}
	return NewFieldValueMapper(users, refs, zap.NewNop())
}

func plainField() *dealcloud.Field {
	return &dealcloud.Field{ID: 100, APIName: "CompanyName", FieldType: 1, IsStoreRequestSupported: true}
}

func choiceField() *dealcloud.Field {
	return &dealcloud.Field{
		ID:                      101,
		APIName:                 "Type",
		FieldType:               2,
		IsStoreRequestSupported: true,
		ChoiceValues: []dealcloud.ChoiceValue{
			{ID: 10, Name: "Strategic"},
			{ID: 11, Name: "Other"},
		},
	}
}

func refField() *dealcloud.Field {
	return &dealcloud.Field{
		ID:                      105,
		APIName:                 "Sector",
		FieldType:               5,
		IsStoreRequestSupported: true,
		EntryLists:              []int{30},
	}
}

func userField() *dealcloud.Field {
	return &dealcloud.Field{ID: 104, APIName: "Owners", FieldType: 7, IsStoreRequestSupported: true}
}

func TestMap_PlainPassthrough(t *testing.T) {
	m := newMapper(nil, nil)

	req, err := m.Map(context.Background(), plainField(), "Acme Corp", dealcloud.NewEntrySentinel)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 100, req.FieldID)
	assert.Equal(t, dealcloud.NewEntrySentinel, req.EntryID)
	assert.Equal(t, "Acme Corp", req.Value)
	assert.True(t, req.IgnoreNearDups)
}

func TestMap_NilAndUnwritableProduceNothing(t *testing.T) {
	m := newMapper(nil, nil)

	req, err := m.Map(context.Background(), nil, "x", -1)
	require.NoError(t, err)
	assert.Nil(t, req)

	req, err = m.Map(context.Background(), plainField(), nil, -1)
	require.NoError(t, err)
	assert.Nil(t, req)

	unwritable := plainField()
	unwritable.IsStoreRequestSupported = false
	req, err = m.Map(context.Background(), unwritable, "x", -1)
	require.NoError(t, err)
	assert.Nil(t, req)

	calculated := plainField()
	calculated.IsCalculated = true
	req, err = m.Map(context.Background(), calculated, "x", -1)
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestMap_ChoiceScalar(t *testing.T) {
	m := newMapper(nil, nil)

	req, err := m.Map(context.Background(), choiceField(), "strategic", -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 10, req.Value)
}

func TestMap_ChoiceScalarUnmatchedDropped(t *testing.T) {
	m := newMapper(nil, nil)

	req, err := m.Map(context.Background(), choiceField(), "Galactic", -1)
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestMap_ChoiceListPartialDrop(t *testing.T) {
	m := newMapper(nil, nil)

	// The unmatched middle element is dropped; the rest survive.
	req, err := m.Map(context.Background(), choiceField(), []string{"Strategic", "Bogus", "Other"}, -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, []int{10, 11}, req.Value)
}

func TestMap_ChoiceListNothingResolves(t *testing.T) {
	m := newMapper(nil, nil)

	req, err := m.Map(context.Background(), choiceField(), []string{"Bogus", "Unknown"}, -1)
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestMap_ChoiceTypedEnum(t *testing.T) {
	m := newMapper(nil, nil)

	// Domain enums are string-kinded named types; they must resolve like
	// plain strings.
	req, err := m.Map(context.Background(), choiceField(), models.CompanyTypeStrategic, -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 10, req.Value)

	req, err = m.Map(context.Background(), choiceField(),
		[]models.CompanyType{models.CompanyTypeStrategic, models.CompanyTypeOther}, -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, []int{10, 11}, req.Value)
}

func TestMap_ReferenceByID(t *testing.T) {
	refs := &mockRefs{}
	m := newMapper(nil, refs)

	req, err := m.Map(context.Background(), refField(), models.RefID(500), -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 500, req.Value)
	assert.Equal(t, 0, refs.calls, "an id needs no resolution")
}

func TestMap_ReferenceByName(t *testing.T) {
	refs := &mockRefs{ids: map[string]int{"Fintech": 31}}
	m := newMapper(nil, refs)

	req, err := m.Map(context.Background(), refField(), models.RefName("Fintech"), -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 31, req.Value)
	assert.Equal(t, 1, refs.calls)
}

func TestMap_ReferenceNameMissProducesNothing(t *testing.T) {
	refs := &mockRefs{ids: map[string]int{}}
	m := newMapper(nil, refs)

	req, err := m.Map(context.Background(), refField(), models.RefName("Unknown Sector"), -1)
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestMap_ReferenceListSkipsUnresolvable(t *testing.T) {
	refs := &mockRefs{ids: map[string]int{"Fintech": 31, "Healthcare": 32}}
	m := newMapper(nil, refs)

	req, err := m.Map(context.Background(), refField(),
		[]models.Ref{models.RefName("Fintech"), models.RefName("Nope"), models.RefID(40)}, -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, []int{31, 40}, req.Value)
}

func TestMap_UserScalar(t *testing.T) {
	users := &mockUsers{ids: map[string]int{"ana@meridian.vc": 5}}
	m := newMapper(users, nil)

	req, err := m.Map(context.Background(), userField(), "ana@meridian.vc", -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, 5, req.Value)
}

func TestMap_UserList(t *testing.T) {
	users := &mockUsers{ids: map[string]int{"ana@meridian.vc": 5, "ben@meridian.vc": 6}}
	m := newMapper(users, nil)

	req, err := m.Map(context.Background(), userField(),
		[]string{"ana@meridian.vc", "nobody@meridian.vc", "ben@meridian.vc"}, -1)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, []int{5, 6}, req.Value)
}

func TestMap_UserNoneResolved(t *testing.T) {
	users := &mockUsers{}
	m := newMapper(users, nil)

	req, err := m.Map(context.Background(), userField(), "nobody@meridian.vc", -1)
	require.NoError(t, err)
	assert.Nil(t, req)
}
