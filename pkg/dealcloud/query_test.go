package dealcloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryJSON(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "eq string",
			query: Eq("CompanyName", "Acme"),
			want:  `{"CompanyName":{"$eq":"Acme"}}`,
		},
		{
			name:  "eq number",
			query: Eq("EntryId", 42),
			want:  `{"EntryId":{"$eq":42}}`,
		},
		{
			name:  "contains",
			query: Contains("CompanyName", "acm"),
			want:  `{"CompanyName":{"$contains":"acm"}}`,
		},
		{
			name:  "and",
			query: And(Contains("FirstName", "jan"), Contains("LastName", "kow")),
			want:  `{"$and":[{"FirstName":{"$contains":"jan"}},{"LastName":{"$contains":"kow"}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.JSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
