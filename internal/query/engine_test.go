package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospector-cli/internal/model"
)

func ptrBool(v bool) *bool { return &v }
func ptrInt(v int) *int    { return &v }

func testRecords() []model.ContactRecord {
	return []model.ContactRecord{
		{
			ID: "c-1", Email: "ana@acme.io", Title: "CEO", Country: "Germany",
			Industry: "Fintech", Keywords: []string{"fintech", "payments"},
			QualityScore: 85, IsExecutive: true,
			ContactState: model.StateNotContacted, Stage: "Cold",
			EmailStatus: model.EmailStatusVerified,
			Lists:       []string{"q3-outbound"},
		},
		{
			ID: "c-2", Email: "bob@beta.co", Title: "Analyst", Country: "Germany",
			Industry:     "Insurance",
			QualityScore: 40, IsExecutive: false,
			ContactState: model.StateSent, Stage: "Warm",
			EmailStatus: model.EmailStatusUnverified,
			Lists:       []string{},
		},
		{
			ID: "c-3", Email: "eva@gamma.io", Title: "Founder", Country: "France",
			Industry: "Fintech", Keywords: []string{"fintech"},
			QualityScore: 72, IsExecutive: true,
			ContactState: model.StateInterestedNotContacted, Stage: "Cold",
			EmailStatus: model.EmailStatusVerified,
			Lists:       []string{"q3-outbound", "founders"},
		},
	}
}

func TestFilterWhereClausesAreANDed(t *testing.T) {
	records := testRecords()

	out := Filter(records, &model.ContactFilter{
		Where: []model.WhereClause{
			{Field: "industry", Operator: model.OpEquals, Value: "Fintech"},
			{Field: "qualityScore", Operator: model.OpGTE, Value: 80},
		},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "c-1", out[0].ID)
}

func TestFilterWhereAndLegacyCombine(t *testing.T) {
	records := testRecords()

	out := Filter(records, &model.ContactFilter{
		Where: []model.WhereClause{
			{Field: "industry", Operator: model.OpEquals, Value: "Fintech"},
		},
		Country: "France",
	})

	require.Len(t, out, 1)
	assert.Equal(t, "c-3", out[0].ID)
}

func TestFilterLegacyFilters(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name   string
		filter model.ContactFilter
		want   []string
	}{
		{"contact state", model.ContactFilter{ContactState: model.StateSent}, []string{"c-2"}},
		{"country", model.ContactFilter{Country: "Germany"}, []string{"c-1", "c-2"}},
		{"executives", model.ContactFilter{IsExecutive: ptrBool(true)}, []string{"c-1", "c-3"}},
		{"non executives", model.ContactFilter{IsExecutive: ptrBool(false)}, []string{"c-2"}},
		{"min quality score", model.ContactFilter{MinQualityScore: ptrInt(70)}, []string{"c-1", "c-3"}},
		{"email status", model.ContactFilter{EmailStatus: model.EmailStatusVerified}, []string{"c-1", "c-3"}},
		{"lists intersect", model.ContactFilter{Lists: []string{"founders"}}, []string{"c-3"}},
		{"has keywords", model.ContactFilter{HasKeywords: ptrBool(true)}, []string{"c-1", "c-3"}},
		{"lacks keywords", model.ContactFilter{HasKeywords: ptrBool(false)}, []string{"c-2"}},
		{"not contacted only", model.ContactFilter{NotContactedOnly: true}, []string{"c-1", "c-3"}},
		{"stage", model.ContactFilter{Stage: "Warm"}, []string{"c-2"}},
		{"no filters match all", model.ContactFilter{}, []string{"c-1", "c-2", "c-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Filter(records, &tt.filter)
			var ids []string
			for _, c := range out {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	records := testRecords()

	out := Filter(records, &model.ContactFilter{Industry: "Fintech"})
	require.Len(t, out, 2)
	assert.Equal(t, "c-1", out[0].ID)
	assert.Equal(t, "c-3", out[1].ID)

	// Input untouched.
	assert.Equal(t, testRecords(), records)
}

func TestPaginate(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name   string
		limit  int
		offset int
		want   []string
	}{
		{"first page", 2, 0, []string{"c-1", "c-2"}},
		{"second page", 2, 2, []string{"c-3"}},
		{"offset past end", 2, 10, nil},
		{"limit larger than set", 100, 0, []string{"c-1", "c-2", "c-3"}},
		{"offset only", 0, 1, []string{"c-2", "c-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(records, tt.limit, tt.offset)
			var ids []string
			for _, c := range page {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

// Total reflects the whole filtered set regardless of the page returned.
func TestRunTotalIndependentOfPagination(t *testing.T) {
	records := testRecords()

	result, err := Run(records, &model.ContactFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Returned)
	require.Len(t, result.Contacts, 1)
	assert.Equal(t, "c-2", result.Contacts[0]["id"])
}

func TestRunDefaultPreset(t *testing.T) {
	result, err := Run(testRecords(), &model.ContactFilter{})
	require.NoError(t, err)

	require.NotEmpty(t, result.Contacts)
	first := result.Contacts[0]
	assert.Contains(t, first, "id")
	assert.Contains(t, first, "contactState")
	assert.NotContains(t, first, "linkedinUrl", "summary preset omits detailed fields")
	assert.NotEmpty(t, result.FieldsReturned)
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		filter model.ContactFilter
	}{
		{"negative limit", model.ContactFilter{Limit: -1}},
		{"limit over max", model.ContactFilter{Limit: model.MaxLimit + 1}},
		{"negative offset", model.ContactFilter{Offset: -1}},
		{"unknown preset", model.ContactFilter{FieldPreset: "tiny"}},
		{"unknown contact state", model.ContactFilter{ContactState: "GHOSTED"}},
		{"unknown size bucket", model.ContactFilter{CompanySizeBucket: "Huge"}},
		{"unknown email status", model.ContactFilter{EmailStatus: "Maybe"}},
		{"score out of range", model.ContactFilter{MinQualityScore: ptrInt(101)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(testRecords(), &tt.filter)
			var ve *model.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestRunEmptyResult(t *testing.T) {
	result, err := Run(testRecords(), &model.ContactFilter{Country: "Japan"})
	require.NoError(t, err)

	assert.Zero(t, result.Total)
	assert.Zero(t, result.Returned)
	assert.Empty(t, result.Contacts)
}
