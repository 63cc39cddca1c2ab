package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldNamesMatchJSONTags(t *testing.T) {
	// Every queryable field name must be a JSON key of ContactRecord, so
	// projections and raw records agree on naming.
	data, err := json.Marshal(ContactRecord{
		Email:        "a@b.c",
		EmailStatus:  EmailStatusVerified,
		Lists:        []string{},
		Technologies: []string{"x"},
		Keywords:     []string{"x"},
		Departments:  []string{"x"},
		FirstName:    "x", LastName: "x", Title: "x", Seniority: "x",
		CatchAllStatus: "x", LinkedinURL: "x", TwitterURL: "x", FacebookURL: "x",
		MobilePhone: "x", WorkPhone: "x", CorporatePhone: "x",
		City: "x", State: "x", Country: "x",
		CompanyName: "x", CompanyWebsite: "x", CompanyLinkedinURL: "x",
		CompanySize: 1, CompanySizeBucket: SizeBucketMicro,
		Industry: "x", AnnualRevenue: 1, TotalFunding: 1, LatestFunding: "x",
		Stage: "x", ContactState: StateNotContacted,
	})
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(data, &asMap))

	for _, name := range FieldNames() {
		assert.Contains(t, asMap, name, "field %s has no matching JSON key", name)
	}
}

func TestFieldPresence(t *testing.T) {
	c := &ContactRecord{
		ID:           "c-1",
		Country:      "Germany",
		Keywords:     []string{"fintech"},
		Lists:        []string{},
		QualityScore: 0,
	}

	tests := []struct {
		field       string
		wantPresent bool
	}{
		{"id", true},
		{"country", true},
		{"keywords", true},
		{"city", false},
		{"technologies", false},
		{"companySize", false},
		{"lists", true},
		{"qualityScore", true},
		{"contactState", true},
		{"isExecutive", true},
		{"emailSent", true},
		{"unknownField", false},
	}

	for _, tt := range tests {
		_, present := Field(c, tt.field)
		assert.Equal(t, tt.wantPresent, present, "field %s", tt.field)
	}
}

func TestFieldValueKinds(t *testing.T) {
	c := &ContactRecord{QualityScore: 85, ContactState: StateSent, CompanySize: 40}

	v, ok := Field(c, "qualityScore")
	require.True(t, ok)
	assert.IsType(t, float64(0), v, "numbers surface as float64 for the evaluator")

	v, ok = Field(c, "contactState")
	require.True(t, ok)
	assert.IsType(t, "", v, "states surface as plain strings")

	v, ok = Field(c, "companySize")
	require.True(t, ok)
	assert.Equal(t, float64(40), v)
}

func TestKnownField(t *testing.T) {
	assert.True(t, KnownField("email"))
	assert.True(t, KnownField("companySizeBucket"))
	assert.False(t, KnownField("Email"), "field names are case sensitive")
	assert.False(t, KnownField(""))
}

func TestValidContactState(t *testing.T) {
	for _, s := range ContactStates {
		assert.True(t, ValidContactState(s))
	}
	assert.False(t, ValidContactState(StateUnknown), "UNKNOWN is reported, never accepted")
	assert.False(t, ValidContactState("GHOSTED"))
	assert.False(t, ValidContactState(""))
}
