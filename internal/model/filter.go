package model

import "fmt"

// Operator is a predicate operator in a WhereClause. Operators are evaluated
// totally: unrecognized operators and type mismatches evaluate to false
// rather than erroring.
type Operator string

const (
	OpEquals           Operator = "equals"
	OpNotEquals        Operator = "notEquals"
	OpContains         Operator = "contains"
	OpNotContains      Operator = "notContains"
	OpStartsWith       Operator = "startsWith"
	OpEndsWith         Operator = "endsWith"
	OpGT               Operator = "gt"
	OpGTE              Operator = "gte"
	OpLT               Operator = "lt"
	OpLTE              Operator = "lte"
	OpIn               Operator = "in"
	OpNotIn            Operator = "notIn"
	OpArrayContains    Operator = "arrayContains"
	OpArrayContainsAny Operator = "arrayContainsAny"
	OpArrayContainsAll Operator = "arrayContainsAll"
	OpExists           Operator = "exists"
	OpNotExists        Operator = "notExists"
)

// WhereClause is one filter condition against a contact field.
type WhereClause struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
	Values   []any    `json:"values,omitempty"`
}

// FieldPreset names a fixed set of fields returned by the projector.
type FieldPreset string

const (
	PresetMinimal  FieldPreset = "minimal"
	PresetSummary  FieldPreset = "summary"
	PresetDetailed FieldPreset = "detailed"
	PresetFull     FieldPreset = "full"
)

// Pagination bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ContactFilter is a query request: where clauses (AND-combined), legacy
// convenience filters, pagination, and field selection.
type ContactFilter struct {
	Where []WhereClause `json:"where,omitempty"`

	// Legacy convenience filters, each AND-combined with Where when set.
	// Equivalent to pre-built where clauses; kept for backward compatibility.
	Stage             string       `json:"stage,omitempty"`
	ContactState      ContactState `json:"contactState,omitempty"`
	Seniority         string       `json:"seniority,omitempty"`
	EmailStatus       string       `json:"emailStatus,omitempty"`
	Lists             []string     `json:"lists,omitempty"`
	Country           string       `json:"country,omitempty"`
	Industry          string       `json:"industry,omitempty"`
	MinQualityScore   *int         `json:"minQualityScore,omitempty"`
	IsExecutive       *bool        `json:"isExecutive,omitempty"`
	CompanySizeBucket string       `json:"companySizeBucket,omitempty"`
	HasKeywords       *bool        `json:"hasKeywords,omitempty"`
	HasTechnologies   *bool        `json:"hasTechnologies,omitempty"`
	NotContactedOnly  bool         `json:"notContactedOnly,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	FieldPreset   FieldPreset `json:"fieldPreset,omitempty"`
	IncludeFields []string    `json:"includeFields,omitempty"`
	ExcludeFields []string    `json:"excludeFields,omitempty"`
}

// Validate rejects malformed filters before any evaluation begins.
func (f *ContactFilter) Validate() error {
	if f.Limit < 0 {
		return &ValidationError{Field: "limit", Message: "must be >= 0"}
	}
	if f.Limit > MaxLimit {
		return &ValidationError{Field: "limit", Message: fmt.Sprintf("must be <= %d", MaxLimit)}
	}
	if f.Offset < 0 {
		return &ValidationError{Field: "offset", Message: "must be >= 0"}
	}
	switch f.FieldPreset {
	case "", PresetMinimal, PresetSummary, PresetDetailed, PresetFull:
	default:
		return &ValidationError{Field: "fieldPreset", Message: fmt.Sprintf("unknown preset %q", f.FieldPreset)}
	}
	if f.ContactState != "" && !ValidContactState(f.ContactState) {
		return &ValidationError{Field: "contactState", Message: fmt.Sprintf("unknown state %q", f.ContactState)}
	}
	if f.EmailStatus != "" {
		valid := false
		for _, s := range EmailStatuses {
			if f.EmailStatus == s {
				valid = true
				break
			}
		}
		if !valid {
			return &ValidationError{Field: "emailStatus", Message: fmt.Sprintf("unknown status %q", f.EmailStatus)}
		}
	}
	if f.CompanySizeBucket != "" {
		valid := false
		for _, b := range SizeBuckets {
			if f.CompanySizeBucket == b {
				valid = true
				break
			}
		}
		if !valid {
			return &ValidationError{Field: "companySizeBucket", Message: fmt.Sprintf("unknown bucket %q", f.CompanySizeBucket)}
		}
	}
	if f.MinQualityScore != nil && (*f.MinQualityScore < 0 || *f.MinQualityScore > 100) {
		return &ValidationError{Field: "minQualityScore", Message: "must be in [0,100]"}
	}
	return nil
}

// EffectiveLimit resolves the page size, applying the default for zero.
func (f *ContactFilter) EffectiveLimit() int {
	if f.Limit == 0 {
		return DefaultLimit
	}
	return f.Limit
}

// QueryResult is the response of queryContacts.
type QueryResult struct {
	Contacts       []map[string]any `json:"contacts"`
	Total          int              `json:"total"`
	Returned       int              `json:"returned"`
	FieldsReturned []string         `json:"fieldsReturned"`
}

// HighValueTargets counts the standing high-priority segments.
type HighValueTargets struct {
	Executives              int `json:"executives"`
	VerifiedNotContacted    int `json:"verifiedNotContacted"`
	HighQualityNotContacted int `json:"highQualityNotContacted"`
}

// Stats summarizes the full record set, independent of any filter.
type Stats struct {
	Total            int              `json:"total"`
	ByState          map[string]int   `json:"byState"`
	ByStage          map[string]int   `json:"byStage"`
	HighValueTargets HighValueTargets `json:"highValueTargets"`
	AvgQualityScore  float64          `json:"avgQualityScore"`
	Breakdown        map[string]int   `json:"breakdown,omitempty"`
}
