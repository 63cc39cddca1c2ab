package query

import (
	"sort"

	"github.com/sells-group/prospector-cli/internal/model"
)

// Field presets, ascending: minimal ⊂ summary ⊂ detailed ⊂ full.
var (
	minimalFields = []string{
		"id", "firstName", "lastName", "email", "title", "companyName", "qualityScore",
	}
	summaryExtra = []string{
		"seniority", "country", "industry", "contactState", "isExecutive",
		"emailStatus", "stage",
	}
	detailedExtra = []string{
		"linkedinUrl", "city", "companyWebsite", "companySize",
		"companySizeBucket", "technologies", "keywords", "mobilePhone",
	}
)

// presetFields resolves a preset name to its field set. The full preset
// returns nil, meaning "no set-based projection".
func presetFields(p model.FieldPreset) map[string]bool {
	switch p {
	case model.PresetFull:
		return nil
	case model.PresetMinimal:
		return fieldSet(minimalFields)
	case model.PresetDetailed:
		return fieldSet(minimalFields, summaryExtra, detailedExtra)
	default: // summary is the default preset
		return fieldSet(minimalFields, summaryExtra)
	}
}

func fieldSet(groups ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, g := range groups {
		for _, f := range g {
			set[f] = true
		}
	}
	return set
}

// resolveFields computes the final projected field set for a filter:
// preset plus includes, minus excludes (excludes always win). A nil result
// means "all fields".
func resolveFields(f *model.ContactFilter) map[string]bool {
	set := presetFields(f.FieldPreset)

	if set == nil {
		// full bypasses projection entirely unless excludes are given.
		if len(f.ExcludeFields) == 0 {
			return nil
		}
		set = fieldSet(model.FieldNames())
	}

	for _, name := range f.IncludeFields {
		if model.KnownField(name) {
			set[name] = true
		}
	}
	for _, name := range f.ExcludeFields {
		delete(set, name)
	}
	return set
}

// Project reduces a record to the filter's chosen field subset. Fields
// absent on the record are silently skipped, never null-filled.
func Project(c *model.ContactRecord, f *model.ContactFilter) map[string]any {
	set := resolveFields(f)

	out := make(map[string]any)
	if set == nil {
		for _, name := range model.FieldNames() {
			if v, ok := model.Field(c, name); ok {
				out[name] = v
			}
		}
		return out
	}

	for name := range set {
		if v, ok := model.Field(c, name); ok {
			out[name] = v
		}
	}
	return out
}

// FieldsReturned lists the resolved projected field names, sorted, for the
// query response metadata.
func FieldsReturned(f *model.ContactFilter) []string {
	set := resolveFields(f)

	var names []string
	if set == nil {
		names = model.FieldNames()
	} else {
		names = make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
