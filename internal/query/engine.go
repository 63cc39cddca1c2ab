package query

import (
	"github.com/sells-group/prospector-cli/internal/model"
)

// Filter returns the order-preserving subsequence of records matching every
// where clause and every legacy convenience filter. Read-only: input records
// are never mutated.
func Filter(records []model.ContactRecord, f *model.ContactFilter) []model.ContactRecord {
	var out []model.ContactRecord
	for i := range records {
		if matches(&records[i], f) {
			out = append(out, records[i])
		}
	}
	return out
}

func matches(c *model.ContactRecord, f *model.ContactFilter) bool {
	for _, clause := range f.Where {
		if !Evaluate(c, clause) {
			return false
		}
	}

	// Legacy convenience filters, each AND-combined when present.
	if f.Stage != "" && c.Stage != f.Stage {
		return false
	}
	if f.ContactState != "" && c.ContactState != f.ContactState {
		return false
	}
	if f.Seniority != "" && c.Seniority != f.Seniority {
		return false
	}
	if f.EmailStatus != "" && c.EmailStatus != f.EmailStatus {
		return false
	}
	if len(f.Lists) > 0 && !intersects(c.Lists, f.Lists) {
		return false
	}
	if f.Country != "" && c.Country != f.Country {
		return false
	}
	if f.Industry != "" && c.Industry != f.Industry {
		return false
	}
	if f.MinQualityScore != nil && c.QualityScore < *f.MinQualityScore {
		return false
	}
	if f.IsExecutive != nil && c.IsExecutive != *f.IsExecutive {
		return false
	}
	if f.CompanySizeBucket != "" && c.CompanySizeBucket != f.CompanySizeBucket {
		return false
	}
	if f.HasKeywords != nil && (len(c.Keywords) > 0) != *f.HasKeywords {
		return false
	}
	if f.HasTechnologies != nil && (len(c.Technologies) > 0) != *f.HasTechnologies {
		return false
	}
	if f.NotContactedOnly &&
		c.ContactState != model.StateNotContacted &&
		c.ContactState != model.StateInterestedNotContacted {
		return false
	}

	return true
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Paginate applies offset then limit to an already-filtered sequence.
// Pagination never affects which records match, only which are returned.
func Paginate(records []model.ContactRecord, limit, offset int) []model.ContactRecord {
	if offset >= len(records) {
		return nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

// Run validates the filter, applies it against the record set, paginates,
// and projects the page. The full filtered set is counted before pagination.
func Run(records []model.ContactRecord, f *model.ContactFilter) (*model.QueryResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	matched := Filter(records, f)
	page := Paginate(matched, f.EffectiveLimit(), f.Offset)

	projected := make([]map[string]any, 0, len(page))
	for i := range page {
		projected = append(projected, Project(&page[i], f))
	}

	return &model.QueryResult{
		Contacts:       projected,
		Total:          len(matched),
		Returned:       len(projected),
		FieldsReturned: FieldsReturned(f),
	}, nil
}
