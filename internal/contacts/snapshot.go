// Package contacts holds the in-memory contact snapshot and its cache.
// Queries run against an immutable snapshot; re-ingestion is the only way
// to reflect upstream data changes.
package contacts

import "github.com/sells-group/prospector-cli/internal/model"

// Snapshot is an immutable view of one full ingestion pass, with id and
// email indexes. Safe for unlimited concurrent readers.
type Snapshot struct {
	records []model.ContactRecord
	byID    map[string]int
	byEmail map[string]int
}

// NewSnapshot indexes an ingested record collection. Input order is
// preserved. Duplicate emails keep the first occurrence (email is a
// secondary lookup key, not guaranteed unique in bad data).
func NewSnapshot(records []model.ContactRecord) *Snapshot {
	s := &Snapshot{
		records: records,
		byID:    make(map[string]int, len(records)),
		byEmail: make(map[string]int, len(records)),
	}
	for i, r := range records {
		if r.ID != "" {
			if _, dup := s.byID[r.ID]; !dup {
				s.byID[r.ID] = i
			}
		}
		if r.Email != "" {
			if _, dup := s.byEmail[r.Email]; !dup {
				s.byEmail[r.Email] = i
			}
		}
	}
	return s
}

// Records returns the full ordered record collection. Callers must treat it
// as read-only.
func (s *Snapshot) Records() []model.ContactRecord {
	return s.records
}

// Len returns the record count.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// ByID looks up a contact by id.
func (s *Snapshot) ByID(id string) (*model.ContactRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.records[i], true
}

// ByEmail looks up a contact by email.
func (s *Snapshot) ByEmail(email string) (*model.ContactRecord, bool) {
	i, ok := s.byEmail[email]
	if !ok {
		return nil, false
	}
	return &s.records[i], true
}

// Lookup resolves a contact by id first, then by email.
func (s *Snapshot) Lookup(key string) (*model.ContactRecord, bool) {
	if r, ok := s.ByID(key); ok {
		return r, true
	}
	return s.ByEmail(key)
}

// ByIDs materializes records for an externally ranked id list (e.g. from a
// semantic search collaborator), preserving the given order and silently
// skipping unknown ids.
func (s *Snapshot) ByIDs(ids []string) []model.ContactRecord {
	out := make([]model.ContactRecord, 0, len(ids))
	for _, id := range ids {
		if i, ok := s.byID[id]; ok {
			out = append(out, s.records[i])
		}
	}
	return out
}
