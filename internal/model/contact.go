// Package model defines the canonical contact record, query types, and
// lifecycle tracking types shared across the prospector engine.
package model

import "time"

// ContactState is the outreach funnel position of a contact. The value on
// ContactRecord is derived from interaction flags at ingestion time; the
// tracker maintains an independently mutable state with the same vocabulary.
type ContactState string

const (
	StateNotContacted           ContactState = "NOT_CONTACTED"
	StateInterestedNotContacted ContactState = "INTERESTED_NOT_CONTACTED"
	StateSent                   ContactState = "SENT"
	StateOpened                 ContactState = "OPENED"
	StateBounced                ContactState = "BOUNCED"
	StateReplied                ContactState = "REPLIED"
	StateDemoed                 ContactState = "DEMOED"
	StateIncomplete             ContactState = "INCOMPLETE"

	// StateUnknown is reported for contacts with no tracking record. It is
	// never stored on a ContactRecord.
	StateUnknown ContactState = "UNKNOWN"
)

// ContactStates lists every valid derived/tracked state.
var ContactStates = []ContactState{
	StateNotContacted,
	StateInterestedNotContacted,
	StateSent,
	StateOpened,
	StateBounced,
	StateReplied,
	StateDemoed,
	StateIncomplete,
}

// ValidContactState reports whether s is one of the closed state vocabulary.
func ValidContactState(s ContactState) bool {
	for _, v := range ContactStates {
		if s == v {
			return true
		}
	}
	return false
}

// Company size buckets derived from the raw employee count.
const (
	SizeBucketMicro      = "1-10 (Micro)"
	SizeBucketSmall      = "11-50 (Small)"
	SizeBucketMedium     = "51-200 (Medium)"
	SizeBucketLarge      = "201-500 (Large)"
	SizeBucketEnterprise = "500+ (Enterprise)"
	SizeBucketUnknown    = "Unknown"
)

// SizeBuckets lists every valid company size bucket.
var SizeBuckets = []string{
	SizeBucketMicro,
	SizeBucketSmall,
	SizeBucketMedium,
	SizeBucketLarge,
	SizeBucketEnterprise,
	SizeBucketUnknown,
}

// Email verification statuses as exported by the upstream data source.
const (
	EmailStatusVerified    = "Verified"
	EmailStatusUnverified  = "Unverified"
	EmailStatusUserManaged = "User Managed"
)

// EmailStatuses lists the known email status vocabulary.
var EmailStatuses = []string{EmailStatusVerified, EmailStatusUnverified, EmailStatusUserManaged}

// Catch-all status value that contributes to the quality score.
const CatchAllStatusNot = "Not Catch-all"

// ContactRecord is one prospect after ingestion/normalization. Optional
// scalar fields use the empty string (or zero) for "absent"; the technologies,
// keywords, and departments slices are nil when absent, while Lists is always
// a slice (possibly empty).
type ContactRecord struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Title     string `json:"title,omitempty"`
	Seniority string `json:"seniority,omitempty"`

	EmailStatus    string `json:"emailStatus"`
	CatchAllStatus string `json:"catchAllStatus,omitempty"`

	LinkedinURL string `json:"linkedinUrl,omitempty"`
	TwitterURL  string `json:"twitterUrl,omitempty"`
	FacebookURL string `json:"facebookUrl,omitempty"`

	MobilePhone    string `json:"mobilePhone,omitempty"`
	WorkPhone      string `json:"workPhone,omitempty"`
	CorporatePhone string `json:"corporatePhone,omitempty"`

	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`

	CompanyName        string  `json:"companyName,omitempty"`
	CompanyWebsite     string  `json:"companyWebsite,omitempty"`
	CompanyLinkedinURL string  `json:"companyLinkedinUrl,omitempty"`
	CompanySize        int     `json:"companySize"`
	CompanySizeBucket  string  `json:"companySizeBucket"`
	Industry           string  `json:"industry,omitempty"`
	AnnualRevenue      float64 `json:"annualRevenue,omitempty"`
	TotalFunding       float64 `json:"totalFunding,omitempty"`
	LatestFunding      string  `json:"latestFunding,omitempty"`

	Technologies []string `json:"technologies,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Departments  []string `json:"departments,omitempty"`
	Lists        []string `json:"lists"`

	Stage string `json:"stage"`

	EmailSent    bool `json:"emailSent"`
	EmailOpen    bool `json:"emailOpen"`
	EmailBounced bool `json:"emailBounced"`
	Replied      bool `json:"replied"`
	Demoed       bool `json:"demoed"`

	// Derived fields, computed once at ingestion. Deterministic functions of
	// the raw row; always recomputable.
	ContactState ContactState `json:"contactState"`
	QualityScore int          `json:"qualityScore"`
	IsExecutive  bool         `json:"isExecutive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
