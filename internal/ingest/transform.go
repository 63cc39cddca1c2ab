// Package ingest turns raw tabular prospect rows into canonical contact
// records, computing the derived quality score, executive flag, and funnel
// state deterministically.
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/prospector-cli/internal/model"
)

// RawRow is one source row: an arbitrary mapping from column name to raw
// string value, as produced by the CSV export.
type RawRow map[string]string

// Column names as exported by the upstream prospecting tool.
const (
	colID            = "Apollo Contact Id"
	colFirstName     = "First Name"
	colLastName      = "Last Name"
	colEmail         = "Email"
	colEmailStatus   = "Email Status"
	colCatchAll      = "Primary Email Catch-all Status"
	colTitle         = "Title"
	colSeniority     = "Seniority"
	colDepartments   = "Departments"
	colLinkedin      = "Person Linkedin Url"
	colTwitter       = "Twitter Url"
	colFacebook      = "Facebook Url"
	colCity          = "City"
	colState         = "State"
	colCountry       = "Country"
	colCompanyName   = "Company Name"
	colWebsite       = "Website"
	colCompanyLI     = "Company Linkedin Url"
	colEmployees     = "# Employees"
	colIndustry      = "Industry"
	colKeywords      = "Keywords"
	colTechnologies  = "Technologies"
	colLists         = "Lists"
	colStage         = "Stage"
	colMobilePhone   = "Mobile Phone"
	colWorkPhone     = "Work Direct Phone"
	colCorpPhone     = "Corporate Phone"
	colAnnualRevenue = "Annual Revenue"
	colTotalFunding  = "Total Funding"
	colLatestFunding = "Latest Funding"
	colEmailSent     = "Email Sent"
	colEmailOpen     = "Email Open"
	colEmailBounced  = "Email Bounced"
	colReplied       = "Replied"
	colDemoed        = "Demoed"
)

func (r RawRow) get(col string) string {
	return strings.TrimSpace(r[col])
}

func (r RawRow) has(col string) bool {
	return r.get(col) != ""
}

// truthy implements the loose boolean parsing used by the source data:
// the string "true" in any casing counts, everything else is false.
func truthy(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// splitList splits a comma-separated field into trimmed segments. Empty
// input yields nil ("absent", not an empty list).
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, seg := range strings.Split(s, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Normalize transforms one raw row into a canonical ContactRecord. Total
// over well-formed rows: a row missing identity fields still yields a record
// with empty id/email rather than failing the batch.
func Normalize(row RawRow, now time.Time) model.ContactRecord {
	size, _ := strconv.Atoi(row.get(colEmployees))
	revenue, _ := strconv.ParseFloat(row.get(colAnnualRevenue), 64)
	funding, _ := strconv.ParseFloat(row.get(colTotalFunding), 64)

	lists := splitList(row.get(colLists))
	if lists == nil {
		lists = []string{}
	}

	emailStatus := row.get(colEmailStatus)
	if emailStatus == "" {
		emailStatus = model.EmailStatusUserManaged
	}
	stage := row.get(colStage)
	if stage == "" {
		stage = "Cold"
	}

	return model.ContactRecord{
		ID:                 row.get(colID),
		Email:              row.get(colEmail),
		FirstName:          row.get(colFirstName),
		LastName:           row.get(colLastName),
		Title:              row.get(colTitle),
		Seniority:          row.get(colSeniority),
		EmailStatus:        emailStatus,
		CatchAllStatus:     row.get(colCatchAll),
		LinkedinURL:        row.get(colLinkedin),
		TwitterURL:         row.get(colTwitter),
		FacebookURL:        row.get(colFacebook),
		MobilePhone:        row.get(colMobilePhone),
		WorkPhone:          row.get(colWorkPhone),
		CorporatePhone:     row.get(colCorpPhone),
		City:               row.get(colCity),
		State:              row.get(colState),
		Country:            row.get(colCountry),
		CompanyName:        row.get(colCompanyName),
		CompanyWebsite:     row.get(colWebsite),
		CompanyLinkedinURL: row.get(colCompanyLI),
		CompanySize:        size,
		CompanySizeBucket:  sizeBucket(size),
		Industry:           row.get(colIndustry),
		AnnualRevenue:      revenue,
		TotalFunding:       funding,
		LatestFunding:      row.get(colLatestFunding),
		Technologies:       splitList(row.get(colTechnologies)),
		Keywords:           splitList(row.get(colKeywords)),
		Departments:        splitList(row.get(colDepartments)),
		Lists:              lists,
		Stage:              stage,
		EmailSent:          truthy(row.get(colEmailSent)),
		EmailOpen:          truthy(row.get(colEmailOpen)),
		EmailBounced:       truthy(row.get(colEmailBounced)),
		Replied:            truthy(row.get(colReplied)),
		Demoed:             truthy(row.get(colDemoed)),
		ContactState:       deriveState(row),
		QualityScore:       qualityScore(row),
		IsExecutive:        isExecutive(row),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// sizeBucket maps an employee count onto the closed bucket vocabulary.
// Zero or unparseable counts bucket as Unknown.
func sizeBucket(size int) string {
	switch {
	case size <= 0:
		return model.SizeBucketUnknown
	case size <= 10:
		return model.SizeBucketMicro
	case size <= 50:
		return model.SizeBucketSmall
	case size <= 200:
		return model.SizeBucketMedium
	case size <= 500:
		return model.SizeBucketLarge
	default:
		return model.SizeBucketEnterprise
	}
}

// qualityScore computes the additive 0-100 completeness/verification score.
// Weights are independent; presence means non-empty after trim.
func qualityScore(row RawRow) int {
	score := 0

	// Basic info (40 points).
	if row.has(colFirstName) {
		score += 5
	}
	if row.has(colLastName) {
		score += 5
	}
	if row.has(colEmail) {
		score += 10
	}
	if row.has(colTitle) {
		score += 10
	}
	if row.has(colCompanyName) {
		score += 10
	}

	// Contact details (20 points).
	if row.has(colLinkedin) {
		score += 10
	}
	if row.has(colMobilePhone) || row.has(colWorkPhone) || row.has(colCorpPhone) {
		score += 10
	}

	// Rich data (20 points).
	if row.has(colKeywords) {
		score += 5
	}
	if row.has(colTechnologies) {
		score += 5
	}
	if row.has(colIndustry) {
		score += 5
	}
	if row.has(colEmployees) {
		score += 5
	}

	// Verification (20 points).
	if row.get(colEmailStatus) == model.EmailStatusVerified {
		score += 10
	}
	if row.get(colCatchAll) == model.CatchAllStatusNot {
		score += 10
	}

	return score
}

var executiveKeywords = []string{"ceo", "cto", "cfo", "coo", "chief", "founder"}

// isExecutive flags C-suite and founder contacts by seniority or title
// keywords. Substring match, not whole-word.
func isExecutive(row RawRow) bool {
	seniority := strings.ToLower(row.get(colSeniority))
	if strings.Contains(seniority, "suite") || strings.Contains(seniority, "founder") {
		return true
	}
	title := strings.ToLower(row.get(colTitle))
	for _, kw := range executiveKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// deriveState infers the funnel state from interaction flags. Priority
// ordered, first match wins. This is the ingestion-time signal, independent
// of the tracker's mutable state.
func deriveState(row RawRow) model.ContactState {
	switch {
	case truthy(row.get(colReplied)):
		return model.StateReplied
	case truthy(row.get(colDemoed)):
		return model.StateDemoed
	case truthy(row.get(colEmailBounced)):
		return model.StateBounced
	case truthy(row.get(colEmailOpen)):
		return model.StateOpened
	case truthy(row.get(colEmailSent)):
		return model.StateSent
	case row.has(colEmail):
		if row.get(colStage) == "Interested" {
			return model.StateInterestedNotContacted
		}
		return model.StateNotContacted
	default:
		return model.StateIncomplete
	}
}
