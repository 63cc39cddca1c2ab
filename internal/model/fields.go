package model

// FieldGetter resolves a named field on a record. The second return reports
// whether the field is present (defined and non-null in the source data);
// absent optional scalars and nil slices resolve to present=false.
type FieldGetter func(*ContactRecord) (any, bool)

func str(v string) (any, bool)   { return v, v != "" }
func arr(v []string) (any, bool) { return v, v != nil }
func num(v float64) (any, bool)  { return v, v != 0 }
func always(v any) (any, bool)   { return v, true }

// fieldGetters maps every queryable field name to its accessor. Unknown
// field names resolve to "absent" without reflection.
var fieldGetters = map[string]FieldGetter{
	"id":                 func(c *ContactRecord) (any, bool) { return str(c.ID) },
	"email":              func(c *ContactRecord) (any, bool) { return str(c.Email) },
	"firstName":          func(c *ContactRecord) (any, bool) { return str(c.FirstName) },
	"lastName":           func(c *ContactRecord) (any, bool) { return str(c.LastName) },
	"title":              func(c *ContactRecord) (any, bool) { return str(c.Title) },
	"seniority":          func(c *ContactRecord) (any, bool) { return str(c.Seniority) },
	"emailStatus":        func(c *ContactRecord) (any, bool) { return str(c.EmailStatus) },
	"catchAllStatus":     func(c *ContactRecord) (any, bool) { return str(c.CatchAllStatus) },
	"linkedinUrl":        func(c *ContactRecord) (any, bool) { return str(c.LinkedinURL) },
	"twitterUrl":         func(c *ContactRecord) (any, bool) { return str(c.TwitterURL) },
	"facebookUrl":        func(c *ContactRecord) (any, bool) { return str(c.FacebookURL) },
	"mobilePhone":        func(c *ContactRecord) (any, bool) { return str(c.MobilePhone) },
	"workPhone":          func(c *ContactRecord) (any, bool) { return str(c.WorkPhone) },
	"corporatePhone":     func(c *ContactRecord) (any, bool) { return str(c.CorporatePhone) },
	"city":               func(c *ContactRecord) (any, bool) { return str(c.City) },
	"state":              func(c *ContactRecord) (any, bool) { return str(c.State) },
	"country":            func(c *ContactRecord) (any, bool) { return str(c.Country) },
	"companyName":        func(c *ContactRecord) (any, bool) { return str(c.CompanyName) },
	"companyWebsite":     func(c *ContactRecord) (any, bool) { return str(c.CompanyWebsite) },
	"companyLinkedinUrl": func(c *ContactRecord) (any, bool) { return str(c.CompanyLinkedinURL) },
	"companySize":        func(c *ContactRecord) (any, bool) { return num(float64(c.CompanySize)) },
	"companySizeBucket":  func(c *ContactRecord) (any, bool) { return str(c.CompanySizeBucket) },
	"industry":           func(c *ContactRecord) (any, bool) { return str(c.Industry) },
	"annualRevenue":      func(c *ContactRecord) (any, bool) { return num(c.AnnualRevenue) },
	"totalFunding":       func(c *ContactRecord) (any, bool) { return num(c.TotalFunding) },
	"latestFunding":      func(c *ContactRecord) (any, bool) { return str(c.LatestFunding) },
	"technologies":       func(c *ContactRecord) (any, bool) { return arr(c.Technologies) },
	"keywords":           func(c *ContactRecord) (any, bool) { return arr(c.Keywords) },
	"departments":        func(c *ContactRecord) (any, bool) { return arr(c.Departments) },
	"lists":              func(c *ContactRecord) (any, bool) { return always(c.Lists) },
	"stage":              func(c *ContactRecord) (any, bool) { return str(c.Stage) },
	"emailSent":          func(c *ContactRecord) (any, bool) { return always(c.EmailSent) },
	"emailOpen":          func(c *ContactRecord) (any, bool) { return always(c.EmailOpen) },
	"emailBounced":       func(c *ContactRecord) (any, bool) { return always(c.EmailBounced) },
	"replied":            func(c *ContactRecord) (any, bool) { return always(c.Replied) },
	"demoed":             func(c *ContactRecord) (any, bool) { return always(c.Demoed) },
	"contactState":       func(c *ContactRecord) (any, bool) { return string(c.ContactState), true },
	"qualityScore":       func(c *ContactRecord) (any, bool) { return float64(c.QualityScore), true },
	"isExecutive":        func(c *ContactRecord) (any, bool) { return always(c.IsExecutive) },
}

// Field resolves a named field on c. Unknown names return (nil, false).
func Field(c *ContactRecord, name string) (any, bool) {
	g, ok := fieldGetters[name]
	if !ok {
		return nil, false
	}
	return g(c)
}

// KnownField reports whether name is part of the record schema.
func KnownField(name string) bool {
	_, ok := fieldGetters[name]
	return ok
}

// FieldNames returns every queryable field name, in no particular order.
func FieldNames() []string {
	names := make([]string, 0, len(fieldGetters))
	for n := range fieldGetters {
		names = append(names, n)
	}
	return names
}
