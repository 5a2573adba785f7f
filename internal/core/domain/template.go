package domain

import (
	"fmt"
	"strings"
)

// FormData maps a template field key to the value the user entered.
type FormData map[string]string

// Clone returns an independent copy, used to freeze the form at generation time.
func (f FormData) Clone() FormData {
	out := make(FormData, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// OptionalClause is an extra clause a user may merge into a document.
type OptionalClause struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Template describes a document type. Templates are immutable and defined at process start.
type Template struct {
	// ID is the stable identifier, e.g. "privacy".
	ID string `json:"id"`

	// Title is the human-readable document name.
	Title string `json:"title"`

	// Description explains what the document protects against.
	Description string `json:"description"`

	// Urgency is a short call to action shown in listings.
	Urgency string `json:"urgency"`

	// RiskTier tags how exposed a business is without this document.
	RiskTier RiskLevel `json:"riskTier"`

	// Compliance lists the legislation the document addresses.
	Compliance []string `json:"compliance"`

	// Fields are the required field keys, in display order.
	Fields []string `json:"fields"`

	// Clauses is the optional clause catalogue.
	Clauses []OptionalClause `json:"clauses,omitempty"`
}

// HasField returns true if key is one of the template's fields.
func (t Template) HasField(key string) bool {
	for _, f := range t.Fields {
		if f == key {
			return true
		}
	}
	return false
}

// Clause returns the optional clause with the given ID.
func (t Template) Clause(id string) (OptionalClause, bool) {
	for _, c := range t.Clauses {
		if c.ID == id {
			return c, true
		}
	}
	return OptionalClause{}, false
}

// SelectClauses resolves clause IDs in the order given. Selection order is
// preserved in the result. Unknown or repeated IDs are rejected.
func (t Template) SelectClauses(ids []string) ([]OptionalClause, error) {
	selected := make([]OptionalClause, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: clause %q selected twice", ErrInvalidInput, id)
		}
		c, ok := t.Clause(id)
		if !ok {
			return nil, fmt.Errorf("%w: template %s has no clause %q", ErrInvalidInput, t.ID, id)
		}
		seen[id] = true
		selected = append(selected, c)
	}
	return selected, nil
}

// ValidateFormData checks every required field is present and non-blank and
// that the form carries no keys outside the template. It returns a
// *ValidationError listing problems in template order.
func ValidateFormData(t Template, form FormData) error {
	verr := &ValidationError{}
	for _, field := range t.Fields {
		if strings.TrimSpace(form[field]) == "" {
			verr.Add(field, FieldLabel(field)+" is required.")
		}
	}
	for key := range form {
		if !t.HasField(key) {
			verr.Add(key, fmt.Sprintf("%s is not a field of %s.", key, t.Title))
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

var fieldLabels = map[string]string{
	"businessName":            "Business Legal Name",
	"abn":                     "ABN/ACN",
	"employeeName":            "Employee Full Name",
	"position":                "Position Title",
	"startDate":               "Start Date",
	"salary":                  "Salary/Wage (per annum or hour)",
	"workLocation":            "Primary Work Location",
	"employmentType":          "Employment Type (Full-time, Part-time, Casual)",
	"awardClassification":     "Modern Award & Classification (if any)",
	"contractorName":          "Contractor Name/Company",
	"contractorAbn":           "Contractor ABN",
	"services":                "Description of Services",
	"term":                    "Agreement Term or End Date",
	"fees":                    "Fees & Payment Schedule",
	"intellectualProperty":    "Intellectual Property Ownership",
	"clientName":              "Client Name",
	"paymentTerms":            "Payment Terms (e.g., 14 days)",
	"limitationOfLiability":   "Limitation of Liability Amount",
	"websiteUrl":              "Website URL",
	"dataCollected":           "Types of Data Collected",
	"dataUsage":               "How Data is Used",
	"contactEmail":            "Privacy Officer Contact Email",
	"jurisdiction":            "Governing Law (e.g., New South Wales)",
	"disclosingParty":         "Disclosing Party Name",
	"receivingParty":          "Receiving Party Name",
	"effectiveDate":           "Effective Date",
	"confidentialInformation": "Definition of Confidential Information",
}

// FieldLabel returns the display label for a field key, falling back to the key itself.
func FieldLabel(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	return key
}

// DefaultJurisdiction is used when none is chosen.
const DefaultJurisdiction = "New South Wales"

var jurisdictions = []string{
	"New South Wales",
	"Victoria",
	"Queensland",
	"Western Australia",
	"South Australia",
	"Tasmania",
	"ACT",
	"Northern Territory",
}

// Jurisdictions returns the Australian states and territories documents can be governed by.
func Jurisdictions() []string {
	out := make([]string, len(jurisdictions))
	copy(out, jurisdictions)
	return out
}

// NormaliseJurisdiction matches a jurisdiction case-insensitively. An empty
// value resolves to DefaultJurisdiction.
func NormaliseJurisdiction(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultJurisdiction, nil
	}
	for _, j := range jurisdictions {
		if strings.EqualFold(j, s) {
			return j, nil
		}
	}
	return "", fmt.Errorf("%w: unknown jurisdiction %q", ErrInvalidInput, s)
}
