package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GeneratedDocument is the result of one generation call. It is never
// mutated; regenerating produces a new value.
type GeneratedDocument struct {
	// TemplateID references the template used.
	TemplateID string `json:"templateId"`

	// Body is the document text in Markdown.
	Body string `json:"documentText"`

	// Risk is the analysis returned alongside the body.
	Risk RiskAnalysis `json:"riskAnalysis"`

	// Form is the snapshot of form values used for generation.
	Form FormData `json:"formData"`

	// Jurisdiction is the governing state or territory.
	Jurisdiction string `json:"jurisdiction"`

	// ClauseIDs are the optional clauses requested, in selection order.
	ClauseIDs []string `json:"clauseIds,omitempty"`

	// GeneratedAt is when generation completed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// DocumentState is the lifecycle state of a saved document.
type DocumentState string

// DocumentStateDraft is the only state documents are saved in.
const DocumentStateDraft DocumentState = "Draft"

// InitialVersion is the version tag assigned on first save.
const InitialVersion = "1.0"

// SavedDocument is a generated document promoted to persistent storage.
type SavedDocument struct {
	ID           string        `json:"id"`
	TemplateID   string        `json:"templateId"`
	Title        string        `json:"title"`
	Body         string        `json:"documentText"`
	Risk         RiskAnalysis  `json:"riskAnalysis"`
	Form         FormData      `json:"formData"`
	Jurisdiction string        `json:"jurisdiction"`
	ClauseIDs    []string      `json:"clauseIds,omitempty"`
	Version      string        `json:"version"`
	State        DocumentState `json:"state"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	// Downloaded is set once the document has been exported.
	// Free tier accounts may download each document at most once.
	Downloaded bool `json:"downloaded"`
}

// FileName returns the export name, e.g. "Privacy-Policy-v1.0".
func (d SavedDocument) FileName() string {
	title := strings.Join(strings.Fields(d.Title), "-")
	if title == "" {
		title = d.TemplateID
	}
	return fmt.Sprintf("%s-v%s", title, d.Version)
}

// NextVersion increments the minor part of a "major.minor" version tag.
// Unparseable tags restart at InitialVersion.
func NextVersion(v string) string {
	major, minor, ok := strings.Cut(v, ".")
	if !ok {
		return InitialVersion
	}
	ma, err := strconv.Atoi(major)
	if err != nil {
		return InitialVersion
	}
	mi, err := strconv.Atoi(minor)
	if err != nil {
		return InitialVersion
	}
	return fmt.Sprintf("%d.%d", ma, mi+1)
}
