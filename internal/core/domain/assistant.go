package domain

import "strings"

// GroundingSource is a web citation attached to an assistant answer.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// IsComplete returns true if both URI and title are present.
func (s GroundingSource) IsComplete() bool {
	return strings.TrimSpace(s.URI) != "" && strings.TrimSpace(s.Title) != ""
}

// AssistantResponse is the completed answer to one question.
type AssistantResponse struct {
	Answer  string            `json:"answer"`
	Sources []GroundingSource `json:"sources"`
}

// DedupeSources drops incomplete sources and keeps the first occurrence of
// each URI, preserving first-seen order. URIs and titles are compared and
// returned without surrounding whitespace.
func DedupeSources(sources []GroundingSource) []GroundingSource {
	out := make([]GroundingSource, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if !s.IsComplete() {
			continue
		}
		s.URI = strings.TrimSpace(s.URI)
		s.Title = strings.TrimSpace(s.Title)
		if seen[s.URI] {
			continue
		}
		seen[s.URI] = true
		out = append(out, s)
	}
	return out
}
