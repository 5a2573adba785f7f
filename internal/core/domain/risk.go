package domain

import (
	"fmt"
	"strings"
)

// RiskLevel is the four-level severity classification of a risk score.
type RiskLevel string

// Available risk levels, in increasing severity.
const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// Score bounds for a RiskAnalysis.
const (
	MinRiskScore = 0
	MaxRiskScore = 100
)

// RiskLevels lists every level in increasing severity.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical}
}

// ParseRiskLevel converts a case-insensitive level name into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	for _, l := range RiskLevels() {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, true
		}
	}
	return "", false
}

// IsValid returns true if the level is one of the four enumerated values.
func (l RiskLevel) IsValid() bool {
	return l.Severity() >= 0
}

// Severity returns the ordinal of the level, 0 for Low up to 3 for Critical.
// Unknown levels return -1.
func (l RiskLevel) Severity() int {
	for i, known := range RiskLevels() {
		if l == known {
			return i
		}
	}
	return -1
}

// RequiresBreakdown returns true if an analysis at this level must list its factors.
func (l RiskLevel) RequiresBreakdown() bool {
	return l != RiskLevelLow
}

// String returns the string representation.
func (l RiskLevel) String() string {
	return string(l)
}

// RiskFactor is one entry of a risk breakdown.
type RiskFactor struct {
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}

// RiskAnalysis is the normalised risk assessment attached to a generated document.
type RiskAnalysis struct {
	// Score is an integer in [0,100].
	Score int `json:"score"`

	// Level is derived from Score by a RiskPolicy.
	Level RiskLevel `json:"level"`

	// Summary is a single sentence describing the primary risk.
	Summary string `json:"summary"`

	// Breakdown lists the individual risk factors in order.
	Breakdown []RiskFactor `json:"breakdown"`
}

// RiskPolicy maps scores to levels. A score strictly greater than a
// threshold reaches that level. Thresholds must be strictly increasing,
// which keeps the mapping non-decreasing in score.
type RiskPolicy struct {
	Medium   int
	High     int
	Critical int
}

// DefaultRiskPolicy returns the default thresholds, shared with the quiz.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{Medium: 20, High: 50, Critical: 80}
}

// Validate checks the thresholds are ordered and within the score range.
func (p RiskPolicy) Validate() error {
	if p.Medium < MinRiskScore || p.Critical >= MaxRiskScore {
		return fmt.Errorf("%w: risk thresholds must lie within [%d,%d)", ErrInvalidInput, MinRiskScore, MaxRiskScore)
	}
	if p.Medium >= p.High || p.High >= p.Critical {
		return fmt.Errorf("%w: risk thresholds must be strictly increasing (medium %d, high %d, critical %d)",
			ErrInvalidInput, p.Medium, p.High, p.Critical)
	}
	return nil
}

// Classify returns the level for a score.
func (p RiskPolicy) Classify(score int) RiskLevel {
	switch {
	case score > p.Critical:
		return RiskLevelCritical
	case score > p.High:
		return RiskLevelHigh
	case score > p.Medium:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// NewRiskAnalysis constructs an analysis whose level is derived from score.
func (p RiskPolicy) NewRiskAnalysis(score int, summary string, breakdown []RiskFactor) (RiskAnalysis, error) {
	a := RiskAnalysis{
		Score:     score,
		Level:     p.Classify(score),
		Summary:   summary,
		Breakdown: breakdown,
	}
	if err := a.Validate(p); err != nil {
		return RiskAnalysis{}, err
	}
	return a, nil
}

// Validate checks the analysis against the policy.
func (a RiskAnalysis) Validate(p RiskPolicy) error {
	if a.Score < MinRiskScore || a.Score > MaxRiskScore {
		return fmt.Errorf("%w: risk score %d outside [%d,%d]", ErrInvalidInput, a.Score, MinRiskScore, MaxRiskScore)
	}
	if !a.Level.IsValid() {
		return fmt.Errorf("%w: unknown risk level %q", ErrInvalidInput, a.Level)
	}
	if want := p.Classify(a.Score); a.Level != want {
		return fmt.Errorf("%w: risk level %s inconsistent with score %d (want %s)", ErrInvalidInput, a.Level, a.Score, want)
	}
	if a.Breakdown == nil {
		return fmt.Errorf("%w: risk breakdown missing", ErrInvalidInput)
	}
	if len(a.Breakdown) == 0 && a.Level.RequiresBreakdown() {
		return fmt.Errorf("%w: risk breakdown empty at level %s", ErrInvalidInput, a.Level)
	}
	for i, f := range a.Breakdown {
		if strings.TrimSpace(f.Title) == "" {
			return fmt.Errorf("%w: risk factor %d has no title", ErrInvalidInput, i)
		}
	}
	return nil
}
