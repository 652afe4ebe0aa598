package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// Importance
// =============================================================================

// Importance is the primary ranking of a finding. Higher values are more
// consequential; PyNWBValidation and Error are administrative levels that are
// reported regardless of the importance threshold.
type Importance int

// Importance levels, ascending.
const (
	// BestPracticeSuggestion marks an improvable data representation.
	BestPracticeSuggestion Importance = iota
	// BestPracticeViolation marks a very suboptimal data representation.
	BestPracticeViolation
	// Critical marks potentially incorrect data.
	Critical
	// PyNWBValidation marks a finding of the upstream schema validator.
	PyNWBValidation
	// Error marks a check or file read that failed while inspecting.
	Error
)

var importanceNames = map[Importance]string{
	BestPracticeSuggestion: "BEST_PRACTICE_SUGGESTION",
	BestPracticeViolation:  "BEST_PRACTICE_VIOLATION",
	Critical:               "CRITICAL",
	PyNWBValidation:        "PYNWB_VALIDATION",
	Error:                  "ERROR",
}

// Importances returns every importance level in descending order.
func Importances() []Importance {
	return []Importance{Error, PyNWBValidation, Critical, BestPracticeViolation, BestPracticeSuggestion}
}

// String returns the canonical upper-case name, e.g. "BEST_PRACTICE_VIOLATION".
func (i Importance) String() string {
	if name, ok := importanceNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Importance(%d)", int(i))
}

// Title returns the name with underscores replaced by spaces, as used in
// report headings.
func (i Importance) Title() string {
	return strings.ReplaceAll(i.String(), "_", " ")
}

// IsAdministrative reports whether the level describes a run-level problem
// rather than a best-practice finding.
func (i Importance) IsAdministrative() bool {
	return i == Error || i == PyNWBValidation
}

// Valid reports whether i is one of the declared levels.
func (i Importance) Valid() bool {
	_, ok := importanceNames[i]
	return ok
}

// ParseImportance converts a level name to an Importance.
// Matching is case-insensitive; spaces and dashes are accepted in place of underscores.
func ParseImportance(s string) (Importance, bool) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for imp, name := range importanceNames {
		if name == norm {
			return imp, true
		}
	}
	return BestPracticeSuggestion, false
}

// MarshalJSON encodes the importance by name.
func (i Importance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes an importance from its name.
func (i *Importance) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("importance must be a string: %w", err)
	}
	imp, ok := ParseImportance(name)
	if !ok {
		return fmt.Errorf("unknown importance %q", name)
	}
	*i = imp
	return nil
}

// =============================================================================
// Severity
// =============================================================================

// Severity ranks findings within a single importance bucket.
type Severity int

// Severity levels. SeverityNone is the sentinel for checks that do not assign one.
const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityHigh
)

// String returns the canonical upper-case name.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "NONE"
	case SeverityLow:
		return "LOW"
	case SeverityHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity converts a severity name to a Severity value.
// Returns SeverityNone and false if the name is not recognized.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "":
		return SeverityNone, true
	case "LOW":
		return SeverityLow, true
	case "HIGH":
		return SeverityHigh, true
	default:
		return SeverityNone, false
	}
}

// MarshalJSON encodes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("severity must be a string: %w", err)
	}
	sev, ok := ParseSeverity(name)
	if !ok {
		return fmt.Errorf("unknown severity %q", name)
	}
	*s = sev
	return nil
}
