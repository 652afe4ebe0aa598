package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportanceOrdering(t *testing.T) {
	assert.Less(t, BestPracticeSuggestion, BestPracticeViolation)
	assert.Less(t, BestPracticeViolation, Critical)
	assert.True(t, Error.IsAdministrative())
	assert.True(t, PyNWBValidation.IsAdministrative())
	assert.False(t, Critical.IsAdministrative())
	assert.Equal(t, []Importance{Error, PyNWBValidation, Critical, BestPracticeViolation, BestPracticeSuggestion}, Importances())
}

func TestParseImportance(t *testing.T) {
	tests := []struct {
		in   string
		want Importance
		ok   bool
	}{
		{"CRITICAL", Critical, true},
		{"best_practice_violation", BestPracticeViolation, true},
		{"BEST PRACTICE SUGGESTION", BestPracticeSuggestion, true},
		{"pynwb-validation", PyNWBValidation, true},
		{"ERROR", Error, true},
		{"fatal", BestPracticeSuggestion, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseImportance(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportanceNames(t *testing.T) {
	assert.Equal(t, "BEST_PRACTICE_VIOLATION", BestPracticeViolation.String())
	assert.Equal(t, "BEST PRACTICE VIOLATION", BestPracticeViolation.Title())
	assert.Equal(t, "Importance(9)", Importance(9).String())
	assert.False(t, Importance(9).Valid())
}

func TestEnumJSONRoundTrip(t *testing.T) {
	for _, imp := range Importances() {
		data, err := json.Marshal(imp)
		require.NoError(t, err)
		assert.Equal(t, `"`+imp.String()+`"`, string(data))

		var back Importance
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, imp, back)
	}
	for _, sev := range []Severity{SeverityNone, SeverityLow, SeverityHigh} {
		data, err := json.Marshal(sev)
		require.NoError(t, err)
		var back Severity
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, sev, back)
	}

	var imp Importance
	assert.Error(t, json.Unmarshal([]byte(`"NOPE"`), &imp))
	assert.Error(t, json.Unmarshal([]byte(`2`), &imp))
	var sev Severity
	assert.Error(t, json.Unmarshal([]byte(`"MEDIUM"`), &sev))
}

func TestSeverityOrdering(t *testing.T) {
	assert.Less(t, SeverityNone, SeverityLow)
	assert.Less(t, SeverityLow, SeverityHigh)
	s, ok := ParseSeverity("")
	assert.True(t, ok)
	assert.Equal(t, SeverityNone, s)
}
