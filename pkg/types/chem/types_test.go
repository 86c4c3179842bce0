package chem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	d := chem.Diagnostic{Severity: chem.SeverityError, Message: "unmatched ring closure 1", Offset: 7}
	assert.Equal(t, "error: unmatched ring closure 1 (offset 7)", d.String())

	w := chem.Diagnostic{Severity: chem.SeverityWarning, Message: "stereo cleared", Offset: -1}
	assert.Equal(t, "warning: stereo cleared", w.String())
}

func TestHasErrors(t *testing.T) {
	t.Parallel()

	assert.False(t, chem.HasErrors(nil))
	assert.False(t, chem.HasErrors([]chem.Diagnostic{
		{Severity: chem.SeverityWarning, Message: "w", Offset: -1},
	}))
	assert.True(t, chem.HasErrors([]chem.Diagnostic{
		{Severity: chem.SeverityWarning, Message: "w", Offset: -1},
		{Severity: chem.SeverityError, Message: "e", Offset: 3},
	}))
}

func TestDefaultEmitOptions(t *testing.T) {
	t.Parallel()

	assert.True(t, chem.DefaultEmitOptions().Canonical)
}
