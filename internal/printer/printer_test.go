package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevNoColor := Out, color.NoColor
	Out, color.NoColor = &buf, true
	t.Cleanup(func() { Out, color.NoColor = prevOut, prevNoColor })
	return &buf
}

func TestSuccess(t *testing.T) {
	buf := capture(t)
	Success("wrote %d pages\n", 3)
	Success("✓ already prefixed\n")
	assert.Equal(t, "✓ wrote 3 pages\n✓ already prefixed\n", buf.String())
}

func TestWarning(t *testing.T) {
	buf := capture(t)
	Warning("%d pages flagged\n", 2)
	assert.Equal(t, "⚠️  2 pages flagged\n", buf.String())
}

func TestStepAndInfo(t *testing.T) {
	buf := capture(t)
	Step("auditing\n")
	Info("plain %s\n", "text")
	assert.Equal(t, "→ auditing\nplain text\n", buf.String())
}

func TestError_ReturnsTitle(t *testing.T) {
	err := Error("Audit failed", "2 pages flagged", []string{"fix the catalog", "raise thresholds"})
	assert.EqualError(t, err, "Audit failed")
}
