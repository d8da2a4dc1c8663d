package checkup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLine(t *testing.T) {
	assert.Equal(t, "🟢 fine", renderLine(CheckResult{Severity: SeverityOK, Message: "fine"}))
	assert.Equal(t, "🟡 meh", renderLine(CheckResult{Severity: SeverityWarn, Message: "meh"}))
	assert.Equal(t, "🔴 broken", renderLine(CheckResult{Severity: SeverityBad, Message: "broken"}))
}

func TestRenderSummary(t *testing.T) {
	rec := NewRecorder()
	rec.Record(SeverityBad, "x")
	assert.Contains(t, renderSummary(rec.Finalize(), rec), "❌")

	rec = NewRecorder()
	rec.Record(SeverityWarn, "x")
	assert.Contains(t, renderSummary(rec.Finalize(), rec), "⚠️")

	rec = NewRecorder()
	rec.Record(SeverityOK, "x")
	assert.Contains(t, renderSummary(rec.Finalize(), rec), "✅")
}

func TestHumanSeconds(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0s"},
		{42, "42s"},
		{60, "1m"},
		{185, "3m 5s"},
		{3600, "1h"},
		{7800, "2h 10m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSeconds(tt.in))
	}
}
