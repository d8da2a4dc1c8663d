package checkup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The exit code is 1 exactly when at least one bad result was recorded,
// independent of the warning count.
func TestFinalize_ExitCodeIffBad(t *testing.T) {
	for ok := 0; ok <= 3; ok++ {
		for warn := 0; warn <= 3; warn++ {
			for bad := 0; bad <= 3; bad++ {
				rec := NewRecorder()
				for i := 0; i < ok; i++ {
					rec.Record(SeverityOK, fmt.Sprintf("ok %d", i))
				}
				for i := 0; i < warn; i++ {
					rec.Record(SeverityWarn, fmt.Sprintf("warn %d", i))
				}
				for i := 0; i < bad; i++ {
					rec.Record(SeverityBad, fmt.Sprintf("bad %d", i))
				}

				verdict := rec.Finalize()
				wantCode := 0
				if bad > 0 {
					wantCode = 1
				}
				assert.Equalf(t, wantCode, verdict.ExitCode, "ok=%d warn=%d bad=%d", ok, warn, bad)

				// idempotent as long as nothing was recorded in between
				assert.Equal(t, verdict, rec.Finalize())
			}
		}
	}
}

func TestFinalize_Messages(t *testing.T) {
	rec := NewRecorder()
	rec.Record(SeverityBad, "one broken thing")
	rec.Record(SeverityWarn, "first warning")
	rec.Record(SeverityWarn, "second warning")

	verdict := rec.Finalize()
	assert.Equal(t, 1, verdict.ExitCode)
	assert.Contains(t, verdict.Summary, "1 error(s)")
	assert.Contains(t, verdict.Summary, "2 warning(s)")
	assert.Contains(t, verdict.Summary, "3 check(s) total")

	rec = NewRecorder()
	rec.Record(SeverityOK, "fine")
	rec.Record(SeverityWarn, "meh")
	verdict = rec.Finalize()
	assert.Equal(t, 0, verdict.ExitCode)
	assert.Contains(t, verdict.Summary, "warnings present")

	rec = NewRecorder()
	rec.Record(SeverityOK, "fine")
	verdict = rec.Finalize()
	assert.Equal(t, 0, verdict.ExitCode)
	assert.Contains(t, verdict.Summary, "all clear")
}

func TestRecorder_CountsAndResults(t *testing.T) {
	rec := NewRecorder()
	rec.Record(SeverityOK, "a")
	rec.Record(SeverityBad, "b")
	rec.Record(SeverityWarn, "c")

	ok, warn, bad := rec.Counts()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, warn)
	assert.Equal(t, 1, bad)

	results := rec.Results()
	assert.Len(t, results, 3)
	assert.Equal(t, CheckResult{Severity: SeverityBad, Message: "b"}, results[1])
}
