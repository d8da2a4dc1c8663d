package checkup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHeartbeatAge(t *testing.T) {
	tests := []struct {
		name    string
		age     int64
		err     error
		wantSev Severity
		wantMsg string
	}{
		{"fresh", 0, nil, SeverityOK, "0s ago"},
		{"just under threshold", 119, nil, SeverityOK, "1m 59s ago"},
		{"exactly at threshold", 120, nil, SeverityWarn, "stale"},
		{"very stale", 7500, nil, SeverityWarn, "2h 5m"},
		{"missing", 0, ErrHeartbeatMissing, SeverityBad, "not found"},
		{"probe failure", 0, errors.New("exec failed"), SeverityBad, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sev, msg := ClassifyHeartbeatAge(tt.age, tt.err, DefaultHeartbeatStaleSeconds)
			assert.Equal(t, tt.wantSev, sev)
			assert.Contains(t, msg, tt.wantMsg)
		})
	}
}

func TestClassifyHeartbeatAge_CustomThreshold(t *testing.T) {
	sev, _ := ClassifyHeartbeatAge(50, nil, 30)
	assert.Equal(t, SeverityWarn, sev)

	sev, _ = ClassifyHeartbeatAge(50, nil, 60)
	assert.Equal(t, SeverityOK, sev)
}
