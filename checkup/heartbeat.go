package checkup

import "fmt"

// DefaultHeartbeatStaleSeconds is the age past which a heartbeat is reported
// as stale rather than fresh.
const DefaultHeartbeatStaleSeconds int64 = 120

// ClassifyHeartbeatAge maps a heartbeat probe outcome to a severity and a
// report message. A missing or unreadable heartbeat is bad, a stale one is
// only a warning: the process may still be alive and merely slow.
func ClassifyHeartbeatAge(age int64, err error, staleAfter int64) (Severity, string) {
	if err != nil {
		return SeverityBad, "heartbeat: not found"
	}
	if age < staleAfter {
		return SeverityOK, fmt.Sprintf("heartbeat: %s ago", humanSeconds(age))
	}
	return SeverityWarn, fmt.Sprintf("heartbeat: stale (%s ago)", humanSeconds(age))
}
