package checkup

import (
	"regexp"
	"strings"
)

// ClassifyContainerStatus maps the free text docker reports for a container
// to a coarse class. Matching is case-insensitive and ordered: absence wins,
// then failure markers, then liveness markers. Unrecognized status text is
// degraded, not ok.
func ClassifyContainerStatus(status string, present bool) ContainerClass {
	if !present {
		return ClassAbsent
	}
	low := strings.ToLower(status)
	if strings.Contains(low, "unhealthy") || strings.Contains(low, "restarting") {
		return ClassDegraded
	}
	if strings.Contains(low, "up") || strings.Contains(low, "healthy") {
		return ClassOK
	}
	return ClassDegraded
}

var (
	upTailRe     = regexp.MustCompile(`(?i)\bUp\s+(.+)`)
	healthNoteRe = regexp.MustCompile(`(?i)\((?:un)?healthy\)|\(health[^)]*\)`)
	aboutRe      = regexp.MustCompile(`(?i)\babout\b`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// humanizeUptime shortens docker's "Up 3 minutes (healthy)" to "up 3 minutes"
// for report lines. Non-"Up" statuses come back unchanged.
func humanizeUptime(status string) string {
	st := strings.TrimSpace(status)
	m := upTailRe.FindStringSubmatch(st)
	if m == nil {
		return st
	}
	tail := m[1]
	tail = healthNoteRe.ReplaceAllString(tail, "")
	tail = aboutRe.ReplaceAllString(tail, "")
	tail = spaceRe.ReplaceAllString(tail, " ")
	tail = strings.Trim(strings.TrimSpace(tail), ",")
	if tail == "" {
		return "up"
	}
	return "up " + tail
}
