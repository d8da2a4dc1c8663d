package checkup

import "fmt"

const (
	glyphOK   = "🟢"
	glyphWarn = "🟡"
	glyphBad  = "🔴"

	glyphSummaryOK   = "✅"
	glyphSummaryWarn = "⚠️"
	glyphSummaryBad  = "❌"
)

func glyph(sev Severity) string {
	switch sev {
	case SeverityWarn:
		return glyphWarn
	case SeverityBad:
		return glyphBad
	default:
		return glyphOK
	}
}

func renderLine(res CheckResult) string {
	return glyph(res.Severity) + " " + res.Message
}

func renderSummary(v Verdict, rec *Recorder) string {
	_, warn, bad := rec.Counts()
	g := glyphSummaryOK
	switch {
	case bad > 0:
		g = glyphSummaryBad
	case warn > 0:
		g = glyphSummaryWarn
	}
	return g + " " + v.Summary
}

// humanSeconds renders an age compactly: 42s, 3m 5s, 2h 10m.
func humanSeconds(s int64) string {
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	m, sec := s/60, s%60
	if m < 60 {
		if sec == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm %ds", m, sec)
	}
	h, min := m/60, m%60
	if min == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, min)
}
