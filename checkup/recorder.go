package checkup

import "fmt"

// Recorder tallies check outcomes over a single run. Not safe for concurrent
// use; the run is strictly sequential.
type Recorder struct {
	results []CheckResult

	ok   int
	warn int
	bad  int
}

func NewRecorder() *Recorder {
	return &Recorder{results: make([]CheckResult, 0, 16)}
}

// Record appends one check outcome and bumps the matching counter.
func (r *Recorder) Record(sev Severity, msg string) {
	r.results = append(r.results, CheckResult{Severity: sev, Message: msg})
	switch sev {
	case SeverityWarn:
		r.warn++
	case SeverityBad:
		r.bad++
	default:
		r.ok++
	}
}

// Results returns the recorded outcomes in record order.
func (r *Recorder) Results() []CheckResult {
	return r.results
}

// Counts returns the current (ok, warn, bad) tallies.
func (r *Recorder) Counts() (int, int, int) {
	return r.ok, r.warn, r.bad
}

// Finalize resolves the verdict from the counters. Call once, after the last
// Record: a bad result anywhere means exit code 1, warnings alone never
// escalate the exit code.
func (r *Recorder) Finalize() Verdict {
	total := r.ok + r.warn + r.bad
	switch {
	case r.bad > 0:
		return Verdict{
			ExitCode: 1,
			Summary:  fmt.Sprintf("errors present: %d error(s), %d warning(s), %d check(s) total", r.bad, r.warn, total),
		}
	case r.warn > 0:
		return Verdict{
			ExitCode: 0,
			Summary:  fmt.Sprintf("warnings present: %d warning(s), %d check(s) total", r.warn, total),
		}
	default:
		return Verdict{
			ExitCode: 0,
			Summary:  fmt.Sprintf("all clear, %d check(s) total", total),
		}
	}
}
