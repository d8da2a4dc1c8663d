package checkup

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/awgbot/stack-doctor/checkup/internal/utils"
)

// runState of the check sequence. PRECHECK failures jump straight to
// SUMMARY: a broken control plane makes every later check meaningless.
type runState int

const (
	stateInit runState = iota
	statePrecheck
	stateChecks
	stateSummary
	stateDone
)

// Runner drives one run: a fixed, ordered check sequence feeding probe
// results through the pure evaluators into the recorder.
type Runner struct {
	probe Probe
	cfg   Config
	set   Settings
	out   io.Writer
	full  bool

	rec *Recorder

	// resolved during PRECHECK, reused by later checks
	statuses map[string]string

	// resolved during the secret check, referenced by later remediation text
	identity ProcessIdentity
}

func NewRunner(probe Probe, cfg Config, set Settings, out io.Writer, full bool) *Runner {
	return &Runner{probe: probe, cfg: cfg, set: set, out: out, full: full}
}

// Run executes the whole state machine and returns the verdict.
func (r *Runner) Run(ctx context.Context) Verdict {
	var verdict Verdict

	state := stateInit
	for state != stateDone {
		switch state {
		case stateInit:
			r.rec = NewRecorder()
			r.statuses = nil
			r.identity = ProcessIdentity{}
			state = statePrecheck
		case statePrecheck:
			if r.precheck(ctx) {
				state = stateChecks
			} else {
				state = stateSummary
			}
		case stateChecks:
			r.checks(ctx)
			if r.full {
				r.fullReport(ctx)
			}
			state = stateSummary
		case stateSummary:
			verdict = r.rec.Finalize()
			fmt.Fprintln(r.out, renderSummary(verdict, r.rec))
			fmt.Fprintln(r.out, time.Now().Format("15:04:05 02.01.2006"))
			state = stateDone
		}
	}

	zap.L().Info("run finished", zap.Int("exitCode", verdict.ExitCode))
	return verdict
}

// record tallies one outcome and prints its report line immediately.
func (r *Runner) record(sev Severity, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.rec.Record(sev, msg)
	fmt.Fprintln(r.out, renderLine(CheckResult{Severity: sev, Message: msg}))
}

// precheck runs the fatal checks. Returns false to abort the run.
func (r *Runner) precheck(ctx context.Context) bool {
	version, err := r.probe.DaemonVersion(ctx)
	if err != nil {
		r.record(SeverityBad, "docker daemon unreachable (%v)%s", err, dockerServiceHint(ctx))
		return false
	}
	r.record(SeverityOK, "docker daemon reachable (server %s)", version)

	statuses, err := r.probe.ContainerStatuses(ctx)
	if err != nil {
		r.record(SeverityBad, "cannot list containers (%v)", err)
		return false
	}
	r.statuses = statuses

	for _, name := range []string{r.cfg.AWGContainer, r.cfg.XrayContainer} {
		if _, present := statuses[name]; !present {
			r.record(SeverityBad, "mandatory container %s is missing; run: docker compose up -d %s", name, name)
			return false
		}
	}
	return true
}

// checks runs the full non-fatal sequence. Every check runs regardless of
// earlier outcomes.
func (r *Runner) checks(ctx context.Context) {
	r.containerCheck(r.cfg.AWGContainer)
	r.containerCheck(r.cfg.XrayContainer)
	r.containerCheck(r.cfg.BotContainer)

	r.secretFileCheck(ctx)
	r.secretMountCheck(ctx)
	r.heartbeatCheck(ctx)
	r.writabilityCheck(ctx)
	r.proxyCheck()

	// dependent container last; its health matters only once the tunnel runs
	r.containerCheck(r.cfg.DNSContainer)

	r.nestedConfigCheck(ctx, r.cfg.XrayContainer, r.cfg.XrayConfigPath, "xray config")
	r.nestedConfigCheck(ctx, r.cfg.AWGContainer, r.cfg.AWGConfigPath, "awg config")

	r.composeCheck()
}

func (r *Runner) containerCheck(name string) {
	status, present := r.statuses[name]
	report := ContainerStatusReport{
		Name:   name,
		Status: status,
		Class:  ClassifyContainerStatus(status, present),
	}

	switch report.Class {
	case ClassOK:
		r.record(SeverityOK, "%s — %s", name, humanizeUptime(status))
	case ClassDegraded:
		r.record(SeverityWarn, "%s — %s", name, status)
	default:
		r.record(SeverityBad, "%s — not running; run: docker compose up -d %s", name, name)
	}
}

func (r *Runner) secretFileCheck(ctx context.Context) {
	path := r.cfg.BotEnvFile

	desc, err := r.probe.StatPath(path)
	if err != nil {
		r.record(SeverityBad, "secret file %s missing (%v); create it and chmod 600", path, err)
		return
	}

	owner := desc.Owner
	if owner == "" {
		owner = desc.UID
	}
	group := desc.Group
	if group == "" {
		group = desc.GID
	}
	r.record(SeverityOK, "secret file %s present (mode %s, %s:%s)", path, desc.Mode, owner, group)

	r.identity = r.probe.ProcessIdentity(ctx, r.cfg.BotContainer)

	dec := EvaluateAccess(desc.Mode, desc.UID, desc.GID, r.identity.UID, r.identity.GID)
	switch {
	case dec.Readable && dec.Hint != "":
		r.record(SeverityWarn, "secret file %s readable but loose: %s", path, dec.Hint)
	case dec.Readable:
		r.record(SeverityOK, "secret file %s readable by the bot process", path)
	default:
		r.record(SeverityBad, "secret file %s not readable by the bot process — %s",
			path, RemediationForUnreadable(path, r.identity))
	}

	vals, err := utils.ParseEnvFile(path)
	if err != nil {
		r.record(SeverityBad, "secret file %s unreadable from the host (%v)", path, err)
		return
	}
	if vals[BotTokenKey] == "" {
		r.record(SeverityBad, "secret file %s does not set %s", path, BotTokenKey)
	} else {
		r.record(SeverityOK, "%s is set", BotTokenKey)
	}
}

func (r *Runner) secretMountCheck(ctx context.Context) {
	script := "test -f " + shellQuote(r.cfg.BotSecretPath) + " && echo OK || echo NO"
	out, err := r.probe.Exec(ctx, r.cfg.BotContainer, script)
	if err != nil {
		r.record(SeverityBad, "cannot check secret mount in %s (%v)", r.cfg.BotContainer, err)
		return
	}
	if out == "OK" {
		r.record(SeverityOK, "secret mounted at %s in %s", r.cfg.BotSecretPath, r.cfg.BotContainer)
	} else {
		r.record(SeverityBad, "secret not mounted at %s in %s; check the compose volumes section",
			r.cfg.BotSecretPath, r.cfg.BotContainer)
	}
}

func (r *Runner) heartbeatCheck(ctx context.Context) {
	age, err := r.probe.HeartbeatAge(ctx, r.cfg.BotContainer, r.set.HeartbeatPath)
	sev, msg := ClassifyHeartbeatAge(age, err, r.set.HeartbeatStaleSeconds)
	r.record(sev, "%s", msg)
}

// writabilityCheck writes and removes a marker in the bot's data dir. The
// probe must leave no residue whether it succeeds or fails.
func (r *Runner) writabilityCheck(ctx context.Context) {
	marker := shellQuote(r.cfg.BotDataDir + "/.wtest")
	script := fmt.Sprintf("touch %s && rm -f %s && echo OK", marker, marker)

	out, err := r.probe.Exec(ctx, r.cfg.BotContainer, script)
	if err != nil || out != "OK" {
		// cleanup in case touch succeeded and rm did not
		_, _ = r.probe.Exec(ctx, r.cfg.BotContainer, "rm -f "+marker)
		r.record(SeverityBad, "%s is not writable in %s; check volume permissions",
			r.cfg.BotDataDir, r.cfg.BotContainer)
		return
	}
	r.record(SeverityOK, "%s is writable in %s", r.cfg.BotDataDir, r.cfg.BotContainer)
}

func (r *Runner) proxyCheck() {
	r.record(SeverityOK, "docker-proxy log level: %s (reported only)", r.cfg.ProxyLogLevel)

	if r.cfg.ProxyProbeURL == "" {
		r.record(SeverityOK, "proxy reachability probe skipped (PROXY_PROBE_URL not set)")
		return
	}
	if err := CheckProxyReachable(utils.GetHttpClient(), r.cfg.ProxyProbeURL); err != nil {
		r.record(SeverityWarn, "proxy endpoint %s not reachable (%v)", r.cfg.ProxyProbeURL, err)
		return
	}
	r.record(SeverityOK, "proxy endpoint %s reachable", r.cfg.ProxyProbeURL)
}

func (r *Runner) nestedConfigCheck(ctx context.Context, container, path, label string) {
	script := "test -r " + shellQuote(path) + " && echo OK || echo NO"
	out, err := r.probe.Exec(ctx, container, script)
	if err != nil {
		r.record(SeverityBad, "cannot check %s in %s (%v)", label, container, err)
		return
	}
	if out == "OK" {
		r.record(SeverityOK, "%s readable in %s", label, container)
	} else {
		r.record(SeverityBad, "%s not readable at %s in %s; check mount and permissions",
			label, path, container)
	}
}

// composeCheck cross-references the compose file against the live listing:
// a declared service with no container at all is an error. Extra containers
// are none of the doctor's business.
func (r *Runner) composeCheck() {
	if _, err := os.Stat(r.set.ComposeFile); os.IsNotExist(err) {
		r.record(SeverityWarn, "compose file %s not found, skipping declaration check", r.set.ComposeFile)
		return
	}

	names, err := utils.ComposeContainerNames(r.set.ComposeFile)
	if err != nil {
		r.record(SeverityWarn, "compose file %s not parsed (%v)", r.set.ComposeFile, err)
		return
	}

	missing := 0
	for _, name := range names {
		if _, present := r.statuses[name]; !present {
			r.record(SeverityBad, "%s declared in %s but has no container", name, r.set.ComposeFile)
			missing++
		}
	}
	if missing == 0 {
		r.record(SeverityOK, "all %d compose services have containers", len(names))
	}
}
