package checkup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const heartbeatMissingSentinel = "MISSING"

// Transient daemon errors worth one retry; anything else fails immediately.
var retryableErrRe = regexp.MustCompile(
	`(?i)(i/o timeout|context deadline exceeded|cannot connect to the docker daemon|oci runtime .* failed|\bEOF\b)`)

// DockerCLIProbe implements Probe by shelling out to the docker CLI. Every
// command gets a timeout; exec-in-container commands get one retry on
// transient daemon errors.
type DockerCLIProbe struct {
	binary     string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
}

func NewDockerCLIProbe(set Settings) *DockerCLIProbe {
	return &DockerCLIProbe{
		binary:     set.DockerBinary,
		timeout:    set.ExecTimeout(),
		retries:    set.ExecRetries,
		retryDelay: set.RetryDelay(),
	}
}

func (p *DockerCLIProbe) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		zap.L().Debug("docker command failed",
			zap.Strings("args", args),
			zap.String("err", msg),
			zap.Duration("t", elapsed))
		return "", fmt.Errorf("docker %s: %s", args[0], msg)
	}

	zap.L().Debug("docker command ok", zap.Strings("args", args), zap.Duration("t", elapsed))
	return strings.TrimSpace(stdout.String()), nil
}

func (p *DockerCLIProbe) runRetry(ctx context.Context, args ...string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			zap.L().Warn("retrying docker command",
				zap.Int("attempt", attempt),
				zap.Strings("args", args))
			select {
			case <-time.After(p.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		out, err := p.run(ctx, args...)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !retryableErrRe.MatchString(err.Error()) {
			break
		}
	}
	return "", lastErr
}

// DaemonVersion reports the docker server version; failure means the daemon
// is unreachable.
func (p *DockerCLIProbe) DaemonVersion(ctx context.Context) (string, error) {
	return p.run(ctx, "version", "--format", "{{.Server.Version}}")
}

// ContainerStatuses maps container names to their raw status text.
func (p *DockerCLIProbe) ContainerStatuses(ctx context.Context) (map[string]string, error) {
	out, err := p.run(ctx, "ps", "-a", "--format", "{{.Names}}\t{{.Status}}")
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		name, status, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		statuses[strings.TrimSpace(name)] = strings.TrimSpace(status)
	}
	return statuses, nil
}

// Exec runs a shell script inside a container.
func (p *DockerCLIProbe) Exec(ctx context.Context, container, script string) (string, error) {
	return p.runRetry(ctx, "exec", "-i", container, "sh", "-lc", script)
}

// StatPath snapshots mode and ownership of a host path. Name resolution is
// best effort: a uid without a passwd entry leaves Owner empty.
func (p *DockerCLIProbe) StatPath(path string) (FileAccessDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileAccessDescriptor{}, err
	}

	desc := FileAccessDescriptor{
		Path: path,
		Mode: strconv.FormatUint(uint64(info.Mode().Perm()), 8),
	}

	asUnix, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return desc, fmt.Errorf("no UNIX ownership for %s", path)
	}
	desc.UID = strconv.FormatUint(uint64(asUnix.Uid), 10)
	desc.GID = strconv.FormatUint(uint64(asUnix.Gid), 10)

	if u, err := user.LookupId(desc.UID); err == nil {
		desc.Owner = u.Username
	}
	if g, err := user.LookupGroupId(desc.GID); err == nil {
		desc.Group = g.Name
	}

	return desc, nil
}

// ProcessIdentity asks the container for the uid/gid of its main user. An
// unresolvable identity is a valid state, reported as empty fields.
func (p *DockerCLIProbe) ProcessIdentity(ctx context.Context, container string) ProcessIdentity {
	out, err := p.Exec(ctx, container, "id -u; id -g")
	if err != nil {
		zap.L().Debug("identity probe failed", zap.String("container", container), zap.Error(err))
		return ProcessIdentity{}
	}

	lines := strings.Fields(out)
	if len(lines) != 2 {
		return ProcessIdentity{}
	}
	for _, v := range lines {
		if _, err := strconv.ParseUint(v, 10, 32); err != nil {
			return ProcessIdentity{}
		}
	}
	return ProcessIdentity{UID: lines[0], GID: lines[1]}
}

// HeartbeatAge computes the heartbeat file age inside a container.
func (p *DockerCLIProbe) HeartbeatAge(ctx context.Context, container, path string) (int64, error) {
	q := shellQuote(path)
	script := fmt.Sprintf(
		"if [ -f %s ]; then echo $(( $(date +%%s) - $(stat -c %%Y %s) )); else echo %s; fi",
		q, q, heartbeatMissingSentinel)

	out, err := p.Exec(ctx, container, script)
	if err != nil {
		return 0, err
	}
	out = strings.TrimSpace(out)
	if out == heartbeatMissingSentinel {
		return 0, ErrHeartbeatMissing
	}

	age, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable heartbeat age %q", out)
	}
	if age < 0 {
		age = 0
	}
	return age, nil
}

// ContainerStats collects one resource usage row per running container.
func (p *DockerCLIProbe) ContainerStats(ctx context.Context) ([]ContainerStat, error) {
	out, err := p.run(ctx, "stats", "--no-stream", "--format",
		"{{.Name}}\t{{.CPUPerc}}\t{{.MemUsage}}\t{{.MemPerc}}")
	if err != nil {
		return nil, err
	}

	stats := make([]ContainerStat, 0, 8)
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) != 4 {
			continue
		}
		stats = append(stats, ContainerStat{
			Name:    strings.TrimSpace(parts[0]),
			CPU:     strings.TrimSpace(parts[1]),
			Mem:     strings.TrimSpace(parts[2]),
			MemPerc: strings.TrimSpace(parts[3]),
		})
	}
	return stats, nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
