package checkup

import (
	"context"
	"errors"
)

var (
	// ErrHeartbeatMissing is the sentinel for a heartbeat file that does not
	// exist in the target environment.
	ErrHeartbeatMissing = errors.New("heartbeat file missing")
)

// Probe is the read-only view of the deployment the checks run against: one
// method per query, so tests can fake the whole orchestration layer without a
// live docker daemon.
type Probe interface {
	// DaemonVersion returns the docker server version string.
	DaemonVersion(ctx context.Context) (string, error)

	// ContainerStatuses returns a name -> raw status text mapping for all
	// running or recently exited containers.
	ContainerStatuses(ctx context.Context) (map[string]string, error)

	// Exec runs a shell script inside a named container and returns its
	// trimmed stdout.
	Exec(ctx context.Context, container, script string) (string, error)

	// StatPath returns the access descriptor of a host path.
	StatPath(path string) (FileAccessDescriptor, error)

	// ProcessIdentity resolves the uid/gid the container's main process runs
	// under. A failed probe yields empty fields, never an error.
	ProcessIdentity(ctx context.Context, container string) ProcessIdentity

	// HeartbeatAge returns the age in seconds of the heartbeat file inside a
	// container, or ErrHeartbeatMissing when it does not exist.
	HeartbeatAge(ctx context.Context, container, path string) (int64, error)

	// ContainerStats returns one resource usage row per running container.
	ContainerStats(ctx context.Context) ([]ContainerStat, error)
}
