package checkup

import (
	"context"
	"fmt"

	systemddbus "github.com/coreos/go-systemd/v22/dbus"
	"go.uber.org/zap"
)

const dockerUnitName = "docker.service"

// dockerServiceHint asks systemd over D-Bus for the docker.service state to
// sharpen the unreachable-daemon message. Best effort: returns an empty
// string on hosts without systemd or without D-Bus access.
func dockerServiceHint(ctx context.Context) string {
	conn, err := systemddbus.NewSystemConnectionContext(ctx)
	if err != nil {
		zap.L().Debug("systemd not queried", zap.Error(err))
		return ""
	}
	defer conn.Close()

	props, err := conn.GetUnitPropertiesContext(ctx, dockerUnitName)
	if err != nil {
		zap.L().Debug("failed to read docker.service properties", zap.Error(err))
		return ""
	}

	state, _ := props["ActiveState"].(string)
	switch state {
	case "":
		return ""
	case "active":
		return " (docker.service is active; check DOCKER_HOST and socket permissions)"
	default:
		return fmt.Sprintf(" (docker.service is %s; try: systemctl start docker)", state)
	}
}
