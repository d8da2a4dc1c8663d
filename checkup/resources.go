package checkup

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/weaveworks/procspy"
	"go.uber.org/zap"
)

// Socket states in /proc/net: TCP listeners are 0A, unconnected UDP is 07.
const (
	tcpListeningState   = 10
	udpUnconnectedState = 7
)

var (
	procNetTCPPaths = []string{"/proc/net/tcp", "/proc/net/tcp6"}
	procNetUDPPaths = []string{"/proc/net/udp", "/proc/net/udp6"}
)

// fullReport prints the extra resource section. Report-only: nothing here is
// recorded, so it never moves the verdict.
func (r *Runner) fullReport(ctx context.Context) {
	fmt.Fprintln(r.out, "— resources —")

	stats, err := r.probe.ContainerStats(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "  container stats unavailable (%v)\n", err)
	} else {
		for _, st := range stats {
			fmt.Fprintf(r.out, "  %s: cpu %s, mem %s (%s)\n", st.Name, st.CPU, st.Mem, st.MemPerc)
		}
	}

	sizeScript := "du -sm " + shellQuote(r.cfg.BotDataDir) + " 2>/dev/null | cut -f1"
	if out, err := r.probe.Exec(ctx, r.cfg.BotContainer, sizeScript); err == nil && out != "" {
		fmt.Fprintf(r.out, "  data dir %s: %s MB\n", r.cfg.BotDataDir, out)
	}

	tcp, udp, err := listeningPorts()
	if err != nil {
		zap.L().Debug("failed to list host sockets", zap.Error(err))
		return
	}
	fmt.Fprintf(r.out, "  listening tcp ports: %s\n", formatPorts(tcp))
	fmt.Fprintf(r.out, "  open udp ports: %s\n", formatPorts(udp))
}

func portsFromProcNet(paths []string, state uint) ([]uint16, error) {
	seen := make(map[uint16]bool)
	for _, p := range paths {
		buf, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to ReadFile(%s): %v", p, err)
		}
		cons := procspy.NewProcNet(buf, state)
		for c := cons.Next(); c != nil; c = cons.Next() {
			seen[c.LocalPort] = true
		}
	}

	ports := make([]uint16, 0, len(seen))
	for port := range seen {
		ports = append(ports, port)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	return ports, nil
}

func listeningPorts() ([]uint16, []uint16, error) {
	tcp, err := portsFromProcNet(procNetTCPPaths, tcpListeningState)
	if err != nil {
		return nil, nil, err
	}
	udp, err := portsFromProcNet(procNetUDPPaths, udpUnconnectedState)
	if err != nil {
		return nil, nil, err
	}
	return tcp, udp, nil
}

func formatPorts(ports []uint16) string {
	if len(ports) == 0 {
		return "none"
	}
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}
