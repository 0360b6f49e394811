package runner

import (
	"github.com/charmbracelet/log"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// KillProcessOnPort terminates any process listening on the given TCP port.
// Best-effort: finding nothing, or failing to kill, is not an error.
func KillProcessOnPort(port uint32) {
	conns, err := psnet.Connections("tcp")
	if err != nil {
		log.Debug("could not list connections", "err", err)
		return
	}

	for _, conn := range conns {
		if conn.Laddr.Port != port || conn.Status != "LISTEN" || conn.Pid <= 0 {
			continue
		}
		proc, err := process.NewProcess(conn.Pid)
		if err != nil {
			continue
		}
		if err := proc.Kill(); err != nil {
			log.Warn("could not kill process on port", "port", port, "pid", conn.Pid, "err", err)
		} else {
			log.Info("killed process holding port", "port", port, "pid", conn.Pid)
		}
	}
}
