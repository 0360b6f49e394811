package api

import (
	"fmt"
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// LocalIP returns the first non-loopback IPv4 address, for sharing the
// server's LAN URL with other players.
func LocalIP() (string, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return "", err
	}

	for _, iface := range ifaces {
		for _, addr := range iface.Addrs {
			ipStr := addr.Addr
			if i := strings.Index(ipStr, "/"); i >= 0 {
				ipStr = ipStr[:i]
			}
			ip := net.ParseIP(ipStr)
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}
			return ip.String(), nil
		}
	}

	return "", fmt.Errorf("no local IP found")
}
