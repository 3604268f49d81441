package reconcile

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NormalizeAddress validates a host:port string and returns its canonical
// form: trimmed, lower-case host and a decimal port in 1..65535.
func NormalizeAddress(addr string) (string, error) {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", addr, err)
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return "", fmt.Errorf("invalid address %q: empty host", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid address %q: bad port", addr)
	}
	if ip := net.ParseIP(host); ip != nil {
		host = ip.String()
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
