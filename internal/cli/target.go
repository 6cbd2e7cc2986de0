package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chrisagrams/mstransfer/internal/constants"
)

// ParseTarget splits a "host" or "host:port" destination string, defaulting
// the port to constants.DefaultPort when omitted.
func ParseTarget(target string) (host string, port int, err error) {
	if target == "" {
		return "", 0, fmt.Errorf("target must not be empty")
	}

	idx := strings.LastIndex(target, ":")
	if idx == -1 {
		return target, constants.DefaultPort, nil
	}

	host = target[:idx]
	portStr := target[idx+1:]
	if host == "" {
		return "", 0, fmt.Errorf("target %q is missing a host", target)
	}

	port, err = strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("target %q has an invalid port", target)
	}
	return host, port, nil
}
