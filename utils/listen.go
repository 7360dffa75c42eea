package utils

import (
	"fmt"
	"net"
)

// CheckListenAddr reports whether addr ("host:port" or ":port") can be bound
// right now. The daemonized server cannot report a bind failure, so the
// parent checks first.
func CheckListenAddr(addr string) error {
	Verbose("Checking if %s is available", addr)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}
	return listener.Close()
}
