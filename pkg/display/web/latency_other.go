//go:build !linux

package web

import "net"

// rtt is only measured on linux.
func rtt(net.Conn) (uint16, error) {
	return 0, errNoLatency
}
