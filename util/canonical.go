// SPDX-License-Identifier: ISC

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/elpp-gateway/fault"
)

// CanonicalIPandPort - make an IP:Port canonical
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
func CanonicalIPandPort(hostPort string) (string, error) {

	host, port, err := net.SplitHostPort(hostPort)
	if nil != err {
		return "", fault.ErrInvalidIPAddress
	}

	IP := net.ParseIP(strings.Trim(host, " "))
	if nil == IP {
		return "", fault.ErrInvalidIPAddress
	}

	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return "", err
	}
	if numericPort < 1 || numericPort > 65535 {
		return "", fault.ErrInvalidPortNumber
	}

	if nil != IP.To4() {
		return IP.String() + ":" + strconv.Itoa(numericPort), nil
	}
	return "[" + IP.String() + "]:" + strconv.Itoa(numericPort), nil
}

// ResolveListenAddress - the CLI surface accepts either a network interface
// name or a literal IP address as the first positional argument. If name
// matches a known interface, its first IPv4 address is used; otherwise the
// literal is parsed directly.
func ResolveListenAddress(nameOrIP string, port string) (string, error) {

	numericPort, err := strconv.Atoi(port)
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return "", fault.ErrInvalidPortNumber
	}

	if ip := net.ParseIP(nameOrIP); nil != ip {
		return CanonicalIPandPort(net.JoinHostPort(nameOrIP, port))
	}

	iface, err := net.InterfaceByName(nameOrIP)
	if nil != err {
		return "", fault.ErrInvalidIPAddress
	}

	addrs, err := iface.Addrs()
	if nil != err {
		return "", fault.ErrInvalidIPAddress
	}

	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip4 := ipNet.IP.To4()
		if nil == ip4 {
			continue
		}
		return CanonicalIPandPort(net.JoinHostPort(ip4.String(), port))
	}

	return "", fault.ErrInvalidIPAddress
}
