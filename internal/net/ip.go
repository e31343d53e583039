package net

import (
	"errors"
	"net"
)

// ErrNoAddress is returned when no non-loopback IPv4 address is configured.
var ErrNoAddress = errors.New("no usable local IPv4 address")

// ShareHost returns the address other machines on the LAN should use to
// reach this one. The route to a public address is preferred; without one
// the first non-loopback IPv4 interface address is used.
func ShareHost() (string, error) {
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if udp, ok := conn.LocalAddr().(*net.UDPAddr); ok && !udp.IP.IsUnspecified() {
			return udp.IP.String(), nil
		}
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	if ip, ok := firstLANv4(addrs); ok {
		return ip, nil
	}
	return "", ErrNoAddress
}

func firstLANv4(addrs []net.Addr) (string, bool) {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.IsLinkLocalUnicast() {
			continue
		}
		if v4 := ipnet.IP.To4(); v4 != nil {
			return v4.String(), true
		}
	}
	return "", false
}
