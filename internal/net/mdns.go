package net

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_drawingpad._tcp"

// ErrNoMirror is returned when browsing finds nothing.
var ErrNoMirror = errors.New("no mirror found on the local network")

// Advertise announces a mirror listening on port.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"MyDrawingPad"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse returns the address of the first mirror answering within timeout.
func Browse(timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	result := make(chan string, 1)
	go func() { result <- firstMirror(entries) }()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	addr := <-result
	if err != nil {
		return "", fmt.Errorf("mDNS query failed: %w", err)
	}
	if addr == "" {
		return "", ErrNoMirror
	}
	return addr, nil
}

// firstMirror drains entries until it is closed and returns the first
// usable host:port, or "" when none arrived.
func firstMirror(entries <-chan *mdns.ServiceEntry) string {
	addr := ""
	for e := range entries {
		if addr != "" || e.AddrV4 == nil || e.Port == 0 {
			continue
		}
		addr = fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port)
	}
	return addr
}
