//go:build linux

// File: transport/tcp/resolver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Name resolution into an ordered candidate list. The order returned by the
// system resolver is the fallback order the connector walks, so it is
// preserved exactly.

package tcp

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/momentics/urlio/api"
)

// Candidate is one resolved socket address usable for a single
// establishment attempt. Candidates are not retained past establishment.
type Candidate struct {
	Family int           // unix.AF_INET or unix.AF_INET6
	Addr   unix.Sockaddr // ready to pass to connect/bind
	IP     net.IP
	Port   int
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s:%d", c.IP, c.Port)
}

// resolve turns host:port into candidates in resolver order. IPv4 and IPv6
// results are both accepted, interleaved however the system resolver chose
// to return them.
func resolve(ctx context.Context, host string, port int) ([]Candidate, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, api.NewError(api.ErrCodeResolve, fmt.Sprintf("failed to resolve hostname %s", host), err)
	}
	cands := make([]Candidate, 0, len(addrs))
	for _, a := range addrs {
		if ip4 := a.IP.To4(); ip4 != nil {
			sa := &unix.SockaddrInet4{Port: port}
			copy(sa.Addr[:], ip4)
			cands = append(cands, Candidate{Family: unix.AF_INET, Addr: sa, IP: a.IP, Port: port})
			continue
		}
		if ip16 := a.IP.To16(); ip16 != nil {
			sa := &unix.SockaddrInet6{Port: port, ZoneId: zoneID(a.Zone)}
			copy(sa.Addr[:], ip16)
			cands = append(cands, Candidate{Family: unix.AF_INET6, Addr: sa, IP: a.IP, Port: port})
		}
	}
	if len(cands) == 0 {
		return nil, api.NewError(api.ErrCodeResolve, fmt.Sprintf("no usable addresses for %s", host), nil)
	}
	return cands, nil
}

// zoneID maps an IPv6 zone name to its interface index, 0 when unknown.
func zoneID(zone string) uint32 {
	if zone == "" {
		return 0
	}
	if ifi, err := net.InterfaceByName(zone); err == nil {
		return uint32(ifi.Index)
	}
	return 0
}
