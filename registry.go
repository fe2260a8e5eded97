// File: registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scheme to protocol-backend registry.

package urlio

import (
	"sync"

	"github.com/momentics/urlio/api"
	"github.com/momentics/urlio/transport/tcp"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]api.Protocol{}
)

func init() {
	Register(tcp.New())
}

// Register installs a protocol backend for its scheme, replacing any
// previous backend for the same scheme.
func Register(p api.Protocol) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.Scheme()] = p
}

// Lookup returns the backend registered for scheme.
func Lookup(scheme string) (api.Protocol, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[scheme]
	return p, ok
}

// Schemes lists the registered schemes.
func Schemes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for s := range registry {
		out = append(out, s)
	}
	return out
}
