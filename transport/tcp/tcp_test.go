// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tcp

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/momentics/urlio/api"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestOpenRejectsBadArguments(t *testing.T) {
	p := New()
	cases := []struct {
		name string
		uri  string
	}{
		{"foreign scheme", "udp://localhost:1234"},
		{"port zero", "tcp://localhost:0"},
		{"port too large", "tcp://localhost:70000"},
		{"missing port", "tcp://localhost"},
		{"missing host", "tcp://:8080"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Open(context.Background(), mustURL(t, tc.uri), 0, nil)
			if !errors.Is(err, api.ErrInvalidArgument) {
				t.Errorf("Open(%q) = %v, want ErrInvalidArgument", tc.uri, err)
			}
		})
	}
}

func TestOpenNilURL(t *testing.T) {
	_, err := New().Open(context.Background(), nil, 0, nil)
	if !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("Open(nil) = %v, want ErrInvalidArgument", err)
	}
}

func TestListenModeDetection(t *testing.T) {
	for uri, want := range map[string]bool{
		"tcp://h:1?listen=1":  true,
		"tcp://h:1?listen":    true,
		"tcp://h:1":           false,
		"tcp://h:1?timeout=3": false,
	} {
		if got := mustURL(t, uri).Query().Has("listen"); got != want {
			t.Errorf("listen detection for %q = %v, want %v", uri, got, want)
		}
	}
}

func TestSchemeAndLoggerSetup(t *testing.T) {
	p := New()
	if p.Scheme() != "tcp" {
		t.Errorf("scheme = %q, want tcp", p.Scheme())
	}
	p.SetLogger(nil) // must not clobber the default
	if p.log == nil {
		t.Error("nil SetLogger removed the default logger")
	}
}
