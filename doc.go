// File: doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package urlio opens URLs as plain byte streams through interchangeable
// per-scheme protocol backends. The TCP backend ships in-repo; additional
// schemes register through the same api.Protocol contract.
//
// A handle is opened with urlio.Open("tcp://host:port", 0), read and written
// like a file, and closed exactly once by its single owner. Listen mode
// (tcp://host:port?listen=1) binds locally and waits for one inbound
// connection instead of dialing out.
package urlio
