// File: cmd/urlcat/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// urlcat pipes a URL byte stream to stdout and stdin to the stream,
// netcat-style. Ctrl-C during connect aborts cleanly through the
// cooperative interrupt predicate.

package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/momentics/urlio"
	"github.com/momentics/urlio/api"
)

var (
	flagListen         bool
	flagNonBlock       bool
	flagConnectTimeout time.Duration
	flagPollInterval   time.Duration
	flagVerbose        bool
)

var rootCmd = &cobra.Command{
	Use:          "urlcat <url>",
	Short:        "Pipe a URL byte stream to stdout and stdin to the stream",
	Args:         cobra.ExactArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagListen, "listen", "l", false, "accept one inbound connection instead of dialing out")
	rootCmd.Flags().BoolVar(&flagNonBlock, "non-block", false, "open the stream in non-blocking mode")
	rootCmd.Flags().DurationVar(&flagConnectTimeout, "connect-timeout", 0, "overall connect deadline (0 = none)")
	rootCmd.Flags().DurationVar(&flagPollInterval, "poll-interval", api.DefaultPollInterval, "bounded wait slice during connect")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	uri := args[0]
	if flagListen {
		var err error
		uri, err = withListenOption(uri)
		if err != nil {
			return err
		}
	}

	// The first Ctrl-C asserts the interrupt predicate, which aborts a
	// connect in flight and tears down the pumps once connected.
	var interrupted atomic.Bool
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	sigDone := make(chan struct{})
	go func() {
		<-sig
		interrupted.Store(true)
		close(sigDone)
	}()

	var flags api.OpenFlags
	if flagNonBlock {
		flags |= api.FlagNonBlock
	}
	h, err := urlio.Open(uri, flags,
		urlio.WithInterrupt(func() bool { return interrupted.Load() }),
		urlio.WithLogger(log),
		urlio.WithConnectTimeout(flagConnectTimeout),
		urlio.WithPollInterval(flagPollInterval),
	)
	if err != nil {
		return err
	}
	log.WithField("uri", uri).Debug("stream open")

	done := make(chan error, 2)
	go func() {
		_, err := pump(os.Stdout, h)
		done <- err
	}()
	go func() {
		_, err := pump(h, os.Stdin)
		done <- err
	}()

	select {
	case err = <-done:
	case <-sigDone:
		err = nil
	}
	if cerr := h.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err == io.EOF {
		err = nil
	}
	return err
}

// pump copies src into dst, retrying would-block results so the same loop
// serves blocking and non-blocking streams. The loop owns the buffer:
// bytes read but not yet written survive a would-block write and are
// retried in place, never re-read and never dropped.
func pump(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if errors.Is(rerr, api.ErrWouldBlock) {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		for off := 0; off < n; {
			wn, werr := dst.Write(buf[off:n])
			off += wn
			written += int64(wn)
			if errors.Is(werr, api.ErrWouldBlock) {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if werr != nil {
				return written, werr
			}
			if wn == 0 {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}

// withListenOption rewrites uri so the backend opens in listen mode.
func withListenOption(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("malformed uri %q: %w", uri, err)
	}
	q := u.Query()
	if !q.Has("listen") {
		q.Set("listen", "1")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
