package http

import (
	"crypto/tls"
	nethttp "net/http"
	"os"
	"time"

	"golang.org/x/net/http2"

	"github.com/chrisagrams/mstransfer/internal/config"
)

// CreateOptimizedClient creates an HTTP client tuned for streaming large
// mzML/msz payloads to a single receiver over a long-lived connection.
//
// Key features:
//   - Proxy support via ConfigureHTTPClient
//   - Connection pooling sized for a handful of concurrent batch uploads
//   - Extended handshake/idle timeouts for slow or high-latency links
//   - HTTP/2 with a runtime toggle (DISABLE_HTTP2 env var)
//   - Disabled compression (msz/mszx payloads are already compressed)
func CreateOptimizedClient(cfg config.ClientConfig) (*nethttp.Client, error) {
	baseClient, err := ConfigureHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	tr := baseClient.Transport.(*nethttp.Transport)

	// Connection pooling - supports several concurrent file transfers.
	tr.MaxIdleConns = 512
	tr.MaxIdleConnsPerHost = 100
	tr.MaxConnsPerHost = 100
	tr.IdleConnTimeout = 90 * time.Second

	tr.TLSHandshakeTimeout = 60 * time.Second
	tr.ExpectContinueTimeout = 1 * time.Second

	tr.DisableCompression = true
	tr.ForceAttemptHTTP2 = true

	_ = http2.ConfigureTransport(tr)

	// Runtime toggle for HTTP/2, useful when debugging a receiver behind a
	// proxy that mishandles h2.
	if os.Getenv("DISABLE_HTTP2") == "true" {
		tr.ForceAttemptHTTP2 = false
		tr.TLSNextProto = make(map[string]func(string, *tls.Conn) nethttp.RoundTripper)
	}

	baseClient.Transport = tr
	baseClient.Timeout = 0 // each request/poll sets its own timeout

	return baseClient, nil
}
