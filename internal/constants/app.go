// Package constants holds tunable defaults shared across the server and
// client packages.
package constants

import "time"

// Network defaults
const (
	// DefaultPort is the default port a receiver listens on and a sender
	// targets when a host:port pair omits the port.
	DefaultPort = 1319

	// DefaultChunkSize is the default --chunk-size and the size of the
	// receiver's copy buffer. On the sender, the chunk size sets the read
	// buffer over the codec's compressed mzML output; pre-compressed file
	// bodies are read in whatever sizes the HTTP transport asks for.
	DefaultChunkSize = 1 * 1024 * 1024

	// HTTPDialTimeout is the connect timeout for outbound client requests.
	HTTPDialTimeout = 10 * time.Second

	// HTTPDialKeepAlive is the dialer keep-alive period.
	HTTPDialKeepAlive = 30 * time.Second

	// HTTPIdleConnTimeout is how long to keep idle pooled connections open.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPTLSHandshakeTimeout bounds the TLS handshake phase.
	HTTPTLSHandshakeTimeout = 30 * time.Second

	// HTTPExpectContinueTimeout bounds waiting for a 100-continue response.
	HTTPExpectContinueTimeout = 1 * time.Second

	// UploadRequestTimeout is the overall timeout for a single upload POST,
	// covering both the streaming body and the server's synchronous
	// processing of it.
	UploadRequestTimeout = 1 * time.Hour
)

// Polling
const (
	// PollInterval is the delay between status polls.
	PollInterval = 500 * time.Millisecond

	// PollRequestTimeout bounds a single status GET.
	PollRequestTimeout = 10 * time.Second

	// PollNoProgressTimeout is how long the poller tolerates no observed
	// progress (no state change, no bytes_received advance) before failing
	// with a timeout error. This is a "time since last progress" deadline,
	// not a total-elapsed-time deadline — it resets on every observed
	// advance.
	PollNoProgressTimeout = 5 * time.Minute
)

// Registry sweep
const (
	// SweepInterval is how often the server checks for terminal records to
	// evict from the in-memory registry.
	SweepInterval = 60 * time.Second

	// SweepMaxAge is how long a terminal record is retained before the
	// sweep removes it.
	SweepMaxAge = 5 * time.Minute
)

// Batch concurrency
const (
	// DefaultParallel is the default number of concurrent file uploads
	// when the caller does not specify one.
	DefaultParallel = 4

	// MinParallel and MaxParallel bound user-supplied concurrency.
	MinParallel = 1
	MaxParallel = 32
)

// Resource manager
const (
	// MaxBaselineThreads caps the CPU-core-derived baseline pool size.
	MaxBaselineThreads = 16

	// MinThreads is the floor for any sized pool.
	MinThreads = 1
)

// Registry update batching
const (
	// BytesReceivedUpdateInterval bounds how often the upload handler
	// pushes a bytes_received update into the registry while streaming a
	// request body, coalescing many small chunk reads into one registry
	// mutation. Required by spec to bound lock contention under many
	// concurrent uploads.
	BytesReceivedUpdateInterval = 200 * time.Millisecond
)
