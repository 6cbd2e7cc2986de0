// Package resources sizes CPU-bound worker pools from the host's core
// count, with an optional user override.
package resources

import (
	"runtime"

	"github.com/chrisagrams/mstransfer/internal/constants"
)

// Manager hands out a pool size for CPU-bound work (decompression on the
// server, default batch parallelism on the client). Unlike the system this
// was adapted from, mstransfer never splits a single file transfer across
// multiple threads — one request is one stream — so this type only answers
// "how big should the pool be", not "how many threads does this transfer
// get". There is no per-transfer allocation/release bookkeeping and no
// throughput-based rescaling: both solved a multipart-upload problem that
// doesn't exist in this protocol.
type Manager struct {
	size int
}

// Config controls pool sizing.
type Config struct {
	// MaxThreads, if > 0, overrides the CPU-derived default.
	MaxThreads int
}

// NewManager builds a Manager. With no override, the pool size is
// 2x the CPU core count, capped at MaxBaselineThreads.
func NewManager(cfg Config) *Manager {
	size := runtime.NumCPU() * 2
	if size > constants.MaxBaselineThreads {
		size = constants.MaxBaselineThreads
	}
	if size < constants.MinThreads {
		size = constants.MinThreads
	}

	if cfg.MaxThreads > 0 {
		size = cfg.MaxThreads
	}

	return &Manager{size: size}
}

// Size returns the pool size this manager computed.
func (m *Manager) Size() int {
	return m.size
}
