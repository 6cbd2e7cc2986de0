package transfer

import (
	"context"

	"github.com/chrisagrams/mstransfer/internal/codec"
)

// DecompressWorkerPool caps how many decompression jobs run at once. It
// starts no goroutines of its own: each job runs on the caller's goroutine
// once a slot is free. Unlike the teacher's per-transfer
// allocate/release handle, there is no per-job resource checkout: one file
// is one request is one job, so a simple buffered-channel semaphore is
// the whole mechanism.
type DecompressWorkerPool struct {
	sem   chan struct{}
	codec codec.Adapter
}

// NewDecompressWorkerPool creates a pool with size concurrent slots,
// dispatching decompression calls through adapter.
func NewDecompressWorkerPool(size int, adapter codec.Adapter) *DecompressWorkerPool {
	if size < 1 {
		size = 1
	}
	return &DecompressWorkerPool{
		sem:   make(chan struct{}, size),
		codec: adapter,
	}
}

// Decompress blocks until a worker slot is free, then runs
// codec.Decompress(inputPath, outputPath) on it, returning its result. The
// caller's own goroutine blocks here, but the slot acquisition means at
// most `size` decompressions run concurrently across the whole server,
// regardless of how many uploads are simultaneously in flight.
func (p *DecompressWorkerPool) Decompress(ctx context.Context, inputPath, outputPath string) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.sem }()

	return p.codec.Decompress(ctx, inputPath, outputPath)
}
