// Package buffers provides reusable byte buffers for the streaming copies
// mstransfer does between HTTP bodies, staging files, and codec subprocess
// pipes, to reduce GC pressure during large mzML/msz transfers.
package buffers

import (
	"sync"

	"github.com/chrisagrams/mstransfer/internal/constants"
)

// chunkPool provides DefaultChunkSize buffers for streaming copies. There is
// no separate small-buffer pool: mstransfer does not encrypt data in
// transit, so the teacher's dedicated encryption-chunk pool has no
// equivalent here.
var chunkPool = &sync.Pool{
	New: func() interface{} {
		buf := make([]byte, constants.DefaultChunkSize)
		return &buf
	},
}

// GetChunkBuffer retrieves a DefaultChunkSize buffer from the pool. The
// buffer must be returned with PutChunkBuffer when done.
func GetChunkBuffer() *[]byte {
	return chunkPool.Get().(*[]byte)
}

// PutChunkBuffer returns a buffer to the pool for reuse. Buffers of any
// other size are dropped rather than pooled, since sync.Pool assumes a
// uniform size class.
func PutChunkBuffer(buf *[]byte) {
	if buf != nil && len(*buf) == constants.DefaultChunkSize {
		chunkPool.Put(buf)
	}
}
