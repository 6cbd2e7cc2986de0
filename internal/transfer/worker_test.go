package transfer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chrisagrams/mstransfer/internal/codec"
)

type fakeAdapter struct {
	inflight    int32
	maxInFlight int32
	delay       time.Duration
}

func (f *fakeAdapter) Detect(path string) (codec.Format, error) {
	return codec.FormatMSZ, nil
}

func (f *fakeAdapter) CompressStream(ctx context.Context, path string, chunkSize int) (*codec.StreamResult, error) {
	return nil, nil
}

func (f *fakeAdapter) Decompress(ctx context.Context, inputPath, outputPath string) error {
	n := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		max := atomic.LoadInt32(&f.maxInFlight)
		if n <= max || atomic.CompareAndSwapInt32(&f.maxInFlight, max, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return nil
}

func TestDecompressWorkerPool_BoundsConcurrency(t *testing.T) {
	adapter := &fakeAdapter{delay: 20 * time.Millisecond}
	pool := NewDecompressWorkerPool(2, adapter)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Decompress(context.Background(), "in", "out")
		}()
	}
	wg.Wait()

	if adapter.maxInFlight > 2 {
		t.Errorf("expected at most 2 concurrent decompressions, observed %d", adapter.maxInFlight)
	}
}

func TestDecompressWorkerPool_ContextCancellation(t *testing.T) {
	adapter := &fakeAdapter{delay: 50 * time.Millisecond}
	pool := NewDecompressWorkerPool(1, adapter)

	// Saturate the single slot.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		pool.Decompress(context.Background(), "in", "out")
	}()
	time.Sleep(5 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := pool.Decompress(ctx, "in2", "out2")
	if err == nil {
		t.Fatal("expected context deadline error while waiting for a saturated pool")
	}

	wg.Wait()
}
