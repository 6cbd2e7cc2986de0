package progress

import "io"

// Reporter receives progress deltas as bytes are read from a stream. Unlike
// a cumulative progress bar, it sees only the size of each chunk as it is
// produced — the spec's "per-file progress callback" is a delta callback,
// not a running total, since the total is sometimes unknown in advance
// (mzML compressed on the fly has no known output size until it finishes).
type Reporter interface {
	Update(delta int64)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(delta int64)

// Update calls f.
func (f ReporterFunc) Update(delta int64) { f(delta) }

// NoOpProgress discards all progress updates, used when no caller has
// registered interest in per-chunk progress.
type NoOpProgress struct{}

// Update does nothing.
func (NoOpProgress) Update(int64) {}

// ProgressReader wraps an io.Reader, calling a Reporter with the length of
// each chunk read. It is the counting decorator both the compress-on-the-fly
// path and the chunked already-compressed-file path wrap their body in.
type ProgressReader struct {
	reader   io.Reader
	reporter Reporter
}

// NewProgressReader wraps r so each successful Read reports its length to
// reporter before returning.
func NewProgressReader(r io.Reader, reporter Reporter) *ProgressReader {
	if reporter == nil {
		reporter = NoOpProgress{}
	}
	return &ProgressReader{reader: r, reporter: reporter}
}

// Read implements io.Reader, reporting the delta before returning.
func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.reporter.Update(int64(n))
	}
	return n, err
}
