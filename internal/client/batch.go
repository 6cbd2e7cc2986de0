package client

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chrisagrams/mstransfer/internal/codec"
	"github.com/chrisagrams/mstransfer/internal/progress"
)

// SendBatch dispatches paths across a fixed-size worker pool, each worker
// independently running SendFile, and returns one FileResult per input
// preserving input order. A single file's failure never cancels the rest —
// every scheduled file runs to completion.
func SendBatch(ctx context.Context, httpClient *http.Client, adapter codec.Adapter, paths []string, parallel int, opts SendOptions, listener *ProgressListener) []FileResult {
	workers := parallel
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]FileResult, len(paths))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			filename := filepath.Base(p)
			totalBytes, known := fileSizeIfKnown(p)
			listener.started(idx, p, totalBytes, known)

			reporter := progress.ReporterFunc(func(delta int64) {
				listener.progress(idx, delta)
			})

			rec, err := SendFile(ctx, httpClient, adapter, p, opts, reporter)
			if err != nil {
				results[idx] = FileResult{Index: idx, Path: p, Filename: filename, Err: err}
				listener.failed(idx, err)
				return
			}

			results[idx] = FileResult{Index: idx, Path: p, Filename: filename, Record: rec}
			listener.done(idx, rec)
		}(i, path)
	}

	wg.Wait()
	return results
}

// fileSizeIfKnown reports the on-disk size of path when its extension (in
// any case) is .msz or .mszx: the size is the true upload size. For any
// other extension, mzML included, it reports unknown, since the compressed
// size is not known until streaming finishes. It decides from the
// extension alone and does not sniff the file's contents.
func fileSizeIfKnown(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".msz" || ext == ".mszx" {
		return info.Size(), true
	}
	return 0, false
}
