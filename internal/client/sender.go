package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/chrisagrams/mstransfer/internal/codec"
	"github.com/chrisagrams/mstransfer/internal/progress"
)

// SendFile transmits one local file to a receiver and returns its final
// record, polling for completion if the upload response isn't already
// terminal. reporter may be nil.
func SendFile(ctx context.Context, httpClient *http.Client, adapter codec.Adapter, path string, opts SendOptions, reporter progress.Reporter) (TransferRecord, error) {
	format, err := adapter.Detect(path)
	if err != nil {
		return TransferRecord{}, fmt.Errorf("detect format of %s: %w", path, err)
	}
	if format != codec.FormatMzML && format != codec.FormatMSZ && format != codec.FormatMSZX {
		return TransferRecord{}, fmt.Errorf("unsupported file type %q for %s", format, path)
	}

	transferID := uuid.NewString()
	baseURL := fmt.Sprintf("http://%s:%d", opts.Host, opts.Port)

	uploadCtx := ctx
	if opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(ctx, opts.RequestTimeout)
		defer cancel()
	}

	body, closeBody, err := buildRequestBody(uploadCtx, adapter, path, format, opts.ChunkSize, reporter)
	if err != nil {
		return TransferRecord{}, err
	}
	defer closeBody()

	req, err := http.NewRequestWithContext(uploadCtx, http.MethodPost, baseURL+"/v1/upload", body)
	if err != nil {
		return TransferRecord{}, err
	}
	req.Header.Set("X-Transfer-ID", transferID)
	req.Header.Set("X-Original-Filename", filepath.Base(path))
	req.Header.Set("X-Source-Format", string(format))
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := httpClient.Do(req)
	if err != nil {
		return TransferRecord{}, fmt.Errorf("upload %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var detail errorDetail
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return TransferRecord{}, fmt.Errorf("upload %s rejected with %d: %s", path, resp.StatusCode, detail.Detail)
	}

	var rec TransferRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return TransferRecord{}, fmt.Errorf("decode upload response for %s: %w", path, err)
	}

	if rec.IsTerminal() {
		return rec, nil
	}

	return poll(ctx, httpClient, baseURL, transferID, opts.PollTimeout, opts.PollInterval)
}

// buildRequestBody selects the right body producer for format: a streaming
// compressor for mzML, or a plain chunked file read for an already
// compressed format. Both are wrapped in the same counting decorator so the
// caller's reporter sees per-chunk deltas regardless of path.
func buildRequestBody(ctx context.Context, adapter codec.Adapter, path string, format codec.Format, chunkSize int, reporter progress.Reporter) (io.Reader, func(), error) {
	if format == codec.FormatMzML {
		stream, err := adapter.CompressStream(ctx, path, chunkSize)
		if err != nil {
			return nil, nil, fmt.Errorf("start compression stream for %s: %w", path, err)
		}
		counted := progress.NewProgressReader(stream.Reader, reporter)
		return counted, func() {
			if stream.Close != nil {
				stream.Close()
			}
		}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	counted := progress.NewProgressReader(f, reporter)
	return counted, func() { f.Close() }, nil
}
