// Package client implements the sender side of mstransfer: compressing or
// streaming a local file to a receiver, polling for completion, and driving
// a bounded-concurrency batch of such sends.
package client

import "time"

// TransferRecord mirrors the receiver's record JSON, decoded independently
// here since the client and server never share a Go package — only an HTTP
// contract.
type TransferRecord struct {
	TransferID    string `json:"transfer_id"`
	Filename      string `json:"filename"`
	State         string `json:"state"`
	BytesReceived int64  `json:"bytes_received"`
	StoredAs      string `json:"stored_as"`
	Error         string `json:"error"`
	CreatedAt     string `json:"created_at"`
}

// IsTerminal reports whether the record's state is done or error.
func (r TransferRecord) IsTerminal() bool {
	return r.State == "done" || r.State == "error"
}

// FileResult is one entry of a batch send, aligned to the input index
// regardless of completion order.
type FileResult struct {
	Index    int
	Path     string
	Filename string
	Record   TransferRecord
	Err      error
}

// errorDetail mirrors the receiver's non-2xx error body.
type errorDetail struct {
	Detail string `json:"detail"`
}

// ProgressListener receives batch-wide lifecycle callbacks, in the fixed
// order file_started → file_progress* → (file_done | file_error), per file.
// Any method may be nil.
type ProgressListener struct {
	FileStarted  func(index int, path string, totalBytes int64, known bool)
	FileProgress func(index int, delta int64)
	FileDone     func(index int, record TransferRecord)
	FileError    func(index int, err error)
}

func (l *ProgressListener) started(index int, path string, totalBytes int64, known bool) {
	if l != nil && l.FileStarted != nil {
		l.FileStarted(index, path, totalBytes, known)
	}
}

func (l *ProgressListener) progress(index int, delta int64) {
	if l != nil && l.FileProgress != nil {
		l.FileProgress(index, delta)
	}
}

func (l *ProgressListener) done(index int, record TransferRecord) {
	if l != nil && l.FileDone != nil {
		l.FileDone(index, record)
	}
}

func (l *ProgressListener) failed(index int, err error) {
	if l != nil && l.FileError != nil {
		l.FileError(index, err)
	}
}

// SendOptions configures a single-file send.
type SendOptions struct {
	Host           string
	Port           int
	ChunkSize      int
	RequestTimeout time.Duration
	PollInterval   time.Duration
	PollTimeout    time.Duration
}
