package progress

import "io"

// UI defines the interface for progress tracking during a batch upload.
type UI interface {
	// AddFileBar creates a new progress bar for a file transfer. dest is a
	// human-readable label for where the file is going (typically the
	// receiver's host:port).
	AddFileBar(localPath, dest string, size int64) FileBarHandle

	// Wait blocks until all progress bars complete.
	Wait()

	// Writer returns an io.Writer that safely outputs above the progress
	// bars. Returns mpb's writer in terminal mode, otherwise os.Stderr.
	Writer() io.Writer

	// IsTerminal reports whether output is to a terminal (progress bars
	// are active).
	IsTerminal() bool
}

// FileBarHandle is a handle to a single file's progress bar.
type FileBarHandle interface {
	// UpdateProgress updates the bar based on a fraction (0.0 to 1.0) of
	// bytes sent so far.
	UpdateProgress(fraction float64)

	// Complete marks the transfer as finished and prints a summary line.
	// transferID is the id the sender generated for the transfer, as
	// echoed back in the receiver's record on success.
	Complete(transferID string, err error)
}
