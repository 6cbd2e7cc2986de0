package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// UploadUI manages multiple concurrent upload progress bars using mpb.
type UploadUI struct {
	progress   *mpb.Progress
	bars       sync.Map // filepath -> *FileBar
	isTerminal bool
	totalFiles int
	started    int32
	completed  int32
}

// FileBar represents a single file's upload progress bar.
type FileBar struct {
	bar        *mpb.Bar
	ui         *UploadUI
	index      int
	filepath   string
	dest       string
	size       int64
	startTime  time.Time
	lastUpdate time.Time
	lastBytes  int64
}

// NewUploadUI creates an upload UI for a batch of totalFiles transfers.
func NewUploadUI(totalFiles int) *UploadUI {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))

	var p *mpb.Progress
	if isTerminal {
		enableANSIOnWindows(os.Stderr)

		p = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(300*time.Millisecond),
			mpb.WithWidth(100),
		)
	} else {
		p = mpb.New(mpb.WithOutput(io.Discard))
	}

	return &UploadUI{
		progress:   p,
		isTerminal: isTerminal,
		totalFiles: totalFiles,
	}
}

// AddFileBar creates a new progress bar for a file transfer to dest (the
// receiver's host:port).
func (u *UploadUI) AddFileBar(localPath, dest string, size int64) *FileBar {
	index := int(atomic.AddInt32(&u.started, 1))
	sourcePath := truncatePath(localPath, 2)

	fb := &FileBar{
		ui:         u,
		index:      index,
		filepath:   localPath,
		dest:       dest,
		size:       size,
		startTime:  time.Now(),
		lastUpdate: time.Now(),
	}

	if u.isTerminal {
		fb.bar = u.progress.New(size,
			mpb.BarStyle().
				Lbound("[").
				Filler("█").
				Tip("█").
				Padding("░").
				Rbound("]"),
			mpb.PrependDecorators(
				decor.Any(func(s decor.Statistics) string {
					return fmt.Sprintf("[%d/%d] %s (%.1f MiB) → %s",
						fb.index, u.totalFiles,
						sourcePath,
						float64(size)/(1024*1024),
						dest)
				}, decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncSpace),
				decor.Name("  "),
				decor.Percentage(decor.WCSyncSpace),
				decor.Name("  "),
				decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 30, decor.WCSyncSpace),
				decor.Name("  "),
				decor.Name("ETA ", decor.WCSyncWidth),
				decor.EwmaETA(decor.ET_STYLE_GO, 30),
			),
			mpb.BarRemoveOnComplete(),
		)
	} else {
		fmt.Printf("Uploading [%d/%d]: %s (%.1f MiB) → %s\n",
			fb.index, u.totalFiles,
			sourcePath,
			float64(size)/(1024*1024),
			dest)
	}

	u.bars.Store(localPath, fb)
	return fb
}

// UpdateProgress updates the bar based on a fraction (0.0 to 1.0) of bytes
// sent so far, throttled to reduce visual noise and keep EWMA speed/ETA
// accurate even between byte updates.
func (f *FileBar) UpdateProgress(fraction float64) {
	if f.bar == nil {
		return
	}

	now := time.Now()
	elapsed := now.Sub(f.lastUpdate)

	currentBytes := int64(fraction * float64(f.size))
	bytesDelta := currentBytes - f.lastBytes

	const updateInterval = 300 * time.Millisecond
	if elapsed >= updateInterval {
		f.bar.EwmaIncrBy(int(bytesDelta), elapsed)
		f.lastBytes = currentBytes
		f.lastUpdate = now
	}
}

// Complete marks the transfer as finished and prints a summary line.
func (f *FileBar) Complete(transferID string, err error) {
	elapsed := time.Since(f.startTime)
	speed := float64(f.size) / elapsed.Seconds() / (1024 * 1024)

	if err == nil {
		if f.bar != nil {
			f.bar.SetCurrent(f.size)
			f.bar.SetTotal(f.size, true)
		}

		msg := fmt.Sprintf("✓ %s → %s (transfer %s, %.1f MiB, %s, %.1f MiB/s)\n",
			truncatePath(f.filepath, 2),
			f.dest,
			transferID,
			float64(f.size)/(1024*1024),
			elapsed.Round(time.Second),
			speed)

		if f.ui.isTerminal && f.ui.progress != nil {
			f.ui.progress.Write([]byte(msg))
		} else {
			fmt.Print(msg)
		}
	} else {
		if f.bar != nil {
			f.bar.Abort(false)
		}

		msg := fmt.Sprintf("✗ %s → %s: %v\n",
			truncatePath(f.filepath, 2),
			f.dest,
			err)

		if f.ui.isTerminal && f.ui.progress != nil {
			f.ui.progress.Write([]byte(msg))
		} else {
			fmt.Print(msg)
		}
	}

	atomic.AddInt32(&f.ui.completed, 1)
}

// Wait blocks until all progress bars complete.
func (u *UploadUI) Wait() {
	if u.progress != nil {
		u.progress.Wait()
	}
}

// Writer returns an io.Writer that safely prints above the progress bars.
func (u *UploadUI) Writer() io.Writer {
	if u.progress != nil && u.isTerminal {
		return u.progress
	}
	return os.Stderr
}

// IsTerminal reports whether output is to a terminal (progress bars are
// active).
func (u *UploadUI) IsTerminal() bool {
	return u.isTerminal
}

// truncatePath truncates a file path to show only the last N components.
// Example: truncatePath("/a/b/c/d/file.txt", 3) → "…/c/d/file.txt"
func truncatePath(path string, maxComponents int) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= maxComponents {
		return filepath.Base(path)
	}
	relevant := parts[len(parts)-maxComponents:]
	return "…/" + strings.Join(relevant, "/")
}

// enableANSIOnWindows enables Virtual Terminal processing on Windows for
// ANSI escape sequences. No-op on non-Windows platforms.
func enableANSIOnWindows(f *os.File) {
	if runtime.GOOS == "windows" {
		enableWindowsANSI(f)
	}
}
