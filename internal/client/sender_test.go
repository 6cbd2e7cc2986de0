package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chrisagrams/mstransfer/internal/codec"
)

type fakeAdapter struct{}

func (fakeAdapter) Detect(path string) (codec.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mzml":
		return codec.FormatMzML, nil
	case ".msz":
		return codec.FormatMSZ, nil
	case ".mszx":
		return codec.FormatMSZX, nil
	default:
		return codec.FormatUnknown, nil
	}
}

func (fakeAdapter) CompressStream(ctx context.Context, path string, chunkSize int) (*codec.StreamResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &codec.StreamResult{Reader: f, Close: f.Close}, nil
}

func (fakeAdapter) Decompress(ctx context.Context, inputPath, outputPath string) error {
	return nil
}

func testOpts(host string, port int) SendOptions {
	return SendOptions{
		Host:          host,
		Port:          port,
		ChunkSize:     1024,
		RequestTimeout: 5 * time.Second,
		PollInterval:  5 * time.Millisecond,
		PollTimeout:   2 * time.Second,
	}
}

func hostPort(t *testing.T, srvURL string) (string, int) {
	t.Helper()
	u, err := url.Parse(srvURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	host := u.Hostname()
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return host, port
}

func TestSendFile_ImmediateDone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.msz")
	os.WriteFile(path, []byte("payload"), 0o644)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Transfer-ID") == "" || r.Header.Get("X-Original-Filename") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		body, _ := json.Marshal(TransferRecord{
			TransferID:    r.Header.Get("X-Transfer-ID"),
			Filename:      r.Header.Get("X-Original-Filename"),
			State:         "done",
			BytesReceived: 7,
			StoredAs:      "test.msz",
		})
		w.Write(body)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	host, port := hostPort(t, srv.URL)
	rec, err := SendFile(context.Background(), srv.Client(), fakeAdapter{}, path, testOpts(host, port), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.State != "done" {
		t.Errorf("expected done, got %q", rec.State)
	}
}

func TestSendFile_PollsUntilDone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.msz")
	os.WriteFile(path, []byte("payload"), 0o644)

	var pollCount int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/upload", func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(TransferRecord{
			TransferID: r.Header.Get("X-Transfer-ID"),
			State:      "receiving",
		})
		w.Write(body)
	})
	mux.HandleFunc("/v1/transfer/", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&pollCount, 1)
		state := "decompressing"
		if n >= 3 {
			state = "done"
		}
		body, _ := json.Marshal(TransferRecord{State: state, BytesReceived: int64(n)})
		w.Write(body)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	host, port := hostPort(t, srv.URL)
	rec, err := SendFile(context.Background(), srv.Client(), fakeAdapter{}, path, testOpts(host, port), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.State != "done" {
		t.Errorf("expected done after polling, got %q", rec.State)
	}
}

func TestSendFile_ProtocolError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.msz")
	os.WriteFile(path, []byte("payload"), 0o644)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		body, _ := json.Marshal(map[string]string{"detail": "transfer id already exists"})
		w.Write(body)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	host, port := hostPort(t, srv.URL)
	_, err := SendFile(context.Background(), srv.Client(), fakeAdapter{}, path, testOpts(host, port), nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected server detail in error, got: %v", err)
	}
}

func TestSendFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	os.WriteFile(path, []byte("payload"), 0o644)

	_, err := SendFile(context.Background(), http.DefaultClient, fakeAdapter{}, path, testOpts("localhost", 1), nil)
	if err == nil {
		t.Fatal("expected an error for unsupported extension")
	}
}

func TestPoll_TimeoutNoProgress(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/transfer/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(TransferRecord{State: "receiving", BytesReceived: 5})
		w.Write(body)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := poll(context.Background(), srv.Client(), srv.URL, "stuck", 30*time.Millisecond, 5*time.Millisecond)
	var timeoutErr *ErrPollTimeout
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !asTimeout(err, &timeoutErr) {
		t.Errorf("expected ErrPollTimeout, got %T: %v", err, err)
	}
}

func asTimeout(err error, target **ErrPollTimeout) bool {
	if e, ok := err.(*ErrPollTimeout); ok {
		*target = e
		return true
	}
	return false
}

func TestSendBatch_PreservesOrderAndReportsErrors(t *testing.T) {
	dir := t.TempDir()
	goodPath := filepath.Join(dir, "good.msz")
	badPath := filepath.Join(dir, "bad.msz")
	os.WriteFile(goodPath, []byte("ok"), 0o644)
	os.WriteFile(badPath, []byte("boom"), 0o644)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Original-Filename") == "bad.msz" {
			w.WriteHeader(http.StatusBadGateway)
			body, _ := json.Marshal(map[string]string{"detail": "boom"})
			w.Write(body)
			return
		}
		body, _ := json.Marshal(TransferRecord{State: "done", BytesReceived: 2})
		w.Write(body)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	host, port := hostPort(t, srv.URL)
	results := SendBatch(context.Background(), srv.Client(), fakeAdapter{}, []string{goodPath, badPath}, 2, testOpts(host, port), nil)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Filename != "good.msz" || results[0].Err != nil {
		t.Errorf("expected good.msz to succeed at index 0, got %+v", results[0])
	}
	if results[1].Filename != "bad.msz" || results[1].Err == nil || !strings.Contains(results[1].Err.Error(), "boom") {
		t.Errorf("expected bad.msz to fail with 'boom' at index 1, got %+v", results[1])
	}
}

func TestSendBatch_SingleInputUsesOneWorker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.msz")
	os.WriteFile(path, []byte("data"), 0o644)

	var concurrent int32
	var maxConcurrent int32
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/upload", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&concurrent, 1)
		defer atomic.AddInt32(&concurrent, -1)
		for {
			max := atomic.LoadInt32(&maxConcurrent)
			if n <= max || atomic.CompareAndSwapInt32(&maxConcurrent, max, n) {
				break
			}
		}
		body, _ := json.Marshal(TransferRecord{State: "done"})
		w.Write(body)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	host, port := hostPort(t, srv.URL)
	results := SendBatch(context.Background(), srv.Client(), fakeAdapter{}, []string{path}, 8, testOpts(host, port), nil)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if maxConcurrent != 1 {
		t.Errorf("expected exactly 1 worker spawned for 1 input, observed max concurrency %d", maxConcurrent)
	}
}
