// Package server implements the receiver side of mstransfer: an HTTP
// endpoint that accepts streamed mzML or msz/mszx uploads, stages them to
// disk, optionally decompresses them, and exposes a status endpoint a
// sender can poll.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"github.com/chrisagrams/mstransfer/internal/auth"
	"github.com/chrisagrams/mstransfer/internal/codec"
	"github.com/chrisagrams/mstransfer/internal/config"
	"github.com/chrisagrams/mstransfer/internal/constants"
	"github.com/chrisagrams/mstransfer/internal/logging"
	"github.com/chrisagrams/mstransfer/internal/transfer"
	"github.com/chrisagrams/mstransfer/internal/util/buffers"
	"github.com/chrisagrams/mstransfer/internal/util/sanitize"
)

const serverVersion = "1.0.0"

// Server wires the registry, codec adapter, decompression pool and
// authenticator into a set of HTTP handlers.
type Server struct {
	Config   config.ServerConfig
	Registry *transfer.Registry
	Codec    codec.Adapter
	Workers  *transfer.DecompressWorkerPool
	Auth     auth.Authenticator
	Logger   *logging.Logger
}

// NewServer constructs a Server from its dependencies.
func NewServer(cfg config.ServerConfig, registry *transfer.Registry, adapter codec.Adapter, workers *transfer.DecompressWorkerPool, authenticator auth.Authenticator, logger *logging.Logger) *Server {
	if authenticator == nil {
		authenticator = auth.NoneAuthenticator{}
	}
	return &Server{
		Config:   cfg,
		Registry: registry,
		Codec:    adapter,
		Workers:  workers,
		Auth:     authenticator,
		Logger:   logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// handleHealth reports liveness plus the receiver's configured store mode.
// It is never gated by authentication.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: serverVersion,
		StoreAs: string(s.Config.StoreAs),
	})
}

// handleStatus returns the current snapshot of a transfer record. It never
// blocks on I/O or worker state — it only reads the registry.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, ok := s.Registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown transfer id %q", id))
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

// handleUpload accepts a streamed file body, stages it to disk, optionally
// decompresses it, and responds once the transfer has reached a terminal
// state.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	transferID := r.Header.Get("X-Transfer-ID")
	originalFilename := r.Header.Get("X-Original-Filename")
	if transferID == "" || originalFilename == "" {
		writeError(w, http.StatusBadRequest, "X-Transfer-ID and X-Original-Filename headers are required")
		return
	}

	stem := sanitize.SanitizeFilenameStem(originalFilename)
	if stem == "" {
		writeError(w, http.StatusBadRequest, "X-Original-Filename did not resolve to a usable file name")
		return
	}

	if _, err := s.Registry.Create(transferID, originalFilename); err != nil {
		if errors.Is(err, transfer.ErrConflict) {
			writeError(w, http.StatusConflict, fmt.Sprintf("transfer id %q already exists", transferID))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stagingPath := filepath.Join(s.Config.OutDir, stagingName(stem))
	out, err := os.OpenFile(stagingPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		errMsg := fmt.Sprintf("staging path already in use: %s", stagingPath)
		errState := transfer.StateError
		s.Registry.Update(transferID, transfer.Patch{State: &errState, Error: &errMsg})
		writeError(w, http.StatusConflict, errMsg)
		return
	}

	if err := s.receiveBody(r.Context(), transferID, r.Body, out, stagingPath); err != nil {
		out.Close()
		rec, _ := s.Registry.Get(transferID)
		writeJSON(w, http.StatusInternalServerError, toResponse(rec))
		return
	}
	out.Close()

	finalRec := s.finalize(r.Context(), transferID, stagingPath)
	status := http.StatusOK
	if finalRec.State == transfer.StateError {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, toResponse(finalRec))
}

// stagingName derives the on-disk file name for an incoming upload. The
// staging file always lands with a neutral ".incoming" extension; finalize
// then renames it to <stem>.msz, or decompresses it into <stem>.mzML and
// removes it.
func stagingName(stem string) string {
	return stem + ".incoming"
}

// receiveBody streams r into out, coalescing bytes_received updates into
// the registry on a fixed interval rather than on every chunk, bounding
// lock contention under many concurrent uploads.
func (s *Server) receiveBody(ctx context.Context, transferID string, body io.Reader, out *os.File, stagingPath string) error {
	bufPtr := buffers.GetChunkBuffer()
	defer buffers.PutChunkBuffer(bufPtr)
	buf := *bufPtr
	var total int64
	lastFlush := time.Now()

	flush := func() {
		s.Registry.Update(transferID, transfer.Patch{BytesReceived: &total})
	}

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			total += int64(n)
			if _, err := out.Write(buf[:n]); err != nil {
				errMsg := err.Error()
				errState := transfer.StateError
				s.Registry.Update(transferID, transfer.Patch{State: &errState, Error: &errMsg})
				return err
			}
			if time.Since(lastFlush) >= constants.BytesReceivedUpdateInterval {
				flush()
				lastFlush = time.Now()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				flush()
				receivedState := transfer.StateReceived
				s.Registry.Update(transferID, transfer.Patch{State: &receivedState})
				return nil
			}
			errMsg := readErr.Error()
			errState := transfer.StateError
			s.Registry.Update(transferID, transfer.Patch{State: &errState, Error: &errMsg})
			return readErr
		}
	}
}

// finalize branches on the configured store mode: msz is persisted as-is
// and marked done, mzml is decompressed through the decompression worker
// pool, which caps how many decompressions run at once, before being marked
// done.
// On decompress failure the staging file is preserved for inspection; it
// is removed only once decompression succeeds and the mzML form is safely
// on disk.
func (s *Server) finalize(ctx context.Context, transferID, stagingPath string) transfer.Record {
	if s.Config.StoreAs == config.StoreAsMSZ {
		finalPath := trimIncomingSuffix(stagingPath) + ".msz"
		if err := os.Rename(stagingPath, finalPath); err != nil {
			errMsg := err.Error()
			errState := transfer.StateError
			rec, _ := s.Registry.Update(transferID, transfer.Patch{State: &errState, Error: &errMsg})
			return rec
		}
		doneState := transfer.StateDone
		rec, _ := s.Registry.Update(transferID, transfer.Patch{State: &doneState, StoredAs: &finalPath})
		return rec
	}

	decompressingState := transfer.StateDecompressing
	s.Registry.Update(transferID, transfer.Patch{State: &decompressingState})

	finalPath := trimIncomingSuffix(stagingPath) + ".mzML"
	if err := s.Workers.Decompress(ctx, stagingPath, finalPath); err != nil {
		errMsg := err.Error()
		errState := transfer.StateError
		rec, _ := s.Registry.Update(transferID, transfer.Patch{State: &errState, Error: &errMsg})
		return rec
	}

	os.Remove(stagingPath)
	doneState := transfer.StateDone
	rec, _ := s.Registry.Update(transferID, transfer.Patch{State: &doneState, StoredAs: &finalPath})
	return rec
}

func trimIncomingSuffix(path string) string {
	const suffix = ".incoming"
	if len(path) > len(suffix) && path[len(path)-len(suffix):] == suffix {
		return path[:len(path)-len(suffix)]
	}
	return path
}

// requireAuth wraps a handler so it rejects unauthenticated requests with
// 401 before delegating.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.Auth.Authenticate(r); err != nil {
			writeError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		next(w, r)
	}
}
