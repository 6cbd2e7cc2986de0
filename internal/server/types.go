package server

import "github.com/chrisagrams/mstransfer/internal/transfer"

// RecordResponse is the wire JSON shape for a transfer record snapshot,
// per spec.md §6.
type RecordResponse struct {
	TransferID    string `json:"transfer_id"`
	Filename      string `json:"filename"`
	State         string `json:"state"`
	BytesReceived int64  `json:"bytes_received"`
	StoredAs      string `json:"stored_as"`
	Error         string `json:"error"`
	CreatedAt     string `json:"created_at"`
}

// toResponse converts a registry snapshot to its wire representation.
func toResponse(rec transfer.Record) RecordResponse {
	return RecordResponse{
		TransferID:    rec.TransferID,
		Filename:      rec.Filename,
		State:         string(rec.State),
		BytesReceived: rec.BytesReceived,
		StoredAs:      rec.StoredAs,
		Error:         rec.Error,
		CreatedAt:     rec.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// HealthResponse is the wire shape for GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	StoreAs string `json:"store_as"`
}

// ErrorResponse is the wire shape for a non-2xx response detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
