package config

import (
	"os"

	"github.com/chrisagrams/mstransfer/internal/constants"
)

// ClientConfig holds tunables for the sender/batch driver.
type ClientConfig struct {
	ChunkSize  int
	Parallel   int
	Recursive  bool
	RequestTO  int // seconds
	PollTO     int // seconds, no-progress deadline

	// ProxyMode is "system" (respect HTTP_PROXY/HTTPS_PROXY/NO_PROXY) or
	// "no-proxy". There is no NTLM/Basic-auth proxy mode here: mstransfer
	// talks to a plain internal receiver, not a SaaS API behind a
	// credentialed corporate proxy.
	ProxyMode string
}

// DefaultClientConfig returns baseline client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ChunkSize: constants.DefaultChunkSize,
		Parallel:  constants.DefaultParallel,
		RequestTO: int(constants.UploadRequestTimeout.Seconds()),
		PollTO:    int(constants.PollNoProgressTimeout.Seconds()),
		ProxyMode: "system",
	}
}

// ResolveAPIKeyForRequest resolves a client-side API key (sent as a bearer
// token) the same way the server resolves its own: flag, then environment.
func ResolveAPIKeyForRequest(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("MSTRANSFER_API_KEY")
}
