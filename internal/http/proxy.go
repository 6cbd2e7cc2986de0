package http

import (
	"crypto/tls"
	"fmt"
	"log"
	nethttp "net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpproxy"

	"github.com/chrisagrams/mstransfer/internal/config"
	"github.com/chrisagrams/mstransfer/internal/constants"
)

// ConfigureHTTPClient builds an HTTP client honoring the configured proxy
// mode. Only "system" (respect HTTP_PROXY/HTTPS_PROXY/NO_PROXY) and
// "no-proxy" are supported — mstransfer talks to a plain internal
// receiver, never a SaaS API behind an authenticating corporate proxy, so
// the NTLM/Basic proxy-auth negotiation the teacher carried has nothing to
// attach to here.
func ConfigureHTTPClient(cfg config.ClientConfig) (*nethttp.Client, error) {
	transport := &nethttp.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		IdleConnTimeout:       constants.HTTPIdleConnTimeout,
		TLSHandshakeTimeout:   constants.HTTPTLSHandshakeTimeout,
		ExpectContinueTimeout: constants.HTTPExpectContinueTimeout,
	}

	switch strings.ToLower(cfg.ProxyMode) {
	case "no-proxy":
		transport.Proxy = nil
	case "system", "":
		transport.Proxy = proxyFuncWithBypass()
	default:
		return nil, fmt.Errorf("unsupported proxy mode: %s", cfg.ProxyMode)
	}

	return &nethttp.Client{Transport: transport}, nil
}

// proxyFuncWithBypass wraps nethttp.ProxyFromEnvironment so bypass
// decisions are logged, which is useful when a transfer unexpectedly goes
// direct or proxied in a network with a partial NO_PROXY list.
func proxyFuncWithBypass() func(*nethttp.Request) (*url.URL, error) {
	envCfg := httpproxy.FromEnvironment()
	proxyFunc := envCfg.ProxyFunc()
	return func(req *nethttp.Request) (*url.URL, error) {
		result, err := proxyFunc(req.URL)
		if result == nil {
			log.Printf("[proxy] bypass: %s (direct connection)", req.URL.Host)
		} else {
			log.Printf("[proxy] proxied: %s -> %s", req.URL.Host, result.Host)
		}
		return result, err
	}
}
