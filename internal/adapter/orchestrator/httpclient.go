package orchestrator

import (
	"net"
	"net/http"
	"time"

	"wellness-chat/internal/infra/config"
)

// Default connection pool settings. The client talks to a single host, so the
// pool is small and connections are kept warm across turns.
const (
	defaultMaxIdleConns    = 10
	defaultIdleConnTimeout = 120 * time.Second
	defaultConnTimeout     = 10 * time.Second
)

// NewPooledTransport creates an http.Transport with connection pooling sized
// for a single-host request/response workload.
func NewPooledTransport(cfg config.OrchestratorConfig) *http.Transport {
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}

	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   defaultConnTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        maxIdle,
		MaxIdleConnsPerHost: maxIdle,
		IdleConnTimeout:     defaultIdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}
}

// NewHTTPClient creates an *http.Client with the pooled transport and the
// configured overall turn timeout.
func NewHTTPClient(cfg config.OrchestratorConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{
		Transport: NewPooledTransport(cfg),
		Timeout:   timeout,
	}
}
