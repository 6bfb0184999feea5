package provider

import (
	"net/http"
	"time"
)

// newHTTPClient builds the client shared by the remote providers. Connection
// pooling is sized for single outbound calls; a remote call is attempted
// exactly once, with the request timeout as the only bound.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
