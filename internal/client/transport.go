package client

import (
	"net/http"
	"sync"
	"time"
)

// DefaultHTTPTimeout bounds both the check round trip and the artifact
// download. The wire contract specifies no timeout; this is a hardening
// default, overridable per client via WithHTTPClient.
const DefaultHTTPTimeout = 30 * time.Second

var (
	sharedOnce   sync.Once
	sharedClient *http.Client
)

// SharedHTTPClient returns the process-wide HTTP client. All update clients
// constructed without an explicit client share it, so repeated short-lived
// update sessions reuse connections instead of exhausting sockets.
func SharedHTTPClient() *http.Client {
	sharedOnce.Do(func() {
		sharedClient = &http.Client{Timeout: DefaultHTTPTimeout}
	})
	return sharedClient
}
