// Package httpclient narrows the HTTP client surface for calls that
// bypass the generated API client, so tests can substitute a double.
package httpclient

import "net/http"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
