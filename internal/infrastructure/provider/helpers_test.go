package provider_test

import (
	"io"
	"net/http"
	"strings"
	"time"

	"pairscan-service/internal/infrastructure/httpx"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

// recordingClient answers every request with body and code and keeps the last request.
func recordingClient(resBody string, code int, last **http.Request, sent *string) *httpx.Client {
	return &httpx.Client{HTTP: &http.Client{
		Timeout: 2 * time.Second,
		Transport: roundTripFunc(func(r *http.Request) *http.Response {
			if last != nil {
				*last = r
			}
			if sent != nil && r.Body != nil {
				b, _ := io.ReadAll(r.Body)
				*sent = string(b)
			}
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(strings.NewReader(resBody)),
				Header:     make(http.Header),
				Request:    r,
			}
		}),
	}}
}
