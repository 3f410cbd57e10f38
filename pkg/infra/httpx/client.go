package httpx

import "net/http"

// Client is the outbound HTTP dependency of every adapter. Responses are
// returned with their body already decoded.
//
//go:generate mockery --name=Client --dir=. --output=./mocks --filename=http_client_mock.go --case=underscore --with-expecter
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
