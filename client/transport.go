package client

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/pancake-db/pancake-core/errs"
)

// Transport sends one request to a named endpoint and returns the server's
// status and raw response body. The core treats it as opaque, so tests and
// alternative protocols plug in here.
type Transport interface {
	Do(ctx context.Context, method, endpoint string, body []byte) (status int, resp []byte, err error)
}

// restTransport talks to the server's REST surface: JSON request bodies at
// /rest/<endpoint>, JSON or hybrid JSON+binary responses.
type restTransport struct {
	baseURL string
	httpc   *http.Client
}

// NewRESTTransport returns the REST Transport for a server base URL such as
// "http://127.0.0.1:3842". A nil httpc uses http.DefaultClient.
func NewRESTTransport(baseURL string, httpc *http.Client) Transport {
	if httpc == nil {
		httpc = http.DefaultClient
	}

	return &restTransport{baseURL: baseURL, httpc: httpc}
}

func (t *restTransport) Do(ctx context.Context, method, endpoint string, body []byte) (int, []byte, error) {
	url := t.baseURL + "/rest/" + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, errs.Other(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpc.Do(req)
	if err != nil {
		return 0, nil, errs.Connection(err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errs.Connection(err)
	}

	return resp.StatusCode, content, nil
}

// hybridDelimiter terminates the JSON prefix of a streaming-read response
// body; the raw binary data region starts immediately after it.
var hybridDelimiter = []byte("}\n")

// splitHybridResponse splits a hybrid JSON+binary body at the first
// delimiter occurrence. The JSON prefix keeps its closing brace; the suffix
// is the message's data region.
func splitHybridResponse(body []byte) (jsonPrefix, data []byte, err error) {
	i := bytes.Index(body, hybridDelimiter)
	if i < 0 {
		return nil, nil, errs.Invalid("hybrid response has no %q delimiter", string(hybridDelimiter))
	}

	return body[:i+1], body[i+len(hybridDelimiter):], nil
}
