// Package client implements the PancakeDB client: the table and write API
// surface, and the correlated multi-request segment read path that
// reassembles column payloads into rows.
//
// Most usage looks like:
//
//	c, err := client.New("http://127.0.0.1:3842")
//	if err != nil { ... }
//	_, err = c.WriteToPartition(ctx, &client.WriteToPartitionRequest{
//	    TableName: "events",
//	    Rows:      []field.Row{field.NewRow().Set("i", field.Int64Value(33))},
//	})
//	rows, err := c.DecodeSegment(ctx, key, schema.Columns)
package client

import (
	"net/http"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/internal/options"
)

// DefaultReadConcurrency bounds how many column read loops of one segment
// read run at once.
const DefaultReadConcurrency = 8

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client is a PancakeDB client. It holds the shared transport handle plus
// settings fixed at construction, so it is cheap to copy and safe for
// concurrent use; per-call state lives on the stack of each call.
type Client struct {
	transport       Transport
	logger          *zap.Logger
	readConcurrency int
}

// Option configures a Client at construction time.
type Option = options.Option[*Client]

// WithTransport replaces the REST transport entirely, e.g. with a fake for
// tests or another protocol.
func WithTransport(t Transport) Option {
	return options.NoError(func(c *Client) {
		c.transport = t
	})
}

// WithLogger attaches a logger for per-request debug logging. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(c *Client) {
		c.logger = l
	})
}

// WithReadConcurrency bounds concurrent column reads within DecodeSegment.
func WithReadConcurrency(n int) Option {
	return options.New(func(c *Client) error {
		if n < 1 {
			return errs.Invalid("read concurrency %d must be at least 1", n)
		}
		c.readConcurrency = n

		return nil
	})
}

// New creates a Client for the server at baseURL, e.g.
// "http://127.0.0.1:3842".
func New(baseURL string, opts ...Option) (*Client, error) {
	return NewWithHTTPClient(baseURL, nil, opts...)
}

// NewWithHTTPClient is New with a caller-owned http.Client, for custom
// timeouts or connection pooling.
func NewWithHTTPClient(baseURL string, httpc *http.Client, opts ...Option) (*Client, error) {
	c := &Client{
		transport:       NewRESTTransport(baseURL, httpc),
		logger:          zap.NewNop(),
		readConcurrency: DefaultReadConcurrency,
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// NewCorrelationID generates a fresh correlation ID for one segment read.
//
// The same ID must be used for the deletion read and every column read of
// one segment at one point in time, and must not be reused across two
// logical reads, or the data returned might not be consistent.
func NewCorrelationID() string {
	return uuid.NewString()
}
