package solr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Client queries the select handler of a Solr core
type Client struct {
	baseURL  string
	http     *fasthttp.Client
	timeout  time.Duration
	observer func(elapsed time.Duration, err error)
}

// Option customises a Client
type Option func(*Client)

// WithObserver registers a function called after every request with its duration and
// resulting error, if any.
func WithObserver(observer func(elapsed time.Duration, err error)) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient returns a client for the core at baseURL, e.g. http://localhost:8983/solr/collection1
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &fasthttp.Client{
			Name:                "viewer",
			MaxIdleConnDuration: time.Minute,
		},
		timeout:  timeout,
		observer: func(time.Duration, error) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs q against the index
func (c *Client) Search(ctx context.Context, q Query) (Response, error) {
	start := time.Now()
	res, err := c.search(ctx, q)
	c.observer(time.Since(start), err)
	return res, err
}

func (c *Client) search(ctx context.Context, q Query) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/select?" + q.Params().Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return Response{}, fmt.Errorf("%w: %s", ErrIndexUnreachable, err)
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusBadRequest:
		return Response{}, fmt.Errorf("%w: %s", ErrQueryMalformed, parseErrorMessage(resp.Body()))
	case status != fasthttp.StatusOK:
		return Response{}, fmt.Errorf("%w: status %d", ErrIndexUnreachable, status)
	}

	return parseResponse(resp.Body())
}
