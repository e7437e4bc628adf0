package rpc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/semaphore"

	pdef "github.com/pdef/pdef-go"
)

// errorTextLimit bounds the response text carried in a transport error.
const errorTextLimit = 255

// Client sends invocations to a remote pdef service over HTTP. Calls
// are synchronous; timeouts and cancellation are the HTTP client's and
// the context's concern.
type Client struct {
	iface    *pdef.InterfaceDescriptor
	baseURL  string
	http     *http.Client
	protocol Protocol
	sem      *semaphore.Weighted
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for sending requests.
// If nil, http.DefaultClient is used.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithConcurrencyLimit bounds the number of in-flight requests. Zero or
// negative means unbounded.
func WithConcurrencyLimit(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(n)
		}
	}
}

// NewClient creates a client for an interface descriptor and a base URL.
func NewClient(iface *pdef.InterfaceDescriptor, baseURL string, opts ...ClientOption) (*Client, error) {
	if iface == nil {
		return nil, fmt.Errorf("rpc: interface descriptor required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("rpc: url required")
	}
	c := &Client{
		iface:   iface,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Proxy returns an invocation proxy whose handler sends invocations
// through this client.
func (c *Client) Proxy() *pdef.Proxy {
	return pdef.NewProxy(c.iface, c.Handle)
}

// Handle encodes an invocation, sends it and interprets the response:
// 200 yields the envelope data, 422 raises the envelope error as the
// application exception, any other status raises a transport *Error.
func (c *Client) Handle(ctx context.Context, inv *pdef.Invocation) (any, error) {
	if inv == nil {
		return nil, fmt.Errorf("rpc: invocation required")
	}

	req, err := c.protocol.WriteRequest(inv)
	if err != nil {
		return nil, err
	}
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.sem != nil {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer c.sem.Release(1)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.parseResponse(resp, inv.Method().Result(), c.iface.Exc())
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		q := url.Values{}
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	var body io.Reader
	if len(req.Post) > 0 {
		form := url.Values{}
		for k, v := range req.Post {
			form.Set(k, v)
		}
		body = strings.NewReader(form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", contentTypeForm)
	}
	return httpReq, nil
}

func (c *Client) parseResponse(resp *http.Response, resultd pdef.Descriptor, excd *pdef.MessageDescriptor) (any, error) {
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnprocessableEntity {
		return nil, c.parseError(resp)
	}

	var excDescriptor pdef.Descriptor
	if excd != nil {
		excDescriptor = excd
	}
	rd := newResultDescriptor(resultd, excDescriptor)
	msg, err := pdef.ReadJSONFrom(resp.Body, rd)
	if err != nil {
		return nil, Errorf(resp.StatusCode, "failed to parse the rpc response: %s", err)
	}
	if msg == nil {
		return nil, Errorf(resp.StatusCode, "empty rpc response")
	}
	result := msg.(*Result)

	if resp.StatusCode == http.StatusOK {
		return result.Data(), nil
	}
	if e, ok := result.Err().(error); ok {
		return nil, e
	}
	return nil, Errorf(http.StatusUnprocessableEntity, "unsupported application exception")
}

func (c *Client) parseError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, errorTextLimit))
	text := string(data)
	if err != nil {
		text = fmt.Sprintf("failed to read the response text: %s", err)
	}
	return &Error{Status: resp.StatusCode, Text: strings.TrimSpace(text)}
}
