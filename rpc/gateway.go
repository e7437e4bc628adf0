package rpc

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pdef "github.com/pdef/pdef-go"
)

// Gateway adapts a Handler to net/http. It is reentrant and safe for
// concurrent requests from the host server's connection pool.
type Gateway struct {
	handler *Handler
	log     *slog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the logger. If nil, slog.Default is used.
func WithLogger(l *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGateway creates an http.Handler serving RPC requests through h.
func NewGateway(h *Handler, opts ...GatewayOption) *Gateway {
	g := &Gateway{handler: h, log: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ServeHTTP translates the HTTP request into a wire request, runs the
// handler and writes the response: 200 with a JSON envelope on success,
// 422 with the same envelope on an application exception, the error's
// status and a plain-text body on a transport error, and 500 otherwise.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := parseHTTPRequest(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "bad request")
		return
	}

	ok, result, err := g.handler.Handle(r.Context(), req)
	if err != nil {
		var rpcErr *Error
		if errors.As(err, &rpcErr) {
			status := rpcErr.Status
			if status == 0 {
				status = http.StatusInternalServerError
			}
			writeText(w, status, rpcErr.Text)
			return
		}
		g.log.Error("rpc call failed", "path", req.Path, "error", err)
		writeText(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusUnprocessableEntity
	}
	content, err := pdef.ToJSON(result)
	if err != nil {
		g.log.Error("rpc response serialization failed", "path", req.Path, "error", err)
		writeText(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(status)
	io.WriteString(w, content)
}

// parseHTTPRequest translates an HTTP request into a wire request. The
// path keeps its percent-encoding so the protocol unquotes it exactly
// once. The body is read only for form-urlencoded content with a
// positive length.
func parseHTTPRequest(r *http.Request) (*Request, error) {
	req := NewRequest()
	req.Method = r.Method
	req.Path = r.URL.EscapedPath()

	query, err := parseForm(r.URL.RawQuery)
	if err != nil {
		return nil, err
	}
	req.Query = query

	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	if r.ContentLength > 0 && strings.HasPrefix(contentType, contentTypeForm) {
		body, err := io.ReadAll(io.LimitReader(r.Body, r.ContentLength))
		if err != nil {
			return nil, err
		}
		post, err := parseForm(string(body))
		if err != nil {
			return nil, err
		}
		req.Post = post
	}
	return req, nil
}

// parseForm parses an urlencoded string into a first-value map.
func parseForm(s string) (map[string]string, error) {
	values, err := url.ParseQuery(s)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		} else {
			out[k] = ""
		}
	}
	return out, nil
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("Content-Length", strconv.Itoa(len(text)))
	w.WriteHeader(status)
	io.WriteString(w, text)
}
