package rpc

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	pdef "github.com/pdef/pdef-go"
)

// Protocol translates invocation chains to and from wire requests. It
// is stateless and safe for concurrent use.
type Protocol struct{}

// WriteRequest encodes an invocation chain into a wire request. The
// request method is POST when the terminal method is a post method;
// the whole chain inherits that choice.
func (Protocol) WriteRequest(inv *pdef.Invocation) (*Request, error) {
	if inv == nil {
		return nil, fmt.Errorf("rpc: invocation required")
	}
	if !inv.Method().IsTerminal() {
		return nil, fmt.Errorf("rpc: the last invocation method must be terminal")
	}

	req := NewRequest()
	if inv.Method().IsPost() {
		req.Method = http.MethodPost
	}
	for _, link := range inv.ToChain() {
		if err := writeInvocation(req, link); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func writeInvocation(req *Request, inv *pdef.Invocation) error {
	method := inv.Method()
	kwargs := inv.Kwargs()

	path := "/" + method.Name()
	for _, arg := range method.Args() {
		name := arg.Name()
		value, err := argToJSON(kwargs[name], arg.Type())
		if err != nil {
			return err
		}

		switch {
		case arg.IsPost():
			req.Post[name] = value
		case arg.IsQuery():
			req.Query[name] = value
		default:
			if kwargs[name] == nil {
				return fmt.Errorf("rpc: method %s: path argument %q is nil", method.Name(), name)
			}
			path += "/" + quote(value)
		}
	}

	req.Path += path
	return nil
}

// argToJSON serializes an argument to its JSON text. String values have
// their outer quotes stripped; the decoder re-quotes them.
func argToJSON(v any, d pdef.Descriptor) (string, error) {
	s, err := pdef.JSON.Write(v, d)
	if err != nil {
		return "", err
	}
	if d.Type() != pdef.TypeString || len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s, nil
	}
	return s[1 : len(s)-1], nil
}

// ReadInvocation parses an invocation chain from a wire request against
// an interface descriptor. Routing failures are reported as *Error with
// the corresponding HTTP status.
func (Protocol) ReadInvocation(req *Request, iface *pdef.InterfaceDescriptor) (*pdef.Invocation, error) {
	if req == nil {
		return nil, fmt.Errorf("rpc: request required")
	}
	if iface == nil {
		return nil, fmt.Errorf("rpc: interface descriptor required")
	}

	var parts []string
	if trimmed := strings.Trim(req.Path, "/"); trimmed != "" {
		parts = strings.Split(trimmed, "/")
	}

	var inv *pdef.Invocation
	for len(parts) > 0 {
		part := parts[0]
		parts = parts[1:]

		method := iface.FindMethod(part)
		if method == nil {
			return nil, Errorf(http.StatusNotFound, "method not found: %q", part)
		}
		if method.IsPost() && !req.IsPost() {
			return nil, Errorf(http.StatusMethodNotAllowed, "method not allowed, POST required")
		}

		kwargs, rest, err := readKwargs(method, parts, req.Query, req.Post)
		if err != nil {
			return nil, err
		}
		parts = rest

		if inv == nil {
			inv, err = pdef.NewInvocation(method, nil, kwargs)
		} else {
			inv, err = inv.Next(method, nil, kwargs)
		}
		if err != nil {
			return nil, Errorf(http.StatusBadRequest, "%s", err)
		}

		if method.IsTerminal() {
			break
		}
		iface = method.Result().(*pdef.InterfaceDescriptor)
	}

	if len(parts) > 0 {
		return nil, Errorf(http.StatusNotFound, "failed to parse an invocation chain")
	}
	if inv == nil {
		return nil, Errorf(http.StatusNotFound, "methods required")
	}
	if !inv.Method().IsTerminal() {
		return nil, Errorf(http.StatusBadRequest, "the last method must be terminal, returning a data type or void")
	}
	return inv, nil
}

func readKwargs(method *pdef.MethodDescriptor, parts []string, query, post map[string]string) (map[string]any, []string, error) {
	kwargs := make(map[string]any, len(method.Args()))

	for _, arg := range method.Args() {
		name := arg.Name()
		var value *string

		switch {
		case arg.IsPost():
			if v, ok := post[name]; ok {
				value = &v
			}
		case arg.IsQuery():
			if v, ok := query[name]; ok {
				value = &v
			}
		default:
			if len(parts) == 0 {
				return nil, nil, Errorf(http.StatusNotFound, "wrong number of arguments for method %q", method.Name())
			}
			unquoted, err := unquote(parts[0])
			if err != nil {
				return nil, nil, Errorf(http.StatusBadRequest, "malformed path argument %q", parts[0])
			}
			parts = parts[1:]
			value = &unquoted
		}

		if value == nil {
			kwargs[name] = nil
			continue
		}
		parsed, err := argFromJSON(*value, arg.Type())
		if err != nil {
			return nil, nil, Errorf(http.StatusBadRequest, "malformed argument %q", name)
		}
		kwargs[name] = parsed
	}
	return kwargs, parts, nil
}

// argFromJSON parses an argument from its JSON text. String-typed
// arguments are re-quoted first, because the encoder strips the outer
// quotes; interior escapes are still intact.
func argFromJSON(s string, d pdef.Descriptor) (any, error) {
	if d.Type() == pdef.TypeString {
		s = `"` + s + `"`
	}
	return pdef.JSON.Read(s, d)
}

// quote percent-encodes a path segment, leaving ASCII alphanumerics and
// the characters []{},.-" intact so that stripped JSON stays readable
// in URLs.
func quote(s string) string {
	const upperhex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSafeByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

func isSafeByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '[', ']', '{', '}', ',', '.', '-', '"':
		return true
	}
	return false
}

func unquote(s string) (string, error) {
	return url.QueryUnescape(s)
}
