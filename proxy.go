package pdef

import (
	"context"
	"fmt"
)

// InvocationHandler executes a finished invocation chain and returns its
// canonical result. RPC clients and in-process dispatchers are handlers.
type InvocationHandler func(ctx context.Context, inv *Invocation) (any, error)

// Proxy builds invocation chains over an interface descriptor. A proxy
// is immutable: chaining returns a child proxy closed over the extended
// chain. Generated clients wrap a proxy with one typed method per
// interface method.
type Proxy struct {
	iface      *InterfaceDescriptor
	handler    InvocationHandler
	invocation *Invocation
}

// NewProxy creates a proxy for an interface descriptor with a handler.
func NewProxy(iface *InterfaceDescriptor, handler InvocationHandler) *Proxy {
	return &Proxy{iface: iface, handler: handler}
}

// Interface returns the interface descriptor the proxy is bound to.
func (p *Proxy) Interface() *InterfaceDescriptor { return p.iface }

// Handler returns the proxy's invocation handler.
func (p *Proxy) Handler() InvocationHandler { return p.handler }

// Invocation returns the parent chain the proxy is bound to, or nil at
// the root.
func (p *Proxy) Invocation() *Invocation { return p.invocation }

// Method returns a per-method introspection handle, or nil when the
// interface has no such method.
func (p *Proxy) Method(name string) *ProxyMethod {
	m := p.iface.FindMethod(name)
	if m == nil {
		return nil
	}
	return &ProxyMethod{method: m, handler: p.handler, invocation: p.invocation}
}

// Call invokes a terminal method: it completes the chain, runs the
// handler and returns the result, substituting the typed default when
// the handler returns nil. Application exceptions from the handler
// propagate as errors.
func (p *Proxy) Call(ctx context.Context, name string, args ...any) (any, error) {
	method := p.iface.FindMethod(name)
	if method == nil {
		return nil, fmt.Errorf("pdef: interface %s has no method %q", p.iface, name)
	}
	if !method.IsTerminal() {
		return nil, fmt.Errorf("pdef: method %q is not terminal, chain it instead", name)
	}

	inv, err := p.next(method, args)
	if err != nil {
		return nil, err
	}
	result, err := p.handler(ctx, inv)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return DefaultValue(method.Result()), nil
	}
	return result, nil
}

// Chain invokes a non-terminal method, returning a child proxy bound to
// the method's result interface and the extended invocation chain.
func (p *Proxy) Chain(name string, args ...any) (*Proxy, error) {
	method := p.iface.FindMethod(name)
	if method == nil {
		return nil, fmt.Errorf("pdef: interface %s has no method %q", p.iface, name)
	}
	if method.IsTerminal() {
		return nil, fmt.Errorf("pdef: method %q is terminal, call it instead", name)
	}

	inv, err := p.next(method, args)
	if err != nil {
		return nil, err
	}
	return &Proxy{
		iface:      method.Result().(*InterfaceDescriptor),
		handler:    p.handler,
		invocation: inv,
	}, nil
}

func (p *Proxy) next(method *MethodDescriptor, args []any) (*Invocation, error) {
	if p.invocation == nil {
		return NewInvocation(method, args, nil)
	}
	return p.invocation.Next(method, args, nil)
}

// ProxyMethod exposes a proxy's view of a single method for
// introspection: the method descriptor, the handler and the parent
// invocation chain.
type ProxyMethod struct {
	method     *MethodDescriptor
	handler    InvocationHandler
	invocation *Invocation
}

// Method returns the method descriptor.
func (pm *ProxyMethod) Method() *MethodDescriptor { return pm.method }

// Handler returns the invocation handler.
func (pm *ProxyMethod) Handler() InvocationHandler { return pm.handler }

// Invocation returns the parent chain, or nil at the root.
func (pm *ProxyMethod) Invocation() *Invocation { return pm.invocation }
