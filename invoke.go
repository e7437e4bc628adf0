package pdef

import (
	"context"
	"fmt"
)

// Invocation is an immutable node in a chain of method calls. Every
// non-terminal link's method returns an interface; exactly the last
// link's method is terminal.
type Invocation struct {
	method *MethodDescriptor
	kwargs map[string]any
	parent *Invocation
}

// NewInvocation creates a root invocation, binding positional and named
// arguments to the method's argument names. Mutable argument values are
// deep-copied so the invocation is isolated from later mutation.
func NewInvocation(method *MethodDescriptor, args []any, named map[string]any) (*Invocation, error) {
	return newInvocation(method, args, named, nil)
}

func newInvocation(method *MethodDescriptor, args []any, named map[string]any, parent *Invocation) (*Invocation, error) {
	if method == nil {
		return nil, fmt.Errorf("pdef: method required")
	}
	kwargs, err := BindArgs(method, args, named)
	if err != nil {
		return nil, err
	}
	for _, a := range method.Args() {
		if v := kwargs[a.Name()]; v != nil && a.Type().Type().IsMutable() {
			kwargs[a.Name()] = CopyValue(v, a.Type())
		}
	}
	return &Invocation{method: method, kwargs: kwargs, parent: parent}, nil
}

// BindArgs binds positional and named call arguments to a method's
// argument names. More positional arguments than declared, an unknown
// named argument, or a named argument that overlaps a positional one is
// an error. Missing arguments are bound to nil.
func BindArgs(method *MethodDescriptor, args []any, named map[string]any) (map[string]any, error) {
	declared := method.Args()
	if len(args) > len(declared) {
		return nil, fmt.Errorf("pdef: %s takes %d arguments, %d given", method.Name(), len(declared), len(args))
	}

	kwargs := make(map[string]any, len(declared))
	for i, v := range args {
		kwargs[declared[i].Name()] = v
	}
	for name, v := range named {
		if method.FindArg(name) == nil {
			return nil, fmt.Errorf("pdef: %s got an unexpected argument %q", method.Name(), name)
		}
		if _, ok := kwargs[name]; ok {
			return nil, fmt.Errorf("pdef: %s got multiple values for argument %q", method.Name(), name)
		}
		kwargs[name] = v
	}
	for _, a := range declared {
		if _, ok := kwargs[a.Name()]; !ok {
			kwargs[a.Name()] = nil
		}
	}
	return kwargs, nil
}

// Method returns the invoked method descriptor.
func (inv *Invocation) Method() *MethodDescriptor { return inv.method }

// Parent returns the previous link of the chain, or nil for the root.
func (inv *Invocation) Parent() *Invocation { return inv.parent }

// Kwargs returns the bound arguments keyed by argument name. The map
// must not be modified.
func (inv *Invocation) Kwargs() map[string]any { return inv.kwargs }

// Next creates a child invocation chained onto this one.
func (inv *Invocation) Next(method *MethodDescriptor, args []any, named map[string]any) (*Invocation, error) {
	return newInvocation(method, args, named, inv)
}

// ToChain returns the invocations in root-to-leaf order.
func (inv *Invocation) ToChain() []*Invocation {
	var chain []*Invocation
	for cur := inv; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Invoke walks the chain against a service: each non-terminal link's
// result becomes the target of the next link; the terminal link's result
// is returned. Unbound primitive arguments are passed as typed defaults.
func (inv *Invocation) Invoke(ctx context.Context, service any) (any, error) {
	chain := inv.ToChain()
	target := service
	for i, link := range chain {
		result, err := link.method.Invoke(ctx, target, link.kwargsWithDefaults())
		if err != nil {
			return nil, err
		}
		if i == len(chain)-1 {
			return result, nil
		}
		if result == nil {
			return nil, fmt.Errorf("pdef: method %s returned no sub-service", link.method.Name())
		}
		target = result
	}
	return nil, fmt.Errorf("pdef: empty invocation chain")
}

func (inv *Invocation) kwargsWithDefaults() map[string]any {
	kwargs := make(map[string]any, len(inv.kwargs))
	for k, v := range inv.kwargs {
		kwargs[k] = v
	}
	for _, a := range inv.method.Args() {
		if kwargs[a.Name()] == nil && a.Type().Type().IsPrimitive() {
			kwargs[a.Name()] = DefaultValue(a.Type())
		}
	}
	return kwargs
}

func (inv *Invocation) String() string {
	return inv.method.Name()
}
