package rpc

import (
	"context"
	"fmt"

	pdef "github.com/pdef/pdef-go"
)

// Handler dispatches wire requests onto a service implementation.
type Handler struct {
	iface    *pdef.InterfaceDescriptor
	service  any
	protocol Protocol
}

// NewHandler creates a handler for an interface descriptor and a
// service implementing the interface's generated service contract.
func NewHandler(iface *pdef.InterfaceDescriptor, service any) (*Handler, error) {
	if iface == nil {
		return nil, fmt.Errorf("rpc: interface descriptor required")
	}
	if service == nil {
		return nil, fmt.Errorf("rpc: service required")
	}
	return &Handler{iface: iface, service: service}, nil
}

// Handle parses an invocation from a request and invokes it on the
// service. It returns (true, result) on success and (false, result)
// when the service raised the interface's application exception. Any
// other service error propagates; the gateway turns it into a 500.
func (h *Handler) Handle(ctx context.Context, req *Request) (bool, *Result, error) {
	if req == nil {
		return false, nil, fmt.Errorf("rpc: request required")
	}

	inv, err := h.protocol.ReadInvocation(req, h.iface)
	if err != nil {
		return false, nil, err
	}

	excd := h.iface.Exc()
	var excDesc pdef.Descriptor
	if excd != nil {
		excDesc = excd
	}
	result := NewResult(inv.Method().Result(), excDesc)

	data, err := inv.Invoke(ctx, h.service)
	if err != nil {
		if isApplicationError(err, excd) {
			result.SetErr(err)
			return false, result, nil
		}
		return false, nil, err
	}

	result.SetData(data)
	return true, result, nil
}

// isApplicationError reports whether an error is the interface's
// declared application exception or one of its subtypes.
func isApplicationError(err error, excd *pdef.MessageDescriptor) bool {
	if excd == nil {
		return false
	}
	msg, ok := err.(pdef.Message)
	return ok && msg.PdefDescriptor().InheritsFrom(excd)
}
