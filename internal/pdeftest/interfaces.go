package pdeftest

import (
	"context"
	"time"

	pdef "github.com/pdef/pdef-go"
)

// TestException is the application exception declared by TestInterface.
type TestException struct {
	text *string
}

func NewTestException() *TestException { return &TestException{} }

func (e *TestException) PdefDescriptor() *pdef.MessageDescriptor { return TestExceptionDescriptor }

func (e *TestException) asTestException() *TestException { return e }

func (e *TestException) Error() string { return e.Text() }

func (e *TestException) Text() string {
	if e.text == nil {
		return ""
	}
	return *e.text
}

func (e *TestException) SetText(v string) *TestException {
	e.text = &v
	return e
}

func (e *TestException) HasText() bool { return e.text != nil }

// TestExceptionDescriptor describes TestException.
var TestExceptionDescriptor *pdef.MessageDescriptor

type hasTestException interface{ asTestException() *TestException }

// TestService is the server-side contract of TestInterface.
type TestService interface {
	Method(ctx context.Context, arg0, arg1 int32) (int32, error)
	Query(ctx context.Context, arg0, arg1 int32) (int32, error)
	Post(ctx context.Context, arg0, arg1 int32) (int32, error)
	String0(ctx context.Context, text string) (string, error)
	Datetime0(ctx context.Context, dt time.Time) (time.Time, error)
	Enum0(ctx context.Context, e TestEnum) (TestEnum, error)
	Message0(ctx context.Context, msg *TestMessage) (*TestMessage, error)
	List0(ctx context.Context, items []int32) ([]int32, error)
	Interface0(ctx context.Context, arg0, arg1 int32) (TestService, error)
	Void0(ctx context.Context) error
	Exc0(ctx context.Context) error
	ServerError(ctx context.Context) error
}

// TestSubService extends TestService with one method.
type TestSubService interface {
	TestService
	SubMethod(ctx context.Context) (int32, error)
}

// Interface descriptors, wired at package initialization because
// interface0 references its own interface.
var (
	TestInterfaceDescriptor    *pdef.InterfaceDescriptor
	TestSubInterfaceDescriptor *pdef.InterfaceDescriptor
)

func init() {
	TestExceptionDescriptor = pdef.NewMessageDescriptor(pdef.MessageOpts{
		Name: "TestException",
		New:  func() pdef.Message { return NewTestException() },
		Fields: []*pdef.FieldDescriptor{
			pdef.NewFieldDescriptor(pdef.FieldOpts{
				Name: "text",
				Type: pdef.Eager(pdef.String),
				Get: func(m pdef.Message) any {
					mm := m.(hasTestException).asTestException()
					if mm.text == nil {
						return nil
					}
					return *mm.text
				},
				Set: func(m pdef.Message, v any) {
					mm := m.(hasTestException).asTestException()
					if v == nil {
						mm.text = nil
						return
					}
					mm.SetText(v.(string))
				},
			}),
		},
	})

	TestInterfaceDescriptor = pdef.NewInterfaceDescriptor(pdef.InterfaceOpts{
		Name: "TestInterface",
		Exc:  func() pdef.Descriptor { return TestExceptionDescriptor },
		Methods: []*pdef.MethodDescriptor{
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "method",
				Result: pdef.Eager(pdef.Int32),
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg0", Type: pdef.Eager(pdef.Int32)}),
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg1", Type: pdef.Eager(pdef.Int32)}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return service.(TestService).Method(ctx, int32Arg(kwargs["arg0"]), int32Arg(kwargs["arg1"]))
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "query",
				Result: pdef.Eager(pdef.Int32),
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg0", Type: pdef.Eager(pdef.Int32), Query: true}),
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg1", Type: pdef.Eager(pdef.Int32), Query: true}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return service.(TestService).Query(ctx, int32Arg(kwargs["arg0"]), int32Arg(kwargs["arg1"]))
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "post",
				Result: pdef.Eager(pdef.Int32),
				Post:   true,
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg0", Type: pdef.Eager(pdef.Int32), Post: true}),
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg1", Type: pdef.Eager(pdef.Int32), Post: true}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return service.(TestService).Post(ctx, int32Arg(kwargs["arg0"]), int32Arg(kwargs["arg1"]))
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "string0",
				Result: pdef.Eager(pdef.String),
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "text", Type: pdef.Eager(pdef.String)}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return service.(TestService).String0(ctx, stringArg(kwargs["text"]))
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "datetime0",
				Result: pdef.Eager(pdef.DateTime),
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "dt", Type: pdef.Eager(pdef.DateTime)}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return service.(TestService).Datetime0(ctx, timeArg(kwargs["dt"]))
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "enum0",
				Result: pdef.Eager(TestEnumDescriptor),
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "e", Type: pdef.Eager(TestEnumDescriptor)}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					r, err := service.(TestService).Enum0(ctx, enumArg(kwargs["e"]))
					if r == "" {
						return nil, err
					}
					return r, err
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "message0",
				Result: func() pdef.Descriptor { return TestMessageDescriptor },
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{
						Name: "msg",
						Type: func() pdef.Descriptor { return TestMessageDescriptor },
					}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					r, err := service.(TestService).Message0(ctx, msgArg(kwargs["msg"]))
					if r == nil {
						return nil, err
					}
					return r, err
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "list0",
				Result: pdef.Eager(pdef.ListOf(pdef.Int32)),
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "items", Type: pdef.Eager(pdef.ListOf(pdef.Int32))}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					var items []int32
					if kwargs["items"] != nil {
						items = int32List(kwargs["items"])
					}
					r, err := service.(TestService).List0(ctx, items)
					if r == nil {
						return nil, err
					}
					return int32ListValue(r), err
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "interface0",
				Result: func() pdef.Descriptor { return TestInterfaceDescriptor },
				Args: []*pdef.ArgDescriptor{
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg0", Type: pdef.Eager(pdef.Int32)}),
					pdef.NewArgDescriptor(pdef.ArgOpts{Name: "arg1", Type: pdef.Eager(pdef.Int32)}),
				},
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					sub, err := service.(TestService).Interface0(ctx, int32Arg(kwargs["arg0"]), int32Arg(kwargs["arg1"]))
					if err != nil || sub == nil {
						return nil, err
					}
					return sub, nil
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "void0",
				Result: pdef.Eager(pdef.Void),
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return nil, service.(TestService).Void0(ctx)
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "exc0",
				Result: pdef.Eager(pdef.Void),
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return nil, service.(TestService).Exc0(ctx)
				},
			}),
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "serverError",
				Result: pdef.Eager(pdef.Void),
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return nil, service.(TestService).ServerError(ctx)
				},
			}),
		},
	})

	TestSubInterfaceDescriptor = pdef.NewInterfaceDescriptor(pdef.InterfaceOpts{
		Name: "TestSubInterface",
		Base: func() pdef.Descriptor { return TestInterfaceDescriptor },
		Methods: []*pdef.MethodDescriptor{
			pdef.NewMethodDescriptor(pdef.MethodOpts{
				Name:   "subMethod",
				Result: pdef.Eager(pdef.Int32),
				Invoke: func(ctx context.Context, service any, kwargs map[string]any) (any, error) {
					return service.(TestSubService).SubMethod(ctx)
				},
			}),
		},
	})
}

// TestClient is the generated client of TestInterface: one typed method
// per interface method, forwarding to a generic invocation proxy.
type TestClient struct {
	proxy *pdef.Proxy
}

// NewTestClient creates a client that executes invocations with a handler.
func NewTestClient(h pdef.InvocationHandler) *TestClient {
	return &TestClient{proxy: pdef.NewProxy(TestInterfaceDescriptor, h)}
}

// Proxy returns the underlying invocation proxy.
func (c *TestClient) Proxy() *pdef.Proxy { return c.proxy }

func (c *TestClient) Method(ctx context.Context, arg0, arg1 int32) (int32, error) {
	v, err := c.proxy.Call(ctx, "method", arg0, arg1)
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

func (c *TestClient) Query(ctx context.Context, arg0, arg1 int32) (int32, error) {
	v, err := c.proxy.Call(ctx, "query", arg0, arg1)
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

func (c *TestClient) Post(ctx context.Context, arg0, arg1 int32) (int32, error) {
	v, err := c.proxy.Call(ctx, "post", arg0, arg1)
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

func (c *TestClient) String0(ctx context.Context, text string) (string, error) {
	v, err := c.proxy.Call(ctx, "string0", text)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *TestClient) Datetime0(ctx context.Context, dt time.Time) (time.Time, error) {
	v, err := c.proxy.Call(ctx, "datetime0", dt)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

func (c *TestClient) Enum0(ctx context.Context, e TestEnum) (TestEnum, error) {
	var arg any
	if e != "" {
		arg = e
	}
	v, err := c.proxy.Call(ctx, "enum0", arg)
	if err != nil || v == nil {
		return "", err
	}
	return v.(TestEnum), nil
}

func (c *TestClient) Message0(ctx context.Context, msg *TestMessage) (*TestMessage, error) {
	var arg any
	if msg != nil {
		arg = msg
	}
	v, err := c.proxy.Call(ctx, "message0", arg)
	if err != nil {
		return nil, err
	}
	return v.(*TestMessage), nil
}

func (c *TestClient) List0(ctx context.Context, items []int32) ([]int32, error) {
	var arg any
	if items != nil {
		arg = int32ListValue(items)
	}
	v, err := c.proxy.Call(ctx, "list0", arg)
	if err != nil || v == nil {
		return nil, err
	}
	return int32List(v), nil
}

func (c *TestClient) Interface0(arg0, arg1 int32) *TestClient {
	p, err := c.proxy.Chain("interface0", arg0, arg1)
	if err != nil {
		panic(err)
	}
	return &TestClient{proxy: p}
}

func (c *TestClient) Void0(ctx context.Context) error {
	_, err := c.proxy.Call(ctx, "void0")
	return err
}

func (c *TestClient) Exc0(ctx context.Context) error {
	_, err := c.proxy.Call(ctx, "exc0")
	return err
}

func (c *TestClient) ServerError(ctx context.Context) error {
	_, err := c.proxy.Call(ctx, "serverError")
	return err
}

// TestSubClient is the generated client of TestSubInterface.
type TestSubClient struct {
	TestClient
}

// NewTestSubClient creates a sub-interface client over a handler.
func NewTestSubClient(h pdef.InvocationHandler) *TestSubClient {
	c := &TestSubClient{}
	c.proxy = pdef.NewProxy(TestSubInterfaceDescriptor, h)
	return c
}

func (c *TestSubClient) SubMethod(ctx context.Context) (int32, error) {
	v, err := c.proxy.Call(ctx, "subMethod")
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

func int32Arg(v any) int32 {
	if v == nil {
		return 0
	}
	return v.(int32)
}

func stringArg(v any) string {
	if v == nil {
		return ""
	}
	return v.(string)
}

func timeArg(v any) time.Time {
	if v == nil {
		return time.Time{}
	}
	return v.(time.Time)
}

func enumArg(v any) TestEnum {
	if v == nil {
		return ""
	}
	return v.(TestEnum)
}

func msgArg(v any) *TestMessage {
	if v == nil {
		return nil
	}
	return v.(*TestMessage)
}
