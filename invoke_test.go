package pdef_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdef "github.com/pdef/pdef-go"
	"github.com/pdef/pdef-go/internal/pdeftest"
)

func methodDescriptor(name string) *pdef.MethodDescriptor {
	m := pdeftest.TestInterfaceDescriptor.FindMethod(name)
	if m == nil {
		m = pdeftest.TestSubInterfaceDescriptor.FindMethod(name)
	}
	return m
}

func TestNewInvocation(t *testing.T) {
	method := methodDescriptor("method")
	inv, err := pdef.NewInvocation(method, []any{int32(1), int32(2)}, nil)

	require.NoError(t, err)
	assert.Equal(t, method, inv.Method())
	assert.Nil(t, inv.Parent())
	assert.Equal(t, map[string]any{"arg0": int32(1), "arg1": int32(2)}, inv.Kwargs())
}

func TestInvocation_Next(t *testing.T) {
	iface0 := methodDescriptor("interface0")
	method := methodDescriptor("method")

	inv0, err := pdef.NewInvocation(iface0, []any{int32(1), int32(2)}, nil)
	require.NoError(t, err)
	inv1, err := inv0.Next(method, []any{int32(3), int32(4)}, nil)
	require.NoError(t, err)

	assert.Equal(t, inv0, inv1.Parent())
	assert.Equal(t, method, inv1.Method())
	assert.Equal(t, map[string]any{"arg0": int32(3), "arg1": int32(4)}, inv1.Kwargs())
}

func TestInvocation_ToChain(t *testing.T) {
	iface0 := methodDescriptor("interface0")
	method := methodDescriptor("method")

	inv0, err := pdef.NewInvocation(iface0, []any{int32(1), int32(2)}, nil)
	require.NoError(t, err)
	inv1, err := inv0.Next(iface0, []any{int32(3), int32(4)}, nil)
	require.NoError(t, err)
	inv2, err := inv1.Next(method, nil, nil)
	require.NoError(t, err)

	chain := inv2.ToChain()
	require.Len(t, chain, 3)
	assert.Equal(t, []*pdef.Invocation{inv0, inv1, inv2}, chain)
	assert.Nil(t, chain[0].Parent())
}

func TestBindArgs(t *testing.T) {
	method := methodDescriptor("method")
	expected := map[string]any{"arg0": int32(1), "arg1": int32(2)}

	kwargs, err := pdef.BindArgs(method, []any{int32(1), int32(2)}, nil)
	require.NoError(t, err)
	assert.Equal(t, expected, kwargs)

	kwargs, err = pdef.BindArgs(method, nil, map[string]any{"arg0": int32(1), "arg1": int32(2)})
	require.NoError(t, err)
	assert.Equal(t, expected, kwargs)

	kwargs, err = pdef.BindArgs(method, []any{int32(1)}, map[string]any{"arg1": int32(2)})
	require.NoError(t, err)
	assert.Equal(t, expected, kwargs)

	kwargs, err = pdef.BindArgs(method, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"arg0": nil, "arg1": nil}, kwargs)
}

func TestBindArgs_Errors(t *testing.T) {
	method := methodDescriptor("method")

	_, err := pdef.BindArgs(method, []any{int32(1), int32(2), int32(3)}, nil)
	assert.Error(t, err)

	_, err = pdef.BindArgs(method, []any{int32(1), int32(2)}, map[string]any{"arg0": int32(1)})
	assert.Error(t, err)

	_, err = pdef.BindArgs(method, nil, map[string]any{"arg0": int32(1), "arg1": int32(2), "arg2": int32(3)})
	assert.Error(t, err)

	_, err = pdef.BindArgs(method, nil, map[string]any{"unknown": int32(3)})
	assert.Error(t, err)
}

func TestInvocation_DeepCopiesMutableArgs(t *testing.T) {
	method := methodDescriptor("list0")
	items := []any{int32(1), int32(2)}

	inv, err := pdef.NewInvocation(method, []any{items}, nil)
	require.NoError(t, err)

	bound := inv.Kwargs()["items"].([]any)
	assert.Equal(t, items, bound)

	items[0] = int32(42)
	assert.Equal(t, int32(1), bound[0])
}

func TestInvocation_DeepCopiesMessageArgs(t *testing.T) {
	method := methodDescriptor("message0")
	msg := pdeftest.NewTestMessage().SetString0("hello")

	inv, err := pdef.NewInvocation(method, []any{msg}, nil)
	require.NoError(t, err)

	bound := inv.Kwargs()["msg"].(*pdeftest.TestMessage)
	assert.NotSame(t, msg, bound)
	assert.True(t, pdef.Equal(msg, bound))
}

func TestInvocation_Invoke(t *testing.T) {
	service := &fakeService{
		method: func(arg0, arg1 int32) (int32, error) { return arg0 + arg1, nil },
	}

	inv, err := pdef.NewInvocation(methodDescriptor("method"), []any{int32(1), int32(2)}, nil)
	require.NoError(t, err)

	result, err := inv.Invoke(context.Background(), service)
	require.NoError(t, err)
	assert.Equal(t, int32(3), result)
}

func TestInvocation_InvokeError(t *testing.T) {
	exc := pdeftest.NewTestException().SetText("Hello")
	service := &fakeService{exc0: func() error { return exc }}

	inv, err := pdef.NewInvocation(methodDescriptor("exc0"), nil, nil)
	require.NoError(t, err)

	_, err = inv.Invoke(context.Background(), service)
	assert.Equal(t, exc, err)
}

func TestInvocation_InvokeChain(t *testing.T) {
	leaf := &fakeService{
		method: func(arg0, arg1 int32) (int32, error) { return arg0 * arg1, nil },
	}
	root := &fakeService{
		interface0: func(arg0, arg1 int32) (pdeftest.TestService, error) { return leaf, nil },
	}

	inv0, err := pdef.NewInvocation(methodDescriptor("interface0"), []any{int32(1), int32(2)}, nil)
	require.NoError(t, err)
	inv1, err := inv0.Next(methodDescriptor("method"), []any{int32(3), int32(4)}, nil)
	require.NoError(t, err)

	result, err := inv1.Invoke(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, int32(12), result)
}

func TestInvocation_InvokeDefaultsPrimitives(t *testing.T) {
	var gotText string
	service := &fakeService{
		string0: func(text string) (string, error) {
			gotText = text
			return "ok", nil
		},
	}

	inv, err := pdef.NewInvocation(methodDescriptor("string0"), nil, nil)
	require.NoError(t, err)

	_, err = inv.Invoke(context.Background(), service)
	require.NoError(t, err)
	assert.Equal(t, "", gotText)
}

// fakeService implements pdeftest.TestService with pluggable functions.
// Unset functions return zero values.
type fakeService struct {
	method      func(arg0, arg1 int32) (int32, error)
	query       func(arg0, arg1 int32) (int32, error)
	post        func(arg0, arg1 int32) (int32, error)
	string0     func(text string) (string, error)
	datetime0   func(dt time.Time) (time.Time, error)
	enum0       func(e pdeftest.TestEnum) (pdeftest.TestEnum, error)
	message0    func(msg *pdeftest.TestMessage) (*pdeftest.TestMessage, error)
	list0       func(items []int32) ([]int32, error)
	interface0  func(arg0, arg1 int32) (pdeftest.TestService, error)
	void0       func() error
	exc0        func() error
	serverError func() error
}

func (s *fakeService) Method(_ context.Context, arg0, arg1 int32) (int32, error) {
	if s.method == nil {
		return 0, nil
	}
	return s.method(arg0, arg1)
}

func (s *fakeService) Query(_ context.Context, arg0, arg1 int32) (int32, error) {
	if s.query == nil {
		return 0, nil
	}
	return s.query(arg0, arg1)
}

func (s *fakeService) Post(_ context.Context, arg0, arg1 int32) (int32, error) {
	if s.post == nil {
		return 0, nil
	}
	return s.post(arg0, arg1)
}

func (s *fakeService) String0(_ context.Context, text string) (string, error) {
	if s.string0 == nil {
		return "", nil
	}
	return s.string0(text)
}

func (s *fakeService) Datetime0(_ context.Context, dt time.Time) (time.Time, error) {
	if s.datetime0 == nil {
		return time.Time{}, nil
	}
	return s.datetime0(dt)
}

func (s *fakeService) Enum0(_ context.Context, e pdeftest.TestEnum) (pdeftest.TestEnum, error) {
	if s.enum0 == nil {
		return "", nil
	}
	return s.enum0(e)
}

func (s *fakeService) Message0(_ context.Context, msg *pdeftest.TestMessage) (*pdeftest.TestMessage, error) {
	if s.message0 == nil {
		return nil, nil
	}
	return s.message0(msg)
}

func (s *fakeService) List0(_ context.Context, items []int32) ([]int32, error) {
	if s.list0 == nil {
		return nil, nil
	}
	return s.list0(items)
}

func (s *fakeService) Interface0(_ context.Context, arg0, arg1 int32) (pdeftest.TestService, error) {
	if s.interface0 == nil {
		return nil, nil
	}
	return s.interface0(arg0, arg1)
}

func (s *fakeService) Void0(_ context.Context) error {
	if s.void0 == nil {
		return nil
	}
	return s.void0()
}

func (s *fakeService) Exc0(_ context.Context) error {
	if s.exc0 == nil {
		return nil
	}
	return s.exc0()
}

func (s *fakeService) ServerError(_ context.Context) error {
	if s.serverError == nil {
		return nil
	}
	return s.serverError()
}
