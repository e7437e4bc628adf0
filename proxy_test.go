package pdef_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdef "github.com/pdef/pdef-go"
	"github.com/pdef/pdef-go/internal/pdeftest"
)

func TestProxy_Call(t *testing.T) {
	proxy := pdef.NewProxy(pdeftest.TestInterfaceDescriptor,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) { return int32(3), nil })

	v, err := proxy.Call(context.Background(), "method", int32(1), int32(2))
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)
}

func TestProxy_CallBuildsInvocation(t *testing.T) {
	var captured *pdef.Invocation
	proxy := pdef.NewProxy(pdeftest.TestInterfaceDescriptor,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) {
			captured = inv
			return nil, nil
		})

	_, err := proxy.Call(context.Background(), "method", int32(1), int32(2))
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "method", captured.Method().Name())
	assert.Equal(t, map[string]any{"arg0": int32(1), "arg1": int32(2)}, captured.Kwargs())
}

func TestProxy_CallUnknownMethod(t *testing.T) {
	proxy := pdef.NewProxy(pdeftest.TestInterfaceDescriptor,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) { return nil, nil })

	_, err := proxy.Call(context.Background(), "missing")
	assert.Error(t, err)
}

func TestProxy_CallPropagatesException(t *testing.T) {
	exc := pdeftest.NewTestException().SetText("Hello")
	proxy := pdef.NewProxy(pdeftest.TestInterfaceDescriptor,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) { return nil, exc })

	_, err := proxy.Call(context.Background(), "method", int32(1), int32(2))
	assert.Equal(t, exc, err)
}

func TestProxy_NilResultBecomesDefault(t *testing.T) {
	proxy := pdef.NewProxy(pdeftest.TestInterfaceDescriptor,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) { return nil, nil })

	v, err := proxy.Call(context.Background(), "string0", "hello")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestProxy_Method(t *testing.T) {
	iface := pdeftest.TestInterfaceDescriptor
	handler := func(ctx context.Context, inv *pdef.Invocation) (any, error) { return nil, nil }
	proxy := pdef.NewProxy(iface, handler)

	pm := proxy.Method("method")
	require.NotNil(t, pm)
	assert.Equal(t, iface.FindMethod("method"), pm.Method())
	assert.NotNil(t, pm.Handler())
	assert.Nil(t, pm.Invocation())

	assert.Nil(t, proxy.Method("missing"))
}

func TestProxy_MethodAfterChain(t *testing.T) {
	iface := pdeftest.TestInterfaceDescriptor
	proxy := pdef.NewProxy(iface,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) { return nil, nil })

	chained, err := proxy.Chain("interface0", int32(1), int32(2))
	require.NoError(t, err)

	pm := chained.Method("method")
	require.NotNil(t, pm)
	assert.Equal(t, iface.FindMethod("method"), pm.Method())
	require.NotNil(t, pm.Invocation())
	assert.Equal(t, iface.FindMethod("interface0"), pm.Invocation().Method())
}

func TestProxy_ChainedInvocation(t *testing.T) {
	var captured *pdef.Invocation
	proxy := pdef.NewProxy(pdeftest.TestInterfaceDescriptor,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) {
			captured = inv
			return nil, nil
		})

	chained, err := proxy.Chain("interface0", int32(1), int32(2))
	require.NoError(t, err)
	_, err = chained.Call(context.Background(), "query")
	require.NoError(t, err)

	require.NotNil(t, captured)
	chain := captured.ToChain()
	require.Len(t, chain, 2)
	assert.Equal(t, "interface0", chain[0].Method().Name())
	assert.Equal(t, map[string]any{"arg0": int32(1), "arg1": int32(2)}, chain[0].Kwargs())
	assert.Equal(t, "query", chain[1].Method().Name())
	assert.Equal(t, map[string]any{"arg0": nil, "arg1": nil}, chain[1].Kwargs())
}

func TestProxy_ChainTerminalMethod(t *testing.T) {
	proxy := pdef.NewProxy(pdeftest.TestInterfaceDescriptor,
		func(ctx context.Context, inv *pdef.Invocation) (any, error) { return nil, nil })

	_, err := proxy.Chain("method", int32(1), int32(2))
	assert.Error(t, err)

	_, err = proxy.Call(context.Background(), "interface0", int32(1), int32(2))
	assert.Error(t, err)
}

func TestGeneratedClient_ForwardsToHandler(t *testing.T) {
	client := pdeftest.NewTestClient(
		func(ctx context.Context, inv *pdef.Invocation) (any, error) { return int32(3), nil })

	v, err := client.Method(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)
}

func TestGeneratedClient_Chaining(t *testing.T) {
	var captured *pdef.Invocation
	client := pdeftest.NewTestClient(
		func(ctx context.Context, inv *pdef.Invocation) (any, error) {
			captured = inv
			return int32(7), nil
		})

	v, err := client.Interface0(1, 2).Query(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	require.NotNil(t, captured)
	chain := captured.ToChain()
	require.Len(t, chain, 2)
	assert.Equal(t, "interface0", chain[0].Method().Name())
	assert.Equal(t, "query", chain[1].Method().Name())
}
