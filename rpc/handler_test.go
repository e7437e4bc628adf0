package rpc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdef "github.com/pdef/pdef-go"
	"github.com/pdef/pdef-go/internal/pdeftest"
	"github.com/pdef/pdef-go/rpc"
)

// echoService implements pdeftest.TestService: the arithmetic methods
// combine their arguments, everything else echoes its input.
type echoService struct {
	excErr    error
	serverErr error
}

func (s *echoService) Method(_ context.Context, arg0, arg1 int32) (int32, error) {
	return arg0 + arg1, nil
}

func (s *echoService) Query(_ context.Context, arg0, arg1 int32) (int32, error) {
	return arg0 + arg1, nil
}

func (s *echoService) Post(_ context.Context, arg0, arg1 int32) (int32, error) {
	return arg0 + arg1, nil
}

func (s *echoService) String0(_ context.Context, text string) (string, error) {
	return text, nil
}

func (s *echoService) Datetime0(_ context.Context, dt time.Time) (time.Time, error) {
	return dt, nil
}

func (s *echoService) Enum0(_ context.Context, e pdeftest.TestEnum) (pdeftest.TestEnum, error) {
	return e, nil
}

func (s *echoService) Message0(_ context.Context, msg *pdeftest.TestMessage) (*pdeftest.TestMessage, error) {
	return msg, nil
}

func (s *echoService) List0(_ context.Context, items []int32) ([]int32, error) {
	return items, nil
}

func (s *echoService) Interface0(_ context.Context, arg0, arg1 int32) (pdeftest.TestService, error) {
	return s, nil
}

func (s *echoService) Void0(_ context.Context) error { return nil }

func (s *echoService) Exc0(_ context.Context) error { return s.excErr }

func (s *echoService) ServerError(_ context.Context) error { return s.serverErr }

func newTestHandler(t *testing.T, service pdeftest.TestService) *rpc.Handler {
	t.Helper()
	h, err := rpc.NewHandler(pdeftest.TestInterfaceDescriptor, service)
	require.NoError(t, err)
	return h
}

func TestHandler_OK(t *testing.T) {
	h := newTestHandler(t, &echoService{})
	req := rpc.NewRequest()
	req.Path = "/method/1/2"

	ok, result, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(3), result.Data())
	assert.Nil(t, result.Err())
}

func TestHandler_UnknownMethod(t *testing.T) {
	h := newTestHandler(t, &echoService{})
	req := rpc.NewRequest()
	req.Path = "/wrong/method"

	_, _, err := h.Handle(context.Background(), req)
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusNotFound, rpcErr.Status)
}

func TestHandler_ApplicationException(t *testing.T) {
	exc := pdeftest.NewTestException().SetText("Hello, world")
	h := newTestHandler(t, &echoService{excErr: exc})
	req := rpc.NewRequest()
	req.Path = "/exc0"

	ok, result, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, result.Data())
	assert.Equal(t, exc, result.Err())
}

func TestHandler_UnexpectedError(t *testing.T) {
	boom := errors.New("boom")
	h := newTestHandler(t, &echoService{serverErr: boom})
	req := rpc.NewRequest()
	req.Path = "/serverError"

	_, _, err := h.Handle(context.Background(), req)
	assert.Equal(t, boom, err)
}

func TestHandler_ChainedInvocation(t *testing.T) {
	h := newTestHandler(t, &echoService{})
	req := rpc.NewRequest()
	req.Path = "/interface0/1/2/query"
	req.Query = map[string]string{"arg0": "3", "arg1": "4"}

	ok, result, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(7), result.Data())
}

func TestHandler_VoidResult(t *testing.T) {
	h := newTestHandler(t, &echoService{})
	req := rpc.NewRequest()
	req.Path = "/void0"

	ok, result, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, result.Data())

	s, err := pdef.ToJSON(result)
	require.NoError(t, err)
	assert.Equal(t, "{}", s)
}

func TestResult_Envelope(t *testing.T) {
	result := rpc.NewResult(pdef.Int32, pdeftest.TestExceptionDescriptor)
	result.SetData(int32(3))

	s, err := pdef.ToJSON(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data": 3}`, s)

	parsed, err := pdef.FromJSON(`{"data": 3, "unknown": null}`, result.PdefDescriptor())
	require.NoError(t, err)
	assert.Equal(t, int32(3), parsed.(*rpc.Result).Data())
}
