package rpc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdef "github.com/pdef/pdef-go"
	"github.com/pdef/pdef-go/internal/pdeftest"
	"github.com/pdef/pdef-go/rpc"
)

func newTestGateway(t *testing.T, service pdeftest.TestService) *rpc.Gateway {
	t.Helper()
	return rpc.NewGateway(newTestHandler(t, service),
		rpc.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestGateway_OK(t *testing.T) {
	g := newTestGateway(t, &echoService{})
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/method/1/2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data": 3}`, w.Body.String())
}

func TestGateway_NotFound(t *testing.T) {
	g := newTestGateway(t, &echoService{})
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wrong/method", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "not found")
}

func TestGateway_MethodNotAllowed(t *testing.T) {
	g := newTestGateway(t, &echoService{})
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGateway_ApplicationException(t *testing.T) {
	exc := pdeftest.NewTestException().SetText("Hello")
	g := newTestGateway(t, &echoService{excErr: exc})
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exc0", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": {"text": "Hello"}}`, w.Body.String())
}

func TestGateway_ServerError(t *testing.T) {
	g := newTestGateway(t, &echoService{serverErr: errors.New("boom")})
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/serverError", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestGateway_FormBody(t *testing.T) {
	g := newTestGateway(t, &echoService{})
	body := strings.NewReader("arg0=5&arg1=6")
	r := httptest.NewRequest(http.MethodPost, "/post", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data": 11}`, w.Body.String())
}

func TestGateway_IgnoresNonFormBody(t *testing.T) {
	g := newTestGateway(t, &echoService{})
	body := strings.NewReader(`{"arg0": 5, "arg1": 6}`)
	r := httptest.NewRequest(http.MethodPost, "/post", body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, r)

	// The arguments decode to nil and invoke as zero values.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data": 0}`, w.Body.String())
}

// The full stack: generated client -> rpc client -> HTTP -> gateway ->
// handler -> service, round-tripping every method kind.
func TestIntegration(t *testing.T) {
	service := &echoService{
		excErr: pdeftest.NewTestException().SetText("Test exception"),
	}
	server := httptest.NewServer(newTestGateway(t, service))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	v, err := client.Method(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)

	v, err = client.Query(ctx, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	v, err = client.Post(ctx, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(11), v)

	s, err := client.String0(ctx, "Привет")
	require.NoError(t, err)
	assert.Equal(t, "Привет", s)

	dt := time.Date(2013, 11, 17, 19, 41, 0, 0, time.UTC)
	gotDt, err := client.Datetime0(ctx, dt)
	require.NoError(t, err)
	assert.True(t, dt.Equal(gotDt))

	e, err := client.Enum0(ctx, pdeftest.TestEnumTwo)
	require.NoError(t, err)
	assert.Equal(t, pdeftest.TestEnumTwo, e)

	msg := pdeftest.NewTestMessage().SetString0("Привет").SetBool0(true).SetInt0(-123)
	gotMsg, err := client.Message0(ctx, msg)
	require.NoError(t, err)
	assert.True(t, pdef.Equal(msg, gotMsg))

	items, err := client.List0(ctx, []int32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, items)

	v, err = client.Interface0(1, 2).Query(ctx, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	require.NoError(t, client.Void0(ctx))

	err = client.Exc0(ctx)
	var gotExc *pdeftest.TestException
	require.ErrorAs(t, err, &gotExc)
	assert.Equal(t, "Test exception", gotExc.Text())

	service.serverErr = errors.New("boom")
	err = client.ServerError(ctx)
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusInternalServerError, rpcErr.Status)
}

func TestIntegration_ConcurrentRequests(t *testing.T) {
	server := httptest.NewServer(newTestGateway(t, &echoService{}))
	defer server.Close()

	client := newTestClient(t, server.URL, rpc.WithConcurrencyLimit(4))
	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func(n int32) {
			v, err := client.Method(context.Background(), n, n)
			if err == nil && v != n+n {
				err = errors.New("wrong result")
			}
			done <- err
		}(int32(i))
	}
	for i := 0; i < 16; i++ {
		assert.NoError(t, <-done)
	}
}
