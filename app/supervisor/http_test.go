package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type serverMock struct {
	listenErr error
	started   chan struct{}
	stop      chan struct{}
	shutdowns atomic.Int32
}

func newServerMock() *serverMock {
	return &serverMock{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (m *serverMock) ListenAndServe() error {
	m.started <- struct{}{}
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stop
	return http.ErrServerClosed
}

func (m *serverMock) Shutdown(ctx context.Context) error {
	m.shutdowns.Add(1)
	close(m.stop)
	return nil
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	srv := newServerMock()
	svc := NewHTTPService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	require.Equal(t, int32(1), srv.shutdowns.Load())
}

func TestHTTPService_ListenError(t *testing.T) {
	srv := newServerMock()
	srv.listenErr = errors.New("address already in use")
	svc := NewHTTPService(srv, time.Second)

	err := svc.Serve(context.Background())
	require.ErrorContains(t, err, "address already in use")
	require.Equal(t, int32(0), srv.shutdowns.Load())
	require.Equal(t, "http-server", svc.String())
}
