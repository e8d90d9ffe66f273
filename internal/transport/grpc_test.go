package transport

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"

	"github.com/wigggles/otxconsensus/consensus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

var errBadRequest = errors.New("transport: bad request")

// dialBufconn spins up a Server backed by h over an in-memory
// bufconn listener and returns a Client dialed against it, so the
// gRPC Send path runs end to end without binding a real port.
func dialBufconn(t *testing.T, h Handler) (*Client, func()) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := NewServer(h)
	go func() {
		_ = srv.GRPCServer().Serve(lis)
	}()

	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.Dial()
	}
	conn, err := grpc.Dial("bufconn",
		grpc.WithContextDialer(dialer),
		grpc.WithInsecure(),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		t.Fatalf("grpc.Dial: %v", err)
	}

	cleanup := func() {
		conn.Close()
		srv.GRPCServer().Stop()
	}
	return NewClient(conn), cleanup
}

func TestClientServerSendRoundTrip(t *testing.T) {
	handler := func(_ context.Context, payload []byte) ([]byte, error) {
		reply := append([]byte("echo:"), payload...)
		return reply, nil
	}
	client, cleanup := dialBufconn(t, handler)
	defer cleanup()

	outcome, err := client.Send(context.Background(), []byte("hello"))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !bytes.Equal(outcome.Reply, []byte("echo:hello")) {
		t.Fatalf("Send reply = %q, want %q", outcome.Reply, "echo:hello")
	}
}

func TestClientServerSendSurfacesHandlerError(t *testing.T) {
	handler := func(_ context.Context, payload []byte) ([]byte, error) {
		return nil, errBadRequest
	}
	client, cleanup := dialBufconn(t, handler)
	defer cleanup()

	outcome, err := client.Send(context.Background(), []byte("hello"))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if outcome.Status != consensus.StatusInvalidReply {
		t.Fatalf("Send status = %v, want StatusInvalidReply", outcome.Status)
	}
}
