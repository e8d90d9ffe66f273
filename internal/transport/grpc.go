// Package transport implements the Network collaborator
// over google.golang.org/grpc: `send(ctx, message) -> {Timeout,
// InvalidReply, ValidReply}` becomes one unary RPC call with a
// context.Context deadline, classifying the returned error/status
// code into consensus.SendOutcome.
package transport

import (
	"context"
	"fmt"

	"github.com/decred/slog"
	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/internal/transport/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// logger is initialized with no output filters until UseLogger is
// called, matching every other package-level logger in this module.
var logger slog.Logger

func init() {
	UseLogger(slog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(l slog.Logger) {
	logger = l
}

// serviceName is the fully-qualified name the hand-written
// grpc.ServiceDesc below registers under.
const serviceName = "otxconsensus.transport.Notary"

// Handler processes one request envelope's payload and returns the
// reply payload, or an error if the request itself was malformed or
// could not be serviced (in gRPC terms, this becomes an error status
// rather than a successfully-delivered-but-invalid reply).
type Handler func(ctx context.Context, payload []byte) ([]byte, error)

// serviceDesc builds the grpc.ServiceDesc for the single Send method
// by hand, since this module has no protoc step (see codec.go).
func serviceDesc(h Handler) grpc.ServiceDesc {
	return grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Send",
				Handler: func(srv interface{}, ctx context.Context,
					dec func(interface{}) error,
					interceptor grpc.UnaryServerInterceptor) (interface{}, error) {

					var req proto.Envelope
					if err := dec(&req); err != nil {
						return nil, err
					}

					run := func(ctx context.Context, req interface{}) (interface{}, error) {
						in := req.(*proto.Envelope)
						out, err := h(ctx, in.Payload)
						if err != nil {
							return nil, err
						}
						return &proto.Envelope{Payload: out}, nil
					}

					if interceptor == nil {
						return run(ctx, &req)
					}
					info := &grpc.UnaryServerInfo{
						Server:     srv,
						FullMethod: fmt.Sprintf("/%s/Send", serviceName),
					}
					return interceptor(ctx, &req, info, run)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "otxconsensus/transport.proto",
	}
}

// Server hosts the notary's side of the Network collaborator: each
// inbound Send call is handed to Handler, and the returned bytes are
// sent back as the reply payload.
type Server struct {
	grpcServer *grpc.Server
}

// NewServer wires h as the handler for inbound Send calls, with the
// unary error-logging interceptor a node daemon's log.go installs.
// The stream interceptor is not installed: Send is the only method
// and it is unary.
func NewServer(h Handler) *Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(errorLogUnaryServerInterceptor(logger)),
	)
	desc := serviceDesc(h)
	s.RegisterService(&desc, nil)
	return &Server{grpcServer: s}
}

// GRPCServer exposes the underlying *grpc.Server for callers that need
// to net.Listen and Serve it themselves.
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpcServer
}

// Client implements consensus.NetworkCollaborator over a grpc.ClientConn
// dialed against a Server.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient wraps an already-dialed connection (typically obtained via
// grpc.Dial(addr, grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)), ...)).
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Send implements consensus.NetworkCollaborator: it invokes the
// notary's Send RPC and classifies the outcome. A deadline-exceeded or
// unavailable status becomes StatusTimeout; any other gRPC error
// becomes StatusInvalidReply; a successful call is StatusValidReply.
func (c *Client) Send(ctx context.Context, message []byte) (consensus.SendOutcome, error) {
	req := &proto.Envelope{Payload: message}
	reply := &proto.Envelope{}

	err := c.conn.Invoke(ctx, fmt.Sprintf("/%s/Send", serviceName), req, reply,
		grpc.CallContentSubtype(codecName))
	if err != nil {
		code := status.Code(err)
		switch code {
		case codes.DeadlineExceeded, codes.Unavailable:
			return consensus.SendOutcome{Status: consensus.StatusTimeout}, nil
		default:
			logger.Warnf("notary send: %v", err)
			return consensus.SendOutcome{Status: consensus.StatusInvalidReply}, nil
		}
	}

	return consensus.SendOutcome{
		Status: consensus.StatusValidReply,
		Reply:  reply.Payload,
	}, nil
}
