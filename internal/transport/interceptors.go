package transport

import (
	"context"

	"github.com/decred/slog"
	"google.golang.org/grpc"
)

// errorLogUnaryServerInterceptor logs any error a unary handler
// returns. Grounded verbatim, in spirit, on a node daemon's log.go
// interceptor of the same name.
func errorLogUnaryServerInterceptor(logger slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {

		resp, err := handler(ctx, req)
		if err != nil {
			logger.Errorf("[%v]: %v", info.FullMethod, err)
		}

		return resp, err
	}
}

// errorLogStreamServerInterceptor logs any error a streaming handler
// returns. This module's one RPC method is unary, but the pair is kept
// together in case a streaming nymbox-push notification method is
// added later.
func errorLogStreamServerInterceptor(logger slog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream,
		info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {

		err := handler(srv, ss)
		if err != nil {
			logger.Errorf("[%v]: %v", info.FullMethod, err)
		}

		return err
	}
}
