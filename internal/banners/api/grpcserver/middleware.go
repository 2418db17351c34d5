package grpcserver

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/Leopold1975/current_banner/pkg/logger"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

const requestIDKey = "x-request-id"

func loggingInterceptor(lg logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		requestID := incomingRequestID(ctx)
		ctx = logger.WithContext(ctx, lg.With("request_id", requestID))

		resp, err := handler(ctx, req)

		var clientIP string
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			clientIP = p.Addr.String()
		}

		fields := []interface{}{
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency", time.Since(start).String(),
			"client_ip", clientIP,
			"request_id", requestID,
		}

		if err != nil {
			lg.Errorw("rpc failed", append(fields, "error", err)...)
		} else {
			lg.Infow("rpc handled", fields...)
		}

		return resp, err
	}
}

func recoveryInterceptor(lg logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, //nolint:nonamedreturns
		handler grpc.UnaryHandler,
	) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(ctx, lg).Errorw("rpc panic",
					"method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))

				err = status.Errorf(codes.Internal, "internal error")
			}
		}()

		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDKey); len(ids) != 0 && ids[0] != "" {
			return ids[0]
		}
	}

	return uuid.NewString()
}
