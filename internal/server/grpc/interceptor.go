package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	originKey    ctxKey = "origin"
)

func firstValue(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// requestContextInterceptor copies the request id and origin from incoming
// metadata into the context. Calls without a request id get a fresh one.
func (s *GRPCServer) requestContextInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	var requestID, origin string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		requestID = firstValue(md, common.RequestIDHeaderName)
		origin = firstValue(md, common.OriginHeaderName)
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx = context.WithValue(ctx, requestIDKey, requestID)
	if origin != "" {
		ctx = context.WithValue(ctx, originKey, origin)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"request_id", RequestIDFromContext(ctx),
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func originFromContext(ctx context.Context) string {
	origin, _ := ctx.Value(originKey).(string)
	return origin
}
