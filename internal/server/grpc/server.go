package grpc

import (
	"context"
	"net"

	pb "github.com/dmitrijs2005/joinflow/internal/api/identityv1"
	"github.com/dmitrijs2005/joinflow/internal/logging"
	"github.com/dmitrijs2005/joinflow/internal/server/accounts"
	"github.com/dmitrijs2005/joinflow/internal/server/models"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

// AccountService is the business logic behind the identity endpoints.
type AccountService interface {
	CheckExistence(ctx context.Context, email string) (bool, error)
	RequestSigninLink(ctx context.Context, email, redirect, websiteURL string) (string, error)
	CreateAccount(ctx context.Context, in accounts.NewAccount) (*models.User, error)
}

type GRPCServer struct {
	pb.UnimplementedIdentityServiceServer
	address  string
	accounts AccountService
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, as AccountService) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: as,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.requestContextInterceptor, s.loggingInterceptor),
	)

	pb.RegisterIdentityServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
