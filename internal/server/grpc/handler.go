package grpc

import (
	"context"
	"errors"

	pb "github.com/dmitrijs2005/joinflow/internal/api/identityv1"
	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/dmitrijs2005/joinflow/internal/server/accounts"
	"github.com/dmitrijs2005/joinflow/internal/server/limiter"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) CheckExistence(ctx context.Context, req *pb.CheckExistenceRequest) (*pb.CheckExistenceResponse, error) {

	exists, err := s.accounts.CheckExistence(ctx, req.Email)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.CheckExistenceResponse{Exists: exists}, nil
}

func (s *GRPCServer) RequestSigninLink(ctx context.Context, req *pb.RequestSigninLinkRequest) (*pb.RequestSigninLinkResponse, error) {

	redirect, err := s.accounts.RequestSigninLink(ctx, req.Email, req.Redirect, websiteURL(ctx, req.WebsiteURL))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.RequestSigninLinkResponse{Redirect: redirect}, nil
}

func (s *GRPCServer) CreateAccount(ctx context.Context, req *pb.CreateAccountRequest) (*pb.CreateAccountResponse, error) {

	in := accounts.NewAccount{
		Email:           req.User.Email,
		Name:            req.User.Name,
		NewsletterOptIn: req.User.NewsletterOptIn,
		Redirect:        req.Redirect,
		WebsiteURL:      websiteURL(ctx, req.WebsiteURL),
	}
	if org := req.Organization; org != nil {
		in.Organization = &accounts.NewOrganization{
			Name:          org.Name,
			GithubHandle:  org.GithubHandle,
			TwitterHandle: org.TwitterHandle,
			Website:       org.Website,
		}
	}

	user, err := s.accounts.CreateAccount(ctx, in)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Account created", "id", user.ID)
	return &pb.CreateAccountResponse{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

// websiteURL prefers the URL in the message over the origin header.
func websiteURL(ctx context.Context, fromRequest string) string {
	if fromRequest != "" {
		return fromRequest
	}
	return originFromContext(ctx)
}

// toStatus maps service errors to status codes. The status message is shown
// to the user as is; unexpected errors are logged and reported generically.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidEmail):
		return status.Error(codes.InvalidArgument, "Invalid email")
	case errors.Is(err, common.ErrInvalidName):
		return status.Error(codes.InvalidArgument, "Name is required")
	case errors.Is(err, common.ErrInvalidOrganization):
		return status.Error(codes.InvalidArgument, "Organization name is required")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "No account found for that email")
	case errors.Is(err, common.ErrAccountExists):
		return status.Error(codes.AlreadyExists, "Email already exists")
	case errors.Is(err, common.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, "Too many sign-in requests, try again later")
	case errors.Is(err, limiter.ErrRedisUnavailable):
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Unavailable, "service unavailable")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
