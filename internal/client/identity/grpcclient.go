package identity

import (
	"context"
	"fmt"
	"time"

	pb "github.com/dmitrijs2005/joinflow/internal/api/identityv1"
	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/dmitrijs2005/joinflow/internal/flow"
	"github.com/dmitrijs2005/joinflow/internal/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var _ flow.IdentityService = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.IdentityServiceClient
}

func withHeader(ctx context.Context, name, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(name, value)
	return metadata.NewOutgoingContext(ctx, md)
}

// requestIDInterceptor tags every call with a fresh request id unless the
// caller already set one.
func (s *GRPCClient) requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	md, _ := metadata.FromOutgoingContext(ctx)
	if len(md.Get(common.RequestIDHeaderName)) == 0 {
		ctx = withHeader(ctx, common.RequestIDHeaderName, uuid.NewString())
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials the identity server lazily. timeout bounds every call;
// zero disables it.
func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(s.requestIDInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewIdentityServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) CheckExistence(ctx context.Context, email string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CheckExistence(ctx, &pb.CheckExistenceRequest{Email: email})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Exists, nil
}

func (s *GRPCClient) RequestSigninLink(ctx context.Context, email, redirect, originURL string) (models.SigninLink, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if originURL != "" {
		ctx = withHeader(ctx, common.OriginHeaderName, originURL)
	}

	req := &pb.RequestSigninLinkRequest{Email: email, Redirect: redirect, WebsiteURL: originURL}

	resp, err := s.client.RequestSigninLink(ctx, req)
	if err != nil {
		return models.SigninLink{}, s.mapError(err)
	}
	return models.SigninLink{Redirect: resp.Redirect}, nil
}

func (s *GRPCClient) CreateAccount(ctx context.Context, user models.UserFields, org *models.OrganizationFields, redirect, originURL string) (models.Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if originURL != "" {
		ctx = withHeader(ctx, common.OriginHeaderName, originURL)
	}

	req := &pb.CreateAccountRequest{
		User: pb.User{
			Email:           user.Email,
			Name:            user.Name,
			NewsletterOptIn: user.NewsletterOptIn,
		},
		Redirect:   redirect,
		WebsiteURL: originURL,
	}
	if org != nil {
		req.Organization = &pb.Organization{
			Name:          org.Name,
			GithubHandle:  org.GithubHandle,
			TwitterHandle: org.TwitterHandle,
			Website:       org.Website,
		}
	}

	resp, err := s.client.CreateAccount(ctx, req)
	if err != nil {
		return models.Account{}, s.mapError(err)
	}
	return models.Account{ID: resp.ID, Email: resp.Email, Name: resp.Name}, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return &RemoteError{Code: st.Code(), Message: st.Message()}
	}
}
