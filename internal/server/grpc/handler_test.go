package grpc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	pb "github.com/dmitrijs2005/joinflow/internal/api/identityv1"
	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/dmitrijs2005/joinflow/internal/server/accounts"
	"github.com/dmitrijs2005/joinflow/internal/server/limiter"
	"github.com/dmitrijs2005/joinflow/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeAccounts struct {
	mu sync.Mutex

	exists    bool
	existsErr error

	link    string
	linkErr error

	createErr error

	lastEmail     string
	lastRedirect  string
	lastWebsite   string
	lastRequestID string
	lastCreate    accounts.NewAccount
}

func (f *fakeAccounts) CheckExistence(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail = email
	return f.exists, f.existsErr
}

func (f *fakeAccounts) RequestSigninLink(ctx context.Context, email, redirect, websiteURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEmail, f.lastRedirect, f.lastWebsite = email, redirect, websiteURL
	f.lastRequestID = RequestIDFromContext(ctx)
	return f.link, f.linkErr
}

func (f *fakeAccounts) CreateAccount(ctx context.Context, in accounts.NewAccount) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreate = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.User{ID: "id-1", Email: in.Email, Name: in.Name}, nil
}

// snapshot returns a copy of the recorded calls.
func (f *fakeAccounts) snapshot() *fakeAccounts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &fakeAccounts{
		lastEmail:     f.lastEmail,
		lastRedirect:  f.lastRedirect,
		lastWebsite:   f.lastWebsite,
		lastRequestID: f.lastRequestID,
		lastCreate:    f.lastCreate,
	}
}

func newTestServer(fa *fakeAccounts) *GRPCServer {
	return NewGRPCServer("", nopLogger{}, fa)
}

func TestHandlers_Success(t *testing.T) {
	fa := &fakeAccounts{exists: true, link: "l"}
	s := newTestServer(fa)
	ctx := context.Background()

	ce, err := s.CheckExistence(ctx, &pb.CheckExistenceRequest{Email: "a@b.co"})
	require.NoError(t, err)
	assert.True(t, ce.Exists)

	sl, err := s.RequestSigninLink(ctx, &pb.RequestSigninLinkRequest{Email: "a@b.co", Redirect: "r", WebsiteURL: "w"})
	require.NoError(t, err)
	assert.Equal(t, "l", sl.Redirect)
	assert.Equal(t, "w", fa.lastWebsite)

	ca, err := s.CreateAccount(ctx, &pb.CreateAccountRequest{
		User:         pb.User{Email: "a@b.co", Name: "A"},
		Organization: &pb.Organization{Name: "Acme", TwitterHandle: "acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, &pb.CreateAccountResponse{ID: "id-1", Email: "a@b.co", Name: "A"}, ca)
	require.NotNil(t, fa.lastCreate.Organization)
	assert.Equal(t, "acme", fa.lastCreate.Organization.TwitterHandle)

	p, err := s.Ping(ctx, &pb.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", p.Status)
}

func TestHandlers_WebsiteURLFallsBackToOrigin(t *testing.T) {
	fa := &fakeAccounts{}
	s := newTestServer(fa)
	ctx := context.WithValue(context.Background(), originKey, "https://origin.example")

	_, err := s.RequestSigninLink(ctx, &pb.RequestSigninLinkRequest{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "https://origin.example", fa.lastWebsite)

	_, err = s.CreateAccount(ctx, &pb.CreateAccountRequest{User: pb.User{Email: "a@b.co", Name: "A"}})
	require.NoError(t, err)
	assert.Equal(t, "https://origin.example", fa.lastCreate.WebsiteURL)
	assert.Nil(t, fa.lastCreate.Organization)
}

func TestToStatus(t *testing.T) {
	s := newTestServer(&fakeAccounts{})
	cases := []struct {
		err  error
		code codes.Code
		msg  string
	}{
		{common.ErrInvalidEmail, codes.InvalidArgument, "Invalid email"},
		{common.ErrInvalidName, codes.InvalidArgument, "Name is required"},
		{common.ErrInvalidOrganization, codes.InvalidArgument, "Organization name is required"},
		{common.ErrorNotFound, codes.NotFound, "No account found for that email"},
		{common.ErrAccountExists, codes.AlreadyExists, "Email already exists"},
		{common.ErrRateLimited, codes.ResourceExhausted, "Too many sign-in requests, try again later"},
		{fmt.Errorf("%w: dial", limiter.ErrRedisUnavailable), codes.Unavailable, "service unavailable"},
		{context.DeadlineExceeded, codes.DeadlineExceeded, context.DeadlineExceeded.Error()},
		{errors.New("db down"), codes.Internal, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			st, ok := status.FromError(s.toStatus(context.Background(), tc.err))
			require.True(t, ok)
			assert.Equal(t, tc.code, st.Code())
			assert.Equal(t, tc.msg, st.Message())
		})
	}
}

func TestHandlers_Errors(t *testing.T) {
	fa := &fakeAccounts{existsErr: common.ErrInvalidEmail, linkErr: common.ErrorNotFound, createErr: errors.New("boom")}
	s := newTestServer(fa)
	ctx := context.Background()

	_, err := s.CheckExistence(ctx, &pb.CheckExistenceRequest{Email: "x"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.RequestSigninLink(ctx, &pb.RequestSigninLinkRequest{Email: "a@b.co"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.CreateAccount(ctx, &pb.CreateAccountRequest{User: pb.User{Email: "a@b.co", Name: "A"}})
	assert.Equal(t, codes.Internal, status.Code(err))
}
