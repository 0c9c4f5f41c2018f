// Package accounts implements the identity server's business logic:
// existence checks, sign-in link dispatch and account creation.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/dmitrijs2005/joinflow/internal/dbx"
	"github.com/dmitrijs2005/joinflow/internal/logging"
	"github.com/dmitrijs2005/joinflow/internal/server/auth"
	"github.com/dmitrijs2005/joinflow/internal/server/config"
	"github.com/dmitrijs2005/joinflow/internal/server/mailer"
	"github.com/dmitrijs2005/joinflow/internal/server/models"
	"github.com/dmitrijs2005/joinflow/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Limiter throttles link requests per email.
type Limiter interface {
	Allow(ctx context.Context, email string) error
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) error { return nil }

// NewAccount is the input of CreateAccount. A nil Organization creates a
// personal account only.
type NewAccount struct {
	Email           string
	Name            string
	NewsletterOptIn bool
	Organization    *NewOrganization
	Redirect        string
	WebsiteURL      string
}

type NewOrganization struct {
	Name          string
	GithubHandle  string
	TwitterHandle string
	Website       string
}

type Service struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	limiter         Limiter
	mailer          mailer.Mailer
	log             logging.Logger
	secret          []byte
	linkValidity    time.Duration
	publicURL       string
	testEmailDomain string
	newID           func() string
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, lim Limiter, m mailer.Mailer, cfg *config.Config, log logging.Logger) *Service {
	if lim == nil {
		lim = allowAll{}
	}
	if log == nil {
		log = logging.Nop()
	}
	if m == nil {
		m = mailer.NewLogMailer(log)
	}
	return &Service{
		db:              db,
		repomanager:     rm,
		limiter:         lim,
		mailer:          m,
		log:             log.With("module", "accounts"),
		secret:          []byte(cfg.SecretKey),
		linkValidity:    cfg.LinkValidity,
		publicURL:       cfg.PublicURL,
		testEmailDomain: strings.ToLower(strings.TrimPrefix(cfg.TestEmailDomain, "@")),
		newID:           func() string { return uuid.NewString() },
	}
}

// CheckExistence reports whether an account is registered under email.
func (s *Service) CheckExistence(ctx context.Context, email string) (bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}

	exists, err := s.repomanager.Users(s.db).ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("error checking account: %w", err)
	}
	return exists, nil
}

// RequestSigninLink mints a sign-in link for an existing account. Accounts
// under the test email domain get the link back instead of by mail;
// everyone else gets an empty string.
func (s *Service) RequestSigninLink(ctx context.Context, email, redirect, websiteURL string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	if err := s.limiter.Allow(ctx, email); err != nil {
		return "", err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error looking up account: %w", err)
	}

	return s.dispatchLink(ctx, user, redirect, websiteURL)
}

// CreateAccount registers the user and, when given, an organization the user
// administers. Both inserts share one transaction. A confirmation link is
// sent afterwards; a delivery failure is logged and does not undo the
// account.
func (s *Service) CreateAccount(ctx context.Context, in NewAccount) (*models.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, common.ErrInvalidName
	}
	if in.Organization != nil && strings.TrimSpace(in.Organization.Name) == "" {
		return nil, common.ErrInvalidOrganization
	}

	exists, err := s.repomanager.Users(s.db).ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking account: %w", err)
	}
	if exists {
		return nil, common.ErrAccountExists
	}

	user := &models.User{
		ID:              s.newID(),
		Email:           email,
		Name:            name,
		NewsletterOptIn: in.NewsletterOptIn,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		if in.Organization == nil {
			return nil
		}

		org := &models.Organization{
			ID:            s.newID(),
			Name:          strings.TrimSpace(in.Organization.Name),
			GithubHandle:  strings.TrimSpace(in.Organization.GithubHandle),
			TwitterHandle: strings.TrimSpace(in.Organization.TwitterHandle),
			Website:       strings.TrimSpace(in.Organization.Website),
			CreatedBy:     user.ID,
		}
		orgRepo := s.repomanager.Organizations(tx)
		if _, err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		return orgRepo.AddMember(ctx, org.ID, user.ID, models.MemberRoleAdmin)
	})
	if err != nil {
		if errors.Is(err, common.ErrAccountExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.log.Info(ctx, "account created", "id", user.ID, "organization", in.Organization != nil)

	if _, err := s.dispatchLink(ctx, user, in.Redirect, in.WebsiteURL); err != nil {
		s.log.Error(ctx, "confirmation link not sent", "id", user.ID, "error", err.Error())
	}

	return user, nil
}

func (s *Service) dispatchLink(ctx context.Context, user *models.User, redirect, websiteURL string) (string, error) {
	token, err := auth.GenerateLinkToken(user.ID, user.Email, redirect, s.secret, s.linkValidity)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	base := strings.TrimSpace(websiteURL)
	if base == "" {
		base = s.publicURL
	}

	link, err := auth.BuildLink(base, token, redirect)
	if err != nil {
		return "", err
	}

	if s.isTestEmail(user.Email) {
		s.log.Debug(ctx, "test account, returning link", "id", user.ID)
		return link, nil
	}

	if err := s.mailer.Send(ctx, mailer.SigninLinkMessage(user.Email, user.Name, link)); err != nil {
		return "", fmt.Errorf("error sending link: %w", err)
	}
	return "", nil
}

func (s *Service) isTestEmail(email string) bool {
	if s.testEmailDomain == "" {
		return false
	}
	return strings.HasSuffix(email, "@"+s.testEmailDomain)
}

// normalizeEmail trims and lowercases email and rejects anything that is not
// a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", common.ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", common.ErrInvalidEmail
	}
	return email, nil
}
