package flow

import (
	"context"

	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/dmitrijs2005/joinflow/internal/models"
)

// ProfileDraft is the typed input of the create-profile form.
type ProfileDraft struct {
	Email           string
	Name            string
	NewsletterOptIn bool

	OrgName       string
	GithubHandle  string
	TwitterHandle string
	Website       string
}

// SplitDraft partitions a draft into user and organization fields.
// OrgName becomes the organization's Name. The organization is nil unless
// at least one of its fields is non-empty.
func SplitDraft(d ProfileDraft) (models.UserFields, *models.OrganizationFields) {
	user := models.UserFields{
		Email:           d.Email,
		Name:            d.Name,
		NewsletterOptIn: d.NewsletterOptIn,
	}

	org := models.OrganizationFields{
		Name:          d.OrgName,
		GithubHandle:  d.GithubHandle,
		TwitterHandle: d.TwitterHandle,
		Website:       d.Website,
	}
	if org.IsEmpty() {
		return user, nil
	}
	return user, &org
}

// CreateProfile creates an account from the draft and, on success, lands on
// the "link sent" route for the new account's email. A draft without an
// email falls back to the shared email draft.
func (c *Controller) CreateProfile(ctx context.Context, draft ProfileDraft) Result {
	if !c.begin(func(s *State) {
		s.Error = ""
		if draft.Email == "" {
			draft.Email = s.Email
		}
	}) {
		return c.skipped(ctx, "create profile")
	}

	user, org := SplitDraft(draft)

	account, err := c.svc.CreateAccount(ctx, user, org, c.redirect(), c.opts.OriginURL)
	if err != nil {
		return c.fail(ctx, "create account", err)
	}

	c.log.Info(ctx, "account created", "account_id", account.ID, "with_organization", org != nil)
	st := c.finish(func(s *State) { s.Error = "" })
	return c.emit(ctx, st,
		pushNamed(common.SigninLinkSentRoute, map[string]string{"email": user.Email}),
		scrollToTop(),
	)
}
