package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/joinflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDraft(t *testing.T) {
	tests := []struct {
		name     string
		draft    ProfileDraft
		wantUser models.UserFields
		wantOrg  *models.OrganizationFields
	}{
		{
			name:     "organization renamed and partial",
			draft:    ProfileDraft{Email: "a@b.com", Name: "A", OrgName: "Co", Website: "w"},
			wantUser: models.UserFields{Email: "a@b.com", Name: "A"},
			wantOrg:  &models.OrganizationFields{Name: "Co", Website: "w"},
		},
		{
			name:     "no organization fields",
			draft:    ProfileDraft{Email: "a@b.com", Name: "A"},
			wantUser: models.UserFields{Email: "a@b.com", Name: "A"},
			wantOrg:  nil,
		},
		{
			name:     "organization without name",
			draft:    ProfileDraft{Email: "a@b.com", GithubHandle: "octo", NewsletterOptIn: true},
			wantUser: models.UserFields{Email: "a@b.com", NewsletterOptIn: true},
			wantOrg:  &models.OrganizationFields{GithubHandle: "octo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, org := SplitDraft(tt.draft)
			assert.Equal(t, tt.wantUser, user)
			assert.Equal(t, tt.wantOrg, org)
		})
	}
}

func TestCreateProfile_WithOrganization(t *testing.T) {
	svc := &fakeIdentity{Account: models.Account{ID: "acc-1", Email: "a@b.com", Name: "A"}}
	nav := &fakeNavigator{}
	c := New(svc, nav, Options{Redirect: "/dashboard", OriginURL: "https://example.com"})

	res := c.CreateProfile(context.Background(), ProfileDraft{Email: "a@b.com", Name: "A", OrgName: "Co", Website: "w"})

	assert.Equal(t, models.UserFields{Email: "a@b.com", Name: "A"}, svc.LastUser)
	require.NotNil(t, svc.LastOrg)
	assert.Equal(t, models.OrganizationFields{Name: "Co", Website: "w"}, *svc.LastOrg)
	assert.Equal(t, "%2Fdashboard", svc.LastRedirect)
	assert.Equal(t, "https://example.com", svc.LastOrigin)

	require.Len(t, nav.Pushed, 1)
	assert.Equal(t, "signinLinkSent", nav.Pushed[0].Route)
	assert.Equal(t, "a@b.com", nav.Pushed[0].Params["email"])
	require.Len(t, res.Effects, 2)
	assert.Equal(t, EffectScrollToTop, res.Effects[1].Kind)
	assert.False(t, res.State.Submitting)
	assert.False(t, res.State.HasError())
}

func TestCreateProfile_NoOrganizationIsAbsent(t *testing.T) {
	svc := &fakeIdentity{}
	c := New(svc, &fakeNavigator{}, Options{})

	c.CreateProfile(context.Background(), ProfileDraft{Email: "a@b.com", Name: "A"})

	assert.Nil(t, svc.LastOrg)
}

func TestCreateProfile_EmailFallsBackToDraft(t *testing.T) {
	svc := &fakeIdentity{}
	nav := &fakeNavigator{}
	c := New(svc, nav, Options{DefaultMode: ModeCreateAccount})
	c.SetEmail("shared@b.com")

	c.CreateProfile(context.Background(), ProfileDraft{Name: "A"})

	assert.Equal(t, "shared@b.com", svc.LastUser.Email)
	require.Len(t, nav.Pushed, 1)
	assert.Equal(t, "shared@b.com", nav.Pushed[0].Params["email"])
}

func TestCreateProfile_Failure(t *testing.T) {
	svc := &fakeIdentity{CreateErr: errors.New("GraphQL error: Email already exists")}
	nav := &fakeNavigator{}
	c := New(svc, nav, Options{})

	res := c.CreateProfile(context.Background(), ProfileDraft{Email: "a@b.com", Name: "A"})

	assert.Equal(t, "Error: Email already exists", res.State.Error)
	assert.False(t, res.State.Submitting)
	assert.Empty(t, nav.Pushed)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, EffectScrollToTop, res.Effects[0].Kind)
}
