package flow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/joinflow/internal/models"
)

// fakeIdentity implements IdentityService for controller tests.
type fakeIdentity struct {
	mu sync.Mutex

	// behaviour
	Exists    bool
	ExistsErr error
	Link      models.SigninLink
	LinkErr   error
	Account   models.Account
	CreateErr error

	// when block is set, CheckExistence and CreateAccount signal entered
	// and wait for block to be closed
	block   chan struct{}
	entered chan struct{}

	// recorded calls
	checkCalls  int
	linkCalls   int
	createCalls int

	LastCheckEmail   string
	LastLinkEmail    string
	LastLinkRedirect string
	LastLinkOrigin   string
	LastUser         models.UserFields
	LastOrg          *models.OrganizationFields
	LastRedirect     string
	LastOrigin       string
}

func (f *fakeIdentity) wait() {
	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeIdentity) CheckExistence(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	f.checkCalls++
	f.LastCheckEmail = email
	f.mu.Unlock()

	f.wait()
	return f.Exists, f.ExistsErr
}

func (f *fakeIdentity) RequestSigninLink(ctx context.Context, email, redirect, originURL string) (models.SigninLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	f.LastLinkEmail = email
	f.LastLinkRedirect = redirect
	f.LastLinkOrigin = originURL
	return f.Link, f.LinkErr
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, user models.UserFields, org *models.OrganizationFields, redirect, originURL string) (models.Account, error) {
	f.mu.Lock()
	f.createCalls++
	f.LastUser = user
	f.LastOrg = org
	f.LastRedirect = redirect
	f.LastOrigin = originURL
	f.mu.Unlock()

	f.wait()
	return f.Account, f.CreateErr
}

func (f *fakeIdentity) calls() (check, link, create int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkCalls, f.linkCalls, f.createCalls
}

type pushCall struct {
	Route  string
	Params map[string]string
}

// fakeNavigator records navigation requests.
type fakeNavigator struct {
	mu       sync.Mutex
	Replaced []string
	Pushed   []pushCall
}

func (n *fakeNavigator) Replace(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Replaced = append(n.Replaced, url)
}

func (n *fakeNavigator) PushNamed(route string, params map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Pushed = append(n.Pushed, pushCall{Route: route, Params: params})
}

type fakeLocation struct {
	path  string
	query string
}

func (l fakeLocation) Path() string     { return l.path }
func (l fakeLocation) RawQuery() string { return l.query }
