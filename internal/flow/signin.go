package flow

import (
	"context"

	"github.com/dmitrijs2005/joinflow/internal/common"
)

// RequestSignIn runs the two-phase sign-in for the current email draft.
//
// An unknown email only sets State.UnknownEmail: no error, no navigation.
// For a known email the identity service sends a link. If it answers with
// a redirect, the flow leaves through Navigator.Replace; otherwise it lands
// on the "link sent" route. Any remote failure ends in State.Error.
func (c *Controller) RequestSignIn(ctx context.Context) Result {
	var email string
	if !c.begin(func(s *State) {
		s.UnknownEmail = false
		s.Error = ""
		email = s.Email
	}) {
		return c.skipped(ctx, "signin")
	}

	exists, err := c.svc.CheckExistence(ctx, email)
	if err != nil {
		return c.fail(ctx, "check existence", err)
	}
	if !exists {
		c.log.Info(ctx, "no account for email")
		st := c.finish(func(s *State) { s.UnknownEmail = true })
		return Result{State: st}
	}

	link, err := c.svc.RequestSigninLink(ctx, email, c.redirect(), c.opts.OriginURL)
	if err != nil {
		return c.fail(ctx, "request signin link", err)
	}

	next := pushNamed(common.SigninLinkSentRoute, map[string]string{"email": email})
	if link.Redirect != "" {
		next = replaceWith(link.Redirect)
	}

	c.log.Info(ctx, "sign-in link dispatched", "direct_redirect", link.Redirect != "")
	st := c.finish(func(s *State) { s.Error = "" })
	return c.emit(ctx, st, next, scrollToTop())
}
