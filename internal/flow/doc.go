// Package flow implements the account-entry flow controller.
//
// A Controller owns one FlowState: which form is active (sign in or create
// account), the shared email draft, whether a remote call is in flight, the
// last user-visible error and whether the last sign-in attempt hit an
// unknown email. It exposes two submitting actions:
//
//   - RequestSignIn: check that the email has an account, then ask the
//     identity service to send a sign-in link.
//   - CreateProfile: split the form into user and optional organization
//     fields, create the account and land on the "link sent" screen.
//
// At most one remote call runs per Controller. An action started while
// another is in flight is dropped and reported as Result.Skipped.
//
// Remote failures never escape the controller: they are normalized into
// State.Error. Navigation and scroll-to-top are returned as Effect values
// and also forwarded to the Navigator and the Options.OnEffect hook, so a
// presentation layer can stay a pure consumer of State plus effects.
package flow
