// Package cli provides the interactive joinflow command-line client.
//
// It wires configuration, the identity client, a console navigator and the
// account-entry flow controller behind a small REPL:
//
//   - email <addr>  set the shared email draft
//   - signin        request a sign-in link for the draft email
//   - join          fill in and submit the create-profile form
//   - switch        the secondary "other form" action
//   - status        show the current flow state
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
