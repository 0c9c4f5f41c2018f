package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/joinflow/internal/client/config"
	"github.com/dmitrijs2005/joinflow/internal/client/identity"
	"github.com/dmitrijs2005/joinflow/internal/client/navigator"
	"github.com/dmitrijs2005/joinflow/internal/flow"
	"github.com/dmitrijs2005/joinflow/internal/logging"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

const clearScreen = "\033[H\033[2J"

type pinger interface {
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	ctrl   *flow.Controller
	nav    *navigator.Console
	remote pinger
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer
	tty    bool

	// navigator output is held back until an action completes, so that a
	// scroll-to-top clears the screen before the new page is shown
	pending bytes.Buffer
	scroll  bool
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := identity.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	a := newApp(c, apiClient, os.Stdin, os.Stdout, log)
	a.remote = apiClient
	a.tty = isTerminal(int(os.Stdout.Fd()))
	return a, nil
}

func newApp(c *config.Config, svc flow.IdentityService, in io.Reader, out io.Writer, log logging.Logger) *App {
	a := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}

	fixed, _ := flow.ParseMode(c.Mode)
	def, _ := flow.ParseMode(c.DefaultMode)

	a.nav = navigator.NewConsole(&a.pending, nil, c.StartPath)
	a.ctrl = flow.New(svc, a.nav, flow.Options{
		FixedMode:   fixed,
		DefaultMode: def,
		Redirect:    c.Redirect,
		OriginURL:   c.OriginURL,
		Location:    a.nav,
		Routes:      c.Routes(),
		Labels:      c.Labels,
		OnEffect:    a.onEffect,
		Logger:      log,
	})
	return a
}

func (a *App) Run(ctx context.Context) {
	if a.remote != nil {
		defer a.remote.Close()

		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := a.remote.Ping(pctx); err != nil {
			a.log.Warn(ctx, "identity server is not reachable", "addr", a.config.ServerEndpointAddr, "error", err)
		}
		cancel()
	}

	fmt.Fprintln(a.out, a.title())
	runREPL(ctx, a, a.Status, a.reader)
}

func (a *App) onEffect(e flow.Effect) {
	if e.Kind == flow.EffectScrollToTop {
		a.scroll = true
	}
}

// flush renders the outcome of one controller action.
func (a *App) flush(res flow.Result) {
	if a.scroll {
		if a.tty {
			fmt.Fprint(a.out, clearScreen)
		} else {
			fmt.Fprintln(a.out, strings.Repeat("-", 40))
		}
		a.scroll = false
	}
	if a.pending.Len() > 0 {
		_, _ = a.pending.WriteTo(a.out)
	}

	st := res.State
	switch {
	case res.Skipped:
		fmt.Fprintln(a.out, "A request is already in progress.")
	case st.HasError():
		fmt.Fprintln(a.out, "! "+st.Error)
	case st.UnknownEmail:
		fmt.Fprintf(a.out, "There is no account for %s. Type 'join' to create one.\n", st.Email)
	}
}

func (a *App) label(key, fallback string) string {
	if v := a.ctrl.Labels()[key]; v != "" {
		return v
	}
	return fallback
}

func (a *App) title() string {
	if a.ctrl.State().Mode == flow.ModeCreateAccount {
		return a.label("createAccount.title", "Create your account")
	}
	return a.label("signin.title", "Continue with your email")
}

// Status is the short prompt decoration: mode, email and a busy marker.
func (a *App) Status() string {
	st := a.ctrl.State()
	parts := []string{string(st.Mode)}
	if st.Email != "" {
		parts = append(parts, st.Email)
	}
	if st.Submitting {
		parts = append(parts, "...")
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) SetEmail(email string) {
	a.ctrl.SetEmail(email)
}

// ensureMode switches to target when needed. It reports false, after
// telling the user why, when the switch is not possible.
func (a *App) ensureMode(target flow.Mode) bool {
	if a.ctrl.State().Mode == target {
		return true
	}
	if err := a.ctrl.SwitchMode(target); err != nil {
		if errors.Is(err, flow.ErrModeFixed) {
			fmt.Fprintf(a.out, "This form is fixed to %s.\n", a.ctrl.State().Mode)
		} else {
			fmt.Fprintln(a.out, err.Error())
		}
		return false
	}
	return true
}

func (a *App) SignIn(ctx context.Context) error {
	if !a.ensureMode(flow.ModeSignIn) {
		return flow.ErrModeFixed
	}

	if a.ctrl.State().Email == "" {
		email, err := GetSimpleText(a.reader, a.label("signin.email", "Email"), a.out)
		if err != nil {
			return err
		}
		a.ctrl.SetEmail(email)
	}

	a.flush(a.ctrl.RequestSignIn(ctx))
	return nil
}

func (a *App) Join(ctx context.Context) error {
	if !a.ensureMode(flow.ModeCreateAccount) {
		return flow.ErrModeFixed
	}

	draft, err := a.readProfile()
	if err != nil {
		return err
	}
	a.ctrl.SetEmail(draft.Email)

	a.flush(a.ctrl.CreateProfile(ctx, draft))
	return nil
}

func (a *App) readProfile() (flow.ProfileDraft, error) {
	var d flow.ProfileDraft
	var err error

	current := a.ctrl.State().Email
	prompt := "Email"
	if current != "" {
		prompt = fmt.Sprintf("Email [%s]", current)
	}
	if d.Email, err = GetSimpleText(a.reader, prompt, a.out); err != nil {
		return d, err
	}
	if d.Email == "" {
		d.Email = current
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &d.Name},
		{"Organization name (optional)", &d.OrgName},
		{"GitHub handle (optional)", &d.GithubHandle},
		{"Twitter handle (optional)", &d.TwitterHandle},
		{"Website (optional)", &d.Website},
	}
	for _, f := range fields {
		if *f.dst, err = GetSimpleText(a.reader, f.prompt, a.out); err != nil {
			return d, err
		}
	}

	d.NewsletterOptIn, err = GetYesNo(a.reader, "Subscribe to the newsletter? [y/N]", a.out)
	return d, err
}

func (a *App) Switch(ctx context.Context) error {
	res, err := a.ctrl.SecondaryAction(ctx)
	if err != nil {
		if errors.Is(err, flow.ErrModeFixed) {
			fmt.Fprintf(a.out, "This form is fixed to %s.\n", res.State.Mode)
		}
		return err
	}
	if len(res.Effects) > 0 {
		a.flush(res)
		return nil
	}
	fmt.Fprintln(a.out, a.title())
	return nil
}

func (a *App) PrintStatus() {
	st := a.ctrl.State()
	fmt.Fprintf(a.out, "mode: %s\n", st.Mode)
	if a.ctrl.ModeFixed() {
		fmt.Fprintln(a.out, "mode is fixed")
	}
	fmt.Fprintf(a.out, "email: %s\n", st.Email)
	fmt.Fprintf(a.out, "location: %s\n", a.nav.Path())
	if st.HasError() {
		fmt.Fprintf(a.out, "error: %s\n", st.Error)
	}
	if st.UnknownEmail {
		fmt.Fprintln(a.out, "no account for this email")
	}
	if ext := a.nav.External(); ext != "" {
		fmt.Fprintf(a.out, "opened: %s\n", ext)
	}
}
