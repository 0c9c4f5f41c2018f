package flow

import (
	"context"
	"maps"
	"sync"

	"github.com/dmitrijs2005/joinflow/internal/logging"
	"github.com/dmitrijs2005/joinflow/internal/models"
)

// IdentityService is the remote collaborator behind both actions.
//
// Implementations report failures by returning an error; the controller
// converts every error into State.Error. Callers that need liveness should
// bound these calls with a timeout: the controller imposes none.
type IdentityService interface {
	CheckExistence(ctx context.Context, email string) (bool, error)
	RequestSigninLink(ctx context.Context, email, redirect, originURL string) (models.SigninLink, error)
	CreateAccount(ctx context.Context, user models.UserFields, org *models.OrganizationFields, redirect, originURL string) (models.Account, error)
}

// Options configures a Controller. All fields are optional.
type Options struct {
	// FixedMode pins the active form and disables switching.
	FixedMode Mode
	// DefaultMode is the initial form when FixedMode is not set.
	DefaultMode Mode
	// Redirect overrides the page the user returns to after following a link.
	Redirect string
	// OriginURL is the website the flow runs on, passed through to the service.
	OriginURL string
	// Location supplies the current path when Redirect is empty.
	Location Location
	// Routes turns the secondary action into navigation: when a route is set
	// for the target mode, SecondaryAction pushes it instead of flipping Mode.
	Routes map[Mode]string
	// Labels are presentation strings, opaque to the controller.
	Labels map[string]string
	// OnEffect receives every emitted effect after it has been dispatched.
	OnEffect func(Effect)
	Logger   logging.Logger
}

// Controller owns the state of one account-entry flow. It is safe for
// concurrent use; remote calls run outside the lock.
type Controller struct {
	svc  IdentityService
	nav  Navigator
	opts Options
	log  logging.Logger

	mu    sync.Mutex
	phase phase
	state State
}

// New creates a Controller in the Idle phase. The initial mode is
// opts.FixedMode, else opts.DefaultMode, else ModeSignIn.
func New(svc IdentityService, nav Navigator, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	mode := ModeSignIn
	switch {
	case opts.FixedMode.Valid():
		mode = opts.FixedMode
	case opts.DefaultMode.Valid():
		mode = opts.DefaultMode
	}

	return &Controller{
		svc:   svc,
		nav:   nav,
		opts:  opts,
		log:   log.With("module", "flow"),
		state: State{Mode: mode},
	}
}

// State returns a snapshot of the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Labels returns a copy of the host-supplied presentation labels.
func (c *Controller) Labels() map[string]string {
	return maps.Clone(c.opts.Labels)
}

// ModeFixed reports whether the host pinned the mode.
func (c *Controller) ModeFixed() bool {
	return c.opts.FixedMode.Valid()
}

// SetEmail updates the shared email draft. It is allowed at any time.
func (c *Controller) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Email = email
}

// SwitchMode flips the active form. Only Mode changes; the email draft,
// the error and the unknown-email flag are kept.
func (c *Controller) SwitchMode(target Mode) error {
	if !target.Valid() {
		return ErrInvalidMode
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opts.FixedMode.Valid() {
		return ErrModeFixed
	}
	if c.phase == phaseSubmitting {
		return ErrSubmitting
	}
	c.state.Mode = target
	return nil
}

// SecondaryAction is the "switch to the other form" control. When a route
// is configured for the other mode it navigates there, carrying the email
// draft; otherwise it behaves like SwitchMode.
func (c *Controller) SecondaryAction(ctx context.Context) (Result, error) {
	st := c.State()
	target := st.Mode.Other()

	if route := c.opts.Routes[target]; route != "" {
		if st.Submitting {
			return Result{State: st, Skipped: true}, ErrSubmitting
		}
		return c.emit(ctx, st, pushNamed(route, map[string]string{"email": st.Email})), nil
	}

	if err := c.SwitchMode(target); err != nil {
		return Result{State: c.State()}, err
	}
	return Result{State: c.State()}, nil
}

func (c *Controller) snapshot() State {
	st := c.state
	st.Submitting = c.phase == phaseSubmitting
	return st
}

// begin moves Idle -> Submitting and applies prepare under the lock.
// It returns false, leaving the state untouched, when already submitting.
func (c *Controller) begin(prepare func(s *State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == phaseSubmitting {
		return false
	}
	c.phase = phaseSubmitting
	prepare(&c.state)
	return true
}

// finish applies update and moves back to Idle.
func (c *Controller) finish(update func(s *State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	update(&c.state)
	c.phase = phaseIdle
	return c.snapshot()
}

func (c *Controller) skipped(ctx context.Context, action string) Result {
	c.log.Debug(ctx, "submission in flight, action dropped", "action", action)
	return Result{State: c.State(), Skipped: true}
}

// fail records a normalized error, returns to Idle and scrolls to top.
func (c *Controller) fail(ctx context.Context, action string, err error) Result {
	msg := NormalizeError(err)
	c.log.Warn(ctx, "flow action failed", "action", action, "error", err)
	st := c.finish(func(s *State) { s.Error = msg })
	return c.emit(ctx, st, scrollToTop())
}

// emit dispatches effects to the navigator and the OnEffect hook. It runs
// after the state transition so that callbacks may re-enter the controller.
func (c *Controller) emit(ctx context.Context, st State, effects ...Effect) Result {
	for _, e := range effects {
		switch e.Kind {
		case EffectReplace:
			if c.nav != nil {
				c.nav.Replace(e.URL)
			}
		case EffectPushNamed:
			if c.nav != nil {
				c.nav.PushNamed(e.Route, maps.Clone(e.Params))
			}
		}
		if c.opts.OnEffect != nil {
			c.opts.OnEffect(e)
		}
		c.log.Debug(ctx, "effect emitted", "effect", e.String())
	}
	return Result{State: st, Effects: effects}
}

func (c *Controller) redirect() string {
	return ResolveRedirect(c.opts.Redirect, c.opts.Location)
}
