// Package navigator renders flow navigation on a terminal.
package navigator

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/joinflow/internal/common"
)

// Route is a named destination. Path and Message may contain {param}
// placeholders; in Path they are query-escaped.
type Route struct {
	Path    string
	Message string
}

const (
	RouteSignIn        = "signin"
	RouteCreateAccount = "createAccount"
)

// DefaultRoutes returns the routes the CLI knows about.
func DefaultRoutes() map[string]Route {
	return map[string]Route{
		common.SigninLinkSentRoute: {
			Path:    "/signin/sent?email={email}",
			Message: "We sent a sign-in link to {email}. Check your inbox.",
		},
		RouteSignIn: {
			Path:    "/signin?email={email}",
			Message: "Sign in with your email.",
		},
		RouteCreateAccount: {
			Path:    "/create-account?email={email}",
			Message: "Create your profile.",
		},
	}
}

// Console implements flow.Navigator and flow.Location for the CLI.
type Console struct {
	out    io.Writer
	routes map[string]Route

	mu       sync.Mutex
	path     string
	rawQuery string
	route    string
	external string
}

// NewConsole starts at startPath, which may carry a query string.
func NewConsole(out io.Writer, routes map[string]Route, startPath string) *Console {
	if routes == nil {
		routes = DefaultRoutes()
	}
	c := &Console{out: out, routes: routes}
	c.path, c.rawQuery = splitPath(startPath)
	return c
}

func splitPath(p string) (string, string) {
	path, query, _ := strings.Cut(p, "?")
	if path == "" {
		path = "/"
	}
	return path, query
}

// Replace leaves the flow for an external URL.
func (c *Console) Replace(u string) {
	c.mu.Lock()
	c.external = u
	c.mu.Unlock()

	fmt.Fprintf(c.out, "Opening %s\n", u)
}

// PushNamed moves to a named route. Unknown routes are reported and
// leave the location unchanged.
func (c *Console) PushNamed(route string, params map[string]string) {
	r, ok := c.routes[route]
	if !ok {
		fmt.Fprintf(c.out, "Unknown route %q\n", route)
		return
	}

	target := expand(r.Path, params, url.QueryEscape)

	c.mu.Lock()
	c.path, c.rawQuery = splitPath(target)
	c.route = route
	c.mu.Unlock()

	fmt.Fprintf(c.out, "-> %s\n", target)
	if r.Message != "" {
		fmt.Fprintln(c.out, expand(r.Message, params, nil))
	}
}

func (c *Console) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

func (c *Console) RawQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rawQuery
}

// Route is the name of the last route pushed, or "" if none.
func (c *Console) Route() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// External is the last URL passed to Replace, or "".
func (c *Console) External() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.external
}

// expand substitutes {name} placeholders. Placeholders without a value
// are dropped.
func expand(tmpl string, params map[string]string, escape func(string) string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(tmpl, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(tmpl[start:], '}')
		if end < 0 {
			break
		}
		b.WriteString(tmpl[:start])
		v := params[tmpl[start+1:start+end]]
		if escape != nil {
			v = escape(v)
		}
		b.WriteString(v)
		tmpl = tmpl[start+end+1:]
	}
	b.WriteString(tmpl)
	return b.String()
}
