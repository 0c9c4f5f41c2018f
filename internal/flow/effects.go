package flow

import (
	"fmt"
	"maps"
)

// EffectKind enumerates side effects emitted alongside state transitions.
type EffectKind int

const (
	EffectScrollToTop EffectKind = iota + 1
	EffectReplace
	EffectPushNamed
)

// Effect describes a fire-and-forget side effect for the presentation
// layer. URL is set for EffectReplace; Route and Params for EffectPushNamed.
type Effect struct {
	Kind   EffectKind
	URL    string
	Route  string
	Params map[string]string
}

func scrollToTop() Effect {
	return Effect{Kind: EffectScrollToTop}
}

func replaceWith(url string) Effect {
	return Effect{Kind: EffectReplace, URL: url}
}

func pushNamed(route string, params map[string]string) Effect {
	return Effect{Kind: EffectPushNamed, Route: route, Params: maps.Clone(params)}
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectScrollToTop:
		return "scroll-to-top"
	case EffectReplace:
		return "replace(" + e.URL + ")"
	case EffectPushNamed:
		return fmt.Sprintf("push(%s, %v)", e.Route, e.Params)
	default:
		return "unknown"
	}
}

// Navigator performs navigation on behalf of the controller.
type Navigator interface {
	// Replace leaves the flow for an external URL.
	Replace(url string)
	// PushNamed lands on a named route of the hosting application.
	PushNamed(route string, params map[string]string)
}

// Location is the hosting context's current navigable location, used to
// round-trip the user back after they follow an emailed link.
type Location interface {
	Path() string
	RawQuery() string
}

// Result is what every controller action returns: the state after the
// action and the effects it emitted. Skipped is true when the action was
// dropped because another submission was in flight.
type Result struct {
	State   State
	Effects []Effect
	Skipped bool
}
