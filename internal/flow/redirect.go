package flow

import (
	"net/url"
	"strings"
)

// ResolveRedirect computes the percent-encoded redirect target handed to the
// identity service: the explicit override if any, else the current path
// plus query string, else "/". The result travels inside another URL, so it
// is always encoded as a single opaque component.
func ResolveRedirect(override string, loc Location) string {
	target := override
	if target == "" && loc != nil {
		target = loc.Path()
		if q := loc.RawQuery(); q != "" {
			target += "?" + strings.TrimPrefix(q, "?")
		}
	}
	if target == "" {
		target = "/"
	}
	return encodeURIComponent(target)
}

// encodeURIComponent matches the browser function of the same name: spaces
// become %20 and the marks !'()* stay literal.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")

	r := strings.NewReplacer("%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")
	return r.Replace(escaped)
}
