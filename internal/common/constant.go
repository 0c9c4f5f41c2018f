// Package common contains shared constants and sentinel errors used across
// joinflow components.
package common

// RequestIDHeaderName is the gRPC metadata key carrying the caller-generated
// request id on outbound requests.
const RequestIDHeaderName = "x-request-id"

// OriginHeaderName is the gRPC metadata key carrying the website URL the
// flow runs on.
const OriginHeaderName = "x-origin-url"

// SigninLinkSentRoute is the route name of the "check your inbox" screen.
const SigninLinkSentRoute = "signinLinkSent"
