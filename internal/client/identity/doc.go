// Package identity is the gRPC adapter between the account-entry flow and
// the identity server.
package identity
