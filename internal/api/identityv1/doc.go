// Package identityv1 declares the gRPC contract between the account-entry
// client and the identity server.
//
// Messages travel as google.protobuf.Struct values and are converted to and
// from the typed Go structs in this package, so no generated code is needed.
package identityv1
