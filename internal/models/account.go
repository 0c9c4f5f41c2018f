// Package models holds the account-entry types shared by the flow
// controller, the identity client and the identity server.
package models

// UserFields is the personal part of a create-profile submission.
type UserFields struct {
	Email           string
	Name            string
	NewsletterOptIn bool
}

// OrganizationFields is the optional organization part of a create-profile
// submission. A nil *OrganizationFields means "no organization", which is
// not the same as an organization with a blank name.
type OrganizationFields struct {
	Name          string
	GithubHandle  string
	TwitterHandle string
	Website       string
}

// IsEmpty reports whether no organization field is populated.
func (o OrganizationFields) IsEmpty() bool {
	return o.Name == "" && o.GithubHandle == "" && o.TwitterHandle == "" && o.Website == ""
}

// Account is what the identity service returns after creating a profile.
type Account struct {
	ID    string
	Email string
	Name  string
}

// SigninLink is the identity service's answer to a sign-in link request.
// Redirect is set only when the service resolved the link itself (test or
// sandbox accounts); callers should then go there directly.
type SigninLink struct {
	Redirect string
}
