package models

import "time"

type Organization struct {
	ID            string
	Name          string
	GithubHandle  string
	TwitterHandle string
	Website       string
	CreatedBy     string
	CreatedAt     time.Time
}

// MemberRoleAdmin is the role given to the user who creates an organization.
const MemberRoleAdmin = "ADMIN"
