package models

import "time"

// User is a GitHub user profile. Name, Company, Location and Email are
// optional on GitHub's side and may be empty.
type User struct {
	ID          int64
	Login       string
	Name        string
	Company     string
	Location    string
	Email       string
	HTMLURL     string
	SiteAdmin   bool
	PublicRepos int
	PublicGists int
	Followers   int
	Following   int
	CreatedAt   time.Time
}
