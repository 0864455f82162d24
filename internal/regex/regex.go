// Package regex centralizes the pattern fragments shared by the command
// routes.
package regex

const (
	// Alias is the command prefix, accepting both the short and long form.
	Alias = `(?:gh|github)\s+`

	// RepoRef matches Org/repo or a bare repo name. The org group stays
	// empty for a bare name so the configured default org can fill it.
	RepoRef = `(?:(?P<org>[a-zA-Z0-9_\-]+)\s*/)?\s*(?P<repo>[a-zA-Z0-9_\-]+)`

	// Org, Team and User match the single-word identifier arguments.
	Org  = `(?P<org>[a-zA-Z0-9_\-]+)`
	Team = `(?P<team>[a-zA-Z0-9_\-]+)`
	User = `(?P<username>[a-zA-Z0-9_\-]+)`
)
