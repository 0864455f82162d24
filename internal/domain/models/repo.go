package models

type (
	// Repository is the subset of a GitHub repository the bot reports on.
	Repository struct {
		FullName    string
		Description string
		Private     bool
		HTMLURL     string
		OpenIssues  int
	}

	// RepoCreateOptions carries the fields sent when creating a repository.
	RepoCreateOptions struct {
		Organization string
		TeamID       int64
		Private      bool
	}

	// RepoEdit is a partial repository update; nil fields are left untouched.
	RepoEdit struct {
		Name        *string
		Description *string
		Homepage    *string
	}
)
