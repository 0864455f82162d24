package models

type (
	// Issue is a repository issue. The issues endpoint also returns pull
	// requests; IsPullRequest marks those so callers can filter them out.
	Issue struct {
		Number        int
		Title         string
		HTMLURL       string
		UserLogin     string
		IsPullRequest bool
	}

	// IssueListOptions are the user-facing filters for listing issues.
	// Empty fields are omitted from the API request.
	IssueListOptions struct {
		State     string
		Sort      string
		Direction string
	}
)
