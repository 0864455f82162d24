package ports

import (
	"context"
	"errors"

	"github.com/scepticulous/lita-github/internal/domain/models"
)

// ErrNotFound is returned when the remote entity (repo, org, team, user or
// pull request) does not exist. Handlers branch on it with errors.Is and turn
// it into a specific reply; it is never shown to the user as-is.
var ErrNotFound = errors.New("github: not found")

// InvalidOptionsError is returned when the remote service rejects a request
// because of a bad parameter (HTTP 422). Message carries the service's own
// explanation for display to the user.
type InvalidOptionsError struct {
	Message string
}

func (e *InvalidOptionsError) Error() string {
	return "github: invalid options: " + e.Message
}

// GitHubAPI is the narrow GitHub client contract the handlers depend on.
// Every list call fetches all pages before returning.
type GitHubAPI interface {
	RepositoryExists(ctx context.Context, fullName string) (bool, error)
	GetRepository(ctx context.Context, fullName string) (*models.Repository, error)
	CreateRepository(ctx context.Context, name string, opts models.RepoCreateOptions) error
	DeleteRepository(ctx context.Context, fullName string) error
	EditRepository(ctx context.Context, fullName string, edit models.RepoEdit) (*models.Repository, error)

	ListTeams(ctx context.Context, org string) ([]models.Team, error)
	GetTeam(ctx context.Context, org string, teamID int64) (*models.Team, error)
	CreateTeam(ctx context.Context, org, name, permission string) (*models.Team, error)
	DeleteTeam(ctx context.Context, org string, teamID int64) error
	AddTeamRepo(ctx context.Context, org string, teamID int64, fullName string) error
	RemoveTeamRepo(ctx context.Context, org string, teamID int64, fullName string) error
	ListRepoTeams(ctx context.Context, fullName string) ([]models.Team, error)

	GetUser(ctx context.Context, login string) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	ListUserOrgs(ctx context.Context, login string) ([]string, error)
	AddTeamMember(ctx context.Context, org string, teamID int64, login string) (bool, error)
	RemoveTeamMember(ctx context.Context, org string, teamID int64, login string) (bool, error)
	RemoveOrgMember(ctx context.Context, org, login string) (bool, error)

	ListPullRequests(ctx context.Context, fullName string) ([]models.PullRequest, error)
	GetPullRequest(ctx context.Context, fullName string, number int) (*models.PullRequest, error)
	MergePullRequest(ctx context.Context, fullName string, number int, commitMessage string) (*models.MergeResult, error)
	ListIssues(ctx context.Context, fullName string, opts models.IssueListOptions) ([]models.Issue, error)
	CombinedStatus(ctx context.Context, fullName, ref string) (string, error)

	SystemStatus(ctx context.Context) (*models.SystemStatus, error)
}
