package handlers

import (
	"context"

	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type MockGitHubAPI struct {
	mock.Mock
}

func (m *MockGitHubAPI) RepositoryExists(ctx context.Context, fullName string) (bool, error) {
	args := m.Called(ctx, fullName)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitHubAPI) GetRepository(ctx context.Context, fullName string) (*models.Repository, error) {
	args := m.Called(ctx, fullName)
	var repo *models.Repository
	if args.Get(0) != nil {
		repo = args.Get(0).(*models.Repository)
	}
	return repo, args.Error(1)
}

func (m *MockGitHubAPI) CreateRepository(ctx context.Context, name string, opts models.RepoCreateOptions) error {
	args := m.Called(ctx, name, opts)
	return args.Error(0)
}

func (m *MockGitHubAPI) DeleteRepository(ctx context.Context, fullName string) error {
	args := m.Called(ctx, fullName)
	return args.Error(0)
}

func (m *MockGitHubAPI) EditRepository(ctx context.Context, fullName string, edit models.RepoEdit) (*models.Repository, error) {
	args := m.Called(ctx, fullName, edit)
	var repo *models.Repository
	if args.Get(0) != nil {
		repo = args.Get(0).(*models.Repository)
	}
	return repo, args.Error(1)
}

func (m *MockGitHubAPI) ListTeams(ctx context.Context, org string) ([]models.Team, error) {
	args := m.Called(ctx, org)
	var teams []models.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]models.Team)
	}
	return teams, args.Error(1)
}

func (m *MockGitHubAPI) GetTeam(ctx context.Context, org string, teamID int64) (*models.Team, error) {
	args := m.Called(ctx, org, teamID)
	var team *models.Team
	if args.Get(0) != nil {
		team = args.Get(0).(*models.Team)
	}
	return team, args.Error(1)
}

func (m *MockGitHubAPI) CreateTeam(ctx context.Context, org, name, permission string) (*models.Team, error) {
	args := m.Called(ctx, org, name, permission)
	var team *models.Team
	if args.Get(0) != nil {
		team = args.Get(0).(*models.Team)
	}
	return team, args.Error(1)
}

func (m *MockGitHubAPI) DeleteTeam(ctx context.Context, org string, teamID int64) error {
	args := m.Called(ctx, org, teamID)
	return args.Error(0)
}

func (m *MockGitHubAPI) AddTeamRepo(ctx context.Context, org string, teamID int64, fullName string) error {
	args := m.Called(ctx, org, teamID, fullName)
	return args.Error(0)
}

func (m *MockGitHubAPI) RemoveTeamRepo(ctx context.Context, org string, teamID int64, fullName string) error {
	args := m.Called(ctx, org, teamID, fullName)
	return args.Error(0)
}

func (m *MockGitHubAPI) ListRepoTeams(ctx context.Context, fullName string) ([]models.Team, error) {
	args := m.Called(ctx, fullName)
	var teams []models.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]models.Team)
	}
	return teams, args.Error(1)
}

func (m *MockGitHubAPI) GetUser(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockGitHubAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockGitHubAPI) ListUserOrgs(ctx context.Context, login string) ([]string, error) {
	args := m.Called(ctx, login)
	var orgs []string
	if args.Get(0) != nil {
		orgs = args.Get(0).([]string)
	}
	return orgs, args.Error(1)
}

func (m *MockGitHubAPI) AddTeamMember(ctx context.Context, org string, teamID int64, login string) (bool, error) {
	args := m.Called(ctx, org, teamID, login)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitHubAPI) RemoveTeamMember(ctx context.Context, org string, teamID int64, login string) (bool, error) {
	args := m.Called(ctx, org, teamID, login)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitHubAPI) RemoveOrgMember(ctx context.Context, org, login string) (bool, error) {
	args := m.Called(ctx, org, login)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitHubAPI) ListPullRequests(ctx context.Context, fullName string) ([]models.PullRequest, error) {
	args := m.Called(ctx, fullName)
	var prs []models.PullRequest
	if args.Get(0) != nil {
		prs = args.Get(0).([]models.PullRequest)
	}
	return prs, args.Error(1)
}

func (m *MockGitHubAPI) GetPullRequest(ctx context.Context, fullName string, number int) (*models.PullRequest, error) {
	args := m.Called(ctx, fullName, number)
	var pr *models.PullRequest
	if args.Get(0) != nil {
		pr = args.Get(0).(*models.PullRequest)
	}
	return pr, args.Error(1)
}

func (m *MockGitHubAPI) MergePullRequest(ctx context.Context, fullName string, number int, commitMessage string) (*models.MergeResult, error) {
	args := m.Called(ctx, fullName, number, commitMessage)
	var result *models.MergeResult
	if args.Get(0) != nil {
		result = args.Get(0).(*models.MergeResult)
	}
	return result, args.Error(1)
}

func (m *MockGitHubAPI) ListIssues(ctx context.Context, fullName string, opts models.IssueListOptions) ([]models.Issue, error) {
	args := m.Called(ctx, fullName, opts)
	var issues []models.Issue
	if args.Get(0) != nil {
		issues = args.Get(0).([]models.Issue)
	}
	return issues, args.Error(1)
}

func (m *MockGitHubAPI) CombinedStatus(ctx context.Context, fullName, ref string) (string, error) {
	args := m.Called(ctx, fullName, ref)
	return args.String(0), args.Error(1)
}

func (m *MockGitHubAPI) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	args := m.Called(ctx)
	var status *models.SystemStatus
	if args.Get(0) != nil {
		status = args.Get(0).(*models.SystemStatus)
	}
	return status, args.Error(1)
}
