package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockRepositoriesService struct {
	mock.Mock
}

func (m *MockRepositoriesService) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	var r *github.Repository
	if args.Get(0) != nil {
		r = args.Get(0).(*github.Repository)
	}
	return r, respArg(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) Create(ctx context.Context, org string, repo *github.Repository) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, org, repo)
	var r *github.Repository
	if args.Get(0) != nil {
		r = args.Get(0).(*github.Repository)
	}
	return r, respArg(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) Delete(ctx context.Context, owner, repo string) (*github.Response, error) {
	args := m.Called(ctx, owner, repo)
	return respArg(args.Get(0)), args.Error(1)
}

func (m *MockRepositoriesService) Edit(ctx context.Context, owner, repo string, repository *github.Repository) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, owner, repo, repository)
	var r *github.Repository
	if args.Get(0) != nil {
		r = args.Get(0).(*github.Repository)
	}
	return r, respArg(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) ListTeams(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Team, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var teams []*github.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]*github.Team)
	}
	return teams, respArg(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) GetCombinedStatus(ctx context.Context, owner, repo, ref string, opts *github.ListOptions) (*github.CombinedStatus, *github.Response, error) {
	args := m.Called(ctx, owner, repo, ref, opts)
	var status *github.CombinedStatus
	if args.Get(0) != nil {
		status = args.Get(0).(*github.CombinedStatus)
	}
	return status, respArg(args.Get(1)), args.Error(2)
}

type MockTeamsService struct {
	mock.Mock
}

func (m *MockTeamsService) ListTeams(ctx context.Context, org string, opts *github.ListOptions) ([]*github.Team, *github.Response, error) {
	args := m.Called(ctx, org, opts)
	var teams []*github.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]*github.Team)
	}
	return teams, respArg(args.Get(1)), args.Error(2)
}

func (m *MockTeamsService) GetTeamByID(ctx context.Context, orgID, teamID int64) (*github.Team, *github.Response, error) {
	args := m.Called(ctx, orgID, teamID)
	var team *github.Team
	if args.Get(0) != nil {
		team = args.Get(0).(*github.Team)
	}
	return team, respArg(args.Get(1)), args.Error(2)
}

func (m *MockTeamsService) CreateTeam(ctx context.Context, org string, team github.NewTeam) (*github.Team, *github.Response, error) {
	args := m.Called(ctx, org, team)
	var t *github.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*github.Team)
	}
	return t, respArg(args.Get(1)), args.Error(2)
}

func (m *MockTeamsService) DeleteTeamByID(ctx context.Context, orgID, teamID int64) (*github.Response, error) {
	args := m.Called(ctx, orgID, teamID)
	return respArg(args.Get(0)), args.Error(1)
}

func (m *MockTeamsService) AddTeamMembershipByID(ctx context.Context, orgID, teamID int64, user string, opts *github.TeamAddTeamMembershipOptions) (*github.Membership, *github.Response, error) {
	args := m.Called(ctx, orgID, teamID, user, opts)
	var membership *github.Membership
	if args.Get(0) != nil {
		membership = args.Get(0).(*github.Membership)
	}
	return membership, respArg(args.Get(1)), args.Error(2)
}

func (m *MockTeamsService) RemoveTeamMembershipByID(ctx context.Context, orgID, teamID int64, user string) (*github.Response, error) {
	args := m.Called(ctx, orgID, teamID, user)
	return respArg(args.Get(0)), args.Error(1)
}

func (m *MockTeamsService) AddTeamRepoByID(ctx context.Context, orgID, teamID int64, owner, repo string, opts *github.TeamAddTeamRepoOptions) (*github.Response, error) {
	args := m.Called(ctx, orgID, teamID, owner, repo, opts)
	return respArg(args.Get(0)), args.Error(1)
}

func (m *MockTeamsService) RemoveTeamRepoByID(ctx context.Context, orgID, teamID int64, owner, repo string) (*github.Response, error) {
	args := m.Called(ctx, orgID, teamID, owner, repo)
	return respArg(args.Get(0)), args.Error(1)
}

type MockOrganizationsService struct {
	mock.Mock
}

func (m *MockOrganizationsService) Get(ctx context.Context, org string) (*github.Organization, *github.Response, error) {
	args := m.Called(ctx, org)
	var o *github.Organization
	if args.Get(0) != nil {
		o = args.Get(0).(*github.Organization)
	}
	return o, respArg(args.Get(1)), args.Error(2)
}

func (m *MockOrganizationsService) List(ctx context.Context, user string, opts *github.ListOptions) ([]*github.Organization, *github.Response, error) {
	args := m.Called(ctx, user, opts)
	var orgs []*github.Organization
	if args.Get(0) != nil {
		orgs = args.Get(0).([]*github.Organization)
	}
	return orgs, respArg(args.Get(1)), args.Error(2)
}

func (m *MockOrganizationsService) RemoveMember(ctx context.Context, org, user string) (*github.Response, error) {
	args := m.Called(ctx, org, user)
	return respArg(args.Get(0)), args.Error(1)
}

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	var u *github.User
	if args.Get(0) != nil {
		u = args.Get(0).(*github.User)
	}
	return u, respArg(args.Get(1)), args.Error(2)
}

type MockPullRequestsService struct {
	mock.Mock
}

func (m *MockPullRequestsService) List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var prs []*github.PullRequest
	if args.Get(0) != nil {
		prs = args.Get(0).([]*github.PullRequest)
	}
	return prs, respArg(args.Get(1)), args.Error(2)
}

func (m *MockPullRequestsService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	var pr *github.PullRequest
	if args.Get(0) != nil {
		pr = args.Get(0).(*github.PullRequest)
	}
	return pr, respArg(args.Get(1)), args.Error(2)
}

func (m *MockPullRequestsService) Merge(ctx context.Context, owner, repo string, number int, commitMessage string, opts *github.PullRequestOptions) (*github.PullRequestMergeResult, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, commitMessage, opts)
	var result *github.PullRequestMergeResult
	if args.Get(0) != nil {
		result = args.Get(0).(*github.PullRequestMergeResult)
	}
	return result, respArg(args.Get(1)), args.Error(2)
}

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var issues []*github.Issue
	if args.Get(0) != nil {
		issues = args.Get(0).([]*github.Issue)
	}
	return issues, respArg(args.Get(1)), args.Error(2)
}

type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	var resp *http.Response
	if args.Get(0) != nil {
		resp = args.Get(0).(*http.Response)
	}
	return resp, args.Error(1)
}

func respArg(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}
