package github

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	repos  *MockRepositoriesService
	teams  *MockTeamsService
	orgs   *MockOrganizationsService
	users  *MockUsersService
	prs    *MockPullRequestsService
	issues *MockIssuesService
	http   *MockHTTPClient
}

func newTestClient() (*Client, *testServices) {
	svc := &testServices{
		repos:  &MockRepositoriesService{},
		teams:  &MockTeamsService{},
		orgs:   &MockOrganizationsService{},
		users:  &MockUsersService{},
		prs:    &MockPullRequestsService{},
		issues: &MockIssuesService{},
		http:   &MockHTTPClient{},
	}
	client := NewClientWithServices(svc.repos, svc.teams, svc.orgs, svc.users, svc.prs, svc.issues, svc.http)
	return client, svc
}

func notFoundErr() (*github.Response, error) {
	resp := &github.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}
	return resp, &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  "Not Found",
	}
}

func TestClientRepositoryExists(t *testing.T) {
	t.Run("reports true when the repo resolves", func(t *testing.T) {
		client, svc := newTestClient()
		svc.repos.On("Get", mock.Anything, "GrapeDuty", "lita-test").
			Return(&github.Repository{FullName: github.Ptr("GrapeDuty/lita-test")}, &github.Response{}, nil)

		exists, err := client.RepositoryExists(context.Background(), "GrapeDuty/lita-test")

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("reports false on a 404 without surfacing an error", func(t *testing.T) {
		client, svc := newTestClient()
		resp, err := notFoundErr()
		svc.repos.On("Get", mock.Anything, "GrapeDuty", "lita-test").Return(nil, resp, err)

		exists, lookupErr := client.RepositoryExists(context.Background(), "GrapeDuty/lita-test")

		require.NoError(t, lookupErr)
		assert.False(t, exists)
	})

	t.Run("propagates other API failures", func(t *testing.T) {
		client, svc := newTestClient()
		svc.repos.On("Get", mock.Anything, "GrapeDuty", "lita-test").
			Return(nil, nil, errors.New("rate limited"))

		_, err := client.RepositoryExists(context.Background(), "GrapeDuty/lita-test")

		assert.Error(t, err)
	})

	t.Run("rejects a name without an owner", func(t *testing.T) {
		client, _ := newTestClient()

		_, err := client.RepositoryExists(context.Background(), "lita-test")

		assert.Error(t, err)
	})
}

func TestClientCreateRepository(t *testing.T) {
	t.Run("sends privacy and team id", func(t *testing.T) {
		client, svc := newTestClient()
		svc.repos.On("Create", mock.Anything, "GrapeDuty", mock.MatchedBy(func(r *github.Repository) bool {
			return r.GetName() == "lita-test" && r.GetPrivate() && r.GetTeamID() == 42
		})).Return(&github.Repository{}, &github.Response{}, nil)

		err := client.CreateRepository(context.Background(), "lita-test", models.RepoCreateOptions{
			Organization: "GrapeDuty",
			TeamID:       42,
			Private:      true,
		})

		assert.NoError(t, err)
		svc.repos.AssertExpectations(t)
	})

	t.Run("omits the team id when unset", func(t *testing.T) {
		client, svc := newTestClient()
		svc.repos.On("Create", mock.Anything, "GrapeDuty", mock.MatchedBy(func(r *github.Repository) bool {
			return r.TeamID == nil
		})).Return(&github.Repository{}, &github.Response{}, nil)

		err := client.CreateRepository(context.Background(), "lita-test", models.RepoCreateOptions{
			Organization: "GrapeDuty",
		})

		assert.NoError(t, err)
	})
}

func TestClientGetRepository(t *testing.T) {
	t.Run("maps the repository fields", func(t *testing.T) {
		client, svc := newTestClient()
		svc.repos.On("Get", mock.Anything, "GrapeDuty", "lita-test").Return(&github.Repository{
			FullName:        github.Ptr("GrapeDuty/lita-test"),
			Description:     github.Ptr("unit testing"),
			Private:         github.Ptr(true),
			HTMLURL:         github.Ptr("https://github.com/GrapeDuty/lita-test"),
			OpenIssuesCount: github.Ptr(10),
		}, &github.Response{}, nil)

		repo, err := client.GetRepository(context.Background(), "GrapeDuty/lita-test")

		require.NoError(t, err)
		assert.Equal(t, "GrapeDuty/lita-test", repo.FullName)
		assert.Equal(t, "unit testing", repo.Description)
		assert.True(t, repo.Private)
		assert.Equal(t, 10, repo.OpenIssues)
	})

	t.Run("maps a 404 to ErrNotFound", func(t *testing.T) {
		client, svc := newTestClient()
		resp, err := notFoundErr()
		svc.repos.On("Get", mock.Anything, "GrapeDuty", "lita-test").Return(nil, resp, err)

		_, lookupErr := client.GetRepository(context.Background(), "GrapeDuty/lita-test")

		assert.ErrorIs(t, lookupErr, ports.ErrNotFound)
	})
}

func TestClientEditRepository(t *testing.T) {
	t.Run("keeps the current name on partial updates", func(t *testing.T) {
		client, svc := newTestClient()
		svc.repos.On("Edit", mock.Anything, "GrapeDuty", "lita-test", mock.MatchedBy(func(r *github.Repository) bool {
			return r.GetName() == "lita-test" && r.GetDescription() == "new desc"
		})).Return(&github.Repository{FullName: github.Ptr("GrapeDuty/lita-test")}, &github.Response{}, nil)

		_, err := client.EditRepository(context.Background(), "GrapeDuty/lita-test", models.RepoEdit{
			Description: github.Ptr("new desc"),
		})

		assert.NoError(t, err)
		svc.repos.AssertExpectations(t)
	})

	t.Run("sends the new name on renames", func(t *testing.T) {
		client, svc := newTestClient()
		svc.repos.On("Edit", mock.Anything, "GrapeDuty", "lita-test", mock.MatchedBy(func(r *github.Repository) bool {
			return r.GetName() == "lita-test-2"
		})).Return(&github.Repository{FullName: github.Ptr("GrapeDuty/lita-test-2")}, &github.Response{}, nil)

		_, err := client.EditRepository(context.Background(), "GrapeDuty/lita-test", models.RepoEdit{
			Name: github.Ptr("lita-test-2"),
		})

		assert.NoError(t, err)
	})
}

func TestClientListTeams(t *testing.T) {
	t.Run("collects every page", func(t *testing.T) {
		client, svc := newTestClient()
		first := []*github.Team{{ID: github.Ptr(int64(1)), Name: github.Ptr("Owners"), Slug: github.Ptr("owners"), Permission: github.Ptr("admin")}}
		second := []*github.Team{{ID: github.Ptr(int64(42)), Name: github.Ptr("HeckmanTest"), Slug: github.Ptr("heckmantest"), Permission: github.Ptr("push")}}

		svc.teams.On("ListTeams", mock.Anything, "GrapeDuty", mock.MatchedBy(func(o *github.ListOptions) bool {
			return o.Page == 0
		})).Return(first, &github.Response{NextPage: 2}, nil).Once()
		svc.teams.On("ListTeams", mock.Anything, "GrapeDuty", mock.MatchedBy(func(o *github.ListOptions) bool {
			return o.Page == 2
		})).Return(second, &github.Response{}, nil).Once()

		teams, err := client.ListTeams(context.Background(), "GrapeDuty")

		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Equal(t, "owners", teams[0].Slug)
		assert.Equal(t, int64(42), teams[1].ID)
	})

	t.Run("maps a missing org to ErrNotFound", func(t *testing.T) {
		client, svc := newTestClient()
		resp, err := notFoundErr()
		svc.teams.On("ListTeams", mock.Anything, "GrapeDuty", mock.Anything).Return(nil, resp, err)

		_, listErr := client.ListTeams(context.Background(), "GrapeDuty")

		assert.ErrorIs(t, listErr, ports.ErrNotFound)
	})
}

func TestClientGetTeam(t *testing.T) {
	t.Run("resolves the org id first", func(t *testing.T) {
		client, svc := newTestClient()
		svc.orgs.On("Get", mock.Anything, "GrapeDuty").
			Return(&github.Organization{ID: github.Ptr(int64(1001))}, &github.Response{}, nil)
		svc.teams.On("GetTeamByID", mock.Anything, int64(1001), int64(42)).
			Return(&github.Team{ID: github.Ptr(int64(42)), Name: github.Ptr("HeckmanTest"), Slug: github.Ptr("heckmantest")}, &github.Response{}, nil)

		team, err := client.GetTeam(context.Background(), "GrapeDuty", 42)

		require.NoError(t, err)
		assert.Equal(t, "HeckmanTest", team.Name)
		svc.orgs.AssertExpectations(t)
	})

	t.Run("maps a missing team to ErrNotFound", func(t *testing.T) {
		client, svc := newTestClient()
		svc.orgs.On("Get", mock.Anything, "GrapeDuty").
			Return(&github.Organization{ID: github.Ptr(int64(1001))}, &github.Response{}, nil)
		resp, err := notFoundErr()
		svc.teams.On("GetTeamByID", mock.Anything, int64(1001), int64(42)).Return(nil, resp, err)

		_, getErr := client.GetTeam(context.Background(), "GrapeDuty", 42)

		assert.ErrorIs(t, getErr, ports.ErrNotFound)
	})
}

func TestClientCreateTeam(t *testing.T) {
	client, svc := newTestClient()
	svc.teams.On("CreateTeam", mock.Anything, "GrapeDuty", mock.MatchedBy(func(nt github.NewTeam) bool {
		return nt.Name == "HeckmanTest" && nt.Permission != nil && *nt.Permission == "pull"
	})).Return(&github.Team{
		ID: github.Ptr(int64(42)), Name: github.Ptr("HeckmanTest"),
		Slug: github.Ptr("heckmantest"), Permission: github.Ptr("pull"),
	}, &github.Response{}, nil)

	team, err := client.CreateTeam(context.Background(), "GrapeDuty", "HeckmanTest", "pull")

	require.NoError(t, err)
	assert.Equal(t, int64(42), team.ID)
	assert.Equal(t, "heckmantest", team.Slug)
}

func TestClientAddTeamMember(t *testing.T) {
	expectOrg := func(svc *testServices) {
		svc.orgs.On("Get", mock.Anything, "GrapeDuty").
			Return(&github.Organization{ID: github.Ptr(int64(1001))}, &github.Response{}, nil)
	}
	membership := func(state string) *github.Membership {
		return &github.Membership{State: github.Ptr(state)}
	}

	t.Run("reports an active membership as added", func(t *testing.T) {
		client, svc := newTestClient()
		expectOrg(svc)
		svc.teams.On("AddTeamMembershipByID", mock.Anything, int64(1001), int64(42), "theckman", (*github.TeamAddTeamMembershipOptions)(nil)).
			Return(membership("active"), &github.Response{}, nil)

		ok, err := client.AddTeamMember(context.Background(), "GrapeDuty", 42, "theckman")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("counts a pending invitation as added", func(t *testing.T) {
		client, svc := newTestClient()
		expectOrg(svc)
		svc.teams.On("AddTeamMembershipByID", mock.Anything, int64(1001), int64(42), "theckman", (*github.TeamAddTeamMembershipOptions)(nil)).
			Return(membership("pending"), &github.Response{}, nil)

		ok, err := client.AddTeamMember(context.Background(), "GrapeDuty", 42, "theckman")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reports any other state as not added", func(t *testing.T) {
		client, svc := newTestClient()
		expectOrg(svc)
		svc.teams.On("AddTeamMembershipByID", mock.Anything, int64(1001), int64(42), "theckman", (*github.TeamAddTeamMembershipOptions)(nil)).
			Return(membership(""), &github.Response{}, nil)

		ok, err := client.AddTeamMember(context.Background(), "GrapeDuty", 42, "theckman")

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestClientRemoveOrgMember(t *testing.T) {
	t.Run("returns true on success", func(t *testing.T) {
		client, svc := newTestClient()
		svc.orgs.On("RemoveMember", mock.Anything, "GrapeDuty", "theckman").
			Return(&github.Response{}, nil)

		ok, err := client.RemoveOrgMember(context.Background(), "GrapeDuty", "theckman")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("maps a 404 to ErrNotFound", func(t *testing.T) {
		client, svc := newTestClient()
		resp, err := notFoundErr()
		svc.orgs.On("RemoveMember", mock.Anything, "GrapeDuty", "theckman").Return(resp, err)

		ok, removeErr := client.RemoveOrgMember(context.Background(), "GrapeDuty", "theckman")

		assert.False(t, ok)
		assert.ErrorIs(t, removeErr, ports.ErrNotFound)
	})
}

func TestClientListUserOrgs(t *testing.T) {
	client, svc := newTestClient()
	orgs := []*github.Organization{
		{Login: github.Ptr("PagerDuty")},
		{Login: github.Ptr("GrapeDuty")},
	}
	svc.orgs.On("List", mock.Anything, "theckman", mock.Anything).
		Return(orgs, &github.Response{}, nil)

	logins, err := client.ListUserOrgs(context.Background(), "theckman")

	require.NoError(t, err)
	assert.Equal(t, []string{"PagerDuty", "GrapeDuty"}, logins)
}

func TestClientMergePullRequest(t *testing.T) {
	t.Run("maps the merge result", func(t *testing.T) {
		client, svc := newTestClient()
		svc.prs.On("Merge", mock.Anything, "GrapeDuty", "lita-test", 42, "Merge pull request #42", (*github.PullRequestOptions)(nil)).
			Return(&github.PullRequestMergeResult{
				SHA:     github.Ptr("abc456"),
				Merged:  github.Ptr(true),
				Message: github.Ptr("Pull Request successfully merged"),
			}, &github.Response{}, nil)

		result, err := client.MergePullRequest(context.Background(), "GrapeDuty/lita-test", 42, "Merge pull request #42")

		require.NoError(t, err)
		assert.True(t, result.Merged)
		assert.Equal(t, "abc456", result.SHA)
	})

	t.Run("turns a 405 into a failed result instead of an error", func(t *testing.T) {
		client, svc := newTestClient()
		mergeErr := &github.ErrorResponse{
			Response: &http.Response{StatusCode: http.StatusMethodNotAllowed},
			Message:  "Pull Request is not mergeable",
		}
		svc.prs.On("Merge", mock.Anything, "GrapeDuty", "lita-test", 42, mock.Anything, (*github.PullRequestOptions)(nil)).
			Return(nil, &github.Response{Response: &http.Response{StatusCode: http.StatusMethodNotAllowed}}, mergeErr)

		result, err := client.MergePullRequest(context.Background(), "GrapeDuty/lita-test", 42, "msg")

		require.NoError(t, err)
		assert.False(t, result.Merged)
		assert.Equal(t, "Pull Request is not mergeable", result.Message)
	})

	t.Run("propagates other failures", func(t *testing.T) {
		client, svc := newTestClient()
		svc.prs.On("Merge", mock.Anything, "GrapeDuty", "lita-test", 42, mock.Anything, (*github.PullRequestOptions)(nil)).
			Return(nil, nil, errors.New("boom"))

		_, err := client.MergePullRequest(context.Background(), "GrapeDuty/lita-test", 42, "msg")

		assert.Error(t, err)
	})
}

func TestClientListIssues(t *testing.T) {
	t.Run("passes the filters through", func(t *testing.T) {
		client, svc := newTestClient()
		svc.issues.On("ListByRepo", mock.Anything, "GrapeDuty", "lita-test", mock.MatchedBy(func(o *github.IssueListByRepoOptions) bool {
			return o.State == "closed" && o.Sort == "updated" && o.Direction == "asc"
		})).Return([]*github.Issue{}, &github.Response{}, nil)

		_, err := client.ListIssues(context.Background(), "GrapeDuty/lita-test", models.IssueListOptions{
			State: "closed", Sort: "updated", Direction: "asc",
		})

		assert.NoError(t, err)
		svc.issues.AssertExpectations(t)
	})

	t.Run("marks pull requests in the result", func(t *testing.T) {
		client, svc := newTestClient()
		issues := []*github.Issue{
			{Number: github.Ptr(42), Title: github.Ptr("XYXYXYXY"), User: &github.User{Login: github.Ptr("theckman")}},
			{Number: github.Ptr(43), PullRequestLinks: &github.PullRequestLinks{URL: github.Ptr("https://api.github.com/x")}},
		}
		svc.issues.On("ListByRepo", mock.Anything, "GrapeDuty", "lita-test", mock.Anything).
			Return(issues, &github.Response{}, nil)

		result, err := client.ListIssues(context.Background(), "GrapeDuty/lita-test", models.IssueListOptions{})

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.False(t, result[0].IsPullRequest)
		assert.True(t, result[1].IsPullRequest)
	})

	t.Run("maps a 422 to InvalidOptionsError", func(t *testing.T) {
		client, svc := newTestClient()
		apiErr := &github.ErrorResponse{
			Response: &http.Response{StatusCode: http.StatusUnprocessableEntity},
			Message:  "Validation Failed",
		}
		svc.issues.On("ListByRepo", mock.Anything, "GrapeDuty", "lita-test", mock.Anything).
			Return(nil, &github.Response{Response: &http.Response{StatusCode: http.StatusUnprocessableEntity}}, apiErr)

		_, err := client.ListIssues(context.Background(), "GrapeDuty/lita-test", models.IssueListOptions{})

		var invalid *ports.InvalidOptionsError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "Validation Failed", invalid.Message)
	})
}

func TestClientCombinedStatus(t *testing.T) {
	client, svc := newTestClient()
	svc.repos.On("GetCombinedStatus", mock.Anything, "GrapeDuty", "lita-test", "abc7312", (*github.ListOptions)(nil)).
		Return(&github.CombinedStatus{State: github.Ptr("success")}, &github.Response{}, nil)

	state, err := client.CombinedStatus(context.Background(), "GrapeDuty/lita-test", "abc7312")

	require.NoError(t, err)
	assert.Equal(t, "success", state)
}

func TestClientSystemStatus(t *testing.T) {
	statusBody := func(indicator, description string) *http.Response {
		body := `{
			"page": {"updated_at": "1970-01-01T00:00:21Z"},
			"status": {"indicator": "` + indicator + `", "description": "` + description + `"}
		}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}
	}

	t.Run("maps none to good", func(t *testing.T) {
		client, svc := newTestClient()
		svc.http.On("Do", mock.Anything).Return(statusBody("none", "All Systems Operational"), nil)

		status, err := client.SystemStatus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.StatusGood, status.Status)
	})

	t.Run("maps minor and keeps the message", func(t *testing.T) {
		client, svc := newTestClient()
		svc.http.On("Do", mock.Anything).Return(statusBody("minor", "Minor issue"), nil)

		status, err := client.SystemStatus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.StatusMinor, status.Status)
		assert.Equal(t, "Minor issue", status.Body)
		assert.Equal(t, "1970-01-01 00:00:21 UTC", status.CreatedOn)
	})

	t.Run("maps critical to major", func(t *testing.T) {
		client, svc := newTestClient()
		svc.http.On("Do", mock.Anything).Return(statusBody("critical", "Major issue"), nil)

		status, err := client.SystemStatus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.StatusMajor, status.Status)
	})

	t.Run("fails on a non-200 response", func(t *testing.T) {
		client, svc := newTestClient()
		svc.http.On("Do", mock.Anything).Return(&http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(bytes.NewBufferString("")),
		}, nil)

		_, err := client.SystemStatus(context.Background())

		assert.Error(t, err)
	})
}
