package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/scepticulous/lita-github/internal/infrastructure/httpclient"
	"golang.org/x/oauth2"
)

var _ ports.GitHubAPI = (*Client)(nil)

type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	Create(ctx context.Context, org string, repo *github.Repository) (*github.Repository, *github.Response, error)
	Delete(ctx context.Context, owner, repo string) (*github.Response, error)
	Edit(ctx context.Context, owner, repo string, repository *github.Repository) (*github.Repository, *github.Response, error)
	ListTeams(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Team, *github.Response, error)
	GetCombinedStatus(ctx context.Context, owner, repo, ref string, opts *github.ListOptions) (*github.CombinedStatus, *github.Response, error)
}

type TeamsService interface {
	ListTeams(ctx context.Context, org string, opts *github.ListOptions) ([]*github.Team, *github.Response, error)
	GetTeamByID(ctx context.Context, orgID, teamID int64) (*github.Team, *github.Response, error)
	CreateTeam(ctx context.Context, org string, team github.NewTeam) (*github.Team, *github.Response, error)
	DeleteTeamByID(ctx context.Context, orgID, teamID int64) (*github.Response, error)
	AddTeamMembershipByID(ctx context.Context, orgID, teamID int64, user string, opts *github.TeamAddTeamMembershipOptions) (*github.Membership, *github.Response, error)
	RemoveTeamMembershipByID(ctx context.Context, orgID, teamID int64, user string) (*github.Response, error)
	AddTeamRepoByID(ctx context.Context, orgID, teamID int64, owner, repo string, opts *github.TeamAddTeamRepoOptions) (*github.Response, error)
	RemoveTeamRepoByID(ctx context.Context, orgID, teamID int64, owner, repo string) (*github.Response, error)
}

type OrganizationsService interface {
	Get(ctx context.Context, org string) (*github.Organization, *github.Response, error)
	List(ctx context.Context, user string, opts *github.ListOptions) ([]*github.Organization, *github.Response, error)
	RemoveMember(ctx context.Context, org, user string) (*github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error)
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	Merge(ctx context.Context, owner, repo string, number int, commitMessage string, opts *github.PullRequestOptions) (*github.PullRequestMergeResult, *github.Response, error)
}

type IssuesService interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

// Client implements ports.GitHubAPI on top of the go-github services plus
// the public status page.
type Client struct {
	repos      RepositoriesService
	teams      TeamsService
	orgs       OrganizationsService
	users      UsersService
	prs        PullRequestsService
	issues     IssuesService
	httpClient httpclient.HTTPClient
	statusURL  string
}

func NewClient(token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(hc)
	return &Client{
		repos:      client.Repositories,
		teams:      client.Teams,
		orgs:       client.Organizations,
		users:      client.Users,
		prs:        client.PullRequests,
		issues:     client.Issues,
		httpClient: &http.Client{},
		statusURL:  defaultStatusURL,
	}
}

func NewClientWithServices(
	repos RepositoriesService,
	teams TeamsService,
	orgs OrganizationsService,
	users UsersService,
	prs PullRequestsService,
	issues IssuesService,
	httpClient httpclient.HTTPClient,
) *Client {
	return &Client{
		repos:      repos,
		teams:      teams,
		orgs:       orgs,
		users:      users,
		prs:        prs,
		issues:     issues,
		httpClient: httpClient,
		statusURL:  defaultStatusURL,
	}
}

func splitFullName(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed repository name: %s", fullName)
	}
	return parts[0], parts[1], nil
}

func isNotFound(resp *github.Response, err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusNotFound
	}
	return resp != nil && resp.StatusCode == http.StatusNotFound
}

func asInvalidOptions(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusUnprocessableEntity {
		return &ports.InvalidOptionsError{Message: ghErr.Message}
	}
	return nil
}

// orgID resolves the numeric organization ID required by the team ByID
// endpoints.
func (c *Client) orgID(ctx context.Context, org string) (int64, error) {
	o, resp, err := c.orgs.Get(ctx, org)
	if err != nil {
		if isNotFound(resp, err) {
			return 0, ports.ErrNotFound
		}
		return 0, err
	}
	return o.GetID(), nil
}

func (c *Client) RepositoryExists(ctx context.Context, fullName string) (bool, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return false, err
	}

	_, resp, err := c.repos.Get(ctx, owner, repo)
	if err != nil {
		if isNotFound(resp, err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) GetRepository(ctx context.Context, fullName string) (*models.Repository, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	r, resp, err := c.repos.Get(ctx, owner, repo)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return repoFromGitHub(r), nil
}

func (c *Client) CreateRepository(ctx context.Context, name string, opts models.RepoCreateOptions) error {
	repo := &github.Repository{
		Name:    github.Ptr(name),
		Private: github.Ptr(opts.Private),
	}
	if opts.TeamID > 0 {
		repo.TeamID = github.Ptr(opts.TeamID)
	}

	_, _, err := c.repos.Create(ctx, opts.Organization, repo)
	return err
}

func (c *Client) DeleteRepository(ctx context.Context, fullName string) error {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return err
	}

	resp, err := c.repos.Delete(ctx, owner, repo)
	if err != nil && isNotFound(resp, err) {
		return ports.ErrNotFound
	}
	return err
}

func (c *Client) EditRepository(ctx context.Context, fullName string, edit models.RepoEdit) (*models.Repository, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	patch := &github.Repository{
		Name:        edit.Name,
		Description: edit.Description,
		Homepage:    edit.Homepage,
	}
	if patch.Name == nil {
		// Edit endpoint requires a name even for partial updates
		patch.Name = github.Ptr(repo)
	}

	r, resp, err := c.repos.Edit(ctx, owner, repo, patch)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return repoFromGitHub(r), nil
}

func (c *Client) ListTeams(ctx context.Context, org string) ([]models.Team, error) {
	var all []models.Team
	opts := &github.ListOptions{PerPage: 100}
	for {
		teams, resp, err := c.teams.ListTeams(ctx, org, opts)
		if err != nil {
			if isNotFound(resp, err) {
				return nil, ports.ErrNotFound
			}
			return nil, err
		}
		for _, t := range teams {
			all = append(all, teamFromGitHub(t))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) GetTeam(ctx context.Context, org string, teamID int64) (*models.Team, error) {
	id, err := c.orgID(ctx, org)
	if err != nil {
		return nil, err
	}

	t, resp, err := c.teams.GetTeamByID(ctx, id, teamID)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	team := teamFromGitHub(t)
	return &team, nil
}

func (c *Client) CreateTeam(ctx context.Context, org, name, permission string) (*models.Team, error) {
	t, resp, err := c.teams.CreateTeam(ctx, org, github.NewTeam{
		Name:       name,
		Permission: github.Ptr(permission),
	})
	if err != nil {
		if isNotFound(resp, err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	team := teamFromGitHub(t)
	return &team, nil
}

func (c *Client) DeleteTeam(ctx context.Context, org string, teamID int64) error {
	id, err := c.orgID(ctx, org)
	if err != nil {
		return err
	}

	resp, err := c.teams.DeleteTeamByID(ctx, id, teamID)
	if err != nil && isNotFound(resp, err) {
		return ports.ErrNotFound
	}
	return err
}

func (c *Client) AddTeamRepo(ctx context.Context, org string, teamID int64, fullName string) error {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return err
	}
	id, err := c.orgID(ctx, org)
	if err != nil {
		return err
	}

	resp, err := c.teams.AddTeamRepoByID(ctx, id, teamID, owner, repo, nil)
	if err != nil && isNotFound(resp, err) {
		return ports.ErrNotFound
	}
	return err
}

func (c *Client) RemoveTeamRepo(ctx context.Context, org string, teamID int64, fullName string) error {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return err
	}
	id, err := c.orgID(ctx, org)
	if err != nil {
		return err
	}

	resp, err := c.teams.RemoveTeamRepoByID(ctx, id, teamID, owner, repo)
	if err != nil && isNotFound(resp, err) {
		return ports.ErrNotFound
	}
	return err
}

func (c *Client) ListRepoTeams(ctx context.Context, fullName string) ([]models.Team, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	var all []models.Team
	opts := &github.ListOptions{PerPage: 100}
	for {
		teams, resp, err := c.repos.ListTeams(ctx, owner, repo, opts)
		if err != nil {
			if isNotFound(resp, err) {
				return nil, ports.ErrNotFound
			}
			return nil, err
		}
		for _, t := range teams {
			all = append(all, teamFromGitHub(t))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) GetUser(ctx context.Context, login string) (*models.User, error) {
	u, resp, err := c.users.Get(ctx, login)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return userFromGitHub(u), nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	u, _, err := c.users.Get(ctx, "")
	if err != nil {
		return nil, err
	}
	return userFromGitHub(u), nil
}

func (c *Client) ListUserOrgs(ctx context.Context, login string) ([]string, error) {
	var all []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		orgs, resp, err := c.orgs.List(ctx, login, opts)
		if err != nil {
			if isNotFound(resp, err) {
				return nil, ports.ErrNotFound
			}
			return nil, err
		}
		for _, o := range orgs {
			all = append(all, o.GetLogin())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) AddTeamMember(ctx context.Context, org string, teamID int64, login string) (bool, error) {
	id, err := c.orgID(ctx, org)
	if err != nil {
		return false, err
	}

	membership, resp, err := c.teams.AddTeamMembershipByID(ctx, id, teamID, login, nil)
	if err != nil {
		if isNotFound(resp, err) {
			return false, ports.ErrNotFound
		}
		return false, err
	}
	// Users outside the org come back "pending" until they accept the
	// invitation; both states count as added.
	state := membership.GetState()
	return state == "active" || state == "pending", nil
}

func (c *Client) RemoveTeamMember(ctx context.Context, org string, teamID int64, login string) (bool, error) {
	id, err := c.orgID(ctx, org)
	if err != nil {
		return false, err
	}

	resp, err := c.teams.RemoveTeamMembershipByID(ctx, id, teamID, login)
	if err != nil {
		if isNotFound(resp, err) {
			return false, ports.ErrNotFound
		}
		return false, err
	}
	return true, nil
}

func (c *Client) RemoveOrgMember(ctx context.Context, org, login string) (bool, error) {
	resp, err := c.orgs.RemoveMember(ctx, org, login)
	if err != nil {
		if isNotFound(resp, err) {
			return false, ports.ErrNotFound
		}
		return false, err
	}
	return true, nil
}

func (c *Client) ListPullRequests(ctx context.Context, fullName string) ([]models.PullRequest, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	var all []models.PullRequest
	opts := &github.PullRequestListOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		prs, resp, err := c.prs.List(ctx, owner, repo, opts)
		if err != nil {
			if isNotFound(resp, err) {
				return nil, ports.ErrNotFound
			}
			return nil, err
		}
		for _, pr := range prs {
			all = append(all, prFromGitHub(pr))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) GetPullRequest(ctx context.Context, fullName string, number int) (*models.PullRequest, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	pr, resp, err := c.prs.Get(ctx, owner, repo, number)
	if err != nil {
		if isNotFound(resp, err) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	full := prFromGitHub(pr)
	return &full, nil
}

func (c *Client) MergePullRequest(ctx context.Context, fullName string, number int, commitMessage string) (*models.MergeResult, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	result, _, err := c.prs.Merge(ctx, owner, repo, number, commitMessage, nil)
	if err != nil {
		// A conflicting or unmergeable PR surfaces as a 405 with a
		// message; report it as a failed merge rather than an error.
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil &&
			ghErr.Response.StatusCode == http.StatusMethodNotAllowed {
			return &models.MergeResult{Merged: false, Message: ghErr.Message}, nil
		}
		return nil, err
	}
	return &models.MergeResult{
		SHA:     result.GetSHA(),
		Merged:  result.GetMerged(),
		Message: result.GetMessage(),
	}, nil
}

func (c *Client) ListIssues(ctx context.Context, fullName string, listOpts models.IssueListOptions) ([]models.Issue, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State:       listOpts.State,
		Sort:        listOpts.Sort,
		Direction:   listOpts.Direction,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []models.Issue
	for {
		issues, resp, err := c.issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			if isNotFound(resp, err) {
				return nil, ports.ErrNotFound
			}
			if invalid := asInvalidOptions(err); invalid != nil {
				return nil, invalid
			}
			return nil, err
		}
		for _, issue := range issues {
			all = append(all, issueFromGitHub(issue))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) CombinedStatus(ctx context.Context, fullName, ref string) (string, error) {
	owner, repo, err := splitFullName(fullName)
	if err != nil {
		return "", err
	}

	status, resp, err := c.repos.GetCombinedStatus(ctx, owner, repo, ref, nil)
	if err != nil {
		if isNotFound(resp, err) {
			return "", ports.ErrNotFound
		}
		return "", err
	}
	return status.GetState(), nil
}

func repoFromGitHub(r *github.Repository) *models.Repository {
	return &models.Repository{
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Private:     r.GetPrivate(),
		HTMLURL:     r.GetHTMLURL(),
		OpenIssues:  r.GetOpenIssuesCount(),
	}
}

func teamFromGitHub(t *github.Team) models.Team {
	return models.Team{
		ID:         t.GetID(),
		Name:       t.GetName(),
		Slug:       t.GetSlug(),
		Permission: t.GetPermission(),
	}
}

func userFromGitHub(u *github.User) *models.User {
	return &models.User{
		ID:          u.GetID(),
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		Company:     u.GetCompany(),
		Location:    u.GetLocation(),
		Email:       u.GetEmail(),
		HTMLURL:     u.GetHTMLURL(),
		SiteAdmin:   u.GetSiteAdmin(),
		PublicRepos: u.GetPublicRepos(),
		PublicGists: u.GetPublicGists(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}

func prFromGitHub(pr *github.PullRequest) models.PullRequest {
	return models.PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		HTMLURL:        pr.GetHTMLURL(),
		State:          pr.GetState(),
		Merged:         pr.GetMerged(),
		Mergeable:      pr.Mergeable,
		Commits:        pr.GetCommits(),
		Additions:      pr.GetAdditions(),
		Deletions:      pr.GetDeletions(),
		ChangedFiles:   pr.GetChangedFiles(),
		HeadRef:        pr.GetHead().GetRef(),
		HeadSHA:        pr.GetHead().GetSHA(),
		BaseSHA:        pr.GetBase().GetSHA(),
		UserLogin:      pr.GetUser().GetLogin(),
		MergedByLogin:  pr.GetMergedBy().GetLogin(),
		Comments:       pr.GetComments(),
		ReviewComments: pr.GetReviewComments(),
	}
}

func issueFromGitHub(issue *github.Issue) models.Issue {
	return models.Issue{
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		HTMLURL:       issue.GetHTMLURL(),
		UserLogin:     issue.GetUser().GetLogin(),
		IsPullRequest: issue.IsPullRequest(),
	}
}
