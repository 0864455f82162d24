package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/scepticulous/lita-github/internal/command"
	"github.com/scepticulous/lita-github/internal/config"
	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/scepticulous/lita-github/internal/i18n"
)

// RepoHandler covers repository management: create, delete, rename, info,
// team assignment and metadata updates.
type RepoHandler struct {
	base
}

func NewRepoHandler(api ports.GitHubAPI, cfg *config.Config, trans *i18n.Translations) *RepoHandler {
	return &RepoHandler{base{api: api, cfg: cfg, trans: trans}}
}

func (h *RepoHandler) repoMatch(msg Message) (string, string) {
	return h.organization(msg.Params["org"]), msg.Params["repo"]
}

func (h *RepoHandler) Create(ctx context.Context, msg Message) string {
	if h.disabled("repo_create") {
		return h.t("method_disabled", nil)
	}

	org, repo := h.repoMatch(msg)
	full := rpo(org, repo)
	data := map[string]interface{}{"Org": org, "Repo": repo}

	exists, err := h.api.RepositoryExists(ctx, full)
	if err != nil {
		return h.t("exception", nil)
	}
	if exists {
		return h.t("repo_create_exists", data)
	}

	opts := h.extrapolateCreateOpts(ctx, command.ParseOptions(msg.Text), org)

	// The create call's own result is not trusted; existence afterwards
	// decides success.
	_ = h.api.CreateRepository(ctx, repo, opts)

	exists, err = h.api.RepositoryExists(ctx, full)
	if err == nil && exists {
		data["URL"] = "https://github.com/" + full
		return h.t("repo_create_pass", data)
	}
	return h.t("repo_create_fail", data)
}

func (h *RepoHandler) Delete(ctx context.Context, msg Message) string {
	if h.disabled("repo_delete") {
		return h.t("method_disabled", nil)
	}

	org, repo := h.repoMatch(msg)
	full := rpo(org, repo)
	data := map[string]interface{}{"Org": org, "Repo": repo}

	exists, err := h.api.RepositoryExists(ctx, full)
	if err != nil {
		return h.t("exception", nil)
	}
	if !exists {
		return h.t("repo_not_found", data)
	}

	_ = h.api.DeleteRepository(ctx, full)

	exists, err = h.api.RepositoryExists(ctx, full)
	if err == nil && !exists {
		return h.t("repo_delete_pass", data)
	}
	return h.t("repo_delete_fail", data)
}

func (h *RepoHandler) Rename(ctx context.Context, msg Message) string {
	if h.disabled("repo_rename") {
		return h.t("method_disabled", nil)
	}

	org, repo := h.repoMatch(msg)
	newName := msg.Params["name"]
	full := rpo(org, repo)
	data := map[string]interface{}{"Org": org, "Repo": repo, "Name": newName}

	exists, err := h.api.RepositoryExists(ctx, full)
	if err != nil {
		return h.t("exception", nil)
	}
	if !exists {
		return h.t("repo_not_found", data)
	}

	_, _ = h.api.EditRepository(ctx, full, models.RepoEdit{Name: &newName})

	exists, err = h.api.RepositoryExists(ctx, rpo(org, newName))
	if err == nil && exists {
		return h.t("repo_rename_pass", data)
	}
	return h.t("repo_rename_fail", data)
}

func (h *RepoHandler) Info(ctx context.Context, msg Message) string {
	org, repo := h.repoMatch(msg)
	full := rpo(org, repo)

	r, err := h.api.GetRepository(ctx, full)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("repo_not_found", map[string]interface{}{"Org": org, "Repo": repo})
		}
		return h.t("exception", nil)
	}

	prs, err := h.api.ListPullRequests(ctx, full)
	if err != nil {
		return h.t("exception", nil)
	}

	// The open-issues counter includes PRs; subtract them out.
	return h.t("repo_info", map[string]interface{}{
		"Repo":        r.FullName,
		"Private":     r.Private,
		"URL":         r.HTMLURL,
		"Description": r.Description,
		"Issues":      r.OpenIssues - len(prs),
		"PRs":         len(prs),
	})
}

func (h *RepoHandler) TeamAdd(ctx context.Context, msg Message) string {
	return h.changeTeam(ctx, msg, "repo_team_add")
}

func (h *RepoHandler) TeamRm(ctx context.Context, msg Message) string {
	return h.changeTeam(ctx, msg, "repo_team_rm")
}

func (h *RepoHandler) changeTeam(ctx context.Context, msg Message, action string) string {
	if h.disabled(action) {
		return h.t("method_disabled", nil)
	}

	org, repo := h.repoMatch(msg)
	query := msg.Params["team"]
	full := rpo(org, repo)

	exists, err := h.api.RepositoryExists(ctx, full)
	if err != nil {
		return h.t("exception", nil)
	}
	if !exists {
		return h.t("repo_not_found", map[string]interface{}{"Org": org, "Repo": repo})
	}

	id, ok, err := h.teamID(ctx, query, org)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("org_not_found", map[string]interface{}{"Org": org})
		}
		return h.boom(err)
	}
	if !ok {
		return h.t("team_not_found", map[string]interface{}{"Query": query})
	}
	team, err := h.api.GetTeam(ctx, org, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("team_not_found", map[string]interface{}{"Query": query})
		}
		return h.boom(err)
	}

	data := map[string]interface{}{"Org": org, "Repo": repo, "Team": team.Slug}

	onRepo, err := h.teamOnRepo(ctx, full, team.ID)
	if err != nil {
		return h.boom(err)
	}
	if action == "repo_team_add" {
		if onRepo {
			return h.t("repo_team_add_exists", data)
		}
		err = h.api.AddTeamRepo(ctx, org, team.ID, full)
	} else {
		if !onRepo {
			return h.t("repo_team_rm_absent", data)
		}
		err = h.api.RemoveTeamRepo(ctx, org, team.ID, full)
	}
	if err != nil {
		return h.t(action+"_fail", data)
	}
	return h.t(action+"_pass", data)
}

func (h *RepoHandler) UpdateDescription(ctx context.Context, msg Message) string {
	if h.disabled("repo_update_description") {
		return h.t("method_disabled", nil)
	}

	org, repo := h.repoMatch(msg)
	desc := unquoteArg(msg.Params["desc"])
	full := rpo(org, repo)
	data := map[string]interface{}{"Org": org, "Repo": repo, "Description": desc}

	r, err := h.api.EditRepository(ctx, full, models.RepoEdit{Description: &desc})
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("repo_not_found", map[string]interface{}{"Org": org, "Repo": repo})
		}
		return h.t("repo_update_description_fail", data)
	}
	data["Description"] = r.Description
	return h.t("repo_update_description_pass", data)
}

func (h *RepoHandler) UpdateHomepage(ctx context.Context, msg Message) string {
	if h.disabled("repo_update_homepage") {
		return h.t("method_disabled", nil)
	}

	org, repo := h.repoMatch(msg)
	homepage := unquoteArg(msg.Params["url"])
	full := rpo(org, repo)
	data := map[string]interface{}{"Org": org, "Repo": repo, "Homepage": homepage}

	if !strings.HasPrefix(homepage, "http://") && !strings.HasPrefix(homepage, "https://") {
		return h.t("repo_update_homepage_fail", data)
	}

	_, err := h.api.EditRepository(ctx, full, models.RepoEdit{Homepage: &homepage})
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("repo_not_found", map[string]interface{}{"Org": org, "Repo": repo})
		}
		return h.t("repo_update_homepage_fail", data)
	}
	return h.t("repo_update_homepage_pass", data)
}

func (h *RepoHandler) teamOnRepo(ctx context.Context, fullName string, teamID int64) (bool, error) {
	teams, err := h.api.ListRepoTeams(ctx, fullName)
	if err != nil {
		return false, err
	}
	for _, team := range teams {
		if team.ID == teamID {
			return true, nil
		}
	}
	return false, nil
}

// extrapolateCreateOpts fills in team and privacy from the command options,
// falling back to the configured defaults.
func (h *RepoHandler) extrapolateCreateOpts(ctx context.Context, opts command.Options, org string) models.RepoCreateOptions {
	create := models.RepoCreateOptions{
		Organization: org,
		Private:      h.shouldBePrivate(opts["private"]),
	}

	// Team resolution here is best effort; a failed lookup just means the
	// repo is created without a team and the create result speaks for itself.
	if slug, ok := opts["team"]; ok {
		if id, found, err := h.teamBySlug(ctx, slug, org); err == nil && found {
			create.TeamID = id
			return create
		}
	}
	for _, slug := range h.cfg.DefaultTeamSlugs {
		if id, found, err := h.teamBySlug(ctx, slug, org); err == nil && found {
			create.TeamID = id
			break
		}
	}
	return create
}

// shouldBePrivate coerces the private option; anything other than a literal
// true/false falls back to the configured default.
func (h *RepoHandler) shouldBePrivate(value string) bool {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	default:
		return h.cfg.RepoPrivateDefault
	}
}

func unquoteArg(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
