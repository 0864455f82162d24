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

var (
	validIssueStates     = map[string]bool{"open": true, "closed": true, "all": true}
	validIssueSorts      = map[string]bool{"created": true, "updated": true, "comments": true}
	validIssueDirections = map[string]bool{"asc": true, "desc": true}
)

// IssuesHandler lists repository issues with optional state, sort and
// direction filters.
type IssuesHandler struct {
	base
}

func NewIssuesHandler(api ports.GitHubAPI, cfg *config.Config, trans *i18n.Translations) *IssuesHandler {
	return &IssuesHandler{base{api: api, cfg: cfg, trans: trans}}
}

func (h *IssuesHandler) List(ctx context.Context, msg Message) string {
	org := h.organization(msg.Params["org"])
	repo := msg.Params["repo"]
	full := rpo(org, repo)

	opts, invalid := h.listOptions(command.ParseOptions(msg.Text))
	if invalid != "" {
		return invalid
	}

	issues, err := h.api.ListIssues(ctx, full, opts)
	if err != nil {
		var badOpts *ports.InvalidOptionsError
		switch {
		case errors.Is(err, ports.ErrNotFound):
			return h.t("issues_repo_not_found", map[string]interface{}{"Repo": full})
		case errors.As(err, &badOpts):
			return h.t("issues_invalid_option_api", map[string]interface{}{"Message": badOpts.Message})
		default:
			return h.boom(err)
		}
	}

	// The endpoint mixes PRs into the results; drop them.
	filtered := issues[:0:0]
	for _, issue := range issues {
		if !issue.IsPullRequest {
			filtered = append(filtered, issue)
		}
	}

	if len(filtered) == 0 {
		return h.t("issues_list_empty", map[string]interface{}{"Repo": full})
	}

	var reply strings.Builder
	reply.WriteString(h.t("issues_list_header", map[string]interface{}{
		"Count": len(filtered), "Repo": full,
	}))
	for _, issue := range filtered {
		reply.WriteString(h.t("issues_list_item", map[string]interface{}{
			"Repo": full, "Number": issue.Number, "Title": issue.Title,
			"User": issue.UserLogin, "URL": issue.HTMLURL,
		}))
	}
	return reply.String()
}

// listOptions validates the filters, accumulating every problem into one
// reply. The state filter defaults to open.
func (h *IssuesHandler) listOptions(opts command.Options) (models.IssueListOptions, string) {
	list := models.IssueListOptions{State: "open"}
	var problems string

	if opts.Has("state") {
		if state := strings.ToLower(opts["state"]); validIssueStates[state] {
			list.State = state
		} else {
			problems += h.t("issues_invalid_state", nil)
		}
	}
	if opts.Has("sort") {
		if sortBy := strings.ToLower(opts["sort"]); validIssueSorts[sortBy] {
			list.Sort = sortBy
		} else {
			problems += h.t("issues_invalid_sort", nil)
		}
	}
	if opts.Has("direction") {
		if direction := strings.ToLower(opts["direction"]); validIssueDirections[direction] {
			list.Direction = direction
		} else {
			problems += h.t("issues_invalid_direction", nil)
		}
	}

	if problems != "" {
		return list, h.t("issues_invalid_header", nil) + problems
	}
	return list, ""
}
