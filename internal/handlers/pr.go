package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/scepticulous/lita-github/internal/config"
	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/scepticulous/lita-github/internal/i18n"
)

// prListMaxCount is the display cap for pr list; above it only the 10
// oldest and 10 newest PRs are shown.
const prListMaxCount = 20

// PRHandler covers pull request inspection, merging and listing.
type PRHandler struct {
	base
}

func NewPRHandler(api ports.GitHubAPI, cfg *config.Config, trans *i18n.Translations) *PRHandler {
	return &PRHandler{base{api: api, cfg: cfg, trans: trans}}
}

func (h *PRHandler) prMatch(msg Message) (string, string, int) {
	org := h.organization(msg.Params["org"])
	repo := msg.Params["repo"]
	number, _ := strconv.Atoi(msg.Params["pr"])
	return org, repo, number
}

func (h *PRHandler) Info(ctx context.Context, msg Message) string {
	org, repo, number := h.prMatch(msg)
	full := rpo(org, repo)

	pr, err := h.api.GetPullRequest(ctx, full, number)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("pr_not_found", map[string]interface{}{
				"Number": number, "Org": org, "Repo": repo,
			})
		}
		return h.t("exception", nil)
	}

	build, err := h.api.CombinedStatus(ctx, full, pr.HeadSHA)
	if err != nil {
		return h.t("exception", nil)
	}

	var reply strings.Builder
	reply.WriteString(h.t("pr_info_header", map[string]interface{}{
		"Repo": full, "Number": pr.Number, "Title": pr.Title, "URL": pr.HTMLURL,
	}))
	reply.WriteString(h.t("pr_info_status", map[string]interface{}{
		"User":  h.decoratedLogin(ctx, pr.UserLogin),
		"State": prState(pr),
		"Build": build,
	}))
	if pr.Merged {
		reply.WriteString(h.t("pr_info_merged", map[string]interface{}{
			"MergedBy": h.decoratedLogin(ctx, pr.MergedByLogin),
		}))
	} else {
		reply.WriteString(h.t("pr_info_mergeable", map[string]interface{}{
			"Mergeable": mergeableString(pr.Mergeable),
		}))
	}
	reply.WriteString(h.t("pr_info_commits", map[string]interface{}{
		"Commits":      pr.Commits,
		"Additions":    pr.Additions,
		"Deletions":    pr.Deletions,
		"ChangedFiles": pr.ChangedFiles,
		"Compare":      fmt.Sprintf("https://github.com/%s/compare/%s...%s", full, pr.BaseSHA, pr.HeadSHA),
	}))
	reply.WriteString(h.t("pr_info_comments", map[string]interface{}{
		"Comments":       pr.Comments,
		"ReviewComments": pr.ReviewComments,
	}))
	return reply.String()
}

func (h *PRHandler) Merge(ctx context.Context, msg Message) string {
	if h.disabled("pr_merge") {
		return h.t("pr_method_disabled", nil)
	}

	org, repo, number := h.prMatch(msg)
	full := rpo(org, repo)

	pr, err := h.api.GetPullRequest(ctx, full, number)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("pr_not_found", map[string]interface{}{
				"Number": number, "Org": org, "Repo": repo,
			})
		}
		return h.t("exception", nil)
	}

	commit := fmt.Sprintf("Merge pull request #%d from %s/%s\n\n%s", number, org, pr.HeadRef, pr.Title)

	result, err := h.api.MergePullRequest(ctx, full, number, commit)
	if err != nil {
		return h.t("exception", nil)
	}
	if result.Merged {
		return h.t("pr_merge_pass", map[string]interface{}{
			"Number": number, "Org": org, "Branch": pr.HeadRef, "Title": pr.Title,
		})
	}
	return h.t("pr_merge_fail", map[string]interface{}{
		"Number":  number,
		"Title":   pr.Title,
		"URL":     fmt.Sprintf("https://github.com/%s/%s/pull/%d", org, repo, number),
		"Message": result.Message,
	})
}

func (h *PRHandler) List(ctx context.Context, msg Message) string {
	org := h.organization(msg.Params["org"])
	repo := msg.Params["repo"]
	full := rpo(org, repo)

	prs, err := h.api.ListPullRequests(ctx, full)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("repo_not_found", map[string]interface{}{"Org": org, "Repo": repo})
		}
		return h.t("exception", nil)
	}
	if len(prs) == 0 {
		return h.t("pr_list_empty", nil)
	}

	sort.Slice(prs, func(i, j int) bool { return prs[i].Number < prs[j].Number })

	var reply strings.Builder
	if len(prs) > prListMaxCount {
		reply.WriteString(h.t("pr_list_banner", map[string]interface{}{"Max": prListMaxCount}))
		for _, pr := range prs[:10] {
			reply.WriteString(h.listLine(pr, full))
		}
		reply.WriteString("----\n")
		for _, pr := range prs[len(prs)-10:] {
			reply.WriteString(h.listLine(pr, full))
		}
	} else {
		for _, pr := range prs {
			reply.WriteString(h.listLine(pr, full))
		}
	}
	return reply.String()
}

func (h *PRHandler) listLine(pr models.PullRequest, full string) string {
	return h.t("pr_info_header", map[string]interface{}{
		"Repo": full, "Number": pr.Number, "Title": pr.Title, "URL": pr.HTMLURL,
	})
}

// decoratedLogin appends the user's display name when the profile has one.
func (h *PRHandler) decoratedLogin(ctx context.Context, login string) string {
	user, err := h.api.GetUser(ctx, login)
	if err != nil || user.Name == "" {
		return login
	}
	return fmt.Sprintf("%s (%s)", login, user.Name)
}

func prState(pr *models.PullRequest) string {
	if pr.Merged {
		return "Merged"
	}
	if pr.State == "" {
		return pr.State
	}
	return strings.ToUpper(pr.State[:1]) + pr.State[1:]
}

func mergeableString(mergeable *bool) string {
	if mergeable == nil {
		return "unknown"
	}
	return strconv.FormatBool(*mergeable)
}
