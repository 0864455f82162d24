package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/scepticulous/lita-github/internal/config"
	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/scepticulous/lita-github/internal/i18n"
	"github.com/scepticulous/lita-github/internal/version"
)

// CoreHandler covers the commands that are not tied to a single repo or
// org: platform status, bot version, TOTP generation and user lookup.
type CoreHandler struct {
	base
}

func NewCoreHandler(api ports.GitHubAPI, cfg *config.Config, trans *i18n.Translations) *CoreHandler {
	return &CoreHandler{base{api: api, cfg: cfg, trans: trans}}
}

func (h *CoreHandler) Status(ctx context.Context, _ Message) string {
	status, err := h.api.SystemStatus(ctx)
	if err != nil {
		return h.t("exception", nil)
	}

	data := map[string]interface{}{
		"CreatedOn": status.CreatedOn,
		"Body":      status.Body,
	}
	switch status.Status {
	case models.StatusGood:
		return h.t("status_good", nil)
	case models.StatusMinor:
		return h.t("status_minor", data)
	default:
		return h.t("status_major", data)
	}
}

func (h *CoreHandler) Version(_ context.Context, _ Message) string {
	return h.t("version", map[string]interface{}{"Version": version.Version})
}

func (h *CoreHandler) TokenGenerate(_ context.Context, _ Message) string {
	if h.cfg.TOTPSecret == "" {
		return h.t("totp_no_secret", nil)
	}

	code, err := totp.GenerateCode(h.cfg.TOTPSecret, time.Now())
	if err != nil {
		return h.t("totp_no_secret", nil)
	}
	return code
}

func (h *CoreHandler) Whois(ctx context.Context, msg Message) string {
	username := msg.Params["username"]

	user, err := h.api.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("whois_not_found", map[string]interface{}{"Username": username})
		}
		return h.t("exception", nil)
	}

	orgs, err := h.api.ListUserOrgs(ctx, username)
	if err != nil {
		return h.t("exception", nil)
	}

	return whoisReply(user, orgs)
}

// whoisReply builds the user card line by line, leaving out the lines whose
// source field is unset.
func whoisReply(user *models.User, orgs []string) string {
	var lines []string

	header := user.Login
	if user.Name != "" {
		header += fmt.Sprintf(" (%s)", user.Name)
	}
	header += " :: " + user.HTMLURL
	lines = append(lines, header)

	if user.Location != "" {
		lines = append(lines, "Located: "+user.Location)
	}
	if user.Company != "" {
		lines = append(lines, "Company: "+user.Company)
	}
	if len(orgs) > 0 {
		lines = append(lines, "Orgs: "+strings.Join(orgs, ", "))
	}

	id := fmt.Sprintf("ID: %d", user.ID)
	if user.Email != "" {
		id += ", Email: " + user.Email
	}
	lines = append(lines, id)

	lines = append(lines, fmt.Sprintf("GitHub Admin: %t, Repos: %d, Gists: %d",
		user.SiteAdmin, user.PublicRepos, user.PublicGists))
	lines = append(lines, fmt.Sprintf("Following: %d, Followers: %d, Created: %s",
		user.Following, user.Followers,
		user.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC")))

	return strings.Join(lines, "\n")
}
