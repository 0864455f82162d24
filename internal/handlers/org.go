package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/scepticulous/lita-github/internal/command"
	"github.com/scepticulous/lita-github/internal/config"
	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/scepticulous/lita-github/internal/i18n"
)

var validTeamPerms = map[string]bool{"pull": true, "push": true, "admin": true}

// OrgHandler covers organization management: team listing and lifecycle,
// team membership and member ejection.
type OrgHandler struct {
	base
}

func NewOrgHandler(api ports.GitHubAPI, cfg *config.Config, trans *i18n.Translations) *OrgHandler {
	return &OrgHandler{base{api: api, cfg: cfg, trans: trans}}
}

func (h *OrgHandler) TeamsList(ctx context.Context, msg Message) string {
	org := h.organization(strings.TrimSpace(msg.Params["org"]))

	teams, err := h.api.ListTeams(ctx, org)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("org_not_found", map[string]interface{}{"Org": org})
		}
		return h.t("exception", nil)
	}

	var reply strings.Builder
	reply.WriteString(h.t("org_teams_header", map[string]interface{}{
		"Count": len(teams), "Org": org,
	}))

	// The first team the API returns (Owners) stays pinned at the top;
	// the rest sort by name.
	if len(teams) > 0 {
		reply.WriteString(h.teamLine(teams[0]))
		rest := make([]models.Team, len(teams)-1)
		copy(rest, teams[1:])
		sort.Slice(rest, func(i, j int) bool {
			return strings.ToLower(rest[i].Name) < strings.ToLower(rest[j].Name)
		})
		for _, team := range rest {
			reply.WriteString(h.teamLine(team))
		}
	}
	return reply.String()
}

func (h *OrgHandler) teamLine(team models.Team) string {
	return h.t("org_teams_item", map[string]interface{}{
		"Name": team.Name, "Slug": team.Slug, "ID": team.ID, "Perms": team.Permission,
	})
}

func (h *OrgHandler) TeamAdd(ctx context.Context, msg Message) string {
	if h.disabled("org_team_add") {
		return h.t("method_disabled", nil)
	}

	org := h.organization(msg.Params["org"])
	opts := command.ParseOptionsExtended(msg.Text)

	if invalid := h.validateTeamAddOpts(opts); invalid != "" {
		return invalid
	}

	perms := strings.ToLower(opts["perms"])
	if !h.cfg.PermAllowed(perms) {
		return h.t("org_team_add_perm_not_allowed", map[string]interface{}{
			"Perms": strings.Join(h.cfg.OrgTeamAddAllowedPerms, ", "),
		})
	}

	team, err := h.api.CreateTeam(ctx, org, opts["name"], perms)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return h.t("org_not_found", map[string]interface{}{"Org": org})
		}
		return h.t("exception", nil)
	}
	return h.t("org_team_add_pass", map[string]interface{}{
		"Name": team.Name, "Slug": team.Slug, "ID": team.ID, "Perms": team.Permission,
	})
}

// validateTeamAddOpts accumulates every option problem into one reply
// instead of stopping at the first.
func (h *OrgHandler) validateTeamAddOpts(opts command.Options) string {
	var msg string
	if !opts.Has("name") {
		msg += h.t("org_team_add_missing_name", nil)
	}
	if !opts.Has("perms") {
		msg += h.t("org_team_add_missing_perms", nil)
	} else if !validTeamPerms[strings.ToLower(opts["perms"])] {
		msg += h.t("org_team_add_invalid_perms", nil)
	}
	return msg
}

func (h *OrgHandler) TeamRm(ctx context.Context, msg Message) string {
	if h.disabled("org_team_rm") {
		return h.t("method_disabled", nil)
	}

	org := h.organization(msg.Params["org"])
	query := msg.Params["team"]

	team, reply := h.resolveTeam(ctx, org, query)
	if reply != "" {
		return reply
	}

	if err := h.api.DeleteTeam(ctx, org, team.ID); err != nil {
		return h.t("org_team_rm_fail", map[string]interface{}{"Name": team.Name})
	}
	return h.t("org_team_rm_pass", map[string]interface{}{"Name": team.Name, "ID": team.ID})
}

func (h *OrgHandler) UserAdd(ctx context.Context, msg Message) string {
	if h.disabled("org_user_add") {
		return h.t("method_disabled", nil)
	}

	org := h.organization(msg.Params["org"])
	username := msg.Params["username"]

	user, reply := h.resolveUser(ctx, username)
	if reply != "" {
		return reply
	}

	team, reply := h.resolveTeam(ctx, org, msg.Params["team"])
	if reply != "" {
		return reply
	}

	ok, err := h.api.AddTeamMember(ctx, org, team.ID, user.Login)
	if err != nil {
		return h.boom(err)
	}
	if !ok {
		return h.t("org_user_add_fail", map[string]interface{}{"Team": team.Name})
	}
	return h.t("org_user_add_pass", map[string]interface{}{
		"Username": user.Login, "Org": org, "Team": team.Name, "Slug": team.Slug,
	})
}

func (h *OrgHandler) UserRm(ctx context.Context, msg Message) string {
	if h.disabled("org_user_rm") {
		return h.t("method_disabled", nil)
	}

	org := h.organization(msg.Params["org"])
	username := msg.Params["username"]

	user, reply := h.resolveUser(ctx, username)
	if reply != "" {
		return reply
	}

	team, reply := h.resolveTeam(ctx, org, msg.Params["team"])
	if reply != "" {
		return reply
	}

	ok, err := h.api.RemoveTeamMember(ctx, org, team.ID, user.Login)
	if err != nil {
		return h.boom(err)
	}
	if !ok {
		return h.t("org_user_rm_fail", map[string]interface{}{"Team": team.Name})
	}
	return h.t("org_user_rm_pass", map[string]interface{}{
		"Username": user.Login, "Org": org, "Team": team.Name, "Slug": team.Slug,
	})
}

func (h *OrgHandler) Eject(ctx context.Context, msg Message) string {
	if h.disabled("org_eject") {
		return h.t("method_disabled", nil)
	}

	org := h.organization(msg.Params["org"])
	username := msg.Params["username"]

	user, reply := h.resolveUser(ctx, username)
	if reply != "" {
		return reply
	}

	ok, err := h.api.RemoveOrgMember(ctx, org, user.Login)
	if err != nil {
		return h.boom(err)
	}
	if !ok {
		return h.t("org_eject_fail", nil)
	}
	return h.t("org_eject_pass", map[string]interface{}{"Username": user.Login, "Org": org})
}

// resolveUser looks up the target user and refuses to operate on the bot's
// own account. A non-empty second return is the reply to send instead.
func (h *OrgHandler) resolveUser(ctx context.Context, username string) (*models.User, string) {
	user, err := h.api.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, h.t("user_not_found", map[string]interface{}{"Username": username})
		}
		return nil, h.boom(err)
	}

	self, err := h.api.CurrentUser(ctx)
	if err != nil {
		return nil, h.boom(err)
	}
	if self.ID == user.ID {
		return nil, h.t("self_harm", nil)
	}
	return user, ""
}

// resolveTeam turns a slug-or-ID query into a full team record. A non-empty
// second return is the reply to send instead.
func (h *OrgHandler) resolveTeam(ctx context.Context, org, query string) (*models.Team, string) {
	notFound := h.t("team_not_found", map[string]interface{}{"Query": query})

	id, ok, err := h.teamID(ctx, query, org)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, h.t("org_not_found", map[string]interface{}{"Org": org})
		}
		return nil, h.boom(err)
	}
	if !ok {
		return nil, notFound
	}

	team, err := h.api.GetTeam(ctx, org, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, notFound
		}
		return nil, h.boom(err)
	}
	return team, ""
}
