package handlers

import (
	"context"
	"strconv"

	"github.com/scepticulous/lita-github/internal/config"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/scepticulous/lita-github/internal/i18n"
)

// Message is a routed chat command: the named capture groups from the route
// regex plus the full text for option parsing.
type Message struct {
	Params map[string]string
	Text   string
}

// Func handles one routed command and returns the reply to post.
type Func func(ctx context.Context, msg Message) string

type base struct {
	api   ports.GitHubAPI
	cfg   *config.Config
	trans *i18n.Translations
}

func (b *base) t(id string, data map[string]interface{}) string {
	return b.trans.GetMessage(id, data)
}

func (b *base) boom(err error) string {
	return b.t("boom", map[string]interface{}{"Error": err.Error()})
}

func (b *base) disabled(feature string) bool {
	return !b.cfg.FeatureEnabled(feature)
}

// organization falls back to the configured default when the command did
// not name one.
func (b *base) organization(name string) string {
	if name == "" {
		return b.cfg.DefaultOrg
	}
	return name
}

func rpo(org, repo string) string {
	return org + "/" + repo
}

// teamID resolves a team query to a numeric ID. Numeric queries pass
// through without an API call; anything else is matched against the org's
// team slugs. The second return is false when no team matched; a non-nil
// error means the listing itself failed, which is a different condition
// from an unmatched slug.
func (b *base) teamID(ctx context.Context, query, org string) (int64, bool, error) {
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		return id, true, nil
	}
	return b.teamBySlug(ctx, query, org)
}

func (b *base) teamBySlug(ctx context.Context, slug, org string) (int64, bool, error) {
	if slug == "" {
		return 0, false, nil
	}
	teams, err := b.api.ListTeams(ctx, org)
	if err != nil {
		return 0, false, err
	}
	for _, team := range teams {
		if team.Slug == slug {
			return team.ID, true, nil
		}
	}
	return 0, false, nil
}
