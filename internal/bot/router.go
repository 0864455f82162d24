// Package bot routes chat commands to their handlers and connects the
// router to Slack.
package bot

import (
	"context"
	"regexp"

	"github.com/scepticulous/lita-github/internal/handlers"
	"github.com/scepticulous/lita-github/internal/regex"
)

// Route binds a command pattern to its handler. Help maps an example
// invocation to a short description.
type Route struct {
	Pattern *regexp.Regexp
	Handle  handlers.Func
	Help    map[string]string
}

// Router dispatches a command line to the first route whose pattern
// matches. Routes are tried in registration order, so more specific
// commands must be registered before the broader ones they overlap.
type Router struct {
	routes []Route
}

func NewRouter() *Router {
	return &Router{}
}

func (r *Router) Register(pattern string, handle handlers.Func, help map[string]string) {
	r.routes = append(r.routes, Route{
		Pattern: regexp.MustCompile(pattern),
		Handle:  handle,
		Help:    help,
	})
}

// Dispatch runs the first matching route and returns its reply. The
// second return is false when no route matched.
func (r *Router) Dispatch(ctx context.Context, text string) (string, bool) {
	for _, route := range r.routes {
		match := route.Pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		params := make(map[string]string)
		for i, name := range route.Pattern.SubexpNames() {
			if name != "" && match[i] != "" {
				params[name] = match[i]
			}
		}
		return route.Handle(ctx, handlers.Message{Params: params, Text: text}), true
	}
	return "", false
}

// Routes returns the registered routes, mainly for help output.
func (r *Router) Routes() []Route {
	return r.routes
}

// Handlers groups everything the default route table dispatches to.
type Handlers struct {
	Core   *handlers.CoreHandler
	Repo   *handlers.RepoHandler
	PR     *handlers.PRHandler
	Org    *handlers.OrgHandler
	Issues *handlers.IssuesHandler
}

// NewDefaultRouter builds the full route table.
func NewDefaultRouter(h Handlers) *Router {
	r := NewRouter()

	r.Register(regex.Alias+`status`, h.Core.Status, map[string]string{
		"gh status": "get the system status from GitHub",
	})
	r.Register(regex.Alias+`(?:v|version|build)`, h.Core.Version, map[string]string{
		"gh version": "get the running version",
	})
	r.Register(regex.Alias+`token`, h.Core.TokenGenerate, map[string]string{
		"gh token": "generate a TOTP token from the configured secret",
	})
	r.Register(regex.Alias+`(?:whois|user)\s+`+regex.User, h.Core.Whois, map[string]string{
		"gh whois theckman": "show facts about a GitHub user",
		"gh user theckman":  "the same",
	})

	r.Register(regex.Alias+`repo\s+(?:create|new)\s+`+regex.RepoRef+`.*$`, h.Repo.Create, map[string]string{
		"gh repo create PagerDuty/lita-test private:true team:heckman": "create a repo, private, with the team matching the 'heckman' slug",
		"gh repo new PagerDuty/lita-test":                              "create a repo using the configured defaults",
	})
	r.Register(regex.Alias+`repo\s+delete\s+`+regex.RepoRef, h.Repo.Delete, map[string]string{
		"gh repo delete PagerDuty/lita-test": "delete a repo",
	})
	r.Register(regex.Alias+`repo\s+rename\s+`+regex.RepoRef+`\s+(?P<name>[a-zA-Z0-9_\-]+)`, h.Repo.Rename, map[string]string{
		"gh repo rename PagerDuty/lita-test better-name": "rename a repo",
	})
	r.Register(regex.Alias+`repo\s+team\s+add\s+`+regex.Team+`\s+to\s+`+regex.RepoRef, h.Repo.TeamAdd, map[string]string{
		"gh repo team add everyone to PagerDuty/lita-test": "add a team to a repo, by slug or ID",
	})
	r.Register(regex.Alias+`repo\s+team\s+rm\s+`+regex.Team+`\s+from\s+`+regex.RepoRef, h.Repo.TeamRm, map[string]string{
		"gh repo team rm everyone from PagerDuty/lita-test": "remove a team from a repo, by slug or ID",
	})
	r.Register(regex.Alias+`repo\s+(?:update\s+)?description\s+`+regex.RepoRef+`\s+(?P<desc>.+)$`, h.Repo.UpdateDescription, map[string]string{
		`gh repo description PagerDuty/lita-test "new description"`: "update a repo's description",
	})
	r.Register(regex.Alias+`repo\s+(?:update\s+)?homepage\s+`+regex.RepoRef+`\s+(?P<url>\S+)$`, h.Repo.UpdateHomepage, map[string]string{
		"gh repo homepage PagerDuty/lita-test https://example.org": "update a repo's homepage",
	})
	r.Register(regex.Alias+`repo\s+info\s+`+regex.RepoRef, h.Repo.Info, map[string]string{
		"gh repo info PagerDuty/lita-test": "show facts about a repo",
	})

	r.Register(regex.Alias+`pr\s+info\s+`+regex.RepoRef+`\s+#(?P<pr>\d+)\s*$`, h.PR.Info, map[string]string{
		"gh pr info PagerDuty/lita-test #42": "show facts about a pull request",
	})
	r.Register(`(?:`+regex.Alias+`(?:pr\s+merge|shipit)|shipit)\s+`+regex.RepoRef+`\s+#(?P<pr>\d+)\s*$`, h.PR.Merge, map[string]string{
		"gh pr merge PagerDuty/lita-test #42": "merge a pull request",
		"shipit PagerDuty/lita-test #42":      "the same, with less typing",
	})
	r.Register(regex.Alias+`pr\s+list\s+`+regex.RepoRef, h.PR.List, map[string]string{
		"gh pr list PagerDuty/lita-test": "list open pull requests",
	})

	r.Register(regex.Alias+`org\s+team\s+add\s+`+regex.Org+`.*$`, h.Org.TeamAdd, map[string]string{
		`gh org team add PagerDuty name:"All Staff" perms:push`: "create a new team in an organization",
	})
	r.Register(regex.Alias+`org\s+team\s+rm\s+`+regex.Org+`\s+`+regex.Team, h.Org.TeamRm, map[string]string{
		"gh org team rm PagerDuty heckman": "delete a team, by slug or ID",
	})
	r.Register(regex.Alias+`(?:teams|org\s+teams|org\s+team\s+list)(?:\s+`+regex.Org+`)?`, h.Org.TeamsList, map[string]string{
		"gh org teams [organization]": "show all teams of an organization",
		"gh teams [organization]":     "the same, with less typing",
	})
	r.Register(regex.Alias+`org\s+user\s+add\s+`+regex.Org+`\s+`+regex.Team+`\s+`+regex.User, h.Org.UserAdd, map[string]string{
		"gh org user add PagerDuty heckman theckman": "add a user to an organization team",
	})
	r.Register(regex.Alias+`org\s+user\s+rm\s+`+regex.Org+`\s+`+regex.Team+`\s+`+regex.User, h.Org.UserRm, map[string]string{
		"gh org user rm PagerDuty heckman theckman": "remove a user from an organization team",
	})
	r.Register(regex.Alias+`org\s+eject\s+`+regex.Org+`\s+`+regex.User, h.Org.Eject, map[string]string{
		"gh org eject PagerDuty theckman": "remove a user from all organization teams",
	})

	r.Register(regex.Alias+`(?:issues|repo\s+issues)\s+`+regex.RepoRef, h.Issues.List, map[string]string{
		"gh issues PagerDuty/lita-test":                          "list open issues on a repo",
		"gh issues PagerDuty/lita-test state:closed sort:update": "the same, with filters",
	})

	return r
}
