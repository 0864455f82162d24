package handlers

import (
	"testing"

	"github.com/scepticulous/lita-github/internal/config"
	"github.com/scepticulous/lita-github/internal/i18n"
	"github.com/stretchr/testify/require"
)

// testConfig enables every feature so the happy paths run; individual tests
// flip features off as needed.
func testConfig() *config.Config {
	return &config.Config{
		Language:               "en",
		DefaultOrg:             "GrapeDuty",
		RepoPrivateDefault:     true,
		OrgTeamAddAllowedPerms: []string{"pull", "push"},
		Features: map[string]bool{
			"repo_create":             true,
			"repo_delete":             true,
			"repo_rename":             true,
			"repo_team_add":           true,
			"repo_team_rm":            true,
			"repo_update_description": true,
			"repo_update_homepage":    true,
			"pr_merge":                true,
			"org_team_add":            true,
			"org_team_rm":             true,
			"org_user_add":            true,
			"org_user_rm":             true,
			"org_eject":               true,
		},
	}
}

func testTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return trans
}

func msgWith(params map[string]string, text string) Message {
	if params == nil {
		params = map[string]string{}
	}
	return Message{Params: params, Text: text}
}
