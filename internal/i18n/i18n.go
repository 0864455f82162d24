package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	files, err := filepath.Glob("locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// GetMessage renders a catalog entry. None of the reply strings are plural,
// so no plural count is passed; localizing with one would make go-i18n demand
// a "one" form the catalog does not define.
func (t *Translations) GetMessage(messageID string, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		TemplateData: templateData,
	})
	if localized == "" && err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[method_disabled]
	other = "Sorry, this function has either been disabled or not enabled in the config"

	[pr_method_disabled]
	other = "Sorry, this function has been disabled in the config"

	[boom]
	other = "I had a problem :( ... {{.Error}}"

	[exception]
	other = "An unexpected exception was hit during the GitHub API operation. Please make sure all arguments are proper and try again, or try checking the GitHub status (gh status)"

	[org_not_found]
	other = "The organization '{{.Org}}' was not found. Does my user have ownership perms?"

	[repo_not_found]
	other = "That repo ({{.Org}}/{{.Repo}}) does not exist"

	[user_not_found]
	other = "Unable to find the GitHub user {{.Username}}"

	[self_harm]
	other = "No...\n\nಠ_ಠ"

	[team_not_found]
	other = "Unable to match any teams based on: {{.Query}}"

	[status_good]
	other = "GitHub is reporting that all systems are green!"

	[status_minor]
	other = "GitHub is reporting minor issues (status:yellow)! Last message:\n{{.CreatedOn}} :: {{.Body}}"

	[status_major]
	other = "GitHub is reporting major issues (status:red)! Last message:\n{{.CreatedOn}} :: {{.Body}}"

	[version]
	other = "lita-github v{{.Version}}"

	[totp_no_secret]
	other = "'totp_secret' has not been provided in the config, unable to generate TOTP"

	[whois_not_found]
	other = "Sorry, unable to locate the GitHub user {{.Username}}"

	[repo_create_exists]
	other = "Unable to create {{.Org}}/{{.Repo}} as it already exists"

	[repo_create_pass]
	other = "Created {{.Org}}/{{.Repo}}: {{.URL}}"

	[repo_create_fail]
	other = "Unable to create {{.Org}}/{{.Repo}}"

	[repo_delete_pass]
	other = "Deleted {{.Org}}/{{.Repo}}"

	[repo_delete_fail]
	other = "Unable to delete {{.Org}}/{{.Repo}}"

	[repo_rename_pass]
	other = "Renamed {{.Org}}/{{.Repo}} to {{.Org}}/{{.Name}}"

	[repo_rename_fail]
	other = "Unable to rename {{.Org}}/{{.Repo}}"

	[repo_info]
	other = "{{.Repo}} (private:{{.Private}}) :: {{.URL}}\nDesc: {{.Description}}\nIssues: {{.Issues}} PRs: {{.PRs}}"

	[repo_team_add_pass]
	other = "Added the '{{.Team}}' team to {{.Org}}/{{.Repo}}"

	[repo_team_add_fail]
	other = "Unable to add the '{{.Team}}' team to {{.Org}}/{{.Repo}}"

	[repo_team_add_exists]
	other = "The '{{.Team}}' team is already a member of {{.Org}}/{{.Repo}}"

	[repo_team_rm_absent]
	other = "The '{{.Team}}' team is not a member of {{.Org}}/{{.Repo}}"

	[repo_team_rm_pass]
	other = "Removed the '{{.Team}}' team from {{.Org}}/{{.Repo}}"

	[repo_team_rm_fail]
	other = "Unable to remove the '{{.Team}}' team from {{.Org}}/{{.Repo}}"

	[repo_update_description_pass]
	other = "The description for {{.Org}}/{{.Repo}} has been updated:\nDesc: {{.Description}}"

	[repo_update_description_fail]
	other = "Unable to update the description for {{.Org}}/{{.Repo}}"

	[repo_update_homepage_pass]
	other = "The homepage for {{.Org}}/{{.Repo}} has been updated:\nHomepage: {{.Homepage}}"

	[repo_update_homepage_fail]
	other = "Unable to update the homepage for {{.Org}}/{{.Repo}}"

	[org_teams_header]
	other = "Showing {{.Count}} team(s) for {{.Org}}:\n"

	[org_teams_item]
	other = "Name: {{.Name}}, Slug: {{.Slug}}, ID: {{.ID}}, Perms: {{.Perms}}\n"

	[org_team_add_missing_name]
	other = "Missing the name option\n"

	[org_team_add_missing_perms]
	other = "Missing the perms option\n"

	[org_team_add_invalid_perms]
	other = "Valid perms are: pull push admin -- they can be selectively enabled via the config\n"

	[org_team_add_perm_not_allowed]
	other = "Sorry, the permission level you requested was not allowed in the config. Right now the only perms permitted are: {{.Perms}}"

	[org_team_add_pass]
	other = "The '{{.Name}}' team was created; Slug: {{.Slug}}, ID: {{.ID}}, Perms: {{.Perms}}"

	[org_team_rm_pass]
	other = "The '{{.Name}}' team was deleted. Its ID was {{.ID}}"

	[org_team_rm_fail]
	other = "Something went wrong trying to delete the '{{.Name}}' team. Is Github having issues?"

	[org_user_add_pass]
	other = "{{.Username}} has been added to the '{{.Org}}/{{.Team}}' ({{.Slug}}) team"

	[org_user_add_fail]
	other = "Failed to add the user to the '{{.Team}}' team for some unknown reason"

	[org_user_rm_pass]
	other = "{{.Username}} has been removed from the '{{.Org}}/{{.Team}}' ({{.Slug}}) team"

	[org_user_rm_fail]
	other = "Failed to remove the user from the '{{.Team}}' team for some unknown reason"

	[org_eject_pass]
	other = "Ejected {{.Username}} out of {{.Org}}"

	[org_eject_fail]
	other = "Failed to eject the user from the organization for an unknown reason"

	[pr_not_found]
	other = "Pull request #{{.Number}} on {{.Org}}/{{.Repo}} not found"

	[pr_info_header]
	other = "{{.Repo}} #{{.Number}}: '{{.Title}}' :: {{.URL}}\n"

	[pr_info_status]
	other = "Opened By: {{.User}}, State: {{.State}}, Build: {{.Build}}\n"

	[pr_info_merged]
	other = "Merged By: {{.MergedBy}}\n"

	[pr_info_mergeable]
	other = "Mergeable: {{.Mergeable}}\n"

	[pr_info_commits]
	other = "Commits: {{.Commits}} (+{{.Additions}}/-{{.Deletions}}, {{.ChangedFiles}} files) :: Compare: {{.Compare}}\n"

	[pr_info_comments]
	other = "Comments: {{.Comments}} main, {{.ReviewComments}} review\n"

	[pr_merge_pass]
	other = "Merged pull request #{{.Number}} from {{.Org}}/{{.Branch}}\n{{.Title}}"

	[pr_merge_fail]
	other = "Failed trying to merge PR #{{.Number}} ({{.Title}}) :: {{.URL}}\nMessage: {{.Message}}"

	[pr_list_banner]
	other = "This repo has more than {{.Max}} open pull requests, showing the 10 oldest and 10 newest:\n"

	[pr_list_empty]
	other = "This repo has no open pull requests"

	[issues_list_header]
	other = "Showing {{.Count}} issue(s) for {{.Repo}}\n"

	[issues_list_item]
	other = "{{.Repo}} #{{.Number}}: '{{.Title}}' opened by {{.User}} :: {{.URL}}\n"

	[issues_list_empty]
	other = "There are no open issues for {{.Repo}}"

	[issues_repo_not_found]
	other = "That repo ({{.Repo}}) was not found"

	[issues_invalid_header]
	other = "Invalid option(s):\n"

	[issues_invalid_state]
	other = "Issues can be one of the following states: 'open', 'closed', or 'all'\n"

	[issues_invalid_sort]
	other = "Issues can be sorted by one of the following: 'created', 'updated', 'comments'\n"

	[issues_invalid_direction]
	other = "Issues can be ordered either 'asc' (ascending) or 'desc' (descending)\n"

	[issues_invalid_option_api]
	other = "An invalid option was provided, here's the error from GitHub:\n{{.Message}}"
	`
