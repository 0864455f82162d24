package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scepticulous/lita-github/internal/domain/models"
	"github.com/scepticulous/lita-github/internal/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCoreHandler(t *testing.T) (*CoreHandler, *MockGitHubAPI) {
	api := &MockGitHubAPI{}
	return NewCoreHandler(api, testConfig(), testTranslations(t)), api
}

func TestCoreStatus(t *testing.T) {
	t.Run("reports green when all is well", func(t *testing.T) {
		h, api := newCoreHandler(t)
		api.On("SystemStatus", mock.Anything).Return(&models.SystemStatus{
			Status: models.StatusGood, Body: "Everything is operating normally.",
			CreatedOn: "1970-01-01 00:00:00 UTC",
		}, nil)

		reply := h.Status(context.Background(), msgWith(nil, "gh status"))

		assert.Equal(t, "GitHub is reporting that all systems are green!", reply)
	})

	t.Run("reports minor issues with the last message", func(t *testing.T) {
		h, api := newCoreHandler(t)
		api.On("SystemStatus", mock.Anything).Return(&models.SystemStatus{
			Status: models.StatusMinor, Body: "Minor issue",
			CreatedOn: "1970-01-01 00:00:21 UTC",
		}, nil)

		reply := h.Status(context.Background(), msgWith(nil, "gh status"))

		assert.Equal(t, "GitHub is reporting minor issues (status:yellow)! Last message:\n1970-01-01 00:00:21 UTC :: Minor issue", reply)
	})

	t.Run("reports major issues with the last message", func(t *testing.T) {
		h, api := newCoreHandler(t)
		api.On("SystemStatus", mock.Anything).Return(&models.SystemStatus{
			Status: models.StatusMajor, Body: "Major issue",
			CreatedOn: "1970-01-01 00:00:42 UTC",
		}, nil)

		reply := h.Status(context.Background(), msgWith(nil, "gh status"))

		assert.Equal(t, "GitHub is reporting major issues (status:red)! Last message:\n1970-01-01 00:00:42 UTC :: Major issue", reply)
	})

	t.Run("falls back to the generic failure reply", func(t *testing.T) {
		h, api := newCoreHandler(t)
		api.On("SystemStatus", mock.Anything).Return(nil, errors.New("down"))

		reply := h.Status(context.Background(), msgWith(nil, "gh status"))

		assert.Contains(t, reply, "An unexpected exception was hit")
	})
}

func TestCoreVersion(t *testing.T) {
	h, _ := newCoreHandler(t)

	reply := h.Version(context.Background(), msgWith(nil, "gh version"))

	assert.Regexp(t, `^lita-github v\d+\.\d+\.\d+$`, reply)
}

func TestCoreTokenGenerate(t *testing.T) {
	t.Run("generates a six digit code", func(t *testing.T) {
		h, _ := newCoreHandler(t)
		h.cfg.TOTPSecret = "GZSDEMLDMY3TQYLG"

		reply := h.TokenGenerate(context.Background(), msgWith(nil, "gh token"))

		assert.Regexp(t, `^\d{6}$`, reply)
	})

	t.Run("reports a missing secret", func(t *testing.T) {
		h, _ := newCoreHandler(t)

		reply := h.TokenGenerate(context.Background(), msgWith(nil, "gh token"))

		assert.Equal(t, "'totp_secret' has not been provided in the config, unable to generate TOTP", reply)
	})
}

func fullTestUser() *models.User {
	return &models.User{
		ID:          787332,
		Login:       "theckman",
		Name:        "Tim Heckman",
		Company:     "PagerDuty, Inc.",
		Location:    "San Francisco, CA",
		Email:       "tim@pagerduty.com",
		HTMLURL:     "https://github.com/theckman",
		SiteAdmin:   false,
		PublicRepos: 42,
		PublicGists: 1,
		Followers:   10,
		Following:   20,
		CreatedAt:   time.Date(2011, 5, 14, 4, 16, 33, 0, time.UTC),
	}
}

func TestCoreWhois(t *testing.T) {
	t.Run("renders the full card", func(t *testing.T) {
		h, api := newCoreHandler(t)
		api.On("GetUser", mock.Anything, "theckman").Return(fullTestUser(), nil)
		api.On("ListUserOrgs", mock.Anything, "theckman").Return([]string{"PagerDuty", "GrapeDuty"}, nil)

		reply := h.Whois(context.Background(), msgWith(map[string]string{"username": "theckman"}, ""))

		assert.Equal(t, "theckman (Tim Heckman) :: https://github.com/theckman\n"+
			"Located: San Francisco, CA\n"+
			"Company: PagerDuty, Inc.\n"+
			"Orgs: PagerDuty, GrapeDuty\n"+
			"ID: 787332, Email: tim@pagerduty.com\n"+
			"GitHub Admin: false, Repos: 42, Gists: 1\n"+
			"Following: 20, Followers: 10, Created: 2011-05-14 04:16:33 UTC", reply)
	})

	t.Run("drops the name from the header when unset", func(t *testing.T) {
		h, api := newCoreHandler(t)
		user := fullTestUser()
		user.Name = ""
		api.On("GetUser", mock.Anything, "theckman").Return(user, nil)
		api.On("ListUserOrgs", mock.Anything, "theckman").Return([]string{"PagerDuty"}, nil)

		reply := h.Whois(context.Background(), msgWith(map[string]string{"username": "theckman"}, ""))

		assert.Contains(t, reply, "theckman :: https://github.com/theckman\n")
	})

	t.Run("omits the optional lines when their fields are empty", func(t *testing.T) {
		h, api := newCoreHandler(t)
		user := fullTestUser()
		user.Location = ""
		user.Company = ""
		user.Email = ""
		api.On("GetUser", mock.Anything, "theckman").Return(user, nil)
		api.On("ListUserOrgs", mock.Anything, "theckman").Return(nil, nil)

		reply := h.Whois(context.Background(), msgWith(map[string]string{"username": "theckman"}, ""))

		assert.NotContains(t, reply, "Located:")
		assert.NotContains(t, reply, "Company:")
		assert.NotContains(t, reply, "Orgs:")
		assert.Contains(t, reply, "ID: 787332\n")
	})

	t.Run("reports an unknown user", func(t *testing.T) {
		h, api := newCoreHandler(t)
		api.On("GetUser", mock.Anything, "theckman").Return(nil, ports.ErrNotFound)

		reply := h.Whois(context.Background(), msgWith(map[string]string{"username": "theckman"}, ""))

		assert.Equal(t, "Sorry, unable to locate the GitHub user theckman", reply)
	})
}
