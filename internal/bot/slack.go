package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/nlopes/slack"

	"github.com/scepticulous/lita-github/internal/logger"
)

// Slack connects the router to the Slack RTM API. Commands are accepted
// when the bot is mentioned or in a direct message channel.
type Slack struct {
	api    *slack.Client
	rtm    *slack.RTM
	router *Router

	botID   string
	mention string
}

func NewSlack(token string, router *Router) *Slack {
	api := slack.New(token)
	return &Slack{
		api:    api,
		rtm:    api.NewRTM(),
		router: router,
	}
}

// Run pumps RTM events until the context is canceled or authentication
// fails.
func (s *Slack) Run(ctx context.Context) error {
	go s.rtm.ManageConnection()

	for {
		select {
		case <-ctx.Done():
			if err := s.rtm.Disconnect(); err != nil {
				logger.Warn(ctx, "slack disconnect failed", "error", err)
			}
			return ctx.Err()
		case event := <-s.rtm.IncomingEvents:
			switch data := event.Data.(type) {
			case *slack.ConnectedEvent:
				s.botID = data.Info.User.ID
				s.mention = "<@" + s.botID + ">"
				logger.Info(ctx, "connected to slack",
					"bot_id", s.botID, "team", data.Info.Team.Name)
			case *slack.MessageEvent:
				s.handleMessage(ctx, data)
			case *slack.RTMError:
				logger.Warn(ctx, "slack rtm error", "error", data.Error())
			case *slack.InvalidAuthEvent:
				return errors.New("slack: invalid credentials")
			}
		}
	}
}

func (s *Slack) handleMessage(ctx context.Context, event *slack.MessageEvent) {
	if event.BotID != "" || event.User == "" || event.SubType == "bot_message" {
		return
	}

	text, ok := s.commandText(event)
	if !ok {
		return
	}

	ctx = logger.With(ctx, "channel", event.Channel, "user", event.User)
	logger.Debug(ctx, "dispatching command", "text", text)

	reply, matched := s.router.Dispatch(ctx, text)
	if !matched || reply == "" {
		return
	}
	s.rtm.SendMessage(s.rtm.NewOutgoingMessage(reply, event.Channel))
}

// commandText strips the bot mention and reports whether the message was
// addressed to the bot at all. Direct message channels always start
// with 'D' and need no mention.
func (s *Slack) commandText(event *slack.MessageEvent) (string, bool) {
	text := strings.TrimSpace(event.Text)

	if s.mention != "" && strings.HasPrefix(text, s.mention) {
		return strings.Trim(strings.TrimPrefix(text, s.mention), " :"), true
	}
	if strings.HasPrefix(event.Channel, "D") {
		return text, true
	}
	return "", false
}
