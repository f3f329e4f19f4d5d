package notify

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// slackNotifier delivers poll results as Slack DMs, resolving each recipient
// by their email address
type slackNotifier struct {
	api *slack.Client
}

// NewSlack creates a Slack-backed Notifier with the provided bot token
func NewSlack(token string) (Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &slackNotifier{
		api: slack.New(token),
	}, nil
}

func (n *slackNotifier) Notify(ctx context.Context, recipients []model.Recipient, overlap *model.OverlapResult, suggestion *model.Suggestion, meetingType types.MeetingType) []Result {
	return fanOut(ctx, recipients, func(ctx context.Context, recipient model.Recipient) error {
		user, err := n.api.GetUserByEmailContext(ctx, recipient.Email)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve Slack user", goerr.V("email", recipient.Email))
		}

		channel, _, _, err := n.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
			Users: []string{user.ID},
		})
		if err != nil {
			return goerr.Wrap(err, "failed to open DM", goerr.V("userID", user.ID))
		}

		text := buildSubject(overlap) + "\n\n" + buildBody(recipient, overlap, suggestion, meetingType)
		if _, _, err := n.api.PostMessageContext(ctx, channel.ID, slack.MsgOptionText(text, false)); err != nil {
			return goerr.Wrap(err, "failed to post message", goerr.V("channelID", channel.ID))
		}

		return nil
	})
}
