package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/schedlab/tzquorum/pkg/service/notify"
	"github.com/schedlab/tzquorum/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Notify holds CLI flags for the notification channel
type Notify struct {
	channel       string
	slackBotToken string
	smtpHost      string
	smtpPort      string
	smtpFrom      string
}

// Flags returns CLI flags for notification configuration
func (n *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notify-channel",
			Usage:       "Notification channel (slack, smtp, or none)",
			Value:       "none",
			Sources:     cli.EnvVars("TZQUORUM_NOTIFY_CHANNEL"),
			Destination: &n.channel,
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for DM delivery",
			Sources:     cli.EnvVars("TZQUORUM_SLACK_BOT_TOKEN"),
			Destination: &n.slackBotToken,
		},
		&cli.StringFlag{
			Name:        "smtp-host",
			Usage:       "SMTP relay host",
			Sources:     cli.EnvVars("TZQUORUM_SMTP_HOST"),
			Destination: &n.smtpHost,
		},
		&cli.StringFlag{
			Name:        "smtp-port",
			Usage:       "SMTP relay port",
			Value:       "587",
			Sources:     cli.EnvVars("TZQUORUM_SMTP_PORT"),
			Destination: &n.smtpPort,
		},
		&cli.StringFlag{
			Name:        "smtp-from",
			Usage:       "From address for poll result mail",
			Sources:     cli.EnvVars("TZQUORUM_SMTP_FROM"),
			Destination: &n.smtpFrom,
		},
	}
}

// Configure builds the configured Notifier. Returns nil when notification
// is disabled.
func (n *Notify) Configure() (notify.Notifier, error) {
	switch n.channel {
	case "none", "":
		return nil, nil

	case "slack":
		notifier, err := notify.NewSlack(n.slackBotToken)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize Slack notifier")
		}
		logging.Default().Info("Slack notification enabled")
		return notifier, nil

	case "smtp":
		notifier, err := notify.NewMail(n.smtpHost, n.smtpPort, n.smtpFrom)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize SMTP notifier")
		}
		logging.Default().Info("SMTP notification enabled", "host", n.smtpHost)
		return notifier, nil

	default:
		return nil, goerr.New("invalid notification channel", goerr.V("channel", n.channel))
	}
}
