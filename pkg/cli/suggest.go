package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/schedlab/tzquorum/pkg/cli/config"
	"github.com/schedlab/tzquorum/pkg/domain/types"
	"github.com/schedlab/tzquorum/pkg/service/reasoning"
	"github.com/schedlab/tzquorum/pkg/service/schedule"
	"github.com/schedlab/tzquorum/pkg/usecase"
	"github.com/schedlab/tzquorum/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSuggest() *cli.Command {
	var meetingID string
	var timezone string
	var fallbackOnly bool
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "meeting-id",
			Usage:       "Meeting ID to compute a result for",
			Required:    true,
			Destination: &meetingID,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "Timezone for printed times",
			Value:       "UTC",
			Destination: &timezone,
		},
		&cli.BoolFlag{
			Name:        "fallback-only",
			Usage:       "Skip the LLM and use the deterministic selection",
			Destination: &fallbackOnly,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:  "suggest",
		Usage: "Compute the overlap result (and compromise suggestion) for a meeting",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load scheduling policy")
			}

			ucOpts := []usecase.Option{usecase.WithPolicy(policy)}
			if !fallbackOnly {
				llmClient, err := geminiCfg.Configure(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize Gemini client")
				}
				if llmClient != nil {
					reasoner, err := reasoning.New(llmClient)
					if err != nil {
						return goerr.Wrap(err, "failed to initialize reasoner")
					}
					ucOpts = append(ucOpts, usecase.WithReasoner(reasoner))
				}
			}

			uc := usecase.New(repo, ucOpts...)

			meeting, participants, err := uc.Meeting.GetMeeting(ctx, types.MeetingID(meetingID))
			if err != nil {
				return goerr.Wrap(err, "failed to load meeting", goerr.V("id", meetingID))
			}

			overlap, suggestion, err := uc.Meeting.MeetingResult(ctx, meeting.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to compute result")
			}

			title := color.New(color.FgCyan, color.Bold)
			title.Printf("%s (%s, %d min slots, %d/%d responses)\n\n",
				meeting.Title, meeting.MeetingType, meeting.SlotDuration.Minutes(),
				len(participants), meeting.ExpectedParticipants)

			recurring := meeting.MeetingType == types.MeetingTypeRecurring
			if overlap.HasOverlap {
				color.Green("Common availability found:")
				for _, slot := range overlap.OverlappingSlots {
					local := schedule.FormatInZone(slot, timezone, recurring)
					fmt.Printf("  %s, %s - %s\n", local.DateLabel, local.StartLabel, local.EndLabel)
				}
				return nil
			}

			color.Yellow("No common availability window.")
			if suggestion == nil {
				color.Red("No compromise slot is representable in the polled range.")
				return nil
			}

			local := schedule.FormatInZone(suggestion.SuggestedTime, timezone, recurring)
			color.Green("Suggested compromise: %s, %s - %s", local.DateLabel, local.StartLabel, local.EndLabel)
			fmt.Printf("\n%s\n\n", suggestion.Reasoning)
			for _, impact := range suggestion.ParticipantImpact {
				fmt.Printf("  %-20s %s (%s)\n", impact.Name, impact.LocalTime, impact.Tier)
			}

			return nil
		},
	}
}
