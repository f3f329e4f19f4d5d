package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/domain/types"
)

// client implements Reasoner on top of a gollem LLM client
type client struct {
	llmClient gollem.LLMClient
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new Reasoner backed by the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (Reasoner, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Choose asks the LLM to select one of the candidate slots. The session is
// constrained to a JSON response schema; a response that still violates the
// schema (including an out-of-range index) is returned as an error so the
// caller can fall back.
func (c *client) Choose(ctx context.Context, input *Input) (*Decision, error) {
	if len(input.Candidates) == 0 {
		return nil, goerr.New("no candidates to choose from")
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(responseSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(input)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty LLM response")
	}

	var llmResp llmResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &llmResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	if llmResp.SelectedSlotIndex < 0 || llmResp.SelectedSlotIndex >= len(input.Candidates) {
		return nil, goerr.New("selected slot index out of range",
			goerr.V("index", llmResp.SelectedSlotIndex),
			goerr.V("candidates", len(input.Candidates)),
		)
	}

	impacts := make([]model.ParticipantImpact, 0, len(llmResp.ParticipantImpact))
	for _, impact := range llmResp.ParticipantImpact {
		tier := types.ConvenienceTier(impact.InconvenienceLevel)
		if !tier.IsValid() {
			tier = types.TierWorkable
		}
		impacts = append(impacts, model.ParticipantImpact{
			Name:      impact.Name,
			LocalTime: impact.LocalTime,
			Tier:      tier,
		})
	}

	return &Decision{
		SelectedIndex: llmResp.SelectedSlotIndex,
		Reasoning:     llmResp.Reasoning,
		Impacts:       impacts,
	}, nil
}

const systemPrompt = `You are a meeting scheduling assistant. Participants across multiple timezones could not find a common availability window, and you must pick the least bad compromise from the candidate slots below.

## Instructions:

1. Weigh how many participants are available against how reasonable the local time is for everyone, including those who are not available.
2. Avoid slots that fall in the middle of the night for any participant when a fairer alternative exists.
3. Pick exactly one candidate by its index and explain the trade-off in two or three sentences.
4. For every participant, report their local time for the chosen slot and how inconvenient it is (ideal, good, workable, or difficult).`

func buildUserPrompt(input *Input) string {
	var sb strings.Builder

	sb.WriteString("## Participants\n\n")
	for _, p := range input.Participants {
		fmt.Fprintf(&sb, "- %s (timezone: %s)\n", p.Name, p.Timezone)
	}

	fmt.Fprintf(&sb, "\n## Candidate slots (%s meeting)\n\n", input.MeetingType)
	for i, cand := range input.Candidates {
		fmt.Fprintf(&sb, "### Candidate %d\n", i)
		fmt.Fprintf(&sb, "- UTC: %s\n", cand.Slot.Start.UTC().Format("Mon Jan 2 15:04"))
		fmt.Fprintf(&sb, "- Available participants: %d of %d\n", cand.AvailableCount, len(input.Participants))
		for _, lt := range cand.LocalTimes {
			fmt.Fprintf(&sb, "- %s: %s (%s)\n", lt.Name, lt.LocalTime, lt.Tier)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Select the best compromise candidate.\n")
	return sb.String()
}

// responseSchema creates the JSON schema for structured output
func responseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "CompromiseSelection",
		Description: "Selected compromise slot with rationale and per-participant impact",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"selected_slot_index": {
				Type:        gollem.TypeInteger,
				Description: "Zero-based index of the chosen candidate slot",
				Required:    true,
			},
			"reasoning": {
				Type:        gollem.TypeString,
				Description: "Why this slot is the best compromise",
				Required:    true,
			},
			"participant_impact": {
				Type:        gollem.TypeArray,
				Description: "Impact of the chosen slot on each participant",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"name": {
							Type:        gollem.TypeString,
							Description: "Participant name",
							Required:    true,
						},
						"local_time": {
							Type:        gollem.TypeString,
							Description: "Chosen slot rendered in the participant's local time",
							Required:    true,
						},
						"inconvenience_level": {
							Type:        gollem.TypeString,
							Description: "One of: ideal, good, workable, difficult",
							Required:    true,
						},
					},
				},
			},
		},
	}
}
