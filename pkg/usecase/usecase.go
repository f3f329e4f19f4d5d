package usecase

import (
	"github.com/schedlab/tzquorum/pkg/domain/interfaces"
	"github.com/schedlab/tzquorum/pkg/domain/model"
	"github.com/schedlab/tzquorum/pkg/service/notify"
	"github.com/schedlab/tzquorum/pkg/service/reasoning"
)

type UseCases struct {
	repo     interfaces.Repository
	reasoner reasoning.Reasoner
	notifier notify.Notifier
	policy   model.Policy

	Meeting *MeetingUseCase
	Suggest *SuggestUseCase
}

type Option func(*UseCases)

// WithReasoner enables LLM-assisted compromise selection. Without it the
// deterministic fallback is always used.
func WithReasoner(r reasoning.Reasoner) Option {
	return func(uc *UseCases) {
		uc.reasoner = r
	}
}

// WithNotifier enables result delivery on poll completion
func WithNotifier(n notify.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithPolicy overrides the default scheduling policy
func WithPolicy(p model.Policy) Option {
	return func(uc *UseCases) {
		uc.policy = p
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		policy: model.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Suggest = NewSuggestUseCase(uc.reasoner, uc.policy)
	uc.Meeting = NewMeetingUseCase(repo, uc.Suggest, uc.notifier)

	return uc
}
