package pubsub

import (
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

// Service wraps the event bus with typed publishers and subscribers for the
// events of the account selector.
type Service struct {
	bus ports.EventBus
}

func NewService(bus ports.EventBus) *Service {
	return &Service{bus}
}

func (s *Service) EventBus() ports.EventBus {
	return s.bus
}

func (s *Service) PublishSelectedAccountUpdate(
	origin domain.Origin, account domain.SelectedAccount,
) {
	s.bus.Publish(domain.SelectedAccountUpdateEvent{
		Origin:          origin,
		SelectedAccount: account,
	})
}

func (s *Service) PublishFinalizeWalletSetupStep(
	step domain.FinalizeWalletSetupStep,
) {
	s.bus.Publish(domain.FinalizeWalletSetupStepEvent{Step: step})
}

func (s *Service) PublishFinalizeWalletSetupError(err error) {
	s.bus.Publish(domain.FinalizeWalletSetupErrorEvent{Err: err})
}

func (s *Service) PublishConfirmAccountSelected(
	origin domain.Origin, indexedAccount *domain.IndexedAccount,
	othersAccount *domain.Account, networkID string,
) {
	s.bus.Publish(domain.ConfirmAccountSelectedEvent{
		Origin:         origin,
		IndexedAccount: indexedAccount,
		OthersAccount:  othersAccount,
		NetworkID:      networkID,
	})
}

func (s *Service) PublishGlobalDeriveTypeUpdate(
	origin domain.Origin, scope domain.DeriveTypeScope,
	networkID string, deriveType domain.DeriveType,
) {
	s.bus.Publish(domain.GlobalDeriveTypeUpdateEvent{
		Origin:     origin,
		Scope:      scope,
		NetworkID:  networkID,
		DeriveType: deriveType,
	})
}

func (s *Service) OnSelectedAccountUpdate(
	handler func(domain.SelectedAccountUpdateEvent),
) func() {
	return s.bus.Subscribe(
		domain.TopicSelectedAccountUpdate,
		func(e domain.Event) {
			if ev, ok := e.(domain.SelectedAccountUpdateEvent); ok {
				handler(ev)
			}
		},
	)
}

func (s *Service) OnGlobalDeriveTypeUpdate(
	handler func(domain.GlobalDeriveTypeUpdateEvent),
) func() {
	return s.bus.Subscribe(
		domain.TopicGlobalDeriveTypeUpdate,
		func(e domain.Event) {
			if ev, ok := e.(domain.GlobalDeriveTypeUpdateEvent); ok {
				handler(ev)
			}
		},
	)
}

func (s *Service) OnFinalizeWalletSetupStep(
	handler func(domain.FinalizeWalletSetupStepEvent),
) func() {
	return s.bus.Subscribe(
		domain.TopicFinalizeWalletSetupStep,
		func(e domain.Event) {
			if ev, ok := e.(domain.FinalizeWalletSetupStepEvent); ok {
				handler(ev)
			}
		},
	)
}

func (s *Service) OnFinalizeWalletSetupError(
	handler func(domain.FinalizeWalletSetupErrorEvent),
) func() {
	return s.bus.Subscribe(
		domain.TopicFinalizeWalletSetupError,
		func(e domain.Event) {
			if ev, ok := e.(domain.FinalizeWalletSetupErrorEvent); ok {
				handler(ev)
			}
		},
	)
}

func (s *Service) OnConfirmAccountSelected(
	handler func(domain.ConfirmAccountSelectedEvent),
) func() {
	return s.bus.Subscribe(
		domain.TopicConfirmAccountSelected,
		func(e domain.Event) {
			if ev, ok := e.(domain.ConfirmAccountSelectedEvent); ok {
				handler(ev)
			}
		},
	)
}
