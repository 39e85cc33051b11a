package domain

// Topic is the name an event is published under.
type Topic string

const (
	TopicSelectedAccountUpdate    Topic = "SelectedAccountUpdate"
	TopicFinalizeWalletSetupStep  Topic = "FinalizeWalletSetupStep"
	TopicFinalizeWalletSetupError Topic = "FinalizeWalletSetupError"
	TopicConfirmAccountSelected   Topic = "ConfirmAccountSelected"
	TopicGlobalDeriveTypeUpdate   Topic = "GlobalDeriveTypeUpdate"
)

// Event is a message travelling on the in-process event bus.
type Event interface {
	Topic() Topic
}

// Origin tags every message with the scene instance that produced it, so
// subscribers can drop their own echoes.
type Origin struct {
	Scene      Scene
	InstanceID string
}

type SelectedAccountUpdateEvent struct {
	Origin          Origin
	SelectedAccount SelectedAccount
}

func (SelectedAccountUpdateEvent) Topic() Topic {
	return TopicSelectedAccountUpdate
}

type FinalizeWalletSetupStep string

const (
	StepCreatingWallet     FinalizeWalletSetupStep = "CreatingWallet"
	StepGeneratingAccounts FinalizeWalletSetupStep = "GeneratingAccounts"
	StepEncryptingData     FinalizeWalletSetupStep = "EncryptingData"
	StepReady              FinalizeWalletSetupStep = "Ready"
)

type FinalizeWalletSetupStepEvent struct {
	Step FinalizeWalletSetupStep
}

func (FinalizeWalletSetupStepEvent) Topic() Topic {
	return TopicFinalizeWalletSetupStep
}

type FinalizeWalletSetupErrorEvent struct {
	Err error
}

func (FinalizeWalletSetupErrorEvent) Topic() Topic {
	return TopicFinalizeWalletSetupError
}

type ConfirmAccountSelectedEvent struct {
	Origin         Origin
	IndexedAccount *IndexedAccount
	OthersAccount  *Account
	NetworkID      string
}

func (ConfirmAccountSelectedEvent) Topic() Topic {
	return TopicConfirmAccountSelected
}

type GlobalDeriveTypeUpdateEvent struct {
	Origin     Origin
	Scope      DeriveTypeScope
	NetworkID  string
	DeriveType DeriveType
}

func (GlobalDeriveTypeUpdateEvent) Topic() Topic {
	return TopicGlobalDeriveTypeUpdate
}

// AutoSelectTrigger names the removal that caused an explicit auto-select.
type AutoSelectTrigger string

const (
	TriggerNone                    AutoSelectTrigger = ""
	TriggerRemoveWallet            AutoSelectTrigger = "removeWallet"
	TriggerRemoveAccount           AutoSelectTrigger = "removeAccount"
	TriggerRemoveLastOthersAccount AutoSelectTrigger = "removeLastOthersAccount"
)
