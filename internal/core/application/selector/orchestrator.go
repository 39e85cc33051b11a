package selector

import (
	"context"
	"fmt"

	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// FinalizeWalletSetupResult is what a wallet creation workflow produced.
type FinalizeWalletSetupResult struct {
	Created  *ports.CreateWalletResult
	Accounts *ports.AddDefaultNetworkAccountsResult
	// Standard is the non-hidden wallet created along with a hidden one.
	Standard *FinalizeWalletSetupResult
}

// withFinalizeWalletSetupStep runs a wallet creation in two phases and
// publishes the progress of each. Any error is shown to the known error
// matcher, announced and returned.
func (s *Scene) withFinalizeWalletSetupStep(
	ctx context.Context,
	createWallet func(ctx context.Context) error,
	generateAccounts func(ctx context.Context) error,
) (err error) {
	pacing := s.svc.cfg.Pacing
	defer func() {
		if err != nil {
			s.svc.matcher.ShowDialogIfErrorMatched(ctx, err)
			s.svc.pubsub.PublishFinalizeWalletSetupError(err)
		}
	}()

	s.svc.pubsub.PublishFinalizeWalletSetupStep(domain.StepCreatingWallet)
	if err = sleep(ctx, pacing.StepDelay); err != nil {
		return
	}
	if err = createWallet(ctx); err != nil {
		return
	}
	if err = sleep(ctx, pacing.MinDuration); err != nil {
		return
	}

	s.svc.pubsub.PublishFinalizeWalletSetupStep(domain.StepGeneratingAccounts)
	if err = sleep(ctx, pacing.StepDelay); err != nil {
		return
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return generateAccounts(egCtx) })
	eg.Go(func() error { return sleep(egCtx, pacing.MinDuration) })
	if err = eg.Wait(); err != nil {
		return
	}

	s.svc.pubsub.PublishFinalizeWalletSetupStep(domain.StepEncryptingData)
	if err = sleep(ctx, pacing.MinDuration); err != nil {
		return
	}

	s.svc.pubsub.PublishFinalizeWalletSetupStep(domain.StepReady)
	err = sleep(ctx, pacing.ReadyDelay)
	return
}

type AddDefaultNetworkAccountsParams struct {
	WalletID                  string
	IndexedAccountID          string
	SkipDeviceCancel          bool
	HideCheckingDeviceLoading bool
}

// AddDefaultNetworkAccounts generates the default network accounts of a
// wallet. Failures are reported one by one and never abort the batch.
func (s *Scene) AddDefaultNetworkAccounts(
	ctx context.Context, params AddDefaultNetworkAccountsParams,
) (*ports.AddDefaultNetworkAccountsResult, error) {
	if params.WalletID == "" {
		return nil, domain.ErrMissingWalletID
	}
	wallet, err := s.svc.account.GetWallet(ctx, params.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.IsMocked {
		return &ports.AddDefaultNetworkAccountsResult{}, nil
	}

	var custom []ports.NetworkDeriveType
	if home := s.store.Get(0); home.NetworkID != "" &&
		!domain.IsAllNetworks(home.NetworkID) {
		custom = append(custom, ports.NetworkDeriveType{
			NetworkID:  home.NetworkID,
			DeriveType: home.DeriveType,
		})
	}

	if wallet.Type.IsHardware() && !params.HideCheckingDeviceLoading &&
		wallet.Device != nil {
		hide := s.svc.notifier.ShowCheckingDevice(wallet.Device.ConnectID)
		defer hide()
	}

	result, err := s.svc.batch.AddDefaultNetworkAccounts(
		ctx, ports.AddDefaultNetworkAccountsParams{
			WalletID:                  params.WalletID,
			IndexedAccountID:          params.IndexedAccountID,
			SkipDeviceCancel:          params.SkipDeviceCancel,
			HideCheckingDeviceLoading: params.HideCheckingDeviceLoading,
			CustomNetworks:            custom,
		},
	)
	if err != nil {
		return nil, err
	}

	if !wallet.Type.IsAirGapped() {
		for _, failed := range result.Failed {
			s.svc.notifier.NotifyError(fmt.Sprintf(
				"failed to create %s account on %s",
				failed.DeriveType, failed.NetworkID,
			), failed.Err)
		}
	}
	if len(result.Failed) > 0 {
		s.logger(0).WithField("failed", len(result.Failed)).
			Warn("some default network accounts were not created")
	}

	s.svc.RefreshAll()
	return result, nil
}

func (s *Scene) addDefaultNetworkAccountsOf(
	ctx context.Context, created *ports.CreateWalletResult,
	skipDeviceCancel, hideCheckingDeviceLoading bool,
) (*ports.AddDefaultNetworkAccountsResult, error) {
	params := AddDefaultNetworkAccountsParams{
		WalletID:                  created.Wallet.ID,
		SkipDeviceCancel:          skipDeviceCancel,
		HideCheckingDeviceLoading: hideCheckingDeviceLoading,
	}
	if created.IndexedAccount != nil {
		params.IndexedAccountID = created.IndexedAccount.ID
	}
	return s.AddDefaultNetworkAccounts(ctx, params)
}

// AutoSelectToCreatedWallet selects the first indexed account of a newly
// created wallet in slot 0.
func (s *Scene) AutoSelectToCreatedWallet(
	ctx context.Context, created *ports.CreateWalletResult,
) error {
	if created == nil || created.Wallet.IsMocked || created.IndexedAccount == nil {
		return nil
	}
	return s.UpdateSelectedAccountForHdOrHwAccount(
		ctx, 0, created.Wallet.ID, created.IndexedAccount.ID,
	)
}

func (s *Scene) CreateHDWallet(
	ctx context.Context, params ports.CreateHDWalletParams,
) (*FinalizeWalletSetupResult, error) {
	res := &FinalizeWalletSetupResult{}
	err := s.withFinalizeWalletSetupStep(ctx,
		func(ctx context.Context) (err error) {
			if res.Created, err = s.svc.account.CreateHDWallet(ctx, params); err != nil {
				return
			}
			return s.AutoSelectToCreatedWallet(ctx, res.Created)
		},
		func(ctx context.Context) (err error) {
			res.Accounts, err = s.addDefaultNetworkAccountsOf(ctx, res.Created, false, false)
			return
		},
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Scene) CreateHWWallet(
	ctx context.Context, params ports.CreateHWWalletParams,
) (*FinalizeWalletSetupResult, error) {
	return s.createHWWallet(ctx, params, s.svc.account.CreateHWWallet)
}

// CreateHWHiddenWallet creates the passphrase protected wallet of a device.
func (s *Scene) CreateHWHiddenWallet(
	ctx context.Context, params ports.CreateHWWalletParams,
) (*FinalizeWalletSetupResult, error) {
	params.PassphraseProtection = true
	return s.createHWWallet(ctx, params, s.svc.account.CreateHWHiddenWallet)
}

func (s *Scene) CreateHWWalletWithoutHidden(
	ctx context.Context, params ports.CreateHWWalletParams,
) (*FinalizeWalletSetupResult, error) {
	params.PassphraseProtection = false
	return s.CreateHWWallet(ctx, params)
}

// CreateHWWalletWithHidden creates the standard wallet of a device and, when
// the device has passphrase protection on, its hidden wallet. The standard
// wallet is then only a mocked placeholder and the hidden one gets selected.
// The accounts of the hidden wallet are generated first so that the device
// asks for the passphrase only once.
func (s *Scene) CreateHWWalletWithHidden(
	ctx context.Context, params ports.CreateHWWalletParams,
) (*FinalizeWalletSetupResult, error) {
	withPassphrase := params.PassphraseProtection
	standard := &FinalizeWalletSetupResult{}
	var hidden *FinalizeWalletSetupResult

	err := s.withFinalizeWalletSetupStep(ctx,
		func(ctx context.Context) (err error) {
			standardParams := params
			standardParams.PassphraseProtection = false
			standardParams.IsMockedStandardHwWallet = withPassphrase
			if standard.Created, err = s.svc.account.CreateHWWallet(
				ctx, standardParams,
			); err != nil {
				return
			}

			if !withPassphrase {
				return s.AutoSelectToCreatedWallet(ctx, standard.Created)
			}

			hiddenParams := params
			hiddenParams.PassphraseProtection = true
			hiddenParams.IsMockedStandardHwWallet = false
			hidden = &FinalizeWalletSetupResult{}
			if hidden.Created, err = s.svc.account.CreateHWHiddenWallet(
				ctx, hiddenParams,
			); err != nil {
				return
			}
			return s.AutoSelectToCreatedWallet(ctx, hidden.Created)
		},
		func(ctx context.Context) (err error) {
			hideStandardLoading := params.HideCheckingDeviceLoading
			if hidden != nil {
				if hidden.Accounts, err = s.addDefaultNetworkAccountsOf(
					ctx, hidden.Created, true, params.HideCheckingDeviceLoading,
				); err != nil {
					return
				}
				hideStandardLoading = true
			}
			standard.Accounts, err = s.addDefaultNetworkAccountsOf(
				ctx, standard.Created, params.SkipDeviceCancel, hideStandardLoading,
			)
			return
		},
	)
	if err != nil {
		return nil, err
	}
	if hidden == nil {
		return standard, nil
	}
	hidden.Standard = standard
	return hidden, nil
}

func (s *Scene) createHWWallet(
	ctx context.Context, params ports.CreateHWWalletParams,
	create func(context.Context, ports.CreateHWWalletParams) (*ports.CreateWalletResult, error),
) (*FinalizeWalletSetupResult, error) {
	res := &FinalizeWalletSetupResult{}
	err := s.withFinalizeWalletSetupStep(ctx,
		func(ctx context.Context) (err error) {
			if res.Created, err = create(ctx, params); err != nil {
				return
			}
			return s.AutoSelectToCreatedWallet(ctx, res.Created)
		},
		func(ctx context.Context) (err error) {
			res.Accounts, err = s.addDefaultNetworkAccountsOf(
				ctx, res.Created, params.SkipDeviceCancel,
				params.HideCheckingDeviceLoading,
			)
			return
		},
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CreateQrWallet creates a wallet backed by an air-gapped device. During
// onboarding, slot 0 moves to the all-networks view if its network got no
// account.
func (s *Scene) CreateQrWallet(
	ctx context.Context, params ports.CreateQrWalletParams,
) (*FinalizeWalletSetupResult, error) {
	if params.Device == nil {
		return nil, domain.ErrMissingQrDevice
	}

	res := &FinalizeWalletSetupResult{}
	err := s.withFinalizeWalletSetupStep(ctx,
		func(ctx context.Context) (err error) {
			if res.Created, err = s.svc.account.CreateQrWallet(ctx, params); err != nil {
				return
			}
			return s.AutoSelectToCreatedWallet(ctx, res.Created)
		},
		func(ctx context.Context) (err error) {
			res.Accounts, err = s.addDefaultNetworkAccountsOf(ctx, res.Created, false, true)
			return
		},
	)
	if err != nil {
		return nil, err
	}

	if params.IsOnboarding {
		networkID := s.store.Get(0).NetworkID
		if networkID != "" && !domain.IsAllNetworks(networkID) &&
			!addedNetwork(res.Accounts, networkID) {
			if err := s.UpdateSelectedAccountNetwork(
				ctx, 0, domain.AllNetworksID,
			); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// UpdateHwWalletsDeprecatedStatus marks the other wallets of a device as
// deprecated once it reports a new device id.
func (s *Scene) UpdateHwWalletsDeprecatedStatus(
	ctx context.Context, connectID, deviceID string,
) error {
	if err := s.svc.account.UpdateWalletsDeprecatedState(
		ctx, connectID, deviceID,
	); err != nil {
		return err
	}
	s.svc.RefreshAll()
	return nil
}

func addedNetwork(
	result *ports.AddDefaultNetworkAccountsResult, networkID string,
) bool {
	if result == nil {
		return false
	}
	for _, added := range result.Added {
		if added.NetworkID == networkID {
			return true
		}
	}
	return false
}
