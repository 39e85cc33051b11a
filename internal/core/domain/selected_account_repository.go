package domain

import "context"

// SelectedAccountRepository is the abstraction for any kind of database
// intended to persist the selection of every scene slot.
type SelectedAccountRepository interface {
	// GetSelectedAccount returns the stored selection of a slot, or nil if the
	// slot was never saved.
	GetSelectedAccount(ctx context.Context, scene Scene) (*SelectedAccount, error)
	// GetSelectedAccountsMap returns every stored slot of a scene.
	GetSelectedAccountsMap(
		ctx context.Context, sceneName SceneName, sceneURL string,
	) (SelectedAccountsMap, error)
	// SaveSelectedAccount creates or replaces the selection of a slot.
	SaveSelectedAccount(
		ctx context.Context, scene Scene, account SelectedAccount,
	) error
}

// DeriveTypeRepository persists the global per-network derive type
// preferences.
type DeriveTypeRepository interface {
	// GetGlobalDeriveTypes returns the whole preference table.
	GetGlobalDeriveTypes(ctx context.Context) (GlobalDeriveTypes, error)
	// SaveGlobalDeriveType sets the preference of a network in a scope.
	SaveGlobalDeriveType(
		ctx context.Context,
		scope DeriveTypeScope, networkID string, deriveType DeriveType,
	) error
}

// DappConnectionRepository persists the accounts connected to each dapp url.
type DappConnectionRepository interface {
	// GetAccountSelectorMap returns the selections connected to the url, or
	// nil if the dapp was never connected.
	GetAccountSelectorMap(
		ctx context.Context, url string,
	) (SelectedAccountsMap, error)
	// SaveConnection replaces the selections connected to the url.
	SaveConnection(
		ctx context.Context, url string, accounts SelectedAccountsMap,
	) error
}
