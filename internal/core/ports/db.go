package ports

import "github.com/tdex-network/account-selector/internal/core/domain"

// RepoManager interface defines the methods to access the repositories of the
// local persistence layer.
type RepoManager interface {
	SelectedAccountRepository() domain.SelectedAccountRepository
	DeriveTypeRepository() domain.DeriveTypeRepository
	DappConnectionRepository() domain.DappConnectionRepository

	Close()
}
