package inmemory

import (
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

type RepoManager struct {
	selectedAccountRepository domain.SelectedAccountRepository
	deriveTypeRepository      domain.DeriveTypeRepository
	dappConnectionRepository  domain.DappConnectionRepository
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		selectedAccountRepository: NewSelectedAccountRepositoryImpl(),
		deriveTypeRepository:      NewDeriveTypeRepositoryImpl(),
		dappConnectionRepository:  NewDappConnectionRepositoryImpl(),
	}
}

func (d *RepoManager) SelectedAccountRepository() domain.SelectedAccountRepository {
	return d.selectedAccountRepository
}

func (d *RepoManager) DeriveTypeRepository() domain.DeriveTypeRepository {
	return d.deriveTypeRepository
}

func (d *RepoManager) DappConnectionRepository() domain.DappConnectionRepository {
	return d.dappConnectionRepository
}

func (d *RepoManager) Close() {}
