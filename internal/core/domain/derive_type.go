package domain

// DeriveTypeScope partitions the global derive type preference table.
type DeriveTypeScope string

const (
	DeriveTypeScopeGlobal   DeriveTypeScope = "global"
	DeriveTypeScopeDiscover DeriveTypeScope = "discover"
)

// GlobalDeriveTypes is the preferred derive type per network, per scope.
type GlobalDeriveTypes map[DeriveTypeScope]map[string]DeriveType

// Get returns the preferred derive type of a network in a scope, or "" if
// none was saved.
func (g GlobalDeriveTypes) Get(scope DeriveTypeScope, networkID string) DeriveType {
	if g == nil {
		return ""
	}
	return g[scope][networkID]
}

// Set stores the preferred derive type of a network in a scope.
func (g GlobalDeriveTypes) Set(
	scope DeriveTypeScope, networkID string, deriveType DeriveType,
) {
	if g[scope] == nil {
		g[scope] = make(map[string]DeriveType)
	}
	g[scope][networkID] = deriveType
}
