package domain

import "fmt"

// SceneName identifies an independent UI context owning its own selection
// slots.
type SceneName string

const (
	SceneHome           SceneName = "home"
	SceneSwap           SceneName = "swap"
	SceneDiscover       SceneName = "discover"
	SceneHomeURLAccount SceneName = "homeUrlAccount"
	SceneAddressInput   SceneName = "addressInput"
	SceneSettings       SceneName = "settings"
	SceneAccountManager SceneName = "accountManager"
)

var sceneNames = map[SceneName]struct{}{
	SceneHome:           {},
	SceneSwap:           {},
	SceneDiscover:       {},
	SceneHomeURLAccount: {},
	SceneAddressInput:   {},
	SceneSettings:       {},
	SceneAccountManager: {},
}

// ParseSceneName returns the scene name matching the given string.
func ParseSceneName(name string) (SceneName, error) {
	s := SceneName(name)
	if _, ok := sceneNames[s]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	return s, nil
}

// IsURLScoped returns whether scenes with this name are further identified by
// a dapp url.
func (s SceneName) IsURLScoped() bool {
	return s == SceneDiscover
}

// CanAutoSelect returns whether an empty or broken selection of this scene
// may be replaced automatically. Manual address entry flows must stay empty.
func (s SceneName) CanAutoSelect() bool {
	return s != SceneAddressInput
}

// DeriveTypeScope returns the scope of the global derive type table the scene
// reads its preferences from.
func (s SceneName) DeriveTypeScope() DeriveTypeScope {
	if s == SceneDiscover {
		return DeriveTypeScopeDiscover
	}
	return DeriveTypeScopeGlobal
}

// UsesGlobalDeriveType returns whether the scene reads the global scope of the
// derive type table.
func (s SceneName) UsesGlobalDeriveType() bool {
	return s.DeriveTypeScope() == DeriveTypeScopeGlobal
}

// DefaultSlots returns the selection slots a scene uses out of the box. Swap
// needs a "from" and a "to" account.
func (s SceneName) DefaultSlots() []int {
	if s == SceneSwap {
		return []int{0, 1}
	}
	return []int{0}
}

// Scene is the identity of a single selection slot.
type Scene struct {
	Name SceneName
	URL  string
	Num  int
}

// HomeScene is the slot every sync-with-home scene merges into.
var HomeScene = Scene{Name: SceneHome, Num: 0}

// Equal compares two scene identities. The url is only relevant for url
// scoped scenes.
func (s Scene) Equal(other Scene) bool {
	if s.Name != other.Name || s.Num != other.Num {
		return false
	}
	if s.Name.IsURLScoped() {
		return s.URL == other.URL
	}
	return true
}

// SyncsWithHome returns whether writes to this slot are mirrored into the home
// scene and vice versa.
func (s Scene) SyncsWithHome() bool {
	if s.Num != 0 {
		return false
	}
	switch s.Name {
	case SceneHome, SceneSwap, SceneSettings, SceneAccountManager:
		return true
	default:
		return false
	}
}

func (s Scene) String() string {
	if s.URL != "" {
		return fmt.Sprintf("%s(%s)#%d", s.Name, s.URL, s.Num)
	}
	return fmt.Sprintf("%s#%d", s.Name, s.Num)
}
