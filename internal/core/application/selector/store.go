package selector

import (
	"sort"
	"sync"
	"time"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

// Store holds the selections of a scene and the state derived from them.
// Writers other than the engine go through Set, which drops no-op updates.
type Store struct {
	lock *sync.RWMutex

	selected     domain.SelectedAccountsMap
	active       map[int]domain.ActiveAccountInfo
	meta         map[int]domain.UpdateMeta
	storageReady bool
	editMode     bool

	dirty  map[int]struct{}
	notify chan struct{}
}

func newStore() *Store {
	return &Store{
		lock:     &sync.RWMutex{},
		selected: make(domain.SelectedAccountsMap),
		active:   make(map[int]domain.ActiveAccountInfo),
		meta:     make(map[int]domain.UpdateMeta),
		dirty:    make(map[int]struct{}),
		notify:   make(chan struct{}, 1),
	}
}

// Get returns the selection of a slot, or the default value if the slot was
// never set.
func (s *Store) Get(num int) domain.SelectedAccount {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.get(num)
}

// Set applies fn to the current selection of the slot and stores the result
// only if it differs. It returns whether anything changed.
func (s *Store) Set(
	num int, fn func(domain.SelectedAccount) domain.SelectedAccount,
) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	next := fn(s.get(num))
	return s.set(num, next, domain.UpdateMeta{UpdatedAt: time.Now()})
}

// Map returns a copy of every slot of the scene.
func (s *Store) Map() domain.SelectedAccountsMap {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.selected.Clone()
}

// Slots returns the slot numbers holding a selection, sorted.
func (s *Store) Slots() []int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	slots := make([]int, 0, len(s.selected))
	for num := range s.selected {
		slots = append(slots, num)
	}
	sort.Ints(slots)
	return slots
}

func (s *Store) Meta(num int) domain.UpdateMeta {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.meta[num]
}

// ActiveAccountInfo returns the cached resolution of a slot. Ready is false
// until the slot has been resolved since its last change.
func (s *Store) ActiveAccountInfo(num int) domain.ActiveAccountInfo {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.active[num]
}

func (s *Store) StorageReady() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.storageReady
}

func (s *Store) EditMode() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.editMode
}

func (s *Store) SetEditMode(editMode bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.editMode = editMode
}

func (s *Store) get(num int) domain.SelectedAccount {
	if v, ok := s.selected[num]; ok {
		return v
	}
	return domain.DefaultSelectedAccount()
}

func (s *Store) set(
	num int, next domain.SelectedAccount, meta domain.UpdateMeta,
) bool {
	if next == s.get(num) {
		return false
	}
	s.selected[num] = next
	s.meta[num] = meta
	delete(s.active, num)
	s.markDirty(num)
	return true
}

// commit stores next together with its meta if it differs from current.
func (s *Store) commit(
	num int, next domain.SelectedAccount, meta domain.UpdateMeta,
) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.set(num, next, meta)
}

// setActiveAccountInfo caches info only if the slot still holds the
// selection it was resolved from.
func (s *Store) setActiveAccountInfo(
	num int, from domain.SelectedAccount, info domain.ActiveAccountInfo,
) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.get(num) != from {
		return false
	}
	s.active[num] = info
	return true
}

// load publishes the selections read from storage and marks the store ready.
// Every given slot plus the extra ones are scheduled for the effects loop.
func (s *Store) load(m domain.SelectedAccountsMap, slots []int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	now := time.Now()
	for num, v := range m {
		if v != s.get(num) {
			s.selected[num] = v
			s.meta[num] = domain.UpdateMeta{EventEmitDisabled: true, UpdatedAt: now}
			delete(s.active, num)
		}
		s.markDirty(num)
	}
	for _, num := range slots {
		s.markDirty(num)
	}
	s.storageReady = true
}

// touch schedules a slot for the effects loop without changing it.
func (s *Store) touch(nums ...int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, num := range nums {
		delete(s.active, num)
		s.markDirty(num)
	}
}

func (s *Store) markDirty(num int) {
	s.dirty[num] = struct{}{}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Store) drainDirty() []int {
	s.lock.Lock()
	defer s.lock.Unlock()

	nums := make([]int, 0, len(s.dirty))
	for num := range s.dirty {
		nums = append(nums, num)
	}
	s.dirty = make(map[int]struct{})
	sort.Ints(nums)
	return nums
}
