package game

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// RegistryDeps are the collaborators handed to every engine the
// registry creates.
type RegistryDeps struct {
	Catalog   *Catalog
	Wallet    Wallet
	Broadcast Broadcaster
	Store     Store
	Stakes    []int
	Config    EngineConfig
}

// Registry is the process-wide lookup of live engines keyed by session
// id. Engines are created lazily per stake tier and evicted once the
// session reaches a terminal state. Its own mutex only guards the
// insert/evict/lookup map; session state stays behind each engine's
// lock.
type Registry struct {
	mu      sync.Mutex
	engines map[string]*Engine
	stakes  map[int]bool
	deps    RegistryDeps
}

func NewRegistry(deps RegistryDeps) *Registry {
	stakes := make(map[int]bool, len(deps.Stakes))
	for _, s := range deps.Stakes {
		stakes[s] = true
	}
	return &Registry{
		engines: make(map[string]*Engine),
		stakes:  stakes,
		deps:    deps,
	}
}

// OpenForStake returns the open lobby for a stake tier, creating one
// if no session of that stake is currently joinable. Lookup and create
// happen under one lock so two concurrent joins cannot spawn two
// lobbies for the same tier. Stakes outside the configured tiers are
// rejected; an empty tier list admits any stake.
func (r *Registry) OpenForStake(stake int) (*Engine, error) {
	if len(r.stakes) > 0 && !r.stakes[stake] {
		return nil, ErrInvalidStake
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, eng := range r.engines {
		if eng.StakeTier() == stake && eng.Joinable() {
			return eng, nil
		}
	}

	id := uuid.NewString()
	eng := NewEngine(NewSession(id, stake), r.deps.Catalog, r.deps.Wallet, r.deps.Broadcast, r.deps.Store, r.deps.Config)
	eng.onTerminal = r.evict
	r.engines[id] = eng
	log.Printf("[Registry] opened session %s for stake %d", id, stake)
	return eng, nil
}

// Get returns the live engine for a session id.
func (r *Registry) Get(id string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	eng, ok := r.engines[id]
	return eng, ok
}

// Sessions snapshots every live session.
func (r *Registry) Sessions() []SessionState {
	r.mu.Lock()
	engines := make([]*Engine, 0, len(r.engines))
	for _, eng := range r.engines {
		engines = append(engines, eng)
	}
	r.mu.Unlock()

	states := make([]SessionState, 0, len(engines))
	for _, eng := range engines {
		states = append(states, eng.State())
	}
	return states
}

func (r *Registry) evict(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.engines[id]; ok {
		delete(r.engines, id)
		log.Printf("[Registry] evicted session %s", id)
	}
}
