package game

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestRegistry(t *testing.T) (*Registry, *fakeWallet) {
	t.Helper()
	catalog := NewCatalog(10)
	catalog.Generate()
	wallet := newFakeWallet(map[uint]float64{1: 100, 2: 100})
	reg := NewRegistry(RegistryDeps{
		Catalog:   catalog,
		Wallet:    wallet,
		Broadcast: NopBroadcaster{},
		Stakes:    []int{10, 20, 50, 100},
		Config: EngineConfig{
			CountdownSeconds: 60,
			CountdownTick:    time.Hour,
			DrawInterval:     time.Hour,
		},
	})
	return reg, wallet
}

func openForStake(t *testing.T, reg *Registry, stake int) *Engine {
	t.Helper()
	eng, err := reg.OpenForStake(stake)
	if err != nil {
		t.Fatalf("open stake %d: %v", stake, err)
	}
	return eng
}

func TestOpenForStakeReusesOpenLobby(t *testing.T) {
	reg, _ := newTestRegistry(t)

	first := openForStake(t, reg, 10)
	second := openForStake(t, reg, 10)
	if first.ID() != second.ID() {
		t.Fatalf("expected one lobby per stake, got %s and %s", first.ID(), second.ID())
	}

	other := openForStake(t, reg, 20)
	if other.ID() == first.ID() {
		t.Fatal("different stakes must not share a session")
	}
}

func TestOpenForStakeRejectsUnknownTier(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if _, err := reg.OpenForStake(7); !errors.Is(err, ErrInvalidStake) {
		t.Fatalf("expected ErrInvalidStake, got %v", err)
	}
	if got := len(reg.Sessions()); got != 0 {
		t.Fatalf("rejected stake must not open a lobby, got %d sessions", got)
	}
}

func TestOpenForStakeWithoutTierListAdmitsAnyStake(t *testing.T) {
	reg, _ := newTestRegistry(t)
	reg.stakes = nil

	if _, err := reg.OpenForStake(7); err != nil {
		t.Fatalf("open: %v", err)
	}
}

func TestOpenForStakeIsAtomicUnderConcurrency(t *testing.T) {
	reg, _ := newTestRegistry(t)

	var wg sync.WaitGroup
	ids := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eng, err := reg.OpenForStake(50)
			if err != nil {
				t.Errorf("open: %v", err)
				return
			}
			ids <- eng.ID()
		}()
	}
	wg.Wait()
	close(ids)

	first := ""
	for id := range ids {
		if first == "" {
			first = id
			continue
		}
		if id != first {
			t.Fatalf("concurrent joins created two lobbies: %s and %s", first, id)
		}
	}
}

func TestRegistryEvictsTerminalSessions(t *testing.T) {
	reg, _ := newTestRegistry(t)

	eng := openForStake(t, reg, 10)
	id := eng.ID()

	eng.Cancel("closing lobby")

	if _, ok := reg.Get(id); ok {
		t.Fatal("cancelled session still registered")
	}

	replacement := openForStake(t, reg, 10)
	if replacement.ID() == id {
		t.Fatal("evicted session id reused")
	}
}

func TestRegistryEvictsEmptiedLobby(t *testing.T) {
	reg, wallet := newTestRegistry(t)

	eng := openForStake(t, reg, 10)
	id := eng.ID()
	if err := eng.Join(1, "alice", 1); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := eng.Leave(1); err != nil {
		t.Fatalf("leave: %v", err)
	}

	if _, ok := reg.Get(id); ok {
		t.Fatal("emptied lobby still registered")
	}
	if wallet.debitCount(1) != 0 {
		t.Fatal("leave before round start must not debit")
	}

	replacement := openForStake(t, reg, 10)
	if replacement.ID() == id {
		t.Fatal("torn-down lobby reused")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg, _ := newTestRegistry(t)
	if _, ok := reg.Get("nope"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestFullRoundScenario(t *testing.T) {
	// stake 10, two players join, both debited on round start,
	// pool 20, player 1 hits four corners, claim accepted, credited
	// 20, player 2's later claim rejected.
	reg, wallet := newTestRegistry(t)

	eng := openForStake(t, reg, 10)
	if err := eng.Join(1, "alice", 1); err != nil {
		t.Fatalf("join alice: %v", err)
	}
	if err := eng.Join(2, "bob", 2); err != nil {
		t.Fatalf("join bob: %v", err)
	}
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if wallet.balance(1) != 90 || wallet.balance(2) != 90 {
		t.Fatalf("expected both players debited 10, balances %.2f / %.2f", wallet.balance(1), wallet.balance(2))
	}

	card, _ := eng.catalog.Get(1)
	corners := []int{card.B[0], card.B[4], card.O[0], card.O[4]}
	eng.mu.Lock()
	for _, n := range corners {
		eng.session.AppendDraw(n)
	}
	eng.mu.Unlock()
	for _, n := range corners {
		if err := eng.Mark(1, 1, n); err != nil {
			t.Fatalf("mark %d: %v", n, err)
		}
	}

	res, err := eng.Claim(1, 1)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if res.Pattern != PatternCorners {
		t.Fatalf("expected corners win, got %+v", res)
	}
	if wallet.balance(1) != 110 {
		t.Fatalf("expected winner balance 110, got %.2f", wallet.balance(1))
	}

	if _, err := eng.Claim(2, 2); err != ErrAlreadyFinished {
		t.Fatalf("expected ErrAlreadyFinished, got %v", err)
	}
	if _, ok := reg.Get(eng.ID()); ok {
		t.Fatal("finished session still registered")
	}
}
