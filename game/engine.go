package game

import (
	"log"
	"math/rand"
	"sync"
	"time"
)

// Timing defaults: a 60 second lobby countdown ticking once a second,
// then one number drawn every 2 seconds.
const (
	DefaultCountdownSeconds = 60
	DefaultCountdownTick    = time.Second
	DefaultDrawInterval     = 2 * time.Second
)

// EngineConfig carries the per-round timing knobs. Tests shrink the
// tick durations; production uses the defaults.
type EngineConfig struct {
	CountdownSeconds int
	CountdownTick    time.Duration
	DrawInterval     time.Duration
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		CountdownSeconds: DefaultCountdownSeconds,
		CountdownTick:    DefaultCountdownTick,
		DrawInterval:     DefaultDrawInterval,
	}
}

// Engine drives one session through its lifecycle. It is the unit of
// concurrency: every mutating operation (join, leave, mark, claim,
// timer ticks) takes the engine mutex, so operations on one session
// never interleave. Engines for different sessions are independent.
//
// At most one timer is live at a time, held in the timerCancel slot:
// the countdown while starting, the draw loop while playing. Every
// transition out of those states closes the slot, so an orphaned
// timer goroutine can never mutate a reset or evicted session.
type Engine struct {
	mu      sync.Mutex
	session *Session

	catalog   *Catalog
	wallet    Wallet
	broadcast Broadcaster
	store     Store
	cfg       EngineConfig
	rng       *rand.Rand

	countdown   int
	debited     map[uint]float64
	sequencer   *Sequencer
	timerCancel chan struct{}

	// onTerminal evicts this engine from the registry once the
	// terminal broadcast has been flushed.
	onTerminal func(sessionID string)
}

func NewEngine(session *Session, catalog *Catalog, wallet Wallet, broadcast Broadcaster, store Store, cfg EngineConfig) *Engine {
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = DefaultCountdownSeconds
	}
	if cfg.CountdownTick <= 0 {
		cfg.CountdownTick = DefaultCountdownTick
	}
	if cfg.DrawInterval <= 0 {
		cfg.DrawInterval = DefaultDrawInterval
	}
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	return &Engine{
		session:   session,
		catalog:   catalog,
		wallet:    wallet,
		broadcast: broadcast,
		store:     store,
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		countdown: cfg.CountdownSeconds,
		debited:   make(map[uint]float64),
	}
}

func (e *Engine) ID() string {
	return e.session.ID
}

func (e *Engine) StakeTier() int {
	return e.session.Stake
}

// State returns a detached snapshot of the session.
func (e *Engine) State() SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Snapshot()
}

// Joinable reports whether the session still accepts players.
func (e *Engine) Joinable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Status == StatusWaiting || e.session.Status == StatusStarting
}

// -------------------- Operations --------------------

// Join seats a player on a card. The first accepted join moves the
// session from waiting to starting and launches the countdown.
func (e *Engine) Join(playerID uint, name string, cardID int) error {
	if _, ok := e.catalog.Get(cardID); !ok {
		return ErrUnknownCard
	}

	// Balance is checked before taking the engine lock so a slow
	// wallet lookup cannot stall timer ticks. The debit itself only
	// happens on round start.
	balance, err := e.wallet.Balance(playerID)
	if err != nil {
		return err
	}
	if balance < float64(e.session.Stake) {
		return ErrInsufficientBalance
	}

	events, terminal, err := e.joinLocked(playerID, name, cardID)
	e.flush(events, terminal)
	return err
}

func (e *Engine) joinLocked(playerID uint, name string, cardID int) ([]Event, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.Status != StatusWaiting && s.Status != StatusStarting {
		return nil, "", ErrNotJoinable
	}
	if _, ok := s.Seats[playerID]; ok {
		return nil, "", ErrAlreadySeated
	}
	if s.CardTaken(cardID) {
		return nil, "", ErrCardTaken
	}

	s.AddSeat(playerID, name, cardID)
	s.PrizePool += float64(s.Stake)

	events := []Event{}
	if s.Status == StatusWaiting {
		s.Status = StatusStarting
		e.startCountdownLocked()
		events = append(events, CountdownEvent{GameID: s.ID, Seconds: e.countdown})
	}
	events = append(events, NewGameStateEvent(s.Snapshot()))
	log.Printf("[Engine %s] player %d joined with card %d (players=%d)", s.ID, playerID, cardID, len(s.Seats))
	return events, "", nil
}

// Leave removes a player's seat. Before the round starts their stake
// leaves the pool and an emptied lobby is torn down; once playing, the
// stake stays in the pool but a later cancellation still refunds the
// debit.
func (e *Engine) Leave(playerID uint) error {
	events, terminal, err := e.leaveLocked(playerID)
	e.flush(events, terminal)
	return err
}

func (e *Engine) leaveLocked(playerID uint) ([]Event, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.Status.Terminal() {
		return nil, "", ErrNotActive
	}
	if _, ok := s.Seats[playerID]; !ok {
		return nil, "", ErrNoSeat
	}

	s.RemoveSeat(playerID)
	log.Printf("[Engine %s] player %d left (players=%d)", s.ID, playerID, len(s.Seats))

	var events []Event
	switch s.Status {
	case StatusWaiting, StatusStarting:
		s.PrizePool -= float64(s.Stake)
		if len(s.Seats) == 0 {
			// Nobody left to wait for: the lobby is torn down and the
			// registry opens a fresh one on the next join.
			events = append(events, CountdownStoppedEvent{GameID: s.ID})
			term, terminal := e.terminateLocked(StatusCancelled, "lobby empty")
			return append(events, term...), terminal, nil
		}
		events = append(events, NewGameStateEvent(s.Snapshot()))
		return events, "", nil
	case StatusPlaying:
		if len(s.Seats) == 0 {
			events, terminal := e.terminateLocked(StatusCancelled, "all players left")
			return events, terminal, nil
		}
		events = append(events, NewGameStateEvent(s.Snapshot()))
		return events, "", nil
	}
	return nil, "", nil
}

// Mark records a drawn number on the player's card. Marking the same
// number twice is a no-op. Numbers the session has not drawn are
// rejected regardless of whether they appear on the card.
func (e *Engine) Mark(playerID uint, cardID, number int) error {
	events, _, err := e.markLocked(playerID, cardID, number)
	e.flush(events, "")
	return err
}

func (e *Engine) markLocked(playerID uint, cardID, number int) ([]Event, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.Status != StatusPlaying {
		return nil, "", ErrNotActive
	}
	seat, ok := s.Seats[playerID]
	if !ok || seat.CardID != cardID {
		return nil, "", ErrNoSeat
	}
	if !s.IsDrawn(number) {
		return nil, "", ErrNumberNotDrawn
	}
	if seat.Marked[number] {
		return nil, "", nil
	}
	seat.Marked[number] = true
	return []Event{NumberMarkedEvent{GameID: s.ID, UserID: playerID, CardID: cardID, Number: number}}, "", nil
}

// Claim arbitrates a bingo assertion. Claims are serialized with every
// other operation on the session, so at most one can ever be accepted:
// the first valid claim finishes the session and all later claims see
// the finished status.
func (e *Engine) Claim(playerID uint, cardID int) (WinResult, error) {
	result, events, terminal, err := e.claimLocked(playerID, cardID)
	e.flush(events, terminal)
	return result, err
}

func (e *Engine) claimLocked(playerID uint, cardID int) (WinResult, []Event, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s.Status == StatusFinished {
		return WinResult{}, nil, "", ErrAlreadyFinished
	}
	if s.Status != StatusPlaying {
		return WinResult{}, nil, "", ErrNotActive
	}
	seat, ok := s.Seats[playerID]
	if !ok || seat.CardID != cardID {
		return WinResult{}, nil, "", ErrNoSeat
	}

	card, ok := e.catalog.Get(cardID)
	if !ok {
		return WinResult{}, nil, "", ErrUnknownCard
	}

	// Marks are a subset of drawn numbers by construction, so the
	// evaluator result is trustworthy as-is.
	result := EvaluateWin(card, seat.Marked)
	if !result.Won {
		log.Printf("[Engine %s] player %d claimed bingo and failed", s.ID, playerID)
		return result, nil, "", ErrInvalidBingo
	}

	e.cancelTimerLocked()
	seat.HasWon = true
	s.Status = StatusFinished
	s.WinnerID = playerID
	s.WinnerName = seat.Name
	s.EndedAt = time.Now()

	prize := s.PrizePool
	if err := e.wallet.Credit(playerID, prize, WalletReasonPrize); err != nil {
		// The round is decided either way; the credit is retried by
		// the operator from the ledger, not by replaying the game.
		log.Printf("[Engine %s] failed to credit prize %.2f to player %d: %v", s.ID, prize, playerID, err)
	}
	e.checkpointLocked()
	log.Printf("[Engine %s] player %d won %.2f (%s)", s.ID, playerID, prize, result.Pattern)

	events := []Event{GameWonEvent{
		GameID:     s.ID,
		WinnerID:   playerID,
		WinnerName: seat.Name,
		Prize:      prize,
		Pattern:    result.Pattern,
		LineType:   result.LineType,
		LineIndex:  result.LineIndex,
	}}
	return result, events, s.ID, nil
}

// Start is the manual trigger: it begins the round immediately,
// superseding whatever is left of the countdown.
func (e *Engine) Start() error {
	events, terminal, err := e.startLocked()
	e.flush(events, terminal)
	return err
}

func (e *Engine) startLocked() ([]Event, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Status != StatusStarting {
		return nil, "", ErrNotActive
	}
	events, terminal := e.beginPlayingLocked()
	return events, terminal, nil
}

// Cancel force-terminates the session from outside the timers.
func (e *Engine) Cancel(reason string) {
	events, terminal := e.cancelSession(reason)
	e.flush(events, terminal)
}

func (e *Engine) cancelSession(reason string) ([]Event, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Status.Terminal() {
		return nil, ""
	}
	return e.terminateLocked(StatusCancelled, reason)
}

// -------------------- Countdown timer --------------------

func (e *Engine) startCountdownLocked() {
	e.cancelTimerLocked()
	e.countdown = e.cfg.CountdownSeconds
	cancel := make(chan struct{})
	e.timerCancel = cancel
	go e.runCountdown(cancel)
}

func (e *Engine) runCountdown(cancel chan struct{}) {
	defer e.recoverTimer("countdown")

	ticker := time.NewTicker(e.cfg.CountdownTick)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			if !e.countdownTick(cancel) {
				return
			}
		}
	}
}

func (e *Engine) countdownTick(cancel chan struct{}) bool {
	events, terminal, cont := func() ([]Event, string, bool) {
		e.mu.Lock()
		defer e.mu.Unlock()

		// Stale tick: the slot was handed to another timer or the
		// session moved on.
		if e.timerCancel != cancel || e.session.Status != StatusStarting {
			return nil, "", false
		}

		e.countdown--
		if e.countdown > 0 {
			return []Event{CountdownEvent{GameID: e.session.ID, Seconds: e.countdown}}, "", true
		}
		events, terminal := e.beginPlayingLocked()
		return events, terminal, false
	}()
	e.flush(events, terminal)
	return cont
}

// -------------------- Round start --------------------

// beginPlayingLocked moves starting -> playing: debit every seated
// player once, drop seats that can no longer cover the stake, then
// hand the timer slot to the draw loop. Zero remaining seats cancels
// the session instead.
func (e *Engine) beginPlayingLocked() ([]Event, string) {
	s := e.session
	e.cancelTimerLocked()

	if len(s.Seats) == 0 {
		return e.terminateLocked(StatusCancelled, "no players joined")
	}

	for playerID, seat := range s.Seats {
		if _, done := e.debited[playerID]; done {
			continue
		}
		amount := float64(s.Stake)
		err := e.wallet.Debit(playerID, amount, WalletReasonStake)
		if err == nil {
			e.debited[playerID] = amount
			continue
		}
		log.Printf("[Engine %s] dropping player %d before round start: %v", s.ID, playerID, err)
		s.RemoveSeat(seat.PlayerID)
		s.PrizePool -= amount
	}

	if len(s.Seats) == 0 {
		return e.terminateLocked(StatusCancelled, "no players could cover the stake")
	}

	s.Status = StatusPlaying
	s.StartedAt = time.Now()
	e.sequencer = NewSequencer(e.rng)
	e.startDrawLoopLocked()
	e.checkpointLocked()
	log.Printf("[Engine %s] round started with %d players, pool %.2f", s.ID, len(s.Seats), s.PrizePool)

	return []Event{
		GameStartedEvent{GameID: s.ID, StartTime: s.StartedAt},
		NewGameStateEvent(s.Snapshot()),
	}, ""
}

// -------------------- Draw timer --------------------

func (e *Engine) startDrawLoopLocked() {
	cancel := make(chan struct{})
	e.timerCancel = cancel
	go e.runDrawLoop(cancel)
}

func (e *Engine) runDrawLoop(cancel chan struct{}) {
	defer e.recoverTimer("draw")

	ticker := time.NewTicker(e.cfg.DrawInterval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			if !e.drawTick(cancel) {
				return
			}
		}
	}
}

func (e *Engine) drawTick(cancel chan struct{}) bool {
	events, terminal, cont := func() ([]Event, string, bool) {
		e.mu.Lock()
		defer e.mu.Unlock()

		s := e.session
		if e.timerCancel != cancel || s.Status != StatusPlaying {
			return nil, "", false
		}

		n, ok := e.sequencer.Next()
		if !ok {
			// All 75 numbers drawn with no winner: the round is void
			// and every debited stake comes back.
			log.Printf("[Engine %s] draw pool exhausted with no winner, voiding round", s.ID)
			events, terminal := e.terminateLocked(StatusCancelled, "draw pool exhausted")
			return events, terminal, false
		}

		s.AppendDraw(n)
		e.checkpointLocked()
		return []Event{NumberDrawnEvent{
			GameID:       s.ID,
			Number:       n,
			Column:       ColumnOf(n),
			DrawnNumbers: append([]int(nil), s.DrawnNumbers...),
		}}, "", true
	}()
	e.flush(events, terminal)
	return cont
}

// recoverTimer keeps a panicking tick from taking down the process.
// The session is force-cancelled rather than left stuck with a dead
// timer. The cancel itself is shielded too: a collaborator that keeps
// panicking still leaves a cancelled, refunded session behind.
func (e *Engine) recoverTimer(name string) {
	if r := recover(); r != nil {
		log.Printf("[Engine %s] %s timer panic: %v", e.session.ID, name, r)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Engine %s] panic during force-cancel after %s timer fault: %v", e.session.ID, name, r)
			}
		}()
		e.Cancel("internal error")
	}
}

// -------------------- Termination --------------------

// terminateLocked is the single exit path to a terminal status. It
// clears the timer slot, refunds debits on cancellation, and
// checkpoints the final state.
func (e *Engine) terminateLocked(status Status, reason string) ([]Event, string) {
	s := e.session
	e.cancelTimerLocked()
	s.Status = status
	s.EndedAt = time.Now()

	var events []Event
	if status == StatusCancelled {
		for playerID, amount := range e.debited {
			if err := e.wallet.Credit(playerID, amount, WalletReasonRefund); err != nil {
				log.Printf("[Engine %s] failed to refund %.2f to player %d: %v", s.ID, amount, playerID, err)
			}
			delete(e.debited, playerID)
		}
		events = append(events, GameCancelledEvent{GameID: s.ID, Reason: reason})
		log.Printf("[Engine %s] cancelled: %s", s.ID, reason)
	}
	e.checkpointLocked()
	return events, s.ID
}

func (e *Engine) cancelTimerLocked() {
	if e.timerCancel != nil {
		close(e.timerCancel)
		e.timerCancel = nil
	}
}

func (e *Engine) checkpointLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.SaveSession(e.session.Snapshot()); err != nil {
		log.Printf("[Engine %s] checkpoint failed: %v", e.session.ID, err)
	}
}

// flush publishes events outside the engine lock, then evicts the
// engine once the terminal broadcast is out.
func (e *Engine) flush(events []Event, terminalID string) {
	for _, ev := range events {
		e.publish(ev)
	}
	if terminalID != "" && e.onTerminal != nil {
		e.onTerminal(terminalID)
	}
}

// publish shields the engine from a faulty gateway: a panicking
// Publish loses that one event, never the session or its timers.
func (e *Engine) publish(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine %s] dropped %s broadcast after publish panic: %v", e.session.ID, ev.EventName(), r)
		}
	}()
	e.broadcast.Publish(ev)
}
