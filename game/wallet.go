package game

// Ledger reasons recorded by wallet implementations.
const (
	WalletReasonStake  = "stake"
	WalletReasonPrize  = "prize"
	WalletReasonRefund = "refund"
)

// Wallet is the external balance capability the engine consumes. The
// engine debits each seated player once on round start and credits the
// full prize pool on resolution; cancellations after a debit refund it.
type Wallet interface {
	Balance(playerID uint) (float64, error)
	// Debit returns ErrInsufficientBalance when the player cannot
	// cover the amount. No partial debits.
	Debit(playerID uint, amount float64, reason string) error
	Credit(playerID uint, amount float64, reason string) error
}

// Store checkpoints session state for recovery inspection. Saving is
// best-effort: the engine logs failures and carries on.
type Store interface {
	SaveSession(state SessionState) error
}
