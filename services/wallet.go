package services

import (
	"errors"
	"fmt"

	"github.com/selamgames/bingo-engine/game"
	"github.com/selamgames/bingo-engine/models"

	"gorm.io/gorm"
)

// GormWallet implements the engine's wallet capability on the users
// table, writing a ledger row for every mutation. Each debit/credit
// runs inside one DB transaction so balance and ledger never diverge.
type GormWallet struct {
	db *gorm.DB
}

func NewGormWallet(db *gorm.DB) *GormWallet {
	return &GormWallet{db: db}
}

func (w *GormWallet) Balance(playerID uint) (float64, error) {
	var user models.User
	if err := w.db.First(&user, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("player %d not found", playerID)
		}
		return 0, err
	}
	return user.Balance, nil
}

func (w *GormWallet) Debit(playerID uint, amount float64, reason string) error {
	return w.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, playerID).Error; err != nil {
			return err
		}
		if user.Balance < amount {
			return game.ErrInsufficientBalance
		}

		user.Balance -= amount
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			UserID:       playerID,
			Type:         models.TransactionType(reason),
			Amount:       -amount,
			BalanceAfter: user.Balance,
		}).Error
	})
}

func (w *GormWallet) Credit(playerID uint, amount float64, reason string) error {
	return w.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, playerID).Error; err != nil {
			return err
		}

		user.Balance += amount
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Transaction{
			UserID:       playerID,
			Type:         models.TransactionType(reason),
			Amount:       amount,
			BalanceAfter: user.Balance,
		}).Error
	})
}
