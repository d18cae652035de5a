// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations. Balance
// arithmetic happens in the store so concurrent mutations of one wallet
// serialize on the row.
type WalletRepository interface {
	// CreateWallet inserts a wallet. Fails with util.ErrDuplicateEntry when a
	// wallet already exists for the user.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUserID retrieves the wallet owned by the user.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// CreditBalance atomically adds amount to the wallet's balance.
	CreditBalance(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) error
	// DebitBalance atomically subtracts amount from the wallet's balance.
	// The update predicate requires balance >= amount; a wallet whose balance
	// is too low fails with util.ErrInsufficientFunds and stays unchanged.
	DebitBalance(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) error
}
