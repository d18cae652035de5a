// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursehub/internal/domain"
	"coursehub/internal/repository"
	"coursehub/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor. The unique
// index on user_id enforces the one-wallet-per-user invariant.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, currency, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query, wallet.UserID, wallet.Currency, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt).Scan(&wallet.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("wallet for user %d: %w", wallet.UserID, util.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create wallet: %w", storeFailure(err))
	}
	return nil
}

// GetWalletByUserID retrieves the wallet owned by the user using the provided
// DBExecutor.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, user_id, currency, balance, created_at, updated_at FROM wallets WHERE user_id = $1`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, storeFailure(err))
	}
	return &wallet, nil
}

// CreditBalance adds amount to the wallet's balance in a single statement.
func (r *WalletRepository) CreditBalance(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet %d: %w", walletID, storeFailure(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected crediting wallet %d: %w", walletID, storeFailure(err))
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet %d: %w", walletID, util.ErrNotFound)
	}
	return nil
}

// DebitBalance subtracts amount from the wallet's balance. The balance >=
// amount predicate makes the read-check-write race-free: two concurrent
// debits serialize on the row and the balance can never go negative.
func (r *WalletRepository) DebitBalance(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance - $1, updated_at = $2 WHERE id = $3 AND balance >= $1`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to debit wallet %d: %w", walletID, storeFailure(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected debiting wallet %d: %w", walletID, storeFailure(err))
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet %d: %w", walletID, util.ErrInsufficientFunds)
	}
	return nil
}
