// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"coursehub/internal/domain"
)

// TransactionRepository defines the interface for ledger record operations.
// Records are append-only; there are no update or delete operations.
type TransactionRepository interface {
	// CreateTransaction appends a new ledger record.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByWalletID retrieves one page of a wallet's ledger,
	// ordered by creation time, newest first when newestFirst is set. The
	// second return value is the total record count for the wallet.
	GetTransactionsByWalletID(ctx context.Context, q DBExecutor, walletID int64, limit, offset int, newestFirst bool) ([]domain.Transaction, int64, error)
}
