// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/repository"

	"github.com/jmoiron/sqlx"
)

// TransactionRepository implements repository.TransactionRepository for
// PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a new ledger record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (wallet_id, kind, amount, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.WalletID,
		transaction.Kind,
		transaction.Amount,
		transaction.CreatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", storeFailure(err))
	}
	return nil
}

// GetTransactionsByWalletID retrieves a page of a wallet's ledger plus the
// total record count. The id tiebreak keeps pages stable when records share
// a timestamp.
func (r *TransactionRepository) GetTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64, limit, offset int, newestFirst bool) ([]domain.Transaction, int64, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	transactions := []domain.Transaction{}
	query := fmt.Sprintf(`
		SELECT id, wallet_id, kind, amount, created_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at %s, id %s
		LIMIT $2 OFFSET $3`, order, order)
	err := q.SelectContext(ctx, &transactions, query, walletID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for wallet %d: %w", walletID, storeFailure(err))
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, walletID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for wallet %d: %w", walletID, storeFailure(err))
	}

	return transactions, totalCount, nil
}
